// Package importer turns uploaded spreadsheets into schedule entries and
// renders schedules back out as workbooks. It works on per-sheet matrices
// of untyped cell values; all date/time cell interpretation is delegated
// to the exceldate package.
package importer

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/minsu-han/warehouse-inbound/internal/exceldate"
	"github.com/minsu-han/warehouse-inbound/internal/model"
)

// Column layout of the carrier's delivery plan. Dates sit in column M,
// appointment times in N.
const (
	colHBL      = 2  // C
	colCNTR     = 3  // D
	DateColumn  = 12 // M
	colClock    = 13 // N
	colNote     = 14 // O
	scanColumns = 20 // fallback scan width when M yields nothing
)

// Sheet is one worksheet as a matrix of untyped cell values: float64 for
// numeric cells, string otherwise, nil for blanks.
type Sheet struct {
	Name string
	Rows [][]any
}

// Row is a matched spreadsheet row. Index is the 1-based row number.
type Row struct {
	Index int
	Cells []any
}

// ReadWorkbook parses an XLSX stream into per-sheet matrices. Cell values
// are read raw; anything that parses as a number becomes float64 so that
// serial dates and times survive the trip.
func ReadWorkbook(r io.Reader) ([]Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}
		rows := make([][]any, len(raw))
		for i, r := range raw {
			cells := make([]any, len(r))
			for j, cell := range r {
				cells[j] = typedCell(cell)
			}
			rows[i] = cells
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

func typedCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}

func cellAt(row []any, idx int) any {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

// FindDateColumn locates the column holding appointment dates. Column M is
// tried first; when it holds no parsable date the first 20 columns are
// scanned and the first with any parsable date wins. Returns -1 when the
// sheet has no recognizable date column.
func FindDateColumn(rows [][]any) int {
	if columnHasDates(rows, DateColumn) {
		return DateColumn
	}
	for col := 0; col < scanColumns; col++ {
		if col == DateColumn {
			continue
		}
		if columnHasDates(rows, col) {
			return col
		}
	}
	return -1
}

func columnHasDates(rows [][]any, col int) bool {
	for _, row := range rows {
		cell := cellAt(row, col)
		if cell == nil {
			continue
		}
		if _, err := exceldate.ParseDate(cell); err == nil {
			return true
		}
	}
	return false
}

// UniqueDates lists every distinct date in a column, rendered canonically
// and sorted chronologically. Unparsable cells are skipped.
func UniqueDates(rows [][]any, col int) []string {
	seen := make(map[string]time.Time)
	for _, row := range rows {
		cell := cellAt(row, col)
		if cell == nil {
			continue
		}
		d, err := exceldate.ParseDate(cell)
		if err != nil {
			continue
		}
		seen[exceldate.FormatDate(d)] = d
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return seen[out[i]].Before(seen[out[j]]) })
	return out
}

// MatchRows returns the rows whose date cell matches the target date.
// Comparison happens on the canonical MM/DD/YYYY rendering; cells that
// fail to parse are treated as unusable for matching, never as an error.
func MatchRows(rows [][]any, col int, target string) []Row {
	want, err := exceldate.ParseDate(target)
	if err != nil {
		return nil
	}
	wantStr := exceldate.FormatDate(want)

	var out []Row
	for i, row := range rows {
		cell := cellAt(row, col)
		if cell == nil {
			continue
		}
		d, err := exceldate.ParseDate(cell)
		if err != nil {
			continue
		}
		if exceldate.FormatDate(d) == wantStr {
			out = append(out, Row{Index: i + 1, Cells: row})
		}
	}
	return out
}

// RowsToEntries converts matched rows into schedule entries for the given
// date (YYYY-MM-DD). Docks start unassigned and the location starts at the
// stage catch-all; missing references get placeholders keyed by row number.
func RowsToEntries(rows []Row, date string) []model.ScheduleEntry {
	entries := make([]model.ScheduleEntry, 0, len(rows))
	for i, row := range rows {
		hbl := stringCell(cellAt(row.Cells, colHBL))
		if hbl == "" {
			hbl = "HBL" + strconv.Itoa(row.Index)
		}
		cntr := stringCell(cellAt(row.Cells, colCNTR))
		if cntr == "" {
			cntr = "CNTR" + strconv.Itoa(row.Index)
		}
		clock := exceldate.ParseClock(cellAt(row.Cells, colClock))
		if clock == "" {
			clock = "9:00 AM"
		}
		typ := model.TypeCell
		if i%2 == 1 {
			typ = model.TypePack
		}
		entries = append(entries, model.ScheduleEntry{
			Date:            date,
			AppointmentTime: clock,
			Location:        model.StageLocation,
			HBL:             hbl,
			Container:       cntr,
			Note:            stringCell(cellAt(row.Cells, colNote)),
			Type:            typ,
			Status:          model.StatusFree,
		})
	}
	return entries
}

func stringCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

var exportHeader = []string{
	"Date", "Appointment Time", "Dock", "Location", "HBL", "CNTR",
	"Check-In Time", "Type", "Status", "Note",
}

// Export renders schedule entries as a single-sheet workbook. The caller
// owns the returned file and must Close it.
func Export(entries []model.ScheduleEntry, sheetName string) (*excelize.File, error) {
	if sheetName == "" {
		sheetName = "Schedule"
	}
	if len(sheetName) > 31 { // Excel sheet name limit
		sheetName = sheetName[:31]
	}
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	for col, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		start, _ := excelize.CoordinatesToCellName(1, 1)
		end, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
		_ = f.SetCellStyle(sheetName, start, end, style)
	}

	for i, e := range entries {
		values := []any{
			e.Date, e.AppointmentTime, e.Dock, e.EffectiveLocation(), e.HBL,
			e.Container, e.CheckInTime, e.Type, e.Status, e.Note,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
