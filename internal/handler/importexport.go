package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/minsu-han/warehouse-inbound/internal/exceldate"
	"github.com/minsu-han/warehouse-inbound/internal/importer"
	"github.com/minsu-han/warehouse-inbound/internal/repository"
)

// ImportHandler turns uploaded carrier spreadsheets into schedule entries
// and renders the current plan back out as a workbook.
type ImportHandler struct {
	Store repository.ScheduleStore
	Log   zerolog.Logger
}

func NewImportHandler(store repository.ScheduleStore, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{Store: store, Log: log}
}

// Import handles POST /v1/imports/schedules.  The multipart form carries
// the workbook under "file", an optional "sheet" name and an optional
// "date".  Without a date the response lists the dates found in the
// sheet's date column so the operator can pick one; with a date the
// matching rows replace that day's plan.
func (h *ImportHandler) Import(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot open upload"})
	}
	defer src.Close()

	sheets, err := importer.ReadWorkbook(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "not a readable xlsx workbook"})
	}
	if len(sheets) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "workbook has no sheets"})
	}

	sheet := sheets[0]
	if want := strings.TrimSpace(c.FormValue("sheet")); want != "" {
		found := false
		for _, s := range sheets {
			if s.Name == want {
				sheet, found = s, true
				break
			}
		}
		if !found {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sheet not found", "sheet": want})
		}
	}

	col := importer.FindDateColumn(sheet.Rows)
	if col < 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no date column detected"})
	}

	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		return c.JSON(http.StatusOK, echo.Map{
			"sheet": sheet.Name,
			"dates": importer.UniqueDates(sheet.Rows, col),
		})
	}
	when, err := exceldate.ParseDate(date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unrecognized date", "date": date})
	}

	rows := importer.MatchRows(sheet.Rows, col, exceldate.FormatDate(when))
	if len(rows) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no rows for date", "date": exceldate.FormatDate(when)})
	}

	// Stored dates use the ISO form; the spreadsheet-facing side keeps
	// the canonical MM/DD/YYYY rendering.
	entries := importer.RowsToEntries(rows, when.Format("2006-01-02"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Store.CreateBulk(ctx, entries)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Log.Info().Str("sheet", sheet.Name).Str("date", exceldate.FormatDate(when)).Int("created", n).Msg("schedule import")
	return c.JSON(http.StatusCreated, echo.Map{"created": n, "date": when.Format("2006-01-02")})
}

// Export handles GET /v1/schedules/export?date= and streams the plan as
// an XLSX download.  Without a date the whole schedule is exported.
func (h *ImportHandler) Export(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	entries, err := h.Store.List(ctx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	name := "Schedule"
	if date != "" {
		name = "Schedule " + date
	}
	f, err := importer.Export(entries, name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}

	filename := "schedule.xlsx"
	if date != "" {
		filename = fmt.Sprintf("schedule-%s.xlsx", strings.ReplaceAll(date, "/", "-"))
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
