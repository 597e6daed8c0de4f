package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

// planRow builds a spreadsheet row shaped like the carrier's delivery plan:
// HBL in C, container in D, date in M, time in N, note in O.
func planRow(hbl, cntr string, date, clock any, note string) []any {
	row := make([]any, 15)
	row[colHBL] = hbl
	row[colCNTR] = cntr
	row[DateColumn] = date
	row[colClock] = clock
	row[colNote] = note
	return row
}

func TestFindDateColumnPrefersM(t *testing.T) {
	rows := [][]any{
		planRow("HBL1", "CNTR1", "10/15/2025", 0.5, ""),
	}
	assert.Equal(t, DateColumn, FindDateColumn(rows))
}

func TestFindDateColumnFallsBackToScan(t *testing.T) {
	// Dates live in column B here; M is empty.
	rows := [][]any{
		{nil, "2025-10-15", "cargo"},
		{nil, "2025-10-16", "cargo"},
	}
	assert.Equal(t, 1, FindDateColumn(rows))
}

func TestFindDateColumnNone(t *testing.T) {
	rows := [][]any{
		{"just", "text", "cells"},
	}
	assert.Equal(t, -1, FindDateColumn(rows))
}

func TestUniqueDates(t *testing.T) {
	rows := [][]any{
		planRow("a", "b", "10/16/2025", nil, ""),
		planRow("a", "b", "10/15/2025", nil, ""),
		planRow("a", "b", float64(46025), nil, ""), // serial form of a third date
		planRow("a", "b", "10/15/2025", nil, ""),   // duplicate
		planRow("a", "b", "not a date", nil, ""),   // skipped
	}
	dates := UniqueDates(rows, DateColumn)
	require.Len(t, dates, 3)
	// Chronological order, duplicates collapsed.
	assert.Equal(t, "10/15/2025", dates[0])
	assert.Equal(t, "10/16/2025", dates[1])
}

func TestMatchRows(t *testing.T) {
	rows := [][]any{
		planRow("keep", "c1", "10/15/2025", nil, ""),
		planRow("skip", "c2", "10/16/2025", nil, ""),
		planRow("keep2", "c3", "2025-10-15", nil, ""), // other format, same date
		planRow("bad", "c4", "garbage", nil, ""),      // unusable cell, no error
	}
	matched := MatchRows(rows, DateColumn, "10/15/2025")
	require.Len(t, matched, 2)
	assert.Equal(t, 1, matched[0].Index)
	assert.Equal(t, 3, matched[1].Index)
}

func TestMatchRowsBadTarget(t *testing.T) {
	assert.Nil(t, MatchRows([][]any{planRow("a", "b", "10/15/2025", nil, "")}, DateColumn, "nonsense"))
}

func TestRowsToEntries(t *testing.T) {
	matched := []Row{
		{Index: 4, Cells: planRow("HBL-777", "MSKU123", "10/15/2025", 10.5/24, "fragile")},
		{Index: 5, Cells: planRow("", "", "10/15/2025", "2:00 PM", "")},
	}
	entries := RowsToEntries(matched, "2025-10-15")
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "2025-10-15", first.Date)
	assert.Equal(t, "10:30 AM", first.AppointmentTime)
	assert.Equal(t, "HBL-777", first.HBL)
	assert.Equal(t, "MSKU123", first.Container)
	assert.Equal(t, "fragile", first.Note)
	assert.Equal(t, model.StageLocation, first.Location)
	assert.Empty(t, first.Dock, "imports never arrive with a dock")
	assert.Equal(t, model.StatusFree, first.Status)

	second := entries[1]
	assert.Equal(t, "HBL5", second.HBL, "placeholder keyed by row number")
	assert.Equal(t, "CNTR5", second.Container)
	assert.Equal(t, "2:00 PM", second.AppointmentTime, "string clocks pass through")
}

func TestExportReadBack(t *testing.T) {
	entries := []model.ScheduleEntry{
		{
			Date: "2025-10-15", AppointmentTime: "10:30 AM", Dock: "DOCK-04",
			Location: "B-5", HBL: "HBL-777", Container: "MSKU123",
			CheckInTime: "09:45", Type: model.TypeCell, Status: model.StatusFree,
		},
	}
	f, err := Export(entries, "2025-10-15")
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("2025-10-15")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "DOCK-04", rows[1][2])
	assert.Equal(t, "B-5", rows[1][3])
}
