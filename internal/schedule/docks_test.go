package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

func TestDockNumbers(t *testing.T) {
	docks := DockNumbers()
	assert.Equal(t, 4, docks[0])
	assert.Equal(t, 70, docks[len(docks)-1])
	// 4..32 even = 15 doors, 60..70 even = 6 doors
	assert.Len(t, docks, 21)
	for _, d := range docks {
		assert.Zero(t, d%2, "dock %d should be even", d)
	}
}

func TestValidDock(t *testing.T) {
	assert.True(t, ValidDock(4))
	assert.True(t, ValidDock(32))
	assert.True(t, ValidDock(60))
	assert.False(t, ValidDock(5), "odd numbers are not doors")
	assert.False(t, ValidDock(34), "gap between the walls")
	assert.False(t, ValidDock(72))
	assert.False(t, ValidDock(0))
}

func TestParseDockLabel(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"DOCK-04", 4, true},
		{"DOCK-4", 4, true},
		{"DOCK-60", 60, true},
		{"16", 16, true},
		{"", 0, false},
		{"dock-4", 0, false},
		{"DOCK-", 0, false},
		{"BAY-4", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseDockLabel(tt.label)
		assert.Equal(t, tt.ok, ok, "label %q", tt.label)
		if ok {
			assert.Equal(t, tt.want, got, "label %q", tt.label)
		}
	}
}

func TestOccupiedDocks(t *testing.T) {
	entries := []model.ScheduleEntry{
		{Dock: "DOCK-04"},
		{Dock: "16"},
		{Dock: ""},
		{Dock: "garage"}, // unparsable labels are excluded, not an error
	}
	occupied := OccupiedDocks(entries)
	assert.Len(t, occupied, 2)
	_, has4 := occupied[4]
	_, has16 := occupied[16]
	assert.True(t, has4)
	assert.True(t, has16)
}

func TestUsedLocations(t *testing.T) {
	entries := []model.ScheduleEntry{
		{Location: "B-5"},
		{Location: model.StageLocation},
		{Location: ""},
		{Location: "B-5"},
		{Location: "C-1"},
	}
	used := UsedLocations(entries)
	assert.Len(t, used, 2)
	_, hasB5 := used["B-5"]
	assert.True(t, hasB5)
}

func TestDockLabel(t *testing.T) {
	assert.Equal(t, "DOCK-04", DockLabel(4))
	assert.Equal(t, "DOCK-60", DockLabel(60))
}
