// Package schedule holds the assignment core: the dock occupancy index and
// the reconciler that keeps schedule entries, dock doors and the location
// ledger consistent with each other.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

// Dock doors are even-numbered, 4-32 on the main wall and 60-70 on the
// annex. Odd numbers do not exist.
const (
	mainFirst  = 4
	mainLast   = 32
	annexFirst = 60
	annexLast  = 70
)

// DockNumbers enumerates every dock door in board order.
func DockNumbers() []int {
	var docks []int
	for i := mainFirst; i <= mainLast; i += 2 {
		docks = append(docks, i)
	}
	for i := annexFirst; i <= annexLast; i += 2 {
		docks = append(docks, i)
	}
	return docks
}

// ValidDock reports whether n names an existing dock door.
func ValidDock(n int) bool {
	if n%2 != 0 {
		return false
	}
	return (n >= mainFirst && n <= mainLast) || (n >= annexFirst && n <= annexLast)
}

// DockLabel renders the canonical label for a dock number, e.g. "DOCK-04".
func DockLabel(n int) string {
	return fmt.Sprintf("DOCK-%02d", n)
}

// Labels are either canonical ("DOCK-4", "DOCK-04") or a bare digit string.
var dockLabelPattern = regexp.MustCompile(`^(?:DOCK-(\d+)|(\d+))$`)

// ParseDockLabel extracts the dock number from a label. The second return
// is false for empty or unparsable labels; such labels are simply excluded
// from the occupancy set, never treated as an error.
func ParseDockLabel(label string) (int, bool) {
	m := dockLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// OccupiedDocks derives the set of dock numbers currently claimed by a
// schedule entry. The result is a snapshot: it is recomputed from scratch
// on every call and goes stale as soon as the collection changes.
func OccupiedDocks(entries []model.ScheduleEntry) map[int]struct{} {
	occupied := make(map[int]struct{})
	for _, e := range entries {
		if e.Dock == "" {
			continue
		}
		if n, ok := ParseDockLabel(e.Dock); ok {
			occupied[n] = struct{}{}
		}
	}
	return occupied
}

// UsedLocations derives the set of storage slots referenced by any entry,
// excluding the stage catch-all.
func UsedLocations(entries []model.ScheduleEntry) map[string]struct{} {
	used := make(map[string]struct{})
	for _, e := range entries {
		loc := e.Location
		if loc != "" && loc != model.StageLocation {
			used[loc] = struct{}{}
		}
	}
	return used
}
