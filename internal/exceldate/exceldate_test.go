package exceldate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateStrings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"slash form", "10/15/2025", "10/15/2025"},
		{"slash form single digits", "1/5/2025", "01/05/2025"},
		{"iso form", "2025-10-15", "10/15/2025"},
		{"dash form", "10-15-2025", "10/15/2025"},
		{"dash form single digits", "3-7-2024", "03/07/2024"},
		{"fallback layout", "Jan 2, 2026", "01/02/2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatDate(got))
		})
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	// Parsing the rendered output of a successful parse yields an equal date.
	for _, in := range []string{"10/15/2025", "2025-01-31", "12-25-2024"} {
		first, err := ParseDate(in)
		require.NoError(t, err)
		second, err := ParseDate(FormatDate(first))
		require.NoError(t, err)
		assert.True(t, first.Equal(second), "round trip drifted for %s", in)
	}
}

func TestParseDateSerial(t *testing.T) {
	// Serial 2 is day zero of the corrected epoch.
	got, err := ParseDate(float64(2))
	require.NoError(t, err)
	assert.Equal(t, "01/01/1900", FormatDate(got))

	// A modern serial: 45000 days maps into 2023.
	got, err = ParseDate(float64(45000))
	require.NoError(t, err)
	assert.Equal(t, epoch.AddDate(0, 0, 44998), got)

	// The time-of-day fraction is dropped.
	withFraction, err := ParseDate(45000.75)
	require.NoError(t, err)
	assert.Equal(t, got, withFraction)
}

func TestParseDateFailures(t *testing.T) {
	for _, in := range []any{"", "not a date", "13/45/2025", float64(0.5), nil} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrParseFailure, "input %v", in)
	}
}

func TestParseClockSerial(t *testing.T) {
	tests := []struct {
		serial float64
		want   string
	}{
		{0, "12:00 AM"},
		{0.5, "12:00 PM"},
		{0.25, "6:00 AM"},
		{0.75, "6:00 PM"},
		{10.5 / 24, "10:30 AM"},
		{13.0 / 24, "1:00 PM"},
		{23.0/24 + 59.0/1440, "11:59 PM"},
		// The full-day boundary stays in the PM branch, it does not
		// wrap back to midnight.
		{1, "12:00 PM"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseClock(tt.serial), "serial %v", tt.serial)
	}
}

func TestParseClockSerialMatchesMinuteMath(t *testing.T) {
	// Rendered string decomposes back to round(t*1440) minutes.
	for _, serial := range []float64{0, 0.1, 0.33, 0.5, 0.66, 0.9, 0.999} {
		rendered := ParseClock(serial)
		want := int(float64(1440)*serial + 0.5)
		if want == 1440 {
			want = 0
		}
		assert.Equal(t, want%1440, ClockToMinutes(rendered), "serial %v rendered %q", serial, rendered)
	}
}

func TestParseClockPassthrough(t *testing.T) {
	assert.Equal(t, "10:30 AM", ParseClock("10:30 AM"))
	assert.Equal(t, "", ParseClock(nil))
}

func TestClockToMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"12:00 AM", 0},
		{"12:00 PM", 720},
		{"10:30 AM", 630},
		{"1:05 pm", 785},
		{"14:05", 845},
		{"garbage", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClockToMinutes(tt.in), "input %q", tt.in)
	}
}

func TestEpochConstant(t *testing.T) {
	require.Equal(t, time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC), epoch)
}
