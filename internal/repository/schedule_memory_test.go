package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

func mkEntry(date, appt string) model.ScheduleEntry {
	return model.ScheduleEntry{
		Date:            date,
		AppointmentTime: appt,
		Type:            model.TypeCell,
		Status:          model.StatusFree,
	}
}

func TestCreateBulkReplacesDate(t *testing.T) {
	s := NewMemoryScheduleStore()
	ctx := context.Background()

	_, err := s.CreateBulk(ctx, []model.ScheduleEntry{
		mkEntry("2025-10-15", "9:00 AM"),
		mkEntry("2025-10-15", "10:00 AM"),
		mkEntry("2025-10-16", "8:00 AM"),
	})
	require.NoError(t, err)

	// Re-importing 2025-10-15 replaces the prior set exactly; other dates
	// are untouched.
	n, err := s.CreateBulk(ctx, []model.ScheduleEntry{
		mkEntry("2025-10-15", "1:00 PM"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	day, err := s.List(ctx, "2025-10-15")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "1:00 PM", day[0].AppointmentTime)

	other, err := s.List(ctx, "2025-10-16")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestCreateBulkEmpty(t *testing.T) {
	s := NewMemoryScheduleStore()
	n, err := s.CreateBulk(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListOrdersByAppointmentTime(t *testing.T) {
	s := NewMemoryScheduleStore()
	ctx := context.Background()
	_, err := s.CreateBulk(ctx, []model.ScheduleEntry{
		mkEntry("2025-10-15", "1:30 PM"),
		mkEntry("2025-10-15", "8:00 AM"),
		mkEntry("2025-10-15", "12:00 PM"),
	})
	require.NoError(t, err)

	day, err := s.List(ctx, "2025-10-15")
	require.NoError(t, err)
	require.Len(t, day, 3)
	assert.Equal(t, "8:00 AM", day[0].AppointmentTime)
	assert.Equal(t, "12:00 PM", day[1].AppointmentTime)
	assert.Equal(t, "1:30 PM", day[2].AppointmentTime)
}

func TestUpdatePatchesFields(t *testing.T) {
	s := NewMemoryScheduleStore()
	ctx := context.Background()
	_, err := s.CreateBulk(ctx, []model.ScheduleEntry{mkEntry("2025-10-15", "9:00 AM")})
	require.NoError(t, err)
	day, _ := s.List(ctx, "2025-10-15")
	id := day[0].ID

	note := "seal broken, hold for QA"
	status := model.StatusHold
	got, err := s.Update(ctx, id, model.SchedulePatch{Note: &note, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, note, got.Note)
	assert.Equal(t, model.StatusHold, got.Status)
	// Untouched fields survive.
	assert.Equal(t, "9:00 AM", got.AppointmentTime)
}

func TestUpdateMissing(t *testing.T) {
	s := NewMemoryScheduleStore()
	_, err := s.Update(context.Background(), "nope", model.SchedulePatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := NewMemoryScheduleStore()
	ctx := context.Background()
	_, err := s.CreateBulk(ctx, []model.ScheduleEntry{mkEntry("2025-10-15", "9:00 AM")})
	require.NoError(t, err)
	day, _ := s.List(ctx, "2025-10-15")

	require.NoError(t, s.Delete(ctx, day[0].ID))
	assert.ErrorIs(t, s.Delete(ctx, day[0].ID), ErrNotFound)
}

func TestDeleteByDate(t *testing.T) {
	s := NewMemoryScheduleStore()
	ctx := context.Background()
	_, err := s.CreateBulk(ctx, []model.ScheduleEntry{
		mkEntry("2025-10-15", "9:00 AM"),
		mkEntry("2025-10-15", "10:00 AM"),
		mkEntry("2025-10-16", "8:00 AM"),
	})
	require.NoError(t, err)

	n, err := s.DeleteByDate(ctx, "2025-10-15")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rest, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
