// Package repository defines the persistence layer for schedule, timesheet,
// outbound and VAS collections. Each collection has a small interface with
// a MySQL implementation and an in-memory implementation; the in-memory one
// is used when no database is configured and doubles as the test fake.
// Sentinel errors defined here let handlers map failures onto HTTP status
// codes without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when an update or delete targets a record that
// does not exist. Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("record not found")
