package model

// SlotStatus is the availability state of one storage slot.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotDisabled  SlotStatus = "disabled"
)

// Toggle returns the opposite status.
func (s SlotStatus) Toggle() SlotStatus {
	if s == SlotAvailable {
		return SlotDisabled
	}
	return SlotAvailable
}

// Valid reports whether s is one of the two known statuses.
func (s SlotStatus) Valid() bool {
	return s == SlotAvailable || s == SlotDisabled
}
