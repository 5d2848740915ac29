package models

// Agreement holds the lease text for a House.
// Multiple agreements may exist per house; pages only show the first one.
type Agreement struct {
	ID      int64
	HouseID int64

	// Content is the free-text lease.
	Content string

	// StartDate and EndDate are stored exactly as entered.
	StartDate string
	EndDate   string

	CreatedAt int64
}
