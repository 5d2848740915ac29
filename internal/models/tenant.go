package models

// Tenant is an occupant of a House.
//
// Several tenants may reference the same house; pages only show the first
// one recorded.
type Tenant struct {
	ID      int64
	HouseID int64

	// Name is required.
	Name string

	// Phone and Email are optional contact details, not validated.
	Phone string
	Email string

	CreatedAt int64
}
