package models

// House represents a rental property.
// Tenants, bills and agreements reference it through their HouseID.
type House struct {
	// ID is the autoincrement identifier assigned by the store.
	ID int64

	// Name is the required display name (e.g., "Blue cottage").
	Name string

	// Address is optional free text.
	Address string

	// Rent is the monthly rent. Never negative, zero when not given.
	Rent float64

	// CreatedAt is the Unix timestamp when the house was recorded.
	CreatedAt int64
}
