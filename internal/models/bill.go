package models

import "time"

// Conventional bill types offered by the bill form. Bill.Type is free text,
// these values are not enforced.
const (
	BillTypeWater       = "water"
	BillTypeElectricity = "electricity"
	BillTypeRent        = "rent"
	BillTypeOther       = "other"
)

// BillTypes lists the conventional bill types in form order.
var BillTypes = []string{BillTypeWater, BillTypeElectricity, BillTypeRent, BillTypeOther}

// DateLayout is the calendar-date format accepted for bill dates.
const DateLayout = "2006-01-02"

// Bill represents a one-off or recurring charge against a House.
// Bills are immutable once stored and listed newest first.
type Bill struct {
	// ID is the autoincrement identifier assigned by the store.
	ID int64

	// HouseID is the house this bill is charged against.
	HouseID int64

	// Type is the kind of charge (see BillTypes for the usual values).
	Type string

	// Amount is the charged amount, zero when not given.
	Amount float64

	// Note is an optional description.
	Note string

	// Date is when the charge applies. Defaults to the creation instant.
	Date time.Time
}
