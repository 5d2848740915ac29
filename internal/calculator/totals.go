package calculator

import "github.com/mmynk/rentkeeper/internal/models"

// Totals holds the bill aggregates shown for one house on the dashboard.
type Totals struct {
	Total    float64 // Sum of every bill amount
	Water    float64 // Sum of bills typed "water"
	Electric float64 // Sum of bills typed "electricity"
}

// SummarizeBills aggregates bill amounts for a house.
//
// Types are matched exactly, so "Water" does not count towards Water.
// It is a single pass over bills and is recomputed on every call.
func SummarizeBills(bills []*models.Bill) Totals {
	var t Totals
	for _, b := range bills {
		t.Total += b.Amount
		switch b.Type {
		case models.BillTypeWater:
			t.Water += b.Amount
		case models.BillTypeElectricity:
			t.Electric += b.Amount
		}
	}
	return t
}
