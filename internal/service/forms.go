package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/rentkeeper/internal/models"
)

// HouseForm carries the raw fields of the add-house form.
type HouseForm struct {
	Name    string
	Address string
	Rent    string
}

// TenantForm carries the raw fields of the add-tenant form.
type TenantForm struct {
	Name  string
	Phone string
	Email string
}

// BillForm carries the raw fields of the add-bill form.
// Date uses models.DateLayout.
type BillForm struct {
	Type   string
	Amount string
	Note   string
	Date   string
}

// AgreementForm carries the raw fields of the add-agreement form.
// Dates are kept as entered.
type AgreementForm struct {
	Content   string
	StartDate string
	EndDate   string
}

// parseMoney converts a form value to a float. Empty input is zero.
func parseMoney(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid(field, "Please enter a valid number for "+field+".")
	}
	return v, nil
}

// parseBillDate parses a calendar date, falling back to now when the value
// is missing or malformed.
func parseBillDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	d, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return now
	}
	return d
}
