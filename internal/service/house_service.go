package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/rentkeeper/internal/calculator"
	"github.com/mmynk/rentkeeper/internal/metrics"
	"github.com/mmynk/rentkeeper/internal/models"
	"github.com/mmynk/rentkeeper/internal/storage"
)

// HouseService implements listing, detail, dashboard and create operations
// over houses and their tenants, bills and agreements.
type HouseService struct {
	store   storage.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewHouseService creates a new HouseService with the given storage backend.
// m may be nil.
func NewHouseService(store storage.Store, m *metrics.Metrics) *HouseService {
	return &HouseService{store: store, metrics: m, now: time.Now}
}

// HouseDetail is everything the public house page shows.
type HouseDetail struct {
	House     *models.House
	Agreement *models.Agreement // first agreement, nil if none
	Tenant    *models.Tenant    // first tenant, nil if none
	Bills     []*models.Bill    // newest first
}

// HouseSummary is one dashboard row.
type HouseSummary struct {
	House     *models.House
	Totals    calculator.Totals
	Tenant    *models.Tenant
	Agreement *models.Agreement
}

// ListHouses returns every house, unfiltered and unpaginated.
func (s *HouseService) ListHouses(ctx context.Context) ([]*models.House, error) {
	houses, err := s.store.ListHouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list houses: %w", err)
	}
	return houses, nil
}

// GetHouse returns a house or ErrNotFound.
func (s *HouseService) GetHouse(ctx context.Context, id int64) (*models.House, error) {
	house, err := s.store.GetHouse(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: house %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get house: %w", err)
	}
	return house, nil
}

// HouseDetail gathers a house with its first agreement, first tenant and bills.
func (s *HouseService) HouseDetail(ctx context.Context, id int64) (*HouseDetail, error) {
	house, err := s.GetHouse(ctx, id)
	if err != nil {
		return nil, err
	}

	agreement, err := s.store.FirstAgreement(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get agreement: %w", err)
	}
	tenant, err := s.store.FirstTenant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	bills, err := s.store.ListBills(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	return &HouseDetail{House: house, Agreement: agreement, Tenant: tenant, Bills: bills}, nil
}

// Dashboard computes bill totals for every house. Nothing is cached; the
// cost is linear in the number of bills.
func (s *HouseService) Dashboard(ctx context.Context) ([]HouseSummary, error) {
	houses, err := s.ListHouses(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]HouseSummary, 0, len(houses))
	for _, house := range houses {
		bills, err := s.store.ListBills(ctx, house.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list bills for house %d: %w", house.ID, err)
		}
		tenant, err := s.store.FirstTenant(ctx, house.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get tenant for house %d: %w", house.ID, err)
		}
		agreement, err := s.store.FirstAgreement(ctx, house.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get agreement for house %d: %w", house.ID, err)
		}

		summaries = append(summaries, HouseSummary{
			House:     house,
			Totals:    calculator.SummarizeBills(bills),
			Tenant:    tenant,
			Agreement: agreement,
		})
	}

	return summaries, nil
}

// AddHouse validates the form and stores a new house.
func (s *HouseService) AddHouse(ctx context.Context, form HouseForm) (*models.House, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return nil, invalid("name", "House name is required.")
	}
	rent, err := parseMoney("rent", form.Rent)
	if err != nil {
		return nil, err
	}
	if rent < 0 {
		return nil, invalid("rent", "Rent cannot be negative.")
	}

	house := &models.House{
		Name:    name,
		Address: strings.TrimSpace(form.Address),
		Rent:    rent,
	}
	if err := s.store.CreateHouse(ctx, house); err != nil {
		slog.Error("CreateHouse failed", "error", err)
		return nil, err
	}
	s.metrics.RecordCreated("house")

	slog.Info("House created", "house_id", house.ID, "name", house.Name)
	return house, nil
}

// AddTenant stores a new tenant for an existing house.
func (s *HouseService) AddTenant(ctx context.Context, houseID int64, form TenantForm) (*models.Tenant, error) {
	if _, err := s.GetHouse(ctx, houseID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(form.Name)
	if name == "" {
		return nil, invalid("name", "Tenant name is required.")
	}

	tenant := &models.Tenant{
		HouseID: houseID,
		Name:    name,
		Phone:   strings.TrimSpace(form.Phone),
		Email:   strings.TrimSpace(form.Email),
	}
	if err := s.store.CreateTenant(ctx, tenant); err != nil {
		slog.Error("CreateTenant failed", "house_id", houseID, "error", err)
		return nil, err
	}
	s.metrics.RecordCreated("tenant")

	slog.Info("Tenant created", "tenant_id", tenant.ID, "house_id", houseID)
	return tenant, nil
}

// AddBill stores a new bill for an existing house. A missing or malformed
// date becomes the creation instant instead of failing the request.
func (s *HouseService) AddBill(ctx context.Context, houseID int64, form BillForm) (*models.Bill, error) {
	if _, err := s.GetHouse(ctx, houseID); err != nil {
		return nil, err
	}

	// The type is kept as entered; totals match it exactly.
	billType := form.Type
	if strings.TrimSpace(billType) == "" {
		return nil, invalid("type", "Bill type is required.")
	}
	amount, err := parseMoney("amount", form.Amount)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC().Truncate(time.Second)
	bill := &models.Bill{
		HouseID: houseID,
		Type:    billType,
		Amount:  amount,
		Note:    strings.TrimSpace(form.Note),
		Date:    parseBillDate(form.Date, now),
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		slog.Error("CreateBill failed", "house_id", houseID, "error", err)
		return nil, err
	}
	s.metrics.RecordCreated("bill")

	slog.Info("Bill created",
		"bill_id", bill.ID,
		"house_id", houseID,
		"type", bill.Type,
		"amount", bill.Amount,
	)
	return bill, nil
}

// AddAgreement stores a new agreement for an existing house.
func (s *HouseService) AddAgreement(ctx context.Context, houseID int64, form AgreementForm) (*models.Agreement, error) {
	if _, err := s.GetHouse(ctx, houseID); err != nil {
		return nil, err
	}

	agreement := &models.Agreement{
		HouseID:   houseID,
		Content:   form.Content,
		StartDate: form.StartDate,
		EndDate:   form.EndDate,
	}
	if err := s.store.CreateAgreement(ctx, agreement); err != nil {
		slog.Error("CreateAgreement failed", "house_id", houseID, "error", err)
		return nil, err
	}
	s.metrics.RecordCreated("agreement")

	slog.Info("Agreement created", "agreement_id", agreement.ID, "house_id", houseID)
	return agreement, nil
}
