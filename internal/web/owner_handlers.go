package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mmynk/rentkeeper/internal/flash"
	"github.com/mmynk/rentkeeper/internal/models"
	"github.com/mmynk/rentkeeper/internal/service"
)

func housePath(id int64) string {
	return "/house/" + strconv.FormatInt(id, 10)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.houses.Dashboard(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "owner_dashboard", map[string]any{"Summaries": summaries})
}

func (s *Server) ownerHouse(w http.ResponseWriter, r *http.Request) {
	id, ok := houseID(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	http.Redirect(w, r, housePath(id), http.StatusSeeOther)
}

func (s *Server) addHousePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "add_house", map[string]any{"Form": service.HouseForm{}})
}

func (s *Server) addHouse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := service.HouseForm{
		Name:    r.PostFormValue("name"),
		Address: r.PostFormValue("address"),
		Rent:    r.PostFormValue("rent"),
	}

	_, err := s.houses.AddHouse(r.Context(), form)
	if s.formFailed(w, r, err, "add_house", map[string]any{"Form": form}) {
		return
	}

	s.flash.Add(w, r, flash.Success, "House added.")
	http.Redirect(w, r, "/owner", http.StatusSeeOther)
}

// houseForPage loads the house named in the path for a child form page.
// It writes the 404 or 500 response itself and reports false on failure.
func (s *Server) houseForPage(w http.ResponseWriter, r *http.Request) (*models.House, bool) {
	id, ok := houseID(r)
	if !ok {
		s.notFound(w, r)
		return nil, false
	}
	house, err := s.houses.GetHouse(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		s.notFound(w, r)
		return nil, false
	}
	if err != nil {
		s.serverError(w, r, err)
		return nil, false
	}
	return house, true
}

// formFailed maps a create error to a response: validation errors re-render
// the form with status 400, unknown houses render 404, anything else 500.
// It reports whether a response was written.
func (s *Server) formFailed(w http.ResponseWriter, r *http.Request, err error, page string, data map[string]any) bool {
	if err == nil {
		return false
	}
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		s.flash.Add(w, r, flash.Danger, verr.Message)
		s.render(w, r, http.StatusBadRequest, page, data)
	case errors.Is(err, service.ErrNotFound):
		s.notFound(w, r)
	default:
		s.serverError(w, r, err)
	}
	return true
}

func (s *Server) addTenantPage(w http.ResponseWriter, r *http.Request) {
	house, ok := s.houseForPage(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, "add_tenant", map[string]any{"House": house, "Form": service.TenantForm{}})
}

func (s *Server) addTenant(w http.ResponseWriter, r *http.Request) {
	house, ok := s.houseForPage(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := service.TenantForm{
		Name:  r.PostFormValue("name"),
		Phone: r.PostFormValue("phone"),
		Email: r.PostFormValue("email"),
	}

	_, err := s.houses.AddTenant(r.Context(), house.ID, form)
	if s.formFailed(w, r, err, "add_tenant", map[string]any{"House": house, "Form": form}) {
		return
	}

	s.flash.Add(w, r, flash.Success, "Tenant added.")
	http.Redirect(w, r, housePath(house.ID), http.StatusSeeOther)
}

func (s *Server) addBillPage(w http.ResponseWriter, r *http.Request) {
	house, ok := s.houseForPage(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, "add_bill", map[string]any{
		"House":     house,
		"Form":      service.BillForm{},
		"BillTypes": models.BillTypes,
	})
}

func (s *Server) addBill(w http.ResponseWriter, r *http.Request) {
	house, ok := s.houseForPage(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := service.BillForm{
		Type:   r.PostFormValue("type"),
		Amount: r.PostFormValue("amount"),
		Note:   r.PostFormValue("note"),
		Date:   r.PostFormValue("date"),
	}

	_, err := s.houses.AddBill(r.Context(), house.ID, form)
	if s.formFailed(w, r, err, "add_bill", map[string]any{"House": house, "Form": form, "BillTypes": models.BillTypes}) {
		return
	}

	s.flash.Add(w, r, flash.Success, "Bill added.")
	http.Redirect(w, r, housePath(house.ID), http.StatusSeeOther)
}

func (s *Server) addAgreementPage(w http.ResponseWriter, r *http.Request) {
	house, ok := s.houseForPage(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, "add_agreement", map[string]any{"House": house, "Form": service.AgreementForm{}})
}

func (s *Server) addAgreement(w http.ResponseWriter, r *http.Request) {
	house, ok := s.houseForPage(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := service.AgreementForm{
		Content:   r.PostFormValue("content"),
		StartDate: r.PostFormValue("start_date"),
		EndDate:   r.PostFormValue("end_date"),
	}

	_, err := s.houses.AddAgreement(r.Context(), house.ID, form)
	if s.formFailed(w, r, err, "add_agreement", map[string]any{"House": house, "Form": form}) {
		return
	}

	s.flash.Add(w, r, flash.Success, "Agreement saved.")
	http.Redirect(w, r, housePath(house.ID), http.StatusSeeOther)
}
