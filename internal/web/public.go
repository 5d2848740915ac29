package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mmynk/rentkeeper/internal/service"
)

// houseID parses the {id} path segment. Only positive integers are valid.
func houseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	houses, err := s.houses.ListHouses(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "index", map[string]any{"Houses": houses})
}

func (s *Server) houseDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := houseID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	detail, err := s.houses.HouseDetail(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "house_detail", map[string]any{"Detail": detail})
}
