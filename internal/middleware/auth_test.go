package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/rentkeeper/internal/auth"
	"github.com/mmynk/rentkeeper/internal/flash"
	"github.com/mmynk/rentkeeper/internal/metrics"
	"github.com/mmynk/rentkeeper/internal/models"
)

type fakeOwners map[int64]*models.Owner

func (f fakeOwners) GetOwnerByID(ctx context.Context, id int64) (*models.Owner, error) {
	return f[id], nil
}

type failingOwners struct{}

func (failingOwners) GetOwnerByID(ctx context.Context, id int64) (*models.Owner, error) {
	return nil, errors.New("database is locked")
}

// captureOwner records the owner the handler saw.
func captureOwner(seen **models.Owner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, _ := OwnerFromContext(r.Context())
		*seen = owner
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoadOwner(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	owner := &models.Owner{ID: 1, Email: "a@x.com"}
	owners := fakeOwners{1: owner}

	validToken, err := jwtManager.Generate(owner)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	staleToken, err := jwtManager.Generate(&models.Owner{ID: 2})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name      string
		cookie    string
		wantOwner bool
	}{
		{"no cookie", "", false},
		{"valid session", validToken, true},
		{"garbage token", "garbage", false},
		{"owner no longer exists", staleToken, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *models.Owner
			handler := LoadOwner(jwtManager, owners)(captureOwner(&seen))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status: expected 200, got %d", rec.Code)
			}
			if tt.wantOwner && (seen == nil || seen.ID != owner.ID) {
				t.Errorf("expected owner %d, got %+v", owner.ID, seen)
			}
			if !tt.wantOwner && seen != nil {
				t.Errorf("expected anonymous request, got owner %+v", seen)
			}
		})
	}
}

func TestLoadOwnerLookupFailure(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&models.Owner{ID: 1})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	called := false
	handler := LoadOwner(jwtManager, failingOwners{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/owner/house/add", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Error("handler must not run when the owner cannot be loaded")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: expected 500, got %d", rec.Code)
	}
}

func TestRequireOwner(t *testing.T) {
	called := false
	protected := RequireOwner("/login", flash.New("test-secret"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	t.Run("anonymous is redirected with next", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/owner/house/3/bill/add", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if called {
			t.Error("protected handler must not run for anonymous requests")
		}
		if rec.Code != http.StatusSeeOther {
			t.Errorf("status: expected 303, got %d", rec.Code)
		}
		want := "/login?next=%2Fowner%2Fhouse%2F3%2Fbill%2Fadd"
		if got := rec.Header().Get("Location"); got != want {
			t.Errorf("location: expected %q, got %q", want, got)
		}
	})

	t.Run("owner passes through", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/owner", nil)
		req = req.WithContext(WithOwner(req.Context(), &models.Owner{ID: 1}))
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if !called {
			t.Error("expected protected handler to run")
		}
	})
}

func TestRequestLoggerAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /house/{id}", func(w http.ResponseWriter, r *http.Request) {
		if GetRequestID(r.Context()) == "" {
			t.Error("expected request id in context")
		}
		http.NotFound(w, r)
	})
	handler := RequestLogger(Metrics(m)(mux))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/house/9", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: expected 404, got %d", rec.Code)
	}

	count, err := testutil.GatherAndCount(reg, "rentkeeper_http_requests_total")
	if err != nil {
		t.Fatalf("GatherAndCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 request series, got %d", count)
	}
}
