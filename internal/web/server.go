// Package web serves the HTML interface: public house pages, owner
// registration and login, and the owner-only dashboard and forms.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/rentkeeper/internal/auth"
	"github.com/mmynk/rentkeeper/internal/flash"
	"github.com/mmynk/rentkeeper/internal/metrics"
	"github.com/mmynk/rentkeeper/internal/middleware"
	"github.com/mmynk/rentkeeper/internal/service"
)

const loginPath = "/login"

// Pinger reports backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the server needs.
type Deps struct {
	Houses   *service.HouseService
	Auth     *service.AuthService
	JWT      *auth.JWTManager
	Owners   middleware.OwnerLookup
	Health   Pinger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Flash    *flash.Flasher

	// CookieSecure marks the session cookie Secure (HTTPS deployments).
	CookieSecure bool
}

// Server is the HTTP front end.
type Server struct {
	houses       *service.HouseService
	auth         *service.AuthService
	jwt          *auth.JWTManager
	owners       middleware.OwnerLookup
	health       Pinger
	metrics      *metrics.Metrics
	gatherer     prometheus.Gatherer
	flash        *flash.Flasher
	cookieSecure bool
	templates    *renderer
}

// NewServer parses the templates and wires the handlers.
func NewServer(deps Deps) (*Server, error) {
	if deps.Flash == nil {
		return nil, errors.New("web: flash signer is required")
	}
	templates, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Server{
		houses:       deps.Houses,
		auth:         deps.Auth,
		jwt:          deps.JWT,
		owners:       deps.Owners,
		health:       deps.Health,
		metrics:      deps.Metrics,
		gatherer:     deps.Gatherer,
		flash:        deps.Flash,
		cookieSecure: deps.CookieSecure,
		templates:    templates,
	}, nil
}

// Handler returns the full middleware chain around the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("GET /house/{id}", s.houseDetail)
	mux.HandleFunc("GET /register", s.registerPage)
	mux.HandleFunc("POST /register", s.register)
	mux.HandleFunc("GET /login", s.loginPage)
	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("GET /logout", s.logout)
	mux.HandleFunc("GET /healthz", s.healthz)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	// Owner only
	owner := middleware.RequireOwner(loginPath, s.flash)
	mux.Handle("GET /owner", owner(http.HandlerFunc(s.dashboard)))
	mux.Handle("GET /owner/house/{id}", owner(http.HandlerFunc(s.ownerHouse)))
	mux.Handle("GET /owner/house/add", owner(http.HandlerFunc(s.addHousePage)))
	mux.Handle("POST /owner/house/add", owner(http.HandlerFunc(s.addHouse)))
	mux.Handle("GET /owner/house/{id}/tenant/add", owner(http.HandlerFunc(s.addTenantPage)))
	mux.Handle("POST /owner/house/{id}/tenant/add", owner(http.HandlerFunc(s.addTenant)))
	mux.Handle("GET /owner/house/{id}/bill/add", owner(http.HandlerFunc(s.addBillPage)))
	mux.Handle("POST /owner/house/{id}/bill/add", owner(http.HandlerFunc(s.addBill)))
	mux.Handle("GET /owner/house/{id}/agreement/add", owner(http.HandlerFunc(s.addAgreementPage)))
	mux.Handle("POST /owner/house/{id}/agreement/add", owner(http.HandlerFunc(s.addAgreement)))

	mux.HandleFunc("/", s.notFound)

	return middleware.RequestLogger(
		middleware.LoadOwner(s.jwt, s.owners)(
			middleware.Metrics(s.metrics)(mux),
		),
	)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// The handler is wrapped with h2c so HTTP/2 clients work without TLS.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(s.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			slog.Error("Health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
