package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mmynk/rentkeeper/internal/auth"
	"github.com/mmynk/rentkeeper/internal/flash"
	"github.com/mmynk/rentkeeper/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// OwnerKey is the context key for the authenticated *models.Owner.
	OwnerKey contextKey = "owner"
	// RequestInfoKey is the context key for the per-request *RequestInfo.
	RequestInfoKey contextKey = "request_info"
)

// SessionCookie is the name of the cookie holding the session token.
const SessionCookie = "session"

// OwnerLookup resolves an owner id from a session token.
type OwnerLookup interface {
	GetOwnerByID(ctx context.Context, id int64) (*models.Owner, error)
}

// OwnerFromContext returns the authenticated owner, if any.
func OwnerFromContext(ctx context.Context) (*models.Owner, bool) {
	owner, ok := ctx.Value(OwnerKey).(*models.Owner)
	return owner, ok && owner != nil
}

// WithOwner returns a copy of ctx carrying owner.
func WithOwner(ctx context.Context, owner *models.Owner) context.Context {
	return context.WithValue(ctx, OwnerKey, owner)
}

// LoadOwner resolves the session cookie to an owner once per request and
// stores it in the request context. Missing, invalid or stale sessions leave
// the request anonymous; a failed owner lookup answers 500.
func LoadOwner(jwtManager *auth.JWTManager, owners OwnerLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := jwtManager.Validate(cookie.Value)
			if err != nil {
				slog.Debug("Ignoring session cookie", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			owner, err := owners.GetOwnerByID(r.Context(), claims.OwnerID)
			if err != nil {
				slog.Error("Failed to resolve session owner", "owner_id", claims.OwnerID, "error", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if owner == nil {
				next.ServeHTTP(w, r)
				return
			}

			if info := requestInfo(r.Context()); info != nil {
				info.OwnerID = owner.ID
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

// RequireOwner refuses anonymous requests: it flashes a warning and
// redirects to loginPath with the requested path in "next". The wrapped
// handler is never called for them.
func RequireOwner(loginPath string, flashes *flash.Flasher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := OwnerFromContext(r.Context()); !ok {
				flashes.Add(w, r, flash.Warning, "Please log in to access that page.")
				target := loginPath + "?next=" + url.QueryEscape(r.URL.Path)
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
