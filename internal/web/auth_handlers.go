package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmynk/rentkeeper/internal/auth"
	"github.com/mmynk/rentkeeper/internal/flash"
	"github.com/mmynk/rentkeeper/internal/middleware"
)

const defaultAfterLogin = "/owner"

// registrationClosed sends the caller to login once an owner exists.
func (s *Server) registrationClosed(w http.ResponseWriter, r *http.Request) {
	s.flash.Add(w, r, flash.Info, "Registration disabled: owner already created. Use login.")
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) {
	open, err := s.auth.RegistrationOpen(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if !open {
		s.registrationClosed(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "register", map[string]any{"Email": "", "Name": ""})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	open, err := s.auth.RegistrationOpen(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if !open {
		s.registrationClosed(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	name := r.PostFormValue("name")

	_, err = s.auth.Register(r.Context(), email, name, r.PostFormValue("password"))
	switch {
	case errors.Is(err, auth.ErrRegistrationClosed):
		s.registrationClosed(w, r)
		return
	case errors.Is(err, auth.ErrMissingCredentials):
		s.flash.Add(w, r, flash.Danger, "Email and password required.")
		s.render(w, r, http.StatusBadRequest, "register", map[string]any{"Email": email, "Name": name})
		return
	case err != nil:
		s.serverError(w, r, err)
		return
	}

	s.flash.Add(w, r, flash.Success, "Owner account created. Please login.")
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login", map[string]any{
		"Email": "",
		"Next":  r.URL.Query().Get("next"),
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	next := r.URL.Query().Get("next")
	if next == "" {
		next = r.PostFormValue("next")
	}

	_, token, err := s.auth.Login(r.Context(), email, r.PostFormValue("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.flash.Add(w, r, flash.Danger, "Invalid credentials.")
		s.render(w, r, http.StatusUnauthorized, "login", map[string]any{"Email": email, "Next": next})
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.auth.SessionDuration().Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	s.flash.Add(w, r, flash.Success, "Logged in successfully.")
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// logout always succeeds, with or without a session.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	s.flash.Add(w, r, flash.Info, "Logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// safeNext only allows redirects to local absolute paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return defaultAfterLogin
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return defaultAfterLogin
	}
	return next
}
