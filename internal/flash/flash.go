// Package flash carries one-shot user messages across a redirect in a
// signed cookie.
package flash

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// Categories used by the pages for styling.
const (
	Success = "success"
	Info    = "info"
	Warning = "warning"
	Danger  = "danger"
)

const (
	cookieName = "flash"
	issuer     = "rentkeeper/flash"
)

// Message is a single flashed message.
type Message struct {
	Category string `json:"c"`
	Text     string `json:"t"`
}

type claims struct {
	Messages []Message `json:"m"`
	jwt.RegisteredClaims
}

// Flasher reads and writes the flash cookie. The cookie is an HS256 token,
// so messages a client did not receive from the server are dropped.
type Flasher struct {
	key []byte
}

// New returns a Flasher signing with secret.
func New(secret string) *Flasher {
	return &Flasher{key: []byte(secret)}
}

// Add queues a message for the next rendered page. Messages already queued
// on this request (read from the incoming cookie or set earlier in the same
// response) are kept.
func (f *Flasher) Add(w http.ResponseWriter, r *http.Request, category, text string) {
	msgs := f.pending(w, r)
	msgs = append(msgs, Message{Category: category, Text: text})
	f.write(w, msgs)
}

// Pop returns queued messages and clears the cookie. Messages added earlier
// in the same response are included.
func (f *Flasher) Pop(w http.ResponseWriter, r *http.Request) []Message {
	msgs := f.pending(w, r)
	if len(msgs) == 0 {
		return nil
	}
	dropResponseCookie(w.Header())
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return msgs
}

// pending merges messages from the request cookie and any flash cookie
// already written to the response.
func (f *Flasher) pending(w http.ResponseWriter, r *http.Request) []Message {
	for _, line := range w.Header().Values("Set-Cookie") {
		c, err := http.ParseSetCookie(line)
		if err != nil || c.Name != cookieName {
			continue
		}
		if c.MaxAge < 0 {
			return nil // already consumed
		}
		return f.decode(c.Value)
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return f.decode(c.Value)
	}
	return nil
}

func (f *Flasher) write(w http.ResponseWriter, msgs []Message) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Messages:         msgs,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer},
	})
	value, err := token.SignedString(f.key)
	if err != nil {
		return
	}
	dropResponseCookie(w.Header())
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// decode returns nil for anything not signed with f's key.
func (f *Flasher) decode(value string) []Message {
	var c claims
	_, err := jwt.ParseWithClaims(value, &c,
		func(*jwt.Token) (any, error) { return f.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil
	}
	return c.Messages
}

// dropResponseCookie removes flash cookies already set on the response so
// only the latest state is sent.
func dropResponseCookie(h http.Header) {
	var kept []string
	for _, line := range h.Values("Set-Cookie") {
		if c, err := http.ParseSetCookie(line); err == nil && c.Name == cookieName {
			continue
		}
		kept = append(kept, line)
	}
	h.Del("Set-Cookie")
	for _, line := range kept {
		h.Add("Set-Cookie", line)
	}
}
