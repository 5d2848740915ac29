package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAddThenPopAcrossRedirect(t *testing.T) {
	f := New("test-secret")

	// First response sets the flash.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/owner/house/add", nil)
	f.Add(rec, req, Success, "House added.")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != cookieName {
		t.Fatalf("expected one flash cookie, got %v", cookies)
	}

	// Next request carries it back.
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/owner", nil)
	req2.AddCookie(cookies[0])

	msgs := f.Pop(rec2, req2)
	if len(msgs) != 1 || msgs[0].Category != Success || msgs[0].Text != "House added." {
		t.Fatalf("unexpected messages: %+v", msgs)
	}

	cleared := rec2.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Errorf("expected flash cookie to be cleared, got %+v", cleared)
	}
}

func TestAddAndPopSameResponse(t *testing.T) {
	f := New("test-secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", nil)

	f.Add(rec, req, Danger, "Email and password required.")
	f.Add(rec, req, Info, "second")

	msgs := f.Pop(rec, req)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %+v", msgs)
	}
	if msgs[0].Text != "Email and password required." || msgs[1].Text != "second" {
		t.Errorf("unexpected order: %+v", msgs)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("expected only a clearing cookie, got %+v", cookies)
	}

	if again := f.Pop(rec, req); again != nil {
		t.Errorf("expected nothing after pop, got %+v", again)
	}
}

func TestPopIgnoresGarbage(t *testing.T) {
	f := New("test-secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "%%%not-base64"})

	if msgs := f.Pop(rec, req); msgs != nil {
		t.Errorf("expected nil, got %+v", msgs)
	}
}

func TestPopRejectsForgedCookies(t *testing.T) {
	f := New("test-secret")

	// A cookie signed with another key.
	rec := httptest.NewRecorder()
	New("other-secret").Add(rec, httptest.NewRequest(http.MethodGet, "/", nil), Danger, "forged")
	forged := rec.Result().Cookies()[0]

	tests := []struct {
		name  string
		value string
	}{
		{"wrong key", forged.Value},
		{"unsigned json", "W3siYyI6ImRhbmdlciIsInQiOiJmb3JnZWQifV0"},
		{"alg none", "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJtIjpbeyJjIjoiZGFuZ2VyIiwidCI6ImZvcmdlZCJ9XSwiaXNzIjoicmVudGtlZXBlci9mbGFzaCJ9."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: cookieName, Value: tt.value})
			if msgs := f.Pop(httptest.NewRecorder(), req); msgs != nil {
				t.Errorf("expected forged cookie to be ignored, got %+v", msgs)
			}
		})
	}
}
