package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/allnik/property-service/internal/core/domain"
)

// stubVerifier accepts exactly one token.
type stubVerifier struct {
	token    string
	identity domain.Identity
	calls    int
}

func (v *stubVerifier) Verify(token string) (*domain.Identity, error) {
	v.calls++
	if token != v.token {
		return nil, domain.ErrInvalidToken
	}
	id := v.identity
	return &id, nil
}

func newVerifier() *stubVerifier {
	return &stubVerifier{token: "good", identity: domain.Identity{UserID: "7", Role: domain.RoleUser}}
}

func runAuth(t *testing.T, v *stubVerifier, header string) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Auth(v)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called, c
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body["message"]
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	rec, called, c := runAuth(t, newVerifier(), "good")

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get(ContextUserID) != "7" {
		t.Fatalf("user_id not set")
	}
	if c.Get(ContextRole) != domain.RoleUser {
		t.Fatalf("role not set")
	}
}

func TestAuthMiddleware_BearerPrefixAccepted(t *testing.T) {
	_, called, _ := runAuth(t, newVerifier(), "Bearer good")
	if !called {
		t.Fatalf("next not called for Bearer-prefixed token")
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	v := newVerifier()
	rec, called, _ := runAuth(t, v, "")

	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "No token provided." {
		t.Fatalf("unexpected message %q", msg)
	}
	if v.calls != 0 {
		t.Fatalf("verifier should not run without a token")
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec, called, _ := runAuth(t, newVerifier(), "garbage")

	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Invalid or expired token." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthenticate_Errors(t *testing.T) {
	v := newVerifier()
	cases := []struct {
		header string
		want   error
	}{
		{"", domain.ErrMissingToken},
		{"   ", domain.ErrMissingToken},
		{"bad", domain.ErrInvalidToken},
		{"Bearer bad", domain.ErrInvalidToken},
	}
	for _, tc := range cases {
		if _, err := Authenticate(v, tc.header); !errors.Is(err, tc.want) {
			t.Errorf("Authenticate(%q) = %v, want %v", tc.header, err, tc.want)
		}
	}
}
