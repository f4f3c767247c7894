package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/pkg/session"
)

var fixedNow = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

type stubRenderer struct {
	name string
	data any
}

func (r *stubRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	r.name, r.data = name, data
	_, err := w.Write([]byte("<html>" + name + "</html>"))
	return err
}

func newContext(t *testing.T, path, token string) (echo.Context, *httptest.ResponseRecorder, *stubRenderer) {
	t.Helper()
	e := echo.New()
	r := &stubRenderer{}
	e.Renderer = r
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec, r
}

func signed(t *testing.T, issuedAt time.Time) string {
	t.Helper()
	tok, err := session.Issue(domain.Identity{ID: "u1", Email: "alice@example.com"}, "secret", issuedAt, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	c, rec, _ := newContext(t, "/api/profile", signed(t, fixedNow))

	called := false
	mw := Auth("secret", func() time.Time { return fixedNow.Add(time.Minute) })
	handler := mw(func(c echo.Context) error {
		called = true
		if UserID(c) != "u1" {
			t.Fatalf("user_id not set")
		}
		if Email(c) != "alice@example.com" {
			t.Fatalf("email not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	expired := signed(t, fixedNow.Add(-2*time.Hour))

	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
		wantView bool
	}{
		{"api missing", "/api/messages", "", http.StatusUnauthorized, false},
		{"api expired", "/api/messages", expired, http.StatusForbidden, false},
		{"api garbage", "/api/messages", "abc", http.StatusForbidden, false},
		{"page missing", "/", "", http.StatusOK, true},
		{"page expired", "/", expired, http.StatusOK, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, rec, r := newContext(t, tc.path, tc.token)
			handler := Auth("secret", func() time.Time { return fixedNow })(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if tc.wantView {
				if r.name != LoginView {
					t.Fatalf("expected login view, got %q", r.name)
				}
				return
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["success"] != false {
				t.Fatalf("expected success=false, got %v", body["success"])
			}
		})
	}
}

type stubAdminChecker map[string]bool

func (s stubAdminChecker) IsAdmin(_ context.Context, id string) (bool, error) {
	admin, ok := s[id]
	if !ok {
		return false, errors.New("unknown user")
	}
	return admin, nil
}

func TestRequireAdmin(t *testing.T) {
	checker := stubAdminChecker{"root": true, "joe": false}

	tests := []struct {
		name string
		user string
		code int
	}{
		{"admin", "root", http.StatusOK},
		{"plain user", "joe", http.StatusForbidden},
		{"unknown user", "ghost", http.StatusForbidden},
		{"no identity", "", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, rec, _ := newContext(t, "/api/user/x/block-status", "")
			if tc.user != "" {
				c.Set(ctxUserID, tc.user)
			}
			handler := RequireAdmin(checker)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}
