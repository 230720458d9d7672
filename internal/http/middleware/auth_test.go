package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eduportal/resources-service/internal/utils/jwt"
)

const testSecret = "test_secret"

func protectedEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			t.Error("expected user id in context")
		}
		w.Write([]byte(userID))
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, err := jwt.CreateToken("42", testSecret)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(testSecret)(protectedEcho(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "42" {
		t.Errorf("expected user id 42 in context, got %q", rec.Body.String())
	}
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	wrongSecret, _ := jwt.CreateToken("42", "other_secret")

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"empty token", "Bearer "},
		{"wrong secret", "Bearer " + wrongSecret},
		{"garbage token", "Bearer not.a.token"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/courses", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler must not run for rejected requests")
			})).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}
