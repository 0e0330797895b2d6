package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(middlewares ...mux.MiddlewareFunc) (*mux.Router, *Claims) {
	var seen Claims
	r := mux.NewRouter()
	r.Use(middlewares...)
	r.HandleFunc("/secure", func(w http.ResponseWriter, req *http.Request) {
		if c, ok := FromContext(req.Context()); ok {
			seen = c
		}
		w.WriteHeader(http.StatusOK)
	})
	return r, &seen
}

func get(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/secure", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_ValidToken(t *testing.T) {
	r, seen := protectedRouter(Middleware(testSecret))

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  float64(7),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	rec := get(r, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, seen.UserID)
	assert.Equal(t, "admin", seen.Role)
}

func TestMiddleware_Rejections(t *testing.T) {
	r, _ := protectedRouter(Middleware(testSecret))

	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub": float64(7), "role": "user", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"sub": float64(7), "role": "user", "exp": time.Now().Add(time.Hour).Unix(),
	})
	noSubject := signToken(t, testSecret, jwt.MapClaims{
		"role": "user", "exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired", "Bearer " + expired},
		{"wrong key", "Bearer " + wrongKey},
		{"no subject", "Bearer " + noSubject},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(r, tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	r, _ := protectedRouter(Middleware(testSecret), RequireRole("admin"))

	adminToken := signToken(t, testSecret, jwt.MapClaims{
		"sub": float64(1), "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})
	userToken := signToken(t, testSecret, jwt.MapClaims{
		"sub": float64(2), "role": "user", "exp": time.Now().Add(time.Hour).Unix(),
	})

	rec := get(r, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(r, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = get(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
