package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

// whoami echoes the authenticated email
var whoami = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetUserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Write([]byte(claims.Email + "|" + claims.Role))
})

func TestMiddlewareSkipAuth(t *testing.T) {
	a := New(Options{SkipAuth: true}, zerolog.Nop())

	rec := httptest.NewRecorder()
	a.Middleware(whoami).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev@monti.local|admin", rec.Body.String())
}

func TestMiddlewareTokens(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed token",
			header:     "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "bearer token with realm role",
			header: "Bearer " + signed(t, jwt.MapClaims{
				"email":        "sup@example.com",
				"exp":          float64(now.Add(time.Hour).Unix()),
				"realm_access": map[string]interface{}{"roles": []interface{}{"viewer", "supervisor"}},
			}),
			wantStatus: http.StatusOK,
			wantBody:   "sup@example.com|supervisor",
		},
		{
			name: "query token defaults to viewer",
			query: signed(t, jwt.MapClaims{
				"email": "v@example.com",
			}),
			wantStatus: http.StatusOK,
			wantBody:   "v@example.com|viewer",
		},
		{
			name: "expired token",
			header: "Bearer " + signed(t, jwt.MapClaims{
				"email": "old@example.com",
				"exp":   float64(now.Add(-time.Minute).Unix()),
			}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(Options{}, zerolog.Nop())
			a.now = func() time.Time { return now }

			target := "/api/summary"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			a.Middleware(whoami).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestMiddlewareVerifyWithoutIssuer(t *testing.T) {
	var buf bytes.Buffer
	a := New(Options{VerifySignature: true}, zerolog.New(&buf))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{"email": "x@example.com"}))

	rec := httptest.NewRecorder()
	a.Middleware(whoami).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, buf.String(), "OIDC_ISSUER not configured")
}

func TestExtractRoleFromGroups(t *testing.T) {
	assert.Equal(t, "admin", extractRole(jwt.MapClaims{
		"cognito:groups": []interface{}{"monti-admins"},
	}))
	assert.Equal(t, "agent", extractRole(jwt.MapClaims{
		"custom:groups": []interface{}{"call-agents"},
	}))
	assert.Equal(t, "viewer", extractRole(jwt.MapClaims{}))
}

func TestExtractGroups(t *testing.T) {
	groups := extractGroups(jwt.MapClaims{
		"groups":         []interface{}{"/business-units/SGB", 42},
		"cognito:groups": []interface{}{"supervisors"},
	})
	assert.Equal(t, []string{"/business-units/SGB", "supervisors"}, groups)
}
