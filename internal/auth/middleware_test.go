package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/bookstore-api/internal/user"
)

func echoIdentity(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		w.WriteHeader(http.StatusNoContent)
	})
}

func serveWithAuth(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	tokens := newTestPaseto(t)
	mw := NewMiddleware(tokens)
	protected := mw.RequireAuth(echoIdentity(t))

	valid, err := tokens.CreateToken(testSubject(), time.Hour)
	require.NoError(t, err)

	expiredSvc := newTestPaseto(t)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.CreateToken(testSubject(), time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"valid", "Bearer " + valid, http.StatusNoContent, ""},
		{"lowercase scheme", "bearer " + valid, http.StatusNoContent, ""},
		{"missing", "", http.StatusUnauthorized, "MISSING_AUTH"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "INVALID_AUTH_HEADER"},
		{"no token", "Bearer", http.StatusUnauthorized, "INVALID_AUTH_HEADER"},
		{"garbage", "Bearer abc", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serveWithAuth(protected, tc.header)
			assert.Equal(t, tc.status, rec.Code)
			if tc.code != "" {
				assert.Contains(t, rec.Body.String(), tc.code)
			}
		})
	}
}

func TestRequireAuth_PropagatesClaims(t *testing.T) {
	tokens := newTestPaseto(t)
	subject := testSubject()
	valid, err := tokens.CreateToken(subject, time.Hour)
	require.NoError(t, err)

	protected := NewMiddleware(tokens).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := GetUserIDFromContext(r.Context())
		email, _ := GetUserEmailFromContext(r.Context())
		role, _ := GetUserRoleFromContext(r.Context())

		assert.Equal(t, subject.UserID, id)
		assert.Equal(t, subject.Email, email)
		assert.Equal(t, subject.Role, role)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.Equal(t, http.StatusNoContent, serveWithAuth(protected, "Bearer "+valid).Code)
}

func TestRequireRole(t *testing.T) {
	mw := NewMiddleware(newTestPaseto(t))
	adminOnly := mw.RequireRole(user.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(role user.Role, withIdentity bool) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if withIdentity {
			req = req.WithContext(WithIdentity(req.Context(), uuid.New(), "a@x.com", role))
		}
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(user.RoleAdmin, true))
	assert.Equal(t, http.StatusForbidden, serve(user.RoleUser, true))
	assert.Equal(t, http.StatusForbidden, serve("", false))
}
