package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func protected(t *testing.T) http.HandlerFunc {
	t.Helper()
	return NewMiddleware(secret).ValidateToken(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(Subject(r.Context())))
	})
}

func TestValidateToken_AcceptsIssuedToken(t *testing.T) {
	token, err := IssueToken(secret, "admin-1", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protected(t)(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-1", w.Body.String())
}

func TestValidateToken_Rejects(t *testing.T) {
	expired, err := IssueToken(secret, "admin-1", -time.Minute)
	require.NoError(t, err)
	foreign, err := IssueToken("other-secret", "admin-1", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired", "Bearer " + expired},
		{"wrong secret", "Bearer " + foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			protected(t)(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "message")
		})
	}
}

func TestValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewMiddleware(secret).Verify(signed)
	assert.Error(t, err)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	live, err := IssueToken(secret, "a", time.Hour)
	require.NoError(t, err)
	dead, err := IssueToken(secret, "a", -time.Hour)
	require.NoError(t, err)
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "a"}).SignedString([]byte(secret))
	require.NoError(t, err)

	assert.False(t, Expired(live, now))
	assert.True(t, Expired(dead, now))
	assert.False(t, Expired(noExp, now))
	assert.False(t, Expired("opaque-session-token", now))
}
