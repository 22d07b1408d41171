package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithClaims(t *testing.T, claims map[string]interface{}) *http.Request {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func TestRequireManager(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("manager passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := requestWithClaims(t, map[string]interface{}{"user_id": "u1", "role": "manager"})

		RequireManager(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("employee is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := requestWithClaims(t, map[string]interface{}{"user_id": "u1", "role": "employee"})

		RequireManager(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing role claim is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := requestWithClaims(t, map[string]interface{}{"user_id": "u1"})

		RequireManager(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		RequireManager(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
