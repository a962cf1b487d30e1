package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskcrew/taskcrew/internal/api/middleware"
)

func TestTransportAuth(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	protected := middleware.TransportAuth(string(hash))(next)

	tests := []struct {
		name       string
		secret     string
		wantStatus int
	}{
		{name: "valid secret", secret: "s3cret", wantStatus: http.StatusNoContent},
		{name: "missing secret", secret: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", secret: "guess", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/commands", nil)
			if tt.secret != "" {
				req.Header.Set("X-Transport-Secret", tt.secret)
			}

			w := httptest.NewRecorder()
			protected.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
