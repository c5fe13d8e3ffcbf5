package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorsMiddleware(t *testing.T) {
	allowedOrigins := []string{"https://familyfit.app", "http://localhost:3000"}

	testCases := []struct {
		name        string
		method      string
		origin      string
		expectCors  bool
		expectNext  bool
		requestHdrs string
	}{
		{
			name:       "AllowedOrigin",
			method:     http.MethodGet,
			origin:     "https://familyfit.app",
			expectCors: true,
			expectNext: true,
		},
		{
			name:       "AllowedLocalOrigin",
			method:     http.MethodPost,
			origin:     "http://localhost:3000",
			expectCors: true,
			expectNext: true,
		},
		{
			name:       "NotAllowedOrigin",
			method:     http.MethodGet,
			origin:     "https://www.notallowed.com",
			expectCors: false,
			expectNext: true,
		},
		{
			name:       "NoOrigin",
			method:     http.MethodGet,
			expectCors: false,
			expectNext: true,
		},
		{
			name:        "Preflight",
			method:      http.MethodOptions,
			origin:      "https://familyfit.app",
			requestHdrs: "Content-Type",
			expectCors:  true,
			expectNext:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req, err := http.NewRequest(tc.method, "/dashboard/sessions", nil)
			require.NoError(t, err)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPut)
				req.Header.Set("Access-Control-Request-Headers", tc.requestHdrs)
			}

			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})
			handler := Cors(allowedOrigins)(nextHandler)

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectNext, nextCalled)
			if tc.expectCors {
				assert.Equal(t, tc.origin, rr.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
