//go:build !integration

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	proxyKeys := map[string]bool{"storefront-proxy": true, "bookstore-batch": true, "revoked": false}

	tests := []struct {
		name       string
		validKeys  map[string]bool
		header     string
		query      string
		wantStatus int
		wantBody   string
	}{
		{name: "header key", validKeys: proxyKeys, header: "storefront-proxy", wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "query key for image tags", validKeys: proxyKeys, query: "api_key=bookstore-batch", wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "header wins over query", validKeys: proxyKeys, header: "nope", query: "api_key=storefront-proxy", wantStatus: http.StatusUnauthorized, wantBody: "Invalid API key"},
		{name: "missing key", validKeys: proxyKeys, wantStatus: http.StatusUnauthorized, wantBody: "API key is required"},
		{name: "unknown key", validKeys: proxyKeys, header: "storefront", wantStatus: http.StatusUnauthorized, wantBody: "Invalid API key"},
		{name: "key mapped to false", validKeys: proxyKeys, header: "revoked", wantStatus: http.StatusUnauthorized, wantBody: "Invalid API key"},
		{name: "nil key set disables the check", validKeys: nil, wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "only disabled keys disables the check", validKeys: map[string]bool{"revoked": false}, wantStatus: http.StatusOK, wantBody: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), APIKeyAuth(tt.validKeys))
			router.GET("/api/v1/upstream/colleges", func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/upstream/colleges", nil)
			req.URL.RawQuery = tt.query
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAPIKeyAuth_RejectionCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), APIKeyAuth(map[string]bool{"storefront-proxy": true}))
	router.GET("/api/v1/proxy-image", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/proxy-image", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, dto.ErrCodeUnauthorized, body.Error)
	assert.Equal(t, "req-42", body.RequestID)
}

func TestMatchesAny(t *testing.T) {
	keys := [][]byte{[]byte("alpha"), []byte("beta")}

	assert.True(t, matchesAny([]byte("alpha"), keys))
	assert.True(t, matchesAny([]byte("beta"), keys))
	assert.False(t, matchesAny([]byte("alph"), keys))
	assert.False(t, matchesAny([]byte("gamma"), keys))
	assert.False(t, matchesAny([]byte("alpha"), nil))
}
