//go:build !integration

package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/collegeapi"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "upstream-key"

func setupUpstreamRouter(t *testing.T) (*gin.Engine, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/colleges", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"school_ID":"1042","schoolName":"Michigan State","orderNumTemplate":"MSU-2024"}]}`))
	})
	mux.HandleFunc("/college", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "BROKEN" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("database offline"))
			return
		}
		_, _ = w.Write([]byte(`[{"ORDER_NUM":"MSU-2024","DESIGN_NUM":"M100965414","ITEM_ID":"1"}]`))
	})
	mux.HandleFunc("/logo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := collegeapi.New(config.UpstreamConfig{BaseURL: server.URL, Timeout: time.Second, CacheTTL: time.Minute}, nil, nil)
	t.Cleanup(client.Stop)

	cfg := DefaultRouterConfig()
	cfg.APIKeys = map[string]bool{testAPIKey: true}
	return NewRouter(Handlers{Upstream: NewUpstreamHandler(client)}, nil, cfg), server
}

func TestUpstreamHandler_Routes(t *testing.T) {
	router, _ := setupUpstreamRouter(t)
	withKey := map[string]string{middleware.APIKeyHeader: testAPIKey}

	tests := []struct {
		name           string
		path           string
		headers        map[string]string
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "colleges",
			path:           "/api/v1/upstream/colleges",
			headers:        withKey,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var colleges []collegeapi.CollegeData
				decodeData(t, w, &colleges)
				require.Len(t, colleges, 1)
				assert.Equal(t, "MSU-2024", colleges[0].OrderNumTemplate)
			},
		},
		{
			name:           "college by template",
			path:           "/api/v1/upstream/colleges/MSU-2024",
			headers:        withKey,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown college",
			path:           "/api/v1/upstream/colleges/0000",
			headers:        withKey,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "order items",
			path:           "/api/v1/upstream/orders/MSU-2024",
			headers:        withKey,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var items []collegeapi.OrderItem
				decodeData(t, w, &items)
				require.Len(t, items, 1)
				assert.Equal(t, "M100965414", items[0].DesignNum)
			},
		},
		{
			name:           "upstream failure carries details",
			path:           "/api/v1/upstream/orders/BROKEN",
			headers:        withKey,
			expectedStatus: http.StatusBadGateway,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrCodeUpstream, resp.Error)
				upstream, ok := resp.Details["upstream"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, float64(http.StatusInternalServerError), upstream["status"])
				assert.Equal(t, "database offline", upstream["responseText"])
			},
		},
		{
			name:           "missing api key",
			path:           "/api/v1/upstream/colleges",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong api key",
			path:           "/api/v1/upstream/colleges",
			headers:        map[string]string{middleware.APIKeyHeader: "nope"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tt.path, "", tt.headers)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestUpstreamHandler_ProxyImage(t *testing.T) {
	router, server := setupUpstreamRouter(t)

	tests := []struct {
		name           string
		rawURL         string
		expectedStatus int
	}{
		{name: "image", rawURL: server.URL + "/logo.png", expectedStatus: http.StatusOK},
		{name: "missing url", expectedStatus: http.StatusBadRequest},
		{name: "not http", rawURL: "ftp://example.com/logo.png", expectedStatus: http.StatusBadRequest},
		{name: "upstream 404", rawURL: server.URL + "/missing.png", expectedStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/api/v1/proxy-image"
			if tt.rawURL != "" {
				path += "?url=" + url.QueryEscape(tt.rawURL)
			}
			w := doRequest(router, http.MethodGet, path, "", nil)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
				assert.Equal(t, imageCacheControl, w.Header().Get("Cache-Control"))
				assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, w.Body.Bytes())
			}
		})
	}
}

func TestUpstreamHandler_NotConfigured(t *testing.T) {
	client := collegeapi.New(config.UpstreamConfig{}, nil, nil)
	t.Cleanup(client.Stop)
	router := NewRouter(Handlers{Upstream: NewUpstreamHandler(client)}, nil, DefaultRouterConfig())

	w := doRequest(router, http.MethodGet, "/api/v1/upstream/colleges", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
