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

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		handler    gin.HandlerFunc
		locale     string
		wantStatus int
		check      func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:       "panic becomes 500 with request id",
			handler:    func(c *gin.Context) { panic("nil catalog") },
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var body dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, dto.ErrCodeInternal, body.Error)
				assert.Equal(t, "An unexpected error occurred", body.Message)
				assert.NotEmpty(t, body.RequestID)
			},
		},
		{
			name:       "message follows the request locale",
			handler:    func(c *gin.Context) { panic("nil catalog") },
			locale:     "pt",
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), "Ocorreu um erro inesperado")
			},
		},
		{
			name: "panic after the body started keeps the written status",
			handler: func(c *gin.Context) {
				c.String(http.StatusOK, "partial")
				panic("mid stream")
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "partial", w.Body.String())
			},
		},
		{
			name:       "no panic passes through",
			handler:    func(c *gin.Context) { c.String(http.StatusOK, "ok") },
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "ok", w.Body.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), Recovery())
			router.GET("/api/v1/colleges", tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/colleges", nil)
			if tt.locale != "" {
				req.Header.Set("Accept-Language", tt.locale)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			tt.check(t, w)
		})
	}
}

func TestRecovery_ReraisesAbortHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery())
	router.GET("/api/v1/proxy-image", func(c *gin.Context) { panic(http.ErrAbortHandler) })

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/proxy-image", nil))
	})
}
