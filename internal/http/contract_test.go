//go:build contract

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAPI_ContractCompliance validates that API responses match the documented envelope.
func TestAPI_ContractCompliance(t *testing.T) {
	packSizes := service.NewPackSizesService(nil, time.Minute)
	t.Cleanup(packSizes.Stop)
	router := NewRouter(Handlers{Storefront: NewHandler(testCatalog(t), packSizes)}, NewHealthHandler(), DefaultRouterConfig())

	tests := []struct {
		name             string
		method           string
		path             string
		body             string
		expectedStatus   int
		validateResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "GET /api/v1/colleges - Success 200",
			method:         http.MethodGet,
			path:           "/api/v1/colleges",
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var colleges []dto.CollegeSummary
				decodeData(t, w, &colleges)
				for _, c := range colleges {
					assert.NotEmpty(t, c.ID, "College summary must include id")
					assert.NotEmpty(t, c.Name, "College summary must include name")
				}
			},
		},
		{
			name:           "GET /api/v1/pack-sizes/resolve - Success 200",
			method:         http.MethodGet,
			path:           "/api/v1/pack-sizes/resolve?category_path=tshirt/men",
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var res dto.PackSizeResolution
				decodeData(t, w, &res)
				assert.Positive(t, res.PackSize, "Pack size must be at least one")
				assert.NotEmpty(t, res.Message, "Resolution must include the customer message")
			},
		},
		{
			name:           "GET /api/v1/colleges/:college - Not Found 404",
			method:         http.MethodGet,
			path:           "/api/v1/colleges/nowhere",
			expectedStatus: http.StatusNotFound,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrCodeNotFound, resp.Error, "Error code must match status")
				assert.NotEmpty(t, resp.Message, "Error must include a message")
				assert.NotEmpty(t, resp.RequestID, "Error must include request_id")
				assert.NotZero(t, resp.Timestamp, "Error must include timestamp")
			},
		},
		{
			name:           "POST /api/v1/pack-sizes/even-split - Bad Request 400",
			method:         http.MethodPost,
			path:           "/api/v1/pack-sizes/even-split",
			body:           `{"sizes":`,
			expectedStatus: http.StatusBadRequest,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, dto.ErrCodeInvalidRequest, decodeError(t, w).Error)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, tt.body, nil)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			tt.validateResponse(t, w)
		})
	}
}
