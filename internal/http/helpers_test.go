//go:build !integration

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/catalog"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/service"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testAdminUser     = "admin"
	testAdminPassword = "password123"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]model.College{{
		ID:      "demo",
		Name:    "Demo University",
		LogoURL: "/images/demo/logo.png",
		Categories: []model.Category{
			{Name: "Men's T-Shirts", Path: "tshirt/men", Axis: model.AxisShirtVersions, Images: []string{"M2 Applique Crew.png"}},
			{Name: "Hats", Path: "hat", Axis: model.AxisQuantity, Images: []string{"foo.png"}},
			{Name: "Infant", Path: "infant", Axis: model.AxisInfantSizes, Images: []string{"onesie.png"}},
		},
	}})
	require.NoError(t, err)
	return cat
}

type fakeSender struct {
	mu   sync.Mutex
	err  error
	sent []model.TemplateParams
}

func (f *fakeSender) Send(_ context.Context, params model.TemplateParams, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, params)
	return nil
}

func testAuthService(t *testing.T) *service.AuthServiceImpl {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return service.NewAuthService(config.AuthConfig{
		JWTSecretKey:      "test-secret-key-at-least-16",
		AccessTokenTTL:    15 * time.Minute,
		AdminUsername:     testAdminUser,
		AdminPasswordHash: string(hash),
	})
}

func adminToken(t *testing.T, auth service.AuthService) string {
	t.Helper()
	resp, err := auth.Login(context.Background(), testAdminUser, testAdminPassword)
	require.NoError(t, err)
	return resp.Token
}

func doRequest(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// decodeData unmarshals the data field of a success response into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// recordingLogs keeps every stored entry in memory.
type recordingLogs struct {
	mu      sync.Mutex
	entries []model.LogEntry
}

func (r *recordingLogs) CreateLog(_ context.Context, entry *model.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *recordingLogs) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	for _, e := range entries {
		_ = r.CreateLog(ctx, e)
	}
	return nil
}

func (r *recordingLogs) QueryLogs(_ context.Context, _ model.LogQueryOptions) ([]model.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.LogEntry(nil), r.entries...), nil
}

func (r *recordingLogs) CountLogs(_ context.Context, _ model.LogQueryOptions) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.entries)), nil
}

// action returns the first entry recorded for actionType.
func (r *recordingLogs) action(actionType string) (model.LogEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ActionType == actionType {
			return e, true
		}
	}
	return model.LogEntry{}, false
}
