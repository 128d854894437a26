//go:build !integration

package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/mocks"
	"github.com/guttosm/college-order-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	auth := testAuthService(t)
	logs := &recordingLogs{}
	cfg := DefaultRouterConfig()
	cfg.AuthService = auth
	cfg.LoggingService = logs
	router := NewRouter(Handlers{}, nil, cfg)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		checkResponse  func(*testing.T, []byte)
	}{
		{
			name:           "valid credentials",
			body:           `{"username":"admin","password":"password123"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           `{"username":"admin","password":"nope"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown user",
			body:           `{"username":"root","password":"password123"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			body:           `{"username":"admin"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{"username":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/v1/admin/login", tt.body, nil)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var resp dto.LoginResponse
			decodeData(t, w, &resp)
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, testAdminUser, resp.Subject)
			assert.Equal(t, int64((15 * time.Minute).Seconds()), resp.ExpiresIn)

			claims, err := auth.ValidateToken(context.Background(), resp.Token)
			require.NoError(t, err)
			assert.Equal(t, testAdminUser, claims.Username)
		})
	}

	assert.Eventually(t, func() bool {
		login, okLogin := logs.action("login")
		failed, okFailed := logs.action("login_failed")
		return okLogin && login.Actor == testAdminUser && okFailed && failed.Level == "error"
	}, time.Second, 10*time.Millisecond)
}

func TestAuthHandler_LoginDisabled(t *testing.T) {
	auth := service.NewAuthService(config.AuthConfig{JWTSecretKey: "test-secret-key-at-least-16"})
	cfg := DefaultRouterConfig()
	cfg.AuthService = auth
	router := NewRouter(Handlers{}, nil, cfg)

	w := doRequest(router, http.MethodPost, "/api/v1/admin/login", `{"username":"admin","password":"x"}`, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAuthHandler_LoginUnexpectedError(t *testing.T) {
	auth := &mocks.MockAuthService{}
	auth.On("Login", mock.Anything, "admin", "x").Return(nil, context.DeadlineExceeded).Once()
	cfg := DefaultRouterConfig()
	cfg.AuthService = auth
	router := NewRouter(Handlers{}, nil, cfg)

	w := doRequest(router, http.MethodPost, "/api/v1/admin/login", `{"username":"admin","password":"x"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	auth.AssertExpectations(t)
}
