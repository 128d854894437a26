//go:build !integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guttosm/college-order-service/internal/email"
	"github.com/guttosm/college-order-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInitializeServices(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(upstream.Close)

	t.Run("memory only", func(t *testing.T) {
		components, err := InitializeServices(testConfig(), nil)
		require.NoError(t, err)
		t.Cleanup(components.Stop)

		_, ok := components.Catalog.College("michiganstate")
		assert.True(t, ok)
		assert.IsType(t, email.NoopSender{}, components.Sender)
		assert.Nil(t, components.Auth)
		assert.NotNil(t, components.Upstream)
		assert.Empty(t, components.CircuitBreakers)
	})

	t.Run("email, admin and upstream configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.Email.Enabled = true
		cfg.Email.ServiceID = "service"
		cfg.Email.PublicKey = "public"
		cfg.Email.TemplateIDProd = "template_prod"
		cfg.Auth.AdminUsername = "admin"
		cfg.Auth.AdminPasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
		cfg.Auth.JWTSecretKey = "test-secret-key-at-least-16"
		cfg.Upstream.BaseURL = upstream.URL

		components, err := InitializeServices(cfg, nil)
		require.NoError(t, err)
		t.Cleanup(components.Stop)

		assert.IsType(t, &email.EmailJSSender{}, components.Sender)
		assert.NotNil(t, components.Auth)
		assert.Contains(t, components.CircuitBreakers, "emailjs")
		assert.Contains(t, components.CircuitBreakers, "college_api")
	})

	t.Run("database repositories are used", func(t *testing.T) {
		packs := new(mocks.MockPackSizesRepositoryInterface)
		db := &DatabaseComponents{
			PackSizesRepo: packs,
			OrdersRepo:    new(mocks.MockOrdersRepositoryInterface),
			DraftsRepo:    new(mocks.MockDraftsRepositoryInterface),
		}

		components, err := InitializeServices(testConfig(), db)
		require.NoError(t, err)
		t.Cleanup(components.Stop)

		packs.On("List", mock.Anything, 5).Return(nil, nil).Once()
		_, err = components.PackSizes.List(context.Background(), 5)
		assert.NoError(t, err)
		packs.AssertExpectations(t)
	})

	t.Run("catalog file error", func(t *testing.T) {
		cfg := testConfig()
		cfg.Catalog.File = "/nonexistent/catalog.yaml"

		components, err := InitializeServices(cfg, nil)
		assert.Error(t, err)
		assert.Nil(t, components)
	})
}
