//go:build !integration

package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/circuitbreaker"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() model.TemplateParams {
	return model.TemplateParams{
		Company:     "Campus Store",
		SchoolName:  "Michigan State",
		StoreNumber: "42",
		ManagerName: "Pat",
		Date:        "2024-03-01",
		Categories: []model.EmailCategory{
			{Category: "Hats", Items: []model.EmailItem{{SKU: "M100", Name: "Cap", Qty: "6"}}},
		},
		TotalUnits:    "6",
		ProviderEmail: "orders@example.com",
	}
}

func testConfig(endpoint string) config.EmailConfig {
	return config.EmailConfig{
		Enabled:        true,
		Endpoint:       endpoint,
		ServiceID:      "service_1",
		PublicKey:      "public_key",
		PrivateKey:     "private_key",
		TemplateIDDev:  "template_dev",
		TemplateIDProd: "template_prod",
		DevHosts:       []string{"staging.example.com"},
		Timeout:        time.Second,
	}
}

func TestEmailJSSender_Send(t *testing.T) {
	var got sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	sender := NewEmailJSSender(testConfig(server.URL), nil, nil)
	require.NoError(t, sender.Send(context.Background(), testParams(), "orders.example.com"))

	assert.Equal(t, "service_1", got.ServiceID)
	assert.Equal(t, "template_prod", got.TemplateID)
	assert.Equal(t, "public_key", got.UserID)
	assert.Equal(t, "private_key", got.AccessToken)
	assert.Equal(t, testParams(), got.TemplateParams)
}

func TestEmailJSSender_SendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The template ID is invalid"))
	}))
	defer server.Close()

	cb := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute, Name: "email"})
	sender := NewEmailJSSender(testConfig(server.URL), nil, cb)

	err := sender.Send(context.Background(), testParams(), "localhost:3000")
	require.ErrorIs(t, err, ErrSendFailed)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "The template ID is invalid")

	err = sender.Send(context.Background(), testParams(), "localhost:3000")
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Same(t, cb, sender.GetCircuitBreaker())
}

func TestEmailJSSender_TemplateFor(t *testing.T) {
	sender := NewEmailJSSender(testConfig(""), nil, nil)

	tests := []struct {
		host string
		want string
	}{
		{host: "localhost", want: "template_dev"},
		{host: "localhost:3000", want: "template_dev"},
		{host: "127.0.0.1:8080", want: "template_dev"},
		{host: "shop.local", want: "template_dev"},
		{host: "STAGING.example.com", want: "template_dev"},
		{host: "orders.example.com", want: "template_prod"},
		{host: "", want: "template_prod"},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, sender.TemplateFor(tt.host))
		})
	}

	t.Run("no dev template falls back to prod", func(t *testing.T) {
		cfg := testConfig("")
		cfg.TemplateIDDev = ""
		assert.Equal(t, "template_prod", NewEmailJSSender(cfg, nil, nil).TemplateFor("localhost"))
	})
}

func TestNoopSender(t *testing.T) {
	var s Sender = NoopSender{}
	assert.NoError(t, s.Send(context.Background(), testParams(), "localhost"))
}
