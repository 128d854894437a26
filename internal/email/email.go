// Package email delivers order emails through EmailJS.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/circuitbreaker"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/rs/zerolog/log"
)

// ErrSendFailed is returned when the email provider rejects a message.
var ErrSendFailed = errors.New("email send failed")

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 500

// Sender delivers the order email built from params. host is the storefront
// host the order came from and selects the template.
type Sender interface {
	Send(ctx context.Context, params model.TemplateParams, host string) error
}

type sendRequest struct {
	ServiceID      string               `json:"service_id"`
	TemplateID     string               `json:"template_id"`
	UserID         string               `json:"user_id"`
	AccessToken    string               `json:"accessToken,omitempty"`
	TemplateParams model.TemplateParams `json:"template_params"`
}

// EmailJSSender posts order emails to the EmailJS REST API. Each send is a
// single attempt.
type EmailJSSender struct {
	cfg            config.EmailConfig
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewEmailJSSender creates a sender. cb may be nil.
func NewEmailJSSender(cfg config.EmailConfig, client *http.Client, cb *circuitbreaker.CircuitBreaker) *EmailJSSender {
	if cfg.Endpoint == "" {
		cfg.Endpoint = config.DefaultEmailJSEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &EmailJSSender{cfg: cfg, client: client, circuitBreaker: cb}
}

// TemplateFor returns the template id used for orders from host.
func (s *EmailJSSender) TemplateFor(host string) string {
	if s.cfg.TemplateIDDev != "" && IsDevHost(host, s.cfg.DevHosts) {
		return s.cfg.TemplateIDDev
	}
	return s.cfg.TemplateIDProd
}

// Send posts params to EmailJS.
func (s *EmailJSSender) Send(ctx context.Context, params model.TemplateParams, host string) error {
	if s.circuitBreaker == nil {
		return s.send(ctx, params, host)
	}
	return s.circuitBreaker.Execute(ctx, func() error {
		return s.send(ctx, params, host)
	})
}

func (s *EmailJSSender) send(ctx context.Context, params model.TemplateParams, host string) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:      s.cfg.ServiceID,
		TemplateID:     s.TemplateFor(host),
		UserID:         s.cfg.PublicKey,
		AccessToken:    s.cfg.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: status %d: %s", ErrSendFailed, resp.StatusCode, strings.TrimSpace(string(text)))
	}

	log.Info().
		Str("school", params.SchoolName).
		Str("store_number", params.StoreNumber).
		Str("total_units", params.TotalUnits).
		Msg("Order email sent")
	return nil
}

// GetCircuitBreaker returns the breaker guarding sends, if any.
func (s *EmailJSSender) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return s.circuitBreaker
}

// IsDevHost reports whether host is a local or configured development
// host. A port suffix is ignored.
func IsDevHost(host string, devHosts []string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	if host == "localhost" || host == "127.0.0.1" || host == "::1" || strings.HasSuffix(host, ".local") {
		return true
	}
	for _, dev := range devHosts {
		if strings.EqualFold(host, dev) {
			return true
		}
	}
	return false
}

// NoopSender logs order emails instead of sending them.
type NoopSender struct{}

// Send logs the email payload.
func (NoopSender) Send(_ context.Context, params model.TemplateParams, host string) error {
	log.Info().
		Str("host", host).
		Str("school", params.SchoolName).
		Str("store_number", params.StoreNumber).
		Int("categories", len(params.Categories)).
		Str("total_units", params.TotalUnits).
		Msg("Email sending disabled, order email not sent")
	return nil
}
