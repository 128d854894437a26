// Package collegeapi is a client for the upstream college order API.
package collegeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/cache"
	"github.com/guttosm/college-order-service/internal/circuitbreaker"
	"github.com/guttosm/college-order-service/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrNotConfigured is returned when no upstream base URL is set.
	ErrNotConfigured = errors.New("college api not configured")
	// ErrMissingTemplateID is returned when an order template id is empty.
	ErrMissingTemplateID = errors.New("order template id is required")
	// ErrCollegeNotFound is returned when no upstream college matches an id.
	ErrCollegeNotFound = errors.New("college not found upstream")
	// ErrInvalidImageURL is returned for image URLs that cannot be proxied.
	ErrInvalidImageURL = errors.New("invalid image url")
)

const (
	maxResponseText = 500
	maxImageBytes   = 10 << 20
	warmConcurrency = 4
	userAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// CollegeData is a college as listed by the upstream API.
//
// @Description College listed by the upstream API
type CollegeData struct {
	SchoolID         string  `json:"school_ID" example:"1042"`
	SchoolName       string  `json:"schoolName" example:"Michigan State"`
	LogoURL          *string `json:"logoUrl,omitempty"`
	OrderNumTemplate string  `json:"orderNumTemplate" example:"MSU-2024"`
}

// OrderItem is one product row of an upstream order template.
//
// @Description Product row of an upstream order template
type OrderItem struct {
	OrderNum   string   `json:"ORDER_NUM"`
	DesignNum  string   `json:"DESIGN_NUM"`
	ItemID     string   `json:"ITEM_ID"`
	ShirtName  *string  `json:"SHIRTNAME,omitempty"`
	Descript   *string  `json:"DESCRIPT,omitempty"`
	ProductURL *string  `json:"productUrl,omitempty"`
	Size1      *string  `json:"size1,omitempty"`
	Size2      *string  `json:"size2,omitempty"`
	Size3      *string  `json:"size3,omitempty"`
	Size4      *string  `json:"size4,omitempty"`
	Size5      *string  `json:"size5,omitempty"`
	StyleNum   *string  `json:"STYLE_NUM,omitempty"`
	ColorInit  *string  `json:"COLOR_INIT,omitempty"`
	UnitPrice  *float64 `json:"UNITPRICE,omitempty"`
}

// Image is a fetched product image.
type Image struct {
	ContentType string
	Data        []byte
}

// APIError describes a failed upstream call.
//
// @Description Upstream API failure
type APIError struct {
	Message      string `json:"message"`
	Status       int    `json:"status,omitempty"`
	StatusText   string `json:"statusText,omitempty"`
	URL          string `json:"url,omitempty"`
	ResponseText string `json:"responseText,omitempty"`
	Err          string `json:"error,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the upstream college API. Concurrent identical requests
// share one upstream call and list responses are cached for a TTL.
type Client struct {
	baseURL        string
	http           *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	group          singleflight.Group
	colleges       cache.Cache[[]CollegeData]
	items          cache.Cache[[]OrderItem]
}

// New creates a client. httpClient and cb may be nil.
func New(cfg config.UpstreamConfig, httpClient *http.Client, cb *circuitbreaker.CircuitBreaker) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		http:           httpClient,
		circuitBreaker: cb,
		colleges:       cache.NewSharded[[]CollegeData]("upstream_colleges", 1, ttl, 1),
		items:          cache.NewSharded[[]OrderItem]("upstream_order_items", 256, ttl, 4),
	}
}

// Stop releases the response caches.
func (c *Client) Stop() {
	c.colleges.Stop()
	c.items.Stop()
}

// GetCircuitBreaker returns the breaker guarding upstream calls, if any.
func (c *Client) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return c.circuitBreaker
}

// Colleges lists every upstream college.
func (c *Client) Colleges(ctx context.Context) ([]CollegeData, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}
	const key = "all"
	if cached, ok := c.colleges.Get(key); ok {
		return cached, nil
	}

	v, err, _ := c.group.Do("colleges", func() (interface{}, error) {
		body, err := c.getJSON(ctx, "colleges", c.baseURL+"/colleges")
		if err != nil {
			return nil, err
		}
		colleges, err := decodeList[CollegeData](body, "data", "colleges")
		if err != nil {
			return nil, err
		}
		c.colleges.Set(key, colleges)
		return colleges, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]CollegeData), nil
}

// College finds an upstream college by school id or order template.
func (c *Client) College(ctx context.Context, id string) (*CollegeData, error) {
	colleges, err := c.Colleges(ctx)
	if err != nil {
		return nil, err
	}
	for i := range colleges {
		if colleges[i].SchoolID == id || colleges[i].OrderNumTemplate == id {
			return &colleges[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCollegeNotFound, id)
}

// OrderItems returns the product rows of an order template.
func (c *Client) OrderItems(ctx context.Context, templateID string) ([]OrderItem, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}
	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		return nil, ErrMissingTemplateID
	}
	if cached, ok := c.items.Get(templateID); ok {
		return cached, nil
	}

	v, err, _ := c.group.Do("items:"+templateID, func() (interface{}, error) {
		body, err := c.getJSON(ctx, "college", c.baseURL+"/college?id="+url.QueryEscape(templateID))
		if err != nil {
			return nil, err
		}
		items, err := decodeList[OrderItem](body, "data", "items")
		if err != nil {
			return nil, err
		}
		c.items.Set(templateID, items)
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]OrderItem), nil
}

// Warm fetches the order items of every template concurrently so the first
// storefront visit is served from cache. Failures are logged, not returned.
func (c *Client) Warm(ctx context.Context, templateIDs []string) error {
	if c.baseURL == "" {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	for _, id := range templateIDs {
		if id == "" {
			continue
		}
		id := id
		g.Go(func() error {
			if _, err := c.OrderItems(gctx, id); err != nil {
				log.Warn().Err(err).Str("template_id", id).Msg("Failed to warm order items")
			}
			return nil
		})
	}
	return g.Wait()
}

// Image fetches a product image for the proxy endpoint.
func (c *Client) Image(ctx context.Context, rawURL string) (*Image, error) {
	fixed := FixImageURL(rawURL)
	u, err := url.Parse(fixed)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidImageURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest("image", 0)
		return nil, &APIError{Message: "Failed to fetch image: " + err.Error(), URL: u.String(), Err: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	metrics.RecordUpstreamRequest("image", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError("Failed to fetch image", u.String(), resp)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return &Image{ContentType: contentType, Data: data}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, target string) ([]byte, error) {
	var body []byte
	call := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			metrics.RecordUpstreamRequest(endpoint, 0)
			return &APIError{Message: fmt.Sprintf("Failed to fetch %s: %v", endpoint, err), URL: target, Err: err.Error()}
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		metrics.RecordUpstreamRequest(endpoint, resp.StatusCode)

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return newAPIError("Failed to fetch "+endpoint, target, resp)
		}
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read %s response: %w", endpoint, err)
		}
		return nil
	}

	if c.circuitBreaker == nil {
		return body, call()
	}
	err := c.circuitBreaker.Execute(ctx, call)
	return body, err
}

func newAPIError(prefix, target string, resp *http.Response) *APIError {
	text, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseText))
	responseText := string(text)
	if err != nil {
		responseText = "Could not read response"
	}
	statusText := http.StatusText(resp.StatusCode)
	return &APIError{
		Message:      fmt.Sprintf("%s: %d %s", prefix, resp.StatusCode, statusText),
		Status:       resp.StatusCode,
		StatusText:   statusText,
		URL:          target,
		ResponseText: responseText,
	}
}

// decodeList accepts a bare JSON array or an object wrapping the array in
// one of keys. Any other shape yields an empty list.
func decodeList[T any](body []byte, keys ...string) ([]T, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var list []T
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return list, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	for _, key := range keys {
		raw, ok := wrapped[key]
		if !ok || !strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
			continue
		}
		var list []T
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}
		return list, nil
	}
	log.Warn().Strs("expected_keys", keys).Msg("Unexpected upstream response format")
	return []T{}, nil
}

// FixImageURL trims raw and repairs "http:" without slashes.
func FixImageURL(raw string) string {
	fixed := strings.TrimSpace(raw)
	if strings.HasPrefix(fixed, "http:") && !strings.HasPrefix(fixed, "http://") {
		fixed = "http://" + strings.TrimLeft(strings.TrimPrefix(fixed, "http:"), "/")
	}
	return fixed
}

// ProxiedImageURL returns the proxy path serving raw. Data and blob URLs
// are returned as is; an empty URL yields "".
func ProxiedImageURL(raw string) string {
	fixed := FixImageURL(raw)
	if fixed == "" {
		return ""
	}
	if strings.HasPrefix(fixed, "data:") || strings.HasPrefix(fixed, "blob:") {
		return fixed
	}
	return "/api/v1/proxy-image?url=" + url.QueryEscape(fixed)
}
