//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const confirmPath = "/api/v1/colleges/michiganstate/drafts/d1/actions/confirm"

// confirmRouter counts how many confirms reach the handler, the way the
// order email would be sent.
func confirmRouter(t *testing.T, cfg IdempotencyConfig, status int) (*gin.Engine, *int32) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var sent int32
	router := gin.New()
	router.Use(RequestID())
	router.POST("/api/v1/colleges/:college/drafts/:id/actions/:action", Idempotency(cfg), func(c *gin.Context) {
		n := atomic.AddInt32(&sent, 1)
		c.JSON(status, gin.H{"emails_sent": n})
	})
	router.GET("/api/v1/colleges/:college/drafts/:id", Idempotency(cfg), func(c *gin.Context) {
		atomic.AddInt32(&sent, 1)
		c.Status(http.StatusOK)
	})
	return router, &sent
}

func post(router http.Handler, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, confirmPath, strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		firstKey     string
		secondKey    string
		secondBody   string
		wantSent     int32
		wantReplayed bool
	}{
		{name: "same key replays the first confirm", status: http.StatusOK, firstKey: "k1", secondKey: "k1", wantSent: 1, wantReplayed: true},
		{name: "different key runs again", status: http.StatusOK, firstKey: "k1", secondKey: "k2", wantSent: 2},
		{name: "same key with another body runs again", status: http.StatusOK, firstKey: "k1", secondKey: "k1", secondBody: `{"x":1}`, wantSent: 2},
		{name: "no key runs every time", status: http.StatusOK, wantSent: 2},
		{name: "failed confirm is not stored", status: http.StatusBadGateway, firstKey: "k1", secondKey: "k1", wantSent: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultIdempotencyConfig()
			defer cfg.Cache.Stop()
			router, sent := confirmRouter(t, cfg, tt.status)

			first := post(router, tt.firstKey, "")
			second := post(router, tt.secondKey, tt.secondBody)

			assert.Equal(t, tt.wantSent, atomic.LoadInt32(sent))
			assert.Equal(t, tt.status, second.Code)
			if tt.wantReplayed {
				assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
				assert.Equal(t, first.Body.String(), second.Body.String())
				assert.Equal(t, first.Header().Get("Content-Type"), second.Header().Get("Content-Type"))
			} else {
				assert.Empty(t, second.Header().Get(IdempotencyReplayedHeader))
			}
		})
	}
}

func TestIdempotency_ConcurrentRepeatConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := DefaultIdempotencyConfig()
	defer cfg.Cache.Stop()

	entered := make(chan struct{})
	release := make(chan struct{})
	router := gin.New()
	router.POST(confirmPath, Idempotency(cfg), func(c *gin.Context) {
		close(entered)
		<-release
		c.Status(http.StatusOK)
	})

	var wg sync.WaitGroup
	var first *httptest.ResponseRecorder
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = post(router, "double-click", "")
	}()

	<-entered
	second := post(router, "double-click", "")
	close(release)
	wg.Wait()

	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "conflict")
	require.NotNil(t, first)
	assert.Equal(t, http.StatusOK, first.Code)

	third := post(router, "double-click", "")
	assert.Equal(t, "true", third.Header().Get(IdempotencyReplayedHeader))
}

func TestIdempotency_IgnoresReads(t *testing.T) {
	cfg := DefaultIdempotencyConfig()
	defer cfg.Cache.Stop()
	router, sent := confirmRouter(t, cfg, http.StatusOK)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/colleges/michiganstate/drafts/d1", nil)
		req.Header.Set(IdempotencyKeyHeader, "k1")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(sent))
}

func TestIdempotency_Disabled(t *testing.T) {
	router, sent := confirmRouter(t, IdempotencyConfig{Enabled: false}, http.StatusOK)

	post(router, "k1", "")
	post(router, "k1", "")
	assert.Equal(t, int32(2), atomic.LoadInt32(sent))
}
