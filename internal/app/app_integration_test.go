//go:build integration

package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp_Integration(t *testing.T) {
	cfg := testConfig()
	cfg.Database = integrationDatabaseConfig(t)

	a, err := InitializeApp(cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	require.NotNil(t, a.Database)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var ready struct {
		Checks map[string]interface{} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ready))
	assert.Equal(t, "ok", ready.Checks["mongodb"])
	assert.Equal(t, "closed", ready.Checks["mongodb_drafts_circuit"])

	// Drafts are written through to MongoDB.
	w = httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/colleges/michiganstate/drafts", strings.NewReader("")))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
