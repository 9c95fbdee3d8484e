package integration_test

import (
	"io"
	"net/http"
	"testing"

	"taskify_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCORS_Preflight - preflight отвечает сам и не доходит до авторизации и роутинга
func TestCORS_Preflight(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.Server.URL+"/api/v1/projects/some-id", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Empty(t, body)
	assert.NotEmpty(t, res.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPatch, res.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "300", res.Header.Get("Access-Control-Max-Age"))
}

func TestCORS_SimpleRequestPassesThrough(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)
	assert.NotEmpty(t, res.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, res.Header.Get("Access-Control-Expose-Headers"), "X-Request-Id")
}
