package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exportlens/internal/structures"
)

func TestHealth_ReturnsOK(t *testing.T) {
	hc := NewHealthController(&structures.Config{Upload: structures.UploadConfig{Stage: true}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
	assert.Equal(t, []interface{}{"tiktok", "instagram", "youtube"}, resp["platforms"])
	assert.Equal(t, true, resp["staging"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(&structures.Config{})

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0h0m0s"},
		{59 * time.Second, "0h0m59s"},
		{61 * time.Minute, "1h1m0s"},
		{49*time.Hour + 2*time.Minute + 3*time.Second, "49h2m3s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}
