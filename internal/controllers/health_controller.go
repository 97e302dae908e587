package controllers

import (
	"fmt"
	"net/http"
	"time"

	"exportlens/internal/models"
	"exportlens/internal/structures"
)

type HealthController struct {
	conf      *structures.Config
	startTime time.Time
}

type healthResponse struct {
	Status        string            `json:"status"`
	Uptime        string            `json:"uptime"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Platforms     []models.Platform `json:"platforms"`
	Staging       bool              `json:"staging"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Platforms:     models.Platforms,
		Staging:       hc.conf.Upload.Stage,
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(conf *structures.Config) *HealthController {
	return &HealthController{
		conf:      conf,
		startTime: time.Now(),
	}
}
