package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/lottolab/internal/database"
	"github.com/aristath/lottolab/internal/version"
)

// SystemHandlers serves the system health endpoint the dashboard status
// widget polls.
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	databases   []*database.DB
}

// NewSystemHandlers creates system handlers over the given databases.
func NewSystemHandlers(log zerolog.Logger, databases ...*database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		startupTime: time.Now(),
		databases:   databases,
	}
}

type healthResponse struct {
	Status        string            `json:"status"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	CPUPercent    float64           `json:"cpu_percent"`
	MemoryPercent float64           `json:"memory_percent"`
	Databases     map[string]string `json:"databases"`
}

// HandleHealth handles GET /api/system/health
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startupTime).Seconds()),
		Databases:     make(map[string]string, len(h.databases)),
	}

	// CPU and memory are best-effort; a sampling failure does not degrade
	// the health status.
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		resp.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		resp.MemoryPercent = vm.UsedPercent
	}

	for _, db := range h.databases {
		if err := db.Conn().Ping(); err != nil {
			resp.Databases[db.Name()] = "unreachable"
			resp.Status = "degraded"
		} else {
			resp.Databases[db.Name()] = "ok"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleVersion handles GET /api/system/version
func (h *SystemHandlers) HandleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"version": version.Version})
}
