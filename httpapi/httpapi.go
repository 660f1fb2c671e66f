// Package httpapi exposes a small JSON status/control surface standing in
// for the "visualization shell" boundary described in spec §1/§6: a
// browser-hosted front end can poll GET /stats and GET /vehicles, and
// drive the core with POST /step and POST /accident. The core itself stays
// an in-process library (spec §5); this package is an optional host
// adapter, not something model depends on.
package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/trafficlab/microsim/config"
	"github.com/trafficlab/microsim/model"
)

var log = logrus.WithField("module", "httpapi")

// Handler serves the status/control endpoints. mu must be the same lock
// the host's own Step-calling loop (if any) uses, since model.Model is not
// safe for concurrent use (spec §5: the host owns serialization).
type Handler struct {
	mu  *sync.Mutex
	m   *model.Model
	cfg *config.SimulationConfig
}

// NewHandler builds the status/control mux. cfg is read each time POST
// /step is called, so a live-updated config (e.g. from a control panel)
// takes effect on the next step.
func NewHandler(m *model.Model, cfg *config.SimulationConfig, mu *sync.Mutex) http.Handler {
	h := &Handler{mu: mu, m: m, cfg: cfg}
	mux := http.NewServeMux()
	mux.HandleFunc("/stats", h.handleStats)
	mux.HandleFunc("/vehicles", h.handleVehicles)
	mux.HandleFunc("/step", h.handleStep)
	mux.HandleFunc("/accident", h.handleAccident)
	return mux
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.mu.Lock()
	snap := h.m.Stats()
	h.mu.Unlock()
	writeJSON(w, snap)
}

func (h *Handler) handleVehicles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.mu.Lock()
	vehicles := h.m.Vehicles()
	h.mu.Unlock()
	writeJSON(w, vehicles)
}

func (h *Handler) handleStep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.mu.Lock()
	h.m.Step(*h.cfg)
	snap := h.m.Stats()
	h.mu.Unlock()
	writeJSON(w, snap)
}

func (h *Handler) handleAccident(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.mu.Lock()
	started := h.m.TriggerAccident(model.RealIncidentClock{})
	h.mu.Unlock()
	writeJSON(w, map[string]bool{"started": started})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("encode response: %v", err)
	}
}
