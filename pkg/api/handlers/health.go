package handlers

import (
	"net/http"

	"github.com/registryops/eppproxy/internal/proxy"
	"github.com/registryops/eppproxy/pkg/auditlog"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	proxy *proxy.Proxy
	audit auditlog.Store
}

// NewHealthHandler creates the handler. audit may be nil.
func NewHealthHandler(p *proxy.Proxy, audit auditlog.Store) *HealthHandler {
	return &HealthHandler{proxy: p, audit: audit}
}

// Liveness reports that the process is up. Always 200.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthyResponse(nil))
}

// Readiness reports whether the proxy can take traffic: the audit sink
// accepts writes and at least one registry session is ready (a proxy
// with no registries configured is trivially ready).
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	statuses := h.proxy.StatusAll()

	if h.audit != nil {
		if err := h.audit.Healthcheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable,
				unhealthyResponse("audit sink: "+err.Error(), statuses))
			return
		}
	}

	if len(statuses) == 0 {
		writeJSON(w, http.StatusOK, healthyResponse(statuses))
		return
	}
	for _, st := range statuses {
		if st.State == "ready" {
			writeJSON(w, http.StatusOK, healthyResponse(statuses))
			return
		}
	}
	writeJSON(w, http.StatusServiceUnavailable,
		unhealthyResponse("no registry session is ready", statuses))
}
