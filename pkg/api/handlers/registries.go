package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/registryops/eppproxy/internal/proxy"
)

// RegistriesHandler serves registry session status.
type RegistriesHandler struct {
	proxy *proxy.Proxy
}

// NewRegistriesHandler creates the handler.
func NewRegistriesHandler(p *proxy.Proxy) *RegistriesHandler {
	return &RegistriesHandler{proxy: p}
}

// List returns the status of every configured registry.
func (h *RegistriesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.proxy.StatusAll())
}

// Get returns one registry's status.
func (h *RegistriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, err := h.proxy.Status(id)
	if err != nil {
		NotFound(w, "unknown registry "+id)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
