package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/registryops/eppproxy/internal/commands"
	"github.com/registryops/eppproxy/internal/proxy"
)

// CommandsHandler exposes the typed command catalogue over HTTP. Each
// route decodes a JSON body into the matching request type, resolves
// the target registry and returns the result envelope plus payload.
type CommandsHandler struct {
	proxy *proxy.Proxy
}

// NewCommandsHandler creates the handler.
func NewCommandsHandler(p *proxy.Proxy) *CommandsHandler {
	return &CommandsHandler{proxy: p}
}

// commandResult is the JSON shape every command route responds with.
type commandResult struct {
	Code    int         `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Pending bool        `json:"pending,omitempty"`
	ClTRID  string      `json:"cl_trid,omitempty"`
	SvTRID  string      `json:"sv_trid,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// Routes mounts the command catalogue on r.
func (h *CommandsHandler) Routes(r chi.Router) {
	r.Route("/domains", func(r chi.Router) {
		r.Post("/check", h.handle(
			func() commands.Request { return &commands.DomainCheckRequest{} },
			func(req commands.Request) string {
				if ds := req.(*commands.DomainCheckRequest).Domains; len(ds) > 0 {
					return ds[0]
				}
				return ""
			}))
		r.Post("/claims-check", h.handle(
			func() commands.Request { return &commands.DomainClaimsCheckRequest{} },
			func(req commands.Request) string {
				if ds := req.(*commands.DomainClaimsCheckRequest).Domains; len(ds) > 0 {
					return ds[0]
				}
				return ""
			}))
		r.Post("/info", h.handle(
			func() commands.Request { return &commands.DomainInfoRequest{} },
			func(req commands.Request) string { return req.(*commands.DomainInfoRequest).Domain }))
		r.Post("/create", h.handle(
			func() commands.Request { return &commands.DomainCreateRequest{} },
			func(req commands.Request) string { return req.(*commands.DomainCreateRequest).Domain }))
		r.Post("/delete", h.handle(
			func() commands.Request { return &commands.DomainDeleteRequest{} },
			func(req commands.Request) string { return req.(*commands.DomainDeleteRequest).Domain }))
		r.Post("/update", h.handle(
			func() commands.Request { return &commands.DomainUpdateRequest{} },
			func(req commands.Request) string { return req.(*commands.DomainUpdateRequest).Domain }))
		r.Post("/renew", h.handle(
			func() commands.Request { return &commands.DomainRenewRequest{} },
			func(req commands.Request) string { return req.(*commands.DomainRenewRequest).Domain }))
		r.Post("/transfer", h.handle(
			func() commands.Request { return &commands.DomainTransferRequest{} },
			func(req commands.Request) string { return req.(*commands.DomainTransferRequest).Domain }))
		r.Post("/restore", h.handle(
			func() commands.Request { return &commands.DomainRestoreRequest{} },
			func(req commands.Request) string { return req.(*commands.DomainRestoreRequest).Domain }))
	})

	r.Route("/hosts", func(r chi.Router) {
		r.Post("/check", h.handle(
			func() commands.Request { return &commands.HostCheckRequest{} },
			func(req commands.Request) string {
				if hs := req.(*commands.HostCheckRequest).Hosts; len(hs) > 0 {
					return hs[0]
				}
				return ""
			}))
		r.Post("/info", h.handle(
			func() commands.Request { return &commands.HostInfoRequest{} },
			func(req commands.Request) string { return req.(*commands.HostInfoRequest).Host }))
		r.Post("/create", h.handle(
			func() commands.Request { return &commands.HostCreateRequest{} },
			func(req commands.Request) string { return req.(*commands.HostCreateRequest).Host }))
		r.Post("/delete", h.handle(
			func() commands.Request { return &commands.HostDeleteRequest{} },
			func(req commands.Request) string { return req.(*commands.HostDeleteRequest).Host }))
		r.Post("/update", h.handle(
			func() commands.Request { return &commands.HostUpdateRequest{} },
			func(req commands.Request) string { return req.(*commands.HostUpdateRequest).Host }))
	})

	// Contact ids carry no zone, so contact routes always need
	// ?registry=.
	r.Route("/contacts", func(r chi.Router) {
		r.Post("/check", h.handle(
			func() commands.Request { return &commands.ContactCheckRequest{} }, nil))
		r.Post("/info", h.handle(
			func() commands.Request { return &commands.ContactInfoRequest{} }, nil))
		r.Post("/create", h.handle(
			func() commands.Request { return &commands.ContactCreateRequest{} }, nil))
		r.Post("/delete", h.handle(
			func() commands.Request { return &commands.ContactDeleteRequest{} }, nil))
		r.Post("/update", h.handle(
			func() commands.Request { return &commands.ContactUpdateRequest{} }, nil))
		r.Post("/transfer", h.handle(
			func() commands.Request { return &commands.ContactTransferRequest{} }, nil))
	})

	r.Route("/poll", func(r chi.Router) {
		r.Post("/request", h.handle(
			func() commands.Request { return &commands.PollRequest{} }, nil))
		r.Post("/ack", h.handle(
			func() commands.Request { return &commands.PollAckRequest{} }, nil))
	})

	r.Post("/balance", h.handle(
		func() commands.Request { return &commands.BalanceInfoRequest{} }, nil))

	r.Route("/maintenance", func(r chi.Router) {
		r.Post("/list", h.handle(
			func() commands.Request { return &commands.MaintenanceListRequest{} }, nil))
		r.Post("/info", h.handle(
			func() commands.Request { return &commands.MaintenanceInfoRequest{} }, nil))
	})

	r.Route("/nominet", func(r chi.Router) {
		r.Post("/tag-list", h.handle(
			func() commands.Request { return &commands.NominetTagListRequest{} }, nil))
		r.Post("/handshake", h.handle(
			func() commands.Request { return &commands.NominetHandshakeRequest{} }, nil))
		r.Post("/release", h.handle(
			func() commands.Request { return &commands.NominetReleaseRequest{} },
			func(req commands.Request) string { return req.(*commands.NominetReleaseRequest).Domain }))
		r.Post("/lock", h.handle(
			func() commands.Request { return &commands.NominetLockRequest{} },
			func(req commands.Request) string { return req.(*commands.NominetLockRequest).Domain }))
	})

	r.Route("/eurid", func(r chi.Router) {
		r.Post("/hit-points", h.handle(
			func() commands.Request { return &commands.EuridHitPointsRequest{} }, nil))
		r.Post("/registration-limit", h.handle(
			func() commands.Request { return &commands.EuridRegistrationLimitRequest{} }, nil))
		r.Post("/dns-quality", h.handle(
			func() commands.Request { return &commands.EuridDNSQualityRequest{} },
			func(req commands.Request) string { return req.(*commands.EuridDNSQualityRequest).Domain }))
		r.Post("/dnssec-eligibility", h.handle(
			func() commands.Request { return &commands.EuridDNSSECEligibilityRequest{} },
			func(req commands.Request) string { return req.(*commands.EuridDNSSECEligibilityRequest).Domain }))
	})

	r.Route("/marks", func(r chi.Router) {
		r.Post("/check", h.handle(
			func() commands.Request { return &commands.MarkCheckRequest{} }, nil))
		r.Post("/info", h.handle(
			func() commands.Request { return &commands.MarkInfoRequest{} }, nil))
		r.Post("/create", h.handle(
			func() commands.Request { return &commands.MarkCreateRequest{} }, nil))
		r.Post("/update", h.handle(
			func() commands.Request { return &commands.MarkUpdateRequest{} }, nil))
		r.Post("/renew", h.handle(
			func() commands.Request { return &commands.MarkRenewRequest{} }, nil))
		r.Post("/transfer", h.handle(
			func() commands.Request { return &commands.MarkTransferRequest{} }, nil))
	})

	r.Route("/dac", func(r chi.Router) {
		r.Post("/domain", h.handle(
			func() commands.Request { return &commands.DACDomainRequest{} },
			func(req commands.Request) string { return req.(*commands.DACDomainRequest).Domain }))
		r.Post("/usage", h.handle(
			func() commands.Request { return &commands.DACUsageRequest{} }, nil))
		r.Post("/limits", h.handle(
			func() commands.Request { return &commands.DACLimitsRequest{} }, nil))
	})
}

// handle builds the handler for one command route. newReq produces an
// empty request to decode the body into; routing extracts a domain name
// from the decoded payload for zone-based registry resolution and may
// be nil for operations that carry none.
func (h *CommandsHandler) handle(newReq func() commands.Request, routing func(commands.Request) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := newReq()
		if err := decodeBody(r, req); err != nil {
			BadRequest(w, "invalid request body: "+err.Error())
			return
		}

		sel := proxy.Selector{
			RegistryID: r.URL.Query().Get("registry"),
			Domain:     r.URL.Query().Get("domain"),
		}
		if sel.RegistryID == "" && sel.Domain == "" && routing != nil {
			sel.Domain = routing(req)
		}
		if sel.RegistryID == "" && sel.Domain == "" {
			BadRequest(w, "target registry is ambiguous: pass ?registry= or ?domain=")
			return
		}

		result, err := h.proxy.Call(r.Context(), sel, req)
		if err != nil {
			WriteCommandError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, commandResult{
			Code:    result.Envelope.Code,
			Message: result.Envelope.Message,
			Pending: result.Envelope.Pending,
			ClTRID:  result.Envelope.ClTRID,
			SvTRID:  result.Envelope.SvTRID,
			Payload: result.Payload,
		})
	}
}

// decodeBody fills req from the request body. An empty body is fine;
// many operations take no parameters.
func decodeBody(r *http.Request, req commands.Request) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
