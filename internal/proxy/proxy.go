// Package proxy is the uniform front door over the router and the
// per-registry sessions: one Call with a registry selector and a typed
// request. The API layer is its only consumer.
package proxy

import (
	"context"
	"fmt"

	"github.com/registryops/eppproxy/internal/commands"
	"github.com/registryops/eppproxy/internal/dac"
	"github.com/registryops/eppproxy/internal/router"
	"github.com/registryops/eppproxy/internal/session"
)

// Selector picks the target registry: by id, or by a domain name routed
// through the zone index. Exactly one field should be set; the id wins
// when both are.
type Selector struct {
	RegistryID string
	Domain     string
}

// Proxy is stateless apart from the router handle and the per-registry
// DAC clients.
type Proxy struct {
	router *router.Router
	dacs   map[string]*dac.Client
}

// New builds the facade. dacs maps registry ids to their DAC clients and
// may be nil.
func New(r *router.Router, dacs map[string]*dac.Client) *Proxy {
	return &Proxy{router: r, dacs: dacs}
}

// Call resolves the selector and runs the request, over the registry's
// session for EPP operations or its DAC client for availability-checker
// operations.
func (p *Proxy) Call(ctx context.Context, sel Selector, req commands.Request) (*commands.Result, error) {
	sess, registryID, err := p.resolve(sel)
	if err != nil {
		return nil, err
	}

	if commands.IsDAC(req.Op()) {
		client, ok := p.dacs[registryID]
		if !ok {
			return nil, commands.Unsupported(fmt.Sprintf("registry %q has no dac endpoints", registryID))
		}
		payload, err := client.Do(ctx, req)
		if err != nil {
			return nil, err
		}
		return &commands.Result{Payload: payload}, nil
	}

	return sess.Submit(ctx, req)
}

// Session resolves a selector to its session without running anything;
// the poll stream uses this to watch one registry.
func (p *Proxy) Session(sel Selector) (*session.Session, error) {
	sess, _, err := p.resolve(sel)
	return sess, err
}

// RegistryStatus is the observable state of one registered session.
type RegistryStatus struct {
	ID       string   `json:"id"`
	State    string   `json:"state"`
	ServerID string   `json:"server_id,omitempty"`
	Zones    []string `json:"zones,omitempty"`
}

// Status reports one registry's session state.
func (p *Proxy) Status(registryID string) (RegistryStatus, error) {
	sess, ok := p.router.ClientByID(registryID)
	if !ok {
		return RegistryStatus{}, commands.Errf("unknown registry %q", registryID)
	}
	return statusOf(sess), nil
}

// StatusAll reports every registered registry.
func (p *Proxy) StatusAll() []RegistryStatus {
	ids := p.router.Registries()
	out := make([]RegistryStatus, 0, len(ids))
	for _, id := range ids {
		if sess, ok := p.router.ClientByID(id); ok {
			out = append(out, statusOf(sess))
		}
	}
	return out
}

func statusOf(sess *session.Session) RegistryStatus {
	st := RegistryStatus{
		ID:    sess.RegistryID(),
		State: sess.State().String(),
		Zones: sess.Zones(),
	}
	if fs := sess.Features(); fs != nil {
		st.ServerID = fs.ServerID()
	}
	return st
}

func (p *Proxy) resolve(sel Selector) (*session.Session, string, error) {
	if sel.RegistryID != "" {
		sess, ok := p.router.ClientByID(sel.RegistryID)
		if !ok {
			return nil, "", commands.Errf("unknown registry %q", sel.RegistryID)
		}
		return sess, sel.RegistryID, nil
	}
	if sel.Domain != "" {
		sess, registryID, ok := p.router.ClientByDomain(sel.Domain)
		if !ok {
			return nil, "", commands.Errf("no registry serves %q", sel.Domain)
		}
		return sess, registryID, nil
	}
	return nil, "", commands.Errf("selector needs a registry id or a domain name")
}
