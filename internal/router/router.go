// Package router maps registry ids and domain names to their sessions.
// Registrations happen once at startup; lookups are concurrent and
// read-only at steady state.
package router

import (
	"fmt"
	"strings"
	"sync"

	"github.com/registryops/eppproxy/internal/session"
)

// Router holds the two lookup indexes: registry id to session, and
// lowercased zone suffix to session. Zones overlap by suffix; each exact
// label set is owned by at most one session, and re-registering a zone
// overwrites the earlier owner.
type Router struct {
	mu    sync.RWMutex
	byID  map[string]*session.Session
	zones map[string]zoneEntry
}

type zoneEntry struct {
	sess       *session.Session
	registryID string
}

// New creates an empty router.
func New() *Router {
	return &Router{
		byID:  make(map[string]*session.Session),
		zones: make(map[string]zoneEntry),
	}
}

// Register adds a session under its registry id and all of its zones.
// Registering a duplicate registry id is a configuration error.
func (r *Router) Register(sess *session.Session) error {
	id := sess.RegistryID()
	if id == "" {
		return fmt.Errorf("session has no registry id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byID[id]; dup {
		return fmt.Errorf("registry %q is already registered", id)
	}
	r.byID[id] = sess
	for _, zone := range sess.Zones() {
		zone = strings.ToLower(strings.Trim(zone, "."))
		if zone == "" {
			continue
		}
		r.zones[zone] = zoneEntry{sess: sess, registryID: id}
	}
	return nil
}

// ClientByID returns the session for a registry id.
func (r *Router) ClientByID(id string) (*session.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.byID[id]
	return sess, ok
}

// ClientByDomain resolves a domain name to the session owning its
// longest matching zone suffix. For www.example.co.uk with zones
// {uk, co.uk} the co.uk owner wins.
func (r *Router) ClientByDomain(domain string) (*session.Session, string, bool) {
	labels := strings.Split(strings.ToLower(strings.Trim(domain, ".")), ".")

	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := 0; i < len(labels); i++ {
		suffix := strings.Join(labels[i:], ".")
		if entry, ok := r.zones[suffix]; ok {
			return entry.sess, entry.registryID, true
		}
	}
	return nil, "", false
}

// Registries returns the registered registry ids, unordered.
func (r *Router) Registries() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, id)
	}
	return out
}
