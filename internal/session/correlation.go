// Package session owns one authenticated EPP connection per registry:
// TCP+TLS dial, greeting and login with feature negotiation, request
// dispatch with response correlation, hello keepalives, and reconnection
// with a fixed backoff. Callers submit typed requests from arbitrary
// goroutines and await a capacity-1 reply channel.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/registryops/eppproxy/internal/commands"
)

// callResult is what a reply channel eventually carries.
type callResult struct {
	res *commands.Result
	err error
}

// waiter is one in-flight request: the operation (selecting the response
// decoder) and the channel the submitting caller blocks on.
type waiter struct {
	op    commands.Op
	reply chan callResult
}

// deliver completes the waiter without blocking. A caller that abandoned
// its reply channel simply never receives; the buffered send still
// succeeds and the result is garbage collected with the channel.
func (w waiter) deliver(res *commands.Result, err error) {
	select {
	case w.reply <- callResult{res: res, err: err}:
	default:
	}
}

// pendingReplies routes responses to the goroutine that submitted the
// matching request. When a command is sent, its transaction id is
// registered here. When the receive loop decodes a response, it delivers
// through the id-keyed channel.
type pendingReplies struct {
	mu      sync.Mutex
	waiters map[uuid.UUID]waiter
}

func newPendingReplies() *pendingReplies {
	return &pendingReplies{waiters: make(map[uuid.UUID]waiter)}
}

// insert registers a transaction id with its waiter. An id that is
// already in flight is rejected; overwriting would orphan the first
// caller's reply channel.
func (p *pendingReplies) insert(id uuid.UUID, w waiter) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.waiters[id]; exists {
		return fmt.Errorf("transaction id %s is already in flight", id)
	}
	p.waiters[id] = w
	return nil
}

// take removes and returns the waiter for the given id. Returns false
// when no request with that id is outstanding.
func (p *pendingReplies) take(id uuid.UUID) (waiter, bool) {
	p.mu.Lock()
	w, ok := p.waiters[id]
	if ok {
		delete(p.waiters, id)
	}
	p.mu.Unlock()
	return w, ok
}

// drain removes every outstanding waiter. Used on connection loss so each
// caller can be completed with NotReady.
func (p *pendingReplies) drain() []waiter {
	p.mu.Lock()
	out := make([]waiter, 0, len(p.waiters))
	for _, w := range p.waiters {
		out = append(out, w)
	}
	p.waiters = make(map[uuid.UUID]waiter)
	p.mu.Unlock()
	return out
}

func (p *pendingReplies) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiters)
}
