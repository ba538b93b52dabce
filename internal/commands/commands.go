// Package commands is the per-object command catalogue: one encoder and
// one decoder per EPP operation, registered in a dispatch table keyed by
// the request's operation. Encoders validate a typed request against the
// session's negotiated features and produce the XML command record;
// decoders turn the matching response into a typed result. Encoders and
// decoders are pure; the session manager owns all transport state.
package commands

import (
	"fmt"

	"github.com/registryops/eppproxy/internal/epp"
)

// Op identifies one supported operation. The dispatch table is keyed on it.
type Op string

const (
	OpDomainCheck       Op = "domain.check"
	OpDomainClaimsCheck Op = "domain.claims-check"
	OpDomainInfo        Op = "domain.info"
	OpDomainCreate      Op = "domain.create"
	OpDomainDelete      Op = "domain.delete"
	OpDomainUpdate      Op = "domain.update"
	OpDomainRenew       Op = "domain.renew"
	OpDomainTransfer    Op = "domain.transfer"
	OpDomainRestore     Op = "domain.restore"

	OpHostCheck  Op = "host.check"
	OpHostInfo   Op = "host.info"
	OpHostCreate Op = "host.create"
	OpHostDelete Op = "host.delete"
	OpHostUpdate Op = "host.update"

	OpContactCheck    Op = "contact.check"
	OpContactInfo     Op = "contact.info"
	OpContactCreate   Op = "contact.create"
	OpContactDelete   Op = "contact.delete"
	OpContactUpdate   Op = "contact.update"
	OpContactTransfer Op = "contact.transfer"

	OpPollRequest Op = "poll.request"
	OpPollAck     Op = "poll.ack"

	OpNominetTagList         Op = "nominet.tag-list"
	OpNominetHandshakeAccept Op = "nominet.handshake-accept"
	OpNominetHandshakeReject Op = "nominet.handshake-reject"
	OpNominetRelease         Op = "nominet.release"
	OpNominetLock            Op = "nominet.lock"
	OpNominetUnlock          Op = "nominet.unlock"

	OpBalanceInfo Op = "balance.info"

	OpMaintenanceList Op = "maintenance.list"
	OpMaintenanceInfo Op = "maintenance.info"

	OpEuridHitPoints         Op = "eurid.hit-points"
	OpEuridRegistrationLimit Op = "eurid.registration-limit"
	OpEuridDNSQuality        Op = "eurid.dns-quality"
	OpEuridDNSSECEligibility Op = "eurid.dnssec-eligibility"

	OpMarkCheck            Op = "mark.check"
	OpMarkInfo             Op = "mark.info"
	OpMarkSMDInfo          Op = "mark.smd-info"
	OpMarkCreate           Op = "mark.create"
	OpMarkUpdate           Op = "mark.update"
	OpMarkRenew            Op = "mark.renew"
	OpMarkTransferInitiate Op = "mark.transfer-initiate"
	OpMarkTransferExecute  Op = "mark.transfer-execute"

	OpDACDomain Op = "dac.domain"
	OpDACUsage  Op = "dac.usage"
	OpDACLimits Op = "dac.limits"

	OpLogout Op = "logout"
)

// Request is implemented by every typed request.
type Request interface {
	Op() Op
}

// Features is the view of a session's negotiated feature set the encoders
// consult. Defined here rather than in the session package so the two
// packages do not import each other; the session's FeatureSet satisfies it.
type Features interface {
	// HasObject reports whether the server advertised the object URI.
	HasObject(uri string) bool
	// HasExtension reports whether the server advertised the extension URI.
	HasExtension(uri string) bool
	// Errata names the operator-configured workaround profile, empty when
	// none.
	Errata() string
}

// feeVersion picks the newest fee extension namespace the server
// advertised.
func feeVersion(f Features) (string, bool) {
	for _, ns := range epp.FeeVersions {
		if f.HasExtension(ns) {
			return ns, true
		}
	}
	return "", false
}

// Envelope accompanies every typed response payload: the result code and
// message, the pending flag of a 1001, both transaction ids, and any
// server diagnostics.
type Envelope struct {
	Code      int
	Message   string
	Pending   bool
	ClTRID    string
	SvTRID    string
	ExtValues []ExtValue
}

// ExtValue is one server diagnostic: the offending value's raw XML plus
// the server's reason.
type ExtValue struct {
	Value  string
	Reason string
}

// Result pairs the response envelope with the operation's typed payload.
type Result struct {
	Envelope Envelope
	Payload  any
}

// handler is one dispatch-table entry.
type handler struct {
	// name is the human-readable operation name used in logs and metrics.
	name string

	// encode validates the request against the feature set and produces
	// the command record. A returned *Error never reaches the transport.
	encode func(f Features, req Request) (*epp.Command, error)

	// decode extracts the typed payload from a success response. The
	// result-code mapping has already run; decode only sees success
	// responses.
	decode func(resp *epp.Response) (any, error)
}

// handlers is the dispatch table. Populated by the register calls in each
// object file's init.
var handlers = map[Op]*handler{}

func register(op Op, h *handler) {
	if _, dup := handlers[op]; dup {
		panic(fmt.Sprintf("commands: duplicate handler for %s", op))
	}
	handlers[op] = h
}

// Name returns the operation's log/metric name.
func Name(op Op) string {
	if h, ok := handlers[op]; ok {
		return h.name
	}
	return string(op)
}

// Supported reports whether the dispatch table knows the operation.
func Supported(op Op) bool {
	_, ok := handlers[op]
	return ok
}

// Encode runs the operation's encoder. Unknown operations and encoder
// rejections come back as *Error; the session must not touch the
// transport on error.
func Encode(f Features, req Request) (*epp.Command, error) {
	h, ok := handlers[req.Op()]
	if ok && h.encode == nil {
		ok = false
	}
	if !ok {
		return nil, Errf("unknown operation %q", req.Op())
	}
	return h.encode(f, req)
}

// Decode maps the response's result code through the error taxonomy and,
// on success, runs the operation's payload decoder.
func Decode(op Op, resp *epp.Response) (*Result, error) {
	h, ok := handlers[op]
	if !ok || h.decode == nil {
		return nil, ServerInternal(fmt.Sprintf("no decoder for operation %q", op))
	}

	res := resp.FirstResult()
	if !epp.IsSuccess(res.Code) {
		return nil, FromResult(res)
	}

	payload, err := h.decode(resp)
	if err != nil {
		return nil, err
	}
	return &Result{Envelope: envelope(resp), Payload: payload}, nil
}

// envelope lifts the response header into the caller-facing envelope.
func envelope(resp *epp.Response) Envelope {
	res := resp.FirstResult()
	env := Envelope{
		Code:    res.Code,
		Message: res.Message.Text,
		Pending: epp.IsPending(res.Code),
		ClTRID:  resp.TrID.ClTRID,
		SvTRID:  resp.TrID.SvTRID,
	}
	for _, ev := range res.ExtValues {
		env.ExtValues = append(env.ExtValues, ExtValue{Value: ev.Value.Raw, Reason: ev.Reason})
	}
	return env
}

// mismatch is the decoder-side guard: a success response whose payload is
// not the one the command calls for.
func mismatch(op Op) error {
	return ServerInternal(fmt.Sprintf("unexpected response payload for %s", op))
}
