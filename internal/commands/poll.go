package commands

import (
	"time"

	"github.com/registryops/eppproxy/internal/epp"
)

// Poll commands (RFC 5730 section 2.9.2.3): the server-to-client message
// queue, requested and acknowledged one message at a time.

func init() {
	register(OpPollRequest, &handler{name: "poll request", encode: encodePollRequest, decode: decodePollRequest})
	register(OpPollAck, &handler{name: "poll ack", encode: encodePollAck, decode: decodePollAck})
}

// PollRequest asks for the next queued message.
type PollRequest struct{}

func (*PollRequest) Op() Op { return OpPollRequest }

// PollResponse carries the next message, nil when the queue is empty.
type PollResponse struct {
	Message *PollMessage
}

// PollMessage is one queued message with whatever typed payload the
// registry embedded in it.
type PollMessage struct {
	ID       string
	Count    uint64
	Enqueued time.Time
	Text     string

	// Data is the embedded object payload, one of the typed responses
	// (DomainTransferResponse, DomainInfoResponse, PendingActionResult, ...)
	// or nil when the message is text-only.
	Data any

	// Change is present on RFC 8590 change notifications.
	Change *ChangeData
}

// PendingActionResult reports the offline completion of a 1001 create,
// update, or delete.
type PendingActionResult struct {
	Object    string // domain | contact
	Name      string
	Succeeded bool
	ClTRID    string
	SvTRID    string
	Date      time.Time
}

// ChangeData summarises a registry-initiated change (RFC 8590).
type ChangeData struct {
	State     string // before | after
	Operation string
	Date      time.Time
	SvTRID    string
	Who       string
	Reason    string
}

func encodePollRequest(f Features, req Request) (*epp.Command, error) {
	return &epp.Command{Poll: &epp.Poll{Op: "req"}}, nil
}

func decodePollRequest(resp *epp.Response) (any, error) {
	if resp.FirstResult().Code == epp.CodeNoMessages || resp.MsgQ == nil {
		return &PollResponse{}, nil
	}

	msg := &PollMessage{
		ID:       resp.MsgQ.ID,
		Count:    resp.MsgQ.Count,
		Enqueued: parseTime(resp.MsgQ.QDate),
	}
	if resp.MsgQ.Msg != nil {
		msg.Text = resp.MsgQ.Msg.Text
	}
	msg.Data = decodePollPayload(resp)

	if ext := extOf(resp); ext.ChangePoll != nil {
		msg.Change = &ChangeData{
			State:     ext.ChangePoll.State,
			Operation: ext.ChangePoll.Operation.Name,
			Date:      parseTime(ext.ChangePoll.Date),
			SvTRID:    ext.ChangePoll.SvTRID,
			Who:       ext.ChangePoll.Who,
		}
		if ext.ChangePoll.Reason != nil {
			msg.Change.Reason = ext.ChangePoll.Reason.Text
		}
	}
	return &PollResponse{Message: msg}, nil
}

// decodePollPayload lifts whichever object payload the message embeds.
// Registries attach transfer notifications, pending-action results, and
// whole info records; anything unrecognised stays nil rather than failing
// the poll.
func decodePollPayload(resp *epp.Response) any {
	data := resp.ResData
	if data == nil {
		return nil
	}
	switch {
	case data.DomainTransfer != nil:
		out, err := decodeDomainTransfer(resp)
		if err == nil {
			return out
		}
	case data.DomainPan != nil:
		return &PendingActionResult{
			Object:    "domain",
			Name:      data.DomainPan.Name.Name,
			Succeeded: data.DomainPan.Name.Result,
			ClTRID:    data.DomainPan.PaTRID.ClTRID,
			SvTRID:    data.DomainPan.PaTRID.SvTRID,
			Date:      parseTime(data.DomainPan.PaDate),
		}
	case data.ContactPan != nil:
		return &PendingActionResult{
			Object:    "contact",
			Name:      data.ContactPan.ID.ID,
			Succeeded: data.ContactPan.ID.Result,
			ClTRID:    data.ContactPan.PaTRID.ClTRID,
			SvTRID:    data.ContactPan.PaTRID.SvTRID,
			Date:      parseTime(data.ContactPan.PaDate),
		}
	case data.DomainInfo != nil:
		out, err := decodeDomainInfo(resp)
		if err == nil {
			return out
		}
	case data.ContactTransfer != nil:
		out, err := decodeContactTransfer(resp)
		if err == nil {
			return out
		}
	}
	return nil
}

// PollAckRequest acknowledges a message, removing it from the queue.
type PollAckRequest struct {
	MsgID string
}

func (*PollAckRequest) Op() Op { return OpPollAck }

// PollAckResponse reports the queue state after the ack.
type PollAckResponse struct {
	Remaining uint64
	NextID    string
}

func encodePollAck(f Features, req Request) (*epp.Command, error) {
	r := req.(*PollAckRequest)
	if r.MsgID == "" {
		return nil, Errf("message id is required")
	}
	return &epp.Command{Poll: &epp.Poll{Op: "ack", MsgID: r.MsgID}}, nil
}

func decodePollAck(resp *epp.Response) (any, error) {
	out := &PollAckResponse{}
	if resp.MsgQ != nil {
		out.Remaining = resp.MsgQ.Count
		out.NextID = resp.MsgQ.ID
	}
	return out, nil
}
