package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/registryops/eppproxy/internal/commands"
	"github.com/registryops/eppproxy/internal/logger"
	"github.com/registryops/eppproxy/internal/proxy"
)

// pollIdleInterval is how long the stream waits before polling again
// after the registry reported an empty queue.
const pollIdleInterval = 10 * time.Second

// streamAckTimeout bounds how long the server waits for the client's
// ack before dropping the stream. An unacked message stays first in the
// registry queue, so nothing is lost on reconnect.
const streamAckTimeout = 2 * time.Minute

// StreamHandler pushes poll messages to a websocket client. The client
// acknowledges each message inline by sending {"msg_id": "..."} on the
// same socket; the server then acks upstream and fetches the next one.
type StreamHandler struct {
	proxy    *proxy.Proxy
	upgrader websocket.Upgrader

	idleInterval time.Duration
	ackTimeout   time.Duration
}

// NewStreamHandler creates the handler.
func NewStreamHandler(p *proxy.Proxy) *StreamHandler {
	return &StreamHandler{
		proxy: p,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		idleInterval: pollIdleInterval,
		ackTimeout:   streamAckTimeout,
	}
}

// streamMessage is the frame pushed for each poll message.
type streamMessage struct {
	Registry string                `json:"registry"`
	Message  *commands.PollMessage `json:"message"`
}

// streamAck is the frame the client sends back.
type streamAck struct {
	MsgID string `json:"msg_id"`
}

// Stream serves GET /poll/stream?registry=. The socket carries one
// message at a time; the upstream ack only happens after the client's
// inline ack, so a dropped connection redelivers.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	registryID := r.URL.Query().Get("registry")
	if registryID == "" {
		BadRequest(w, "registry query parameter is required")
		return
	}
	sel := proxy.Selector{RegistryID: registryID}
	if _, err := h.proxy.Session(sel); err != nil {
		NotFound(w, "unknown registry "+registryID)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("poll stream upgrade failed", "registry", registryID, "error", err)
		return
	}
	defer conn.Close()

	logger.Info("poll stream opened", "registry", registryID, "remote", r.RemoteAddr)
	err = h.run(r.Context(), conn, registryID)
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		logger.Warn("poll stream closed", "registry", registryID, "error", err)
		return
	}
	logger.Info("poll stream closed", "registry", registryID)
}

// clientFrame is one inbound websocket frame, or the read error that
// ended the connection.
type clientFrame struct {
	data []byte
	err  error
}

// startReader owns the read half of the socket. Every frame (and the
// terminal read error) is forwarded on the returned channel. A read
// error on a websocket is permanent for the whole connection, so the
// reader exits after reporting one; it never sets read deadlines.
func startReader(conn *websocket.Conn, done <-chan struct{}) <-chan clientFrame {
	frames := make(chan clientFrame)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			select {
			case frames <- clientFrame{data: data, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return frames
}

func (h *StreamHandler) run(ctx context.Context, conn *websocket.Conn, registryID string) error {
	sel := proxy.Selector{RegistryID: registryID}

	done := make(chan struct{})
	defer close(done)
	frames := startReader(conn, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := h.proxy.Call(ctx, sel, &commands.PollRequest{})
		if err != nil {
			return h.writeError(conn, err)
		}

		resp, ok := result.Payload.(*commands.PollResponse)
		if !ok || resp.Message == nil {
			// Queue is empty. Wait before asking again, but keep
			// watching the socket so a client close is noticed promptly.
			if err := h.idle(ctx, frames); err != nil {
				return err
			}
			continue
		}

		if err := conn.WriteJSON(streamMessage{Registry: registryID, Message: resp.Message}); err != nil {
			return err
		}

		ack, err := h.readAck(ctx, frames)
		if err != nil {
			return err
		}
		if ack.MsgID != resp.Message.ID {
			return h.writeError(conn, commands.Errf("ack for %q does not match delivered message %q", ack.MsgID, resp.Message.ID))
		}

		if _, err := h.proxy.Call(ctx, sel, &commands.PollAckRequest{MsgID: ack.MsgID}); err != nil {
			return h.writeError(conn, err)
		}
	}
}

// readAck waits for the client's {msg_id} frame.
func (h *StreamHandler) readAck(ctx context.Context, frames <-chan clientFrame) (streamAck, error) {
	timeout := time.NewTimer(h.ackTimeout)
	defer timeout.Stop()

	select {
	case f := <-frames:
		if f.err != nil {
			return streamAck{}, f.err
		}
		var ack streamAck
		if err := json.Unmarshal(f.data, &ack); err != nil {
			return streamAck{}, err
		}
		return ack, nil
	case <-timeout.C:
		return streamAck{}, commands.Errf("no ack received within %s", h.ackTimeout)
	case <-ctx.Done():
		return streamAck{}, ctx.Err()
	}
}

// idle waits out the poll interval between empty-queue polls while
// watching for a client close. Unsolicited client frames between
// deliveries are ignored.
func (h *StreamHandler) idle(ctx context.Context, frames <-chan clientFrame) error {
	wait := time.NewTimer(h.idleInterval)
	defer wait.Stop()

	for {
		select {
		case <-wait.C:
			return nil
		case f := <-frames:
			if f.err != nil {
				return f.err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// writeError sends a final error frame and returns the original error.
func (h *StreamHandler) writeError(conn *websocket.Conn, err error) error {
	_ = conn.WriteJSON(map[string]string{"error": err.Error()})
	return err
}
