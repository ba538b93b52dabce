package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/registryops/eppproxy/internal/commands"
)

// StreamMessage is one delivery on the poll stream.
type StreamMessage struct {
	Registry string                `json:"registry"`
	Message  *commands.PollMessage `json:"message"`
	Error    string                `json:"error,omitempty"`
}

type streamAck struct {
	MsgID string `json:"msg_id"`
}

// StreamPoll connects to the websocket poll stream for one registry and
// calls handler for every message. A nil handler error acknowledges the
// message; a non-nil error closes the stream without acking, leaving
// the message first in the registry queue.
//
// StreamPoll blocks until the context is cancelled, the handler fails
// or the connection drops.
func (c *Client) StreamPoll(ctx context.Context, registry string, handler func(StreamMessage) error) error {
	wsURL, err := c.streamURL(registry)
	if err != nil {
		return err
	}

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("poll stream dial failed: %s: %w", resp.Status, err)
		}
		return fmt.Errorf("poll stream dial failed: %w", err)
	}
	defer conn.Close()

	// Unblock the read loop on cancellation.
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		var msg StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		if msg.Error != "" {
			return fmt.Errorf("poll stream: %s", msg.Error)
		}
		if msg.Message == nil {
			continue
		}

		if err := handler(msg); err != nil {
			return err
		}
		if err := conn.WriteJSON(streamAck{MsgID: msg.Message.ID}); err != nil {
			return err
		}
	}
}

func (c *Client) streamURL(registry string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/v1/poll/stream"
	q := url.Values{"registry": []string{registry}}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
