package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// wsPipe dials a real websocket against an in-process server and hands
// back both ends.
func wsPipe(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()

	up := websocket.Upgrader{}
	accepted := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		accepted <- c
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	server = <-accepted
	t.Cleanup(func() { server.Close() })
	return server, client
}

// An ack sent after the empty-queue wait has already elapsed must still
// be delivered. The wait itself must actually block for the interval
// instead of returning immediately and hammering the registry.
func TestStreamAckReadableAfterIdleWindow(t *testing.T) {
	server, client := wsPipe(t)
	h := &StreamHandler{idleInterval: 30 * time.Millisecond, ackTimeout: time.Second}

	done := make(chan struct{})
	defer close(done)
	frames := startReader(server, done)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		start := time.Now()
		if err := h.idle(ctx, frames); err != nil {
			t.Fatalf("idle %d: %v", i, err)
		}
		if elapsed := time.Since(start); elapsed < h.idleInterval {
			t.Fatalf("idle %d returned after %v, want at least %v", i, elapsed, h.idleInterval)
		}
	}

	if err := client.WriteJSON(map[string]string{"msg_id": "42"}); err != nil {
		t.Fatalf("client write: %v", err)
	}
	ack, err := h.readAck(ctx, frames)
	if err != nil {
		t.Fatalf("readAck after idle: %v", err)
	}
	if ack.MsgID != "42" {
		t.Errorf("MsgID = %q, want 42", ack.MsgID)
	}
}

func TestStreamIdleIgnoresUnsolicitedFrames(t *testing.T) {
	server, client := wsPipe(t)
	h := &StreamHandler{idleInterval: 60 * time.Millisecond, ackTimeout: time.Second}

	done := make(chan struct{})
	defer close(done)
	frames := startReader(server, done)

	if err := client.WriteMessage(websocket.TextMessage, []byte(`{"noise": true}`)); err != nil {
		t.Fatalf("client write: %v", err)
	}
	if err := h.idle(context.Background(), frames); err != nil {
		t.Fatalf("idle: %v", err)
	}
}

func TestStreamIdleNoticesClientClose(t *testing.T) {
	server, client := wsPipe(t)
	h := &StreamHandler{idleInterval: 5 * time.Second, ackTimeout: time.Second}

	done := make(chan struct{})
	defer close(done)
	frames := startReader(server, done)

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := client.WriteMessage(websocket.CloseMessage, msg); err != nil {
		t.Fatalf("client close: %v", err)
	}

	start := time.Now()
	err := h.idle(context.Background(), frames)
	if err == nil {
		t.Fatal("idle returned nil after client close")
	}
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("idle error = %v, want normal close", err)
	}
	if time.Since(start) > time.Second {
		t.Errorf("idle took %v to notice the close", time.Since(start))
	}
}

func TestStreamReadAckTimeout(t *testing.T) {
	server, _ := wsPipe(t)
	h := &StreamHandler{idleInterval: time.Second, ackTimeout: 30 * time.Millisecond}

	done := make(chan struct{})
	defer close(done)
	frames := startReader(server, done)

	_, err := h.readAck(context.Background(), frames)
	if err == nil {
		t.Fatal("readAck returned nil without an ack")
	}
	if !strings.Contains(err.Error(), "no ack") {
		t.Errorf("readAck error = %v, want ack timeout", err)
	}
}

func TestStreamIdleStopsOnContextCancel(t *testing.T) {
	server, _ := wsPipe(t)
	h := &StreamHandler{idleInterval: 5 * time.Second, ackTimeout: time.Second}

	done := make(chan struct{})
	defer close(done)
	frames := startReader(server, done)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	if err := h.idle(ctx, frames); err != context.Canceled {
		t.Fatalf("idle = %v, want context.Canceled", err)
	}
}
