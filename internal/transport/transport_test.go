// SPDX-License-Identifier: MIT
package transport

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestLoggingTransport(t *testing.T) {
	lt := NewLoggingTransport()

	for i := 0; i < 3; i++ {
		if err := lt.Send(map[string]int{"i": i}); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
	}
	// Unmarshalable values are still accepted.
	if err := lt.Send(make(chan int)); err != nil {
		t.Fatalf("Send(chan) error = %v", err)
	}
	if lt.Sent() != 4 {
		t.Errorf("Sent() = %d, want 4", lt.Sent())
	}

	if err := lt.Close(); err != nil {
		t.Fatal(err)
	}
	if err := lt.Send("late"); !errors.Is(err, ErrClosed) {
		t.Errorf("Send after Close error = %v, want ErrClosed", err)
	}
}

func newTestWebSocket(t *testing.T) *WebSocketTransport {
	t.Helper()
	wst, err := NewWebSocketTransport("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewWebSocketTransport() error = %v", err)
	}
	t.Cleanup(func() { wst.Close() })
	return wst
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebSocketBroadcast(t *testing.T) {
	wst := newTestWebSocket(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+wst.Addr().String()+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	waitFor(t, func() bool { return wst.Clients() == 1 })

	type event struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := wst.Send(event{Type: "status", Text: "1000 Hz"}); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if got.Type != "status" || got.Text != "1000 Hz" {
		t.Errorf("received %+v", got)
	}

	conn.Close()
	waitFor(t, func() bool { return wst.Clients() == 0 })
}

func TestWebSocketServesPage(t *testing.T) {
	wst := newTestWebSocket(t)

	resp, err := http.Get("http://" + wst.Addr().String() + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<canvas") {
		t.Errorf("GET / = %d, body %q...", resp.StatusCode, string(body[:min(len(body), 40)]))
	}

	resp, err = http.Get("http://" + wst.Addr().String() + "/favicon.ico")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /favicon.ico = %d, want 404", resp.StatusCode)
	}
}

func TestWebSocketSendNeverBlocks(t *testing.T) {
	wst := newTestWebSocket(t)

	// Overflowing the queue drops events; Send itself must keep succeeding.
	for i := 0; i < 10*broadcastQueue; i++ {
		if err := wst.Send(i); err != nil {
			t.Fatalf("Send(%d) error = %v", i, err)
		}
	}

	if err := wst.Close(); err != nil {
		t.Fatal(err)
	}
	if err := wst.Send("late"); !errors.Is(err, ErrClosed) {
		t.Errorf("Send after Close error = %v, want ErrClosed", err)
	}
	if err := wst.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestWebSocketListenError(t *testing.T) {
	wst := newTestWebSocket(t)
	if _, err := NewWebSocketTransport(wst.Addr().String()); err == nil {
		t.Error("expected error listening on a used address")
	}
}
