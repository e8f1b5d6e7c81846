package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{}

func TestStreamURLRewritesScheme(t *testing.T) {
	got, err := streamURL("http://localhost:8000", "leaderboard")
	if err != nil {
		t.Fatalf("streamURL: %v", err)
	}
	if got != "ws://localhost:8000/ws?channel=leaderboard" {
		t.Fatalf("unexpected url %q", got)
	}

	got, err = streamURL("https://example.com/api/", "summary")
	if err != nil {
		t.Fatalf("streamURL: %v", err)
	}
	if got != "wss://example.com/api/ws?channel=summary" {
		t.Fatalf("unexpected url %q", got)
	}

	if _, err := streamURL("ftp://example.com", "summary"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}

func TestStreamDeliversEnvelopes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("channel") != "leaderboard" {
			t.Errorf("unexpected channel %q", r.URL.Query().Get("channel"))
		}
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		messages := []string{
			`{"type":"leaderboard","payload":[{"id":2,"responses":5},{"id":1,"responses":3}]}`,
			`{"type":"heartbeat","payload":null}`,
			`{"type":"summary","payload":{"total_patients":3,"overall_completion_percentage":40.0}}`,
			`{"type":"error","payload":{"message":"channel closed"}}`,
		}
		for _, msg := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	stream, err := DialStream(context.Background(), server.URL, "leaderboard")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer stream.Close()

	event, err := stream.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if event.Type != EventLeaderboard || len(event.Leaderboard) != 2 {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.Leaderboard[0].ID != 2 || event.Leaderboard[0].ResponseCount != 5 {
		t.Fatalf("unexpected first entry %+v", event.Leaderboard[0])
	}

	// Unknown envelope types come back empty so callers can skip them.
	event, err = stream.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if event.Type != "heartbeat" || event.Leaderboard != nil {
		t.Fatalf("unexpected event %+v", event)
	}

	event, err = stream.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if event.Type != EventSummary || event.Summary.TotalPatients != 3 {
		t.Fatalf("unexpected event %+v", event)
	}

	_, err = stream.Next()
	if err == nil {
		t.Fatalf("expected error envelope to surface as error")
	}
	if !strings.Contains(err.Error(), "channel closed") {
		t.Fatalf("expected server message in error, got %q", err.Error())
	}
}
