package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"pv-intake/internal/domain"
)

// Stream consumes live updates pushed by the backend over a websocket,
// avoiding the fixed-interval poll on deployments that support it.
// Messages arrive as {type, payload} envelopes.
type Stream struct {
	conn *websocket.Conn
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// Event is one decoded push from the stream. Exactly one field besides
// Type is populated.
type Event struct {
	Type        string
	Leaderboard []domain.LeaderboardEntry
	Summary     domain.SummaryStats
}

// Stream event types.
const (
	EventLeaderboard = "leaderboard"
	EventSummary     = "summary"
)

// DialStream connects to the backend's push channel. The base URL is the
// same HTTP endpoint the Client uses; the scheme is rewritten for the
// websocket dial.
func DialStream(ctx context.Context, baseURL, channel string) (*Stream, error) {
	wsURL, err := streamURL(baseURL, channel)
	if err != nil {
		return nil, err
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, err
	}
	return &Stream{conn: conn}, nil
}

func streamURL(baseURL, channel string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	q := u.Query()
	q.Set("channel", channel)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Next blocks for the next pushed event. Server-sent error envelopes come
// back as errors; unknown envelope types are returned with an empty
// payload so callers can skip them.
func (s *Stream) Next() (Event, error) {
	var msg envelope
	if err := s.conn.ReadJSON(&msg); err != nil {
		return Event{}, err
	}
	event := Event{Type: msg.Type}
	switch msg.Type {
	case EventLeaderboard:
		if err := json.Unmarshal(msg.Payload, &event.Leaderboard); err != nil {
			return Event{}, err
		}
	case EventSummary:
		if err := json.Unmarshal(msg.Payload, &event.Summary); err != nil {
			return Event{}, err
		}
	case "error":
		var payload errorPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return Event{}, err
		}
		return Event{}, fmt.Errorf("stream error: %s", payload.Message)
	}
	return event, nil
}

// Close tears the connection down.
func (s *Stream) Close() error {
	return s.conn.Close()
}
