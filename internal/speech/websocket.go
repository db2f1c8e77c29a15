package speech

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/valpere/verbico/internal"
)

// Message types exchanged with a recognition server.
const (
	msgStart  = "start"
	msgAbort  = "abort"
	msgResult = "result"
	msgEnd    = "end"
	msgError  = "error"
)

type wsMessage struct {
	Type           string    `json:"type"`
	Lang           string    `json:"lang,omitempty"`
	InterimResults bool      `json:"interimResults,omitempty"`
	Continuous     bool      `json:"continuous,omitempty"`
	Results        []Segment `json:"results,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// WebSocketEngine streams transcripts from a recognition server. The
// conversation is: client "start", server "result"*, server "end" or "error".
// Cancelling the context sends "abort" and closes the connection.
type WebSocketEngine struct {
	url    string
	dialer websocket.Dialer
}

func NewWebSocketEngine(url string) *WebSocketEngine {
	return &WebSocketEngine{
		url: url,
		dialer: websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

func (e *WebSocketEngine) Recognize(ctx context.Context, lang string, events chan<- Event) error {
	conn, _, err := e.dialer.DialContext(ctx, e.url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to connect to recognition server: %v", internal.ErrCapability, err)
	}
	defer conn.Close()

	start := wsMessage{Type: msgStart, Lang: lang, InterimResults: true, Continuous: false}
	if err := conn.WriteJSON(start); err != nil {
		return fmt.Errorf("failed to send start: %w", err)
	}

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteJSON(wsMessage{Type: msgAbort})
			_ = conn.Close()
		case <-finished:
		}
	}()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		switch msg.Type {
		case msgResult:
			select {
			case events <- Event{Segments: msg.Results}:
			case <-ctx.Done():
				return ctx.Err()
			}
		case msgEnd:
			return nil
		case msgError:
			if msg.Error == "" {
				msg.Error = "unknown error"
			}
			return errors.New(msg.Error)
		}
	}
}
