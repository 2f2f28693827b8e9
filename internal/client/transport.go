/*
Package client implements the per-session room client engine.

This file is the HTTP transport: the concrete Fetcher/Pusher/Sender
speaking the presence server's JSON envelope over plain polling requests.
No request retries here; the polling cadence is the retry policy.
*/
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"plaza/internal/app/room"
	"plaza/internal/pkg/errs"
)

// requestTimeout bounds a single poll or write so a hung request delays at
// most one tick's refresh instead of wedging the session.
const requestTimeout = 10 * time.Second

// RateLimitedError reports a server-side cooldown rejection with the
// remaining wait, surfaced to the user as a non-blocking notice.
type RateLimitedError struct {
	Remaining time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("client: rate limited, retry in %s", e.Remaining)
}

// HTTPTransport talks to the presence server's room API with a bearer
// identity token.
type HTTPTransport struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPTransport creates a transport for the given server base URL and
// identity token.
func NewHTTPTransport(baseURL, token string) *HTTPTransport {
	return &HTTPTransport{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// envelope mirrors the server's JSON response structure with the payload
// left raw for per-endpoint decoding.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Fetch pulls the full position registry and message log.
func (t *HTTPTransport) Fetch() (RoomSnapshot, error) {
	var snap RoomSnapshot

	var positions struct {
		Positions []room.PositionRecord `json:"positions"`
	}
	if err := t.get("/api/room/positions", &positions); err != nil {
		return RoomSnapshot{}, err
	}

	var messages struct {
		Messages []room.Message `json:"messages"`
	}
	if err := t.get("/api/room/messages", &messages); err != nil {
		return RoomSnapshot{}, err
	}

	snap.Positions = positions.Positions
	snap.Messages = messages.Messages
	return snap, nil
}

// Push reports the local position.
func (t *HTTPTransport) Push(x, y float64) error {
	body := map[string]float64{"x": x, "y": y}
	return t.post("/api/room/position", body, nil)
}

// Send submits a chat message. A cooldown rejection is returned as a
// *RateLimitedError carrying the server-reported remaining wait.
func (t *HTTPTransport) Send(text string) (*room.Message, error) {
	body := map[string]string{"text": text}

	var data struct {
		Message *room.Message `json:"message"`
	}
	if err := t.post("/api/room/message", body, &data); err != nil {
		return nil, err
	}
	return data.Message, nil
}

func (t *HTTPTransport) get(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, t.baseURL+path, nil)
	if err != nil {
		return err
	}

	return t.do(req, out)
}

func (t *HTTPTransport) post(path string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, t.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return t.do(req, out)
}

func (t *HTTPTransport) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+t.token)

	res, err := t.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("client: malformed response from %s: %w", req.URL.Path, err)
	}

	if env.Code != 0 {
		if env.Code == errs.ErrCooldownActive {
			var data struct {
				RemainingMs int64 `json:"remainingMs"`
			}
			// Best-effort decode; a missing payload falls back to zero.
			_ = json.Unmarshal(env.Data, &data)
			return &RateLimitedError{Remaining: time.Duration(data.RemainingMs) * time.Millisecond}
		}
		return fmt.Errorf("client: server error %d from %s: %s", env.Code, req.URL.Path, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("client: malformed payload from %s: %w", req.URL.Path, err)
		}
	}

	return nil
}
