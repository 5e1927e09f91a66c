// Package chatclient maintains a near-real-time view of one support
// conversation without a persistent connection. It polls the chat API on a
// fixed interval using a timestamp cursor, so only messages newer than the
// last one seen travel on each tick.
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const DefaultPollInterval = 3 * time.Second

// State is the lifecycle of one open chat panel.
type State int

const (
	StateClosed State = iota
	StateAwaitingIdentity
	StateActive
)

func (s State) String() string {
	switch s {
	case StateAwaitingIdentity:
		return "awaiting-identity"
	case StateActive:
		return "active"
	}
	return "closed"
}

// Message mirrors the chat API's message shape.
type Message struct {
	Id          string    `json:"id"`
	ChatId      string    `json:"chatId"`
	Text        string    `json:"text"`
	Sender      string    `json:"sender"`
	SenderName  string    `json:"senderName"`
	SenderEmail string    `json:"senderEmail,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
}

type chatPayload struct {
	Chat struct {
		Id       string    `json:"_id"`
		Messages []Message `json:"messages"`
	} `json:"chat"`
}

type messagePayload struct {
	Message Message `json:"message"`
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Error   string          `json:"error"`
}

// Client is a polling view over one conversation. All methods are safe for
// concurrent use.
type Client struct {
	baseURL    string
	interval   time.Duration
	httpClient *http.Client

	mu       sync.Mutex
	state    State
	chatID   string
	name     string
	email    string
	messages []Message
	cursor   time.Time
	// pollGen invalidates in-flight polls that a later request or a send has
	// superseded, so a slow response cannot apply stale appends.
	pollGen uint64
	stop    chan struct{}
}

// New builds a client against the chat API base URL, e.g.
// "https://api.alternusgallery.com". A zero interval uses the default.
func New(baseURL string, interval time.Duration) *Client {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Client{
		baseURL:    baseURL,
		interval:   interval,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Open transitions the panel out of Closed. Without a stored identity the
// panel waits for one; SetIdentity or Resume completes the transition to
// Active.
func (c *Client) Open() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateClosed {
		return c.state
	}
	c.state = StateAwaitingIdentity
	return c.state
}

// SetIdentity supplies the visitor's display name, starts the conversation
// (the server seeds a support greeting) and enables polling. An empty name
// keeps the panel in AwaitingIdentity.
func (c *Client) SetIdentity(ctx context.Context, name, email string) error {
	if name == "" {
		return fmt.Errorf("a display name is required")
	}

	c.mu.Lock()
	if c.state != StateAwaitingIdentity {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("cannot set identity in state %v", state)
	}
	c.mu.Unlock()

	body, _ := json.Marshal(map[string]string{"name": name, "email": email})
	var payload chatPayload
	if err := c.do(ctx, http.MethodPost, "/v1/chat/start", bytes.NewReader(body), &payload); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// the panel may have been dismissed while the request was in flight
	if c.state != StateAwaitingIdentity {
		return fmt.Errorf("cannot set identity in state %v", c.state)
	}
	c.name = name
	c.email = email
	c.chatID = payload.Chat.Id
	c.messages = payload.Chat.Messages
	if n := len(c.messages); n > 0 {
		c.cursor = c.messages[n-1].Timestamp
	}
	c.activateLocked()
	return nil
}

// Resume reopens an existing conversation (identity restored from client
// storage), fetches the full history and enables polling.
func (c *Client) Resume(ctx context.Context, chatID, name, email string) error {
	c.mu.Lock()
	if c.state == StateActive {
		c.mu.Unlock()
		return fmt.Errorf("cannot resume in state %v", StateActive)
	}
	c.mu.Unlock()

	msgs, err := c.fetchMessages(ctx, chatID, time.Time{})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateActive {
		return fmt.Errorf("cannot resume in state %v", StateActive)
	}
	c.name = name
	c.email = email
	c.chatID = chatID
	c.messages = msgs
	c.cursor = time.Time{}
	if n := len(msgs); n > 0 {
		c.cursor = msgs[n-1].Timestamp
	}
	c.activateLocked()
	return nil
}

// Send posts a message and appends the server-assigned result immediately,
// without waiting for the next poll tick.
func (c *Client) Send(ctx context.Context, text string) (Message, error) {
	c.mu.Lock()
	if c.state != StateActive {
		state := c.state
		c.mu.Unlock()
		return Message{}, fmt.Errorf("cannot send in state %v", state)
	}
	chatID, name, email := c.chatID, c.name, c.email
	c.mu.Unlock()

	body, _ := json.Marshal(map[string]string{
		"chatId":      chatID,
		"text":        text,
		"sender":      "user",
		"senderName":  name,
		"senderEmail": email,
	})

	var payload messagePayload
	if err := c.do(ctx, http.MethodPost, "/v1/chat", bytes.NewReader(body), &payload); err != nil {
		return Message{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.appendLocked([]Message{payload.Message})
	// an in-flight poll predates this send; its view is now stale
	c.pollGen++
	return payload.Message, nil
}

// PollNow fetches messages newer than the cursor and appends them. The
// background ticker calls this on every interval; callers can also force a
// refresh. Failures are logged and left for the next tick.
func (c *Client) PollNow(ctx context.Context) {
	c.mu.Lock()
	if c.state != StateActive {
		c.mu.Unlock()
		return
	}
	c.pollGen++
	gen := c.pollGen
	chatID := c.chatID
	since := c.cursor
	c.mu.Unlock()

	msgs, err := c.fetchMessages(ctx, chatID, since)
	if err != nil {
		log.Printf("chat poll failed, retrying next tick: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateActive || gen != c.pollGen {
		// superseded by a newer poll or a send
		return
	}
	c.appendLocked(msgs)
}

// Close dismisses the panel and stops the poll ticker. The conversation can
// be picked up again with Resume.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.state = StateClosed
}

// Messages returns a copy of the local ordered view.
func (c *Client) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) ChatID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chatID
}

func (c *Client) activateLocked() {
	if c.stop != nil {
		close(c.stop)
	}
	c.state = StateActive
	c.stop = make(chan struct{})
	go c.pollLoop(c.stop)
}

func (c *Client) pollLoop(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), c.interval)
			c.PollNow(ctx)
			cancel()
		}
	}
}

// appendLocked appends messages strictly newer than the cursor, skipping ids
// already present, and advances the cursor. Callers hold c.mu.
func (c *Client) appendLocked(msgs []Message) {
	for _, m := range msgs {
		if !m.Timestamp.After(c.cursor) {
			continue
		}
		if c.hasLocked(m.Id) {
			continue
		}
		c.messages = append(c.messages, m)
		c.cursor = m.Timestamp
	}
}

func (c *Client) hasLocked(id string) bool {
	for _, m := range c.messages {
		if m.Id == id {
			return true
		}
	}
	return false
}

func (c *Client) fetchMessages(ctx context.Context, chatID string, since time.Time) ([]Message, error) {
	query := url.Values{"chatId": {chatID}}
	if !since.IsZero() {
		query.Set("since", since.Format(time.RFC3339Nano))
	}

	var payload chatPayload
	if err := c.do(ctx, http.MethodGet, "/v1/chat?"+query.Encode(), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Chat.Messages, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("chat decode: %w", err)
	}
	if resp.StatusCode >= 400 {
		if env.Error != "" {
			return fmt.Errorf("chat api error: %s", env.Error)
		}
		return fmt.Errorf("chat api error: %s", resp.Status)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("chat decode: %w", err)
		}
	}
	return nil
}
