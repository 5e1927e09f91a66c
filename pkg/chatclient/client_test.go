package chatclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeChatServer implements just enough of the chat API for the client:
// POST /v1/chat/start, GET /v1/chat with an optional since cursor, and
// POST /v1/chat for sends.
type fakeChatServer struct {
	mu       sync.Mutex
	chatID   string
	messages []Message
	nextID   int

	// one-shot gates; when set, the matching handler signals on entered and
	// blocks until release is closed
	getEntered   chan struct{}
	getRelease   chan struct{}
	startEntered chan struct{}
	startRelease chan struct{}
}

func newFakeChatServer() *fakeChatServer {
	return &fakeChatServer{chatID: "chat-1"}
}

// stallNextGet holds the next GET /v1/chat open until release is closed.
func (f *fakeChatServer) stallNextGet(entered, release chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getEntered, f.getRelease = entered, release
}

// stallNextStart holds the next POST /v1/chat/start open until release is closed.
func (f *fakeChatServer) stallNextStart(entered, release chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startEntered, f.startRelease = entered, release
}

func (f *fakeChatServer) addMessage(sender, name, text string, ts time.Time) Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	m := Message{
		Id:         fmt.Sprintf("msg-%d", f.nextID),
		ChatId:     f.chatID,
		Text:       text,
		Sender:     sender,
		SenderName: name,
		Timestamp:  ts,
	}
	f.messages = append(f.messages, m)
	return m
}

func (f *fakeChatServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	writeData := func(w http.ResponseWriter, data any) {
		raw, _ := json.Marshal(data)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  http.StatusOK,
			"message": "success",
			"data":    json.RawMessage(raw),
		})
	}

	mux.HandleFunc("/v1/chat/start", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		f.mu.Lock()
		entered, release := f.startEntered, f.startRelease
		f.startEntered, f.startRelease = nil, nil
		f.mu.Unlock()
		if entered != nil {
			entered <- struct{}{}
			<-release
		}
		greeting := f.addMessage("support", "Alternus Support", "Hello! How can we help you today?", time.Now().UTC())
		writeData(w, map[string]any{"chat": map[string]any{
			"_id":      f.chatID,
			"messages": []Message{greeting},
		}})
	})

	mux.HandleFunc("/v1/chat", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			f.mu.Lock()
			entered, release := f.getEntered, f.getRelease
			f.getEntered, f.getRelease = nil, nil
			f.mu.Unlock()
			if entered != nil {
				entered <- struct{}{}
				<-release
			}
			var since time.Time
			if raw := r.URL.Query().Get("since"); raw != "" {
				parsed, err := time.Parse(time.RFC3339Nano, raw)
				if err != nil {
					t.Errorf("bad since cursor %q: %v", raw, err)
				}
				since = parsed
			}
			f.mu.Lock()
			var out []Message
			for _, m := range f.messages {
				if since.IsZero() || m.Timestamp.After(since) {
					out = append(out, m)
				}
			}
			f.mu.Unlock()
			writeData(w, map[string]any{"chat": map[string]any{
				"_id":      f.chatID,
				"messages": out,
			}})
		case http.MethodPost:
			var req struct {
				Text       string `json:"text"`
				SenderName string `json:"senderName"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			m := f.addMessage("user", req.SenderName, req.Text, time.Now().UTC())
			writeData(w, map[string]any{"message": m})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	return mux
}

func startClient(t *testing.T) (*Client, *fakeChatServer) {
	t.Helper()
	fake := newFakeChatServer()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	// long interval so tests drive polls explicitly via PollNow
	c := New(srv.URL, time.Hour)
	t.Cleanup(c.Close)
	return c, fake
}

func TestOpenWithoutIdentityWaits(t *testing.T) {
	c, _ := startClient(t)

	if got := c.Open(); got != StateAwaitingIdentity {
		t.Fatalf("expected awaiting-identity after open, got %v", got)
	}
	if _, err := c.Send(context.Background(), "hello?"); err == nil {
		t.Fatal("expected send to fail before identity is set")
	}
}

func TestSetIdentitySeedsGreeting(t *testing.T) {
	c, _ := startClient(t)
	c.Open()

	if err := c.SetIdentity(context.Background(), "Maya", "maya@example.com"); err != nil {
		t.Fatalf("set identity: %v", err)
	}
	if got := c.State(); got != StateActive {
		t.Fatalf("expected active, got %v", got)
	}
	if c.ChatID() == "" {
		t.Fatal("expected a chat id after starting")
	}

	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected just the greeting, got %d messages", len(msgs))
	}
	if msgs[0].Sender != "support" {
		t.Fatalf("expected support greeting, got sender %q", msgs[0].Sender)
	}
}

func TestSetIdentityRequiresName(t *testing.T) {
	c, _ := startClient(t)
	c.Open()

	if err := c.SetIdentity(context.Background(), "", "maya@example.com"); err == nil {
		t.Fatal("expected error for empty name")
	}
	if got := c.State(); got != StateAwaitingIdentity {
		t.Fatalf("expected panel still awaiting identity, got %v", got)
	}
}

func TestSendAppendsImmediately(t *testing.T) {
	c, _ := startClient(t)
	c.Open()
	if err := c.SetIdentity(context.Background(), "Maya", ""); err != nil {
		t.Fatalf("set identity: %v", err)
	}

	sent, err := c.Send(context.Background(), "Is the Morandi still available?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if sent.Id == "" {
		t.Fatal("expected a server-assigned message id")
	}

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected greeting + sent message, got %d", len(msgs))
	}
	if msgs[1].Id != sent.Id {
		t.Fatalf("expected sent message appended last, got %q", msgs[1].Id)
	}
}

func TestPollAppendsOnlyNewerMessages(t *testing.T) {
	c, fake := startClient(t)
	c.Open()
	if err := c.SetIdentity(context.Background(), "Maya", ""); err != nil {
		t.Fatalf("set identity: %v", err)
	}
	if _, err := c.Send(context.Background(), "Hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	before := c.Messages()

	// a support reply lands after everything the client has seen
	reply := fake.addMessage("support", "Alternus Support", "It is! Would you like it framed?", time.Now().UTC().Add(time.Second))

	c.PollNow(context.Background())

	after := c.Messages()
	if len(after) != len(before)+1 {
		t.Fatalf("expected exactly one new message, had %d now %d", len(before), len(after))
	}
	for i := range before {
		if after[i].Id != before[i].Id {
			t.Fatalf("existing message order changed at %d", i)
		}
	}
	if last := after[len(after)-1]; last.Id != reply.Id {
		t.Fatalf("expected support reply appended last, got %q", last.Id)
	}

	// next poll with an advanced cursor finds nothing new
	c.PollNow(context.Background())
	if got := c.Messages(); len(got) != len(after) {
		t.Fatalf("expected no duplicates on repeat poll, got %d messages", len(got))
	}
}

func TestPollFailureKeepsLocalView(t *testing.T) {
	fake := newFakeChatServer()
	srv := httptest.NewServer(fake.handler(t))
	c := New(srv.URL, time.Hour)
	t.Cleanup(c.Close)

	c.Open()
	if err := c.SetIdentity(context.Background(), "Maya", ""); err != nil {
		t.Fatalf("set identity: %v", err)
	}
	before := c.Messages()

	srv.Close()
	c.PollNow(context.Background())

	if got := c.Messages(); len(got) != len(before) {
		t.Fatalf("expected view unchanged after failed poll, got %d messages", len(got))
	}
	if got := c.State(); got != StateActive {
		t.Fatalf("expected client still active after failed poll, got %v", got)
	}
}

func TestSendInvalidatesInflightPoll(t *testing.T) {
	c, fake := startClient(t)
	c.Open()
	if err := c.SetIdentity(context.Background(), "Maya", ""); err != nil {
		t.Fatalf("set identity: %v", err)
	}

	// a reply the client has not fetched yet, stamped ahead of anything local
	reply := fake.addMessage("support", "Alternus Support", "Still there?", time.Now().UTC().Add(time.Second))

	entered := make(chan struct{})
	release := make(chan struct{})
	fake.stallNextGet(entered, release)

	done := make(chan struct{})
	go func() {
		c.PollNow(context.Background())
		close(done)
	}()
	<-entered

	// the send lands while the poll response is stalled server-side
	sent, err := c.Send(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	close(release)
	<-done

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected greeting + sent message only, got %d", len(msgs))
	}
	if msgs[1].Id != sent.Id {
		t.Fatalf("expected sent message last, got %q", msgs[1].Id)
	}
	for _, m := range msgs {
		if m.Id == reply.Id {
			t.Fatal("superseded poll response must be discarded")
		}
	}

	// the next poll is current again and delivers the reply
	c.PollNow(context.Background())
	msgs = c.Messages()
	if msgs[len(msgs)-1].Id != reply.Id {
		t.Fatal("expected a fresh poll to deliver the reply")
	}
}

func TestResumeWhileActiveIsRejected(t *testing.T) {
	c, _ := startClient(t)
	c.Open()
	if err := c.SetIdentity(context.Background(), "Maya", ""); err != nil {
		t.Fatalf("set identity: %v", err)
	}

	if err := c.Resume(context.Background(), c.ChatID(), "Maya", ""); err == nil {
		t.Fatal("expected resume to be rejected while the panel is active")
	}
	if got := len(c.Messages()); got != 1 {
		t.Fatalf("expected local view untouched, got %d messages", got)
	}
}

func TestCloseDuringIdentityRequestStaysClosed(t *testing.T) {
	c, fake := startClient(t)
	c.Open()

	entered := make(chan struct{})
	release := make(chan struct{})
	fake.stallNextStart(entered, release)

	errc := make(chan error, 1)
	go func() {
		errc <- c.SetIdentity(context.Background(), "Maya", "")
	}()
	<-entered

	// the panel is dismissed while the start request is in flight
	c.Close()
	close(release)

	if err := <-errc; err == nil {
		t.Fatal("expected identity to be refused after the panel was dismissed")
	}
	if got := c.State(); got != StateClosed {
		t.Fatalf("expected closed, got %v", got)
	}
}

func TestResumeRestoresHistory(t *testing.T) {
	c, fake := startClient(t)
	c.Open()
	if err := c.SetIdentity(context.Background(), "Maya", ""); err != nil {
		t.Fatalf("set identity: %v", err)
	}
	if _, err := c.Send(context.Background(), "Hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	chatID := c.ChatID()
	want := len(c.Messages())
	c.Close()

	if got := c.State(); got != StateClosed {
		t.Fatalf("expected closed, got %v", got)
	}

	if err := c.Resume(context.Background(), chatID, "Maya", ""); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if got := c.State(); got != StateActive {
		t.Fatalf("expected active after resume, got %v", got)
	}
	if got := len(c.Messages()); got != want {
		t.Fatalf("expected %d messages after resume, got %d", want, got)
	}

	reply := fake.addMessage("support", "Alternus Support", "Welcome back!", time.Now().UTC().Add(time.Second))
	c.PollNow(context.Background())
	msgs := c.Messages()
	if msgs[len(msgs)-1].Id != reply.Id {
		t.Fatal("expected polling to pick up where the conversation left off")
	}
}

func TestTickerPollsInBackground(t *testing.T) {
	fake := newFakeChatServer()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 20*time.Millisecond)
	t.Cleanup(c.Close)
	c.Open()
	if err := c.SetIdentity(context.Background(), "Maya", ""); err != nil {
		t.Fatalf("set identity: %v", err)
	}

	fake.addMessage("support", "Alternus Support", "Anything I can help with?", time.Now().UTC().Add(time.Second))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(c.Messages()) == 2 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("background poll never picked up the reply, have %d messages", len(c.Messages()))
}
