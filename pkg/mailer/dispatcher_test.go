package mailer

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sportsconnect/api/pkg/circuit"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (f *fakeSender) Send(msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestDispatcher(sender Sender) *Dispatcher {
	return NewDispatcher(sender, circuit.NewBreaker("mail", circuit.DefaultConfig(), nil), 8, 1)
}

func TestDispatcher_Send(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(sender)
	defer d.Close()

	msg := Message{ToName: "Alex", ToEmail: "alex@example.com", Subject: "hello"}
	if err := d.Send(msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if sender.count() != 1 {
		t.Errorf("expected 1 sent message, got %d", sender.count())
	}
}

func TestDispatcher_EnqueueDelivers(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(sender)

	d.Enqueue(Message{ToEmail: "alex@example.com", Subject: "welcome"})
	d.Close()

	if sender.count() != 1 {
		t.Errorf("expected 1 sent message after Close, got %d", sender.count())
	}
}

func TestDispatcher_OpenCircuitFailsFast(t *testing.T) {
	sender := &fakeSender{err: errors.New("provider down")}
	breaker := circuit.NewBreaker("mail", circuit.Config{
		Threshold:        2,
		Timeout:          time.Hour,
		SuccessThreshold: 1,
		MaxHalfOpen:      1,
	}, nil)
	d := NewDispatcher(sender, breaker, 8, 1)
	defer d.Close()

	msg := Message{ToEmail: "alex@example.com"}
	d.Send(msg)
	d.Send(msg)

	if err := d.Send(msg); err != circuit.ErrCircuitOpen {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestDispatcher_EnqueueAfterClose(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(sender)
	d.Close()

	// Must not panic on the closed channel.
	d.Enqueue(Message{ToEmail: "alex@example.com"})

	if sender.count() != 0 {
		t.Errorf("expected no sends after Close, got %d", sender.count())
	}
}

func TestRenderOTP(t *testing.T) {
	msg, err := RenderOTP("Alex", "alex@example.com", "4821", 5)
	if err != nil {
		t.Fatalf("RenderOTP() error = %v", err)
	}
	if msg.ToEmail != "alex@example.com" {
		t.Errorf("unexpected recipient %q", msg.ToEmail)
	}
	if !strings.Contains(msg.HTML, "4821") {
		t.Error("rendered HTML is missing the code")
	}
	if !strings.Contains(msg.HTML, "expire in 5 minutes") {
		t.Error("rendered HTML is missing the expiry notice")
	}
	if !strings.Contains(msg.HTML, "Alex") {
		t.Error("rendered HTML is missing the recipient name")
	}
}

func TestRenderOTP_EscapesName(t *testing.T) {
	msg, err := RenderOTP(`<script>alert(1)</script>`, "x@example.com", "1000", 5)
	if err != nil {
		t.Fatalf("RenderOTP() error = %v", err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Error("recipient name was not HTML-escaped")
	}
}

func TestRenderWelcome(t *testing.T) {
	msg, err := RenderWelcome("Jordan", "jordan@example.com")
	if err != nil {
		t.Fatalf("RenderWelcome() error = %v", err)
	}
	if msg.Subject != "Welcome to SportsConnect!" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Jordan") {
		t.Error("rendered HTML is missing the recipient name")
	}
}
