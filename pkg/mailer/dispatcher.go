package mailer

import (
	"sync"

	"go.uber.org/zap"

	"github.com/sportsconnect/api/pkg/circuit"
	"github.com/sportsconnect/api/pkg/logger"
)

// Dispatcher sends mail through a bounded worker pool, with every send
// guarded by the circuit breaker. Send is synchronous; Enqueue is
// fire-and-forget and drops when the queue is full.
type Dispatcher struct {
	sender  Sender
	breaker *circuit.Breaker
	queue   chan Message
	wg      sync.WaitGroup
	closeMu sync.Mutex
	closed  bool
}

func NewDispatcher(sender Sender, breaker *circuit.Breaker, queueSize, workers int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}

	d := &Dispatcher{
		sender:  sender,
		breaker: breaker,
		queue:   make(chan Message, queueSize),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.queue {
		if err := d.Send(msg); err != nil {
			logger.GetLogger().Warn("Background email dropped",
				zap.String("to", msg.ToEmail),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
		}
	}
}

// Send delivers msg synchronously through the breaker.
func (d *Dispatcher) Send(msg Message) error {
	return d.breaker.Execute(func() error {
		return d.sender.Send(msg)
	})
}

// Enqueue hands msg to the worker pool without waiting. A full queue
// drops the message; callers treat these emails as best-effort.
func (d *Dispatcher) Enqueue(msg Message) {
	d.closeMu.Lock()
	defer d.closeMu.Unlock()
	if d.closed {
		return
	}
	select {
	case d.queue <- msg:
	default:
		logger.GetLogger().Warn("Mail queue full, dropping message",
			zap.String("to", msg.ToEmail),
			zap.String("subject", msg.Subject),
		)
	}
}

// Close stops accepting messages and waits for in-flight sends.
func (d *Dispatcher) Close() {
	d.closeMu.Lock()
	if d.closed {
		d.closeMu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.closeMu.Unlock()

	d.wg.Wait()
}
