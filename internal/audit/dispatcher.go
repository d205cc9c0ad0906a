package audit

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	ActionUserRegistered = "user_registered"
	ActionProductCreated = "product_created"
	ActionProductDeleted = "product_deleted"
	ActionProductSold    = "product_sold"
	ActionSaleClaimed    = "sale_claimed"
	ActionSellerCreated  = "seller_created"
	ActionSellerDeleted  = "seller_deleted"
)

type Event struct {
	ActorID  *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// ID is a convenience for the pointer fields of Event.
func ID(v uint) *uint {
	return &v
}

// Dispatcher writes events from a single background worker so that audit
// never slows down or fails a request. A nil Dispatcher drops everything.
type Dispatcher struct {
	logger *Logger
	log    logrus.FieldLogger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger *Logger, log logrus.FieldLogger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.logger.Log(context.Background(), ev); err != nil {
			d.log.WithError(err).WithField("action", ev.Action).Error("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
