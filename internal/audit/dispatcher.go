package audit

import (
	"sync"

	"github.com/rs/zerolog"
)

// Actions written by the booking and owner flows.
const (
	ActionBookingCreated    = "booking_created"
	ActionBookingAccepted   = "booking_accepted"
	ActionBookingCompleted  = "booking_completed"
	ActionBookingCancelled  = "booking_cancelled"
	ActionBookingAcceptLost = "booking_accept_lost"

	ActionSalonRegistered   = "salon_registered"
	ActionSalonUpdated      = "salon_updated"
	ActionServiceAdded      = "service_added"
	ActionWorkerAdded       = "worker_added"
	ActionSignupCodeCreated = "signup_code_created"
	ActionSignupCodeUsed    = "signup_code_redeemed"
	ActionWorkerToggled     = "worker_availability_toggled"
	ActionReviewCreated     = "review_created"
)

type Event struct {
	SalonID  uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Recorder accepts audit events without blocking the caller.
type Recorder interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	logger *Logger
	log    zerolog.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log.With().Str("component", "audit").Logger(),
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.logger.Log(
			ev.SalonID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch never blocks: when the queue is full the event is dropped.
// Events arriving after Close are dropped too.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn().Str("action", ev.Action).Msg("audit dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}

// Ptr is a shorthand for optional ids in events.
func Ptr(id uint) *uint {
	return &id
}
