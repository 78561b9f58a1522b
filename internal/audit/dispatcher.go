package audit

import "go.uber.org/zap"

const (
	ActionWeekRebuilt      = "week_rebuilt"
	ActionBookingSubmitted = "booking_submitted"
	ActionBookingConfirmed = "booking_confirmed"
	ActionBookingConflict  = "booking_conflict"
	ActionBookingFailed    = "booking_failed"
)

type Event struct {
	SessionID string
	BranchID  string
	Action    string
	Entity    string
	EntityID  string
	Metadata  any
}

// Dispatcher writes audit events off the request path. The queue is
// bounded; when it fills, events are dropped rather than slowing a booking.
type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Log(
			ev.SessionID,
			ev.BranchID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Warn("audit write failed", zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event",
			zap.String("action", ev.Action),
		)
	}
}
