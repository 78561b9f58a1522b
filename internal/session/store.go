package session

import (
	"context"
	"time"

	"github.com/clinicdesk/booking-gateway/internal/domain/booking"
	"github.com/clinicdesk/booking-gateway/internal/httperr"
)

// State is everything the gateway keeps for one booking session: the
// selection machine and the week aggregate it was made against. The
// upstream clinic API stays the sole owner of actual appointment records.
type State struct {
	ID        string                   `json:"id"`
	Selection booking.Selection        `json:"selection"`
	Week      booking.WeekAvailability `json:"week"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

var ErrNotFound = httperr.ErrBusiness("session_not_found")

type Store interface {
	Create(ctx context.Context, st *State) error
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, st *State) error
	Delete(ctx context.Context, id string) error
}
