package availability

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/clinicdesk/booking-gateway/internal/domain/booking"
)

// Source is the upstream availability endpoint.
type Source interface {
	DayAvailability(ctx context.Context, branchID, dateISO string) ([]domain.TimeSlot, error)
}

type FetchDay struct {
	api Source
	log *zap.Logger
}

func NewFetchDay(api Source, log *zap.Logger) *FetchDay {
	return &FetchDay{api: api, log: log}
}

// Execute returns the bucket for one branch and date. Any upstream failure
// collapses to an empty bucket: one bad day must never abort the week, so
// the error is logged here and goes no further.
func (uc *FetchDay) Execute(ctx context.Context, branchID, dateISO string) domain.DayBucket {
	bucket := domain.DayBucket{Date: dateISO}

	if branchID == "" || dateISO == "" {
		return bucket
	}

	slots, err := uc.api.DayAvailability(ctx, branchID, dateISO)
	if err != nil {
		uc.log.Warn("availability fetch failed, treating day as empty",
			zap.String("branch_id", branchID),
			zap.String("date", dateISO),
			zap.Error(err),
		)
		return bucket
	}

	bucket.Slots = slots
	return bucket
}
