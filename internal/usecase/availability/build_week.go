package availability

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/clinicdesk/booking-gateway/internal/domain/booking"
	"github.com/clinicdesk/booking-gateway/internal/timezone"
)

type BuildWeek struct {
	fetchDay *FetchDay
	tz       string
	log      *zap.Logger
}

func NewBuildWeek(fetchDay *FetchDay, tz string, log *zap.Logger) *BuildWeek {
	return &BuildWeek{fetchDay: fetchDay, tz: tz, log: log}
}

// Execute builds the full 7-day aggregate for a branch. The day fetches run
// concurrently; each goroutine owns exactly one index, so completion order
// can never scramble the chronological layout. An empty branchID yields an
// empty aggregate without touching the network.
func (uc *BuildWeek) Execute(ctx context.Context, branchID string) domain.WeekAvailability {
	week := domain.WeekAvailability{
		BranchID:  branchID,
		CycleID:   uuid.NewString(),
		FetchedAt: time.Now(),
	}

	today := timezone.Today(uc.tz)
	for i := range week.Days {
		week.Days[i].Date = today.AddDate(0, 0, i).Format("2006-01-02")
	}

	if branchID == "" {
		return week
	}

	var wg sync.WaitGroup
	for i := 0; i < domain.WindowDays; i++ {
		wg.Add(1)
		go func(i int, dateISO string) {
			defer wg.Done()
			week.Days[i] = uc.fetchDay.Execute(ctx, branchID, dateISO)
		}(i, week.Days[i].Date)
	}
	wg.Wait()

	uc.log.Debug("week availability rebuilt",
		zap.String("branch_id", branchID),
		zap.String("cycle_id", week.CycleID),
		zap.Int("first_selectable", week.FirstSelectableIndex()),
	)

	return week
}
