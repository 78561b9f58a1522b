package selection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicdesk/booking-gateway/internal/audit"
	domain "github.com/clinicdesk/booking-gateway/internal/domain/booking"
	"github.com/clinicdesk/booking-gateway/internal/httperr"
	"github.com/clinicdesk/booking-gateway/internal/session"
	"github.com/clinicdesk/booking-gateway/internal/usecase/availability"
)

// Usecase drives the per-session selection machine: branch, then date,
// then time. Every mutation round-trips through the session store so the
// gateway can run with more than one replica.
type Usecase struct {
	sessions session.Store
	weeks    *availability.BuildWeek
	days     *availability.FetchDay
	audit    *audit.Dispatcher
	log      *zap.Logger

	// applied explicitly at session start when configured; never inferred
	// from "first branch in the list"
	defaultBranchID string
}

func New(
	sessions session.Store,
	weeks *availability.BuildWeek,
	days *availability.FetchDay,
	auditor *audit.Dispatcher,
	defaultBranchID string,
	log *zap.Logger,
) *Usecase {
	return &Usecase{
		sessions:        sessions,
		weeks:           weeks,
		days:            days,
		audit:           auditor,
		defaultBranchID: defaultBranchID,
		log:             log,
	}
}

// --------------------------------------------------
// Start
// --------------------------------------------------

func (uc *Usecase) Start(ctx context.Context) (*session.State, error) {
	st := &session.State{
		ID:        uuid.NewString(),
		Selection: domain.NewSelection(),
		CreatedAt: time.Now(),
	}

	if err := uc.sessions.Create(ctx, st); err != nil {
		return nil, err
	}

	if uc.defaultBranchID != "" {
		return uc.ChooseBranch(ctx, st.ID, uc.defaultBranchID)
	}

	return st, nil
}

func (uc *Usecase) Current(ctx context.Context, sessionID string) (*session.State, error) {
	return uc.sessions.Get(ctx, sessionID)
}

// --------------------------------------------------
// Branch
// --------------------------------------------------

// ChooseBranch resets the selection and rebuilds the whole week. If the
// session moved to a different branch while the rebuild was in flight, the
// late aggregate is discarded instead of clobbering the newer one.
func (uc *Usecase) ChooseBranch(ctx context.Context, sessionID, branchID string) (*session.State, error) {
	if branchID == "" {
		return nil, httperr.ErrBusiness("missing_branch")
	}

	st, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if st.Selection.Phase == domain.PhaseSubmitting {
		return nil, httperr.ErrBusiness("submission_in_flight")
	}

	st.Selection.ResetForBranch(branchID)
	if err := uc.sessions.Save(ctx, st); err != nil {
		return nil, err
	}

	week := uc.weeks.Execute(ctx, branchID)

	// The rebuild may have raced a concurrent branch switch. Re-read and
	// compare identities before publishing.
	st, err = uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if st.Selection.BranchID != week.BranchID {
		uc.log.Info("discarding stale availability cycle",
			zap.String("stale_branch", week.BranchID),
			zap.String("current_branch", st.Selection.BranchID),
		)
		return st, nil
	}

	applyWeek(st, week)

	if err := uc.sessions.Save(ctx, st); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SessionID: st.ID,
		BranchID:  branchID,
		Action:    audit.ActionWeekRebuilt,
		Entity:    "availability",
		Metadata:  map[string]any{"cycle_id": week.CycleID},
	})

	return st, nil
}

// applyWeek publishes a freshly built aggregate into the session and, when
// no date is chosen yet, points the default date at the first day that has
// slots at all. Day 0 may be empty; the default must skip past it.
func applyWeek(st *session.State, week domain.WeekAvailability) {
	st.Week = week
	st.Selection.CycleID = week.CycleID

	if st.Selection.DateISO == "" {
		if idx := week.FirstSelectableIndex(); idx >= 0 {
			st.Selection.DateISO = week.Days[idx].Date
		}
	}
}

// --------------------------------------------------
// Date
// --------------------------------------------------

// ChooseDate picks a day of the window and refreshes that single day, so a
// slot freed or taken since the batch fetch shows up before the user picks
// a time.
func (uc *Usecase) ChooseDate(ctx context.Context, sessionID string, index int) (*session.State, error) {
	st, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanSelectDate(st.Selection.Phase); err != nil {
		return nil, err
	}

	bucket, ok := st.Week.Bucket(index)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_date_index")
	}
	if !bucket.HasSlots() {
		return nil, httperr.ErrBusiness("no_slots_for_date")
	}

	st.Selection.SelectDate(index, bucket.Date)
	st.Week.Days[index] = uc.days.Execute(ctx, st.Selection.BranchID, bucket.Date)

	if err := uc.sessions.Save(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

// --------------------------------------------------
// Time
// --------------------------------------------------

func (uc *Usecase) ChooseTime(ctx context.Context, sessionID, label string) (*session.State, error) {
	if label == "" {
		return nil, httperr.ErrBusiness("missing_time")
	}

	st, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanSelectTime(st.Selection.Phase); err != nil {
		return nil, err
	}

	bucket, ok := st.Week.Bucket(st.Selection.DateIndex)
	if !ok || !bucket.HasSlots() {
		return nil, httperr.ErrBusiness("no_date_selected")
	}

	slot, found := bucket.FindSlot(label)
	if !found {
		return nil, httperr.ErrBusiness("slot_not_found")
	}
	if slot.IsBooked {
		return nil, httperr.ErrBusiness("slot_booked")
	}
	if !slot.IsAvailable {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	st.Selection.SelectTime(label)
	st.Selection.DateISO = slot.Date

	if err := uc.sessions.Save(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}
