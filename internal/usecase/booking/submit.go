package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/clinicdesk/booking-gateway/internal/audit"
	domain "github.com/clinicdesk/booking-gateway/internal/domain/booking"
	"github.com/clinicdesk/booking-gateway/internal/httperr"
	"github.com/clinicdesk/booking-gateway/internal/infra/clinicapi"
	"github.com/clinicdesk/booking-gateway/internal/session"
	"github.com/clinicdesk/booking-gateway/internal/usecase/availability"
	"github.com/clinicdesk/booking-gateway/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type SubmitInput struct {
	SessionID string

	Name    string
	Phone   string
	Email   string
	Age     int
	Gender  string
	Address string

	Service         string
	ServicePrice    float64
	ServiceDuration int

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// Upstream is the booking endpoint of the clinic API.
type Upstream interface {
	CreateAppointment(ctx context.Context, req clinicapi.CreateAppointmentRequest) (*clinicapi.Appointment, error)
}

type Submit struct {
	sessions session.Store
	api      Upstream
	days     *availability.FetchDay
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewSubmit(
	sessions session.Store,
	api Upstream,
	days *availability.FetchDay,
	auditor *audit.Dispatcher,
	log *zap.Logger,
) *Submit {
	return &Submit{
		sessions: sessions,
		api:      api,
		days:     days,
		audit:    auditor,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates, posts the booking, and settles the selection machine
// according to the outcome. Validation failures never reach the network.
// A slot conflict clears only the time pick and refreshes the chosen day;
// the date stays so the user re-picks a time, not the whole flow.
func (uc *Submit) Execute(ctx context.Context, in SubmitInput) (*clinicapi.Appointment, error) {

	st, err := uc.sessions.Get(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	sel := &st.Selection

	// --------------------------------------------------
	// Re-submission guard
	// --------------------------------------------------
	if err := domain.CanSubmit(sel.Phase); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Client-side validation, before any network call
	// --------------------------------------------------
	if in.Name == "" || in.Phone == "" {
		return nil, httperr.ErrBusiness("missing_required_fields")
	}
	if !validators.IsPhoneValid(in.Phone) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}
	if in.Email != "" && !validators.IsEmailShapeValid(in.Email) {
		return nil, httperr.ErrBusiness("invalid_email")
	}
	if sel.TimeLabel == "" {
		return nil, httperr.ErrBusiness("no_time_selected")
	}

	bucket, ok := st.Week.Bucket(sel.DateIndex)
	if !ok {
		return nil, httperr.ErrBusiness("no_date_selected")
	}
	slot, found := bucket.FindSlot(sel.TimeLabel)
	if !found {
		return nil, httperr.ErrBusiness("slot_not_found")
	}

	// --------------------------------------------------
	// Mark in flight
	// --------------------------------------------------
	sel.Phase = domain.PhaseSubmitting
	if err := uc.sessions.Save(ctx, st); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SessionID: st.ID,
		BranchID:  sel.BranchID,
		Action:    audit.ActionBookingSubmitted,
		Entity:    "booking",
		Metadata:  map[string]any{"date": slot.Date, "time": slot.Time},
	})

	// --------------------------------------------------
	// Submit upstream
	// --------------------------------------------------
	ap, err := uc.api.CreateAppointment(ctx, clinicapi.CreateAppointmentRequest{
		BranchID:        sel.BranchID,
		Service:         in.Service,
		Date:            slot.Date,
		TimeSlot:        slot.Time,
		ServicePrice:    in.ServicePrice,
		ServiceDuration: in.ServiceDuration,
		Notes:           in.Notes,
		Patient: clinicapi.Patient{
			Name:    in.Name,
			Email:   in.Email,
			Contact: in.Phone,
			Age:     in.Age,
			Gender:  in.Gender,
			Address: in.Address,
		},
	})

	if err != nil {
		return nil, uc.settleFailure(ctx, st, slot, err)
	}

	// --------------------------------------------------
	// Success: clear the time pick, keep the week
	// --------------------------------------------------
	sel.TimeLabel = ""
	sel.Phase = domain.PhaseSuccess
	if saveErr := uc.sessions.Save(ctx, st); saveErr != nil {
		uc.log.Warn("booking confirmed but session save failed", zap.Error(saveErr))
	}

	uc.audit.Dispatch(audit.Event{
		SessionID: st.ID,
		BranchID:  sel.BranchID,
		Action:    audit.ActionBookingConfirmed,
		Entity:    "booking",
		EntityID:  ap.ID,
	})

	return ap, nil
}

// settleFailure distinguishes a lost slot race from every other rejection.
func (uc *Submit) settleFailure(
	ctx context.Context,
	st *session.State,
	slot domain.TimeSlot,
	cause error,
) error {
	sel := &st.Selection

	if clinicapi.IsSlotConflict(cause) {
		st.Week.Days[sel.DateIndex] = uc.days.Execute(ctx, sel.BranchID, slot.Date)
		sel.ClearTime()

		if err := uc.sessions.Save(ctx, st); err != nil {
			uc.log.Warn("conflict recovery save failed", zap.Error(err))
		}

		uc.audit.Dispatch(audit.Event{
			SessionID: st.ID,
			BranchID:  sel.BranchID,
			Action:    audit.ActionBookingConflict,
			Entity:    "booking",
			Metadata:  map[string]any{"date": slot.Date, "time": slot.Time},
		})

		return cause
	}

	// recoverable failure: the picked time stays, the user may retry
	sel.Phase = domain.PhaseTimePicked
	if err := uc.sessions.Save(ctx, st); err != nil {
		uc.log.Warn("failure settle save failed", zap.Error(err))
	}

	uc.audit.Dispatch(audit.Event{
		SessionID: st.ID,
		BranchID:  sel.BranchID,
		Action:    audit.ActionBookingFailed,
		Entity:    "booking",
		Metadata:  map[string]any{"error": cause.Error()},
	})

	return cause
}
