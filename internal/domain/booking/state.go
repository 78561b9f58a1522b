package booking

import "github.com/clinicdesk/booking-gateway/internal/httperr"

// ===============================
// Selection Phase
// ===============================

type Phase string

const (
	PhaseNoBranch      Phase = "no_branch"
	PhaseBranchPicked  Phase = "branch_selected"
	PhaseDatePicked    Phase = "date_selected"
	PhaseTimePicked    Phase = "time_selected"
	PhaseSubmitting    Phase = "submitting"
	PhaseSuccess       Phase = "success"
	PhaseConflictRetry Phase = "conflict_retry"
	PhaseFailure       Phase = "failure"
)

// ===============================
// Selection
// ===============================

// Selection is the per-session booking state: which branch, which day of
// the window, which time label. TimeLabel is cleared whenever the date or
// branch changes so a stale pick can never survive a context switch.
type Selection struct {
	BranchID  string `json:"branch_id"`
	DateIndex int    `json:"date_index"`
	DateISO   string `json:"date_iso"`
	TimeLabel string `json:"time_label"`
	Phase     Phase  `json:"phase"`

	// CycleID of the week aggregate this selection was made against.
	CycleID string `json:"cycle_id"`
}

func NewSelection() Selection {
	return Selection{Phase: PhaseNoBranch}
}

// ResetForBranch applies a branch switch: index back to 0, time cleared.
func (s *Selection) ResetForBranch(branchID string) {
	s.BranchID = branchID
	s.DateIndex = 0
	s.DateISO = ""
	s.TimeLabel = ""
	s.Phase = PhaseBranchPicked
}

func (s *Selection) SelectDate(index int, dateISO string) {
	s.DateIndex = index
	s.DateISO = dateISO
	s.TimeLabel = ""
	s.Phase = PhaseDatePicked
}

func (s *Selection) SelectTime(label string) {
	s.TimeLabel = label
	s.Phase = PhaseTimePicked
}

// ClearTime drops a stale time pick after a slot conflict. The date stays.
func (s *Selection) ClearTime() {
	s.TimeLabel = ""
	s.Phase = PhaseDatePicked
}

// ===============================
// Validations
// ===============================

func CanSelectDate(current Phase) error {
	switch current {
	case PhaseNoBranch:
		return httperr.ErrBusiness("no_branch_selected")
	case PhaseSubmitting:
		return httperr.ErrBusiness("submission_in_flight")
	}
	return nil
}

func CanSelectTime(current Phase) error {
	switch current {
	case PhaseNoBranch:
		return httperr.ErrBusiness("no_branch_selected")
	case PhaseSubmitting:
		return httperr.ErrBusiness("submission_in_flight")
	}
	return nil
}

func CanSubmit(current Phase) error {
	if current == PhaseSubmitting {
		return httperr.ErrBusiness("submission_in_flight")
	}
	return nil
}
