package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicdesk/booking-gateway/internal/httperr"
)

func TestResetForBranch_ClearsSelection(t *testing.T) {
	s := NewSelection()
	s.ResetForBranch("branch-1")
	s.SelectDate(3, "2026-09-01")
	s.SelectTime("10:00 AM")

	s.ResetForBranch("branch-2")

	assert.Equal(t, "branch-2", s.BranchID)
	assert.Equal(t, 0, s.DateIndex)
	assert.Empty(t, s.DateISO)
	assert.Empty(t, s.TimeLabel)
	assert.Equal(t, PhaseBranchPicked, s.Phase)
}

func TestSelectDate_ClearsTime(t *testing.T) {
	s := NewSelection()
	s.ResetForBranch("branch-1")
	s.SelectDate(0, "2026-09-01")
	s.SelectTime("10:00 AM")

	s.SelectDate(1, "2026-09-02")

	assert.Equal(t, 1, s.DateIndex)
	assert.Empty(t, s.TimeLabel)
	assert.Equal(t, PhaseDatePicked, s.Phase)
}

func TestClearTime_KeepsDate(t *testing.T) {
	s := NewSelection()
	s.ResetForBranch("branch-1")
	s.SelectDate(4, "2026-09-05")
	s.SelectTime("02:30 PM")

	s.ClearTime()

	assert.Equal(t, 4, s.DateIndex)
	assert.Equal(t, "2026-09-05", s.DateISO)
	assert.Empty(t, s.TimeLabel)
	assert.Equal(t, PhaseDatePicked, s.Phase)
}

func TestCanSubmit_BlocksInFlight(t *testing.T) {
	assert.NoError(t, CanSubmit(PhaseTimePicked))

	err := CanSubmit(PhaseSubmitting)
	assert.True(t, httperr.IsBusiness(err, "submission_in_flight"))
}

func TestCanSelectDate_RequiresBranch(t *testing.T) {
	err := CanSelectDate(PhaseNoBranch)
	assert.True(t, httperr.IsBusiness(err, "no_branch_selected"))

	assert.NoError(t, CanSelectDate(PhaseBranchPicked))
	assert.NoError(t, CanSelectDate(PhaseConflictRetry))
}
