package selection

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinicdesk/booking-gateway/internal/audit"
	domain "github.com/clinicdesk/booking-gateway/internal/domain/booking"
	"github.com/clinicdesk/booking-gateway/internal/httperr"
	"github.com/clinicdesk/booking-gateway/internal/session"
	"github.com/clinicdesk/booking-gateway/internal/timezone"
	"github.com/clinicdesk/booking-gateway/internal/usecase/availability"
)

type fakeSource struct {
	mu    sync.Mutex
	calls []string
	slots map[string]map[string][]domain.TimeSlot // branch → date → slots
}

func (f *fakeSource) DayAvailability(_ context.Context, branchID, dateISO string) ([]domain.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, branchID+"|"+dateISO)
	return f.slots[branchID][dateISO], nil
}

func windowDates(t *testing.T) []string {
	t.Helper()
	today := timezone.Today("UTC")
	dates := make([]string, domain.WindowDays)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, i).Format("2006-01-02")
	}
	return dates
}

func newUsecase(src *fakeSource, defaultBranch string) (*Usecase, session.Store) {
	log := zap.NewNop()
	store := session.NewMemoryStore(time.Hour)
	fetchDay := availability.NewFetchDay(src, log)
	buildWeek := availability.NewBuildWeek(fetchDay, "UTC", log)
	auditor := audit.NewDispatcher(audit.NopSink{}, log)

	return New(store, buildWeek, fetchDay, auditor, defaultBranch, log), store
}

func slotsFor(dates []string, branch string, byIndex map[int][]domain.TimeSlot) *fakeSource {
	perDate := make(map[string][]domain.TimeSlot)
	for idx, slots := range byIndex {
		for i := range slots {
			slots[i].Date = dates[idx]
		}
		perDate[dates[idx]] = slots
	}
	return &fakeSource{slots: map[string]map[string][]domain.TimeSlot{branch: perDate}}
}

func TestChooseBranch_DefaultDateSkipsEmptyDays(t *testing.T) {
	dates := windowDates(t)
	src := slotsFor(dates, "b1", map[int][]domain.TimeSlot{
		2: {{Time: "10:00 AM", IsAvailable: true}},
	})
	uc, _ := newUsecase(src, "")

	st, err := uc.Start(context.Background())
	require.NoError(t, err)

	st, err = uc.ChooseBranch(context.Background(), st.ID, "b1")
	require.NoError(t, err)

	// default date points at the first day with slots, index stays 0
	assert.Equal(t, dates[2], st.Selection.DateISO)
	assert.Equal(t, 0, st.Selection.DateIndex)
	assert.Equal(t, domain.PhaseBranchPicked, st.Selection.Phase)
	assert.Equal(t, 2, st.Week.FirstSelectableIndex())
}

func TestChooseBranch_EmptyWeekLeavesDateUnset(t *testing.T) {
	src := &fakeSource{slots: map[string]map[string][]domain.TimeSlot{}}
	uc, _ := newUsecase(src, "")

	st, err := uc.Start(context.Background())
	require.NoError(t, err)

	st, err = uc.ChooseBranch(context.Background(), st.ID, "b1")
	require.NoError(t, err)

	assert.Empty(t, st.Selection.DateISO)
	assert.Equal(t, -1, st.Week.FirstSelectableIndex())
}

func TestChooseBranch_SwitchResetsSelection(t *testing.T) {
	dates := windowDates(t)
	src := slotsFor(dates, "b1", map[int][]domain.TimeSlot{
		0: {{Time: "10:00 AM", IsAvailable: true}},
	})
	src.slots["b2"] = src.slots["b1"]
	uc, _ := newUsecase(src, "")

	st, err := uc.Start(context.Background())
	require.NoError(t, err)

	_, err = uc.ChooseBranch(context.Background(), st.ID, "b1")
	require.NoError(t, err)
	_, err = uc.ChooseDate(context.Background(), st.ID, 0)
	require.NoError(t, err)
	_, err = uc.ChooseTime(context.Background(), st.ID, "10:00 AM")
	require.NoError(t, err)

	// switching branches clears everything, even though b2 day 0 has slots
	st, err = uc.ChooseBranch(context.Background(), st.ID, "b2")
	require.NoError(t, err)

	assert.Equal(t, "b2", st.Selection.BranchID)
	assert.Equal(t, 0, st.Selection.DateIndex)
	assert.Empty(t, st.Selection.TimeLabel)
}

func TestChooseBranch_MissingBranchRejected(t *testing.T) {
	uc, _ := newUsecase(&fakeSource{}, "")

	st, err := uc.Start(context.Background())
	require.NoError(t, err)

	_, err = uc.ChooseBranch(context.Background(), st.ID, "")
	assert.True(t, httperr.IsBusiness(err, "missing_branch"))
}

// blockingSource parks every availability call until released, so a test
// can interleave a branch switch with an in-flight rebuild.
type blockingSource struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingSource) DayAvailability(_ context.Context, _, _ string) ([]domain.TimeSlot, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return []domain.TimeSlot{{Time: "10:00 AM", IsAvailable: true}}, nil
}

func TestChooseBranch_StaleCycleDiscarded(t *testing.T) {
	src := &blockingSource{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	log := zap.NewNop()
	store := session.NewMemoryStore(time.Hour)
	fetchDay := availability.NewFetchDay(src, log)
	buildWeek := availability.NewBuildWeek(fetchDay, "UTC", log)
	uc := New(store, buildWeek, fetchDay, audit.NewDispatcher(audit.NopSink{}, log), "", log)

	st, err := uc.Start(context.Background())
	require.NoError(t, err)

	type result struct {
		st  *session.State
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := uc.ChooseBranch(context.Background(), st.ID, "b1")
		done <- result{out, err}
	}()

	<-src.started

	// a concurrent request switches the session to b2 while the b1
	// rebuild is still in flight
	cur, err := store.Get(context.Background(), st.ID)
	require.NoError(t, err)
	cur.Selection.ResetForBranch("b2")
	require.NoError(t, store.Save(context.Background(), cur))

	close(src.release)
	res := <-done
	require.NoError(t, res.err)

	// the late b1 aggregate is discarded, not published
	assert.Equal(t, "b2", res.st.Selection.BranchID)
	assert.NotEqual(t, "b1", res.st.Week.BranchID)

	cur, err = store.Get(context.Background(), st.ID)
	require.NoError(t, err)
	assert.Equal(t, "b2", cur.Selection.BranchID)
	assert.NotEqual(t, "b1", cur.Week.BranchID)
}

func TestChooseDate_RefreshesSingleDay(t *testing.T) {
	dates := windowDates(t)
	src := slotsFor(dates, "b1", map[int][]domain.TimeSlot{
		1: {{Time: "10:00 AM", IsAvailable: true}},
	})
	uc, _ := newUsecase(src, "")

	st, err := uc.Start(context.Background())
	require.NoError(t, err)
	_, err = uc.ChooseBranch(context.Background(), st.ID, "b1")
	require.NoError(t, err)

	src.mu.Lock()
	before := len(src.calls)
	src.mu.Unlock()

	st, err = uc.ChooseDate(context.Background(), st.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, st.Selection.DateIndex)
	assert.Equal(t, dates[1], st.Selection.DateISO)
	assert.Empty(t, st.Selection.TimeLabel)

	src.mu.Lock()
	defer src.mu.Unlock()
	require.Equal(t, before+1, len(src.calls))
	assert.Equal(t, "b1|"+dates[1], src.calls[len(src.calls)-1])
}

func TestChooseDate_EmptyDayRejected(t *testing.T) {
	dates := windowDates(t)
	src := slotsFor(dates, "b1", map[int][]domain.TimeSlot{
		1: {{Time: "10:00 AM", IsAvailable: true}},
	})
	uc, _ := newUsecase(src, "")

	st, err := uc.Start(context.Background())
	require.NoError(t, err)
	_, err = uc.ChooseBranch(context.Background(), st.ID, "b1")
	require.NoError(t, err)

	_, err = uc.ChooseDate(context.Background(), st.ID, 3)
	assert.True(t, httperr.IsBusiness(err, "no_slots_for_date"))

	_, err = uc.ChooseDate(context.Background(), st.ID, 9)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_index"))
}

func TestChooseTime_ValidatesSlotFlags(t *testing.T) {
	dates := windowDates(t)
	src := slotsFor(dates, "b1", map[int][]domain.TimeSlot{
		0: {
			{Time: "10:00 AM", IsAvailable: true},
			{Time: "10:30 AM", IsAvailable: false, IsBooked: true},
			{Time: "11:00 AM", IsAvailable: false},
		},
	})
	uc, _ := newUsecase(src, "")

	st, err := uc.Start(context.Background())
	require.NoError(t, err)
	_, err = uc.ChooseBranch(context.Background(), st.ID, "b1")
	require.NoError(t, err)
	_, err = uc.ChooseDate(context.Background(), st.ID, 0)
	require.NoError(t, err)

	_, err = uc.ChooseTime(context.Background(), st.ID, "10:30 AM")
	assert.True(t, httperr.IsBusiness(err, "slot_booked"))

	_, err = uc.ChooseTime(context.Background(), st.ID, "11:00 AM")
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))

	_, err = uc.ChooseTime(context.Background(), st.ID, "09:00 AM")
	assert.True(t, httperr.IsBusiness(err, "slot_not_found"))

	st, err = uc.ChooseTime(context.Background(), st.ID, "10:00 AM")
	require.NoError(t, err)
	assert.Equal(t, "10:00 AM", st.Selection.TimeLabel)
	assert.Equal(t, domain.PhaseTimePicked, st.Selection.Phase)
}

func TestStart_AppliesConfiguredDefaultBranch(t *testing.T) {
	dates := windowDates(t)
	src := slotsFor(dates, "main", map[int][]domain.TimeSlot{
		0: {{Time: "10:00 AM", IsAvailable: true}},
	})
	uc, _ := newUsecase(src, "main")

	st, err := uc.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "main", st.Selection.BranchID)
	assert.Equal(t, domain.PhaseBranchPicked, st.Selection.Phase)
}
