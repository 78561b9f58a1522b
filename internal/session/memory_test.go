package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/clinicdesk/booking-gateway/internal/domain/booking"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	st := &State{ID: "s1", Selection: domain.NewSelection()}
	require.NoError(t, store.Create(context.Background(), st))

	got, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, domain.PhaseNoBranch, got.Selection.Phase)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	require.NoError(t, store.Create(context.Background(), &State{ID: "s1"}))

	a, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	a.Selection.ResetForBranch("b1")

	b, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, b.Selection.BranchID)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	require.NoError(t, store.Create(context.Background(), &State{ID: "s1"}))

	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Missing(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(context.Background(), "nope"))
}
