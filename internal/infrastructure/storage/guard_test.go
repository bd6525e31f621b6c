package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails writes while broken is set
type flakyStore struct {
	*MemoryStore
	broken bool
	writes int
}

func (f *flakyStore) Set(key string, data []byte) error {
	f.writes++
	if f.broken {
		return errors.New("disk full")
	}
	return f.MemoryStore.Set(key, data)
}

func newGuardedForTest(settings GuardSettings) (*Guarded, *flakyStore, *time.Time) {
	inner := &flakyStore{MemoryStore: NewMemoryStore()}
	g := NewGuarded(inner, settings)
	now := time.Unix(0, 0)
	g.now = func() time.Time { return now }
	return g, inner, &now
}

func TestGuardedOpensAfterConsecutiveFailures(t *testing.T) {
	var transitions []string
	g, inner, _ := newGuardedForTest(GuardSettings{
		MaxFailures: 2,
		Cooldown:    time.Minute,
		OnStateChange: func(from, to GuardState) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})
	inner.broken = true

	assert.Error(t, g.Set("a", []byte("1")))
	assert.Equal(t, GuardClosed, g.State())
	assert.Error(t, g.Set("a", []byte("1")))
	assert.Equal(t, GuardOpen, g.State())

	assert.ErrorIs(t, g.Set("a", []byte("1")), ErrCircuitOpen)
	assert.Equal(t, 2, inner.writes, "open circuit skips the store")
	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestGuardedProbesAfterCooldown(t *testing.T) {
	g, inner, now := newGuardedForTest(GuardSettings{MaxFailures: 1, Cooldown: time.Minute})
	inner.broken = true
	require.Error(t, g.Set("a", []byte("1")))
	require.Equal(t, GuardOpen, g.State())

	*now = now.Add(time.Minute)
	assert.Equal(t, GuardHalfOpen, g.State())
	assert.Error(t, g.Set("a", []byte("1")), "failed probe")
	assert.Equal(t, GuardOpen, g.State())

	*now = now.Add(time.Minute)
	inner.broken = false
	require.NoError(t, g.Set("a", []byte("2")))
	assert.Equal(t, GuardClosed, g.State())

	data, found, err := g.Get("a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("2"), data)
}

func TestGuardedIgnoresInvalidKeys(t *testing.T) {
	g, _, _ := newGuardedForTest(GuardSettings{MaxFailures: 1})

	assert.ErrorIs(t, g.Set("../etc", []byte("x")), ErrInvalidKey)
	assert.Equal(t, GuardClosed, g.State())
}
