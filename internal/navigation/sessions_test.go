package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionManager(t *testing.T) {
	now := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	m := NewSessionManager(func() *Controller {
		c := NewController(Deps{})
		c.now = clock
		c.lastActive = clock()
		return c
	}, time.Hour, zap.NewNop())
	m.now = clock

	idA, a := m.Create()
	idB, _ := m.Create()
	require.NotEqual(t, idA, idB)
	assert.Equal(t, 2, m.Len())

	got, err := m.Get(idA)
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	now = now.Add(45 * time.Minute)
	_, err = a.Dispatch(t.Context(), LearnMore{})
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	_, err = m.Get(idB)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(idA)
	assert.NoError(t, err)

	m.Delete(idA)
	assert.Zero(t, m.Len())
}
