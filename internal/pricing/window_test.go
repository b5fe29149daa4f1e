package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLastChange(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("never updated", func(t *testing.T) {
		assert.Equal(t, created, lastChange(created, nil))
	})

	t.Run("updated after creation", func(t *testing.T) {
		updated := created.Add(2 * time.Hour)
		assert.Equal(t, updated, lastChange(created, &updated))
	})

	t.Run("stale update timestamp falls back to creation", func(t *testing.T) {
		updated := created.Add(-time.Minute)
		assert.Equal(t, created, lastChange(created, &updated))
	})
}

func TestRemaining(t *testing.T) {
	last := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("full window right after change", func(t *testing.T) {
		assert.Equal(t, EditWindow, Remaining(last, last))
	})

	t.Run("partially consumed", func(t *testing.T) {
		assert.Equal(t, 2*time.Hour, Remaining(last.Add(4*time.Hour), last))
	})

	t.Run("clamped at zero after expiry", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), Remaining(last.Add(9*time.Hour), last))
	})
}

func TestEditable(t *testing.T) {
	last := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.True(t, Editable(last.Add(5*time.Hour+59*time.Minute), last))
	assert.False(t, Editable(last.Add(6*time.Hour), last))
	assert.False(t, Editable(last.Add(6*time.Hour+time.Minute), last))
}
