package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pomopro/internal/core/model"
	"pomopro/internal/core/timekeeper"
)

func TestManagerStartsIdle(t *testing.T) {
	manager := New(nil, Callbacks{})

	assert.Equal(t, "Status: Idle", manager.StatusLabel())
	assert.False(t, manager.startItem.Disabled)
	assert.True(t, manager.pauseItem.Disabled)
	assert.True(t, manager.skipItem.Disabled)
}

func TestManagerFollowsTimerEvents(t *testing.T) {
	manager := New(nil, Callbacks{})

	manager.ApplyEventUnsafe(timekeeper.Event{
		Type:             timekeeper.EventProgress,
		Phase:            model.PhaseFocus,
		RemainingSeconds: 1499,
		Running:          true,
	})
	assert.Equal(t, "Status: Focus 24:59", manager.StatusLabel())
	assert.True(t, manager.startItem.Disabled)
	assert.False(t, manager.skipItem.Disabled)
	assert.Equal(t, "Pause", manager.pauseItem.Label)

	manager.ApplyEventUnsafe(timekeeper.Event{
		Type:             timekeeper.EventPauseChange,
		Phase:            model.PhaseFocus,
		RemainingSeconds: 1499,
		Running:          true,
		Paused:           true,
	})
	assert.Equal(t, "Status: Focus 24:59 (paused)", manager.StatusLabel())
	assert.Equal(t, "Resume", manager.pauseItem.Label)

	manager.ApplyEventUnsafe(timekeeper.Event{Type: timekeeper.EventStatus, Message: "Reset"})
	assert.Equal(t, "Status: Focus 24:59 (paused)", manager.StatusLabel())
}

func TestMenuItemsInvokeCallbacks(t *testing.T) {
	calls := 0
	manager := New(nil, Callbacks{OnSkip: func() { calls++ }})

	manager.skipItem.Action()
	manager.resetItem.Action()

	assert.Equal(t, 1, calls)
}
