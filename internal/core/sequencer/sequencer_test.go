package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pomopro/internal/core/model"
)

func TestLongBreakEveryFourthFocus(t *testing.T) {
	seq := New(model.DefaultTimerConfig())

	var got []model.Phase
	for i := 0; i < 8; i++ {
		got = append(got, seq.Next(model.PhaseFocus))
	}

	assert.Equal(t, []model.Phase{
		model.PhaseShortBreak, model.PhaseShortBreak, model.PhaseShortBreak, model.PhaseLongBreak,
		model.PhaseShortBreak, model.PhaseShortBreak, model.PhaseShortBreak, model.PhaseLongBreak,
	}, got)
	assert.Equal(t, 8, seq.Cycles())
}

func TestBreakEndFollowsAutoStart(t *testing.T) {
	config := model.DefaultTimerConfig()
	config.AutoStartNext = true
	seq := New(config)
	assert.Equal(t, model.PhaseFocus, seq.Next(model.PhaseShortBreak))
	assert.Equal(t, model.PhaseFocus, seq.Next(model.PhaseLongBreak))

	config.AutoStartNext = false
	seq.UpdateConfig(config)
	assert.Equal(t, model.PhaseIdle, seq.Next(model.PhaseShortBreak))
	assert.Equal(t, model.PhaseIdle, seq.Next(model.PhaseLongBreak))
	assert.Equal(t, 0, seq.Cycles(), "breaks never count as cycles")
}

func TestIdleStaysIdle(t *testing.T) {
	seq := New(model.DefaultTimerConfig())
	assert.Equal(t, model.PhaseIdle, seq.Next(model.PhaseIdle))
	assert.Equal(t, 0, seq.Cycles())
}

func TestUpdateConfigKeepsCycleCount(t *testing.T) {
	seq := New(model.DefaultTimerConfig())
	seq.Next(model.PhaseFocus)
	seq.Next(model.PhaseFocus)

	config := model.DefaultTimerConfig()
	config.CyclesBeforeLongBreak = 3
	seq.UpdateConfig(config)

	assert.Equal(t, model.PhaseLongBreak, seq.Next(model.PhaseFocus))
}

func TestInvalidCadenceIsClamped(t *testing.T) {
	config := model.DefaultTimerConfig()
	config.CyclesBeforeLongBreak = 0
	seq := New(config)

	for i := 0; i < 3; i++ {
		assert.Equal(t, model.PhaseShortBreak, seq.Next(model.PhaseFocus))
	}
	assert.Equal(t, model.PhaseLongBreak, seq.Next(model.PhaseFocus))
}
