package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotLifecycle(t *testing.T) {
	st := newSlotTable(2)
	assert.Equal(t, 2, st.size())
	assert.Equal(t, slotEmpty, st.state(0))
	assert.True(t, st.reusable(0), "an empty slot accepts a task")

	running := newFakeTask(false)
	st.assign(0, running)
	assert.Equal(t, slotRunning, st.state(0))
	assert.False(t, st.reusable(0))

	close(running.done)
	assert.Equal(t, slotFinished, st.state(0))
	assert.True(t, st.reusable(0), "a finished slot accepts a new task")

	st.assign(0, newFakeTask(false))
	assert.Equal(t, slotRunning, st.state(0))
}

func TestSlotAssignOverRunningPanics(t *testing.T) {
	st := newSlotTable(1)
	st.assign(0, newFakeTask(false))
	assert.Panics(t, func() {
		st.assign(0, newFakeTask(true))
	})
}

func TestSlotActive(t *testing.T) {
	st := newSlotTable(3)
	assert.Empty(t, st.active())

	st.assign(0, newFakeTask(false))
	st.assign(2, newFakeTask(true))
	assert.Len(t, st.active(), 2, "finished tasks still need joining")
}
