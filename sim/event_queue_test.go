package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEvent is a minimal Event for queue tests.
type stubEvent struct {
	t   float64
	tag string
}

func (e *stubEvent) Timestamp() float64 { return e.t }
func (e *stubEvent) Execute(*Simulator) {}

func TestEventQueue_PopsInTimeOrder(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(&stubEvent{t: 3.0, tag: "c"})
	q.Schedule(&stubEvent{t: 1.0, tag: "a"})
	q.Schedule(&stubEvent{t: 2.0, tag: "b"})

	var tags []string
	for q.Len() > 0 {
		ev, err := q.PopNext()
		require.NoError(t, err)
		tags = append(tags, ev.(*stubEvent).tag)
	}
	assert.Equal(t, []string{"a", "b", "c"}, tags)
}

func TestEventQueue_SimultaneousEventsKeepSchedulingOrder(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(&stubEvent{t: 5.0, tag: "first"})
	q.Schedule(&stubEvent{t: 5.0, tag: "second"})
	q.Schedule(&stubEvent{t: 5.0, tag: "third"})

	var tags []string
	for q.Len() > 0 {
		ev, err := q.PopNext()
		require.NoError(t, err)
		tags = append(tags, ev.(*stubEvent).tag)
	}
	assert.Equal(t, []string{"first", "second", "third"}, tags)
}

func TestEventQueue_PopAdvancesClock(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(&stubEvent{t: 2.5})
	q.Schedule(&stubEvent{t: 7.25})

	assert.Equal(t, 0.0, q.Now())

	_, err := q.PopNext()
	require.NoError(t, err)
	assert.Equal(t, 2.5, q.Now())

	_, err = q.PopNext()
	require.NoError(t, err)
	assert.Equal(t, 7.25, q.Now())
}

func TestEventQueue_PopEmptyReturnsError(t *testing.T) {
	q := NewEventQueue()
	_, err := q.PopNext()
	assert.ErrorIs(t, err, ErrEmptyQueue)
}

func TestEventQueue_PeekTime(t *testing.T) {
	q := NewEventQueue()

	_, ok := q.PeekTime()
	assert.False(t, ok)

	q.Schedule(&stubEvent{t: 4.0})
	q.Schedule(&stubEvent{t: 1.5})

	got, ok := q.PeekTime()
	assert.True(t, ok)
	assert.Equal(t, 1.5, got)
	// Peek must not remove the event
	assert.Equal(t, 2, q.Len())
}

func TestEventQueue_SchedulingInThePastPanics(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(&stubEvent{t: 10.0})
	_, err := q.PopNext()
	require.NoError(t, err)

	assert.Panics(t, func() {
		q.Schedule(&stubEvent{t: 5.0})
	})
}
