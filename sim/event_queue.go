package sim

import (
	"container/heap"
	"errors"
	"fmt"
)

// ErrEmptyQueue is returned by PopNext when no events remain. Inside a
// correctly driven run the loop checks Len first, so hitting this error
// indicates a scheduling bug.
var ErrEmptyQueue = errors.New("event queue is empty")

// scheduledEvent pairs an Event with its insertion sequence number.
type scheduledEvent struct {
	ev  Event
	seq uint64
}

// eventHeap implements heap.Interface and orders events by timestamp.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
// Equal timestamps fall back to insertion order so simultaneous events are
// served first-come-first-served and runs stay deterministic.
type eventHeap []scheduledEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].ev.Timestamp() != h[j].ev.Timestamp() {
		return h[i].ev.Timestamp() < h[j].ev.Timestamp()
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(scheduledEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventQueue owns the pending-event heap and the simulation clock.
// The clock only moves when an event is popped, and it never moves backward.
type EventQueue struct {
	heap    eventHeap
	nextSeq uint64
	clock   float64
}

// NewEventQueue returns an empty queue with the clock at zero.
func NewEventQueue() *EventQueue {
	return &EventQueue{heap: make(eventHeap, 0)}
}

// Now returns the current simulated time in minutes.
func (q *EventQueue) Now() float64 {
	return q.clock
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.heap)
}

// Schedule inserts an event. Scheduling an event before the current clock is
// a fatal invariant breach: it could only be produced by a negative duration.
func (q *EventQueue) Schedule(ev Event) {
	if ev.Timestamp() < q.clock {
		panic(fmt.Sprintf("event scheduled in the past: t=%.6f < clock=%.6f", ev.Timestamp(), q.clock))
	}
	heap.Push(&q.heap, scheduledEvent{ev: ev, seq: q.nextSeq})
	q.nextSeq++
}

// PeekTime returns the timestamp of the earliest pending event.
// The second return value is false when the queue is empty.
func (q *EventQueue) PeekTime() (float64, bool) {
	if len(q.heap) == 0 {
		return 0, false
	}
	return q.heap[0].ev.Timestamp(), true
}

// PopNext removes and returns the earliest event, advancing the clock to its
// timestamp. A pop that would move the clock backward panics: simulated time
// is monotone and a regression means the engine state is corrupt.
func (q *EventQueue) PopNext() (Event, error) {
	if len(q.heap) == 0 {
		return nil, ErrEmptyQueue
	}
	item := heap.Pop(&q.heap).(scheduledEvent)
	t := item.ev.Timestamp()
	if t < q.clock {
		panic(fmt.Sprintf("clock regression: popped t=%.6f behind clock=%.6f", t, q.clock))
	}
	q.clock = t
	return item.ev, nil
}
