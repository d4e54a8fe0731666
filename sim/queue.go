// Implements the WaitLine, which holds all customers waiting for a teller.
// Customers are enqueued on arrival when no teller is free.

package sim

import "errors"

// ErrEmptyLine is returned by Dequeue on an empty line. The engine only
// dequeues after checking Len, so this error surfacing mid-run indicates a
// scheduling bug rather than an expected condition.
var ErrEmptyLine = errors.New("waiting line is empty")

// WaitLine is the FIFO waiting line of customers who have arrived but not
// yet been assigned a teller. Capacity is unbounded: finite waiting rooms
// are not modeled.
type WaitLine struct {
	line []*Customer
}

// Enqueue adds a customer to the back of the line.
func (wl *WaitLine) Enqueue(c *Customer) {
	wl.line = append(wl.line, c)
}

// Dequeue removes and returns the customer at the head of the line.
func (wl *WaitLine) Dequeue() (*Customer, error) {
	if len(wl.line) == 0 {
		return nil, ErrEmptyLine
	}
	head := wl.line[0]
	wl.line = wl.line[1:]
	return head, nil
}

// Peek returns the customer at the head of the line without removing it.
// Returns nil if the line is empty.
func (wl *WaitLine) Peek() *Customer {
	if len(wl.line) == 0 {
		return nil
	}
	return wl.line[0]
}

// Len returns the number of customers in the line.
func (wl *WaitLine) Len() int {
	return len(wl.line)
}
