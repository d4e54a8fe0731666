// Defines the Customer struct that models one bank customer in the simulation.
// Timestamps are set progressively: arrival at creation, service start at
// teller assignment, departure when service completes.

package sim

import "fmt"

// CustomerState represents the lifecycle state of a customer.
type CustomerState string

const (
	StateWaiting   CustomerState = "waiting"
	StateInService CustomerState = "in_service"
	StateDone      CustomerState = "done"
)

// Customer models a single customer's pass through the facility.
// Invariant: ArrivalTime <= ServiceStartTime <= DepartureTime once each
// stage has been reached.
type Customer struct {
	ID int64

	ArrivalTime      float64
	ServiceStartTime float64
	DepartureTime    float64

	// TellerID is -1 until the customer is assigned a teller.
	TellerID int

	State CustomerState
}

// NewCustomer creates a customer in the waiting state at the given time.
func NewCustomer(id int64, arrival float64) *Customer {
	return &Customer{
		ID:          id,
		ArrivalTime: arrival,
		TellerID:    -1,
		State:       StateWaiting,
	}
}

// Wait returns the time spent in line before service began.
func (c *Customer) Wait() float64 {
	return c.ServiceStartTime - c.ArrivalTime
}

// Sojourn returns the total time in system (wait + service).
func (c *Customer) Sojourn() float64 {
	return c.DepartureTime - c.ArrivalTime
}

func (c *Customer) String() string {
	return fmt.Sprintf("customer %d (%s, arrived %.3f)", c.ID, c.State, c.ArrivalTime)
}
