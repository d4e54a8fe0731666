package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event carries a Timestamp (simulated minutes) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ArrivalEvent represents a new customer walking into the bank.
type ArrivalEvent struct {
	time float64
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute admits the customer and schedules the next arrival.
// Arrivals are self-scheduling: each arrival samples the next inter-arrival
// gap, so customer-count runs need no pre-computed horizon.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	cust := sim.handleArrival(e.time)
	logrus.Debugf("<< Arrival: customer %d at %.3f min", cust.ID, e.time)
	sim.scheduleNextArrival(e.time)
}

// DepartureEvent represents a customer finishing service at a teller.
type DepartureEvent struct {
	time       float64
	TellerID   int
	CustomerID int64
}

// Timestamp returns the scheduled time of the DepartureEvent.
func (e *DepartureEvent) Timestamp() float64 {
	return e.time
}

// Execute releases the teller and, if anyone is waiting, immediately starts
// service for the head of the line on the freed teller.
func (e *DepartureEvent) Execute(sim *Simulator) {
	logrus.Debugf(">> Departure: customer %d from teller %d at %.3f min", e.CustomerID, e.TellerID, e.time)
	sim.handleDeparture(e.time, e.TellerID)
}
