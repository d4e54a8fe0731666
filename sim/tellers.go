package sim

import "fmt"

// Teller is one service position. Exactly c tellers exist for the lifetime
// of a run; status toggles only through Assign and Release.
type Teller struct {
	ID       int
	Busy     bool
	BusyTime float64 // accumulated minutes spent serving customers
	Current  *Customer
}

// TellerPool tracks the c identical tellers and their busy-time accumulation.
type TellerPool struct {
	tellers []Teller
}

// NewTellerPool creates a pool of c idle tellers with ids 0..c-1.
func NewTellerPool(c int) *TellerPool {
	p := &TellerPool{tellers: make([]Teller, c)}
	for i := range p.tellers {
		p.tellers[i].ID = i
	}
	return p
}

// Size returns the number of tellers in the pool.
func (p *TellerPool) Size() int {
	return len(p.tellers)
}

// BusyCount returns how many tellers are currently serving a customer.
func (p *TellerPool) BusyCount() int {
	n := 0
	for i := range p.tellers {
		if p.tellers[i].Busy {
			n++
		}
	}
	return n
}

// FindIdle returns the lowest-id idle teller. The id tie-break keeps
// assignment deterministic for a given event sequence.
func (p *TellerPool) FindIdle() (int, bool) {
	for i := range p.tellers {
		if !p.tellers[i].Busy {
			return p.tellers[i].ID, true
		}
	}
	return -1, false
}

// Assign puts the customer on the given teller, stamping the service start
// at the current clock, and returns the departure time implied by the
// sampled service duration. Assigning onto a busy teller panics.
func (p *TellerPool) Assign(tellerID int, cust *Customer, now, serviceDur float64) float64 {
	t := &p.tellers[tellerID]
	if t.Busy {
		panic(fmt.Sprintf("assign to busy teller %d (serving customer %d)", tellerID, t.Current.ID))
	}
	t.Busy = true
	t.Current = cust
	cust.TellerID = tellerID
	cust.ServiceStartTime = now
	cust.State = StateInService
	return now + serviceDur
}

// Release frees the teller at the current clock, accumulating the elapsed
// service span into its busy time, and returns the customer who just
// finished. Releasing an idle teller panics.
func (p *TellerPool) Release(tellerID int, now float64) *Customer {
	t := &p.tellers[tellerID]
	if !t.Busy {
		panic(fmt.Sprintf("release of idle teller %d", tellerID))
	}
	cust := t.Current
	t.BusyTime += now - cust.ServiceStartTime
	t.Busy = false
	t.Current = nil
	return cust
}

// CloseOut accumulates busy time up to end for tellers still serving a
// customer when a run stops, without releasing them. Called exactly once at
// finalization; under a time-horizon stop the in-flight service spans would
// otherwise be lost.
func (p *TellerPool) CloseOut(end float64) {
	for i := range p.tellers {
		t := &p.tellers[i]
		if t.Busy {
			t.BusyTime += end - t.Current.ServiceStartTime
		}
	}
}

// Utilizations returns the busy fraction of each teller over the elapsed
// simulated time, in teller-id order.
func (p *TellerPool) Utilizations(elapsed float64) []float64 {
	out := make([]float64, len(p.tellers))
	if elapsed <= 0 {
		return out
	}
	for i := range p.tellers {
		out[i] = p.tellers[i].BusyTime / elapsed
	}
	return out
}
