// sim/simulator.go
package sim

import (
	"math"

	"github.com/sirupsen/logrus"
)

// maxEventIterations bounds the event loop against a stopping condition that
// can never be reached (e.g. a customer-count target after arrivals shut
// off). Purely defensive; never hit in a well-formed run.
const maxEventIterations = 50_000_000

// Simulator is the core object holding the clock, the event queue, the
// waiting line, the teller pool, and the statistics for one replication.
// All mutable state lives here; replications therefore share nothing and
// can run concurrently.
type Simulator struct {
	Events *EventQueue
	Line   *WaitLine
	Pool   *TellerPool
	Stats  *RunningStats

	arrival *ArrivalSampler
	service *ExpSampler

	horizonMin float64 // +Inf for customer-count runs
	target     int     // 0 for time-horizon runs

	nextCustomerID int64
	seed           int64
}

// NewSimulator builds one replication from a validated configuration and a
// replication seed. The seed derives independent arrival and service RNG
// streams, so re-running with the same seed reproduces the run exactly.
func NewSimulator(cfg Config, seed int64) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(seed)
	arrival, err := NewArrivalSampler(cfg.ArrivalRatePerHour, cfg.ArrivalSegments, rng.ForSubsystem(SubsystemArrival))
	if err != nil {
		return nil, err
	}
	service, err := NewExpSampler(cfg.ServiceRatePerHour, rng.ForSubsystem(SubsystemService))
	if err != nil {
		return nil, err
	}

	return &Simulator{
		Events:     NewEventQueue(),
		Line:       &WaitLine{},
		Pool:       NewTellerPool(cfg.Tellers),
		Stats:      NewRunningStats(),
		arrival:    arrival,
		service:    service,
		horizonMin: cfg.HorizonMinutes(),
		target:     cfg.CustomerTarget(),
		seed:       seed,
	}, nil
}

// Run drives the event loop to the configured stopping condition and
// returns the finalized summary.
func (sim *Simulator) Run() ReplicationSummary {
	sim.scheduleNextArrival(0)

	iterations := 0
	for sim.Events.Len() > 0 {
		iterations++
		if iterations > maxEventIterations {
			logrus.Warnf("event loop hit iteration cap (%d) before the stopping condition; ending run", maxEventIterations)
			break
		}

		t, _ := sim.Events.PeekTime()
		if t > sim.horizonMin {
			break
		}

		ev, err := sim.Events.PopNext()
		if err != nil {
			// Len was checked above; reaching this is a scheduling bug.
			panic(err)
		}
		logrus.Debugf("[t=%09.3f] executing %T", sim.Events.Now(), ev)
		ev.Execute(sim)

		if sim.target > 0 && sim.Stats.Served >= sim.target {
			break
		}
	}

	end := sim.Events.Now()
	if !math.IsInf(sim.horizonMin, 1) {
		end = sim.horizonMin
	}

	// Close the final integral span and the in-flight service spans.
	sim.Stats.Advance(end, sim.Line.Len(), sim.Pool.BusyCount())
	sim.Pool.CloseOut(end)

	logrus.Debugf("[t=%09.3f] replication ended: %d arrived, %d served, %d in flight",
		end, sim.Stats.Arrivals, sim.Stats.Served, sim.Stats.Arrivals-sim.Stats.Served)

	summary := sim.Stats.Finalize(end, sim.Pool)
	summary.Seed = sim.seed
	return summary
}

// scheduleNextArrival samples the next inter-arrival gap and schedules the
// arrival, unless the effective arrival rate has dropped to zero.
func (sim *Simulator) scheduleNextArrival(now float64) {
	gap, ok := sim.arrival.SampleGap(now)
	if !ok {
		logrus.Debugf("[t=%09.3f] arrival rate is zero; no further arrivals", now)
		return
	}
	sim.Events.Schedule(&ArrivalEvent{time: now + gap})
}

// handleArrival creates the customer, updates the integrals for the state
// that held until now, and either starts service immediately on an idle
// teller or joins the waiting line.
func (sim *Simulator) handleArrival(now float64) *Customer {
	sim.Stats.Advance(now, sim.Line.Len(), sim.Pool.BusyCount())

	sim.nextCustomerID++
	cust := NewCustomer(sim.nextCustomerID, now)
	sim.Stats.RecordArrival()

	if id, ok := sim.Pool.FindIdle(); ok {
		sim.startService(id, cust, now)
	} else {
		sim.Line.Enqueue(cust)
	}
	return cust
}

// handleDeparture completes the departing customer, frees the teller, and
// cascades the head of the line onto it. The cascade is the core scheduling
// policy: no teller sits idle while customers wait.
func (sim *Simulator) handleDeparture(now float64, tellerID int) {
	sim.Stats.Advance(now, sim.Line.Len(), sim.Pool.BusyCount())

	cust := sim.Pool.Release(tellerID, now)
	cust.DepartureTime = now
	cust.State = StateDone
	sim.Stats.RecordDeparture(cust.Sojourn())

	if sim.Line.Len() > 0 {
		next, err := sim.Line.Dequeue()
		if err != nil {
			panic(err)
		}
		sim.startService(tellerID, next, now)
	}
}

// startService assigns a customer to a teller, records the wait and the
// sampled service duration, and schedules the departure.
func (sim *Simulator) startService(tellerID int, cust *Customer, now float64) {
	dur := sim.service.Sample()
	departAt := sim.Pool.Assign(tellerID, cust, now, dur)
	sim.Stats.RecordServiceStart(cust.Wait(), dur)
	sim.Events.Schedule(&DepartureEvent{
		time:       departAt,
		TellerID:   tellerID,
		CustomerID: cust.ID,
	})
}
