// Tracks per-replication statistics: time-weighted integrals of queue length
// and busy-teller count, plus per-customer wait/service/sojourn samples.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RunningStats accumulates statistics incrementally during one replication.
// The integrals are closed out at every state-changing event as
// Δt × previous value, never recomputed from scratch.
type RunningStats struct {
	Arrivals int
	Served   int

	WaitTimes    []float64
	ServiceTimes []float64
	SojournTimes []float64

	queueArea  float64 // integral of queue length over time
	busyArea   float64 // integral of busy-teller count over time
	lastUpdate float64
}

// NewRunningStats returns an empty collector with integrals at zero.
func NewRunningStats() *RunningStats {
	return &RunningStats{}
}

// Advance closes the time-weighted integrals for the state that held since
// the previous update. qLen and busy are the values that were true over the
// interval, so callers must invoke Advance before mutating the line or the
// teller pool.
func (st *RunningStats) Advance(now float64, qLen, busy int) {
	dt := now - st.lastUpdate
	if dt < 0 {
		panic(fmt.Sprintf("statistics update moving backward: now=%.6f < last=%.6f", now, st.lastUpdate))
	}
	st.queueArea += float64(qLen) * dt
	st.busyArea += float64(busy) * dt
	st.lastUpdate = now
}

// RecordArrival counts a customer entering the system.
func (st *RunningStats) RecordArrival() {
	st.Arrivals++
}

// RecordServiceStart records the wait a customer endured before reaching a
// teller and the sampled duration of the service that now begins.
func (st *RunningStats) RecordServiceStart(wait, serviceDur float64) {
	st.WaitTimes = append(st.WaitTimes, wait)
	st.ServiceTimes = append(st.ServiceTimes, serviceDur)
}

// RecordDeparture records a completed customer's total time in system.
func (st *RunningStats) RecordDeparture(sojourn float64) {
	st.SojournTimes = append(st.SojournTimes, sojourn)
	st.Served++
}

// QueueArea returns the accumulated queue-length integral (customer-minutes).
func (st *RunningStats) QueueArea() float64 {
	return st.queueArea
}

// ReplicationSummary is the read-only snapshot of one finished replication.
// Field meanings follow the result records the experiment driver exposes to
// external consumers; all times are minutes, throughput is per hour.
type ReplicationSummary struct {
	Replication int   `json:"replication"`
	Seed        int64 `json:"seed"`

	AvgWaitMin        float64   `json:"avg_wait_min"`
	P95WaitMin        float64   `json:"p95_wait_min"`
	AvgServiceMin     float64   `json:"avg_service_min"`
	AvgSojournMin     float64   `json:"avg_sojourn_min"`
	AvgQueueLen       float64   `json:"avg_queue_len"`
	AvgBusyTellers    float64   `json:"avg_busy_tellers"`
	Utilization       []float64 `json:"utilization_per_teller"`
	MeanUtilization   float64   `json:"mean_utilization"`
	ThroughputPerHour float64   `json:"throughput_per_hour"`

	Arrivals   int     `json:"arrivals"`
	Served     int     `json:"served"`
	InFlight   int     `json:"in_flight_at_end"`
	EndTimeMin float64 `json:"end_time_min"`
}

// Finalize computes the summary metrics once a replication has reached its
// stopping condition. The percentile is taken from a sorted copy of the wait
// samples, built here exactly once.
func (st *RunningStats) Finalize(end float64, pool *TellerPool) ReplicationSummary {
	s := ReplicationSummary{
		Arrivals:   st.Arrivals,
		Served:     st.Served,
		InFlight:   st.Arrivals - st.Served,
		EndTimeMin: end,
	}

	if len(st.WaitTimes) > 0 {
		s.AvgWaitMin = stat.Mean(st.WaitTimes, nil)
		sorted := make([]float64, len(st.WaitTimes))
		copy(sorted, st.WaitTimes)
		sort.Float64s(sorted)
		s.P95WaitMin = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	}
	if len(st.ServiceTimes) > 0 {
		s.AvgServiceMin = stat.Mean(st.ServiceTimes, nil)
	}
	if len(st.SojournTimes) > 0 {
		s.AvgSojournMin = stat.Mean(st.SojournTimes, nil)
	}

	if end > 0 {
		s.AvgQueueLen = st.queueArea / end
		s.AvgBusyTellers = st.busyArea / end
		s.ThroughputPerHour = float64(st.Served) / end * 60.0
	}

	s.Utilization = pool.Utilizations(end)
	if len(s.Utilization) > 0 {
		s.MeanUtilization = stat.Mean(s.Utilization, nil)
	}

	return s
}
