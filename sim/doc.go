// Package sim provides the discrete-event simulation engine for the bank
// teller queueing model.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go: the two event kinds (Arrival, Departure) that drive the run
//   - event_queue.go: the time-ordered heap that owns the simulation clock
//   - simulator.go: the event loop, teller assignment, and the
//     release-cascades-into-assignment scheduling policy
//
// # Architecture
//
// One Simulator value owns all mutable state of a replication: clock,
// pending events, waiting line, teller pool, and running statistics. There
// is no package-level state, so replications are independent and the
// experiment driver (experiment.go) runs them concurrently, one
// PartitionedRNG per replication, joining before aggregation.
//
// Randomness is injected: rng.go derives isolated arrival and service
// streams from the replication seed, and identical seeds reproduce runs
// bit-for-bit.
//
// erlang.go supplies the analytical M/M/c (Erlang-C) counterparts used to
// validate simulated metrics against queueing theory.
package sim
