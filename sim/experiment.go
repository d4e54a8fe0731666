// Runs R independent replications of one configuration and aggregates
// their summaries into cross-replication statistics.

package sim

import (
	"math"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MetricSummary holds the cross-replication statistics of one metric.
// CIHalfWidth is the 95% Student-t confidence half-width; zero when fewer
// than two replications ran.
type MetricSummary struct {
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"stddev"`
	CIHalfWidth float64 `json:"ci95_half_width"`
}

// AggregateSummary owns the replication summaries' cross-replication
// mean/stddev/CI per metric. Per-teller utilization is aggregated through
// each replication's mean utilization, since tellers are homogeneous.
type AggregateSummary struct {
	Replications int `json:"replications"`

	AvgWaitMin        MetricSummary `json:"avg_wait_min"`
	P95WaitMin        MetricSummary `json:"p95_wait_min"`
	AvgServiceMin     MetricSummary `json:"avg_service_min"`
	AvgSojournMin     MetricSummary `json:"avg_sojourn_min"`
	AvgQueueLen       MetricSummary `json:"avg_queue_len"`
	Utilization       MetricSummary `json:"utilization"`
	ThroughputPerHour MetricSummary `json:"throughput_per_hour"`
}

// ExperimentResult bundles the configuration, the per-replication
// summaries (in replication order), and the aggregate record. This is the
// stable shape plotting and reporting collaborators consume.
type ExperimentResult struct {
	Config       Config               `json:"config"`
	Replications []ReplicationSummary `json:"replications"`
	Aggregate    AggregateSummary     `json:"aggregate"`
}

// RunExperiment validates the configuration and runs its replications,
// each seeded with base_seed + replication index so the whole experiment is
// reproducible run-to-run. Replications execute on a bounded pool of worker
// goroutines; each owns its RNG streams and its simulation state, and
// results land in a slot indexed by replication, so parallelism never
// changes the output. Aggregation waits for every replication to finish.
func RunExperiment(cfg Config) (*ExperimentResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	logrus.Infof("running %d replication(s) of lam=%.2f/hr mu=%.2f/hr c=%d on %d worker(s)",
		cfg.Replications, cfg.ArrivalRatePerHour, cfg.ServiceRatePerHour, cfg.Tellers, workers)

	summaries := make([]ReplicationSummary, cfg.Replications)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for r := 0; r < cfg.Replications; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			// cfg was validated above, so construction cannot fail here.
			s, err := NewSimulator(cfg, cfg.BaseSeed+int64(r))
			if err != nil {
				panic(err)
			}
			summaries[r] = s.Run()
			summaries[r].Replication = r
		}(r)
	}
	wg.Wait()

	result := &ExperimentResult{
		Config:       cfg,
		Replications: summaries,
		Aggregate:    aggregate(summaries),
	}
	logrus.Infof("experiment done: avg wait %.3f min (±%.3f), utilization %.3f",
		result.Aggregate.AvgWaitMin.Mean, result.Aggregate.AvgWaitMin.CIHalfWidth,
		result.Aggregate.Utilization.Mean)
	return result, nil
}

// aggregate computes per-metric mean, sample standard deviation, and 95%
// Student-t confidence half-width across replication summaries.
func aggregate(summaries []ReplicationSummary) AggregateSummary {
	collect := func(f func(ReplicationSummary) float64) MetricSummary {
		vals := make([]float64, len(summaries))
		for i, s := range summaries {
			vals[i] = f(s)
		}
		m := MetricSummary{Mean: stat.Mean(vals, nil)}
		if n := len(vals); n > 1 {
			m.StdDev = stat.StdDev(vals, nil)
			tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
			m.CIHalfWidth = tdist.Quantile(0.975) * m.StdDev / math.Sqrt(float64(n))
		}
		return m
	}

	return AggregateSummary{
		Replications:      len(summaries),
		AvgWaitMin:        collect(func(s ReplicationSummary) float64 { return s.AvgWaitMin }),
		P95WaitMin:        collect(func(s ReplicationSummary) float64 { return s.P95WaitMin }),
		AvgServiceMin:     collect(func(s ReplicationSummary) float64 { return s.AvgServiceMin }),
		AvgSojournMin:     collect(func(s ReplicationSummary) float64 { return s.AvgSojournMin }),
		AvgQueueLen:       collect(func(s ReplicationSummary) float64 { return s.AvgQueueLen }),
		Utilization:       collect(func(s ReplicationSummary) float64 { return s.MeanUtilization }),
		ThroughputPerHour: collect(func(s ReplicationSummary) float64 { return s.ThroughputPerHour }),
	}
}
