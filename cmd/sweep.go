// Staffing sweep: run the same lam/mu workload across a list of teller
// counts and emit one aggregate record per count, alongside the Erlang-C
// theoretical values, in a shape ready for plotting collaborators.

package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/jasonksu/CS4632-BankTellerSim/sim"
)

var (
	sweepLam          float64
	sweepMu           float64
	sweepTellerCounts []int
	sweepHours        float64
	sweepReplications int
	sweepSeed         int64
	sweepWorkers      int
	sweepLogLevel     string
	sweepCSVPath      string
)

// SweepRow is one aggregate record of the sweep, keyed by the swept teller
// count. Theoretical columns are zero when the system is unstable at that
// count.
type SweepRow struct {
	Tellers   int
	Aggregate sim.AggregateSummary
	Theory    sim.MMCMetrics
	Stable    bool
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep teller counts at fixed rates and compare against Erlang-C",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(sweepLogLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", sweepLogLevel)
		}
		logrus.SetLevel(level)

		if len(sweepTellerCounts) == 0 {
			logrus.Fatalf("No teller counts given")
		}

		rows, err := runSweep()
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		printSweep(rows)

		if sweepCSVPath != "" {
			if err := writeSweepCSV(sweepCSVPath, rows); err != nil {
				logrus.Fatalf("Error writing %s: %v", sweepCSVPath, err)
			}
		}
	},
}

// runSweep executes one experiment per teller count. Every point reuses the
// same base seed so the sweep is reproducible end to end.
func runSweep() ([]SweepRow, error) {
	rows := make([]SweepRow, 0, len(sweepTellerCounts))
	for _, c := range sweepTellerCounts {
		cfg := sim.Config{
			ArrivalRatePerHour: sweepLam,
			ServiceRatePerHour: sweepMu,
			Tellers:            c,
			Stopping:           sim.StoppingCondition{Type: sim.StopTimeHorizon, Value: sweepHours},
			Replications:       sweepReplications,
			BaseSeed:           sweepSeed,
			Workers:            sweepWorkers,
		}
		result, err := sim.RunExperiment(cfg)
		if err != nil {
			return nil, err
		}

		row := SweepRow{Tellers: c, Aggregate: result.Aggregate}
		theory, err := sim.ErlangC(sweepLam, sweepMu, c)
		switch {
		case err == nil:
			row.Theory = theory
			row.Stable = true
		case errors.Is(err, sim.ErrUnstable):
			row.Theory = theory
		default:
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func printSweep(rows []SweepRow) {
	fmt.Println("\n--- Bank Teller Simulation: Staffing Sweep ---")
	for _, row := range rows {
		agg := row.Aggregate
		fmt.Printf("\nTellers = %d\n", row.Tellers)
		fmt.Printf("Avg wait time (min): %.2f ± %.2f\n", agg.AvgWaitMin.Mean, agg.AvgWaitMin.CIHalfWidth)
		fmt.Printf("Avg time in system (min): %.2f ± %.2f\n", agg.AvgSojournMin.Mean, agg.AvgSojournMin.CIHalfWidth)
		fmt.Printf("Avg queue length: %.2f\n", agg.AvgQueueLen.Mean)
		fmt.Printf("Teller utilization: %.1f%%\n", agg.Utilization.Mean*100)
		fmt.Printf("Throughput (cust/hr): %.2f\n", agg.ThroughputPerHour.Mean)
	}

	fmt.Println("\n--- Validation: M/M/c Theoretical Comparison ---")
	for _, row := range rows {
		if !row.Stable {
			fmt.Printf("Tellers=%d: unstable (rho=%.2f), no steady state\n", row.Tellers, row.Theory.Rho)
			continue
		}
		fmt.Printf("Tellers=%d: Util=%.1f%%  Wq=%.2fmin  W=%.2fmin  Lq=%.2f\n",
			row.Tellers, row.Theory.Rho*100, row.Theory.WqMin, row.Theory.WMin, row.Theory.Lq)
	}
	fmt.Println()
}

var sweepCSVHeader = []string{
	"tellers",
	"avg_wait_min", "avg_wait_ci95",
	"p95_wait_min",
	"avg_sojourn_min", "avg_queue_len",
	"utilization", "throughput_per_hour",
	"theory_rho", "theory_wq_min", "theory_lq", "theory_stable",
}

// writeSweepCSV emits one row per swept teller count.
func writeSweepCSV(path string, rows []SweepRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(sweepCSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		agg := row.Aggregate
		rec := []string{
			strconv.Itoa(row.Tellers),
			formatFloat(agg.AvgWaitMin.Mean),
			formatFloat(agg.AvgWaitMin.CIHalfWidth),
			formatFloat(agg.P95WaitMin.Mean),
			formatFloat(agg.AvgSojournMin.Mean),
			formatFloat(agg.AvgQueueLen.Mean),
			formatFloat(agg.Utilization.Mean),
			formatFloat(agg.ThroughputPerHour.Mean),
			formatFloat(row.Theory.Rho),
			formatFloat(row.Theory.WqMin),
			formatFloat(row.Theory.Lq),
			strconv.FormatBool(row.Stable),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func init() {
	sweepCmd.Flags().Float64Var(&sweepLam, "lam", 10, "Customer arrival rate (per hour)")
	sweepCmd.Flags().Float64Var(&sweepMu, "mu", 12, "Service rate (per hour per teller)")
	sweepCmd.Flags().IntSliceVar(&sweepTellerCounts, "tellers", []int{1, 2, 3, 4}, "Comma-separated teller counts to sweep")
	sweepCmd.Flags().Float64Var(&sweepHours, "hours", 8, "Simulated time horizon in hours")
	sweepCmd.Flags().IntVar(&sweepReplications, "replications", 10, "Number of independent replications per point")
	sweepCmd.Flags().Int64Var(&sweepSeed, "seed", 42, "Base seed for every sweep point")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "Concurrent replication workers (0 = one per CPU)")
	sweepCmd.Flags().StringVar(&sweepLogLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	sweepCmd.Flags().StringVar(&sweepCSVPath, "output", "", "Write sweep records to this CSV file")

	rootCmd.AddCommand(sweepCmd)
}
