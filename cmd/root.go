package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/jasonksu/CS4632-BankTellerSim/sim"
)

var (
	// CLI flags for the queueing model
	lam     float64 // Customer arrival rate (per hour)
	mu      float64 // Service rate (per hour per teller)
	tellers int     // Number of tellers

	// Stopping condition: a customer target takes precedence over the horizon
	hours     float64 // Simulated time horizon (hours)
	customers int     // Served-customer target

	// Experiment flags
	replications int    // Number of independent replications
	seed         int64  // Base seed; replication r uses seed+r
	workers      int    // Concurrent replication workers (0 = NumCPU)
	logLevel     string // Log verbosity level

	// I/O flags
	scenarioPath string // Optional scenario file (YAML or JSON)
	runsCSVPath  string // Optional per-replication CSV output
	summaryPath  string // Optional aggregate JSON output
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "banktellersim",
	Short: "Discrete-event simulator for bank teller queueing",
}

// runCmd executes one experiment using parameters from CLI flags or a
// scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bank teller simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := buildConfig()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		startTime := time.Now()
		result, err := sim.RunExperiment(cfg)
		if err != nil {
			logrus.Fatalf("Experiment failed: %v", err)
		}
		printResult(result, time.Since(startTime))

		if runsCSVPath != "" {
			if err := WriteRunsCSV(runsCSVPath, result); err != nil {
				logrus.Fatalf("Error writing %s: %v", runsCSVPath, err)
			}
		}
		if summaryPath != "" {
			if err := WriteSummaryJSON(summaryPath, result); err != nil {
				logrus.Fatalf("Error writing %s: %v", summaryPath, err)
			}
		}
	},
}

// setupLogging configures logrus from the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// buildConfig assembles the experiment configuration from a scenario file
// if one was given, otherwise from the CLI flags.
func buildConfig() (sim.Config, error) {
	if scenarioPath != "" {
		return LoadScenario(scenarioPath)
	}

	cfg := sim.Config{
		ArrivalRatePerHour: lam,
		ServiceRatePerHour: mu,
		Tellers:            tellers,
		Replications:       replications,
		BaseSeed:           seed,
		Workers:            workers,
	}
	// Exactly one stopping condition is active: a customer target takes
	// precedence over the default time horizon.
	if customers > 0 {
		cfg.Stopping = sim.StoppingCondition{Type: sim.StopCustomerCount, Value: float64(customers)}
	} else {
		cfg.Stopping = sim.StoppingCondition{Type: sim.StopTimeHorizon, Value: hours}
	}
	return cfg, nil
}

// printResult displays the aggregate metrics, and the Erlang-C theoretical
// values when the system is stable.
func printResult(result *sim.ExperimentResult, elapsed time.Duration) {
	cfg := result.Config
	agg := result.Aggregate

	fmt.Println("\n--- Bank Teller Simulation Results ---")
	fmt.Printf("lam = %g/hr, mu = %g/hr, tellers = %d, replications = %d\n",
		cfg.ArrivalRatePerHour, cfg.ServiceRatePerHour, cfg.Tellers, agg.Replications)
	fmt.Printf("Avg wait time (min):            %.2f ± %.2f\n", agg.AvgWaitMin.Mean, agg.AvgWaitMin.CIHalfWidth)
	fmt.Printf("95th percentile wait (min):     %.2f ± %.2f\n", agg.P95WaitMin.Mean, agg.P95WaitMin.CIHalfWidth)
	fmt.Printf("Avg service time (min):         %.2f ± %.2f\n", agg.AvgServiceMin.Mean, agg.AvgServiceMin.CIHalfWidth)
	fmt.Printf("Avg time in system (min):       %.2f ± %.2f\n", agg.AvgSojournMin.Mean, agg.AvgSojournMin.CIHalfWidth)
	fmt.Printf("Avg queue length:               %.2f ± %.2f\n", agg.AvgQueueLen.Mean, agg.AvgQueueLen.CIHalfWidth)
	fmt.Printf("Teller utilization:             %.1f%% ± %.1f%%\n", agg.Utilization.Mean*100, agg.Utilization.CIHalfWidth*100)
	fmt.Printf("Throughput (customers/hour):    %.2f ± %.2f\n", agg.ThroughputPerHour.Mean, agg.ThroughputPerHour.CIHalfWidth)

	if len(cfg.ArrivalSegments) == 0 {
		theory, err := sim.ErlangC(cfg.ArrivalRatePerHour, cfg.ServiceRatePerHour, cfg.Tellers)
		if err == nil {
			fmt.Printf("Erlang-C theory: util=%.1f%%  Wq=%.2fmin  W=%.2fmin  Lq=%.2f\n",
				theory.Rho*100, theory.WqMin, theory.WMin, theory.Lq)
		} else if errors.Is(err, sim.ErrUnstable) {
			fmt.Printf("Erlang-C theory: unstable (rho=%.2f), no steady state\n", theory.Rho)
		}
	}
	fmt.Printf("Wall clock: %v\n", elapsed.Round(time.Millisecond))
	fmt.Println("--------------------------------------")
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Float64Var(&lam, "lam", 10, "Customer arrival rate (per hour)")
	runCmd.Flags().Float64Var(&mu, "mu", 12, "Service rate (per hour per teller)")
	runCmd.Flags().IntVar(&tellers, "tellers", 2, "Number of tellers")
	runCmd.Flags().Float64Var(&hours, "hours", 8, "Simulated time horizon in hours")
	runCmd.Flags().IntVar(&customers, "customers", 0, "Served-customer target (overrides --hours when set)")
	runCmd.Flags().IntVar(&replications, "replications", 10, "Number of independent replications")
	runCmd.Flags().Int64Var(&seed, "seed", 123, "Base seed; replication r runs with seed+r")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent replication workers (0 = one per CPU)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario file (YAML or JSON); overrides model flags")
	runCmd.Flags().StringVar(&runsCSVPath, "runs-csv", "", "Write per-replication summaries to this CSV file")
	runCmd.Flags().StringVar(&summaryPath, "summary-json", "", "Write the full experiment result to this JSON file")

	rootCmd.AddCommand(runCmd)
}
