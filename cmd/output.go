// Result writers for external consumers: per-replication CSV rows and the
// full experiment result as JSON.

package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	sim "github.com/jasonksu/CS4632-BankTellerSim/sim"
)

// runsCSVHeader is the column order of per-replication CSV output.
var runsCSVHeader = []string{
	"replication", "seed",
	"avg_wait_min", "p95_wait_min", "avg_service_min", "avg_sojourn_min",
	"avg_queue_len", "mean_utilization", "throughput_per_hour",
	"arrivals", "served", "in_flight_at_end", "end_time_min",
	"tellers", "lam_per_hr", "mu_per_hr",
}

// WriteRunsCSV writes one CSV row per replication, with the experiment
// parameters flattened into each row so sweep outputs concatenate cleanly.
func WriteRunsCSV(path string, result *sim.ExperimentResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(runsCSVHeader); err != nil {
		return err
	}
	for _, r := range result.Replications {
		row := []string{
			strconv.Itoa(r.Replication),
			strconv.FormatInt(r.Seed, 10),
			formatFloat(r.AvgWaitMin),
			formatFloat(r.P95WaitMin),
			formatFloat(r.AvgServiceMin),
			formatFloat(r.AvgSojournMin),
			formatFloat(r.AvgQueueLen),
			formatFloat(r.MeanUtilization),
			formatFloat(r.ThroughputPerHour),
			strconv.Itoa(r.Arrivals),
			strconv.Itoa(r.Served),
			strconv.Itoa(r.InFlight),
			formatFloat(r.EndTimeMin),
			strconv.Itoa(result.Config.Tellers),
			formatFloat(result.Config.ArrivalRatePerHour),
			formatFloat(result.Config.ServiceRatePerHour),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteSummaryJSON writes the full experiment result (config,
// per-replication summaries, aggregate) as indented JSON.
func WriteSummaryJSON(path string, result *sim.ExperimentResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
