package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig marks configuration errors: missing or non-positive
// parameters, or a malformed stopping condition. These are surfaced to the
// caller before any simulation work begins and never retried.
var ErrInvalidConfig = errors.New("invalid configuration")

// Stopping condition types. Exactly one must be active per run.
const (
	StopTimeHorizon   = "time_horizon"
	StopCustomerCount = "customer_count"
)

// StoppingCondition ends a replication either after Value hours of
// simulated time or after Value served customers, depending on Type.
type StoppingCondition struct {
	Type  string  `yaml:"type" json:"type"`
	Value float64 `yaml:"value" json:"value"`
}

// Config holds every parameter of one experiment. Rates are per hour;
// simulated time runs in minutes.
type Config struct {
	ArrivalRatePerHour float64           `yaml:"arrival_rate" json:"arrival_rate"`
	ServiceRatePerHour float64           `yaml:"service_rate" json:"service_rate"`
	Tellers            int               `yaml:"tellers" json:"tellers"`
	Stopping           StoppingCondition `yaml:"stopping_condition" json:"stopping_condition"`
	Replications       int               `yaml:"replications" json:"replications"`
	BaseSeed           int64             `yaml:"base_seed" json:"base_seed"`

	// ArrivalSegments optionally make the arrival rate piecewise-constant
	// over the simulated day. Empty means a homogeneous Poisson stream.
	ArrivalSegments []RateSegment `yaml:"arrival_segments,omitempty" json:"arrival_segments,omitempty"`

	// Workers bounds how many replications run concurrently.
	// Zero means one worker per CPU.
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// Validate checks the configuration, returning an ErrInvalidConfig-wrapped
// error naming the first offending field.
func (c Config) Validate() error {
	if c.ArrivalRatePerHour <= 0 {
		return fmt.Errorf("%w: arrival_rate must be positive, got %v", ErrInvalidConfig, c.ArrivalRatePerHour)
	}
	if c.ServiceRatePerHour <= 0 {
		return fmt.Errorf("%w: service_rate must be positive, got %v", ErrInvalidConfig, c.ServiceRatePerHour)
	}
	if c.Tellers <= 0 {
		return fmt.Errorf("%w: tellers must be positive, got %d", ErrInvalidConfig, c.Tellers)
	}
	if c.Replications <= 0 {
		return fmt.Errorf("%w: replications must be positive, got %d", ErrInvalidConfig, c.Replications)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, c.Workers)
	}
	for _, seg := range c.ArrivalSegments {
		if seg.RatePerHour < 0 {
			return fmt.Errorf("%w: arrival segment rate must be non-negative, got %v", ErrInvalidConfig, seg.RatePerHour)
		}
		if seg.StartMin < 0 {
			return fmt.Errorf("%w: arrival segment start_min must be non-negative, got %v", ErrInvalidConfig, seg.StartMin)
		}
	}
	switch c.Stopping.Type {
	case StopTimeHorizon:
		if c.Stopping.Value <= 0 {
			return fmt.Errorf("%w: time_horizon value must be positive hours, got %v", ErrInvalidConfig, c.Stopping.Value)
		}
	case StopCustomerCount:
		if c.Stopping.Value <= 0 || c.Stopping.Value != math.Trunc(c.Stopping.Value) {
			return fmt.Errorf("%w: customer_count value must be a positive integer, got %v", ErrInvalidConfig, c.Stopping.Value)
		}
	case "":
		return fmt.Errorf("%w: stopping_condition.type is required", ErrInvalidConfig)
	default:
		return fmt.Errorf("%w: unknown stopping_condition.type %q", ErrInvalidConfig, c.Stopping.Type)
	}
	return nil
}

// HorizonMinutes returns the time horizon in minutes, or +Inf for
// customer-count runs.
func (c Config) HorizonMinutes() float64 {
	if c.Stopping.Type == StopTimeHorizon {
		return c.Stopping.Value * 60.0
	}
	return math.Inf(1)
}

// CustomerTarget returns the served-customer target, or 0 for time-horizon
// runs.
func (c Config) CustomerTarget() int {
	if c.Stopping.Type == StopCustomerCount {
		return int(c.Stopping.Value)
	}
	return 0
}
