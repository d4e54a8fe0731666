package sim

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
)

// === PartitionedRNG ===

// Subsystem names for the two random streams a replication owns.
const (
	SubsystemArrival = "arrival"
	SubsystemService = "service"
)

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem so that arrival and service sampling never perturb each other.
//
// Derivation: subsystemSeed = masterSeed XOR fnv1a64(subsystemName), which
// makes the derived streams independent of stream creation order.
//
// Thread-safety: NOT thread-safe. Each replication owns its own instance.
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a replication seed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: masterSeed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same name always returns the same *rand.Rand instance.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.masterSeed ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the master seed used to create this PartitionedRNG.
func (p *PartitionedRNG) Seed() int64 {
	return p.masterSeed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === Exponential samplers ===

// ExpSampler draws exponential variates (in minutes) from a rate given per
// hour. Used for service durations.
type ExpSampler struct {
	ratePerMin float64
	rng        *rand.Rand
}

// NewExpSampler validates the rate and binds the sampler to an RNG stream.
func NewExpSampler(ratePerHour float64, rng *rand.Rand) (*ExpSampler, error) {
	if ratePerHour <= 0 {
		return nil, fmt.Errorf("%w: exponential rate must be positive, got %v", ErrInvalidConfig, ratePerHour)
	}
	return &ExpSampler{ratePerMin: ratePerHour / 60.0, rng: rng}, nil
}

// Sample returns the next exponential variate in minutes.
func (s *ExpSampler) Sample() float64 {
	return s.rng.ExpFloat64() / s.ratePerMin
}

// RateSegment overrides the arrival rate from StartMin onward. A rate of 0
// shuts off further arrivals once the segment begins.
type RateSegment struct {
	StartMin    float64 `yaml:"start_min" json:"start_min"`
	RatePerHour float64 `yaml:"rate_per_hour" json:"rate_per_hour"`
}

// ArrivalSampler draws inter-arrival gaps for a Poisson arrival process
// whose rate may vary piecewise over the day (lunch rush, closing lull).
// With no segments it is a plain homogeneous Poisson stream at the base rate.
type ArrivalSampler struct {
	baseRatePerHour float64
	segments        []RateSegment // sorted by StartMin
	rng             *rand.Rand
}

// NewArrivalSampler validates the base rate and segment rates and sorts the
// segments by start time.
func NewArrivalSampler(ratePerHour float64, segments []RateSegment, rng *rand.Rand) (*ArrivalSampler, error) {
	if ratePerHour <= 0 {
		return nil, fmt.Errorf("%w: arrival rate must be positive, got %v", ErrInvalidConfig, ratePerHour)
	}
	sorted := make([]RateSegment, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartMin < sorted[j].StartMin })
	for _, seg := range sorted {
		if seg.RatePerHour < 0 {
			return nil, fmt.Errorf("%w: arrival segment rate must be non-negative, got %v", ErrInvalidConfig, seg.RatePerHour)
		}
	}
	return &ArrivalSampler{baseRatePerHour: ratePerHour, segments: sorted, rng: rng}, nil
}

// rateAt returns the arrival rate in effect at simulated minute t.
func (s *ArrivalSampler) rateAt(t float64) float64 {
	rate := s.baseRatePerHour
	for _, seg := range s.segments {
		if t >= seg.StartMin {
			rate = seg.RatePerHour
		} else {
			break
		}
	}
	return rate
}

// SampleGap returns the gap in minutes until the next arrival after now.
// The second return value is false when the effective rate is zero, meaning
// no further arrivals will ever occur.
func (s *ArrivalSampler) SampleGap(now float64) (float64, bool) {
	rate := s.rateAt(now)
	if rate <= 0 {
		return math.Inf(1), false
	}
	return s.rng.ExpFloat64() / (rate / 60.0), true
}
