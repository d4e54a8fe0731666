package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionedRNG_SameSeedSameStream(t *testing.T) {
	a := NewPartitionedRNG(42).ForSubsystem(SubsystemArrival)
	b := NewPartitionedRNG(42).ForSubsystem(SubsystemArrival)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.ExpFloat64(), b.ExpFloat64(), "stream diverged at draw %d", i)
	}
}

func TestPartitionedRNG_SubsystemsAreIsolated(t *testing.T) {
	// GIVEN two RNGs with the same seed, where one interleaves arrival draws
	clean := NewPartitionedRNG(7)
	noisy := NewPartitionedRNG(7)

	cleanService := clean.ForSubsystem(SubsystemService)
	noisyService := noisy.ForSubsystem(SubsystemService)

	// WHEN the noisy instance consumes arrival variates in between
	noisyArrival := noisy.ForSubsystem(SubsystemArrival)
	var serviceClean, serviceNoisy []float64
	for i := 0; i < 50; i++ {
		serviceClean = append(serviceClean, cleanService.ExpFloat64())
		noisyArrival.ExpFloat64()
		serviceNoisy = append(serviceNoisy, noisyService.ExpFloat64())
	}

	// THEN the service stream is unaffected by arrival consumption
	assert.Equal(t, serviceClean, serviceNoisy)
}

func TestPartitionedRNG_CachesInstances(t *testing.T) {
	p := NewPartitionedRNG(1)
	assert.Same(t, p.ForSubsystem(SubsystemArrival), p.ForSubsystem(SubsystemArrival))
}

func TestNewExpSampler_RejectsNonPositiveRate(t *testing.T) {
	rng := NewPartitionedRNG(1).ForSubsystem(SubsystemService)

	_, err := NewExpSampler(0, rng)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewExpSampler(-3, rng)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestExpSampler_MeanMatchesRate(t *testing.T) {
	rng := NewPartitionedRNG(99).ForSubsystem(SubsystemService)
	s, err := NewExpSampler(12, rng) // mean service 5 minutes
	require.NoError(t, err)

	sum := 0.0
	const n = 200_000
	for i := 0; i < n; i++ {
		v := s.Sample()
		require.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 5.0, sum/n, 0.1)
}

func TestNewArrivalSampler_RejectsBadRates(t *testing.T) {
	rng := NewPartitionedRNG(1).ForSubsystem(SubsystemArrival)

	_, err := NewArrivalSampler(0, nil, rng)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewArrivalSampler(10, []RateSegment{{StartMin: 60, RatePerHour: -1}}, rng)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestArrivalSampler_PiecewiseRateSwitches(t *testing.T) {
	rng := NewPartitionedRNG(1).ForSubsystem(SubsystemArrival)
	s, err := NewArrivalSampler(10, []RateSegment{
		{StartMin: 120, RatePerHour: 30},
		{StartMin: 60, RatePerHour: 20},
	}, rng)
	require.NoError(t, err)

	// Segments apply from their start minute onward, regardless of the
	// order they were configured in.
	assert.Equal(t, 10.0, s.rateAt(0))
	assert.Equal(t, 10.0, s.rateAt(59.9))
	assert.Equal(t, 20.0, s.rateAt(60))
	assert.Equal(t, 20.0, s.rateAt(119.9))
	assert.Equal(t, 30.0, s.rateAt(500))
}

func TestArrivalSampler_ZeroRateShutsOffArrivals(t *testing.T) {
	rng := NewPartitionedRNG(1).ForSubsystem(SubsystemArrival)
	s, err := NewArrivalSampler(10, []RateSegment{{StartMin: 480, RatePerHour: 0}}, rng)
	require.NoError(t, err)

	gap, ok := s.SampleGap(100)
	assert.True(t, ok)
	assert.False(t, math.IsInf(gap, 1))

	_, ok = s.SampleGap(480)
	assert.False(t, ok)
}
