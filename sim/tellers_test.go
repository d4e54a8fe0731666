package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTellerPool_FindIdleReturnsLowestID(t *testing.T) {
	p := NewTellerPool(3)

	id, ok := p.FindIdle()
	assert.True(t, ok)
	assert.Equal(t, 0, id)

	p.Assign(0, NewCustomer(1, 0), 0, 5)
	id, ok = p.FindIdle()
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	p.Assign(1, NewCustomer(2, 0), 0, 5)
	p.Assign(2, NewCustomer(3, 0), 0, 5)
	_, ok = p.FindIdle()
	assert.False(t, ok)
}

func TestTellerPool_FindIdlePrefersFreedLowerID(t *testing.T) {
	p := NewTellerPool(3)
	p.Assign(0, NewCustomer(1, 0), 0, 5)
	p.Assign(1, NewCustomer(2, 0), 0, 5)
	p.Assign(2, NewCustomer(3, 0), 0, 5)

	p.Release(1, 2.0)

	id, ok := p.FindIdle()
	assert.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestTellerPool_AssignStampsServiceStartAndDeparture(t *testing.T) {
	p := NewTellerPool(1)
	cust := NewCustomer(1, 1.0)

	departAt := p.Assign(0, cust, 3.0, 4.5)

	assert.Equal(t, 7.5, departAt)
	assert.Equal(t, 3.0, cust.ServiceStartTime)
	assert.Equal(t, 0, cust.TellerID)
	assert.Equal(t, StateInService, cust.State)
	assert.Equal(t, 1, p.BusyCount())
}

func TestTellerPool_ReleaseAccumulatesBusyTime(t *testing.T) {
	p := NewTellerPool(2)
	cust := NewCustomer(1, 0)
	p.Assign(0, cust, 2.0, 3.0)

	got := p.Release(0, 5.0)

	assert.Same(t, cust, got)
	assert.Equal(t, 0, p.BusyCount())
	assert.InDelta(t, 3.0, p.Utilizations(10.0)[0]*10.0, 1e-12)
	// Teller 1 never served anyone
	assert.Equal(t, 0.0, p.Utilizations(10.0)[1])
}

func TestTellerPool_BusyTimeAccumulatesAcrossCustomers(t *testing.T) {
	p := NewTellerPool(1)

	p.Assign(0, NewCustomer(1, 0), 0, 2.0)
	p.Release(0, 2.0)
	p.Assign(0, NewCustomer(2, 0), 4.0, 3.0)
	p.Release(0, 7.0)

	util := p.Utilizations(10.0)
	assert.InDelta(t, 0.5, util[0], 1e-12)
}

func TestTellerPool_CloseOutCountsInFlightService(t *testing.T) {
	p := NewTellerPool(2)
	p.Assign(0, NewCustomer(1, 0), 6.0, 100.0) // still busy at end

	p.CloseOut(10.0)

	util := p.Utilizations(10.0)
	assert.InDelta(t, 0.4, util[0], 1e-12)
	assert.Equal(t, 0.0, util[1])
}

func TestTellerPool_InvariantViolationsPanic(t *testing.T) {
	p := NewTellerPool(1)
	p.Assign(0, NewCustomer(1, 0), 0, 5)

	assert.Panics(t, func() { p.Assign(0, NewCustomer(2, 0), 1, 5) })

	p.Release(0, 5)
	assert.Panics(t, func() { p.Release(0, 6) })
}
