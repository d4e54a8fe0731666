// Analytical M/M/c (Erlang-C) metrics used to validate the simulation
// against queueing theory.

package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnstable marks an M/M/c system with offered load at or above capacity
// (lambda >= c*mu): steady-state queueing metrics do not exist.
var ErrUnstable = errors.New("system is unstable (utilization >= 1)")

// MMCMetrics are the steady-state M/M/c quantities. Times are minutes to
// match the simulation's unit.
type MMCMetrics struct {
	Rho   float64 // per-server utilization lambda/(c*mu)
	P0    float64 // probability of an empty system
	PWait float64 // Erlang-C probability an arrival must wait
	Lq    float64 // expected queue length
	L     float64 // expected number in system
	WqMin float64 // expected wait in queue, minutes
	WMin  float64 // expected time in system, minutes
}

// ErlangC computes steady-state M/M/c metrics for per-hour rates.
func ErlangC(lamPerHour, muPerHour float64, c int) (MMCMetrics, error) {
	if lamPerHour <= 0 || muPerHour <= 0 {
		return MMCMetrics{}, fmt.Errorf("%w: rates must be positive (lambda=%v, mu=%v)", ErrInvalidConfig, lamPerHour, muPerHour)
	}
	if c <= 0 {
		return MMCMetrics{}, fmt.Errorf("%w: server count must be positive, got %d", ErrInvalidConfig, c)
	}

	a := lamPerHour / muPerHour // offered load in Erlangs
	rho := a / float64(c)
	if rho >= 1 {
		return MMCMetrics{Rho: rho}, ErrUnstable
	}

	// P0 = 1 / (sum_{n<c} a^n/n! + a^c/(c! (1-rho)))
	sum := 0.0
	term := 1.0 // a^n / n!
	for n := 0; n < c; n++ {
		sum += term
		term *= a / float64(n+1)
	}
	// after the loop, term == a^c / c!
	p0 := 1.0 / (sum + term/(1.0-rho))

	pWait := p0 * term / (1.0 - rho)
	lq := pWait * rho / (1.0 - rho)
	wqHours := lq / lamPerHour
	wHours := wqHours + 1.0/muPerHour

	m := MMCMetrics{
		Rho:   rho,
		P0:    p0,
		PWait: pWait,
		Lq:    lq,
		L:     lq + a,
		WqMin: wqHours * 60.0,
		WMin:  wHours * 60.0,
	}
	if math.IsNaN(m.Lq) || math.IsInf(m.Lq, 0) {
		return m, fmt.Errorf("%w: Erlang-C overflow for a=%v c=%d", ErrInvalidConfig, a, c)
	}
	return m, nil
}
