package engine

import (
	"math"
	"math/big"
	"sort"
)

// Ledger holds currency balances. Amounts are kept as exact rationals so that
// any sequence of spends can be undone to the original value. Balances may go
// negative; affordability is decided by the Checker before spending.
type Ledger struct {
	balances map[string]*big.Rat
}

// NewLedger creates a ledger seeded with starting balances
func NewLedger(initial map[string]float64) *Ledger {
	l := &Ledger{balances: make(map[string]*big.Rat, len(initial))}
	for currency, value := range initial {
		l.balances[currency] = toRat(value)
	}
	return l
}

// Balance returns the balance of a currency, 0 when unknown
func (l *Ledger) Balance(currency string) float64 {
	balance, ok := l.balances[currency]
	if !ok {
		return 0
	}
	value, _ := balance.Float64()
	return value
}

// Covers reports whether the balance is at least amount
func (l *Ledger) Covers(currency string, amount float64) bool {
	balance, ok := l.balances[currency]
	if !ok {
		balance = new(big.Rat)
	}
	return balance.Cmp(toRat(amount)) >= 0
}

// Apply subtracts each delta from its currency. Pass negated deltas to refund.
func (l *Ledger) Apply(deltas map[string]float64) {
	l.applyTimes(deltas, 1)
}

// applyTimes subtracts each delta n times
func (l *Ledger) applyTimes(deltas map[string]float64, n int) {
	times := new(big.Rat).SetInt64(int64(n))
	for currency, delta := range deltas {
		balance, ok := l.balances[currency]
		if !ok {
			balance = new(big.Rat)
			l.balances[currency] = balance
		}
		amount := new(big.Rat).Mul(toRat(delta), times)
		balance.Sub(balance, amount)
	}
}

// Balances returns a snapshot of every known balance
func (l *Ledger) Balances() map[string]float64 {
	out := make(map[string]float64, len(l.balances))
	for currency := range l.balances {
		out[currency] = l.Balance(currency)
	}
	return out
}

// Currencies returns the known currency names, sorted
func (l *Ledger) Currencies() []string {
	names := make([]string, 0, len(l.balances))
	for currency := range l.balances {
		names = append(names, currency)
	}
	sort.Strings(names)
	return names
}

// toRat converts exactly; NaN and infinities count as 0
func toRat(value float64) *big.Rat {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return new(big.Rat)
	}
	return new(big.Rat).SetFloat64(value)
}
