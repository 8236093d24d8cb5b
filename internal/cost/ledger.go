package cost

// Ledger is a running dollar total. Totals only ever grow: negative amounts
// are dropped rather than subtracted, so a ledger can never go below zero.
//
// Ledgers are confined to the goroutine that owns them (the file coordinator
// or the codebase driver), so no locking is needed.
type Ledger struct {
	total float64
}

// Add records an amount. Negative amounts are ignored.
func (l *Ledger) Add(amount float64) {
	if amount < 0 {
		return
	}
	l.total += amount
}

// Total returns the accumulated dollars.
func (l *Ledger) Total() float64 {
	return l.total
}
