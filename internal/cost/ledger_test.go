package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_Accumulates(t *testing.T) {
	var l Ledger
	assert.Equal(t, 0.0, l.Total())

	l.Add(0.0021)
	l.Add(0.0014)
	assert.InDelta(t, 0.0035, l.Total(), 1e-12)
}

func TestLedger_IgnoresNegativeEntries(t *testing.T) {
	var l Ledger
	l.Add(0.5)
	l.Add(-1)
	assert.InDelta(t, 0.5, l.Total(), 1e-12)
}

func TestLedger_ZeroEntriesAreFine(t *testing.T) {
	var l Ledger
	l.Add(0)
	assert.Equal(t, 0.0, l.Total())
}
