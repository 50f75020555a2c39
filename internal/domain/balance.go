package domain

import "time"

// LedgerTotals holds the per-period quantity sums over the four ledgers.
// Transfers are split by direction relative to the owning base.
type LedgerTotals struct {
	Purchases    int64
	TransfersIn  int64
	TransfersOut int64
	Assigned     int64
	Expended     int64
}

// NetMovement is purchases plus inbound transfers minus outbound transfers.
// Assignments and expenditures are excluded.
func (t LedgerTotals) NetMovement() int64 {
	return t.Purchases + t.TransfersIn - t.TransfersOut
}

// Balance is a persisted point-in-time snapshot of opening/closing stock for
// one base and equipment pair, keyed by (base, equipment, date).
type Balance struct {
	ID             string
	BaseID         string
	BaseName       string
	EquipmentID    string
	EquipmentName  string
	OpeningBalance int64
	ClosingBalance int64
	NetMovement    int64
	Purchases      int64
	TransfersIn    int64
	TransfersOut   int64
	Assigned       int64
	Expended       int64
	Date           time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewBalance derives a snapshot from an opening balance and period totals.
// The closing balance may go negative when outflows exceed inflows; it is
// deliberately not clamped.
func NewBalance(baseID, equipmentID string, opening int64, totals LedgerTotals, date time.Time) *Balance {
	net := totals.NetMovement()

	return &Balance{
		BaseID:         baseID,
		EquipmentID:    equipmentID,
		OpeningBalance: opening,
		ClosingBalance: opening + net - totals.Assigned - totals.Expended,
		NetMovement:    net,
		Purchases:      totals.Purchases,
		TransfersIn:    totals.TransfersIn,
		TransfersOut:   totals.TransfersOut,
		Assigned:       totals.Assigned,
		Expended:       totals.Expended,
		Date:           date,
	}
}

// BalanceTotals is the rollup of every numeric field across a snapshot set.
type BalanceTotals struct {
	OpeningBalance int64
	ClosingBalance int64
	NetMovement    int64
	Purchases      int64
	TransfersIn    int64
	TransfersOut   int64
	Assigned       int64
	Expended       int64
}

// SumBalances accumulates the rollup over a list of snapshots.
func SumBalances(balances []*Balance) BalanceTotals {
	var t BalanceTotals
	for _, b := range balances {
		t.OpeningBalance += b.OpeningBalance
		t.ClosingBalance += b.ClosingBalance
		t.NetMovement += b.NetMovement
		t.Purchases += b.Purchases
		t.TransfersIn += b.TransfersIn
		t.TransfersOut += b.TransfersOut
		t.Assigned += b.Assigned
		t.Expended += b.Expended
	}

	return t
}
