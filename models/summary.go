package models

import "sort"

// Snapshot is the full ledger read contract: every debtor and every
// request, sorted by the persistence layer (debtors by name ascending,
// requests by timestamp descending).
type Snapshot struct {
	Debtors  []Debtor         `json:"debtors"`
	Requests []PaymentRequest `json:"requests"`
}

// PublicSnapshot is the guest view: hidden debtors removed and the
// derived aggregates precomputed.
type PublicSnapshot struct {
	Debtors          []Debtor         `json:"debtors"`
	Requests         []PaymentRequest `json:"requests"`
	TotalOutstanding int              `json:"total_outstanding"`
	Ranking          []Debtor         `json:"ranking"`
}

// VisibleDebtors filters out hidden debtors.
func VisibleDebtors(debtors []Debtor) []Debtor {
	visible := make([]Debtor, 0, len(debtors))
	for _, d := range debtors {
		if !d.Hidden {
			visible = append(visible, d)
		}
	}
	return visible
}

// TotalOutstanding sums amounts over non-hidden debtors.
func TotalOutstanding(debtors []Debtor) int {
	total := 0
	for _, d := range debtors {
		if !d.Hidden {
			total += d.Amount
		}
	}
	return total
}

// Ranking returns the non-hidden debtors with a positive amount,
// largest debt first. Ties keep the incoming (name) order.
func Ranking(debtors []Debtor) []Debtor {
	ranked := make([]Debtor, 0, len(debtors))
	for _, d := range debtors {
		if !d.Hidden && d.Amount > 0 {
			ranked = append(ranked, d)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})
	return ranked
}

func (s Snapshot) Public() PublicSnapshot {
	return PublicSnapshot{
		Debtors:          VisibleDebtors(s.Debtors),
		Requests:         s.Requests,
		TotalOutstanding: TotalOutstanding(s.Debtors),
		Ranking:          Ranking(s.Debtors),
	}
}
