// Package reconcile keeps stock quantities consistent with the net effect of
// recorded sales. Delta computation is pure; Apply issues the database writes.
package reconcile

import (
	"strings"

	"khata-backend/models"

	"github.com/shopspring/decimal"
)

// Line is the slice of a sale line item that reconciliation cares about.
type Line struct {
	LineID   string          `json:"line_id"`
	Item     string          `json:"item"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Delta is a signed quantity adjustment against one stock item.
type Delta struct {
	Stock string
	Qty   decimal.Decimal
}

// StockOf extracts the stock reference from an item name ("<stock>:<descriptor>").
func StockOf(item string) string {
	name, _, _ := strings.Cut(item, ":")
	return strings.TrimSpace(name)
}

// LinesFromTransactions projects persisted line items into reconciliation lines.
func LinesFromTransactions(txs []models.Transaction) []Line {
	lines := make([]Line, 0, len(txs))
	for _, t := range txs {
		lines = append(lines, Line{LineID: t.LineID, Item: t.Item, Quantity: t.Quantity})
	}
	return lines
}

// CreateDeltas returns the adjustments for a newly recorded sale: each sold
// quantity is deducted from its stock item.
func CreateDeltas(lines []Line) []Delta {
	acc := newAccumulator()
	for _, l := range lines {
		acc.add(StockOf(l.Item), l.Quantity.Neg())
	}
	return acc.deltas()
}

// DeleteDeltas returns the exact inverse of CreateDeltas for the same lines:
// every sold quantity is returned to stock.
func DeleteDeltas(lines []Line) []Delta {
	acc := newAccumulator()
	for _, l := range lines {
		acc.add(StockOf(l.Item), l.Quantity)
	}
	return acc.deltas()
}

// EditDeltas diffs two versions of a bill. Lines are matched by their stable
// line id, never by position: a matched line contributes the quantity change,
// a removed line is a full reversal and an added line a full deduction. A
// matched line whose item reference changed reverses the old stock and
// deducts from the new one.
func EditDeltas(oldLines, newLines []Line) []Delta {
	oldByID := make(map[string]Line, len(oldLines))
	for _, l := range oldLines {
		if l.LineID != "" {
			oldByID[l.LineID] = l
		}
	}

	acc := newAccumulator()
	seen := make(map[string]bool, len(newLines))

	for _, nl := range newLines {
		ol, matched := oldByID[nl.LineID]
		if nl.LineID != "" && matched {
			seen[nl.LineID] = true
			if StockOf(ol.Item) == StockOf(nl.Item) {
				acc.add(StockOf(nl.Item), nl.Quantity.Sub(ol.Quantity).Neg())
			} else {
				acc.add(StockOf(ol.Item), ol.Quantity)
				acc.add(StockOf(nl.Item), nl.Quantity.Neg())
			}
			continue
		}
		// New line within the edit: pure create.
		acc.add(StockOf(nl.Item), nl.Quantity.Neg())
	}

	// Lines dropped by the edit: pure delete.
	for _, ol := range oldLines {
		if ol.LineID == "" || seen[ol.LineID] {
			continue
		}
		acc.add(StockOf(ol.Item), ol.Quantity)
	}

	return acc.deltas()
}

// accumulator merges per-line contributions into one delta per stock name,
// preserving first-seen order so updates are deterministic.
type accumulator struct {
	order []string
	byKey map[string]decimal.Decimal
}

func newAccumulator() *accumulator {
	return &accumulator{byKey: make(map[string]decimal.Decimal)}
}

func (a *accumulator) add(stock string, qty decimal.Decimal) {
	if stock == "" {
		return
	}
	if _, ok := a.byKey[stock]; !ok {
		a.order = append(a.order, stock)
	}
	a.byKey[stock] = a.byKey[stock].Add(qty)
}

func (a *accumulator) deltas() []Delta {
	out := make([]Delta, 0, len(a.order))
	for _, k := range a.order {
		if a.byKey[k].IsZero() {
			continue
		}
		out = append(out, Delta{Stock: k, Qty: a.byKey[k]})
	}
	return out
}
