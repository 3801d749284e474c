package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Position is the running state of the holdings fold for one symbol:
// units currently held and their fees-inclusive cost basis.
type Position struct {
	Symbol    string
	Quantity  int64
	CostBasis decimal.Decimal
}

// AverageCost returns the blended cost per held unit, zero when
// nothing is held.
func (p Position) AverageCost() decimal.Decimal {
	if p.Quantity <= 0 {
		return decimal.Zero
	}
	return p.CostBasis.Div(decimal.NewFromInt(p.Quantity))
}

// Holding is a priced position as presented to the caller. Derived,
// never persisted.
type Holding struct {
	Symbol       string
	Quantity     int64
	AverageCost  decimal.Decimal
	CurrentPrice decimal.Decimal
	MarketValue  decimal.Decimal
	Gain         decimal.Decimal
	GainPercent  decimal.Decimal
}

// BuildPositions folds an ordered transaction log into per-symbol
// positions using the average-cost method: a sell reduces the cost
// basis proportionally to the blended average cost at the time of the
// sale, not to specific earlier lots. Transactions must be ordered by
// creation time ascending. Only positions with quantity > 0 are
// returned, sorted by symbol.
func BuildPositions(txs []*Transaction) []Position {
	bySymbol := make(map[string]*Position)

	for _, tx := range txs {
		pos := bySymbol[tx.Symbol]
		if pos == nil {
			pos = &Position{Symbol: tx.Symbol, CostBasis: decimal.Zero}
			bySymbol[tx.Symbol] = pos
		}

		switch tx.Side {
		case SideBuy:
			pos.Quantity += tx.Quantity
			pos.CostBasis = pos.CostBasis.Add(tx.TotalAmount)
		case SideSell:
			if pos.Quantity <= 0 {
				// Sell with nothing held: inconsistent data, skip.
				continue
			}

			sold := tx.Quantity
			if sold > pos.Quantity {
				sold = pos.Quantity
			}

			avgCost := pos.CostBasis.Div(decimal.NewFromInt(pos.Quantity))
			pos.CostBasis = pos.CostBasis.Sub(avgCost.Mul(decimal.NewFromInt(sold)))
			pos.Quantity -= sold
		}
	}

	positions := make([]Position, 0, len(bySymbol))
	for _, pos := range bySymbol {
		if pos.Quantity > 0 {
			positions = append(positions, *pos)
		}
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Symbol < positions[j].Symbol
	})

	return positions
}

// HeldQuantity returns the number of units of symbol currently held
// according to the ordered transaction log.
func HeldQuantity(txs []*Transaction, symbol string) int64 {
	for _, pos := range BuildPositions(txs) {
		if pos.Symbol == symbol {
			return pos.Quantity
		}
	}
	return 0
}
