package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func tx(symbol string, side Side, quantity int64, price, total string) *Transaction {
	return &Transaction{
		UserID:       "user-1",
		Symbol:       symbol,
		Side:         side,
		Quantity:     quantity,
		PricePerUnit: decimal.RequireFromString(price),
		TotalAmount:  decimal.RequireFromString(total),
		CreatedAt:    time.Now().UTC(),
	}
}

func TestBuildPositions_AverageCostSell(t *testing.T) {
	// Buy 100 @ 10 (basis 1000), sell 40 @ 12: 60 left at basis 600,
	// average cost unchanged at 10.
	log := []*Transaction{
		tx("GCB", SideBuy, 100, "10", "1000"),
		tx("GCB", SideSell, 40, "12", "480"),
	}

	positions := BuildPositions(log)

	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}

	pos := positions[0]
	if pos.Quantity != 60 {
		t.Errorf("expected quantity 60, got %d", pos.Quantity)
	}

	if !pos.CostBasis.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected cost basis 600, got %s", pos.CostBasis)
	}

	if !pos.AverageCost().Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected average cost 10, got %s", pos.AverageCost())
	}
}

func TestBuildPositions_FeesInclusiveBasis(t *testing.T) {
	// The buy's TotalAmount includes fees, so the basis does too.
	log := []*Transaction{
		tx("MTNGH", SideBuy, 500, "1.82", "930.6115"),
	}

	positions := BuildPositions(log)

	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}

	if !positions[0].CostBasis.Equal(decimal.RequireFromString("930.6115")) {
		t.Errorf("expected basis 930.6115, got %s", positions[0].CostBasis)
	}
}

func TestBuildPositions_BlendedAverage(t *testing.T) {
	// Two buys at different prices blend into one average cost.
	log := []*Transaction{
		tx("EGH", SideBuy, 100, "5", "500"),
		tx("EGH", SideBuy, 100, "7", "700"),
		tx("EGH", SideSell, 50, "8", "400"),
	}

	positions := BuildPositions(log)

	pos := positions[0]
	if pos.Quantity != 150 {
		t.Errorf("expected quantity 150, got %d", pos.Quantity)
	}

	// avg cost 6, sold 50 removes 300 of basis
	if !pos.CostBasis.Equal(decimal.NewFromInt(900)) {
		t.Errorf("expected cost basis 900, got %s", pos.CostBasis)
	}
}

func TestBuildPositions_FullySoldExcluded(t *testing.T) {
	log := []*Transaction{
		tx("SCB", SideBuy, 10, "20", "200"),
		tx("SCB", SideSell, 10, "25", "250"),
		tx("GCB", SideBuy, 5, "10", "50"),
	}

	positions := BuildPositions(log)

	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}

	if positions[0].Symbol != "GCB" {
		t.Errorf("expected GCB, got %s", positions[0].Symbol)
	}
}

func TestBuildPositions_SellWithNothingHeldSkipped(t *testing.T) {
	log := []*Transaction{
		tx("TOTAL", SideSell, 10, "4", "40"),
		tx("TOTAL", SideBuy, 20, "4", "80"),
	}

	positions := BuildPositions(log)

	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}

	if positions[0].Quantity != 20 {
		t.Errorf("expected quantity 20, got %d", positions[0].Quantity)
	}
}

func TestBuildPositions_OversellClamped(t *testing.T) {
	log := []*Transaction{
		tx("GOIL", SideBuy, 10, "2", "20"),
		tx("GOIL", SideSell, 25, "3", "75"),
	}

	positions := BuildPositions(log)

	if len(positions) != 0 {
		t.Fatalf("expected no positions, got %d", len(positions))
	}
}

func TestBuildPositions_Idempotent(t *testing.T) {
	log := []*Transaction{
		tx("GCB", SideBuy, 100, "10", "1000"),
		tx("MTNGH", SideBuy, 500, "1.82", "930.6115"),
		tx("GCB", SideSell, 40, "12", "480"),
	}

	first := BuildPositions(log)
	second := BuildPositions(log)

	if len(first) != len(second) {
		t.Fatalf("expected identical results, got %d and %d positions", len(first), len(second))
	}

	for i := range first {
		if first[i].Symbol != second[i].Symbol ||
			first[i].Quantity != second[i].Quantity ||
			!first[i].CostBasis.Equal(second[i].CostBasis) {
			t.Errorf("position %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestBuildPositions_SortedBySymbol(t *testing.T) {
	log := []*Transaction{
		tx("SCB", SideBuy, 1, "20", "20"),
		tx("EGH", SideBuy, 1, "5", "5"),
		tx("GCB", SideBuy, 1, "10", "10"),
	}

	positions := BuildPositions(log)

	want := []string{"EGH", "GCB", "SCB"}
	for i, symbol := range want {
		if positions[i].Symbol != symbol {
			t.Errorf("position %d: expected %s, got %s", i, symbol, positions[i].Symbol)
		}
	}
}

func TestPosition_AverageCost_ZeroQuantity(t *testing.T) {
	pos := Position{Symbol: "GCB", Quantity: 0, CostBasis: decimal.Zero}

	if !pos.AverageCost().Equal(decimal.Zero) {
		t.Errorf("expected zero average cost, got %s", pos.AverageCost())
	}
}

func TestHeldQuantity(t *testing.T) {
	log := []*Transaction{
		tx("GCB", SideBuy, 100, "10", "1000"),
		tx("GCB", SideSell, 30, "12", "360"),
	}

	if got := HeldQuantity(log, "GCB"); got != 70 {
		t.Errorf("expected 70, got %d", got)
	}

	if got := HeldQuantity(log, "MTNGH"); got != 0 {
		t.Errorf("expected 0 for unheld symbol, got %d", got)
	}
}
