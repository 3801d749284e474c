package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeFees(t *testing.T) {
	tests := []struct {
		name      string
		subtotal  string
		brokerFee string
		secLevy   string
		gseLevy   string
		vat       string
		total     string
	}{
		{
			name:      "500 units at 1.82",
			subtotal:  "910.00",
			brokerFee: "13.65",
			secLevy:   "3.64",
			gseLevy:   "1.274",
			vat:       "2.0475",
			total:     "20.6115",
		},
		{
			name:      "zero subtotal",
			subtotal:  "0",
			brokerFee: "0",
			secLevy:   "0",
			gseLevy:   "0",
			vat:       "0",
			total:     "0",
		},
		{
			name:      "round subtotal",
			subtotal:  "1000",
			brokerFee: "15",
			secLevy:   "4",
			gseLevy:   "1.4",
			vat:       "2.25",
			total:     "22.65",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fees := ComputeFees(decimal.RequireFromString(tt.subtotal))

			checks := []struct {
				field string
				got   decimal.Decimal
				want  string
			}{
				{"broker fee", fees.BrokerFee, tt.brokerFee},
				{"sec levy", fees.SECLevy, tt.secLevy},
				{"gse levy", fees.GSELevy, tt.gseLevy},
				{"vat", fees.VAT, tt.vat},
				{"total", fees.Total, tt.total},
			}

			for _, c := range checks {
				if !c.got.Equal(decimal.RequireFromString(c.want)) {
					t.Errorf("%s: expected %s, got %s", c.field, c.want, c.got)
				}
			}
		})
	}
}

func TestComputeFees_TotalIsSumOfParts(t *testing.T) {
	subtotals := []string{"0.01", "1.82", "910", "12345.6789", "1000000"}

	for _, s := range subtotals {
		fees := ComputeFees(decimal.RequireFromString(s))

		sum := fees.BrokerFee.Add(fees.SECLevy).Add(fees.GSELevy).Add(fees.VAT)
		if !fees.Total.Equal(sum) {
			t.Errorf("subtotal %s: total %s != sum of parts %s", s, fees.Total, sum)
		}
	}
}

func TestComputeFees_Deterministic(t *testing.T) {
	subtotal := decimal.RequireFromString("910.00")

	first := ComputeFees(subtotal)
	second := ComputeFees(subtotal)

	if !first.Total.Equal(second.Total) {
		t.Errorf("expected identical totals, got %s and %s", first.Total, second.Total)
	}
}
