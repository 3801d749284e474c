package domain

import "github.com/shopspring/decimal"

// Fee rates are fixed regulatory constants, not configuration. Fees
// are computed server-side only, from the server-observed price and
// the requested quantity; a client-supplied fee is never accepted.
var (
	brokerFeeRate = decimal.RequireFromString("0.015")
	secLevyRate   = decimal.RequireFromString("0.004")
	gseLevyRate   = decimal.RequireFromString("0.0014")
	vatRate       = decimal.RequireFromString("0.15")
)

// FeeBreakdown itemizes the charges applied to a trade subtotal.
type FeeBreakdown struct {
	BrokerFee decimal.Decimal
	SECLevy   decimal.Decimal
	GSELevy   decimal.Decimal
	VAT       decimal.Decimal
	Total     decimal.Decimal
}

// ComputeFees computes the fee breakdown for a trade subtotal
// (price * quantity). Deterministic, no I/O. VAT applies to the
// broker fee only.
func ComputeFees(subtotal decimal.Decimal) FeeBreakdown {
	brokerFee := subtotal.Mul(brokerFeeRate)
	secLevy := subtotal.Mul(secLevyRate)
	gseLevy := subtotal.Mul(gseLevyRate)
	vat := brokerFee.Mul(vatRate)

	return FeeBreakdown{
		BrokerFee: brokerFee,
		SECLevy:   secLevy,
		GSELevy:   gseLevy,
		VAT:       vat,
		Total:     brokerFee.Add(secLevy).Add(gseLevy).Add(vat),
	}
}
