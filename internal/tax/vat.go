package tax

import "github.com/shopspring/decimal"

// IVARate is the Mexican VAT rate. Fixed by law, not configurable here.
var IVARate = decimal.New(16, -2) // 0.16

// TaxBreakdown decomposes an amount into subtotal, IVA and total.
// Subtotal + IVA always equals Total exactly.
type TaxBreakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	IVA      decimal.Decimal `json:"iva"`
	Total    decimal.Decimal `json:"total"`
	IVARate  decimal.Decimal `json:"ivaRate"`
}

// ComputeIVA adds 16% IVA on top of a subtotal.
func ComputeIVA(subtotal decimal.Decimal) TaxBreakdown {
	iva := subtotal.Mul(IVARate).Round(2)
	return TaxBreakdown{
		Subtotal: subtotal,
		IVA:      iva,
		Total:    subtotal.Add(iva),
		IVARate:  IVARate,
	}
}

// ExtractIVAFromTotal splits a total that already includes IVA:
// subtotal = total / 1.16, rounded to cents; IVA takes the remainder so the
// sum stays exact.
func ExtractIVAFromTotal(total decimal.Decimal) TaxBreakdown {
	subtotal := total.Div(decimal.New(1, 0).Add(IVARate)).Round(2)
	return TaxBreakdown{
		Subtotal: subtotal,
		IVA:      total.Sub(subtotal),
		Total:    total,
		IVARate:  IVARate,
	}
}

// SplitKnownTax builds a breakdown when the tax amount itself was read from
// the receipt, rather than derived from the rate.
func SplitKnownTax(total, taxAmount decimal.Decimal) TaxBreakdown {
	return TaxBreakdown{
		Subtotal: total.Sub(taxAmount),
		IVA:      taxAmount,
		Total:    total,
		IVARate:  IVARate,
	}
}
