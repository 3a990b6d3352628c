package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DanielGalvanS/FinanZapp/internal/docai"
)

// Payment method tokens after normalization. Anything unrecognized passes
// through uppercased.
const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentTransfer = "TRANSFER"
	PaymentDigital  = "DIGITAL"
)

// Hints are the provider-supplied values the extractors reconcile against
// text evidence. A nil/empty hint means the provider did not report that
// field.
type Hints struct {
	Merchant      string
	Total         *decimal.Decimal
	Subtotal      *decimal.Decimal
	Tax           *decimal.Decimal
	Date          string
	RFC           string
	PaymentMethod string
	LineItems     []LineItem
}

// CollectHints maps provider entities onto extraction hints. Entities are
// walked in order and only the first occurrence of each type is kept;
// line items accumulate.
func CollectHints(entities []docai.Entity) Hints {
	var h Hints

	for _, e := range entities {
		switch e.Type {
		case docai.EntitySupplierName:
			if h.Merchant == "" {
				h.Merchant = strings.TrimSpace(e.MentionText)
			}
		case docai.EntityTotalAmount:
			if h.Total == nil {
				h.Total = parseAmountText(e.MentionText)
			}
		case docai.EntityNetAmount:
			if h.Subtotal == nil {
				h.Subtotal = parseAmountText(e.MentionText)
			}
		case docai.EntityTotalTaxAmount:
			if h.Tax == nil {
				h.Tax = parseAmountText(e.MentionText)
			}
		case docai.EntityReceiptDate:
			if h.Date == "" {
				h.Date = strings.TrimSpace(e.MentionText)
			}
		case docai.EntitySupplierTaxID:
			if h.RFC == "" {
				h.RFC = strings.TrimSpace(e.MentionText)
			}
		case docai.EntityPaymentType:
			if h.PaymentMethod == "" {
				h.PaymentMethod = NormalizePaymentMethod(e.MentionText)
			}
		case docai.EntityLineItem:
			if item := parseLineItem(e); item != nil {
				h.LineItems = append(h.LineItems, *item)
			}
		}
	}

	return h
}

// NormalizePaymentMethod maps free-text payment descriptions (Spanish or
// English) onto the standard tokens.
func NormalizePaymentMethod(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	upper := strings.ToUpper(text)

	switch {
	case containsAny(upper, "CASH", "EFECTIVO", "DINERO"):
		return PaymentCash
	case containsAny(upper, "CARD", "TARJETA", "CREDIT", "DEBIT", "CREDITO", "DEBITO"):
		return PaymentCard
	case containsAny(upper, "TRANSFER", "TRANSFERENCIA", "SPEI"):
		return PaymentTransfer
	case containsAny(upper, "DIGITAL", "WALLET", "PAYPAL", "MERCADOPAGO"):
		return PaymentDigital
	default:
		return strings.TrimSpace(upper)
	}
}

// parseLineItem reads line_item sub-properties. Items missing either a
// description or an amount are dropped.
func parseLineItem(e docai.Entity) *LineItem {
	var item LineItem

	for _, prop := range e.Properties {
		switch prop.Type {
		case "line_item/description":
			item.Description = strings.TrimSpace(prop.MentionText)
		case "line_item/quantity":
			item.Quantity = parseQuantityText(prop.MentionText)
		case "line_item/unit_price":
			item.UnitPrice = parseAmountText(prop.MentionText)
		case "line_item/amount":
			if amount := parseAmountText(prop.MentionText); amount != nil {
				item.Amount = *amount
			}
		}
	}

	if item.Description == "" || item.Amount.IsZero() {
		return nil
	}
	return &item
}

// parseAmountText converts "$1,234.56" style text to a decimal. Returns nil
// when the text is not a number; the caller falls back to the next tier.
func parseAmountText(text string) *decimal.Decimal {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(text))
	if cleaned == "" {
		return nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	d = d.Round(2)
	return &d
}

func parseQuantityText(text string) int {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return int(d.IntPart())
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
