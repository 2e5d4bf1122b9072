package contract

import (
	"github.com/shopspring/decimal"
)

// Price is one tier of the fixed price table.
type Price struct {
	Method       PaymentMethod
	Label        string
	Installments int
	Installment  decimal.Decimal
}

// Total is the installment amount times the number of installments.
func (p Price) Total() decimal.Decimal {
	return p.Installment.Mul(decimal.NewFromInt(int64(p.Installments)))
}

var prices = map[PaymentMethod]Price{
	PaymentCash: {
		Method:       PaymentCash,
		Label:        "À vista (PIX ou transferência)",
		Installments: 1,
		Installment:  decimal.RequireFromString("699.00"),
	},
	PaymentCard6x: {
		Method:       PaymentCard6x,
		Label:        "Cartão de crédito em 6x",
		Installments: 6,
		Installment:  decimal.RequireFromString("199.00"),
	},
	PaymentSlip3x: {
		Method:       PaymentSlip3x,
		Label:        "Boleto bancário em 3x",
		Installments: 3,
		Installment:  decimal.RequireFromString("399.00"),
	},
}

// PriceFor returns the price tier of a payment method.
func PriceFor(method PaymentMethod) (Price, bool) {
	p, ok := prices[method]
	return p, ok
}

// Prices lists every tier in display order.
func Prices() []Price {
	return []Price{prices[PaymentCash], prices[PaymentCard6x], prices[PaymentSlip3x]}
}

func (p Price) detailed() string {
	if p.Installments <= 1 {
		return "pagamento à vista no valor de " + FormatBRL(p.Total())
	}
	return formatInt(int64(p.Installments)) + " parcelas de " + FormatBRL(p.Installment) +
		" (" + p.Label + "), totalizando " + FormatBRL(p.Total())
}
