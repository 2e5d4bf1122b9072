package contract

import (
	"fmt"
	"strings"

	"webmarcas/backend/internal/match"
)

// Address is the postal address collected in the checkout form.
type Address struct {
	Street       string `json:"street" yaml:"street"`
	Number       string `json:"number" yaml:"number"`
	Complement   string `json:"complement" yaml:"complement"`
	Neighborhood string `json:"neighborhood" yaml:"neighborhood"`
	City         string `json:"city" yaml:"city"`
	State        string `json:"state" yaml:"state"`
	ZipCode      string `json:"zipCode" yaml:"zipCode"`
}

// Personal holds the client data.
type Personal struct {
	FullName string  `json:"fullName" yaml:"fullName"`
	Email    string  `json:"email" yaml:"email"`
	Phone    string  `json:"phone" yaml:"phone"`
	CPF      string  `json:"cpf" yaml:"cpf"`
	Address  Address `json:"address" yaml:"address"`
}

// Brand holds the mark being registered and, optionally, the company that will own it.
// CompanyID and CompanyName are expected whenever HasCompanyID is set.
type Brand struct {
	BrandName    string `json:"brandName" yaml:"brandName"`
	BusinessArea string `json:"businessArea" yaml:"businessArea"`
	HasCompanyID bool   `json:"hasCompanyId" yaml:"hasCompanyId"`
	CompanyID    string `json:"companyId" yaml:"companyId"`
	CompanyName  string `json:"companyName" yaml:"companyName"`
}

// Context is the transaction data a contract template is rendered from.
type Context struct {
	Personal      Personal      `json:"personal" yaml:"personal"`
	Brand         Brand         `json:"brand" yaml:"brand"`
	PaymentMethod PaymentMethod `json:"paymentMethod" yaml:"paymentMethod"`
}

// PaymentMethod selects a tier of the price table.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard6x PaymentMethod = "card6x"
	PaymentSlip3x PaymentMethod = "slip3x"
)

var paymentAliases = map[string]PaymentMethod{
	"cash":    PaymentCash,
	"avista":  PaymentCash,
	"pix":     PaymentCash,
	"card6x":  PaymentCard6x,
	"cartao":  PaymentCard6x,
	"credito": PaymentCard6x,
	"slip3x":  PaymentSlip3x,
	"boleto":  PaymentSlip3x,
}

// ParsePaymentMethod accepts the canonical names and their Portuguese aliases.
func ParsePaymentMethod(input string) (PaymentMethod, error) {
	key := match.Compact(input)
	if method, ok := paymentAliases[key]; ok {
		return method, nil
	}
	return "", fmt.Errorf("unknown payment method %q", strings.TrimSpace(input))
}

// Valid reports whether the method is one of the price table tiers.
func (m PaymentMethod) Valid() bool {
	_, ok := prices[m]
	return ok
}

// UnmarshalText lets JSON and YAML payloads use any accepted alias.
func (m *PaymentMethod) UnmarshalText(text []byte) error {
	method, err := ParsePaymentMethod(string(text))
	if err != nil {
		return err
	}
	*m = method
	return nil
}
