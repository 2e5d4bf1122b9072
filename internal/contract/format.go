package contract

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatBRL renders an amount as Brazilian currency, e.g. "R$ 1.194,00".
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	amount = amount.Round(2)
	whole := amount.Truncate(0)
	cents := amount.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%sR$ %s,%02d", sign, formatInt(whole.IntPart()), cents)
}

func formatInt(n int64) string {
	return message.NewPrinter(language.BrazilianPortuguese).Sprintf("%d", n)
}

// FormatDate renders the short form, e.g. "19/10/2026".
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatLongDate renders the long form, e.g. "19 de outubro de 2026".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// FormatCPF renders an 11 digit CPF as 000.000.000-00. Other inputs are returned trimmed.
func FormatCPF(cpf string) string {
	d := digits(cpf)
	if len(d) != 11 {
		return strings.TrimSpace(cpf)
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatCNPJ renders a 14 digit CNPJ as 00.000.000/0000-00. Other inputs are returned trimmed.
func FormatCNPJ(cnpj string) string {
	d := digits(cnpj)
	if len(d) != 14 {
		return strings.TrimSpace(cnpj)
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// FormatPhone renders 10 or 11 digit numbers with area code, e.g. (11) 98765-4321.
func FormatPhone(phone string) string {
	d := digits(phone)
	switch len(d) {
	case 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return strings.TrimSpace(phone)
	}
}

// FormatCEP renders an 8 digit postal code as 00000-000.
func FormatCEP(cep string) string {
	d := digits(cep)
	if len(d) != 8 {
		return strings.TrimSpace(cep)
	}
	return d[0:5] + "-" + d[5:]
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FullAddress joins the address parts as "Rua X, 100, Apto 1 - Bairro, Cidade/UF, CEP 00000-000",
// skipping empty parts.
func FullAddress(a Address) string {
	street := joinNonEmpty(", ", a.Street, a.Number, a.Complement)
	cityState := joinNonEmpty("/", a.City, strings.ToUpper(strings.TrimSpace(a.State)))
	head := joinNonEmpty(" - ", street, a.Neighborhood)
	cep := ""
	if c := FormatCEP(a.ZipCode); c != "" {
		cep = "CEP " + c
	}
	return joinNonEmpty(", ", head, cityState, cep)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
