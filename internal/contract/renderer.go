package contract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ValidityDays is the contract term counted from the rendering date.
const ValidityDays = 365

var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Renderer substitutes {{token}} placeholders with values derived from a Context.
// Now is the clock used for the date tokens; nil means time.Now.
type Renderer struct {
	Now func() time.Time
}

// Render substitutes tokens using the current time.
func Render(template string, ctx Context) string {
	return Renderer{}.Render(template, ctx)
}

// Render replaces every known token and leaves unknown ones verbatim. Templates without
// tokens are returned unchanged.
func (r Renderer) Render(template string, ctx Context) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	values := r.Tokens(ctx)
	return tokenPattern.ReplaceAllStringFunc(template, func(placeholder string) string {
		name := tokenPattern.FindStringSubmatch(placeholder)[1]
		if value, ok := values[name]; ok {
			return value
		}
		return placeholder
	})
}

// Tokens builds the flat token map for a context. Price tokens are absent when the
// payment method is not a known tier.
func (r Renderer) Tokens(ctx Context) map[string]string {
	now := r.now()
	end := now.AddDate(0, 0, ValidityDays)
	p := ctx.Personal
	b := ctx.Brand

	holder := strings.TrimSpace(p.FullName)
	holderDoc := FormatCPF(p.CPF)
	companyID, companyName := "", ""
	if b.HasCompanyID {
		companyID = FormatCNPJ(b.CompanyID)
		companyName = strings.TrimSpace(b.CompanyName)
		if companyName != "" {
			holder = companyName
		}
		if companyID != "" {
			holderDoc = companyID
		}
	}

	tokens := map[string]string{
		"nome_cliente":      strings.TrimSpace(p.FullName),
		"email":             strings.TrimSpace(p.Email),
		"telefone":          FormatPhone(p.Phone),
		"cpf":               FormatCPF(p.CPF),
		"endereco_completo": FullAddress(p.Address),
		"rua":               strings.TrimSpace(p.Address.Street),
		"numero":            strings.TrimSpace(p.Address.Number),
		"complemento":       strings.TrimSpace(p.Address.Complement),
		"bairro":            strings.TrimSpace(p.Address.Neighborhood),
		"cidade":            strings.TrimSpace(p.Address.City),
		"estado":            strings.ToUpper(strings.TrimSpace(p.Address.State)),
		"cep":               FormatCEP(p.Address.ZipCode),
		"nome_marca":        strings.TrimSpace(b.BrandName),
		"ramo_atividade":    strings.TrimSpace(b.BusinessArea),
		"cnpj":              companyID,
		"razao_social":      companyName,
		"titular":           holder,
		"documento_titular": holderDoc,
		"data":              FormatDate(now),
		"data_extenso":      FormatLongDate(now),
		"data_fim":          FormatDate(end),
		"data_fim_extenso":  FormatLongDate(end),
		"vigencia_dias":     strconv.Itoa(ValidityDays),
	}

	if price, ok := PriceFor(ctx.PaymentMethod); ok {
		tokens["valor"] = FormatBRL(price.Total())
		tokens["valor_parcela"] = FormatBRL(price.Installment)
		tokens["parcelas"] = strconv.Itoa(price.Installments)
		tokens["forma_pagamento"] = price.Label
		tokens["forma_pagamento_detalhada"] = price.detailed()
	}
	return tokens
}

func (r Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// TokenNames lists every token the renderer can fill, sorted.
func TokenNames() []string {
	tokens := Renderer{}.Tokens(Context{PaymentMethod: PaymentCash})
	names := make([]string, 0, len(tokens))
	for name := range tokens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Placeholders lists the distinct token names referenced by a template in order of
// first appearance.
func Placeholders(template string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range tokenPattern.FindAllStringSubmatch(template, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// Unknown lists the placeholders of a template the renderer cannot fill.
func Unknown(template string) []string {
	known := make(map[string]struct{})
	for _, name := range TokenNames() {
		known[name] = struct{}{}
	}
	var out []string
	for _, name := range Placeholders(template) {
		if _, ok := known[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
