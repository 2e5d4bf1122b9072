package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "WebMarcas", "webmarcas"},
		{"diacritics", "  Alimentação e Bebidas ", "alimentacao e bebidas"},
		{"cedilla and tilde", "Construção Civil São Paulo", "construcao civil sao paulo"},
		{"collapse whitespace", "Agro \t  Negócio", "agro negocio"},
		{"empty", "   ", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalizeBrand(t *testing.T) {
	profile := NormalizeBrand("Café-Brasil 2000")

	assert.Equal(t, "Café-Brasil 2000", profile.Original)
	assert.Equal(t, "cafe-brasil 2000", profile.Normalized)
	assert.Equal(t, "cafebrasil2000", profile.Compact)
	assert.Equal(t, []string{"cafe", "brasil", "2000"}, profile.Tokens)
}

func TestTokensDeduplicates(t *testing.T) {
	assert.Equal(t, []string{"super", "mercado"}, Tokens("Super Mercado SUPER"))
	assert.Nil(t, Tokens(""))
}

func TestContainsDigit(t *testing.T) {
	assert.True(t, ContainsDigit("loja24h"))
	assert.False(t, ContainsDigit("lojinha"))
}
