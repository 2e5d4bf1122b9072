package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmarcas/backend/internal/match"
)

func TestFamousIndexMatch(t *testing.T) {
	idx := NewFamousIndex(nil)

	tests := []struct {
		name        string
		brand       string
		expectMatch string
	}{
		{"exact", "Apple", "apple"},
		{"brand contains mark", "Apple Store Brasil", "apple"},
		{"mark contains brand", "Coca", "coca-cola"},
		{"compact form", "CocaCola", "coca-cola"},
		{"diacritics", "Nestle", "nestle"},
		{"punctuation", "mc donalds", "mcdonald's"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mark, ok := idx.Match(match.NormalizeBrand(tc.brand))
			require.True(t, ok)
			assert.Equal(t, tc.expectMatch, mark.Normalized)
		})
	}
}

func TestFamousIndexNoMatch(t *testing.T) {
	idx := NewFamousIndex(nil)
	for _, brand := range []string{"WebMarcas", "Zyqtrix", "Maria Doces", "Fia Tecidos", "Lu Berço", "Pum Açaí", "Liza Rampa", "Vi Vozes", "", "   "} {
		t.Run(brand, func(t *testing.T) {
			_, ok := idx.Match(match.NormalizeBrand(brand))
			assert.False(t, ok)
		})
	}
}

func TestFamousIndexEveryEntryMatchesItself(t *testing.T) {
	idx := NewFamousIndex(nil)
	for _, mark := range idx.Marks() {
		got, ok := idx.Match(match.NormalizeBrand(mark.Mark))
		require.True(t, ok, mark.Mark)
		assert.NotEmpty(t, got.Normalized)
	}
}

func TestFamousIndexExtraMarks(t *testing.T) {
	idx := NewFamousIndex([]FamousMark{
		{Mark: "Zyqtrix", Sector: SectorTechnology},
		{Mark: "APPLE", Sector: SectorRetail},
	})
	assert.Equal(t, len(defaultFamousMarks())+1, idx.Len())

	mark, ok := idx.Match(match.NormalizeBrand("zyqtrix"))
	require.True(t, ok)
	assert.Equal(t, SectorTechnology, mark.Sector)

	apple, ok := idx.Match(match.NormalizeBrand("apple"))
	require.True(t, ok)
	assert.Equal(t, SectorTechnology, apple.Sector)
}

func TestFamousIndexNearMatches(t *testing.T) {
	idx := NewFamousIndex(nil)

	near := idx.NearMatches(match.NormalizeBrand("Nikke Esportes"), 0.75)
	require.NotEmpty(t, near)
	assert.Equal(t, "nike", near[0].Mark.Normalized)
	assert.InDelta(t, 0.8, near[0].Similarity, 0.001)

	assert.Empty(t, idx.NearMatches(match.NormalizeBrand("WebMarcas"), 0.75))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("abc", ""))
	assert.Equal(t, 1.0, Similarity("marca", "marca"))
	assert.InDelta(t, 0.75, Similarity("nike", "nik3"), 0.001)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 0.001)
}

func TestClassesFor(t *testing.T) {
	tests := []struct {
		name    string
		area    string
		key     string
		codes   []int
		matched bool
	}{
		{"technology key", "Tecnologia", "tecnologia", []int{9, 42, 35}, true},
		{"technology synonym", "Desenvolvimento de aplicativos", "tecnologia", []int{9, 42, 35}, true},
		{"food with accents", "Alimentação saudável", "alimentacao", []int{29, 30, 43}, true},
		{"beauty", "Salão de beleza", "beleza", []int{3, 44}, true},
		{"legal", "Escritório de advocacia", "juridico", []int{45, 35}, true},
		{"agribusiness", "Agropecuária", "agronegocio", []int{31, 44, 1}, true},
		{"fallback", "qualquer ramo", "geral", []int{35, 41, 42}, false},
		{"empty", "", "geral", []int{35, 41, 42}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			area, matched := ClassesFor(tc.area)
			assert.Equal(t, tc.matched, matched)
			assert.Equal(t, tc.key, area.Key)
			assert.Equal(t, tc.codes, Codes(area.Classes))
			assert.Len(t, Descriptions(area.Classes), len(tc.codes))
		})
	}
}

func TestEveryAreaHasTwoToThreeClasses(t *testing.T) {
	for _, area := range append(BusinessAreas(), DefaultArea) {
		assert.GreaterOrEqual(t, len(area.Classes), 2, area.Key)
		assert.LessOrEqual(t, len(area.Classes), 3, area.Key)
	}
}

func TestScore(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name  string
		brand string
		score int
		level Level
	}{
		{"plain single word", "WebMarcas", 70, LevelHigh},
		{"invented word", "Zyqtrix", 80, LevelHigh},
		{"personal name compound", "Maria Doces", 60, LevelMedium},
		{"generic words and digits", "Loja 24 Horas", 62, LevelMedium},
		{"short without vowels", "Xyz", 60, LevelMedium},
		{"generic and long", "Global Premium Express Solutions", 33, LevelLow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Score(match.NormalizeBrand(tc.brand), rules)
			assert.Equal(t, tc.score, result.Score)
			assert.Equal(t, tc.level, result.Level)
			assert.NotEmpty(t, result.Recommendations)
		})
	}
}

func TestScoreFindings(t *testing.T) {
	result := Score(match.NormalizeBrand("Global Premium Express Solutions"), DefaultRules())
	assert.Equal(t, []string{"global", "premium", "express", "solutions"}, result.GenericWords)
	assert.Len(t, result.Risks, 2)

	named := Score(match.NormalizeBrand("Maria Doces"), DefaultRules())
	assert.Equal(t, []string{"maria"}, named.PersonalNames)
}

func TestScoreGenericWordsMatchWholeTokens(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		brand string
		score int
	}{
		{"Bishop", 70},
		{"Plu Sabor", 75},
		{"Omega Relogios", 75},
		{"Concentro", 70},
	}
	for _, tc := range tests {
		t.Run(tc.brand, func(t *testing.T) {
			result := Score(match.NormalizeBrand(tc.brand), rules)
			assert.Empty(t, result.GenericWords)
			assert.Equal(t, tc.score, result.Score)
		})
	}

	shop := Score(match.NormalizeBrand("Bella Shop"), rules)
	assert.Equal(t, []string{"shop"}, shop.GenericWords)
}

func TestScoreIsClamped(t *testing.T) {
	rules := DefaultRules()
	rules.Baseline = 500
	assert.Equal(t, rules.MaxScore, Score(match.NormalizeBrand("WebMarcas"), rules).Score)

	rules.Baseline = -500
	assert.Equal(t, rules.MinScore, Score(match.NormalizeBrand("WebMarcas"), rules).Score)
}

func TestLevelFor(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, LevelHigh, LevelFor(70, rules))
	assert.Equal(t, LevelMedium, LevelFor(69, rules))
	assert.Equal(t, LevelMedium, LevelFor(45, rules))
	assert.Equal(t, LevelLow, LevelFor(44, rules))
	assert.True(t, LevelLow.Valid())
	assert.False(t, Level("blocked").Valid())
}
