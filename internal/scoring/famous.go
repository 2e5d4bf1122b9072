package scoring

import (
	"sort"
	"strings"

	"webmarcas/backend/internal/match"
)

// Sectors used to group high-renown marks.
const (
	SectorTechnology    = "tecnologia"
	SectorAutomotive    = "automotivo"
	SectorFood          = "alimentos e bebidas"
	SectorFashion       = "moda"
	SectorFinance       = "financeiro"
	SectorRetail        = "varejo"
	SectorTelecom       = "telecomunicacoes"
	SectorEntertainment = "entretenimento"
)

// FamousMark is a mark with high-renown protection across every class.
type FamousMark struct {
	Mark       string `json:"mark" yaml:"mark"`
	Sector     string `json:"sector" yaml:"sector"`
	Normalized string `json:"normalized" yaml:"-"`
	Compact    string `json:"-" yaml:"-"`
}

// NearMatch is a famous mark that resembles the queried name without blocking it.
type NearMatch struct {
	Mark       FamousMark
	Similarity float64
}

// FamousIndex answers famous-mark lookups. It is immutable after construction and
// safe for concurrent use.
type FamousIndex struct {
	marks []FamousMark
}

// NewFamousIndex builds an index from the built-in table followed by extra marks.
// Duplicates (same normalized key) keep the first occurrence, so table order decides
// which entry is reported on a match.
func NewFamousIndex(extra []FamousMark) *FamousIndex {
	seen := make(map[string]struct{})
	var marks []FamousMark
	add := func(m FamousMark) {
		m.Normalized = match.Normalize(m.Mark)
		m.Compact = match.Compact(m.Mark)
		if m.Normalized == "" || m.Compact == "" {
			return
		}
		if _, ok := seen[m.Normalized]; ok {
			return
		}
		seen[m.Normalized] = struct{}{}
		marks = append(marks, m)
	}
	for _, m := range defaultFamousMarks() {
		add(m)
	}
	for _, m := range extra {
		add(m)
	}
	return &FamousIndex{marks: marks}
}

// Marks returns a copy of the indexed marks in lookup order.
func (idx *FamousIndex) Marks() []FamousMark {
	if idx == nil {
		return nil
	}
	out := make([]FamousMark, len(idx.marks))
	copy(out, idx.marks)
	return out
}

// Len reports the number of indexed marks.
func (idx *FamousIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.marks)
}

// Match returns the first famous mark that equals the brand, contains it, or is
// contained by it on the normalized form. The compact form only counts on equality, so
// letters joined across word boundaries never produce a match. An empty brand never
// matches.
func (idx *FamousIndex) Match(profile match.BrandProfile) (FamousMark, bool) {
	if idx == nil || profile.Compact == "" {
		return FamousMark{}, false
	}
	for _, mark := range idx.marks {
		if overlaps(profile.Normalized, mark.Normalized) || profile.Compact == mark.Compact {
			return mark, true
		}
	}
	return FamousMark{}, false
}

// NearMatches lists famous marks whose spelling is close to the brand (or to one of its
// tokens) with similarity at or above threshold, best first.
func (idx *FamousIndex) NearMatches(profile match.BrandProfile, threshold float64) []NearMatch {
	if idx == nil || profile.Compact == "" {
		return nil
	}
	candidates := append([]string{profile.Compact}, profile.Tokens...)
	var out []NearMatch
	for _, mark := range idx.marks {
		best := 0.0
		for _, candidate := range candidates {
			if len([]rune(candidate)) < 4 {
				continue
			}
			if sim := Similarity(candidate, mark.Compact); sim > best {
				best = sim
			}
		}
		if best >= threshold {
			out = append(out, NearMatch{Mark: mark, Similarity: best})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	return out
}

func overlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func defaultFamousMarks() []FamousMark {
	table := []struct {
		sector string
		marks  []string
	}{
		{SectorTechnology, []string{
			"Apple", "Google", "Microsoft", "Samsung", "Facebook", "Instagram", "WhatsApp",
			"YouTube", "Amazon", "Netflix", "Intel", "Motorola", "TikTok", "Twitter",
			"LinkedIn", "Uber", "Spotify", "Oracle", "Lenovo", "Nvidia",
		}},
		{SectorAutomotive, []string{
			"Toyota", "Volkswagen", "Chevrolet", "Ferrari", "Mercedes-Benz", "Ford", "Honda",
			"Fiat", "Hyundai", "Porsche", "BMW", "Lamborghini", "Renault",
		}},
		{SectorFood, []string{
			"Coca-Cola", "Pepsi", "Nestlé", "McDonald's", "Burger King", "Heineken", "Ambev",
			"Brahma", "Skol", "Sadia", "Perdigão", "Kibon", "Nescafé", "Starbucks", "Danone",
			"Red Bull", "Guaraná Antarctica",
		}},
		{SectorFashion, []string{
			"Nike", "Adidas", "Puma", "Gucci", "Prada", "Chanel", "Louis Vuitton", "Zara",
			"Havaianas", "Lacoste", "Rolex", "Hering",
		}},
		{SectorFinance, []string{
			"Itaú", "Bradesco", "Santander", "Nubank", "Visa", "Mastercard",
			"Banco do Brasil", "Caixa Econômica Federal", "PayPal",
		}},
		{SectorRetail, []string{
			"Magazine Luiza", "Magalu", "Americanas", "Casas Bahia", "Mercado Livre",
			"Carrefour", "Walmart", "Natura", "O Boticário", "Avon", "Ikea",
		}},
		{SectorTelecom, []string{
			"Vivo", "Claro", "Embratel", "Vodafone",
		}},
		{SectorEntertainment, []string{
			"Disney", "Globo", "Warner", "Marvel", "Pixar", "PlayStation", "Nintendo",
			"Xbox",
		}},
	}
	var out []FamousMark
	for _, group := range table {
		for _, mark := range group.marks {
			out = append(out, FamousMark{Mark: mark, Sector: group.sector})
		}
	}
	return out
}
