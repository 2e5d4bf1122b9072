package scoring

import (
	"fmt"
	"strings"

	"webmarcas/backend/internal/match"
)

// Level is the qualitative viability bucket.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Valid reports whether the level is one of the known buckets.
func (l Level) Valid() bool {
	switch l {
	case LevelHigh, LevelMedium, LevelLow:
		return true
	}
	return false
}

// Rules holds the point values of the distinctiveness heuristic. The values are
// tunable; none of them reflects an actual registrability outcome.
type Rules struct {
	Baseline            int `mapstructure:"baseline"`
	ShortLength         int `mapstructure:"short_length"`
	ShortPenalty        int `mapstructure:"short_penalty"`
	LongLength          int `mapstructure:"long_length"`
	LongPenalty         int `mapstructure:"long_penalty"`
	GenericWordPenalty  int `mapstructure:"generic_word_penalty"`
	PersonalNamePenalty int `mapstructure:"personal_name_penalty"`
	DigitPenalty        int `mapstructure:"digit_penalty"`
	MultiWordBonus      int `mapstructure:"multi_word_bonus"`
	InventedBonus       int `mapstructure:"invented_bonus"`
	MinScore            int `mapstructure:"min_score"`
	MaxScore            int `mapstructure:"max_score"`
	HighThreshold       int `mapstructure:"high_threshold"`
	MediumThreshold     int `mapstructure:"medium_threshold"`
}

// DefaultRules returns the stock heuristic constants.
func DefaultRules() Rules {
	return Rules{
		Baseline:            70,
		ShortLength:         4,
		ShortPenalty:        20,
		LongLength:          20,
		LongPenalty:         10,
		GenericWordPenalty:  8,
		PersonalNamePenalty: 15,
		DigitPenalty:        5,
		MultiWordBonus:      5,
		InventedBonus:       10,
		MinScore:            20,
		MaxScore:            95,
		HighThreshold:       70,
		MediumThreshold:     45,
	}
}

// Distinctiveness is the deterministic scoring outcome.
type Distinctiveness struct {
	Score           int
	Level           Level
	GenericWords    []string
	PersonalNames   []string
	Observations    []string
	Risks           []string
	Recommendations []string
}

var genericWords = []string{
	"global", "premium", "express", "solutions", "solucoes", "servicos", "service",
	"digital", "online", "brasil", "brazil", "center", "centro", "group", "grupo",
	"master", "prime", "total", "mundo", "world", "mega", "super", "plus", "tech",
	"shop", "store", "loja", "comercio", "consultoria", "distribuidora",
}

var personalNames = map[string]struct{}{
	"maria": {}, "jose": {}, "joao": {}, "ana": {}, "pedro": {}, "paulo": {},
	"carlos": {}, "lucas": {}, "marcos": {}, "gabriel": {}, "rafael": {}, "daniel": {},
	"fernanda": {}, "juliana": {}, "patricia": {}, "aline": {}, "bruno": {}, "felipe": {},
	"mariana": {}, "camila": {}, "antonio": {}, "francisco": {}, "luiz": {}, "luis": {},
	"julia": {}, "beatriz": {}, "eduardo": {}, "ricardo": {},
}

// Score applies the heuristic rules to the brand profile.
func Score(profile match.BrandProfile, rules Rules) Distinctiveness {
	result := Distinctiveness{}
	score := rules.Baseline
	length := len([]rune(profile.Compact))

	if length < rules.ShortLength {
		score -= rules.ShortPenalty
		result.Risks = append(result.Risks, fmt.Sprintf("Nome muito curto (%d caracteres): marcas curtas tendem a colidir com registros existentes.", length))
		result.Recommendations = append(result.Recommendations, "Considere um nome com pelo menos quatro letras ou um elemento figurativo marcante.")
	}
	if length > rules.LongLength {
		score -= rules.LongPenalty
		result.Risks = append(result.Risks, fmt.Sprintf("Nome longo (%d caracteres): dificulta memorização e pode ser registrado de forma fragmentada.", length))
		result.Recommendations = append(result.Recommendations, "Avalie uma versão mais curta do nome para o registro principal.")
	}

	for _, word := range genericWords {
		if hasToken(profile.Tokens, word) {
			result.GenericWords = append(result.GenericWords, word)
		}
	}
	if n := len(result.GenericWords); n > 0 {
		score -= n * rules.GenericWordPenalty
		result.Risks = append(result.Risks, fmt.Sprintf("Termos genéricos identificados (%s): não podem ser apropriados com exclusividade.", strings.Join(result.GenericWords, ", ")))
		result.Recommendations = append(result.Recommendations, "Substitua termos genéricos por um elemento criativo ou inventado.")
	}

	for _, token := range profile.Tokens {
		if _, ok := personalNames[token]; ok {
			result.PersonalNames = append(result.PersonalNames, token)
		}
	}
	if len(result.PersonalNames) > 0 {
		score -= rules.PersonalNamePenalty
		result.Risks = append(result.Risks, fmt.Sprintf("Nome próprio comum (%s): risco de homonímia com marcas já depositadas.", strings.Join(result.PersonalNames, ", ")))
		result.Recommendations = append(result.Recommendations, "Combine o nome próprio com um elemento distintivo ou utilize o sobrenome completo.")
	}

	if match.ContainsDigit(profile.Compact) {
		score -= rules.DigitPenalty
		result.Observations = append(result.Observations, "O nome contém números, o que reduz levemente a distintividade.")
	}

	if tokens := len(profile.Tokens); tokens >= 2 && tokens <= 4 {
		score += rules.MultiWordBonus
		result.Observations = append(result.Observations, fmt.Sprintf("Marca composta por %d palavras, o que reforça o conjunto distintivo.", tokens))
	}

	if looksInvented(profile.Tokens) {
		score += rules.InventedBonus
		result.Observations = append(result.Observations, "O nome aparenta ser uma palavra inventada (fantasiosa), característica de marcas fortes.")
	}

	if len(result.Risks) == 0 {
		result.Observations = append(result.Observations, "Nenhum elemento genérico ou de uso comum foi identificado no nome.")
	}

	result.Score = clampInt(score, rules.MinScore, rules.MaxScore)
	result.Level = LevelFor(result.Score, rules)
	result.Recommendations = append(result.Recommendations, recommendationForLevel(result.Level))
	return result
}

// LevelFor maps a score to its qualitative level.
func LevelFor(score int, rules Rules) Level {
	switch {
	case score >= rules.HighThreshold:
		return LevelHigh
	case score >= rules.MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// ClampScore bounds a score to the configured range.
func ClampScore(score int, rules Rules) int {
	return clampInt(score, rules.MinScore, rules.MaxScore)
}

func recommendationForLevel(level Level) string {
	switch level {
	case LevelHigh:
		return "Realize o depósito o quanto antes para garantir a prioridade sobre o nome."
	case LevelMedium:
		return "Recomendamos uma busca de anterioridade detalhada antes do depósito."
	default:
		return "Considere ajustar o nome antes do depósito para aumentar as chances de concessão."
	}
}

// looksInvented flags fanciful-looking words: a run of four or more consonants, or a
// word of three or more letters with no vowels. Generic words never count.
func looksInvented(tokens []string) bool {
	for _, token := range tokens {
		if isGenericWord(token) {
			continue
		}
		letters := 0
		vowels := 0
		run := 0
		for _, r := range token {
			if r < 'a' || r > 'z' {
				run = 0
				continue
			}
			letters++
			if strings.ContainsRune("aeiou", r) {
				vowels++
				run = 0
				continue
			}
			run++
			if run >= 4 {
				return true
			}
		}
		if letters >= 3 && vowels == 0 {
			return true
		}
	}
	return false
}

func hasToken(tokens []string, word string) bool {
	for _, token := range tokens {
		if token == word {
			return true
		}
	}
	return false
}

func isGenericWord(token string) bool {
	for _, word := range genericWords {
		if token == word {
			return true
		}
	}
	return false
}

func clampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
