package ai

import (
	"fmt"
	"strings"
)

// SystemPrompt instructs the collaborator to answer with the enrichment JSON object.
const SystemPrompt = "Você é um especialista em propriedade industrial e registro de marcas no INPI. " +
	"Responda apenas com um objeto JSON estrito contendo as chaves level, distinctiveness_score, narrative, " +
	"observations, risks, recommendations e potential_conflicts. level deve ser high, medium ou low. " +
	"distinctiveness_score deve ser um inteiro entre 20 e 95. narrative deve ter de dois a quatro parágrafos " +
	"em português do Brasil analisando a distintividade do nome para o ramo informado. As listas devem conter " +
	"frases curtas em português. Não emita nada fora do objeto JSON."

// BuildUserPrompt renders the analysis signals as the user message.
func BuildUserPrompt(p Prompt) string {
	builder := &strings.Builder{}
	fmt.Fprintf(builder, "Marca: %s\n", p.BrandName)
	fmt.Fprintf(builder, "Ramo de atividade: %s\n", p.BusinessArea)
	if p.AreaLabel != "" {
		fmt.Fprintf(builder, "Segmento identificado: %s\n", p.AreaLabel)
	}
	if len(p.Classes) > 0 {
		codes := make([]string, 0, len(p.Classes))
		for _, c := range p.Classes {
			codes = append(codes, c.Description)
		}
		fmt.Fprintf(builder, "Classes NCL sugeridas: %s\n", strings.Join(codes, "; "))
	}
	fmt.Fprintf(builder, "Pontuação heurística de distintividade: %d (%s)\n", p.Score, p.Level)
	if len(p.GenericWords) > 0 {
		fmt.Fprintf(builder, "Termos genéricos encontrados: %s\n", strings.Join(p.GenericWords, ", "))
	}
	if len(p.PersonalNames) > 0 {
		fmt.Fprintf(builder, "Nomes próprios encontrados: %s\n", strings.Join(p.PersonalNames, ", "))
	}
	if len(p.NearMatches) > 0 {
		fmt.Fprintf(builder, "Marcas de alto renome com grafia semelhante: %s\n", strings.Join(p.NearMatches, ", "))
	}
	for _, obs := range p.Observations {
		fmt.Fprintf(builder, "Observação: %s\n", obs)
	}
	for _, risk := range p.Risks {
		fmt.Fprintf(builder, "Risco: %s\n", risk)
	}
	builder.WriteString("Use a pontuação heurística como ponto de partida e ajuste se houver evidência para outra conclusão.\n")
	builder.WriteString("Considere o princípio do first to file: quem deposita primeiro tem prioridade.\n")
	return builder.String()
}
