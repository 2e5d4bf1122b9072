package viability

import (
	"fmt"
	"strings"

	"webmarcas/backend/internal/ai"
	"webmarcas/backend/internal/scoring"
)

// Disclaimer closes every laudo.
const Disclaimer = "AVISO LEGAL: Este laudo tem caráter orientativo e baseia-se em critérios técnicos " +
	"de distintividade, não constituindo garantia de concessão do registro pelo INPI. " +
	"O sistema brasileiro adota o princípio do first to file: a prioridade pertence a quem " +
	"deposita o pedido primeiro, por isso recomendamos protocolar o quanto antes."

const blockedRecommendation = "Escolha um nome inventado (fantasioso), sem relação com marcas conhecidas " +
	"e que não descreva o produto ou serviço oferecido."

func blockedConsequences() []string {
	return []string{
		"Indeferimento automático do pedido de registro pelo INPI.",
		"Responsabilidade civil, com obrigação de indenizar o titular da marca e abandonar o uso do nome.",
		"Possível responsabilidade criminal por crime contra registro de marca (arts. 189 e 190 da Lei 9.279/96).",
	}
}

var levelLabels = map[scoring.Level]string{
	scoring.LevelHigh:   "ALTA",
	scoring.LevelMedium: "MÉDIA",
	scoring.LevelLow:    "BAIXA",
}

type laudo struct {
	b       strings.Builder
	section int
}

func newLaudo(v Verdict) *laudo {
	l := &laudo{}
	l.b.WriteString("LAUDO TÉCNICO DE VIABILIDADE DE MARCA\n")
	fmt.Fprintf(&l.b, "Data da análise: %s\n", v.CreatedAt.Format("02/01/2006"))
	l.heading("DADOS DA CONSULTA")
	fmt.Fprintf(&l.b, "Marca: %s\n", v.BrandName)
	area := v.BusinessArea
	if area == "" {
		area = "não informado"
	}
	fmt.Fprintf(&l.b, "Ramo de atividade: %s\n", area)
	if v.AreaLabel != "" {
		fmt.Fprintf(&l.b, "Segmento identificado: %s\n", v.AreaLabel)
	}
	return l
}

func (l *laudo) heading(title string) {
	l.section++
	fmt.Fprintf(&l.b, "\n%d. %s\n", l.section, title)
}

func (l *laudo) paragraph(text string) {
	l.b.WriteString(strings.TrimSpace(text))
	l.b.WriteString("\n")
}

func (l *laudo) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	l.heading(title)
	for _, item := range items {
		fmt.Fprintf(&l.b, "- %s\n", item)
	}
}

func (l *laudo) String() string {
	l.b.WriteString("\n")
	l.b.WriteString(Disclaimer)
	l.b.WriteString("\n")
	return l.b.String()
}

func buildLaudo(v Verdict, enrichment *ai.Enrichment) string {
	l := newLaudo(v)

	l.heading("RESULTADO DA ANÁLISE")
	fmt.Fprintf(&l.b, "Nível de viabilidade: %s\n", levelLabels[v.Level])
	fmt.Fprintf(&l.b, "Pontuação de distintividade: %d/100\n", v.Score)
	l.paragraph(v.Description())

	classes := make([]string, 0, len(v.Classes))
	for _, c := range v.Classes {
		classes = append(classes, c.Description)
	}
	l.list("CLASSES RECOMENDADAS (NCL)", classes)
	l.list("OBSERVAÇÕES", v.Observations)
	l.list("RISCOS IDENTIFICADOS", v.Risks)
	l.list("RECOMENDAÇÕES", v.Recommendations)
	l.list("POSSÍVEIS CONFLITOS", v.PotentialConflicts)

	if enrichment != nil {
		l.heading("PARECER ESPECIALIZADO")
		l.paragraph(enrichment.Narrative)
	}
	return l.String()
}

func buildBlockedLaudo(v Verdict, mark scoring.FamousMark) string {
	l := newLaudo(v)

	l.heading("RESULTADO DA ANÁLISE: MARCA BLOQUEADA")
	l.paragraph(fmt.Sprintf("O nome \"%s\" coincide com a marca de alto renome \"%s\" (setor: %s).", v.BrandName, mark.Mark, mark.Sector))

	l.heading("FUNDAMENTO LEGAL")
	l.paragraph("Marcas de alto renome recebem proteção especial em todos os ramos de atividade, " +
		"independentemente da classe em que o pedido for depositado (art. 125 da Lei 9.279/96). " +
		"Nenhum terceiro pode registrar nome idêntico ou semelhante, mesmo em segmento diferente.")

	l.list("CONSEQUÊNCIAS DE PROSSEGUIR COM O REGISTRO", v.Risks)
	l.list("RECOMENDAÇÃO", v.Recommendations)
	return l.String()
}
