package scoring

import (
	"strings"

	"webmarcas/backend/internal/match"
)

// Class is a Nice (NCL) classification code with a human readable description.
type Class struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// BusinessArea maps a primary keyword and its synonyms to recommended classes.
type BusinessArea struct {
	Key      string
	Label    string
	Synonyms []string
	Classes  []Class
}

// DefaultArea is reported when the business description matches no table entry.
var DefaultArea = BusinessArea{
	Key:   "geral",
	Label: "Atividade geral",
	Classes: []Class{
		{35, "Classe 35 - Publicidade, gestão de negócios e comércio"},
		{41, "Classe 41 - Educação, treinamento e entretenimento"},
		{42, "Classe 42 - Serviços científicos e tecnológicos"},
	},
}

// businessAreas is scanned in order; the first entry with a matching keyword wins.
var businessAreas = []BusinessArea{
	{
		Key:      "tecnologia",
		Label:    "Tecnologia",
		Synonyms: []string{"tecnolog", "software", "aplicativo", "sistema", "informatica", "computador", "startup", "digital", "internet", "saas", "desenvolvimento web"},
		Classes: []Class{
			{9, "Classe 9 - Software, hardware e aparelhos eletrônicos"},
			{42, "Classe 42 - Serviços de tecnologia e desenvolvimento de software"},
			{35, "Classe 35 - Publicidade e gestão de negócios"},
		},
	},
	{
		Key:      "alimentacao",
		Label:    "Alimentação",
		Synonyms: []string{"aliment", "comida", "restaurante", "lanchonete", "padaria", "confeitaria", "doce", "bebida", "cafeteria", "pizzaria", "hamburgueria", "gastronomia", "food"},
		Classes: []Class{
			{29, "Classe 29 - Carnes, laticínios e alimentos processados"},
			{30, "Classe 30 - Café, pães, doces e massas"},
			{43, "Classe 43 - Restaurantes e serviços de alimentação"},
		},
	},
	{
		Key:      "moda",
		Label:    "Moda e vestuário",
		Synonyms: []string{"roupa", "vestuario", "confeccao", "calcado", "sapato", "acessorio", "boutique", "fashion", "joia"},
		Classes: []Class{
			{25, "Classe 25 - Vestuário, calçados e chapelaria"},
			{14, "Classe 14 - Joalheria e relojoaria"},
			{18, "Classe 18 - Couro, bolsas e malas"},
		},
	},
	{
		Key:      "saude",
		Label:    "Saúde",
		Synonyms: []string{"clinica", "medic", "hospital", "odonto", "dentista", "farmacia", "fisioterap", "psicolog", "nutricion", "terapia"},
		Classes: []Class{
			{44, "Classe 44 - Serviços médicos e de saúde"},
			{5, "Classe 5 - Produtos farmacêuticos"},
			{10, "Classe 10 - Aparelhos e instrumentos médicos"},
		},
	},
	{
		Key:      "educacao",
		Label:    "Educação",
		Synonyms: []string{"escola", "curso", "ensino", "treinamento", "faculdade", "aula", "idioma", "mentoria", "pedagog"},
		Classes: []Class{
			{41, "Classe 41 - Educação, treinamento e entretenimento"},
			{16, "Classe 16 - Material impresso e didático"},
			{9, "Classe 9 - Publicações eletrônicas e software educacional"},
		},
	},
	{
		Key:      "beleza",
		Label:    "Beleza e estética",
		Synonyms: []string{"estetica", "cosmetic", "salao", "cabelo", "barbearia", "maquiagem", "perfum", "manicure", "sobrancelha"},
		Classes: []Class{
			{3, "Classe 3 - Cosméticos e perfumaria"},
			{44, "Classe 44 - Salões de beleza e serviços de estética"},
		},
	},
	{
		Key:      "construcao",
		Label:    "Construção",
		Synonyms: []string{"construtora", "obra", "engenharia", "arquitetura", "reforma", "pedreiro", "incorporadora"},
		Classes: []Class{
			{37, "Classe 37 - Construção civil, reparação e instalação"},
			{19, "Classe 19 - Materiais de construção não metálicos"},
			{42, "Classe 42 - Serviços de arquitetura e engenharia"},
		},
	},
	{
		Key:      "financas",
		Label:    "Finanças",
		Synonyms: []string{"financ", "banco", "credito", "investimento", "contabil", "seguro", "fintech", "pagamento", "cambio"},
		Classes: []Class{
			{36, "Classe 36 - Serviços financeiros, seguros e negócios imobiliários"},
			{35, "Classe 35 - Contabilidade e gestão de negócios"},
		},
	},
	{
		Key:      "juridico",
		Label:    "Jurídico",
		Synonyms: []string{"advocacia", "advogad", "direito", "juridic", "cartorio"},
		Classes: []Class{
			{45, "Classe 45 - Serviços jurídicos"},
			{35, "Classe 35 - Gestão de negócios e assessoria empresarial"},
		},
	},
	{
		Key:      "automotivo",
		Label:    "Automotivo",
		Synonyms: []string{"automov", "carro", "veiculo", "oficina", "mecanica", "autopeca", "motocicleta", "funilaria", "lava jato"},
		Classes: []Class{
			{12, "Classe 12 - Veículos e acessórios"},
			{37, "Classe 37 - Reparação e manutenção de veículos"},
			{35, "Classe 35 - Comércio de veículos e peças"},
		},
	},
	{
		Key:      "agronegocio",
		Label:    "Agronegócio",
		Synonyms: []string{"agro", "agricol", "agricultura", "fazenda", "pecuaria", "rural", "semente", "fertilizante"},
		Classes: []Class{
			{31, "Classe 31 - Produtos agrícolas, sementes e animais vivos"},
			{44, "Classe 44 - Serviços de agricultura e horticultura"},
			{1, "Classe 1 - Produtos químicos e fertilizantes"},
		},
	},
}

// BusinessAreas returns a copy of the classification table.
func BusinessAreas() []BusinessArea {
	out := make([]BusinessArea, len(businessAreas))
	copy(out, businessAreas)
	return out
}

// ClassesFor resolves the business description to a table entry. When nothing matches,
// DefaultArea is returned with matched=false.
func ClassesFor(businessArea string) (BusinessArea, bool) {
	normalized := match.Normalize(businessArea)
	if normalized == "" {
		return DefaultArea, false
	}
	for _, area := range businessAreas {
		if strings.Contains(normalized, area.Key) {
			return area, true
		}
		for _, synonym := range area.Synonyms {
			if strings.Contains(normalized, synonym) {
				return area, true
			}
		}
	}
	return DefaultArea, false
}

// Codes returns the class codes in order.
func Codes(classes []Class) []int {
	out := make([]int, 0, len(classes))
	for _, c := range classes {
		out = append(out, c.Code)
	}
	return out
}

// Descriptions returns the class descriptions in order.
func Descriptions(classes []Class) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		out = append(out, c.Description)
	}
	return out
}
