package contract

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Signatory is a party that signs the document.
type Signatory struct {
	Name     string
	Role     string
	Document string
}

// LayoutOptions controls the printable HTML document.
type LayoutOptions struct {
	Title       string
	Letterhead  string
	DocumentID  string
	Signatories []Signatory
	Certify     bool
	IssuedAt    time.Time
}

// Certification identifies the exact body that was rendered.
type Certification struct {
	Hash       string
	DocumentID string
	IssuedAt   string
}

// Certify fingerprints a rendered body with SHA-256.
func Certify(body, documentID string, issuedAt time.Time) Certification {
	sum := sha256.Sum256([]byte(body))
	return Certification{
		Hash:       hex.EncodeToString(sum[:]),
		DocumentID: documentID,
		IssuedAt:   issuedAt.Format("02/01/2006 15:04:05 MST"),
	}
}

type layoutData struct {
	Title       string
	Letterhead  string
	Paragraphs  [][]string
	Signatories []Signatory
	Cert        *Certification
}

var layoutTemplate = template.Must(template.New("contract").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 2cm; }
body { font-family: Georgia, serif; font-size: 12pt; line-height: 1.5; color: #222; }
header.letterhead { border-bottom: 2px solid #1a3d7c; margin-bottom: 1.5em; padding-bottom: .5em; }
header.letterhead h1 { color: #1a3d7c; font-size: 18pt; margin: 0; }
h2 { text-align: center; font-size: 14pt; }
p { text-align: justify; margin: 0 0 1em; }
.signatures { display: flex; flex-wrap: wrap; gap: 2em; margin-top: 3em; page-break-inside: avoid; }
.signature { flex: 1 1 40%; text-align: center; }
.signature .line { border-top: 1px solid #222; margin-bottom: .3em; padding-top: 2.5em; }
.certification { margin-top: 3em; padding: 1em; border: 1px dashed #1a3d7c; font-size: 9pt; font-family: monospace; page-break-inside: avoid; }
</style>
</head>
<body>
<header class="letterhead"><h1>{{.Letterhead}}</h1></header>
<h2>{{.Title}}</h2>
{{range .Paragraphs}}<p>{{range $i, $line := .}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
{{end}}{{if .Signatories}}<section class="signatures">
{{range .Signatories}}<div class="signature"><div class="line"></div><strong>{{.Name}}</strong>{{if .Role}}<br>{{.Role}}{{end}}{{if .Document}}<br>{{.Document}}{{end}}</div>
{{end}}</section>
{{end}}{{with .Cert}}<section class="certification">
<strong>Certificação digital do documento</strong><br>
Documento: {{.DocumentID}}<br>
Emitido em: {{.IssuedAt}}<br>
SHA-256: {{.Hash}}
</section>
{{end}}</body>
</html>
`))

// RenderHTML lays a rendered contract body out as a printable HTML page. Blank lines
// separate paragraphs; body text is escaped.
func RenderHTML(body string, opts LayoutOptions) (string, error) {
	data := layoutData{
		Title:       opts.Title,
		Letterhead:  opts.Letterhead,
		Paragraphs:  splitParagraphs(body),
		Signatories: opts.Signatories,
	}
	if data.Title == "" {
		data.Title = "Contrato de Prestação de Serviços"
	}
	if data.Letterhead == "" {
		data.Letterhead = "WebMarcas Registro de Marcas"
	}
	if opts.Certify {
		issued := opts.IssuedAt
		if issued.IsZero() {
			issued = time.Now()
		}
		cert := Certify(body, opts.DocumentID, issued)
		data.Cert = &cert
	}

	var buf bytes.Buffer
	if err := layoutTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render contract layout: %w", err)
	}
	return buf.String(), nil
}

func splitParagraphs(body string) [][]string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	var out [][]string
	for _, block := range strings.Split(body, "\n\n") {
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			out = append(out, lines)
		}
	}
	return out
}

// DefaultSignatories returns the contractor and client signature blocks for a context.
func DefaultSignatories(ctx Context) []Signatory {
	client := Signatory{
		Name:     strings.TrimSpace(ctx.Personal.FullName),
		Role:     "CONTRATANTE",
		Document: "CPF " + FormatCPF(ctx.Personal.CPF),
	}
	if ctx.Brand.HasCompanyID && strings.TrimSpace(ctx.Brand.CompanyName) != "" {
		client.Name = strings.TrimSpace(ctx.Brand.CompanyName)
		client.Document = "CNPJ " + FormatCNPJ(ctx.Brand.CompanyID)
	}
	return []Signatory{
		{Name: "WebMarcas Registro de Marcas", Role: "CONTRATADA"},
		client,
	}
}
