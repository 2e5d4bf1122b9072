package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmarcas/backend/internal/cli"
)

func setup(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "PORT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	setup(t)
	out, err := run(t, "analyze", "--brand", "WebMarcas", "--area", "Tecnologia", "--json", "--no-ai")
	require.NoError(t, err)
	assert.Contains(t, out, `"level": "high"`)
	assert.Contains(t, out, `"isFamousBrand": false`)
	assert.Contains(t, out, `"distinctiveness": 70`)
}

func TestAnalyzeCommand_FamousText(t *testing.T) {
	setup(t)
	out, err := run(t, "analyze", "--brand", "Apple", "--no-ai")
	require.NoError(t, err)
	assert.Contains(t, out, "FUNDAMENTO LEGAL")
}

func TestAnalyzeCommand_RequiresBrand(t *testing.T) {
	setup(t)
	_, err := run(t, "analyze", "--brand", "  ")
	assert.Error(t, err)
}

func TestFamousImportBlocksBrand(t *testing.T) {
	dir := setup(t)
	db := filepath.Join(dir, "cli.db")
	marks := writeFile(t, dir, "marks.yaml", "- mark: Zyqtrix\n  sector: tecnologia\n- mark: Quorvana\n")

	out, err := run(t, "famous", "import", "--file", marks, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 famous marks")

	out, err = run(t, "famous", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Zyqtrix\ttecnologia")

	out, err = run(t, "analyze", "--brand", "Zyqtrix", "--json", "--no-ai", "--with-custom-marks", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, `"isFamousBrand": true`)

	bad := writeFile(t, dir, "bad.yaml", "- sector: varejo\n")
	_, err = run(t, "famous", "import", "--file", bad, "--db", db)
	assert.Error(t, err)
}

func TestTemplatesImport(t *testing.T) {
	dir := setup(t)
	db := filepath.Join(dir, "cli.db")
	tpl := writeFile(t, dir, "contrato.txt", "Contratante: {{nome_cliente}}")

	out, err := run(t, "templates", "import", "--name", "Padrão", "--file", tpl, "--default", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, `template "Padrão" stored`)

	_, err = run(t, "templates", "import", "--name", "Padrão", "--file", tpl, "--db", db)
	require.NoError(t, err)

	out, err = run(t, "templates", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Padrão")
}

const contextYAML = `
personal:
  fullName: João da Silva
  cpf: "12345678909"
brand:
  brandName: Zyqtrix
paymentMethod: pix
`

func TestRenderCommand(t *testing.T) {
	dir := setup(t)
	tpl := writeFile(t, dir, "contrato.txt", "{{nome_cliente}} ({{cpf}}) pagará {{valor}} pela marca {{nome_marca}}. {{extra}}")
	ctx := writeFile(t, dir, "ctx.yaml", contextYAML)

	out, err := run(t, "render", "--template", tpl, "--context", ctx)
	require.NoError(t, err)
	assert.Equal(t, "João da Silva (123.456.789-09) pagará R$ 699,00 pela marca Zyqtrix. {{extra}}", out)

	target := filepath.Join(dir, "contrato.html")
	_, err = run(t, "render", "--template", tpl, "--context", ctx, "--html", "--certify", "-o", target)
	require.NoError(t, err)
	html, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(html), "SHA-256:")
	assert.Contains(t, string(html), "João da Silva")
}

func TestRenderCommand_Errors(t *testing.T) {
	dir := setup(t)
	tpl := writeFile(t, dir, "contrato.txt", "{{valor}}")
	bad := writeFile(t, dir, "ctx.yaml", "paymentMethod: cheque\n")

	_, err := run(t, "render", "--template", tpl, "--context", bad)
	assert.Error(t, err)

	_, err = run(t, "render", "--template", tpl)
	assert.Error(t, err)
}
