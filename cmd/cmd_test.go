package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/ridoystarlord/olapschema/validator"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI in-process with fresh flag and config state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	cfgFile = ""
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestInitAndGenerate(t *testing.T) {
	dir := inTempDir(t)

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created schema.yaml")

	_, err = execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = execute(t, "generate", "-o", "out/schema.xml")
	require.NoError(t, err)
	assert.Contains(t, out, `Schema "us_sales" rendered`)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(filepath.Join(dir, "out", "schema.xml")))
	cube := doc.Root().SelectElement("Cube")
	require.NotNil(t, cube)

	var tags []string
	for _, c := range cube.ChildElements() {
		tags = append(tags, c.Tag)
	}
	assert.Equal(t, []string{
		"Annotations", "Table", "Dimension", "DimensionUsage",
		"Measure", "Measure", "CalculatedMember", "NamedSet",
	}, tags)
}

func TestGenerate_DryRun(t *testing.T) {
	inTempDir(t)
	_, err := execute(t, "init")
	require.NoError(t, err)

	out, err := execute(t, "generate", "--dry-run", "--no-declaration")
	require.NoError(t, err)
	assert.Contains(t, out, `<Schema name="us_sales">`)
	assert.Contains(t, out, `<SQL dialect="postgres">`)
	assert.NotContains(t, out, "<?xml")

	_, err = os.Stat("schema.xml")
	assert.True(t, os.IsNotExist(err), "dry run must not write files")
}

func TestGenerate_Structs(t *testing.T) {
	inTempDir(t)
	_, err := execute(t, "init", "--structs")
	require.NoError(t, err)

	out, err := execute(t, "generate", "--structs", "--name", "us_sales", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, `<Schema name="us_sales">`)
	assert.Contains(t, out, `<Cube name="eastern_sales">`)
	assert.Contains(t, out, `<DimensionUsage name="Time" source="Time" foreign_key="time_id"/>`)
	assert.NotContains(t, out, "loaded_by")
}

func TestGenerate_ConfigFileAndEnv(t *testing.T) {
	inTempDir(t)
	_, err := execute(t, "init")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(".olapschema.yaml", []byte("output: from-config.xml\n"), 0600))
	t.Setenv("OLAPSCHEMA_INDENT", "2")

	_, err = execute(t, "generate")
	require.NoError(t, err)

	data, err := os.ReadFile("from-config.xml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  <Cube name=\"eastern_sales\">")
}

func TestGenerate_MissingFile(t *testing.T) {
	inTempDir(t)

	_, err := execute(t, "generate", "-f", "nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading nope.yaml")
}

func TestValidate(t *testing.T) {
	inTempDir(t)
	_, err := execute(t, "init")
	require.NoError(t, err)

	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema validation passed")

	out, err = execute(t, "validate", "--format", "json")
	require.NoError(t, err)
	var result validator.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Valid)

	bad := "name: broken\ncubes:\n  - name: c\n    source: {table: t}\n    measures:\n      - {name: m, column: '', aggregator: sum}\n"
	require.NoError(t, os.WriteFile("bad.yaml", []byte(bad), 0600))

	out, err = execute(t, "validate", "-f", "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, out, "measure column cannot be empty")
}

func TestDocs(t *testing.T) {
	inTempDir(t)
	_, err := execute(t, "init")
	require.NoError(t, err)

	out, err := execute(t, "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "## Cube `eastern_sales`")

	out, err = execute(t, "docs", "--format", "mermaid", "-o", "cubes.md")
	require.NoError(t, err)
	assert.Contains(t, out, "cubes.md")
	data, err := os.ReadFile("cubes.md")
	require.NoError(t, err)
	assert.Contains(t, string(data), "classDiagram")

	_, err = execute(t, "docs", "--format", "plantuml")
	require.Error(t, err)
}

func TestScaffold_RequiresTable(t *testing.T) {
	inTempDir(t)

	_, err := execute(t, "scaffold")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--table is required")
}
