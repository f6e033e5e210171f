package generator

import (
	"testing"

	"github.com/ridoystarlord/olapschema/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderMeasureDoc(t *testing.T, agg schema.Aggregator) string {
	t.Helper()
	measure := schema.NewMeasure("m", "col", agg, true)
	measure.AddAnnotation("note", "x")
	cube := schema.NewCube("c", schema.NewTable("t"))
	cube.AddMeasure(measure)
	s := schema.NewSchema("s")
	s.AddCube(cube)

	out, err := GenerateWithOptions(s, Options{OmitDeclaration: true})
	require.NoError(t, err)
	return out
}

func TestAggregatorAttr(t *testing.T) {
	tests := []struct {
		kind schema.AggregatorKind
		want string
	}{
		{schema.SumKind, "sum"},
		{schema.CountKind, "count"},
		{schema.MinKind, "min"},
		{schema.MaxKind, "max"},
		{schema.AvgKind, ""},
		{schema.DistinctCountKind, "distinct-count"},
		{schema.MedianKind, "None"},
		{schema.CustomKind, "None"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := AggregatorAttr(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := AggregatorAttr("geomean")
	assert.Error(t, err)
}

func TestRenderMeasure_PlainAggregators(t *testing.T) {
	out := renderMeasureDoc(t, schema.Sum)
	assert.Contains(t, out, `<Measure name="m" column="col" visible="true" aggregator="sum"><Annotations>`)
	assert.NotContains(t, out, "MeasureExpression")

	out = renderMeasureDoc(t, schema.Avg)
	assert.Contains(t, out, `aggregator=""`)
	assert.NotContains(t, out, "MeasureExpression")
}

func TestRenderMeasure_Median(t *testing.T) {
	out := renderMeasureDoc(t, schema.Median(schema.Postgres, "f"))
	assert.Contains(t, out, `<Measure name="m" column="col" visible="true" aggregator="None">`+
		`<MeasureExpression><SQL dialect="postgres">f</SQL></MeasureExpression>`+
		`<Annotations><Annotation name="note">x</Annotation></Annotations>`+
		`</Measure>`)

	out = renderMeasureDoc(t, schema.Median(schema.MonetDB, "quantile(x, 0.5)"))
	assert.Contains(t, out, `<SQL dialect="monetdb">quantile(x, 0.5)</SQL>`)
}

func TestRenderMeasure_Custom(t *testing.T) {
	out := renderMeasureDoc(t, schema.CustomAggregator("sum(a) / sum(b)"))
	assert.Contains(t, out, `aggregator="None"><MeasureExpression><SQL>sum(a) / sum(b)</SQL></MeasureExpression><Annotations>`)
	assert.NotContains(t, out, "dialect")
}

func TestRenderMeasure_UnsupportedDatabase(t *testing.T) {
	cube := schema.NewCube("c", schema.NewTable("t"))
	cube.AddMeasure(schema.NewMeasure("m", "col", schema.Median("oracle", "f"), true))
	s := schema.NewSchema("s")
	s.AddCube(cube)

	_, err := Generate(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `measure "m"`)
	assert.Contains(t, err.Error(), "unsupported database")
}

func TestRenderSource(t *testing.T) {
	render := func(source *schema.Source) string {
		s := schema.NewSchema("s")
		s.AddCube(schema.NewCube("c", source))
		out, err := GenerateWithOptions(s, Options{OmitDeclaration: true})
		require.NoError(t, err)
		return out
	}

	assert.Contains(t, render(schema.NewTable("sales")), `<Table name="sales"/>`)
	assert.Contains(t, render(schema.NewTable("sales").WithSchema("public")), `<Table name="sales" schema="public"/>`)
	assert.Contains(t, render(schema.NewView("v", "select 1")), `<View alias="v" formula="select 1"/>`)

	view := schema.NewView("v", "select 1")
	view.AddAnnotation("k", "v")
	assert.Contains(t, render(view), `<View alias="v" formula="select 1"><Annotations><Annotation name="k">v</Annotation></Annotations></View>`)
}

func TestRenderSource_Unsupported(t *testing.T) {
	s := schema.NewSchema("s")
	s.AddCube(schema.NewCube("c", &schema.Source{Kind: "csv"}))

	_, err := Generate(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported source kind")
}

func TestRenderHierarchySource(t *testing.T) {
	hierarchy := schema.NewHierarchy(true).WithSource(schema.NewTable("products").WithSchema("dim"))
	hierarchy.AddLevel(schema.NewLevel("Product", "id", true))
	dimension := schema.NewDimension("Product")
	dimension.AddHierarchy(hierarchy)
	cube := schema.NewCube("c", schema.NewTable("t"))
	cube.AddDimension(dimension)
	s := schema.NewSchema("s")
	s.AddCube(cube)

	out, err := Generate(s)
	require.NoError(t, err)
	assert.Contains(t, out, `<Hierarchy hasAll="true"><Table name="products" schema="dim"/><Level `)
}
