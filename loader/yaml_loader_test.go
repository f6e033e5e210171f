package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ridoystarlord/olapschema/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usSalesYAML = `
name: us_sales
cubes:
  - name: eastern_sales
    source:
      table: eastern_sales
    annotations:
      - name: states
        value: MA,NY
    dimensions:
      - name: Product
        hierarchies:
          - source:
              view:
                alias: source_alias
                formula: sqlformula
            levels:
              - name: Product Group
                column: prod_code
                name_column: prod_desc
                unique_members: true
    measures:
      - name: dollars
        column: mea_dollars
        aggregator: sum
        annotations:
          - name: shorthand
            value: in 100k
`

func TestParseSchemaYAML_USSales(t *testing.T) {
	got, err := ParseSchemaYAML([]byte(usSalesYAML))
	require.NoError(t, err)

	want := schema.NewSchema("us_sales")
	hierarchy := schema.NewHierarchy(true).WithSource(schema.NewView("source_alias", "sqlformula"))
	hierarchy.AddLevel(schema.NewLevel("Product Group", "prod_code", true).WithNameColumn("prod_desc"))
	product := schema.NewDimension("Product")
	product.AddHierarchy(hierarchy)
	dollars := schema.NewMeasure("dollars", "mea_dollars", schema.Sum, true)
	dollars.AddAnnotation("shorthand", "in 100k")
	cube := schema.NewCube("eastern_sales", schema.NewTable("eastern_sales"))
	cube.AddAnnotation("states", "MA,NY")
	cube.AddDimension(product)
	cube.AddMeasure(dollars)
	want.AddCube(cube)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseSchemaYAML() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSchemaYAML_AllEntities(t *testing.T) {
	doc := `
name: full
annotations:
  - {name: owner, value: bi}
cubes:
  - name: sales
    source:
      table: sales_fact
      schema: mart
      annotations:
        - {name: refreshed, value: nightly}
    dimensions:
      - name: Time
        hierarchies:
          - name: Calendar
            has_all: false
            source:
              table: time_dim
            levels:
              - name: Year
                column: year
                level_type: TimeYears
                type: Numeric
                unique_members: true
                properties:
                  - {name: Leap, column: is_leap}
    dimension_usages:
      - {name: Store, source: Store, foreign_key: store_id}
    measures:
      - {name: median_price, column: price, aggregator: median, database: monetdb, formula: "median(price)"}
      - {name: ratio, column: r, aggregator: custom, formula: "sum(a)/sum(b)", visible: false}
      - {name: avg_price, column: price, aggregator: avg}
    calculated_members:
      - {name: Profit, dimension: Measures, formula: "[a]-[b]"}
    named_sets:
      - {name: Top, formula: "TopCount(x, 3)", visible: false}
`
	s, err := ParseSchemaYAML([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []schema.Annotation{{Name: "owner", Value: "bi"}}, s.Annotations)
	require.Len(t, s.Cubes, 1)
	cube := s.Cubes[0]

	assert.Equal(t, "mart.sales_fact", cube.Source.Label())
	assert.Equal(t, "nightly", cube.Source.Annotations[0].Value)

	hierarchy := cube.Dimensions[0].Hierarchies[0]
	require.NotNil(t, hierarchy.Name)
	assert.Equal(t, "Calendar", *hierarchy.Name)
	assert.False(t, hierarchy.HasAll)
	assert.Equal(t, schema.TableSource, hierarchy.Source.Kind)

	level := hierarchy.Levels[0]
	assert.Equal(t, "TimeYears", *level.LevelType)
	assert.Equal(t, "Numeric", *level.Type)
	assert.Nil(t, level.NameColumn)
	assert.Equal(t, "is_leap", level.Properties[0].Column)

	assert.Equal(t, "store_id", cube.DimensionUsages[0].ForeignKey)

	assert.Equal(t, schema.Median(schema.MonetDB, "median(price)"), cube.Measures[0].Aggregator)
	assert.True(t, cube.Measures[0].Visible)
	assert.Equal(t, schema.CustomAggregator("sum(a)/sum(b)"), cube.Measures[1].Aggregator)
	assert.False(t, cube.Measures[1].Visible)
	assert.Equal(t, schema.Avg, cube.Measures[2].Aggregator)

	assert.True(t, cube.CalculatedMembers[0].Visible)
	assert.False(t, cube.NamedSets[0].Visible)
}

func TestParseSchemaYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown key",
			doc:  "name: x\ndimensions: []\n",
			want: "field dimensions not found",
		},
		{
			name: "missing source",
			doc:  "name: x\ncubes:\n  - name: c\n",
			want: "either table or view is required",
		},
		{
			name: "table and view",
			doc:  "name: x\ncubes:\n  - name: c\n    source:\n      table: t\n      view: {alias: a, formula: f}\n",
			want: "both table and view given",
		},
		{
			name: "unknown aggregator",
			doc:  "name: x\ncubes:\n  - name: c\n    source: {table: t}\n    measures:\n      - {name: m, column: c, aggregator: geomean}\n",
			want: `unknown aggregator "geomean"`,
		},
		{
			name: "median without database",
			doc:  "name: x\ncubes:\n  - name: c\n    source: {table: t}\n    measures:\n      - {name: m, column: c, aggregator: median, formula: f}\n",
			want: "median needs database",
		},
		{
			name: "formula on sum",
			doc:  "name: x\ncubes:\n  - name: c\n    source: {table: t}\n    measures:\n      - {name: m, column: c, aggregator: sum, formula: f}\n",
			want: "takes no formula",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchemaYAML([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadSchemaFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(usSalesYAML), 0600))

	s, err := LoadSchemaFromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "us_sales", s.Name)

	_, err = LoadSchemaFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshalCubeYAML_RoundTripsThroughParser(t *testing.T) {
	visible := true
	cube := YAMLCube{
		Name:   "orders",
		Source: YAMLSource{Table: "orders", Schema: "public"},
		Measures: []YAMLMeasure{
			{Name: "amount", Column: "amount", Aggregator: "sum", Visible: &visible},
		},
		DimensionUsages: []YAMLDimensionUsage{
			{Name: "Customer", Source: "Customer", ForeignKey: "customer_id"},
		},
	}

	data, err := MarshalCubeYAML(cube)
	require.NoError(t, err)

	s, err := ParseSchemaYAML(data)
	require.NoError(t, err)
	require.Len(t, s.Cubes, 1)
	assert.Equal(t, "orders", s.Cubes[0].Name)
	assert.Equal(t, "public.orders", s.Cubes[0].Source.Label())
	assert.Equal(t, "customer_id", s.Cubes[0].DimensionUsages[0].ForeignKey)
}
