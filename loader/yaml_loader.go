package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ridoystarlord/olapschema/schema"
	"gopkg.in/yaml.v3"
)

// SchemaFile is the on-disk YAML layout of a schema. Lists keep their YAML
// order all the way into the rendered document.
type SchemaFile struct {
	Name        string           `yaml:"name"`
	Annotations []YAMLAnnotation `yaml:"annotations,omitempty"`
	Cubes       []YAMLCube       `yaml:"cubes"`
}

type YAMLAnnotation struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type YAMLCube struct {
	Name              string                 `yaml:"name"`
	Source            YAMLSource             `yaml:"source"`
	Annotations       []YAMLAnnotation       `yaml:"annotations,omitempty"`
	Dimensions        []YAMLDimension        `yaml:"dimensions,omitempty"`
	DimensionUsages   []YAMLDimensionUsage   `yaml:"dimension_usages,omitempty"`
	Measures          []YAMLMeasure          `yaml:"measures,omitempty"`
	CalculatedMembers []YAMLCalculatedMember `yaml:"calculated_members,omitempty"`
	NamedSets         []YAMLNamedSet         `yaml:"named_sets,omitempty"`
}

// YAMLSource holds either a table (Table, Schema) or a View.
type YAMLSource struct {
	Table       string           `yaml:"table,omitempty"`
	Schema      string           `yaml:"schema,omitempty"`
	View        *YAMLView        `yaml:"view,omitempty"`
	Annotations []YAMLAnnotation `yaml:"annotations,omitempty"`
}

type YAMLView struct {
	Alias   string `yaml:"alias"`
	Formula string `yaml:"formula"`
}

type YAMLDimension struct {
	Name        string           `yaml:"name"`
	Annotations []YAMLAnnotation `yaml:"annotations,omitempty"`
	Hierarchies []YAMLHierarchy  `yaml:"hierarchies"`
}

type YAMLHierarchy struct {
	Name        string           `yaml:"name,omitempty"`
	HasAll      *bool            `yaml:"has_all,omitempty"`
	Source      *YAMLSource      `yaml:"source,omitempty"`
	Annotations []YAMLAnnotation `yaml:"annotations,omitempty"`
	Levels      []YAMLLevel      `yaml:"levels"`
}

type YAMLLevel struct {
	Name          string           `yaml:"name"`
	Column        string           `yaml:"column"`
	NameColumn    string           `yaml:"name_column,omitempty"`
	LevelType     string           `yaml:"level_type,omitempty"`
	Type          string           `yaml:"type,omitempty"`
	UniqueMembers bool             `yaml:"unique_members,omitempty"`
	Annotations   []YAMLAnnotation `yaml:"annotations,omitempty"`
	Properties    []YAMLProperty   `yaml:"properties,omitempty"`
}

type YAMLProperty struct {
	Name        string           `yaml:"name"`
	Column      string           `yaml:"column"`
	Annotations []YAMLAnnotation `yaml:"annotations,omitempty"`
}

type YAMLDimensionUsage struct {
	Name        string           `yaml:"name"`
	Source      string           `yaml:"source"`
	ForeignKey  string           `yaml:"foreign_key"`
	Annotations []YAMLAnnotation `yaml:"annotations,omitempty"`
}

type YAMLMeasure struct {
	Name        string           `yaml:"name"`
	Column      string           `yaml:"column"`
	Aggregator  string           `yaml:"aggregator"`
	Database    string           `yaml:"database,omitempty"` // median only
	Formula     string           `yaml:"formula,omitempty"`  // median and custom
	Visible     *bool            `yaml:"visible,omitempty"`
	Annotations []YAMLAnnotation `yaml:"annotations,omitempty"`
}

type YAMLCalculatedMember struct {
	Name        string           `yaml:"name"`
	Dimension   string           `yaml:"dimension"`
	Formula     string           `yaml:"formula"`
	Visible     *bool            `yaml:"visible,omitempty"`
	Annotations []YAMLAnnotation `yaml:"annotations,omitempty"`
}

type YAMLNamedSet struct {
	Name        string           `yaml:"name"`
	Formula     string           `yaml:"formula"`
	Visible     *bool            `yaml:"visible,omitempty"`
	Annotations []YAMLAnnotation `yaml:"annotations,omitempty"`
}

// LoadSchemaFromYAML reads a schema definition file.
func LoadSchemaFromYAML(filename string) (*schema.Schema, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return ParseSchemaYAML(data)
}

// ParseSchemaYAML decodes a schema definition. Unknown keys are rejected.
func ParseSchemaYAML(data []byte) (*schema.Schema, error) {
	var sf SchemaFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}
	return sf.Build()
}

// Build assembles the schema model through the builder API.
func (sf *SchemaFile) Build() (*schema.Schema, error) {
	s := schema.NewSchema(sf.Name)
	addAnnotations(&s.Annotated, sf.Annotations)

	for i, yc := range sf.Cubes {
		cube, err := yc.Build()
		if err != nil {
			return nil, fmt.Errorf("cube %d (%s): %w", i, yc.Name, err)
		}
		s.AddCube(cube)
	}
	return s, nil
}

// Build assembles one cube.
func (yc *YAMLCube) Build() (*schema.Cube, error) {
	source, err := yc.Source.build()
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	cube := schema.NewCube(yc.Name, source)
	addAnnotations(&cube.Annotated, yc.Annotations)

	for _, yd := range yc.Dimensions {
		dimension, err := yd.build()
		if err != nil {
			return nil, fmt.Errorf("dimension %s: %w", yd.Name, err)
		}
		cube.AddDimension(dimension)
	}

	for _, yu := range yc.DimensionUsages {
		usage := schema.NewDimensionUsage(yu.Name, yu.Source, yu.ForeignKey)
		addAnnotations(&usage.Annotated, yu.Annotations)
		cube.AddDimensionUsage(usage)
	}

	for _, ym := range yc.Measures {
		agg, err := ym.aggregator()
		if err != nil {
			return nil, fmt.Errorf("measure %s: %w", ym.Name, err)
		}
		measure := schema.NewMeasure(ym.Name, ym.Column, agg, boolOr(ym.Visible, true))
		addAnnotations(&measure.Annotated, ym.Annotations)
		cube.AddMeasure(measure)
	}

	for _, ycm := range yc.CalculatedMembers {
		member := schema.NewCalculatedMember(ycm.Name, ycm.Dimension, ycm.Formula, boolOr(ycm.Visible, true))
		addAnnotations(&member.Annotated, ycm.Annotations)
		cube.AddCalculatedMember(member)
	}

	for _, yn := range yc.NamedSets {
		set := schema.NewNamedSet(yn.Name, yn.Formula, boolOr(yn.Visible, true))
		addAnnotations(&set.Annotated, yn.Annotations)
		cube.AddNamedSet(set)
	}

	return cube, nil
}

func (ys *YAMLSource) build() (*schema.Source, error) {
	var source *schema.Source
	switch {
	case ys.Table != "" && ys.View != nil:
		return nil, fmt.Errorf("both table and view given")
	case ys.Table != "":
		source = schema.NewTable(ys.Table)
		if ys.Schema != "" {
			source.WithSchema(ys.Schema)
		}
	case ys.View != nil:
		if ys.Schema != "" {
			return nil, fmt.Errorf("schema only applies to tables")
		}
		source = schema.NewView(ys.View.Alias, ys.View.Formula)
	default:
		return nil, fmt.Errorf("either table or view is required")
	}

	addAnnotations(&source.Annotated, ys.Annotations)
	return source, nil
}

func (yd *YAMLDimension) build() (*schema.Dimension, error) {
	dimension := schema.NewDimension(yd.Name)
	addAnnotations(&dimension.Annotated, yd.Annotations)

	for i, yh := range yd.Hierarchies {
		hierarchy := schema.NewHierarchy(boolOr(yh.HasAll, true))
		if yh.Name != "" {
			hierarchy.WithName(yh.Name)
		}
		if yh.Source != nil {
			source, err := yh.Source.build()
			if err != nil {
				return nil, fmt.Errorf("hierarchy %d source: %w", i, err)
			}
			hierarchy.WithSource(source)
		}
		addAnnotations(&hierarchy.Annotated, yh.Annotations)

		for _, yl := range yh.Levels {
			hierarchy.AddLevel(yl.build())
		}
		dimension.AddHierarchy(hierarchy)
	}
	return dimension, nil
}

func (yl *YAMLLevel) build() *schema.Level {
	level := schema.NewLevel(yl.Name, yl.Column, yl.UniqueMembers)
	if yl.NameColumn != "" {
		level.WithNameColumn(yl.NameColumn)
	}
	if yl.LevelType != "" {
		level.WithLevelType(yl.LevelType)
	}
	if yl.Type != "" {
		level.WithType(yl.Type)
	}
	addAnnotations(&level.Annotated, yl.Annotations)

	for _, yp := range yl.Properties {
		property := schema.NewProperty(yp.Name, yp.Column)
		addAnnotations(&property.Annotated, yp.Annotations)
		level.AddProperty(property)
	}
	return level
}

func (ym *YAMLMeasure) aggregator() (schema.Aggregator, error) {
	kind, ok := schema.ParseAggregatorKind(ym.Aggregator)
	if !ok {
		return schema.Aggregator{}, fmt.Errorf("unknown aggregator %q", ym.Aggregator)
	}

	switch kind {
	case schema.MedianKind:
		db, ok := schema.ParseDatabase(ym.Database)
		if !ok {
			return schema.Aggregator{}, fmt.Errorf("median needs database postgres or monetdb, got %q", ym.Database)
		}
		if ym.Formula == "" {
			return schema.Aggregator{}, fmt.Errorf("median needs a formula")
		}
		return schema.Median(db, ym.Formula), nil
	case schema.CustomKind:
		if ym.Formula == "" {
			return schema.Aggregator{}, fmt.Errorf("custom aggregator needs a formula")
		}
		return schema.CustomAggregator(ym.Formula), nil
	}

	if ym.Formula != "" || ym.Database != "" {
		return schema.Aggregator{}, fmt.Errorf("aggregator %s takes no formula or database", kind)
	}
	return schema.Aggregator{Kind: kind}, nil
}

func addAnnotations(a *schema.Annotated, annotations []YAMLAnnotation) {
	for _, ya := range annotations {
		a.AddAnnotation(ya.Name, ya.Value)
	}
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

// MarshalCubeYAML encodes a cube definition the way schema files spell it.
func MarshalCubeYAML(cube YAMLCube) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(SchemaFile{Name: cube.Name, Cubes: []YAMLCube{cube}}); err != nil {
		return nil, fmt.Errorf("marshalling YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshalling YAML: %w", err)
	}
	return buf.Bytes(), nil
}
