package schema

// Schema is the root of a cube schema document.
type Schema struct {
	Name  string
	Cubes []*Cube

	// Dimensions holds schema-level shared dimensions. No builder operation
	// appends to it.
	Dimensions []*Dimension
	Annotated
}

type Cube struct {
	Name              string
	Source            *Source
	Dimensions        []*Dimension
	DimensionUsages   []*DimensionUsage
	Measures          []*Measure
	CalculatedMembers []*CalculatedMember
	NamedSets         []*NamedSet
	Annotated
}

type Dimension struct {
	Name        string
	Hierarchies []*Hierarchy
	Annotated
}

// Hierarchy is a drill-down path within a dimension. The default hierarchy
// of a dimension may leave Name unset; every following one should carry a
// name, though this is not enforced.
type Hierarchy struct {
	Name   *string
	Source *Source // overrides the cube source when set
	HasAll bool
	Levels []*Level
	Annotated
}

type Level struct {
	Name          string
	Column        string
	NameColumn    *string
	LevelType     *string
	Type          *string
	UniqueMembers bool
	Properties    []*Property
	Annotated
}

type Property struct {
	Name   string
	Column string
	Annotated
}

// DimensionUsage links a cube to a dimension defined elsewhere. Source names
// that dimension, not a table or view.
type DimensionUsage struct {
	Name       string
	Source     string
	ForeignKey string
	Annotated
}

type Measure struct {
	Name       string
	Column     string
	Aggregator Aggregator
	Visible    bool
	Annotated
}

type CalculatedMember struct {
	Name      string
	Dimension string
	Formula   string
	Visible   bool
	Annotated
}

type NamedSet struct {
	Name    string
	Formula string
	Visible bool
	Annotated
}

// Annotation is a free-form name/value pair.
type Annotation struct {
	Name  string
	Value string
}

// Annotated is the ordered annotation store embedded in every entity that
// carries annotations. Duplicate names are kept.
type Annotated struct {
	Annotations []Annotation
}

// AddAnnotation appends a name/value pair.
func (a *Annotated) AddAnnotation(name, value string) {
	a.Annotations = append(a.Annotations, Annotation{Name: name, Value: value})
}

// HasAnnotations reports whether at least one annotation was added.
func (a *Annotated) HasAnnotations() bool {
	return len(a.Annotations) > 0
}
