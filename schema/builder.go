package schema

// Constructors fix the required fields of each entity; children are only
// ever appended, in call order.

func NewSchema(name string) *Schema {
	return &Schema{Name: name}
}

func (s *Schema) AddCube(cube *Cube) {
	s.Cubes = append(s.Cubes, cube)
}

func NewCube(name string, source *Source) *Cube {
	return &Cube{Name: name, Source: source}
}

func (c *Cube) AddDimension(dimension *Dimension) {
	c.Dimensions = append(c.Dimensions, dimension)
}

func (c *Cube) AddDimensionUsage(usage *DimensionUsage) {
	c.DimensionUsages = append(c.DimensionUsages, usage)
}

func (c *Cube) AddMeasure(measure *Measure) {
	c.Measures = append(c.Measures, measure)
}

func (c *Cube) AddCalculatedMember(member *CalculatedMember) {
	c.CalculatedMembers = append(c.CalculatedMembers, member)
}

func (c *Cube) AddNamedSet(set *NamedSet) {
	c.NamedSets = append(c.NamedSets, set)
}

func NewDimension(name string) *Dimension {
	return &Dimension{Name: name}
}

// AddHierarchy appends a hierarchy. Any number of unnamed hierarchies is
// accepted.
func (d *Dimension) AddHierarchy(hierarchy *Hierarchy) {
	d.Hierarchies = append(d.Hierarchies, hierarchy)
}

func NewHierarchy(hasAll bool) *Hierarchy {
	return &Hierarchy{HasAll: hasAll}
}

func (h *Hierarchy) WithName(name string) *Hierarchy {
	h.Name = &name
	return h
}

func (h *Hierarchy) WithSource(source *Source) *Hierarchy {
	h.Source = source
	return h
}

func (h *Hierarchy) AddLevel(level *Level) {
	h.Levels = append(h.Levels, level)
}

func NewLevel(name, column string, uniqueMembers bool) *Level {
	return &Level{Name: name, Column: column, UniqueMembers: uniqueMembers}
}

func (l *Level) WithNameColumn(column string) *Level {
	l.NameColumn = &column
	return l
}

func (l *Level) WithLevelType(levelType string) *Level {
	l.LevelType = &levelType
	return l
}

func (l *Level) WithType(typ string) *Level {
	l.Type = &typ
	return l
}

func (l *Level) AddProperty(property *Property) {
	l.Properties = append(l.Properties, property)
}

func NewProperty(name, column string) *Property {
	return &Property{Name: name, Column: column}
}

func NewDimensionUsage(name, source, foreignKey string) *DimensionUsage {
	return &DimensionUsage{Name: name, Source: source, ForeignKey: foreignKey}
}

func NewMeasure(name, column string, aggregator Aggregator, visible bool) *Measure {
	return &Measure{Name: name, Column: column, Aggregator: aggregator, Visible: visible}
}

func NewCalculatedMember(name, dimension, formula string, visible bool) *CalculatedMember {
	return &CalculatedMember{Name: name, Dimension: dimension, Formula: formula, Visible: visible}
}

func NewNamedSet(name, formula string, visible bool) *NamedSet {
	return &NamedSet{Name: name, Formula: formula, Visible: visible}
}
