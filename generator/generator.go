package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ridoystarlord/olapschema/schema"
)

// Options controls how a rendered document is serialized.
type Options struct {
	Indent          int  // spaces per nesting level, 0 for compact output
	OmitDeclaration bool // drop the leading <?xml ...?> declaration
}

// Generate renders a schema into its XML document with the default options.
func Generate(s *schema.Schema) (string, error) {
	return GenerateWithOptions(s, Options{})
}

// GenerateWithOptions renders a schema into its XML document. The model is
// only read, so repeated calls on an unchanged schema yield identical output.
func GenerateWithOptions(s *schema.Schema, opts Options) (string, error) {
	doc := etree.NewDocument()
	if !opts.OmitDeclaration {
		doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	}

	root := doc.CreateElement("Schema")
	root.CreateAttr("name", s.Name)

	renderAnnotations(root, s.Annotated)

	for _, dimension := range s.Dimensions {
		if err := renderDimension(root, dimension); err != nil {
			return "", fmt.Errorf("generate shared dimension %q: %w", dimension.Name, err)
		}
	}

	for _, cube := range s.Cubes {
		if err := renderCube(root, cube); err != nil {
			return "", fmt.Errorf("generate cube %q: %w", cube.Name, err)
		}
	}

	if opts.Indent > 0 {
		doc.Indent(opts.Indent)
	}

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serialize schema %q: %w", s.Name, err)
	}
	return out, nil
}

func renderCube(parent *etree.Element, c *schema.Cube) error {
	cube := parent.CreateElement("Cube")
	cube.CreateAttr("name", c.Name)

	renderAnnotations(cube, c.Annotated)

	if c.Source == nil {
		return fmt.Errorf("cube has no source")
	}
	if err := renderSource(cube, c.Source); err != nil {
		return err
	}

	for _, dimension := range c.Dimensions {
		if err := renderDimension(cube, dimension); err != nil {
			return fmt.Errorf("dimension %q: %w", dimension.Name, err)
		}
	}

	for _, usage := range c.DimensionUsages {
		renderDimensionUsage(cube, usage)
	}

	for _, measure := range c.Measures {
		if err := renderMeasure(cube, measure); err != nil {
			return fmt.Errorf("measure %q: %w", measure.Name, err)
		}
	}

	for _, member := range c.CalculatedMembers {
		renderCalculatedMember(cube, member)
	}

	for _, set := range c.NamedSets {
		renderNamedSet(cube, set)
	}

	return nil
}

func renderDimension(parent *etree.Element, d *schema.Dimension) error {
	dimension := parent.CreateElement("Dimension")
	dimension.CreateAttr("name", d.Name)

	renderAnnotations(dimension, d.Annotated)

	for i, hierarchy := range d.Hierarchies {
		if err := renderHierarchy(dimension, hierarchy); err != nil {
			return fmt.Errorf("hierarchy %d: %w", i, err)
		}
	}
	return nil
}

func renderHierarchy(parent *etree.Element, h *schema.Hierarchy) error {
	hierarchy := parent.CreateElement("Hierarchy")
	hierarchy.CreateAttr("hasAll", strconv.FormatBool(h.HasAll))
	if h.Name != nil {
		hierarchy.CreateAttr("name", *h.Name)
	}

	renderAnnotations(hierarchy, h.Annotated)

	if h.Source != nil {
		if err := renderSource(hierarchy, h.Source); err != nil {
			return err
		}
	}

	for _, level := range h.Levels {
		renderLevel(hierarchy, level)
	}
	return nil
}

func renderLevel(parent *etree.Element, l *schema.Level) {
	level := parent.CreateElement("Level")
	level.CreateAttr("name", l.Name)
	level.CreateAttr("column", l.Column)
	level.CreateAttr("uniqueMembers", strconv.FormatBool(l.UniqueMembers))
	if l.LevelType != nil {
		level.CreateAttr("levelType", *l.LevelType)
	}
	if l.NameColumn != nil {
		level.CreateAttr("nameColumn", *l.NameColumn)
	}

	renderAnnotations(level, l.Annotated)

	for _, p := range l.Properties {
		property := level.CreateElement("Property")
		property.CreateAttr("name", p.Name)
		property.CreateAttr("column", p.Column)
		renderAnnotations(property, p.Annotated)
	}
}

func renderDimensionUsage(parent *etree.Element, u *schema.DimensionUsage) {
	usage := parent.CreateElement("DimensionUsage")
	usage.CreateAttr("name", u.Name)
	usage.CreateAttr("source", u.Source)
	usage.CreateAttr("foreign_key", u.ForeignKey)

	renderAnnotations(usage, u.Annotated)
}

func renderCalculatedMember(parent *etree.Element, m *schema.CalculatedMember) {
	member := parent.CreateElement("CalculatedMember")
	member.CreateAttr("name", m.Name)
	member.CreateAttr("dimension", m.Dimension)
	member.CreateAttr("visible", strconv.FormatBool(m.Visible))

	// Formula comes before the annotations for calculated members.
	member.CreateElement("Formula").SetText(m.Formula)

	renderAnnotations(member, m.Annotated)
}

func renderNamedSet(parent *etree.Element, n *schema.NamedSet) {
	set := parent.CreateElement("NamedSet")
	set.CreateAttr("name", n.Name)
	set.CreateAttr("formula", n.Formula)
	set.CreateAttr("visible", strconv.FormatBool(n.Visible))

	renderAnnotations(set, n.Annotated)
}

// renderAnnotations emits nothing for an empty store.
func renderAnnotations(parent *etree.Element, a schema.Annotated) {
	if !a.HasAnnotations() {
		return
	}

	annotations := parent.CreateElement("Annotations")
	for _, annotation := range a.Annotations {
		el := annotations.CreateElement("Annotation")
		el.CreateAttr("name", annotation.Name)
		el.SetText(annotation.Value)
	}
}

// WriteSchemaFile saves a rendered document, creating parent directories as needed.
func WriteSchemaFile(path, document string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output folder: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(document), 0644); err != nil {
		return fmt.Errorf("writing schema file: %w", err)
	}
	return nil
}
