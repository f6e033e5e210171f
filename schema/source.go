package schema

type SourceKind string

const (
	TableSource SourceKind = "table"
	ViewSource  SourceKind = "view"
)

// Source is the table or view backing a cube or hierarchy. Name and Schema
// apply to tables, Alias and Formula to views.
type Source struct {
	Kind    SourceKind
	Name    string
	Schema  *string
	Alias   string
	Formula string
	Annotated
}

// NewTable returns a table source. Use WithSchema to qualify it.
func NewTable(name string) *Source {
	return &Source{Kind: TableSource, Name: name}
}

// NewView returns a view source defined by an SQL formula.
func NewView(alias, formula string) *Source {
	return &Source{Kind: ViewSource, Alias: alias, Formula: formula}
}

// WithSchema sets the database schema of a table source.
func (s *Source) WithSchema(schema string) *Source {
	s.Schema = &schema
	return s
}

// Label returns a short description used in diagnostics and documentation.
func (s *Source) Label() string {
	switch s.Kind {
	case TableSource:
		if s.Schema != nil {
			return *s.Schema + "." + s.Name
		}
		return s.Name
	case ViewSource:
		return s.Alias + " (view)"
	}
	return string(s.Kind)
}
