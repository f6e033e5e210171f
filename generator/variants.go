package generator

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ridoystarlord/olapschema/schema"
)

// AggregatorAttr returns the value of the aggregator attribute for a kind.
// Avg maps to an empty value and the formula-backed kinds to "None"; the
// consuming engine has always received these tokens.
func AggregatorAttr(kind schema.AggregatorKind) (string, error) {
	switch kind {
	case schema.SumKind:
		return "sum", nil
	case schema.CountKind:
		return "count", nil
	case schema.MinKind:
		return "min", nil
	case schema.MaxKind:
		return "max", nil
	case schema.AvgKind:
		return "", nil
	case schema.DistinctCountKind:
		return "distinct-count", nil
	case schema.MedianKind, schema.CustomKind:
		return "None", nil
	default:
		return "", fmt.Errorf("unsupported aggregator: %q", kind)
	}
}

// Dialect returns the dialect attribute of a median SQL expression.
func Dialect(db schema.Database) (string, error) {
	switch db {
	case schema.Postgres:
		return "postgres", nil
	case schema.MonetDB:
		return "monetdb", nil
	default:
		return "", fmt.Errorf("unsupported database: %q", db)
	}
}

func renderMeasure(parent *etree.Element, m *schema.Measure) error {
	agg, err := AggregatorAttr(m.Aggregator.Kind)
	if err != nil {
		return err
	}

	measure := parent.CreateElement("Measure")
	measure.CreateAttr("name", m.Name)
	measure.CreateAttr("column", m.Column)
	measure.CreateAttr("visible", strconv.FormatBool(m.Visible))
	measure.CreateAttr("aggregator", agg)

	switch m.Aggregator.Kind {
	case schema.MedianKind:
		dialect, err := Dialect(m.Aggregator.Database)
		if err != nil {
			return err
		}
		sql := measure.CreateElement("MeasureExpression").CreateElement("SQL")
		sql.CreateAttr("dialect", dialect)
		sql.SetText(m.Aggregator.Formula)

	case schema.CustomKind:
		sql := measure.CreateElement("MeasureExpression").CreateElement("SQL")
		sql.SetText(m.Aggregator.Formula)
	}

	renderAnnotations(measure, m.Annotated)
	return nil
}

func renderSource(parent *etree.Element, s *schema.Source) error {
	switch s.Kind {
	case schema.TableSource:
		table := parent.CreateElement("Table")
		table.CreateAttr("name", s.Name)
		if s.Schema != nil {
			table.CreateAttr("schema", *s.Schema)
		}
		renderAnnotations(table, s.Annotated)

	case schema.ViewSource:
		view := parent.CreateElement("View")
		view.CreateAttr("alias", s.Alias)
		view.CreateAttr("formula", s.Formula)
		renderAnnotations(view, s.Annotated)

	default:
		return fmt.Errorf("unsupported source kind: %q", s.Kind)
	}
	return nil
}
