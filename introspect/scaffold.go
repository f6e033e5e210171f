package introspect

import (
	"strings"

	"github.com/ridoystarlord/olapschema/loader"
	"github.com/ridoystarlord/olapschema/schema"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var numericTypes = map[string]bool{
	"smallint":         true,
	"integer":          true,
	"bigint":           true,
	"numeric":          true,
	"decimal":          true,
	"real":             true,
	"double precision": true,
	"money":            true,
}

// ScaffoldCube derives a starting cube definition from a fact table:
// foreign keys and *_id columns become dimension usages, other numeric
// columns become sum measures and the remaining columns one-level
// dimensions. Primary keys that are not foreign keys are skipped.
func ScaffoldCube(table *FactTable) loader.YAMLCube {
	cube := loader.YAMLCube{
		Name:   table.Name,
		Source: loader.YAMLSource{Table: table.Name},
	}
	if table.Schema != "" && table.Schema != "public" {
		cube.Source.Schema = table.Schema
	}

	fks := map[string]ExistingForeignKey{}
	for _, fk := range table.ForeignKeys {
		fks[fk.ColumnName] = fk
	}

	for _, col := range table.Columns {
		fk, isFK := fks[col.ColumnName]

		switch {
		case isFK:
			name := displayName(fk.ReferencesTable)
			cube.DimensionUsages = append(cube.DimensionUsages, loader.YAMLDimensionUsage{
				Name:       name,
				Source:     name,
				ForeignKey: col.ColumnName,
			})

		case col.IsPrimaryKey:
			continue

		case strings.HasSuffix(col.ColumnName, "_id"):
			name := displayName(strings.TrimSuffix(col.ColumnName, "_id"))
			cube.DimensionUsages = append(cube.DimensionUsages, loader.YAMLDimensionUsage{
				Name:       name,
				Source:     name,
				ForeignKey: col.ColumnName,
			})

		case numericTypes[strings.ToLower(col.DataType)]:
			cube.Measures = append(cube.Measures, loader.YAMLMeasure{
				Name:       col.ColumnName,
				Column:     col.ColumnName,
				Aggregator: string(schema.SumKind),
			})

		default:
			name := displayName(col.ColumnName)
			cube.Dimensions = append(cube.Dimensions, loader.YAMLDimension{
				Name: name,
				Hierarchies: []loader.YAMLHierarchy{{
					Levels: []loader.YAMLLevel{{Name: name, Column: col.ColumnName}},
				}},
			})
		}
	}

	return cube
}

// displayName turns a snake_case identifier into a title-cased label.
func displayName(identifier string) string {
	words := strings.ReplaceAll(identifier, "_", " ")
	return cases.Title(language.English).String(words)
}
