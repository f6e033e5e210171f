package validator

import (
	"fmt"

	"github.com/ridoystarlord/olapschema/schema"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Type     string `json:"type"`
	Cube     string `json:"cube,omitempty"`
	Element  string `json:"element,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

// SchemaValidator checks the structural conventions of a schema model.
// References between cubes and dimensions are left to the consuming engine.
type SchemaValidator struct{}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{}
}

// ValidateSchema lints a complete schema. It never modifies the model.
func (v *SchemaValidator) ValidateSchema(s *schema.Schema) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}

	if s.Name == "" {
		result.addError("schema_name", "", "", "schema name cannot be empty")
	}

	for _, dimension := range s.Dimensions {
		v.validateDimension("", dimension, result)
	}

	for _, cube := range s.Cubes {
		v.validateCube(cube, result)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func (v *SchemaValidator) validateCube(cube *schema.Cube, result *ValidationResult) {
	if cube.Name == "" {
		result.addError("cube_name", "", "", "cube name cannot be empty")
	}

	if cube.Source == nil {
		result.addError("cube_source", cube.Name, "", "cube has no source")
	} else {
		v.validateSource(cube.Name, "source", cube.Source, result)
	}

	for _, dimension := range cube.Dimensions {
		v.validateDimension(cube.Name, dimension, result)
	}

	for _, usage := range cube.DimensionUsages {
		element := "usage " + usage.Name
		if usage.Name == "" || usage.Source == "" || usage.ForeignKey == "" {
			result.addError("dimension_usage", cube.Name, element, "dimension usage needs name, source and foreign key")
		}
	}

	if len(cube.Measures) == 0 {
		result.addInfo("no_measures", cube.Name, "", "cube defines no measures")
	}

	for _, measure := range cube.Measures {
		v.validateMeasure(cube.Name, measure, result)
	}

	for _, member := range cube.CalculatedMembers {
		if member.Name == "" || member.Formula == "" {
			result.addError("calculated_member", cube.Name, "member "+member.Name, "calculated member needs a name and a formula")
		}
	}

	for _, set := range cube.NamedSets {
		if set.Name == "" || set.Formula == "" {
			result.addError("named_set", cube.Name, "set "+set.Name, "named set needs a name and a formula")
		}
	}
}

func (v *SchemaValidator) validateSource(cube, element string, source *schema.Source, result *ValidationResult) {
	switch source.Kind {
	case schema.TableSource:
		if source.Name == "" {
			result.addError("table_name", cube, element, "table name cannot be empty")
		}
	case schema.ViewSource:
		if source.Alias == "" || source.Formula == "" {
			result.addError("view", cube, element, "view needs an alias and a formula")
		}
	default:
		result.addError("source_kind", cube, element, fmt.Sprintf("unsupported source kind %q", source.Kind))
	}
}

func (v *SchemaValidator) validateDimension(cube string, dimension *schema.Dimension, result *ValidationResult) {
	element := "dimension " + dimension.Name
	if dimension.Name == "" {
		result.addError("dimension_name", cube, element, "dimension name cannot be empty")
	}

	if len(dimension.Hierarchies) == 0 {
		result.addWarning("no_hierarchies", cube, element, "dimension has no hierarchies")
	}

	unnamed := 0
	for i, hierarchy := range dimension.Hierarchies {
		hElement := fmt.Sprintf("%s hierarchy %d", element, i)

		if hierarchy.Name == nil || *hierarchy.Name == "" {
			unnamed++
			if i > 0 {
				result.addWarning("hierarchy_name", cube, hElement, "only the first (default) hierarchy may omit its name")
			}
		}

		if hierarchy.Source != nil {
			v.validateSource(cube, hElement+" source", hierarchy.Source, result)
		}

		if len(hierarchy.Levels) == 0 {
			result.addWarning("no_levels", cube, hElement, "hierarchy has no levels")
		}

		for _, level := range hierarchy.Levels {
			lElement := hElement + " level " + level.Name
			if level.Name == "" {
				result.addError("level_name", cube, lElement, "level name cannot be empty")
			}
			if level.Column == "" {
				result.addError("level_column", cube, lElement, "level column cannot be empty")
			}
			for _, property := range level.Properties {
				if property.Name == "" || property.Column == "" {
					result.addError("property", cube, lElement, "property needs a name and a column")
				}
			}
		}
	}

	if unnamed > 1 {
		result.addWarning("default_hierarchy", cube, element, fmt.Sprintf("%d hierarchies have no name", unnamed))
	}
}

func (v *SchemaValidator) validateMeasure(cube string, measure *schema.Measure, result *ValidationResult) {
	element := "measure " + measure.Name
	if measure.Name == "" {
		result.addError("measure_name", cube, element, "measure name cannot be empty")
	}
	if measure.Column == "" {
		result.addError("measure_column", cube, element, "measure column cannot be empty")
	}

	agg := measure.Aggregator
	if _, ok := schema.ParseAggregatorKind(string(agg.Kind)); !ok {
		result.addError("aggregator", cube, element, fmt.Sprintf("unsupported aggregator %q", agg.Kind))
		return
	}
	if agg.HasFormula() && agg.Formula == "" {
		result.addError("aggregator_formula", cube, element, fmt.Sprintf("%s aggregator needs a formula", agg.Kind))
	}
	if agg.Kind == schema.MedianKind {
		if _, ok := schema.ParseDatabase(string(agg.Database)); !ok {
			result.addError("aggregator_database", cube, element, fmt.Sprintf("unsupported database %q", agg.Database))
		}
	}
}

func (r *ValidationResult) addError(typ, cube, element, message string) {
	r.Errors = append(r.Errors, ValidationError{Type: typ, Cube: cube, Element: element, Message: message, Severity: "error"})
}

func (r *ValidationResult) addWarning(typ, cube, element, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Type: typ, Cube: cube, Element: element, Message: message, Severity: "warning"})
}

func (r *ValidationResult) addInfo(typ, cube, element, message string) {
	r.Info = append(r.Info, ValidationError{Type: typ, Cube: cube, Element: element, Message: message, Severity: "info"})
}
