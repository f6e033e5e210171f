package loader

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/ridoystarlord/olapschema/schema"
)

// TagLoader builds cubes from Go fact structs annotated with olap tags:
//
//	type Sale struct {
//		_         struct{} `olap:"cube;table:eastern_sales;schema:public"`
//		Dollars   float64  `olap:"measure;agg:sum;column:mea_dollars"`
//		ProdCode  string   `olap:"level;dimension:Product;name:Product Group;name_column:prod_desc;unique"`
//		TimeID    int      `olap:"usage;dimension:Time"`
//	}
type TagLoader struct {
	modelsDir string
}

// NewTagLoader creates a new tag loader
func NewTagLoader(modelsDir string) *TagLoader {
	return &TagLoader{
		modelsDir: modelsDir,
	}
}

// LoadSchemaFromTags loads every tagged fact struct under modelsDir into one schema.
func LoadSchemaFromTags(schemaName, modelsDir string) (*schema.Schema, error) {
	cubes, err := NewTagLoader(modelsDir).Load()
	if err != nil {
		return nil, err
	}

	sf := SchemaFile{Name: schemaName, Cubes: cubes}
	return sf.Build()
}

// Load returns one cube definition per tagged struct, in file and declaration order.
func (tl *TagLoader) Load() ([]YAMLCube, error) {
	if _, err := os.Stat(tl.modelsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("models directory '%s' does not exist. Run 'olapschema init --structs' first", tl.modelsDir)
	}

	var cubes []YAMLCube

	err := filepath.Walk(tl.modelsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		fileCubes, err := tl.parseGoFile(path)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		cubes = append(cubes, fileCubes...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load models: %w", err)
	}

	return cubes, nil
}

func (tl *TagLoader) parseGoFile(filePath string) ([]YAMLCube, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filePath, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go file: %w", err)
	}

	var cubes []YAMLCube
	var parseErr error

	ast.Inspect(node, func(n ast.Node) bool {
		if parseErr != nil {
			return false
		}
		if x, ok := n.(*ast.TypeSpec); ok {
			if structType, ok := x.Type.(*ast.StructType); ok {
				cube, err := tl.parseStruct(x.Name.Name, structType)
				if err != nil {
					parseErr = fmt.Errorf("struct %s: %w", x.Name.Name, err)
					return false
				}
				if cube != nil {
					cubes = append(cubes, *cube)
				}
			}
		}
		return true
	})

	return cubes, parseErr
}

// parseStruct returns nil for structs without any olap tag.
func (tl *TagLoader) parseStruct(structName string, structType *ast.StructType) (*YAMLCube, error) {
	cube := &YAMLCube{
		Name:   toSnakeCase(structName),
		Source: YAMLSource{Table: tableName(structName)},
	}

	tagged := false
	dimensionIndex := map[string]int{}

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			continue // embedded fields carry no columns
		}

		fieldName := field.Names[0].Name
		tag, ok := parseTag(field.Tag)
		if !ok {
			continue
		}

		if fieldName != "_" && !ast.IsExported(fieldName) {
			continue
		}

		column := tag.get("column", toSnakeCase(fieldName))

		switch tag.kind {
		case "cube":
			tagged = true
			cube.Name = tag.get("name", cube.Name)
			cube.Source.Table = tag.get("table", cube.Source.Table)
			cube.Source.Schema = tag.get("schema", "")

		case "measure":
			tagged = true
			visible := !tag.has("hidden")
			cube.Measures = append(cube.Measures, YAMLMeasure{
				Name:       tag.get("name", toSnakeCase(fieldName)),
				Column:     column,
				Aggregator: tag.get("agg", string(schema.SumKind)),
				Database:   tag.get("db", ""),
				Formula:    tag.get("formula", ""),
				Visible:    &visible,
			})

		case "level":
			tagged = true
			dimName := tag.get("dimension", fieldName)
			idx, seen := dimensionIndex[dimName]
			if !seen {
				idx = len(cube.Dimensions)
				dimensionIndex[dimName] = idx
				cube.Dimensions = append(cube.Dimensions, YAMLDimension{
					Name:        dimName,
					Hierarchies: []YAMLHierarchy{{}},
				})
			}
			hierarchy := &cube.Dimensions[idx].Hierarchies[0]
			hierarchy.Levels = append(hierarchy.Levels, YAMLLevel{
				Name:          tag.get("name", fieldName),
				Column:        column,
				NameColumn:    tag.get("name_column", ""),
				LevelType:     tag.get("level_type", ""),
				UniqueMembers: tag.has("unique"),
			})

		case "usage":
			tagged = true
			dimName := tag.get("dimension", fieldName)
			cube.DimensionUsages = append(cube.DimensionUsages, YAMLDimensionUsage{
				Name:       tag.get("name", dimName),
				Source:     dimName,
				ForeignKey: column,
			})

		default:
			return nil, fmt.Errorf("field %s: unknown olap tag kind %q", fieldName, tag.kind)
		}
	}

	if !tagged {
		return nil, nil
	}
	return cube, nil
}

// fieldTag is a parsed olap tag: a leading kind followed by flags and key:value pairs.
type fieldTag struct {
	kind   string
	values map[string]string
	flags  map[string]bool
}

func (ft *fieldTag) get(key, fallback string) string {
	if v, ok := ft.values[key]; ok {
		return v
	}
	return fallback
}

func (ft *fieldTag) has(flag string) bool {
	return ft.flags[flag]
}

// parseTag reports false for fields without an olap tag or tagged "-".
func parseTag(tag *ast.BasicLit) (*fieldTag, bool) {
	if tag == nil {
		return nil, false
	}

	tagValue := strings.Trim(tag.Value, "`")
	olapTag := reflect.StructTag(tagValue).Get("olap")
	if olapTag == "" || olapTag == "-" {
		return nil, false
	}

	parts := strings.Split(olapTag, ";")
	ft := &fieldTag{
		kind:   strings.TrimSpace(parts[0]),
		values: map[string]string{},
		flags:  map[string]bool{},
	}

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if key, value, ok := strings.Cut(part, ":"); ok {
			ft.values[strings.TrimSpace(key)] = strings.TrimSpace(value)
		} else {
			ft.flags[part] = true
		}
	}

	return ft, true
}

// tableName converts a struct name to its pluralised snake_case table name.
func tableName(structName string) string {
	name := toSnakeCase(structName)

	if strings.HasSuffix(name, "y") {
		name = strings.TrimSuffix(name, "y") + "ies"
	} else if !strings.HasSuffix(name, "s") {
		name += "s"
	}

	return name
}

// toSnakeCase converts PascalCase to snake_case
func toSnakeCase(s string) string {
	var result strings.Builder
	var prev rune

	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' && prev >= 'a' && prev <= 'z' {
			result.WriteByte('_')
		}
		result.WriteRune(r)
		prev = r
	}
	return strings.ToLower(result.String())
}
