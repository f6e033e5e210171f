package generator

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/olapschema/schema"
)

// GenerateMarkdown renders a human-readable catalogue of the schema.
func GenerateMarkdown(s *schema.Schema) string {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("# %s\n", s.Name))
	writeMarkdownAnnotations(&content, s.Annotations)

	for _, cube := range s.Cubes {
		content.WriteString(fmt.Sprintf("\n## Cube `%s`\n\n", cube.Name))
		if cube.Source != nil {
			content.WriteString(fmt.Sprintf("Source: `%s`\n", cube.Source.Label()))
		}
		writeMarkdownAnnotations(&content, cube.Annotations)

		if len(cube.Dimensions) > 0 || len(cube.DimensionUsages) > 0 {
			content.WriteString("\n### Dimensions\n\n")
		}
		for _, dimension := range cube.Dimensions {
			content.WriteString(fmt.Sprintf("- **%s**\n", dimension.Name))
			for _, hierarchy := range dimension.Hierarchies {
				name := "(default)"
				if hierarchy.Name != nil {
					name = *hierarchy.Name
				}
				line := fmt.Sprintf("  - hierarchy %s", name)
				if hierarchy.Source != nil {
					line += fmt.Sprintf(" from `%s`", hierarchy.Source.Label())
				}
				content.WriteString(line + "\n")
				for _, level := range hierarchy.Levels {
					content.WriteString(fmt.Sprintf("    - level %s (`%s`)\n", level.Name, level.Column))
				}
			}
		}
		for _, usage := range cube.DimensionUsages {
			content.WriteString(fmt.Sprintf("- **%s** → shared `%s` via `%s`\n", usage.Name, usage.Source, usage.ForeignKey))
		}

		if len(cube.Measures) > 0 {
			content.WriteString("\n### Measures\n\n")
			content.WriteString("| Name | Column | Aggregator | Visible |\n")
			content.WriteString("|------|--------|------------|---------|\n")
			for _, measure := range cube.Measures {
				content.WriteString(fmt.Sprintf("| %s | %s | %s | %t |\n",
					measure.Name, measure.Column, measure.Aggregator.Kind, measure.Visible))
			}
		}

		if len(cube.CalculatedMembers) > 0 {
			content.WriteString("\n### Calculated Members\n\n")
			for _, member := range cube.CalculatedMembers {
				content.WriteString(fmt.Sprintf("- **%s** [%s]: `%s`\n", member.Name, member.Dimension, member.Formula))
			}
		}

		if len(cube.NamedSets) > 0 {
			content.WriteString("\n### Named Sets\n\n")
			for _, set := range cube.NamedSets {
				content.WriteString(fmt.Sprintf("- **%s**: `%s`\n", set.Name, set.Formula))
			}
		}
	}

	return content.String()
}

func writeMarkdownAnnotations(content *strings.Builder, annotations []schema.Annotation) {
	if len(annotations) == 0 {
		return
	}
	content.WriteString("\n")
	for _, a := range annotations {
		content.WriteString(fmt.Sprintf("> %s: %s\n", a.Name, a.Value))
	}
}

// GenerateMermaid renders a class diagram linking cubes to their dimensions.
func GenerateMermaid(s *schema.Schema) string {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("# %s\n\n", s.Name))
	content.WriteString("```mermaid\nclassDiagram\n")

	for _, cube := range s.Cubes {
		cubeID := mermaidID(cube.Name)
		content.WriteString(fmt.Sprintf("    class %s {\n", cubeID))
		content.WriteString("        <<cube>>\n")
		for _, measure := range cube.Measures {
			content.WriteString(fmt.Sprintf("        +%s %s\n", measure.Aggregator.Kind, mermaidID(measure.Name)))
		}
		content.WriteString("    }\n")

		for _, dimension := range cube.Dimensions {
			dimID := cubeID + "_" + mermaidID(dimension.Name)
			content.WriteString(fmt.Sprintf("    class %s {\n", dimID))
			content.WriteString("        <<dimension>>\n")
			for _, hierarchy := range dimension.Hierarchies {
				for _, level := range hierarchy.Levels {
					content.WriteString(fmt.Sprintf("        +%s\n", mermaidID(level.Name)))
				}
			}
			content.WriteString("    }\n")
			content.WriteString(fmt.Sprintf("    %s --> %s\n", cubeID, dimID))
		}

		for _, usage := range cube.DimensionUsages {
			content.WriteString(fmt.Sprintf("    %s ..> %s : %s\n", cubeID, mermaidID(usage.Source), usage.ForeignKey))
		}
	}

	content.WriteString("```\n")
	return content.String()
}

// mermaidID reduces a name to the identifier characters Mermaid accepts.
func mermaidID(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
