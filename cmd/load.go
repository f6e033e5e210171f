package cmd

import (
	"fmt"

	"github.com/ridoystarlord/olapschema/loader"
	"github.com/ridoystarlord/olapschema/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addSourceFlags registers the flags every schema-reading command shares.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "schema.yaml", "Schema YAML file to load")
	cmd.Flags().Bool("structs", false, "Load cubes from tagged Go structs instead of YAML")
	cmd.Flags().StringP("models", "m", "models", "Models directory to load structs from")
	cmd.Flags().String("name", "", "Schema name when loading from structs (default: models directory name)")
}

func loadSchema() (*schema.Schema, error) {
	if viper.GetBool("structs") {
		dir := viper.GetString("models")
		name := viper.GetString("name")
		if name == "" {
			name = dir
		}
		s, err := loader.LoadSchemaFromTags(name, dir)
		if err != nil {
			return nil, fmt.Errorf("loading models from structs: %w", err)
		}
		return s, nil
	}

	s, err := loader.LoadSchemaFromYAML(viper.GetString("file"))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", viper.GetString("file"), err)
	}
	return s, nil
}
