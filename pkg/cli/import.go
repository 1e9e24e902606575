package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nick-vanduijn/synthex/pkg/schema"
	"github.com/nick-vanduijn/synthex/pkg/schemaio"
)

var importCmd = &cobra.Command{
	Use:   "import <schema.json|yaml>",
	Short: "Load and validate a serialized schema",
	Long: `Import reads a schema file, validates its structure, and prints a
summary. A schema that imports cleanly is ready to generate from.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		compiled, err := schemaio.ImportFile(args[0], data)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "schema:  %s\n", compiled.Name)
		if compiled.Version != "" {
			fmt.Fprintf(out, "version: %s\n", compiled.Version)
		}
		fmt.Fprintf(out, "fields:  %d\n\n", countFields(compiled.Root))
		fmt.Fprintln(out, schema.Describe(compiled))
		return nil
	},
}

func countFields(f *schema.Field) int {
	if f == nil {
		return 0
	}
	n := 0
	for _, p := range f.Properties {
		n += 1 + countFields(p.Field)
	}
	n += countFields(f.Items)
	n += countFields(f.Inner)
	for _, v := range f.UnionTypes {
		n += countFields(v)
	}
	for _, v := range f.IntersectionTypes {
		n += countFields(v)
	}
	return n
}

func init() {
	rootCmd.AddCommand(importCmd)
}
