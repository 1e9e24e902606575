package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nick-vanduijn/synthex/pkg/schemaio"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <schema.json|yaml> <out.json|yaml>",
	Short: "Convert a serialized schema to another format",
	Long: `Export reads a schema file (JSON or YAML, detected by extension) and
writes it to the output file in the target format. The target format
comes from --format, or from the output file extension when omitted.
OpenAPI output must be requested explicitly with --format openapi.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inFile, outFile := args[0], args[1]

		data, err := os.ReadFile(inFile)
		if err != nil {
			return fmt.Errorf("read %s: %w", inFile, err)
		}
		compiled, err := schemaio.ImportFile(inFile, data)
		if err != nil {
			return err
		}

		target := schemaio.ParseFormat(exportFormat)
		if target == schemaio.FormatUnknown {
			target = schemaio.DetectFormat(outFile)
		}
		if target == schemaio.FormatUnknown {
			return fmt.Errorf("cannot determine output format for %s; use --format", outFile)
		}

		out, err := schemaio.Export(compiled, target)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outFile, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outFile, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %q to %s (%s)\n", compiled.Name, outFile, target)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: json, yaml, openapi (default: by extension)")
	rootCmd.AddCommand(exportCmd)
}
