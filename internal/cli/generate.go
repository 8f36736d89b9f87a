package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate <description>",
	Short: "Generate code from description",
	Long: `Generate a Python code template from a natural-language description.

The description picks the template (function, class, API or test) and the
name of the generated function.

Examples:
  codelancer generate "Calculate the area of a circle"
  codelancer generate "Build a REST endpoint for orders" -o api.py`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write output to file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	result, err := generator.Generate(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if generateOutput != "" {
		if err := writeOutput(generateOutput, result.GeneratedCode); err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ Generated code saved to %s\n", generateOutput)
		return nil
	}

	fmt.Fprintln(out, result.GeneratedCode)
	return nil
}
