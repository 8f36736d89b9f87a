package cli

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var (
	correctFile   string
	correctOutput string
	correctDiff   bool
)

var correctCmd = &cobra.Command{
	Use:   "correct",
	Short: "Auto-correct code",
	Long: `Fix common typos, missing colons and print statements without parentheses.

Reads the file given with --file, or standard input until end of input.

Examples:
  codelancer correct -f script.py
  codelancer correct -f script.py -o fixed.py
  codelancer correct --diff < script.py`,
	Args: cobra.NoArgs,
	RunE: runCorrect,
}

func init() {
	correctCmd.Flags().StringVarP(&correctFile, "file", "f", "", "Input file")
	correctCmd.Flags().StringVarP(&correctOutput, "output", "o", "", "Write corrected code to file")
	correctCmd.Flags().BoolVar(&correctDiff, "diff", false, "Print a unified diff of the changes")
}

func runCorrect(cmd *cobra.Command, args []string) error {
	code, err := readSource(cmd, correctFile)
	if err != nil {
		return err
	}

	result := corrector.Correct(code)
	out := cmd.OutOrStdout()

	if correctOutput != "" {
		if err := writeOutput(correctOutput, result.Corrected); err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ Corrected code saved to %s\n", correctOutput)
	} else {
		fmt.Fprintln(out, result.Corrected)
	}

	if correctDiff && result.Corrected != result.Original {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(result.Original),
			B:        difflib.SplitLines(result.Corrected),
			FromFile: "original",
			ToFile:   "corrected",
			Context:  3,
		})
		if err != nil {
			return fmt.Errorf("failed to build diff: %w", err)
		}
		fmt.Fprintf(out, "\n%s", diff)
	}

	if len(result.Corrections) > 0 {
		fmt.Fprintln(out, "\nCorrections:")
		for _, c := range result.Corrections {
			fmt.Fprintf(out, "  • %s\n", c)
		}
	}
	return nil
}
