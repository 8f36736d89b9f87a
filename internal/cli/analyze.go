package cli

import (
	"fmt"

	"github.com/codelancer/api/internal/analysis"
	"github.com/spf13/cobra"
)

var analyzeFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze code",
	Long: `Print line statistics and known typos for a piece of code.

Reads the file given with --file, or standard input until end of input.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Input file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	code, err := readSource(cmd, analyzeFile)
	if err != nil {
		return err
	}

	summary := analysis.Summarize(code, corrector.Fixes())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Code analysis:")
	fmt.Fprintf(out, "  Lines: %d\n", summary.Lines)
	fmt.Fprintf(out, "  Characters: %d\n", summary.Characters)
	fmt.Fprintf(out, "  Avg line length: %d\n", summary.AvgLineLength)

	if len(summary.Issues) == 0 {
		fmt.Fprintln(out, "\nNo obvious issues found.")
		return nil
	}

	fmt.Fprintln(out, "\nIssues found:")
	for _, issue := range summary.Issues {
		fmt.Fprintf(out, "  • %s\n", issue)
	}
	return nil
}
