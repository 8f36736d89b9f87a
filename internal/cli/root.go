package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/codelancer/api/internal/engine"
	"github.com/spf13/cobra"
)

// Engines shared by the local commands
var (
	generator = engine.NewGenerator()
	corrector = engine.NewCorrector()
)

var rootCmd = &cobra.Command{
	Use:   "codelancer",
	Short: "CODELANCER CLI",
	Long: `CODELANCER - code analysis, generation and auto-correction

Works in two modes:
  codelancer server           Start the HTTP API
  codelancer generate/correct/analyze
                              Run an engine locally, without HTTP

Examples:
  codelancer generate "Create a function that validates an email"
  codelancer correct --file script.py --output fixed.py
  cat script.py | codelancer analyze`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(correctCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

// readSource reads path, or standard input until EOF when path is empty
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Paste your code (Ctrl-D to end):")
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	return string(data), nil
}

func writeOutput(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
