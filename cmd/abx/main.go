package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Skufu/abxprotocol/internal/logging"
)

var (
	verbose bool
	output  string
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "abx",
	Short: "Inpatient antimicrobial protocol lookup",
	Long: `abx resolves empiric antimicrobial therapy from the inpatient protocol
decision table and prints the guideline verification alongside it.

For educational and demonstration use only. Not a substitute for
professional medical judgment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := newRenderer(output); err != nil {
			return err
		}
		level := "warn"
		if verbose {
			level = "debug"
		}
		l, err := logging.New(level)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")

	rootCmd.AddCommand(recommendCmd, optionsCmd, referenceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
