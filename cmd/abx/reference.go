package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var referenceCmd = &cobra.Command{
	Use:       "reference [dosing|microbiology|source]",
	Short:     "Print static protocol reference tables",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"dosing", "microbiology", "source"},
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRenderer(output)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		switch args[0] {
		case "dosing":
			return r.dosing(w)
		case "microbiology":
			return r.microbiology(w)
		case "source":
			return r.source(w)
		default:
			return fmt.Errorf("unknown reference %q", args[0])
		}
	},
}
