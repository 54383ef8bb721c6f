// Package cmd implements the emi-calculator command line.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

// NewRootCommand assembles the command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "emi-calculator",
		Short: "Loan EMI and amortization schedule calculator",
		Long: `emi-calculator derives the fixed monthly installment (EMI) for a loan and
its month-by-month and year-by-year amortization schedule.

It can print results directly or serve them over a JSON HTTP API.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(newCalcCommand())
	root.AddCommand(newServeCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
