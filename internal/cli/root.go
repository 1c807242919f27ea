// Package cli wires the fairlane command tree. The binary is a thin shell:
// commands parse flags, load configuration, and hand off to the daemon and
// app packages.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fairlane",
	Short: "Marketplace payments ledger",
	Long: `Fairlane is a payments ledger for a jobs marketplace: clients pay
contractors for completed jobs under contracts, with atomic settlement,
capped deposits, and admin earnings reports.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
