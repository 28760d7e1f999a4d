package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "plotwise",
	Short: "Plotwise - property decision engine for Indian real estate",
	Long: `Plotwise Unified CLI

Evaluates residential property proposals by combining location signals
(pricing, road access, air quality, hospitals, schools, flood exposure,
commute) into a single reconciled BUY / CAUTION / AVOID verdict.

Usage:
  go run ./cmd/plotwise [command]

Examples:
  go run ./cmd/plotwise api
  go run ./cmd/plotwise evaluate --address "Kankarbagh, Patna" --price 4500000
  go run ./cmd/plotwise scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
