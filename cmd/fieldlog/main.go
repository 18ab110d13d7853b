// Command fieldlog runs the field-service log: the JSON API server and its
// maintenance commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vbonduro/fieldlog/internal/config"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "fieldlog",
	Short: "Municipal field-service log",
	Long: `fieldlog records completed public-works activities against configurable
service categories and produces dashboards and filtered reports.

Configuration is read from the environment, optionally seeded from a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			return config.LoadDotEnv(envFile)
		}
		return config.LoadDotEnv()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file (default: .env if present)")
	rootCmd.AddCommand(serveCmd, initCmd, reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
