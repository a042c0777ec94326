// Command veriportal evaluates business and learner documents against the scoring engine
// without a Zeebe broker.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is injected at build time.
var Version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "veriportal",
		Short:         "PDPL compliance scoring and recommendation engine",
		Long:          "Score Vietnamese businesses and learners against PDPL 2025, list their risks and produce culturally adapted recommendations.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: configs/config.yaml lookup)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug/info/warn/error)")

	cmd.AddCommand(newEvaluateCmd(opts))
	cmd.AddCommand(newTablesCmd())
	cmd.AddCommand(newRegistryCmd())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
