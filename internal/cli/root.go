// Package cli wires orbit's sub-commands via cobra, following
// cmd/otj/cmd's root-command-plus-PersistentFlags pattern. Every command
// here is a thin collaborator: it gathers flags, loads manifests/config/
// catalog state from disk, and hands off to the planning core
// (internal/vhdl/plan) or a supporting package. The core itself takes no
// logger and does no I/O of its own.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hdlorbit/orbit/internal/vhdl/plan"
)

// Exit codes, per SPEC_FULL.md §6.1: 0 success, 101 for a core plan error,
// 1 for everything else.
const (
	ExitOK        = 0
	ExitPlanError = 101
	ExitOther     = 1
)

var (
	verbose bool
	log     = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "orbit",
	Short: "orbit manages VHDL IP dependencies and build planning",
	Long: `orbit resolves an IP's dependencies, selects a top entity and
testbench from its VHDL sources, and emits a build blueprint a downstream
driver consumes.

Examples:
  orbit plan --top fa --bench fa_tb
  orbit get https://github.com/hdlorbit/common.git --version 1.0.0
  orbit tree`,
	Version: "0.1.0",
}

// Execute runs the root command, exiting with the appropriate code on
// failure: 101 for a typed planning error, 1 for anything else.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var planErr *plan.Error
		fmt.Fprintln(os.Stderr, err)
		if errors.As(err, &planErr) {
			os.Exit(ExitPlanError)
		}
		os.Exit(ExitOther)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cobra.OnInitialize(func() {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.InfoLevel)
		}
	})
}
