// Command svmkit is a thin demonstration driver over the smo and gnb
// packages: it loads CSV datasets, runs one fit, and prints a summary. It
// does not persist models or serve predictions over a network — see
// SPEC_FULL.md's Non-goals.
package main

import (
	"github.com/spf13/cobra"

	"github.com/go-ml-lab/svmkit/internal/mlog"
)

var version = "dev"

// cli bundles the root command and flags shared across subcommands,
// following the same struct-plus-setupCommands shape baranylcn-dit's CLI
// uses.
type cli struct {
	verbose bool
	rootCmd *cobra.Command
}

func newCLI() *cli {
	c := &cli{}
	c.setupCommands()
	return c
}

func (c *cli) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:     "svmkit",
		Short:   "SMO-based SVM solver and Gaussian Naive Bayes, demonstrated over CSV datasets",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			mlog.Banner(version)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	c.rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Verbose flag; accepted by every command, none of which changes its output for it")

	c.rootCmd.AddCommand(c.newTrainCommand())
	c.rootCmd.AddCommand(c.newPredictCommand())
}

func (c *cli) run() error {
	return c.rootCmd.Execute()
}
