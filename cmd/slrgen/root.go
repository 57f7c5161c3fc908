package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "slrgen",
	Short: "Generate a portable SLR(1) parsing table from a grammar definition",
	Long: `slrgen compiles a context-free grammar definition into an SLR(1)
parsing table. The table is portable JSON a parsing driver can consume;
a report describing every automaton state and every conflict is written
alongside it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
