package main

import (
	"log/slog"

	"github.com/oerlikon/progressbar/internal/logger"
	"github.com/spf13/cobra"
)

type app struct {
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	var verbose bool
	a := &app{log: slog.Default()}

	root := &cobra.Command{
		Use:          "pbdemo",
		Short:        "Show terminal progress bars for counting and copying work.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.log = logger.NewWithWriter(cmd.ErrOrStderr(), verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newCountCmd(a), newCopyCmd(a))
	return root
}
