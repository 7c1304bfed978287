package main

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/oerlikon/progressbar"
	"github.com/spf13/cobra"
)

type countOptions struct {
	title    string
	total    int
	delay    time.Duration
	mode     string
	mark     string
	columns  int
	reversed bool
	haltAt   int
	warnAt   int
}

func newCountCmd(a *app) *cobra.Command {
	o := countOptions{}
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count to a total, one step per tick.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCount(cmd.Context(), a, cmd.ErrOrStderr(), o)
		},
	}
	cmd.Flags().StringVar(&o.title, "title", "counting", "Bar title")
	cmd.Flags().IntVar(&o.total, "total", 100, "Number of steps")
	cmd.Flags().DurationVar(&o.delay, "delay", 20*time.Millisecond, "Time per step")
	cmd.Flags().StringVar(&o.mode, "mode", "eta", "Trailing statistic: eta, iter or bytes")
	cmd.Flags().StringVar(&o.mark, "mark", "=", "Bar fill glyph")
	cmd.Flags().IntVar(&o.columns, "columns", 0, "Terminal width override")
	cmd.Flags().BoolVar(&o.reversed, "reversed", false, "Deplete the bar instead of filling it")
	cmd.Flags().IntVar(&o.haltAt, "halt-at", 0, "Stop early at this step")
	cmd.Flags().IntVar(&o.warnAt, "warn-at", 0, "Turn the bar yellow from this step on")
	return cmd
}

func runCount(ctx context.Context, a *app, w io.Writer, o countOptions) error {
	mark, _ := utf8.DecodeRuneInString(o.mark)
	if mark == utf8.RuneError {
		return fmt.Errorf("invalid bar mark %q", o.mark)
	}
	switch o.mode {
	case "eta", "iter", "bytes":
	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}

	opts := []progressbar.Option{
		progressbar.OptionWriter(w),
		progressbar.OptionBarMark(mark),
		progressbar.OptionColumns(o.columns),
	}
	newBar := progressbar.New
	if o.reversed {
		newBar = progressbar.NewReversed
	}
	bar := newBar(o.title, o.total, opts...)
	switch o.mode {
	case "iter":
		bar.IterRateMode()
	case "bytes":
		bar.FileTransferMode()
	}
	a.log.Debug("counting", "total", o.total, "delay", o.delay, "mode", o.mode)

	for i := 1; i <= o.total; i++ {
		select {
		case <-ctx.Done():
			bar.Error()
			if err := bar.Halt(); err != nil {
				return err
			}
			return ctx.Err()
		case <-time.After(o.delay):
		}
		if o.haltAt > 0 && i > o.haltAt {
			a.log.Debug("halting early", "current", bar.Current())
			return bar.Halt()
		}
		if o.warnAt > 0 && i == o.warnAt {
			bar.Warning()
		}
		if err := bar.Increment(); err != nil {
			return err
		}
	}
	return bar.Finish()
}
