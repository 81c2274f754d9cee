package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"platefix/internal/config"
	"platefix/internal/pipeline"
	"platefix/internal/report"
	"platefix/internal/store"
)

type detectionFlags struct {
	windowMinutes int
	threshold     float64
}

func (f *detectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.windowMinutes, "window", "w", 0, "Time window in minutes (defaults to detection.time_window_minutes)")
	cmd.Flags().Float64VarP(&f.threshold, "threshold", "t", 0, "Similarity threshold 0-100 (defaults to detection.similarity_threshold)")
}

// runner builds a pipeline runner from config with any flag overrides applied.
func (f *detectionFlags) runner(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, st *store.Store) (*pipeline.Runner, error) {
	logger, err := ctx.logger(cmd)
	if err != nil {
		return nil, err
	}
	opts := pipeline.OptionsFromConfig(cfg, logger)
	if cmd.Flags().Changed("window") {
		opts.Settings.Window = time.Duration(f.windowMinutes) * time.Minute
	}
	if cmd.Flags().Changed("threshold") {
		opts.Settings.Threshold = f.threshold
	}
	return pipeline.New(st, opts)
}

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var flags detectionFlags

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "List likely duplicate reads without storing corrections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				runner, err := flags.runner(cmd, ctx, cfg, st)
				if err != nil {
					return err
				}
				result, err := runner.Detect(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				printTable(out, report.Matches(result.Matches), "No matches found")
				fmt.Fprintln(out)
				printKeyValues(out, "Detection", report.RunLines(result, false))
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags detectionFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Detect duplicate reads and replace the stored corrections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				runner, err := flags.runner(cmd, ctx, cfg, st)
				if err != nil {
					return err
				}
				result, err := runner.Run(cmd.Context(), st)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				printTable(out, report.Matches(result.Matches), "No matches found")
				fmt.Fprintln(out)
				printTable(out, report.Summary(report.SummarizeCorrections(result.Corrections)), "No corrections stored")
				fmt.Fprintln(out)
				printKeyValues(out, "Run", report.RunLines(result, true))
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}
