package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"platefix/internal/config"
	"platefix/internal/ingest"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		outPath string
		records int
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic detections with paired misreads to a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target, err := config.ExpandPath(strings.TrimSpace(outPath))
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			opts := ingest.GenerateOptions{
				Records:    cfg.Generator.Records,
				Seed:       cfg.Generator.Seed,
				ReadingGap: time.Duration(cfg.Generator.ReadingGapSeconds) * time.Second,
				PairGap:    time.Duration(cfg.Generator.PairGapSeconds) * time.Second,
			}
			if cmd.Flags().Changed("records") {
				opts.Records = records
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}

			pairs, err := ingest.GenerateFile(target, opts)
			if err != nil {
				return fmt.Errorf("generate detections: %w", err)
			}

			swaps := 0
			for _, p := range pairs {
				if p.Kind == ingest.ErrKindSwap {
					swaps++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s records (%s pairs: %d swaps, %d removals) to %s\n",
				humanize.Comma(int64(len(pairs)*2)), humanize.Comma(int64(len(pairs))), swaps, len(pairs)-swaps, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination CSV file")
	cmd.Flags().IntVarP(&records, "records", "n", 0, "Number of records to write (even; defaults to generator.records)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (defaults to generator.seed; 0 uses the clock)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
