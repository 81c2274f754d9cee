package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"platefix/internal/config"
	"platefix/internal/ingest"
	"platefix/internal/logging"
	"platefix/internal/plate"
	"platefix/internal/report"
	"platefix/internal/store"
)

func newLoadCommand(ctx *commandContext) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Load detections from a DateTime,LicensePlate CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve csv path: %w", err)
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "ingest")

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				records, err := ingest.ReadCSVFile(path, ingest.Options{NormalizePlates: cfg.Ingest.NormalizePlates})
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}

				var cleared int64
				if replace {
					callCtx, cancel := context.WithTimeout(cmd.Context(), cfg.StoreTimeout())
					cleared, err = st.ClearDetections(callCtx)
					cancel()
					if err != nil {
						return err
					}
				}

				detections := make([]plate.Detection, 0, len(records))
				for _, rec := range records {
					detections = append(detections, rec.Detection())
				}
				callCtx, cancel := context.WithTimeout(cmd.Context(), cfg.StoreTimeout())
				defer cancel()
				inserted, err := st.InsertDetections(callCtx, detections)
				if err != nil {
					return err
				}

				logger.Info("detections loaded",
					logging.String(logging.FieldEventType, "detections_loaded"),
					logging.String("source", path),
					logging.Int("inserted", inserted),
					logging.Int64("cleared", cleared),
				)
				fmt.Fprintln(cmd.OutOrStdout(), report.LoadLine(inserted, cleared, path))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Remove existing detections and corrections before loading")
	return cmd
}
