package main

import (
	"context"

	"github.com/spf13/cobra"

	"platefix/internal/config"
	"platefix/internal/report"
	"platefix/internal/store"
)

func newCorrectionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "corrections",
		Short: "List stored corrections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				callCtx, cancel := context.WithTimeout(cmd.Context(), cfg.StoreTimeout())
				defer cancel()
				corrections, err := st.Corrections(callCtx)
				if err != nil {
					return err
				}
				printTable(cmd.OutOrStdout(), report.Corrections(corrections), "No corrections stored")
				return nil
			})
		},
	}
}

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show stored corrections grouped by type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				callCtx, cancel := context.WithTimeout(cmd.Context(), cfg.StoreTimeout())
				defer cancel()
				summary, err := st.Summary(callCtx)
				if err != nil {
					return err
				}
				printTable(cmd.OutOrStdout(), report.Summary(summary), "No corrections stored")
				return nil
			})
		},
	}
}
