package main

import (
	"context"
	"encoding/json"
	"fmt"

	"sectorgen/internal/app"
	"sectorgen/internal/shared/config"
	"sectorgen/internal/shared/logger"

	"github.com/spf13/cobra"
)

// openApp loads the environment configuration and connects to the stores.
func openApp(ctx context.Context) (*app.App, error) {
	if err := config.Init(); err != nil {
		return nil, err
	}
	logger.Init()
	return app.Open(ctx)
}

func newBootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Generate and persist the shared universe if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.UniverseService.EnsureSharedUniverse(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, u)
		},
	}
}

func newSinglePlayerCmd() *cobra.Command {
	var playerID int

	cmd := &cobra.Command{
		Use:   "single-player",
		Short: "Generate and persist a private universe for a player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID <= 0 {
				return fmt.Errorf("--player must be a positive player id")
			}

			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.UniverseService.CreateSinglePlayerUniverse(ctx, playerID)
			if err != nil {
				return err
			}
			return printJSON(cmd, u)
		},
	}

	cmd.Flags().IntVar(&playerID, "player", 0, "owning player id")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
