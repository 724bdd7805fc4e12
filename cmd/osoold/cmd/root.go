package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Mustafa6066/Osool-sub002/api"
	"github.com/Mustafa6066/Osool-sub002/config"
	"github.com/Mustafa6066/Osool-sub002/pkg/events"
	ammkeeper "github.com/Mustafa6066/Osool-sub002/x/amm/keeper"
	assetskeeper "github.com/Mustafa6066/Osool-sub002/x/assets/keeper"
	guardkeeper "github.com/Mustafa6066/Osool-sub002/x/guard/keeper"
	settlementkeeper "github.com/Mustafa6066/Osool-sub002/x/settlement/keeper"
)

// NewRootCmd builds the osoold command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "osoold",
		Short: "Pooled-liquidity exchange engine for fractional real-estate tokens",
	}
	rootCmd.AddCommand(newStartCmd())
	return rootCmd
}

func configFlag(flags *pflag.FlagSet) {
	flags.String("config", "", "path to config file (defaults apply when empty)")
}

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the exchange engine and its API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger := log.NewLogger(os.Stderr)
			bus := events.NewBus()

			guard := guardkeeper.NewKeeper(cfg.AdminAddress, logger, bus)
			settlement := settlementkeeper.NewKeeper(guard, cfg.MaxSupplyCap, logger, bus)
			assets := assetskeeper.NewKeeper(guard, logger, bus)
			amm := ammkeeper.NewKeeper(cfg.Pool, guard, settlement, assets, assets, logger, bus)

			server := api.NewServer(&api.Config{
				Host:            cfg.API.Host,
				Port:            cfg.API.Port,
				CORSOrigins:     cfg.API.CORSOrigins,
				RateLimitRPS:    cfg.API.RateLimitRPS,
				ReadTimeout:     cfg.API.ReadTimeout,
				WriteTimeout:    cfg.API.WriteTimeout,
				ShutdownTimeout: cfg.API.ShutdownTimeout,
			}, amm, settlement, assets, logger)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("engine started", "admin", cfg.AdminAddress)
			return server.Start(ctx)
		},
	}
	configFlag(cmd.Flags())
	return cmd
}
