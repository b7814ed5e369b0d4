package main

import (
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/tagdemo/storefront/internal/pkg/config"
	"github.com/tagdemo/storefront/pkg/logger"
)

// cliEnv is what every subcommand needs before it starts.
type cliEnv struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	rt := &cliEnv{}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Demo storefront instrumented with an analytics tag",
		Long: `storefront serves a small electronics shop over HTTP. Every shopper action
is shaped into a tag event and queued on the data layer, which can be drained
over HTTP or forwarded to Kafka or RabbitMQ.

Configuration is read from the environment (PORT, STORAGE_BACKEND, COLLECTOR, ...).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWith(cmd.Context(), envconfig.OsLookuper())
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.log = logger.Init(logger.ForEnv(cfg.Env, cfg.LogLevel))
			return nil
		},
	}

	root.AddCommand(newServeCmd(rt))
	root.AddCommand(newCatalogCmd(rt))
	return root
}
