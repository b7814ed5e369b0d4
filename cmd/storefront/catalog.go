package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagdemo/storefront/internal/core/service"
	"github.com/tagdemo/storefront/internal/infrastructure/storage"
)

func newCatalogCmd(rt *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Maintain the product catalog in the configured storage",
	}

	var format string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog to stdout as JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd.Context(), rt, func(ctx context.Context, catalog *service.CatalogService) error {
				var (
					body []byte
					err  error
				)
				switch format {
				case "json":
					body, err = catalog.ExportJSON(ctx)
				case "csv":
					body, err = catalog.ExportCSV(ctx)
				default:
					return fmt.Errorf("format must be json or csv, got %q", format)
				}
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(body))
				return err
			})
		},
	}
	export.Flags().StringVarP(&format, "format", "f", "json", "output format: json or csv")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Replace the stored catalog with the bundled products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd.Context(), rt, func(ctx context.Context, catalog *service.CatalogService) error {
				if err := catalog.ResetToDefault(ctx); err != nil {
					return err
				}
				rt.log.Info().Int("products", len(service.DefaultProducts())).Msg("catalog reset")
				return nil
			})
		},
	}

	cmd.AddCommand(export, reset)
	return cmd
}

// withCatalog opens the configured backend without simulated latency and runs fn.
func withCatalog(ctx context.Context, rt *cliEnv, fn func(context.Context, *service.CatalogService) error) error {
	b, err := openBackend(ctx, rt.cfg, rt.log)
	if err != nil {
		return err
	}
	defer b.Close(context.Background())

	catalog, err := openCatalog(ctx, storage.NewLocal(b.kv, rt.cfg.KeyPrefix, rt.log), service.Latency{}, rt.log)
	if err != nil {
		return err
	}
	return fn(ctx, catalog)
}
