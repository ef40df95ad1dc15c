package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/hanko-field/cartview/internal/di"
	"github.com/hanko-field/cartview/internal/platform/requestctx"
)

func newShipmentsCmd() *cobra.Command {
	var (
		flags storeFlags
		lang  string
	)

	cmd := &cobra.Command{
		Use:   "shipments <cartID>",
		Short: "Print the shipment view models of a cart",
		Long:  "Assemble the shipment view models of one cart and print them as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := flags.load(ctx)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			reg, err := di.OpenRegistry(ctx, cfg)
			if err != nil {
				return fmt.Errorf("open repositories: %w", err)
			}
			container, err := di.NewContainer(ctx, cfg, reg, zap.NewNop())
			if err != nil {
				_ = reg.Close(ctx)
				return fmt.Errorf("build container: %w", err)
			}
			defer func() {
				_ = container.Close(ctx)
			}()

			if raw := strings.TrimSpace(lang); raw != "" {
				tag, err := language.Parse(raw)
				if err != nil {
					return fmt.Errorf("invalid --lang %q: %w", raw, err)
				}
				ctx = requestctx.WithLanguage(ctx, requestctx.LanguagePreference{
					Preferred: []language.Tag{tag},
					Current:   container.Services.Languages.Match(tag),
				})
			}

			shipments, err := container.Services.Shipments.GetShipments(ctx, args[0])
			if err != nil {
				return fmt.Errorf("assemble shipments for %s: %w", args[0], err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(shipments)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Language to render content and filter shipping methods in")
	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Path to a .env file with CARTVIEW_* overrides")
	cmd.Flags().StringVar(&flags.fixtures, "fixtures", "", "Read carts from a YAML fixture file")
	cmd.Flags().StringVar(&flags.markets, "markets", "", "Path to the market registry YAML")
	return cmd
}
