package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanko-field/cartview/internal/di"
)

type marketOutput struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	DefaultCurrency string   `json:"defaultCurrency"`
	Currencies      []string `json:"currencies"`
	DefaultLanguage string   `json:"defaultLanguage,omitempty"`
	Languages       []string `json:"languages,omitempty"`
	Countries       []string `json:"countries,omitempty"`
}

func newMarketsCmd() *cobra.Command {
	var flags storeFlags

	cmd := &cobra.Command{
		Use:   "markets",
		Short: "Print the configured market registry",
		Long:  "Load the market registry the server would use and print its markets as JSON, in registration order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			registry, err := di.LoadMarkets(cfg)
			if err != nil {
				return err
			}

			out := make([]marketOutput, 0)
			for _, market := range registry.Markets() {
				out = append(out, marketOutput{
					ID:              market.ID,
					Name:            market.Name,
					DefaultCurrency: market.DefaultCurrency,
					Currencies:      market.Currencies,
					DefaultLanguage: market.DefaultLanguage,
					Languages:       market.Languages,
					Countries:       market.Countries,
				})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Path to a .env file with CARTVIEW_* overrides")
	cmd.Flags().StringVar(&flags.markets, "markets", "", "Path to the market registry YAML")
	return cmd
}
