package cli

import (
	"context"
	"strings"

	"github.com/hanko-field/cartview/internal/platform/config"
)

// storeFlags are the config overrides shared by commands that open the repositories.
type storeFlags struct {
	envFile  string
	fixtures string
	markets  string
}

func (f storeFlags) load(ctx context.Context) (config.Config, error) {
	overrides := make(map[string]string)
	if path := strings.TrimSpace(f.fixtures); path != "" {
		overrides["CARTVIEW_STORE"] = config.StoreMemory
		overrides["CARTVIEW_FIXTURES_FILE"] = path
	}
	if path := strings.TrimSpace(f.markets); path != "" {
		overrides["CARTVIEW_MARKETS_FILE"] = path
	}
	opts := []config.Option{config.WithEnvMap(overrides)}
	if f.envFile != "" {
		opts = append(opts, config.WithEnvFile(f.envFile))
	}
	return config.Load(ctx, opts...)
}
