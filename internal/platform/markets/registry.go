// Package markets loads the market registry that scopes currencies and
// languages for shipping method resolution.
package markets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/hanko-field/cartview/internal/domain"
)

// DefaultMarketID is the identifier of the built-in fallback market.
const DefaultMarketID = "DEFAULT"

// ErrMarketNotFound is returned for unknown market identifiers.
var ErrMarketNotFound = errors.New("markets: market not found")

type registryFile struct {
	Markets []marketDocument `yaml:"markets"`
}

type marketDocument struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	DefaultCurrency string   `yaml:"defaultCurrency"`
	Currencies      []string `yaml:"currencies"`
	DefaultLanguage string   `yaml:"defaultLanguage"`
	Languages       []string `yaml:"languages"`
	Countries       []string `yaml:"countries"`
}

// Registry is an immutable set of markets keyed by ID.
type Registry struct {
	markets map[string]domain.Market
	order   []string
}

// DefaultMarket is used when no registry file is configured.
func DefaultMarket() domain.Market {
	return domain.Market{
		ID:              DefaultMarketID,
		Name:            "Default market",
		DefaultCurrency: "USD",
		Currencies:      []string{"USD"},
		DefaultLanguage: "en",
		Languages:       []string{"en"},
	}
}

// Default returns a registry holding only DefaultMarket.
func Default() *Registry {
	registry, _ := New(DefaultMarket())
	return registry
}

// Load reads and parses a YAML registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("markets: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML registry document.
func Parse(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("markets: decode registry: %w", err)
	}
	markets := make([]domain.Market, 0, len(file.Markets))
	for _, doc := range file.Markets {
		markets = append(markets, doc.toDomain())
	}
	return New(markets...)
}

// New validates the markets and builds a registry.
func New(markets ...domain.Market) (*Registry, error) {
	if len(markets) == 0 {
		return nil, errors.New("markets: at least one market is required")
	}
	registry := &Registry{markets: make(map[string]domain.Market, len(markets))}
	for _, market := range markets {
		market.ID = strings.TrimSpace(market.ID)
		if err := validate(market); err != nil {
			return nil, err
		}
		if _, exists := registry.markets[market.ID]; exists {
			return nil, fmt.Errorf("markets: duplicate market %q", market.ID)
		}
		registry.markets[market.ID] = market
		registry.order = append(registry.order, market.ID)
	}
	return registry, nil
}

// Market resolves a market by ID.
func (r *Registry) Market(_ context.Context, id string) (domain.Market, error) {
	if r == nil {
		return domain.Market{}, fmt.Errorf("%w: %q", ErrMarketNotFound, id)
	}
	market, ok := r.markets[strings.TrimSpace(id)]
	if !ok {
		return domain.Market{}, fmt.Errorf("%w: %q", ErrMarketNotFound, id)
	}
	return market, nil
}

// Markets lists the markets in registration order.
func (r *Registry) Markets() []domain.Market {
	if r == nil {
		return nil
	}
	out := make([]domain.Market, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.markets[id])
	}
	return out
}

func validate(market domain.Market) error {
	if market.ID == "" {
		return errors.New("markets: market id is required")
	}
	if !domain.ValidCurrency(market.DefaultCurrency) {
		return fmt.Errorf("markets: market %q has invalid default currency %q", market.ID, market.DefaultCurrency)
	}
	for _, code := range market.Currencies {
		if !domain.ValidCurrency(code) {
			return fmt.Errorf("markets: market %q has invalid currency %q", market.ID, code)
		}
	}
	if market.DefaultLanguage != "" {
		if _, err := language.Parse(market.DefaultLanguage); err != nil {
			return fmt.Errorf("markets: market %q has invalid default language: %w", market.ID, err)
		}
	}
	for _, lang := range market.Languages {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("markets: market %q has invalid language: %w", market.ID, err)
		}
	}
	return nil
}

func (d marketDocument) toDomain() domain.Market {
	currencies := make([]string, 0, len(d.Currencies))
	for _, code := range d.Currencies {
		currencies = append(currencies, domain.NormalizeCurrency(code))
	}
	countries := make([]string, 0, len(d.Countries))
	for _, country := range d.Countries {
		countries = append(countries, strings.ToUpper(strings.TrimSpace(country)))
	}
	return domain.Market{
		ID:              d.ID,
		Name:            strings.TrimSpace(d.Name),
		DefaultCurrency: domain.NormalizeCurrency(d.DefaultCurrency),
		Currencies:      currencies,
		DefaultLanguage: strings.TrimSpace(d.DefaultLanguage),
		Languages:       d.Languages,
		Countries:       countries,
	}
}
