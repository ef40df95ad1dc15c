package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	defaultEnvFile             = ".env"
	defaultPort                = "8080"
	defaultReadTimeout         = 15 * time.Second
	defaultWriteTimeout        = 30 * time.Second
	defaultIdleTimeout         = 120 * time.Second
	defaultShutdownTimeout     = 10 * time.Second
	defaultStoreKind           = StoreMemory
	defaultCartsCollection     = "carts"
	defaultMethodsCollection   = "shippingMethods"
	defaultContentCollection   = "catalogContent"
	defaultLanguage            = "en"
	defaultShippingConcurrency = 1
	defaultLogLevel            = "info"
	defaultServiceName         = "cartview"
)

// Store kinds accepted by CARTVIEW_STORE.
const (
	StoreMemory    = "memory"
	StoreFirestore = "firestore"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server        ServerConfig
	Store         StoreConfig
	Firestore     FirestoreConfig
	Markets       MarketsConfig
	Localization  LocalizationConfig
	Shipping      ShippingConfig
	Observability ObservabilityConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// StoreConfig selects the repository backend.
type StoreConfig struct {
	Kind         string
	FixturesFile string
}

// FirestoreConfig stores database parameters.
type FirestoreConfig struct {
	ProjectID                 string
	EmulatorHost              string
	CartsCollection           string
	ShippingMethodsCollection string
	ContentCollection         string
}

// MarketsConfig points at the market registry file.
type MarketsConfig struct {
	File string
}

// LocalizationConfig lists the languages content can be served in.
type LocalizationConfig struct {
	DefaultLanguage    string
	SupportedLanguages []string
}

// ShippingConfig tunes shipment assembly.
type ShippingConfig struct {
	ActiveOnly  bool
	Concurrency int
}

// ObservabilityConfig controls logging and tracing metadata.
type ObservabilityConfig struct {
	LogLevel    string
	ServiceName string
	ProjectID   string
}

// DefaultTag parses the default language.
func (c LocalizationConfig) DefaultTag() language.Tag {
	tag, err := language.Parse(c.DefaultLanguage)
	if err != nil {
		return language.English
	}
	return tag
}

// SupportedTags parses the supported languages, always leading with the default.
func (c LocalizationConfig) SupportedTags() []language.Tag {
	def := c.DefaultTag()
	tags := []language.Tag{def}
	for _, raw := range c.SupportedLanguages {
		tag, err := language.Parse(raw)
		if err != nil || tag == def {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides and environment variables.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}

	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            stringWithDefault(lookup, "CARTVIEW_SERVER_PORT", defaultPort),
			ReadTimeout:     durationWithDefault(lookup, "CARTVIEW_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "CARTVIEW_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "CARTVIEW_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "CARTVIEW_SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Store: StoreConfig{
			Kind:         strings.ToLower(stringWithDefault(lookup, "CARTVIEW_STORE", defaultStoreKind)),
			FixturesFile: stringWithDefault(lookup, "CARTVIEW_FIXTURES_FILE", ""),
		},
		Firestore: FirestoreConfig{
			ProjectID:                 stringWithDefault(lookup, "CARTVIEW_FIRESTORE_PROJECT_ID", ""),
			EmulatorHost:              stringWithDefault(lookup, "CARTVIEW_FIRESTORE_EMULATOR_HOST", ""),
			CartsCollection:           stringWithDefault(lookup, "CARTVIEW_FIRESTORE_CARTS_COLLECTION", defaultCartsCollection),
			ShippingMethodsCollection: stringWithDefault(lookup, "CARTVIEW_FIRESTORE_SHIPPING_METHODS_COLLECTION", defaultMethodsCollection),
			ContentCollection:         stringWithDefault(lookup, "CARTVIEW_FIRESTORE_CONTENT_COLLECTION", defaultContentCollection),
		},
		Markets: MarketsConfig{
			File: stringWithDefault(lookup, "CARTVIEW_MARKETS_FILE", ""),
		},
		Localization: LocalizationConfig{
			DefaultLanguage:    stringWithDefault(lookup, "CARTVIEW_DEFAULT_LANGUAGE", defaultLanguage),
			SupportedLanguages: csvWithDefault(lookup, "CARTVIEW_SUPPORTED_LANGUAGES"),
		},
		Shipping: ShippingConfig{
			ActiveOnly:  boolWithDefault(lookup, "CARTVIEW_SHIPPING_ACTIVE_ONLY", true),
			Concurrency: intWithDefault(lookup, "CARTVIEW_SHIPPING_CONCURRENCY", defaultShippingConcurrency),
		},
		Observability: ObservabilityConfig{
			LogLevel:    stringWithDefault(lookup, "CARTVIEW_LOG_LEVEL", defaultLogLevel),
			ServiceName: stringWithDefault(lookup, "CARTVIEW_SERVICE_NAME", defaultServiceName),
			ProjectID:   stringWithDefault(lookup, "CARTVIEW_TRACE_PROJECT_ID", ""),
		},
	}

	if cfg.Observability.ProjectID == "" {
		cfg.Observability.ProjectID = cfg.Firestore.ProjectID
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	switch cfg.Store.Kind {
	case StoreMemory:
	case StoreFirestore:
		if cfg.Firestore.ProjectID == "" {
			missing = append(missing, "Firestore.ProjectID")
		}
	default:
		missing = append(missing, "Store.Kind")
	}
	if _, err := language.Parse(cfg.Localization.DefaultLanguage); err != nil {
		missing = append(missing, "Localization.DefaultLanguage")
	}
	for _, raw := range cfg.Localization.SupportedLanguages {
		if _, err := language.Parse(raw); err != nil {
			missing = append(missing, fmt.Sprintf("Localization.SupportedLanguages[%s]", raw))
		}
	}
	if cfg.Shipping.Concurrency < 1 {
		missing = append(missing, "Shipping.Concurrency")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
