package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete client configuration, loadable from environment
// variables (STOREFRONT_ prefix), flags, or YAML config files.
type Config struct {
	BaseURL      string        `default:"http://localhost:5000/api" usage:"Storefront API base URL" flag:"base-url"`
	AssetBaseURL string        `default:"" usage:"Base URL for product and blog images" flag:"asset-base-url"`
	SessionFile  string        `usage:"Path of the persisted session file (defaults under the user config dir)" flag:"session-file"`
	UserAgent    string        `default:"storefront-cli/1.0" usage:"User-Agent sent with every request" flag:"user-agent"`
	HTTPTimeout  time.Duration `default:"15s" usage:"Per-request timeout" flag:"http-timeout"`
	Cache        CacheConfig
}

// CacheConfig controls how long fetched results are served before a re-fetch.
type CacheConfig struct {
	CartStaleTime   time.Duration `default:"5m" usage:"Cart cache stale time" flag:"cart-stale-time"`
	OrdersStaleTime time.Duration `default:"5m" usage:"Order history cache stale time" flag:"orders-stale-time"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files, and fills in platform defaults for the session file location.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "STOREFRONT",
		Files:     []string{"config.yaml", configDirFile("config.yaml")},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if cfg.SessionFile == "" {
		cfg.SessionFile = configDirFile("session.json")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required: set STOREFRONT_BASE_URL or --base-url")
	}

	return &cfg, nil
}

// configDirFile resolves a file name under the user's storefront config
// directory, falling back to the working directory when none is available.
func configDirFile(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "storefront", name)
}
