package app

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"walletlink/internal/domain"
	"walletlink/internal/protocol/deeplink"
)

// Storage backends.
const (
	StorageFile   = "file"
	StorageBolt   = "bolt"
	StorageMemory = "memory"
)

// ConfigFilename is read from the home directory.
const ConfigFilename = "config.yaml"

// HomeEnv overrides the default home directory.
const HomeEnv = "WALLETLINK_HOME"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home string `yaml:"-"` // config directory, e.g. $HOME/.walletlink

	WalletBaseURL string         `yaml:"wallet_base_url"` // e.g. https://phantom.app/ul/v1
	RedirectBase  string         `yaml:"redirect_base"`   // where the wallet sends the user back
	Cluster       domain.Cluster `yaml:"cluster"`
	AppURL        string         `yaml:"app_url"` // shown by the wallet on connect
	Storage       string         `yaml:"storage"` // file, bolt or memory
	ListenAddr    string         `yaml:"listen_addr"`

	// Routes overrides redirect path segments per operation. Unset
	// operations keep their default segment.
	Routes map[domain.Operation]string `yaml:"routes,omitempty"`

	// PersistSession keeps the connected session across runs, sealed under
	// the passphrase.
	PersistSession bool `yaml:"persist_session"`
}

// DefaultConfig returns the configuration used when no config.yaml exists.
func DefaultConfig() Config {
	return Config{
		WalletBaseURL:  "https://phantom.app/ul/v1",
		RedirectBase:   "http://127.0.0.1:8787",
		Cluster:        domain.ClusterMainnetBeta,
		AppURL:         "https://phantom.app",
		Storage:        StorageFile,
		ListenAddr:     "127.0.0.1:8787",
		PersistSession: true,
	}
}

// ResolveHome returns the home directory.
// Resolution order: --home flag > WALLETLINK_HOME > ~/.walletlink
func ResolveHome(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(HomeEnv); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home directory")
	}
	return filepath.Join(home, ".walletlink"), nil
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults. An empty path means home/config.yaml.
func LoadConfig(home, path string) (Config, error) {
	if path == "" {
		path = filepath.Join(home, ConfigFilename)
	}
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return Config{}, errors.Wrapf(err, "read config %s", path)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "parse config %s", path)
		}
	}
	cfg.Home = home
	return cfg, cfg.Validate()
}

// Save writes cfg to home/config.yaml.
func (c Config) Save() error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.MkdirAll(c.Home, 0o700); err != nil {
		return errors.Wrapf(err, "create home %s", c.Home)
	}
	return errors.Wrap(os.WriteFile(filepath.Join(c.Home, ConfigFilename), b, 0o600), "write config")
}

// Validate reports the first configuration defect.
func (c Config) Validate() error {
	for name, raw := range map[string]string{
		"wallet_base_url": c.WalletBaseURL,
		"redirect_base":   c.RedirectBase,
		"app_url":         c.AppURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" {
			return fmt.Errorf("config: %s %q is not an absolute URL", name, raw)
		}
	}
	if !c.Cluster.Valid() {
		return fmt.Errorf("config: unknown cluster %q", c.Cluster)
	}
	switch c.Storage {
	case StorageFile, StorageBolt, StorageMemory:
	default:
		return fmt.Errorf("config: storage must be %s, %s or %s, got %q",
			StorageFile, StorageBolt, StorageMemory, c.Storage)
	}
	for op := range c.Routes {
		if _, ok := deeplink.DefaultRoutes()[op]; !ok {
			return fmt.Errorf("config: routes: unknown operation %q", op)
		}
	}
	return c.RouteTable().Validate()
}

// RouteTable returns the effective redirect routes.
func (c Config) RouteTable() deeplink.Routes {
	return deeplink.Routes(c.Routes).WithDefaults()
}

// BuilderConfig returns the request builder settings.
func (c Config) BuilderConfig() deeplink.Config {
	return deeplink.Config{
		WalletBaseURL: c.WalletBaseURL,
		RedirectBase:  c.RedirectBase,
		Cluster:       c.Cluster,
		AppURL:        c.AppURL,
		Routes:        c.RouteTable(),
	}
}
