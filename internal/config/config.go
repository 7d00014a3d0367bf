package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

const (
	appConfDir  = ".provlens"
	appConfFile = "config.toml"
)

var (
	ErrNoConfig = errors.New("config must be loaded")
)

type ClientConfig struct {
	// ServerAddr is the upload endpoint, e.g. "http://192.168.1.7:9190".
	// When empty, the client resolves the instance over mDNS.
	ServerAddr string `toml:"server_addr"`
	// Instance is the mDNS instance name to look for when ServerAddr is empty.
	Instance string `toml:"instance"`
	// TimeoutSeconds bounds one upload round trip, cleaning included.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

type ServeConfig struct {
	Instance string `toml:"instance"`
	Port     int    `toml:"port"`
	// StoppableInstance lets others on the LAN stop this instance over /stop
	StoppableInstance bool `toml:"stoppable_instance"`
}

type CleanConfig struct {
	FixAddresses         bool `toml:"fix_addresses"`
	NormalizePhones      bool `toml:"normalize_phones"`
	StandardizeSpecialty bool `toml:"standardize_specialty"`
	FlagSuspiciousFields bool `toml:"flag_suspicious_fields"`
}

type GeminiConfig struct {
	// APIKey may stay empty; the GEMINI_API_KEY env var takes precedence,
	// and without either the server falls back to the offline cleaner.
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

type Config struct {
	Client ClientConfig `toml:"client"`
	Serve  ServeConfig  `toml:"serve"`
	Clean  CleanConfig  `toml:"clean"`
	Gemini GeminiConfig `toml:"gemini"`
}

// GeminiKey resolves the API key, env var first.
func (c Config) GeminiKey() string {
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		return k
	}
	return c.Gemini.APIKey
}

var (
	mu     sync.Mutex
	config *Config
)

// Get returns the latest loaded/saved user's config,
// if it returns ErrNoConfig, Load OR Save must be called.
func Get() (Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if config != nil {
		return *config, nil
	}
	return Config{}, ErrNoConfig
}

// Load loads the configuration from the user's config file.
// if not exists, it creates a new config file with default values.
func Load() (Config, error) {
	f, err := getUserConfigFile()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f, err = createConfigFile()
			if err != nil {
				return Config{}, fmt.Errorf("config file not exists, creating config file: %w", err)
			}
			defer f.Close()

			cfg := defaultConfig()
			if err = writeConfig(f, cfg); err != nil {
				return Config{}, fmt.Errorf("writing default config to app config file: %w", err)
			}
			update(cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	cfg, err := readConfig(f)
	if err != nil {
		return Config{}, err
	}
	update(cfg)
	return cfg, nil
}

// Save saves the configuration to the user's config file.
func Save(c Config) error {
	f, err := createConfigFile()
	if err != nil {
		return fmt.Errorf("creating/truncating config file: %w", err)
	}
	defer f.Close()
	if err = writeConfig(f, c); err != nil {
		return fmt.Errorf("writing new config to file: %w", err)
	}
	update(c)
	return nil
}

func update(c Config) {
	mu.Lock()
	defer mu.Unlock()
	config = &c
}

func defaultConfig() Config {
	instance := "provlens"
	if hostname, err := os.Hostname(); err == nil {
		instance = hostname
	}
	return Config{
		Client: ClientConfig{
			Instance:       instance,
			TimeoutSeconds: 120,
		},
		Serve: ServeConfig{
			Instance:          instance,
			Port:              9190,
			StoppableInstance: true,
		},
		Clean: CleanConfig{
			FixAddresses:         true,
			NormalizePhones:      true,
			StandardizeSpecialty: true,
			FlagSuspiciousFields: true,
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

func getUserConfigFile() (*os.File, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("user config directory look-up: %w", err)
	}
	path := filepath.Join(dir, appConfDir, appConfFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening app config file: %w", err)
	}
	return f, nil
}

func createConfigFile() (*os.File, error) {
	ucd, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("user config directory look-up: %v", err)
	}

	path := filepath.Join(ucd, appConfDir)
	if err = os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("creating app config directory: %w", err)
	}

	path = filepath.Join(path, appConfFile)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating app config file: %w", err)
	}
	return f, nil
}

func readConfig(r io.Reader) (Config, error) {
	cfg := new(Config)
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config file: %w", err)
	}
	return *cfg, nil
}

func writeConfig(w io.Writer, c Config) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encoding config file: %w", err)
	}
	return nil
}
