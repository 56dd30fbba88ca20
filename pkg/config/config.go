package config

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends selectable through configuration.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type StorageConfig struct {
	// Backend selects the key-value store implementation: "file"
	// (localStorage-style JSON files), "badger" (embedded database) or
	// "memory" (ephemeral).
	Backend string `mapstructure:"backend"`

	// DataDir is the directory holding the store's files.
	DataDir string `mapstructure:"data_dir"`

	// SyncWrites makes Badger writes durable before returning.
	SyncWrites bool `mapstructure:"sync_writes"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// DefaultDataDir returns the default directory for storing collections,
// under the user's Documents folder.
func DefaultDataDir() string {
	currentUser, err := user.Current()
	if err != nil {
		return "./data"
	}
	return filepath.Join(currentUser.HomeDir, "Documents", "ESulat", "Data")
}

// Load reads configuration from an optional file plus environment
// variables, falling back to defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.data_dir", DefaultDataDir())
	v.SetDefault("storage.sync_writes", true)
	v.SetDefault("log.debug", false)

	v.SetEnvPrefix("esulat")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	switch config.Storage.Backend {
	case BackendFile, BackendBadger, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}

	return &config, nil
}
