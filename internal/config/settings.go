package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/studiowebux/voidrunner/internal/storage"
)

// EnvConfig overrides the settings file location
const EnvConfig = "VOIDRUNNER_CONFIG"

// Settings holds application configuration.
type Settings struct {
	Execution ExecutionSettings `mapstructure:"execution" yaml:"execution"`
	Storage   StorageSettings   `mapstructure:"storage" yaml:"storage"`
	History   HistorySettings   `mapstructure:"history" yaml:"history"`
	Log       LogSettings       `mapstructure:"log" yaml:"log"`
	Keybinds  KeybindSettings   `mapstructure:"keybinds" yaml:"keybinds"`
}

// ExecutionSettings configures the remote execution service.
// A zero timeout means the request may wait forever.
type ExecutionSettings struct {
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// StorageSettings selects the session storage backend
type StorageSettings struct {
	Backend string        `mapstructure:"backend" yaml:"backend"`
	Key     string        `mapstructure:"key" yaml:"key"`
	Redis   RedisSettings `mapstructure:"redis" yaml:"redis"`
}

// RedisSettings is used when Backend is "redis"
type RedisSettings struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
}

type HistorySettings struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

type LogSettings struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type KeybindSettings struct {
	File string `mapstructure:"file" yaml:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("execution.endpoint", "https://voidrunner.vercel.app/api")
	v.SetDefault("execution.timeout", "0s")
	v.SetDefault("storage.backend", storage.BackendFile)
	v.SetDefault("storage.key", "editorState")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "voidrunner:")
	v.SetDefault("history.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("keybinds.file", "keybinds.json")
}

// Load reads settings from file and env. Env var overrides use prefix VOIDRUNNER_.
// A missing settings file is not an error.
func Load() (Settings, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		path = ConfigFile
	}
	return LoadFile(path)
}

// LoadFile reads settings from path (may be empty) plus the environment
func LoadFile(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VOIDRUNNER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	keybinds, err := ExpandPath(s.Keybinds.File)
	if err != nil {
		return Settings{}, err
	}
	s.Keybinds.File = keybinds

	return s, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Validate checks values viper cannot type-check
func (s Settings) Validate() error {
	switch s.Storage.Backend {
	case storage.BackendFile, storage.BackendSQLite, storage.BackendRedis:
	default:
		return fmt.Errorf("unknown storage backend %q (expected file, sqlite or redis)", s.Storage.Backend)
	}
	if s.Storage.Key == "" {
		return errors.New("storage.key must not be empty")
	}
	if s.Execution.Timeout < 0 {
		return errors.New("execution.timeout must not be negative")
	}
	return nil
}

// StorageOptions maps the settings to storage.Open options
func (s Settings) StorageOptions() storage.Options {
	return storage.Options{
		Backend:      s.Storage.Backend,
		Dir:          StateDir,
		DatabasePath: DatabasePath,
		Redis: storage.RedisOptions{
			Addr:     s.Storage.Redis.Addr,
			Password: s.Storage.Redis.Password,
			DB:       s.Storage.Redis.DB,
			Prefix:   s.Storage.Redis.Prefix,
		},
	}
}
