package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix            = "ROOMRELAY"
	envConfigDefaultPath = "ROOMRELAY_CONFIG_DEFAULT_PATH"
	defaultConfigName    = "config.yaml"
)

// Load reads the relay's YAML config and returns it with the path it came from.
// A missing file is created from Default() so operators have something to edit.
// ROOMRELAY_* variables override file values; CLI flags are layered on top
// by the caller with UpdateFrom.
func Load(logger *zerolog.Logger, explicitPath string) (Config, string, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	cfg := Default()
	path := resolveConfigPath(explicitPath)
	v := newViper(cfg, path)

	if err := v.ReadInConfig(); err != nil {
		if !isNotExist(err) {
			return cfg, path, fmt.Errorf("read config %s: %w", path, err)
		}
		seedConfigFile(logger, v, path, cfg)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, path, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, path, nil
}

func newViper(defaults Config, path string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys need a default for AutomaticEnv to see them during Unmarshal.
	for key, value := range map[string]any{
		"addr":                defaults.Addr,
		"mode":                defaults.Mode,
		"log_level":           defaults.LogLevel,
		"read_header_timeout": defaults.ReadHeaderTimeout,
		"shutdown_timeout":    defaults.ShutdownTimeout,
		"read_limit":          defaults.ReadLimit,
		"send_buffer":         defaults.SendBuffer,
	} {
		v.SetDefault(key, value)
	}
	return v
}

// seedConfigFile writes cfg to path and loads it back into v. Failures only
// log: the defaults already set on v keep the relay bootable.
func seedConfigFile(logger *zerolog.Logger, v *viper.Viper, path string, cfg Config) {
	if err := writeDefaultConfig(path, cfg); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("could not write default config")
		return
	}
	logger.Info().Str("path", path).Msg("wrote default config")

	if err := v.ReadInConfig(); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("could not read freshly written config")
	}
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// resolveConfigPath picks, in order: the --config flag, config.yaml inside
// $ROOMRELAY_CONFIG_DEFAULT_PATH, config.yaml in the working directory.
func resolveConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	if dir := os.Getenv(envConfigDefaultPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			return filepath.Join(dir, defaultConfigName)
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, defaultConfigName)
	}
	return defaultConfigName
}

func writeDefaultConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
