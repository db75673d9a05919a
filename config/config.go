// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"hypernotic/menu"
	"hypernotic/plugins"
)

const (
	FileName = "config.yml"

	EnvConfig     = "HYPERNOTIC_CONFIG"
	EnvLogLevel   = "HYPERNOTIC_LOG_LEVEL"
	EnvBridgeAddr = "HYPERNOTIC_BRIDGE_ADDR"
	EnvEmitPolicy = "HYPERNOTIC_EMIT_POLICY"

	maxConfigSize = 1 << 20
)

var (
	ErrWorldWritable = errors.New("config file is world-writable")
	ErrTooLarge      = errors.New("config file too large")
)

type Window struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type Bridge struct {
	// Addr is the listen address of the frontend bridge. Empty disables it.
	Addr string `yaml:"addr"`
}

type Shell struct {
	// Allow lists the programs the shell plugin may execute.
	Allow []string `yaml:"allow"`
}

type Config struct {
	AppID           string `yaml:"app_id"`
	LogLevel        string `yaml:"log_level"`
	EmitPolicy      string `yaml:"emit_policy"`
	Window          Window `yaml:"window"`
	RecentDirsLimit int    `yaml:"recent_dirs_limit"`
	Bridge          Bridge `yaml:"bridge"`
	Shell           Shell  `yaml:"shell"`
}

func Default() Config {
	return Config{
		AppID:           "com.hypernotic.app",
		LogLevel:        "info",
		EmitPolicy:      string(menu.EmitBestEffort),
		Window:          Window{Width: 1024, Height: 768},
		RecentDirsLimit: 10,
		Shell:           Shell{Allow: []string{plugins.RevealCommand(runtime.GOOS)}},
	}
}

// Path returns where the config file is looked up.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hypernotic", FileName), nil
}

// Load reads the config file at path on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat config: %w", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		return fmt.Errorf("%s: %w", path, ErrWorldWritable)
	}
	if info.Size() > maxConfigSize {
		return fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvBridgeAddr); ok {
		cfg.Bridge.Addr = v
	}
	if v := os.Getenv(EnvEmitPolicy); v != "" {
		cfg.EmitPolicy = v
	}
}

func (c Config) Validate() error {
	if c.AppID == "" {
		return errors.New("app_id must not be empty")
	}
	if _, err := menu.ParseEmitPolicy(c.EmitPolicy); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %vx%v must be positive", c.Window.Width, c.Window.Height)
	}
	if c.RecentDirsLimit <= 0 {
		return fmt.Errorf("recent_dirs_limit %d must be positive", c.RecentDirsLimit)
	}
	return nil
}

// Policy returns the parsed emit policy. Validate guarantees it parses.
func (c Config) Policy() menu.EmitPolicy {
	p, _ := menu.ParseEmitPolicy(c.EmitPolicy)
	return p
}
