// Package config reads and writes the per-site settings file kept next to _config.yml.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// FileName is shared with the older desktop tool so both read the same settings.
const FileName = ".jekyll_gui_config.json"

// EnvPrefix scopes environment overrides, e.g. JEKYLL_COMPOSE_AUTO_OPEN=true.
const EnvPrefix = "JEKYLL_COMPOSE"

const (
	DefaultGenerator   = "bundle exec jekyll"
	DefaultRecentLimit = 20
)

type Settings struct {
	// AutoOpen opens newly created files with the default application.
	AutoOpen bool `json:"auto_open" mapstructure:"auto_open"`

	// Generator is the command line that builds or serves the site; "build" or "serve"
	// is appended.
	Generator string `json:"generator" mapstructure:"generator"`

	// Editor overrides $VISUAL/$EDITOR when set.
	Editor string `json:"editor,omitempty" mapstructure:"editor"`

	RecentLimit int `json:"recent_limit" mapstructure:"recent_limit"`
}

func Default() Settings {
	return Settings{
		Generator:   DefaultGenerator,
		RecentLimit: DefaultRecentLimit,
	}
}

func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads the settings for the site at root. A missing file yields defaults;
// environment variables override both.
func Load(root string) (Settings, error) {
	return load(root, true)
}

// LoadFile is Load without environment overrides, for read-modify-write of the file.
func LoadFile(root string) (Settings, error) {
	return load(root, false)
}

func load(root string, env bool) (Settings, error) {
	def := Default()
	v := viper.New()
	v.SetConfigFile(Path(root))
	v.SetConfigType("json")
	if env {
		v.SetEnvPrefix(EnvPrefix)
		v.AutomaticEnv()
	}
	v.SetDefault("auto_open", def.AutoOpen)
	v.SetDefault("generator", def.Generator)
	v.SetDefault("editor", def.Editor)
	v.SetDefault("recent_limit", def.RecentLimit)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return def, fmt.Errorf("read %s: %w", Path(root), err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return def, fmt.Errorf("decode %s: %w", Path(root), err)
	}
	return s.normalized(), nil
}

func (s Settings) normalized() Settings {
	s.Generator = strings.TrimSpace(s.Generator)
	if s.Generator == "" {
		s.Generator = DefaultGenerator
	}
	s.Editor = strings.TrimSpace(s.Editor)
	if s.RecentLimit <= 0 {
		s.RecentLimit = DefaultRecentLimit
	}
	return s
}

// Save writes the settings file atomically.
func Save(root string, s Settings) error {
	b, err := json.MarshalIndent(s.normalized(), "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return atomicWriteFile(root, FileName+".*.tmp", Path(root), b, 0o644)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// Keys lists the names accepted by Set, in display order.
func Keys() []string {
	return []string{"auto_open", "generator", "editor", "recent_limit"}
}

// Set assigns one setting from its string form. Dashes in key are treated as
// underscores, so "auto-open" and "auto_open" are the same key.
func (s *Settings) Set(key, value string) error {
	key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
	value = strings.TrimSpace(value)
	switch key {
	case "auto_open":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto_open: expected true or false, got %q", value)
		}
		s.AutoOpen = b
	case "generator":
		if value == "" {
			return errors.New("generator: must not be empty")
		}
		s.Generator = value
	case "editor":
		s.Editor = value
	case "recent_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("recent_limit: expected a positive integer, got %q", value)
		}
		s.RecentLimit = n
	default:
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// Get returns one setting in the same string form Set accepts.
func (s Settings) Get(key string) (string, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_") {
	case "auto_open":
		return strconv.FormatBool(s.AutoOpen), nil
	case "generator":
		return s.Generator, nil
	case "editor":
		return s.Editor, nil
	case "recent_limit":
		return strconv.Itoa(s.RecentLimit), nil
	default:
		return "", fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
}
