// Package config loads the inspectreport TOML configuration.
//
// A configuration file overrides any subset of the defaults:
//
//	[brand]
//	name    = "Northside Motors"
//	prefix  = "NSM"
//
//	[page]
//	width  = 215.9
//	height = 279.4
//
//	[palette]
//	navy = "#1e293b"
//
//	[cache]
//	backend = "redis"
//	addr    = "localhost:6379"
//	ttl     = "12h"
//
// Files are found in this order: the --config flag, $INSPECTREPORT_CONFIG,
// then $XDG_CONFIG_HOME/inspectreport/config.toml (~/.config when unset).
// A missing default file is not an error; a missing explicit file is.
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/inspectreport/pkg/cache"
	"github.com/matzehuels/inspectreport/pkg/report/style"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// AppName names the config, cache and data directories.
const AppName = "inspectreport"

// EnvVar overrides the config file location.
const EnvVar = "INSPECTREPORT_CONFIG"

// Backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the complete configuration.
type Config struct {
	Brand   style.Brand    `toml:"brand"`
	Page    style.Geometry `toml:"page"`
	Layout  style.Layout   `toml:"layout"`
	Palette style.Palette  `toml:"palette"`
	Cache   CacheConfig    `toml:"cache"`
	Archive ArchiveConfig  `toml:"archive"`
	Server  ServerConfig   `toml:"server"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"` // file, redis or none
	Dir       string   `toml:"dir,omitempty"`
	Addr      string   `toml:"addr,omitempty"`
	Password  string   `toml:"password,omitempty"`
	DB        int      `toml:"db,omitempty"`
	Namespace string   `toml:"namespace,omitempty"`
	TTL       Duration `toml:"ttl"`
}

// ArchiveConfig selects where generated reports are archived.
type ArchiveConfig struct {
	Backend    string `toml:"backend"` // file, mongo or none
	Dir        string `toml:"dir,omitempty"`
	URI        string `toml:"uri,omitempty"`
	Database   string `toml:"database,omitempty"`
	Collection string `toml:"collection,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	RequestTimeout Duration `toml:"request_timeout"`
	MaxBodyMB      int      `toml:"max_body_mb"`
	Concurrency    int      `toml:"concurrency"`
}

// Duration is a time.Duration written as "90s" or "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	th := style.DefaultTheme()
	return Config{
		Brand:   th.Brand,
		Page:    th.Page,
		Layout:  th.Layout,
		Palette: th.Palette,
		Cache: CacheConfig{
			Backend:   BackendFile,
			Namespace: AppName + ":",
			TTL:       Duration{cache.ArtifactTTL},
		},
		Archive: ArchiveConfig{
			Backend:    BackendNone,
			Database:   AppName,
			Collection: "reports",
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			RequestTimeout: Duration{60 * time.Second},
			MaxBodyMB:      64,
			Concurrency:    4,
		},
	}
}

// Theme assembles the report theme.
func (c Config) Theme() style.Theme {
	return style.Theme{Page: c.Page, Layout: c.Layout, Brand: c.Brand, Palette: c.Palette}
}

// Validate rejects configurations the engine or the backends cannot use.
func (c Config) Validate() error {
	if err := c.Theme().Validate(); err != nil {
		return err
	}
	if err := errs.ValidatePrefix(c.Brand.Prefix); err != nil {
		return err
	}
	if !slices.Contains([]string{BackendFile, BackendRedis, BackendNone}, c.Cache.Backend) {
		return errs.New(errs.ErrCodeInvalidConfig, "cache backend %q (use file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "cache backend redis needs addr")
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if !slices.Contains([]string{BackendFile, BackendMongo, BackendNone}, c.Archive.Backend) {
		return errs.New(errs.ErrCodeInvalidConfig, "archive backend %q (use file, mongo or none)", c.Archive.Backend)
	}
	if c.Archive.Backend == BackendMongo && c.Archive.URI == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "archive backend mongo needs uri")
	}
	if c.Server.MaxBodyMB <= 0 || c.Server.Concurrency <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server max_body_mb and concurrency must be positive")
	}
	return nil
}

// Decode overlays the TOML document in r onto the defaults. Unknown keys are
// rejected so typos do not pass silently.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Resolve returns the config file to load and whether it was named
// explicitly. An empty path means none was named and the default is absent.
func Resolve(flag string) (path string, explicit bool, err error) {
	if flag != "" {
		return flag, true, nil
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env, true, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", false, err
	}
	path = filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return "", false, nil
	}
	return path, false, nil
}

// Find resolves and loads the configuration, falling back to the defaults
// when no file exists. It returns the path that was loaded, if any.
func Find(flag string) (Config, string, error) {
	path, _, err := Resolve(flag)
	if err != nil {
		return Config{}, "", err
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CacheDir returns the default cache directory.
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// DataDir returns the default directory of the file archive.
func DataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", AppName), nil
}
