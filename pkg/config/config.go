// Package config loads the pcbdrill configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/pcbdrill/config.toml
// (~/.config/pcbdrill/config.toml when XDG_CONFIG_HOME is unset):
//
//	[drill]
//	include_plated = true
//	flip_y = false
//	generator = "pcbdrill"
//
//	[cache]
//	backend = "file"   # none | file | memory | redis | mongo
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//
// Every key is optional. A missing file yields [Default].
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pcbdrill/pkg/cache"
	"github.com/matzehuels/pcbdrill/pkg/drill"
	"github.com/matzehuels/pcbdrill/pkg/errors"
)

// AppName names the configuration and cache directories.
const AppName = "pcbdrill"

// FileName is the configuration file name inside Dir.
const FileName = "config.toml"

// Config is the decoded configuration file.
type Config struct {
	Drill  Drill  `toml:"drill"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Drill holds conversion defaults.
type Drill struct {
	IncludePlated bool   `toml:"include_plated"`
	FlipY         bool   `toml:"flip_y"`
	Generator     string `toml:"generator"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	MemorySize    int      `toml:"memory_size"`
	RedisAddr     string   `toml:"redis_addr"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// Server configures `pcbdrill serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "90m" or "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Drill: Drill{
			IncludePlated: true,
			Generator:     drill.DefaultGenerator,
		},
		Cache: Cache{
			Backend:       cache.BackendFile,
			TTL:           Duration{cache.TTLArtifact},
			MemorySize:    cache.DefaultMemorySize,
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: AppName,
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Load reads the file at path over Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML data over base. Unknown keys are rejected so typos
// surface instead of being ignored.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate checks values that the decoder accepts but the program cannot use.
func (c Config) Validate() error {
	if c.Drill.Generator != "" {
		if err := errors.ValidateGenerator(c.Drill.Generator); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "drill.generator")
		}
	}
	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendFile, cache.BackendMemory, cache.BackendRedis, cache.BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (want one of %v)", c.Cache.Backend, cache.Backends)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Cache.MemorySize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.memory_size must not be negative")
	}
	return nil
}

// CacheOptions returns the options for cache.Open. An empty Dir resolves to
// CacheDir.
func (c Config) CacheOptions() (cache.Options, error) {
	dir := c.Cache.Dir
	if dir == "" && c.Cache.Backend == cache.BackendFile {
		d, err := CacheDir()
		if err != nil {
			return cache.Options{}, err
		}
		dir = d
	}
	return cache.Options{
		Backend:       c.Cache.Backend,
		Dir:           dir,
		MemorySize:    c.Cache.MemorySize,
		RedisAddr:     c.Cache.RedisAddr,
		MongoURI:      c.Cache.MongoURI,
		MongoDatabase: c.Cache.MongoDatabase,
	}, nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Dir returns the configuration directory using the XDG convention.
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

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// CacheDir returns the file cache directory (~/.cache/pcbdrill/).
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
