// Package config loads the streampair client configuration from YAML.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/streampair/streampair-go/pkg/discovery"
	"github.com/streampair/streampair-go/pkg/host"
	"github.com/streampair/streampair-go/pkg/pairing"
	"github.com/streampair/streampair-go/pkg/transport"
)

// DefaultStateDirName is the directory created under the user config dir.
const DefaultStateDirName = "streampair"

// Validation errors.
var (
	ErrInvalidUniqueID = errors.New("unique_id must be 16 hex characters")
	ErrInvalidTimeout  = errors.New("timeout must be positive")
	ErrInvalidLevel    = errors.New("unknown log level")
	ErrInvalidHost     = errors.New("invalid host entry")
)

// Config is the client configuration.
type Config struct {
	// DeviceName is sent to hosts as the client's display name.
	DeviceName string `yaml:"device_name"`

	// UniqueID tags every request to a host.
	UniqueID string `yaml:"unique_id"`

	// RequestTimeout bounds a single pairing request.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// StateDir holds the client identity and the hosts file.
	StateDir string `yaml:"state_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// ProtocolLog is an optional path for the CBOR protocol capture.
	ProtocolLog string `yaml:"protocol_log,omitempty"`

	// Discovery configures mDNS host discovery.
	Discovery DiscoveryConfig `yaml:"discovery"`

	// Hosts are statically configured hosts, seeded into the host store.
	Hosts []HostConfig `yaml:"hosts,omitempty"`
}

// DiscoveryConfig configures mDNS browsing.
type DiscoveryConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	Interface string        `yaml:"interface,omitempty"`
}

// HostConfig is a statically configured host.
type HostConfig struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name,omitempty"`
	Address    string `yaml:"address"`
	ServerType string `yaml:"server_type,omitempty"`
}

// LoadError reports a configuration file that could not be used.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DeviceName:     pairing.DefaultDeviceName,
		UniqueID:       transport.DefaultUniqueID,
		RequestTimeout: pairing.DefaultTimeout,
		StateDir:       defaultStateDir(),
		LogLevel:       "info",
		Discovery: DiscoveryConfig{
			Timeout: discovery.BrowseTimeout,
		},
	}
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + DefaultStateDirName
	}
	return filepath.Join(dir, DefaultStateDirName)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Message: "invalid configuration", Cause: err}
	}
	return cfg, nil
}

// Load reads the configuration file at path. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.DeviceName == "" {
		return errors.New("device_name is required")
	}
	if len(c.UniqueID) != 16 {
		return ErrInvalidUniqueID
	}
	if _, err := hex.DecodeString(c.UniqueID); err != nil {
		return ErrInvalidUniqueID
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout: %w", ErrInvalidTimeout)
	}
	if c.Discovery.Timeout <= 0 {
		return fmt.Errorf("discovery.timeout: %w", ErrInvalidTimeout)
	}
	if c.StateDir == "" {
		return errors.New("state_dir is required")
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Hosts))
	for i, h := range c.Hosts {
		id := strings.ToLower(strings.TrimSpace(h.ID))
		if id == "" || h.Address == "" {
			return fmt.Errorf("%w: hosts[%d] needs id and address", ErrInvalidHost, i)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidHost, h.ID)
		}
		seen[id] = true
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, c.LogLevel)
	}
}

// HostsPath returns the hosts file inside the state directory.
func (c *Config) HostsPath() string {
	return filepath.Join(c.StateDir, host.HostsFile)
}

// SeedHosts adds the static hosts to store. Existing records keep their
// pairing state; only name, address and server type are refreshed.
func (c *Config) SeedHosts(store host.Store) error {
	for _, hc := range c.Hosts {
		id := strings.ToLower(strings.TrimSpace(hc.ID))

		h, err := store.Get(id)
		switch {
		case err == nil:
		case errors.Is(err, host.ErrHostNotFound):
			h = &host.Host{ID: id, PairState: host.PairStateNotPaired}
		default:
			return err
		}

		h.Name = hc.Name
		h.Address = hc.Address
		if hc.ServerType != "" {
			h.ServerType = host.ParseServerType(hc.ServerType)
		}
		if err := store.Put(h); err != nil {
			return fmt.Errorf("seed host %s: %w", id, err)
		}
	}
	return nil
}
