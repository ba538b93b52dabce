package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/registryops/eppproxy/internal/bytesize"
	"github.com/registryops/eppproxy/pkg/tlsconf"
)

// RegistryConfig is one registry connection, loaded from its own YAML
// file under the registry directory.
type RegistryConfig struct {
	// ID uniquely identifies the registry. Defaults to the file name
	// without extension.
	ID string `mapstructure:"id" yaml:"id"`

	// Type selects the server dialect: epp (default) or tmch for the
	// trademark clearinghouse.
	Type string `mapstructure:"type" validate:"omitempty,oneof=epp tmch" yaml:"type"`

	// Host is the registry endpoint as host:port.
	Host string `mapstructure:"host" validate:"required,hostname_port" yaml:"host"`

	// SourceAddress optionally binds the local side of the connection;
	// registries commonly allowlist source IPs.
	SourceAddress string `mapstructure:"source_address" yaml:"source_address,omitempty"`

	// Username and Password are the login credentials.
	Username string `mapstructure:"username" validate:"required" yaml:"username"`
	Password string `mapstructure:"password" validate:"required" yaml:"password"`

	// NewPassword, when set, is installed at the next login.
	NewPassword string `mapstructure:"new_password" yaml:"new_password,omitempty"`

	// Zones are the domain suffixes this registry is authoritative for.
	Zones []string `mapstructure:"zones" yaml:"zones,omitempty"`

	// Pipeline allows multiple commands in flight on the connection.
	// Off, commands are serialised with a response watchdog.
	Pipeline bool `mapstructure:"pipeline" yaml:"pipeline"`

	// Errata names server-specific quirks the encoders work around.
	Errata string `mapstructure:"errata" yaml:"errata,omitempty"`

	// NominetTagSession spawns a subordinate session against the
	// Nominet tag namespace for registrar tag listing.
	NominetTagSession bool `mapstructure:"nominet_tag_session" yaml:"nominet_tag_session,omitempty"`

	// QueueDepth bounds queued commands waiting for the connection.
	QueueDepth int `mapstructure:"queue_depth" yaml:"queue_depth,omitempty"`

	// KeepaliveInterval is the idle time before a hello frame.
	KeepaliveInterval time.Duration `mapstructure:"keepalive_interval" yaml:"keepalive_interval,omitempty"`

	// ResponseTimeout is the serial-mode and keepalive watchdog.
	ResponseTimeout time.Duration `mapstructure:"response_timeout" yaml:"response_timeout,omitempty"`

	// ReconnectDelay is the fixed pause between reconnect attempts.
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay" yaml:"reconnect_delay,omitempty"`

	// MaxFrame caps accepted frame sizes. Supports "512KB" style values.
	MaxFrame bytesize.ByteSize `mapstructure:"max_frame" yaml:"max_frame,omitempty"`

	// TLS is the connection's TLS material.
	TLS tlsconf.Config `mapstructure:"tls" yaml:"tls"`

	// DAC configures the Nominet availability-checker endpoints.
	DAC DACConfig `mapstructure:"dac" yaml:"dac"`
}

// DACConfig holds the ancillary Nominet DAC endpoints. Empty addresses
// disable the corresponding environment.
type DACConfig struct {
	RealTimeAddr  string        `mapstructure:"real_time_addr" yaml:"real_time_addr,omitempty"`
	TimeDelayAddr string        `mapstructure:"time_delay_addr" yaml:"time_delay_addr,omitempty"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
}

// Enabled reports whether any DAC endpoint is configured.
func (c DACConfig) Enabled() bool {
	return c.RealTimeAddr != "" || c.TimeDelayAddr != ""
}

// LoadRegistryDir reads every *.yaml/*.yml file in dir into a
// RegistryConfig. A missing directory yields an empty slice; a proxy
// with no registries is valid (it just serves status endpoints).
func LoadRegistryDir(dir string) ([]RegistryConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read registry directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]RegistryConfig, 0, len(names))
	for _, name := range names {
		cfg, err := loadRegistryFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}

func loadRegistryFile(path string) (RegistryConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return RegistryConfig{}, fmt.Errorf("read registry file %s: %w", path, err)
	}

	var cfg RegistryConfig
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return RegistryConfig{}, fmt.Errorf("unmarshal registry file %s: %w", path, err)
	}

	if cfg.ID == "" {
		base := filepath.Base(path)
		cfg.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if cfg.Type == "" {
		cfg.Type = "epp"
	}
	for i, zone := range cfg.Zones {
		cfg.Zones[i] = strings.ToLower(strings.TrimSpace(zone))
	}
	return cfg, nil
}
