package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// InitConfig writes a sample configuration file at the default location
// and returns its path.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	return path, InitConfigToPath(path, force)
}

// InitConfigToPath writes a sample configuration file at the given
// path. An existing file is only overwritten with force. A registries.d
// directory is created next to the file for per-registry configs.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	cfg := GetDefaultConfig()
	cfg.API.JWT.Secret = generateRandomSecret()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "registries.d"), 0750); err != nil {
		return fmt.Errorf("failed to create registries.d directory: %w", err)
	}

	return SaveConfig(cfg, path)
}

// generateRandomSecret returns a 64-character hex string (32 bytes of
// entropy) suitable as a development JWT secret.
func generateRandomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; an empty
		// secret fails validation later with a clear message.
		return ""
	}
	return hex.EncodeToString(buf)
}
