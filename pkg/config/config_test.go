package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registryops/eppproxy/internal/bytesize"
	"github.com/registryops/eppproxy/pkg/api"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

const globalYAML = `
logging:
  level: debug
  format: json
shutdown_timeout: 10s
metrics:
  enabled: true
audit:
  backend: fs
  fs:
    directory: /tmp/audit
`

const nominetYAML = `
host: epp.nominet.invalid:700
username: EXAMPLE-TAG
password: hunter22
zones: [" UK ", "co.uk"]
pipeline: true
nominet_tag_session: true
response_timeout: 20s
max_frame: 512KB
dac:
  real_time_addr: dac.nominet.invalid:2043
`

const verisignYAML = `
id: verisign-com
host: epp.verisign.invalid:700
username: registrar
password: secret
zones: [com]
errata: verisign-com
`

func writeTestTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), globalYAML)
	writeFile(t, filepath.Join(dir, "registries.d", "nominet.yaml"), nominetYAML)
	writeFile(t, filepath.Join(dir, "registries.d", "verisign.yaml"), verisignYAML)
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeTestTree(t)

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	t.Run("GlobalValues", func(t *testing.T) {
		assert.Equal(t, "DEBUG", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, "fs", cfg.Audit.Backend)
	})

	t.Run("DefaultsFillGaps", func(t *testing.T) {
		assert.Equal(t, "stdout", cfg.Logging.Output)
		assert.Equal(t, 9090, cfg.Metrics.Port)
		assert.Equal(t, 8700, cfg.API.Port)
		assert.Equal(t, 10*time.Second, cfg.TLSHandshakeTimeout)
	})

	t.Run("RegistryDirNextToConfig", func(t *testing.T) {
		assert.Equal(t, filepath.Join(dir, "registries.d"), cfg.RegistryDir)
		require.Len(t, cfg.Registries, 2)
	})

	t.Run("RegistryValues", func(t *testing.T) {
		// Sorted by file name: nominet before verisign.
		nominet := cfg.Registries[0]
		assert.Equal(t, "nominet", nominet.ID) // from the file name
		assert.Equal(t, "epp", nominet.Type)
		assert.True(t, nominet.Pipeline)
		assert.True(t, nominet.NominetTagSession)
		assert.Equal(t, 20*time.Second, nominet.ResponseTimeout)
		assert.Equal(t, bytesize.ByteSize(512000), nominet.MaxFrame)
		assert.Equal(t, []string{"uk", "co.uk"}, nominet.Zones)
		assert.True(t, nominet.DAC.Enabled())

		verisign := cfg.Registries[1]
		assert.Equal(t, "verisign-com", verisign.ID) // explicit id wins
		assert.Equal(t, "verisign-com", verisign.Errata)
		assert.False(t, verisign.DAC.Enabled())
	})
}

func TestLoadWithoutConfigFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Empty(t, cfg.Registries)
}

func TestEnvOverride(t *testing.T) {
	dir := writeTestTree(t)
	t.Setenv("EPPPROXY_LOGGING_FORMAT", "text")

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestValidation(t *testing.T) {
	base := func() *Config {
		cfg := GetDefaultConfig()
		cfg.Registries = []RegistryConfig{
			{ID: "a", Type: "epp", Host: "a.invalid:700", Username: "u", Password: "p", Zones: []string{"uk"}},
			{ID: "b", Type: "epp", Host: "b.invalid:700", Username: "u", Password: "p", Zones: []string{"com"}},
		}
		return cfg
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, Validate(base()))
	})

	t.Run("DuplicateID", func(t *testing.T) {
		cfg := base()
		cfg.Registries[1].ID = "a"
		assert.Error(t, Validate(cfg))
	})

	t.Run("DuplicateZone", func(t *testing.T) {
		cfg := base()
		cfg.Registries[1].Zones = []string{"uk"}
		assert.Error(t, Validate(cfg))
	})

	t.Run("MissingHost", func(t *testing.T) {
		cfg := base()
		cfg.Registries[0].Host = ""
		assert.Error(t, Validate(cfg))
	})

	t.Run("BadType", func(t *testing.T) {
		cfg := base()
		cfg.Registries[0].Type = "whois"
		assert.Error(t, Validate(cfg))
	})

	t.Run("PKCS11NeedsChain", func(t *testing.T) {
		cfg := base()
		cfg.Registries[0].TLS.PKCS11KeyLabel = "epp-key"
		assert.Error(t, Validate(cfg))

		cfg.Registries[0].TLS.CertChainFile = "/etc/eppproxy/chain.pem"
		assert.NoError(t, Validate(cfg))
	})

	t.Run("ConflictingClientCertSources", func(t *testing.T) {
		cfg := base()
		cfg.Registries[0].TLS.PKCS12File = "/etc/eppproxy/client.p12"
		cfg.Registries[0].TLS.PKCS11KeyID = "01"
		cfg.Registries[0].TLS.CertChainFile = "/etc/eppproxy/chain.pem"
		assert.Error(t, Validate(cfg))
	})

	t.Run("DACOnTMCH", func(t *testing.T) {
		cfg := base()
		cfg.Registries[0].Type = "tmch"
		cfg.Registries[0].DAC.RealTimeAddr = "dac.invalid:2043"
		assert.Error(t, Validate(cfg))
	})

	t.Run("ShortJWTSecretWithUsers", func(t *testing.T) {
		cfg := base()
		cfg.API.Users = []api.UserConfig{{Username: "ops", PasswordHash: "$2a$10$x"}}
		cfg.API.JWT.Secret = "short"
		assert.Error(t, Validate(cfg))

		cfg.API.JWT.Secret = "0123456789abcdef0123456789abcdef"
		assert.NoError(t, Validate(cfg))
	})
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Logging.Level = "WARN"
	require.NoError(t, SaveConfig(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "WARN", loaded.Logging.Level)
}

func TestLoadRegistryDirMissing(t *testing.T) {
	regs, err := LoadRegistryDir(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, regs)
}
