package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the assembled configuration: struct tags on the
// global file, then each registry file, then cross-registry rules the
// tags cannot express.
func Validate(cfg *Config) error {
	v := validator.New()

	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("global config: %w", err)
	}

	seenIDs := make(map[string]string, len(cfg.Registries))
	seenZones := make(map[string]string)
	for i := range cfg.Registries {
		reg := &cfg.Registries[i]
		if err := v.Struct(reg); err != nil {
			return fmt.Errorf("registry %q: %w", reg.ID, err)
		}

		if other, dup := seenIDs[reg.ID]; dup {
			return fmt.Errorf("registry id %q used by %q and %q", reg.ID, other, reg.ID)
		}
		seenIDs[reg.ID] = reg.ID

		for _, zone := range reg.Zones {
			if other, dup := seenZones[zone]; dup {
				return fmt.Errorf("zone %q claimed by both %q and %q", zone, other, reg.ID)
			}
			seenZones[zone] = reg.ID
		}

		if err := validateRegistryTLS(reg); err != nil {
			return fmt.Errorf("registry %q: %w", reg.ID, err)
		}

		if reg.Type == "tmch" && reg.DAC.Enabled() {
			return fmt.Errorf("registry %q: dac endpoints have no meaning on a tmch server", reg.ID)
		}
	}

	if cfg.API.IsEnabled() && len(cfg.API.Users) > 0 && len(cfg.API.JWT.Secret) < 32 {
		return fmt.Errorf("api: jwt secret must be at least 32 characters when users are configured")
	}
	return nil
}

func validateRegistryTLS(reg *RegistryConfig) error {
	tls := &reg.TLS
	if tls.PKCS12File != "" && (tls.PKCS11KeyID != "" || tls.PKCS11KeyLabel != "") {
		return fmt.Errorf("tls: pkcs12_file and pkcs11 key selection are mutually exclusive")
	}
	if (tls.PKCS11KeyID != "" || tls.PKCS11KeyLabel != "") && tls.CertChainFile == "" {
		return fmt.Errorf("tls: pkcs11 key needs cert_chain_file")
	}
	return nil
}
