// Package tlsconf builds per-registry TLS client configurations:
// server verification with optional name and trust-store overrides, and
// client certificates from either a PKCS#12 bundle on disk or a PKCS#11
// hardware key paired with a PEM chain.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net"
	"os"

	"github.com/ThalesIgnite/crypto11"
	"software.sslmate.com/src/go-pkcs12"
)

// Config describes one registry's TLS material.
type Config struct {
	// ServerName overrides the hostname used for certificate
	// verification; empty verifies against the dialed host.
	ServerName string `mapstructure:"server_name"`

	// RootCAFiles replace the system trust store when present.
	RootCAFiles []string `mapstructure:"root_ca_files"`

	// DangerSkipVerify disables server certificate verification. Only
	// for registry OT&E environments with broken chains.
	DangerSkipVerify bool `mapstructure:"danger_skip_verify"`

	// PKCS12File and PKCS12Password select a client certificate bundle
	// on disk.
	PKCS12File     string `mapstructure:"pkcs12_file"`
	PKCS12Password string `mapstructure:"pkcs12_password"`

	// PKCS11KeyID or PKCS11KeyLabel select a hardware-held key; the
	// certificate chain then comes from CertChainFile as PEM.
	PKCS11KeyID    string `mapstructure:"pkcs11_key_id"`
	PKCS11KeyLabel string `mapstructure:"pkcs11_key_label"`
	CertChainFile  string `mapstructure:"cert_chain_file"`
}

// HSMConfig opens the PKCS#11 module shared by every hardware-backed
// registry.
type HSMConfig struct {
	ModulePath string `mapstructure:"module_path"`
	TokenLabel string `mapstructure:"token_label"`
	PIN        string `mapstructure:"pin"`
}

// OpenHSM configures the PKCS#11 context. Returns nil without error
// when no module path is configured.
func OpenHSM(cfg HSMConfig) (*crypto11.Context, error) {
	if cfg.ModulePath == "" {
		return nil, nil
	}
	ctx, err := crypto11.Configure(&crypto11.Config{
		Path:       cfg.ModulePath,
		TokenLabel: cfg.TokenLabel,
		Pin:        cfg.PIN,
	})
	if err != nil {
		return nil, fmt.Errorf("open pkcs11 module %s: %w", cfg.ModulePath, err)
	}
	return ctx, nil
}

// Build renders the *tls.Config for one registry. host is the dial
// target (host:port) used for the default server name; hsm may be nil
// when no registry uses hardware keys.
func Build(cfg Config, host string, hsm *crypto11.Context) (*tls.Config, error) {
	out := &tls.Config{MinVersion: tls.VersionTLS12}

	out.ServerName = cfg.ServerName
	if out.ServerName == "" {
		name, _, err := net.SplitHostPort(host)
		if err != nil {
			name = host
		}
		out.ServerName = name
	}

	if cfg.DangerSkipVerify {
		out.InsecureSkipVerify = true
	}

	if len(cfg.RootCAFiles) > 0 {
		pool := x509.NewCertPool()
		for _, path := range cfg.RootCAFiles {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read root ca %s: %w", path, err)
			}
			if !pool.AppendCertsFromPEM(data) {
				return nil, fmt.Errorf("root ca %s holds no certificates", path)
			}
		}
		out.RootCAs = pool
	}

	cert, err := clientCertificate(cfg, hsm)
	if err != nil {
		return nil, err
	}
	if cert != nil {
		out.Certificates = []tls.Certificate{*cert}
	}
	return out, nil
}

func clientCertificate(cfg Config, hsm *crypto11.Context) (*tls.Certificate, error) {
	switch {
	case cfg.PKCS12File != "":
		return pkcs12Certificate(cfg.PKCS12File, cfg.PKCS12Password)
	case cfg.PKCS11KeyID != "" || cfg.PKCS11KeyLabel != "":
		return pkcs11Certificate(cfg, hsm)
	default:
		return nil, nil
	}
}

func pkcs12Certificate(path, password string) (*tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pkcs12 bundle %s: %w", path, err)
	}
	key, leaf, chain, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return nil, fmt.Errorf("decode pkcs12 bundle %s: %w", path, err)
	}

	cert := &tls.Certificate{
		Certificate: [][]byte{leaf.Raw},
		PrivateKey:  key,
		Leaf:        leaf,
	}
	for _, ca := range chain {
		cert.Certificate = append(cert.Certificate, ca.Raw)
	}
	return cert, nil
}

func pkcs11Certificate(cfg Config, hsm *crypto11.Context) (*tls.Certificate, error) {
	if hsm == nil {
		return nil, fmt.Errorf("pkcs11 key requested but no hsm module is configured")
	}
	if cfg.CertChainFile == "" {
		return nil, fmt.Errorf("pkcs11 key requires cert_chain_file")
	}

	var id, label []byte
	if cfg.PKCS11KeyID != "" {
		id = []byte(cfg.PKCS11KeyID)
	}
	if cfg.PKCS11KeyLabel != "" {
		label = []byte(cfg.PKCS11KeyLabel)
	}
	signer, err := hsm.FindKeyPair(id, label)
	if err != nil {
		return nil, fmt.Errorf("find pkcs11 key: %w", err)
	}
	if signer == nil {
		return nil, fmt.Errorf("pkcs11 key %q/%q not found", cfg.PKCS11KeyID, cfg.PKCS11KeyLabel)
	}

	chain, err := loadPEMChain(cfg.CertChainFile)
	if err != nil {
		return nil, err
	}
	return &tls.Certificate{Certificate: chain, PrivateKey: signer}, nil
}

// loadPEMChain reads every CERTIFICATE block of a PEM file as DER.
func loadPEMChain(path string) ([][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cert chain %s: %w", path, err)
	}

	var chain [][]byte
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type == "CERTIFICATE" {
			chain = append(chain, block.Bytes)
		}
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("cert chain %s holds no certificates", path)
	}
	return chain, nil
}
