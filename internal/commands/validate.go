package commands

import (
	"strings"
	"unicode"
)

// Input validation shared by the encoders. The limits come from the RFC
// schemas (clIDType, pwType); registries reject violations with opaque
// 2005s, so catching them here gives callers a usable message and keeps
// garbage off the wire.

// checkDomainName rejects empty and whitespace-only names. Fuller syntax
// checking is left to the registry, which is authoritative for its zone's
// label policy.
func checkDomainName(name string) error {
	if strings.TrimSpace(name) == "" {
		return Errf("domain name must not be empty")
	}
	return nil
}

// checkContactID enforces the clIDType bounds: 3-16 printable characters.
func checkContactID(id string) error {
	if len(id) < 3 || len(id) > 16 {
		return Errf("contact id must be 3-16 characters, got %d", len(id))
	}
	for _, r := range id {
		if !unicode.IsPrint(r) {
			return Errf("contact id contains non-printable character")
		}
	}
	return nil
}

// checkAuthInfo enforces the pwType bounds: 6-16 characters. Empty is
// allowed where the schema makes authInfo optional; callers that require
// it check presence themselves.
func checkAuthInfo(pw string) error {
	if pw == "" {
		return nil
	}
	if len(pw) < 6 || len(pw) > 16 {
		return Errf("authorization password must be 6-16 characters, got %d", len(pw))
	}
	return nil
}

// forbidsRegistrant reports whether the errata profile marks a registry
// as rejecting registrant elements on domain create and update (the
// thin-registry .com/.net model keeps no registrant data).
func forbidsRegistrant(f Features) bool {
	switch f.Errata() {
	case "verisign-com", "verisign-net", "verisign":
		return true
	}
	return false
}
