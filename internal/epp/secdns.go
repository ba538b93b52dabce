package epp

import "encoding/xml"

// secDNS-1.1 DNSSEC extension (RFC 5910). Servers take either DS data or
// key data, as declared in their policy; the structs allow both and the
// encoder enforces the one the caller supplied.

// SecDNSCreate is the command extension on domain create.
type SecDNSCreate struct {
	XMLName    xml.Name        `xml:"urn:ietf:params:xml:ns:secDNS-1.1 create"`
	MaxSigLife int             `xml:"maxSigLife,omitempty"`
	DSData     []SecDNSDSData  `xml:"dsData,omitempty"`
	KeyData    []SecDNSKeyData `xml:"keyData,omitempty"`
}

// SecDNSUpdate is the command extension on domain update.
type SecDNSUpdate struct {
	XMLName xml.Name      `xml:"urn:ietf:params:xml:ns:secDNS-1.1 update"`
	Urgent  bool          `xml:"urgent,attr,omitempty"`
	Rem     *SecDNSRemove `xml:"rem,omitempty"`
	Add     *SecDNSAddRem `xml:"add,omitempty"`
	Chg     *SecDNSChange `xml:"chg,omitempty"`
}

// SecDNSAddRem lists DS or key records to add.
type SecDNSAddRem struct {
	DSData  []SecDNSDSData  `xml:"dsData,omitempty"`
	KeyData []SecDNSKeyData `xml:"keyData,omitempty"`
}

// SecDNSRemove lists records to remove, or all of them.
type SecDNSRemove struct {
	All     *bool           `xml:"all,omitempty"`
	DSData  []SecDNSDSData  `xml:"dsData,omitempty"`
	KeyData []SecDNSKeyData `xml:"keyData,omitempty"`
}

// SecDNSChange updates the signature life policy.
type SecDNSChange struct {
	MaxSigLife int `xml:"maxSigLife,omitempty"`
}

// SecDNSDSData is one delegation signer record, optionally with the key
// that produced it.
type SecDNSDSData struct {
	KeyTag     uint16         `xml:"keyTag"`
	Alg        uint8          `xml:"alg"`
	DigestType uint8          `xml:"digestType"`
	Digest     string         `xml:"digest"`
	KeyData    *SecDNSKeyData `xml:"keyData,omitempty"`
}

// SecDNSKeyData is one DNSKEY record.
type SecDNSKeyData struct {
	Flags    uint16 `xml:"flags"`
	Protocol uint8  `xml:"protocol"`
	Alg      uint8  `xml:"alg"`
	PubKey   string `xml:"pubKey"`
}

// SecDNSInfoData is the infData response extension on domain info.
type SecDNSInfoData struct {
	MaxSigLife int             `xml:"maxSigLife"`
	DSData     []SecDNSDSData  `xml:"dsData"`
	KeyData    []SecDNSKeyData `xml:"keyData"`
}
