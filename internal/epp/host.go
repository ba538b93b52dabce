package epp

import "encoding/xml"

// host-1.0 object mapping (RFC 5732).

// HostCheck queries availability for host names.
type HostCheck struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:host-1.0 check"`
	Names   []string `xml:"name"`
}

// HostInfo requests one host object.
type HostInfo struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:host-1.0 info"`
	Name    string   `xml:"name"`
}

// HostCreate registers a host, with glue addresses when in-bailiwick.
type HostCreate struct {
	XMLName xml.Name   `xml:"urn:ietf:params:xml:ns:host-1.0 create"`
	Name    string     `xml:"name"`
	Addrs   []HostAddr `xml:"addr,omitempty"`
}

// HostDelete removes a host.
type HostDelete struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:host-1.0 delete"`
	Name    string   `xml:"name"`
}

// HostUpdate adds and removes addresses or statuses, and can rename.
type HostUpdate struct {
	XMLName xml.Name          `xml:"urn:ietf:params:xml:ns:host-1.0 update"`
	Name    string            `xml:"name"`
	Add     *HostUpdateAddRem `xml:"add,omitempty"`
	Rem     *HostUpdateAddRem `xml:"rem,omitempty"`
	Chg     *HostUpdateChange `xml:"chg,omitempty"`
}

// HostUpdateAddRem lists address and status deltas.
type HostUpdateAddRem struct {
	Addrs    []HostAddr   `xml:"addr,omitempty"`
	Statuses []HostStatus `xml:"status,omitempty"`
}

// HostUpdateChange renames the host.
type HostUpdateChange struct {
	Name string `xml:"name,omitempty"`
}

// HostAddr is an IP address with its version attribute (v4 or v6).
type HostAddr struct {
	IP      string `xml:"ip,attr,omitempty"`
	Address string `xml:",chardata"`
}

// HostStatus is a status value with optional reason text.
type HostStatus struct {
	S      string `xml:"s,attr"`
	Lang   string `xml:"lang,attr,omitempty"`
	Reason string `xml:",chardata"`
}

// ============================================================================
// Response payloads
// ============================================================================

// HostCheckData is the chkData payload.
type HostCheckData struct {
	Results []HostCheckResult `xml:"cd"`
}

// HostCheckResult reports one host's availability.
type HostCheckResult struct {
	Name   HostCheckName `xml:"name"`
	Reason string        `xml:"reason"`
}

// HostCheckName carries the avail flag as an attribute on the name.
type HostCheckName struct {
	Available bool   `xml:"avail,attr"`
	Name      string `xml:",chardata"`
}

// HostInfoData is the infData payload.
type HostInfoData struct {
	Name     string       `xml:"name"`
	ROID     string       `xml:"roid"`
	Statuses []HostStatus `xml:"status"`
	Addrs    []HostAddr   `xml:"addr"`
	ClID     string       `xml:"clID"`
	CrID     string       `xml:"crID"`
	CrDate   string       `xml:"crDate"`
	UpID     string       `xml:"upID"`
	UpDate   string       `xml:"upDate"`
	TrDate   string       `xml:"trDate"`
}

// HostCreateData is the creData payload.
type HostCreateData struct {
	Name   string `xml:"name"`
	CrDate string `xml:"crDate"`
}
