package epp

import "encoding/xml"

// domain-1.0 object mapping (RFC 5731). Command payloads are marshaled
// into the envelope verbs; *Data types are unmarshaled from resData.

// DomainCheck queries availability for up to a handful of names.
type DomainCheck struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:domain-1.0 check"`
	Names   []string `xml:"name"`
}

// DomainInfo requests the full object. Hosts selects which delegation
// data comes back (all, del, sub, none).
type DomainInfo struct {
	XMLName  xml.Name       `xml:"urn:ietf:params:xml:ns:domain-1.0 info"`
	Name     DomainInfoName `xml:"name"`
	AuthInfo *AuthInfo      `xml:"authInfo,omitempty"`
}

// DomainInfoName is the queried name with the hosts filter attribute.
type DomainInfoName struct {
	Hosts string `xml:"hosts,attr,omitempty"`
	Name  string `xml:",chardata"`
}

// DomainCreate registers a name.
type DomainCreate struct {
	XMLName    xml.Name        `xml:"urn:ietf:params:xml:ns:domain-1.0 create"`
	Name       string          `xml:"name"`
	Period     *Period         `xml:"period,omitempty"`
	NS         *DomainNS       `xml:"ns,omitempty"`
	Registrant string          `xml:"registrant,omitempty"`
	Contacts   []DomainContact `xml:"contact,omitempty"`
	AuthInfo   *AuthInfo       `xml:"authInfo,omitempty"`
}

// DomainDelete removes a name.
type DomainDelete struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:domain-1.0 delete"`
	Name    string   `xml:"name"`
}

// DomainRenew extends a registration. CurExpDate is the bare date the
// server currently holds, a guard against double renewal.
type DomainRenew struct {
	XMLName    xml.Name `xml:"urn:ietf:params:xml:ns:domain-1.0 renew"`
	Name       string   `xml:"name"`
	CurExpDate string   `xml:"curExpDate"`
	Period     *Period  `xml:"period,omitempty"`
}

// DomainTransfer is the payload for every transfer op; the op attribute
// lives on the envelope's Transfer wrapper.
type DomainTransfer struct {
	XMLName  xml.Name  `xml:"urn:ietf:params:xml:ns:domain-1.0 transfer"`
	Name     string    `xml:"name"`
	Period   *Period   `xml:"period,omitempty"`
	AuthInfo *AuthInfo `xml:"authInfo,omitempty"`
}

// DomainUpdate adds, removes, and changes attributes in one command.
type DomainUpdate struct {
	XMLName xml.Name            `xml:"urn:ietf:params:xml:ns:domain-1.0 update"`
	Name    string              `xml:"name"`
	Add     *DomainUpdateAddRem `xml:"add,omitempty"`
	Rem     *DomainUpdateAddRem `xml:"rem,omitempty"`
	Chg     *DomainUpdateChange `xml:"chg,omitempty"`
}

// DomainUpdateAddRem lists delegation, contact, and status deltas.
type DomainUpdateAddRem struct {
	NS       *DomainNS       `xml:"ns,omitempty"`
	Contacts []DomainContact `xml:"contact,omitempty"`
	Statuses []DomainStatus  `xml:"status,omitempty"`
}

// DomainUpdateChange replaces the registrant or auth info.
type DomainUpdateChange struct {
	Registrant string    `xml:"registrant,omitempty"`
	AuthInfo   *AuthInfo `xml:"authInfo,omitempty"`
}

// DomainNS is a delegation set: host objects or host attributes, never
// both on the wire.
type DomainNS struct {
	HostObjs  []string         `xml:"hostObj,omitempty"`
	HostAttrs []DomainHostAttr `xml:"hostAttr,omitempty"`
}

// DomainHostAttr is an in-bailiwick nameserver with glue addresses.
type DomainHostAttr struct {
	Name  string     `xml:"hostName"`
	Addrs []HostAddr `xml:"hostAddr,omitempty"`
}

// DomainContact associates a contact id with a role (admin, tech, billing).
type DomainContact struct {
	Type string `xml:"type,attr"`
	ID   string `xml:",chardata"`
}

// DomainStatus is a status value with optional reason text.
type DomainStatus struct {
	S      string `xml:"s,attr"`
	Lang   string `xml:"lang,attr,omitempty"`
	Reason string `xml:",chardata"`
}

// ============================================================================
// Response payloads
// ============================================================================

// DomainCheckData is the chkData payload.
type DomainCheckData struct {
	Results []DomainCheckResult `xml:"cd"`
}

// DomainCheckResult reports one name's availability and, when taken, the
// server's reason.
type DomainCheckResult struct {
	Name   DomainCheckName `xml:"name"`
	Reason string          `xml:"reason"`
}

// DomainCheckName carries the avail flag as an attribute on the name.
type DomainCheckName struct {
	Available bool   `xml:"avail,attr"`
	Name      string `xml:",chardata"`
}

// DomainInfoData is the infData payload.
type DomainInfoData struct {
	Name       string          `xml:"name"`
	ROID       string          `xml:"roid"`
	Statuses   []DomainStatus  `xml:"status"`
	Registrant string          `xml:"registrant"`
	Contacts   []DomainContact `xml:"contact"`
	NS         *DomainNS       `xml:"ns"`
	Hosts      []string        `xml:"host"`
	ClID       string          `xml:"clID"`
	CrID       string          `xml:"crID"`
	CrDate     string          `xml:"crDate"`
	UpID       string          `xml:"upID"`
	UpDate     string          `xml:"upDate"`
	ExDate     string          `xml:"exDate"`
	TrDate     string          `xml:"trDate"`
	AuthInfo   *AuthInfo       `xml:"authInfo"`
}

// DomainCreateData is the creData payload.
type DomainCreateData struct {
	Name   string `xml:"name"`
	CrDate string `xml:"crDate"`
	ExDate string `xml:"exDate"`
}

// DomainRenewData is the renData payload.
type DomainRenewData struct {
	Name   string `xml:"name"`
	ExDate string `xml:"exDate"`
}

// DomainTransferData is the trnData payload, returned by every transfer op
// and by transfer poll messages.
type DomainTransferData struct {
	Name     string `xml:"name"`
	TrStatus string `xml:"trStatus"`
	ReID     string `xml:"reID"`
	ReDate   string `xml:"reDate"`
	AcID     string `xml:"acID"`
	AcDate   string `xml:"acDate"`
	ExDate   string `xml:"exDate"`
}

// DomainPanData is the pending-action notification delivered by poll after
// a 1001 create or update completes offline.
type DomainPanData struct {
	Name   DomainPanName `xml:"name"`
	PaTRID TrID          `xml:"paTRID"`
	PaDate string        `xml:"paDate"`
}

// DomainPanName carries the paResult attribute on the acted-on name.
type DomainPanName struct {
	Result bool   `xml:"paResult,attr"`
	Name   string `xml:",chardata"`
}
