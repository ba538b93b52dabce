package epp

import "encoding/xml"

// contact-1.0 object mapping (RFC 5733).

// ContactCheck queries availability for contact ids.
type ContactCheck struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:contact-1.0 check"`
	IDs     []string `xml:"id"`
}

// ContactInfo requests one contact object.
type ContactInfo struct {
	XMLName  xml.Name  `xml:"urn:ietf:params:xml:ns:contact-1.0 info"`
	ID       string    `xml:"id"`
	AuthInfo *AuthInfo `xml:"authInfo,omitempty"`
}

// ContactCreate registers a contact. PostalInfos carries one or two
// entries, internationalised and localised.
type ContactCreate struct {
	XMLName     xml.Name         `xml:"urn:ietf:params:xml:ns:contact-1.0 create"`
	ID          string           `xml:"id"`
	PostalInfos []PostalInfo     `xml:"postalInfo"`
	Voice       *E164            `xml:"voice,omitempty"`
	Fax         *E164            `xml:"fax,omitempty"`
	Email       string           `xml:"email"`
	AuthInfo    *AuthInfo        `xml:"authInfo,omitempty"`
	Disclose    *ContactDisclose `xml:"disclose,omitempty"`
}

// ContactDelete removes a contact.
type ContactDelete struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:contact-1.0 delete"`
	ID      string   `xml:"id"`
}

// ContactTransfer is the payload for every contact transfer op.
type ContactTransfer struct {
	XMLName  xml.Name  `xml:"urn:ietf:params:xml:ns:contact-1.0 transfer"`
	ID       string    `xml:"id"`
	AuthInfo *AuthInfo `xml:"authInfo,omitempty"`
}

// ContactUpdate adds and removes statuses and changes attributes.
type ContactUpdate struct {
	XMLName xml.Name             `xml:"urn:ietf:params:xml:ns:contact-1.0 update"`
	ID      string               `xml:"id"`
	Add     *ContactUpdateAddRem `xml:"add,omitempty"`
	Rem     *ContactUpdateAddRem `xml:"rem,omitempty"`
	Chg     *ContactUpdateChange `xml:"chg,omitempty"`
}

// ContactUpdateAddRem lists status deltas.
type ContactUpdateAddRem struct {
	Statuses []ContactStatus `xml:"status,omitempty"`
}

// ContactUpdateChange replaces postal info, phone numbers, email, auth
// info, or disclosure preferences.
type ContactUpdateChange struct {
	PostalInfos []PostalInfo     `xml:"postalInfo,omitempty"`
	Voice       *E164            `xml:"voice,omitempty"`
	Fax         *E164            `xml:"fax,omitempty"`
	Email       string           `xml:"email,omitempty"`
	AuthInfo    *AuthInfo        `xml:"authInfo,omitempty"`
	Disclose    *ContactDisclose `xml:"disclose,omitempty"`
}

// ContactStatus is a status value with optional reason text.
type ContactStatus struct {
	S      string `xml:"s,attr"`
	Lang   string `xml:"lang,attr,omitempty"`
	Reason string `xml:",chardata"`
}

// PostalInfo is one name-and-address block, typed int or loc.
type PostalInfo struct {
	Type string      `xml:"type,attr"`
	Name string      `xml:"name"`
	Org  string      `xml:"org,omitempty"`
	Addr ContactAddr `xml:"addr"`
}

// ContactAddr is a postal address; up to three street lines.
type ContactAddr struct {
	Streets []string `xml:"street"`
	City    string   `xml:"city"`
	SP      string   `xml:"sp,omitempty"`
	PC      string   `xml:"pc,omitempty"`
	CC      string   `xml:"cc"`
}

// E164 is a phone number with an optional extension attribute.
type E164 struct {
	X      string `xml:"x,attr,omitempty"`
	Number string `xml:",chardata"`
}

// ContactDisclose selects which elements the flag applies to.
type ContactDisclose struct {
	Flag  bool             `xml:"flag,attr"`
	Names []DiscloseMember `xml:"name,omitempty"`
	Orgs  []DiscloseMember `xml:"org,omitempty"`
	Addrs []DiscloseMember `xml:"addr,omitempty"`
	Voice *struct{}        `xml:"voice,omitempty"`
	Fax   *struct{}        `xml:"fax,omitempty"`
	Email *struct{}        `xml:"email,omitempty"`
}

// DiscloseMember scopes a disclose element to a postal-info type.
type DiscloseMember struct {
	Type string `xml:"type,attr,omitempty"`
}

// ============================================================================
// Response payloads
// ============================================================================

// ContactCheckData is the chkData payload.
type ContactCheckData struct {
	Results []ContactCheckResult `xml:"cd"`
}

// ContactCheckResult reports one id's availability.
type ContactCheckResult struct {
	ID     ContactCheckID `xml:"id"`
	Reason string         `xml:"reason"`
}

// ContactCheckID carries the avail flag as an attribute on the id.
type ContactCheckID struct {
	Available bool   `xml:"avail,attr"`
	ID        string `xml:",chardata"`
}

// ContactInfoData is the infData payload.
type ContactInfoData struct {
	ID          string           `xml:"id"`
	ROID        string           `xml:"roid"`
	Statuses    []ContactStatus  `xml:"status"`
	PostalInfos []PostalInfo     `xml:"postalInfo"`
	Voice       *E164            `xml:"voice"`
	Fax         *E164            `xml:"fax"`
	Email       string           `xml:"email"`
	ClID        string           `xml:"clID"`
	CrID        string           `xml:"crID"`
	CrDate      string           `xml:"crDate"`
	UpID        string           `xml:"upID"`
	UpDate      string           `xml:"upDate"`
	TrDate      string           `xml:"trDate"`
	AuthInfo    *AuthInfo        `xml:"authInfo"`
	Disclose    *ContactDisclose `xml:"disclose"`
}

// ContactCreateData is the creData payload.
type ContactCreateData struct {
	ID     string `xml:"id"`
	CrDate string `xml:"crDate"`
}

// ContactTransferData is the trnData payload.
type ContactTransferData struct {
	ID       string `xml:"id"`
	TrStatus string `xml:"trStatus"`
	ReID     string `xml:"reID"`
	ReDate   string `xml:"reDate"`
	AcID     string `xml:"acID"`
	AcDate   string `xml:"acDate"`
}

// ContactPanData is the pending-action notification for contacts.
type ContactPanData struct {
	ID     ContactPanID `xml:"id"`
	PaTRID TrID         `xml:"paTRID"`
	PaDate string       `xml:"paDate"`
}

// ContactPanID carries the paResult attribute on the acted-on id.
type ContactPanID struct {
	Result bool   `xml:"paResult,attr"`
	ID     string `xml:",chardata"`
}
