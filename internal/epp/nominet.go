package epp

import "encoding/xml"

// Nominet registrar extensions: the tag list (served on a subordinate
// session logged in with only the nom-tag object URI), registrar-to-
// registrar release, the handshake that answers a pending release, and
// investigation locks.

// NominetTagList asks for the registrar tag directory. It is an info
// command with an empty list element.
type NominetTagList struct {
	XMLName xml.Name `xml:"http://www.nominet.org.uk/epp/xml/nom-tag-1.0 list"`
}

// NominetTagListData is the listData response payload.
type NominetTagListData struct {
	Tags []NominetTagInfo `xml:"infData"`
}

// NominetTagInfo is one registrar tag entry.
type NominetTagInfo struct {
	Tag       string `xml:"registrar-tag"`
	Name      string `xml:"name"`
	TradeName string `xml:"trad-name"`
	Handshake string `xml:"handshake"` // Y | N
}

// NominetRelease moves a domain to another registrar tag. It is carried
// as an update payload in the std-release namespace.
type NominetRelease struct {
	XMLName      xml.Name `xml:"http://www.nominet.org.uk/epp/xml/std-release-1.0 release"`
	DomainName   string   `xml:"domainName"`
	RegistrarTag string   `xml:"registrarTag"`
}

// NominetReleasePending is the response payload when the gaining registrar
// must handshake before the release completes.
type NominetReleasePending struct {
	MsgID string `xml:"msgID,attr,omitempty"`
	Raw   string `xml:",innerxml"`
}

// NominetHandshakeAccept accepts a pending release case, optionally
// assigning a new registrant.
type NominetHandshakeAccept struct {
	XMLName    xml.Name `xml:"http://www.nominet.org.uk/epp/xml/std-handshake-1.0 accept"`
	CaseID     string   `xml:"caseId"`
	Registrant string   `xml:"registrant,omitempty"`
}

// NominetHandshakeReject rejects a pending release case.
type NominetHandshakeReject struct {
	XMLName xml.Name `xml:"http://www.nominet.org.uk/epp/xml/std-handshake-1.0 reject"`
	CaseID  string   `xml:"caseId"`
}

// NominetHandshakeData is the hanData response payload listing the case
// and the domains it moved.
type NominetHandshakeData struct {
	CaseID  string   `xml:"caseId"`
	Domains []string `xml:"domainListData>domainName"`
}

// NominetLock applies or removes an investigation lock. Object selects the
// locked object type; the same payload serves lock and unlock updates.
type NominetLock struct {
	XMLName    xml.Name `xml:"http://www.nominet.org.uk/epp/xml/std-locks-1.0 lock"`
	Object     string   `xml:"object,attr"` // domain | contact
	Type       string   `xml:"type,attr"`   // investigation | opt-out
	DomainName string   `xml:"domainName,omitempty"`
	ContactID  string   `xml:"contactId,omitempty"`
}
