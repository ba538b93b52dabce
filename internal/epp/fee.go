package epp

import "encoding/xml"

// Fee extension, all deployed versions. 0.5 through 0.9 are the legacy
// draft shapes (per-domain check elements); 0.11 and 1.0 (RFC 8748) apply
// one command element to every object in the enclosing check. The encoder
// emits the highest version a server advertises; the decoders normalise
// every version into one record upstream.

// FeeVersions orders the deployed versions from newest to oldest; feature
// negotiation walks it to pick the version to speak.
var FeeVersions = []string{NSFee10, NSFee011, NSFee09, NSFee08, NSFee07, NSFee05}

// FeeAmount is one fee or credit value. The descriptive attributes vary in
// presence across versions; absent attributes stay empty.
type FeeAmount struct {
	Description string `xml:"description,attr,omitempty"`
	Refundable  string `xml:"refundable,attr,omitempty"`
	GracePeriod string `xml:"grace-period,attr,omitempty"`
	Applied     string `xml:"applied,attr,omitempty"`
	Value       string `xml:",chardata"`
}

// FeeCommandEl is the command element of the legacy shapes: the verb as
// character data with phase attributes.
type FeeCommandEl struct {
	Phase    string `xml:"phase,attr,omitempty"`
	SubPhase string `xml:"subphase,attr,omitempty"`
	Name     string `xml:",chardata"`
}

// ============================================================================
// Check command extensions
// ============================================================================

// FeeCheckLegacy is the 0.5/0.7/0.8 check extension: one domain element per
// name, each with its own currency, command, and period. XMLName is set by
// the encoder to {version namespace, "check"}.
type FeeCheckLegacy struct {
	XMLName xml.Name
	Domains []FeeCheckDomainLegacy `xml:"domain"`
}

// FeeCheckDomainLegacy is one per-domain fee query.
type FeeCheckDomainLegacy struct {
	Name     string       `xml:"name"`
	Currency string       `xml:"currency,omitempty"`
	Command  FeeCommandEl `xml:"command"`
	Period   *Period      `xml:"period,omitempty"`
}

// FeeCheck09 is the 0.9 check extension, which generalised domains into
// objects addressed by objURI and objID.
type FeeCheck09 struct {
	XMLName xml.Name           `xml:"urn:ietf:params:xml:ns:fee-0.9 check"`
	Objects []FeeCheckObject09 `xml:"object"`
}

// FeeCheckObject09 is one per-object fee query.
type FeeCheckObject09 struct {
	ObjURI   string       `xml:"objURI,attr,omitempty"`
	ObjID    FeeObjID     `xml:"objID"`
	Currency string       `xml:"currency,omitempty"`
	Command  FeeCommandEl `xml:"command"`
	Period   *Period      `xml:"period,omitempty"`
}

// FeeObjID names the object, with the element attribute saying which of
// its fields the id refers to.
type FeeObjID struct {
	Element string `xml:"element,attr,omitempty"`
	ID      string `xml:",chardata"`
}

// FeeCheckModern is the 0.11/1.0 check extension: one command applied to
// all names of the enclosing check. XMLName is set by the encoder.
type FeeCheckModern struct {
	XMLName  xml.Name
	Currency string           `xml:"currency,omitempty"`
	Command  FeeCommandModern `xml:"command"`
}

// FeeCommandModern is the modern command element: the verb as an attribute.
type FeeCommandModern struct {
	Name     string  `xml:"name,attr"`
	Phase    string  `xml:"phase,attr,omitempty"`
	SubPhase string  `xml:"subphase,attr,omitempty"`
	Period   *Period `xml:"period,omitempty"`
}

// ============================================================================
// Transform command extensions (create, renew, transfer, update)
// ============================================================================

// FeeTransform is the fee agreement attached to a transform command. The
// shape is identical across versions; XMLName is set by the encoder to
// {version namespace, verb}.
type FeeTransform struct {
	XMLName  xml.Name
	Currency string      `xml:"currency,omitempty"`
	Fees     []FeeAmount `xml:"fee"`
}

// ============================================================================
// Response extensions
// ============================================================================

// FeeCheckDataLegacy is the 0.5-0.9 chkData: one cd element per queried
// object. 0.9 reports objID where older versions report name.
type FeeCheckDataLegacy struct {
	CDs []FeeCheckCDLegacy `xml:"cd"`
}

// FeeCheckCDLegacy is one per-object fee answer.
type FeeCheckCDLegacy struct {
	Name     string       `xml:"name"`
	ObjID    string       `xml:"objID"`
	Currency string       `xml:"currency"`
	Command  FeeCommandEl `xml:"command"`
	Period   *Period      `xml:"period"`
	Fees     []FeeAmount  `xml:"fee"`
	Class    string       `xml:"class"`
}

// ObjectName coalesces the 0.9 objID and the older name element.
func (cd *FeeCheckCDLegacy) ObjectName() string {
	if cd.ObjID != "" {
		return cd.ObjID
	}
	return cd.Name
}

// FeeCheckDataModern is the 0.11/1.0 chkData.
type FeeCheckDataModern struct {
	Currency string             `xml:"currency"`
	CDs      []FeeCheckCDModern `xml:"cd"`
}

// FeeCheckCDModern is one per-object fee answer in the modern shape.
type FeeCheckCDModern struct {
	Avail    bool               `xml:"avail,attr"`
	ObjID    string             `xml:"objID"`
	Class    string             `xml:"class"`
	Commands []FeeCommandResult `xml:"command"`
	Reason   string             `xml:"reason"`
}

// FeeCommandResult is the per-command fee breakdown of the modern shape.
type FeeCommandResult struct {
	Name     string      `xml:"name,attr"`
	Standard bool        `xml:"standard,attr"`
	Period   *Period     `xml:"period"`
	Fees     []FeeAmount `xml:"fee"`
	Credits  []FeeAmount `xml:"credit"`
	Reason   string      `xml:"reason"`
}

// FeeTransformData is a creData/renData/trnData/updData fee response,
// identical in shape across versions.
type FeeTransformData struct {
	Currency    string      `xml:"currency"`
	Fees        []FeeAmount `xml:"fee"`
	Credits     []FeeAmount `xml:"credit"`
	Balance     string      `xml:"balance"`
	CreditLimit string      `xml:"creditLimit"`
}
