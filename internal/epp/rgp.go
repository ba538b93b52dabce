package epp

import "encoding/xml"

// rgp-1.0 redemption grace period extension (RFC 3915). Restore is carried
// as an extension on a domain update whose add/rem/chg are empty.

// RGPUpdate is the command extension payload.
type RGPUpdate struct {
	XMLName xml.Name   `xml:"urn:ietf:params:xml:ns:rgp-1.0 update"`
	Restore RGPRestore `xml:"restore"`
}

// RGPRestore is either a bare request or a report with the filing data.
type RGPRestore struct {
	Op     string     `xml:"op,attr"` // request | report
	Report *RGPReport `xml:"report,omitempty"`
}

// RGPReport is the restore report: registration data from before and after
// deletion plus the statements the registrar attests to.
type RGPReport struct {
	PreData    string   `xml:"preData"`
	PostData   string   `xml:"postData"`
	DelTime    string   `xml:"delTime"`
	ResTime    string   `xml:"resTime"`
	ResReason  string   `xml:"resReason"`
	Statements []string `xml:"statement"`
	Other      string   `xml:"other,omitempty"`
}

// RGPUpdateData is the upData response extension.
type RGPUpdateData struct {
	Statuses []RGPStatus `xml:"rgpStatus"`
}

// RGPInfoData is the infData response extension on domain info.
type RGPInfoData struct {
	Statuses []RGPStatus `xml:"rgpStatus"`
}

// RGPStatus is one grace-period status value.
type RGPStatus struct {
	S string `xml:"s,attr"`
}
