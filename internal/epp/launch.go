package epp

import "encoding/xml"

// launch-1.0 launch phase extension (RFC 8334). The proxy uses it for
// claims checks and for passing claims notices on create.

// LaunchCheck turns a domain check into a claims (or availability) check
// for the named phase.
type LaunchCheck struct {
	XMLName xml.Name    `xml:"urn:ietf:params:xml:ns:launch-1.0 check"`
	Type    string      `xml:"type,attr,omitempty"` // claims | avail | trademark
	Phase   LaunchPhase `xml:"phase"`
}

// LaunchCreate attaches phase and claims-notice data to a domain create.
type LaunchCreate struct {
	XMLName xml.Name       `xml:"urn:ietf:params:xml:ns:launch-1.0 create"`
	Type    string         `xml:"type,attr,omitempty"`
	Phase   LaunchPhase    `xml:"phase"`
	Notices []LaunchNotice `xml:"notice,omitempty"`
}

// LaunchPhase names a launch phase, with the name attribute carrying the
// sub-phase for custom phases.
type LaunchPhase struct {
	Name  string `xml:"name,attr,omitempty"`
	Phase string `xml:",chardata"` // sunrise | landrush | claims | open | custom
}

// LaunchNotice is a claims notice acknowledgement.
type LaunchNotice struct {
	NoticeID     LaunchNoticeID `xml:"noticeID"`
	NotAfter     string         `xml:"notAfter"`
	AcceptedDate string         `xml:"acceptedDate"`
}

// LaunchNoticeID is the notice identifier with its validator.
type LaunchNoticeID struct {
	ValidatorID string `xml:"validatorID,attr,omitempty"`
	ID          string `xml:",chardata"`
}

// LaunchCheckData is the chkData response extension.
type LaunchCheckData struct {
	Phase   *LaunchPhase        `xml:"phase"`
	Results []LaunchCheckResult `xml:"cd"`
}

// LaunchCheckResult reports whether a matching mark exists and the claim
// keys needed to retrieve notices.
type LaunchCheckResult struct {
	Name      LaunchCheckName  `xml:"name"`
	ClaimKeys []LaunchClaimKey `xml:"claimKey"`
}

// LaunchCheckName carries the exists flag on the checked name.
type LaunchCheckName struct {
	Exists bool   `xml:"exists,attr"`
	Name   string `xml:",chardata"`
}

// LaunchClaimKey is one claim key with its validator.
type LaunchClaimKey struct {
	ValidatorID string `xml:"validatorID,attr,omitempty"`
	Key         string `xml:",chardata"`
}

// LaunchCreateData is the creData response extension carrying the
// application id assigned in phases that queue applications.
type LaunchCreateData struct {
	Phase         *LaunchPhase `xml:"phase"`
	ApplicationID string       `xml:"applicationID"`
}
