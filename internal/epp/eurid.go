package epp

import "encoding/xml"

// EURid registrar extensions: hit points (rate-limit accounting),
// registration limits, DNS quality scoring, and DNSSEC discount
// eligibility. All four are info commands with their own namespaces.

// EuridHitPointsInfo queries the registrar's hit-point consumption.
type EuridHitPointsInfo struct {
	XMLName xml.Name `xml:"http://www.eurid.eu/xml/epp/registrarHitPoints-1.0 info"`
}

// EuridHitPointsData is the infData response payload.
type EuridHitPointsData struct {
	HitPoints    uint64 `xml:"nbrHitPoints"`
	MaxHitPoints uint64 `xml:"maxNbrHitPoints"`
	BlockedUntil string `xml:"blockedUntil"`
}

// EuridRegistrationLimitInfo queries the registrar's registration cap.
type EuridRegistrationLimitInfo struct {
	XMLName xml.Name `xml:"http://www.eurid.eu/xml/epp/registrationLimit-1.1 info"`
}

// EuridRegistrationLimitData is the infData response payload. MaxMonthly
// is absent for registrars without a cap.
type EuridRegistrationLimitData struct {
	Monthly      uint64  `xml:"monthlyRegistrations"`
	MaxMonthly   *uint64 `xml:"maxMonthlyRegistrations"`
	LimitedUntil string  `xml:"limitedUntil"`
}

// EuridDNSQualityInfo queries the DNS quality score of a domain.
type EuridDNSQualityInfo struct {
	XMLName xml.Name `xml:"http://www.eurid.eu/xml/epp/dnsQuality-2.0 info"`
	Name    string   `xml:"name"`
}

// EuridDNSQualityData is the infData response payload. The score is a
// string on the wire (the schema allows "n/a").
type EuridDNSQualityData struct {
	Name      string `xml:"name"`
	CheckedAt string `xml:"checkedDate"`
	Score     string `xml:"score"`
}

// EuridDNSSECEligibilityInfo queries DNSSEC discount eligibility.
type EuridDNSSECEligibilityInfo struct {
	XMLName xml.Name `xml:"http://www.eurid.eu/xml/epp/dnssecEligibility-1.0 info"`
	Name    string   `xml:"name"`
}

// EuridDNSSECEligibilityData is the infData response payload.
type EuridDNSSECEligibilityData struct {
	Name     string `xml:"name"`
	Eligible bool   `xml:"eligible"`
	Message  string `xml:"msg"`
	Code     int    `xml:"code"`
}
