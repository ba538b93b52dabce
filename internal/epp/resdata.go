package epp

// ResData is the response data payload. encoding/xml matches each child
// element by namespace and local name, so exactly the fields present on
// the wire are populated; decoders check that the field matching their
// command is set and treat anything else as a payload mismatch.
type ResData struct {
	DomainCheck    *DomainCheckData    `xml:"urn:ietf:params:xml:ns:domain-1.0 chkData"`
	DomainInfo     *DomainInfoData     `xml:"urn:ietf:params:xml:ns:domain-1.0 infData"`
	DomainCreate   *DomainCreateData   `xml:"urn:ietf:params:xml:ns:domain-1.0 creData"`
	DomainRenew    *DomainRenewData    `xml:"urn:ietf:params:xml:ns:domain-1.0 renData"`
	DomainTransfer *DomainTransferData `xml:"urn:ietf:params:xml:ns:domain-1.0 trnData"`
	DomainPan      *DomainPanData      `xml:"urn:ietf:params:xml:ns:domain-1.0 panData"`

	HostCheck  *HostCheckData  `xml:"urn:ietf:params:xml:ns:host-1.0 chkData"`
	HostInfo   *HostInfoData   `xml:"urn:ietf:params:xml:ns:host-1.0 infData"`
	HostCreate *HostCreateData `xml:"urn:ietf:params:xml:ns:host-1.0 creData"`

	ContactCheck    *ContactCheckData    `xml:"urn:ietf:params:xml:ns:contact-1.0 chkData"`
	ContactInfo     *ContactInfoData     `xml:"urn:ietf:params:xml:ns:contact-1.0 infData"`
	ContactCreate   *ContactCreateData   `xml:"urn:ietf:params:xml:ns:contact-1.0 creData"`
	ContactTransfer *ContactTransferData `xml:"urn:ietf:params:xml:ns:contact-1.0 trnData"`
	ContactPan      *ContactPanData      `xml:"urn:ietf:params:xml:ns:contact-1.0 panData"`

	NominetTagList   *NominetTagListData   `xml:"http://www.nominet.org.uk/epp/xml/nom-tag-1.0 listData"`
	NominetHandshake *NominetHandshakeData `xml:"http://www.nominet.org.uk/epp/xml/std-handshake-1.0 hanData"`

	EuridHitPoints         *EuridHitPointsData         `xml:"http://www.eurid.eu/xml/epp/registrarHitPoints-1.0 infData"`
	EuridRegistrationLimit *EuridRegistrationLimitData `xml:"http://www.eurid.eu/xml/epp/registrationLimit-1.1 infData"`
	EuridDNSQuality        *EuridDNSQualityData        `xml:"http://www.eurid.eu/xml/epp/dnsQuality-2.0 infData"`
	EuridDNSSECEligibility *EuridDNSSECEligibilityData `xml:"http://www.eurid.eu/xml/epp/dnssecEligibility-1.0 infData"`

	Balance *BalanceData `xml:"http://www.verisign.com/epp/balance-1.0 infData"`

	Maintenance *MaintInfoData `xml:"urn:ietf:params:xml:ns:epp:maintenance-1.0 infData"`

	TMCHCheck    *TMCHCheckData    `xml:"urn:ietf:params:xml:ns:tmch-1.1 chkData"`
	TMCHInfo     *TMCHInfoData     `xml:"urn:ietf:params:xml:ns:tmch-1.1 infData"`
	TMCHCreate   *TMCHCreateData   `xml:"urn:ietf:params:xml:ns:tmch-1.1 creData"`
	TMCHRenew    *TMCHRenewData    `xml:"urn:ietf:params:xml:ns:tmch-1.1 renData"`
	TMCHTransfer *TMCHTransferData `xml:"urn:ietf:params:xml:ns:tmch-1.1 trnData"`
}

// RespExtension is the response extension block, one optional field per
// extension family and version. Fee transform answers are enumerated per
// version because the namespace is part of the match; FeeTransform and
// FeeCheck coalesce them for decoders.
type RespExtension struct {
	RGPUpdate *RGPUpdateData `xml:"urn:ietf:params:xml:ns:rgp-1.0 upData"`
	RGPInfo   *RGPInfoData   `xml:"urn:ietf:params:xml:ns:rgp-1.0 infData"`

	SecDNSInfo *SecDNSInfoData `xml:"urn:ietf:params:xml:ns:secDNS-1.1 infData"`

	LaunchCheck  *LaunchCheckData  `xml:"urn:ietf:params:xml:ns:launch-1.0 chkData"`
	LaunchCreate *LaunchCreateData `xml:"urn:ietf:params:xml:ns:launch-1.0 creData"`

	ChangePoll *ChangePollData `xml:"urn:ietf:params:xml:ns:changePoll-1.0 changeData"`

	LoginSec *LoginSecData `xml:"urn:ietf:params:xml:ns:epp:loginSec-1.0 loginSecData"`

	NominetReleasePending *NominetReleasePending `xml:"http://www.nominet.org.uk/epp/xml/std-release-1.0 releasePending"`

	FeeChk05  *FeeCheckDataLegacy `xml:"urn:ietf:params:xml:ns:fee-0.5 chkData"`
	FeeChk07  *FeeCheckDataLegacy `xml:"urn:ietf:params:xml:ns:fee-0.7 chkData"`
	FeeChk08  *FeeCheckDataLegacy `xml:"urn:ietf:params:xml:ns:fee-0.8 chkData"`
	FeeChk09  *FeeCheckDataLegacy `xml:"urn:ietf:params:xml:ns:fee-0.9 chkData"`
	FeeChk011 *FeeCheckDataModern `xml:"urn:ietf:params:xml:ns:fee-0.11 chkData"`
	FeeChk10  *FeeCheckDataModern `xml:"urn:ietf:params:xml:ns:epp:fee-1.0 chkData"`

	FeeCre05  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.5 creData"`
	FeeCre07  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.7 creData"`
	FeeCre08  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.8 creData"`
	FeeCre09  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.9 creData"`
	FeeCre011 *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.11 creData"`
	FeeCre10  *FeeTransformData `xml:"urn:ietf:params:xml:ns:epp:fee-1.0 creData"`

	FeeRen05  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.5 renData"`
	FeeRen07  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.7 renData"`
	FeeRen08  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.8 renData"`
	FeeRen09  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.9 renData"`
	FeeRen011 *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.11 renData"`
	FeeRen10  *FeeTransformData `xml:"urn:ietf:params:xml:ns:epp:fee-1.0 renData"`

	FeeTrn05  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.5 trnData"`
	FeeTrn07  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.7 trnData"`
	FeeTrn08  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.8 trnData"`
	FeeTrn09  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.9 trnData"`
	FeeTrn011 *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.11 trnData"`
	FeeTrn10  *FeeTransformData `xml:"urn:ietf:params:xml:ns:epp:fee-1.0 trnData"`

	FeeUpd05  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.5 updData"`
	FeeUpd07  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.7 updData"`
	FeeUpd08  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.8 updData"`
	FeeUpd09  *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.9 updData"`
	FeeUpd011 *FeeTransformData `xml:"urn:ietf:params:xml:ns:fee-0.11 updData"`
	FeeUpd10  *FeeTransformData `xml:"urn:ietf:params:xml:ns:epp:fee-1.0 updData"`
}

// FeeTransform returns the fee transform answer for the given verb
// regardless of the version the server spoke, nil when absent. Verb is
// one of create, renew, transfer, update.
func (e *RespExtension) FeeTransform(verb string) *FeeTransformData {
	if e == nil {
		return nil
	}
	var candidates []*FeeTransformData
	switch verb {
	case "create":
		candidates = []*FeeTransformData{e.FeeCre10, e.FeeCre011, e.FeeCre09, e.FeeCre08, e.FeeCre07, e.FeeCre05}
	case "renew":
		candidates = []*FeeTransformData{e.FeeRen10, e.FeeRen011, e.FeeRen09, e.FeeRen08, e.FeeRen07, e.FeeRen05}
	case "transfer":
		candidates = []*FeeTransformData{e.FeeTrn10, e.FeeTrn011, e.FeeTrn09, e.FeeTrn08, e.FeeTrn07, e.FeeTrn05}
	case "update":
		candidates = []*FeeTransformData{e.FeeUpd10, e.FeeUpd011, e.FeeUpd09, e.FeeUpd08, e.FeeUpd07, e.FeeUpd05}
	}
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// FeeCheckLegacyData returns whichever legacy-shape check answer the
// server sent, nil when none.
func (e *RespExtension) FeeCheckLegacyData() *FeeCheckDataLegacy {
	if e == nil {
		return nil
	}
	for _, c := range []*FeeCheckDataLegacy{e.FeeChk09, e.FeeChk08, e.FeeChk07, e.FeeChk05} {
		if c != nil {
			return c
		}
	}
	return nil
}

// FeeCheckModernData returns whichever modern-shape check answer the
// server sent, nil when none.
func (e *RespExtension) FeeCheckModernData() *FeeCheckDataModern {
	if e == nil {
		return nil
	}
	if e.FeeChk10 != nil {
		return e.FeeChk10
	}
	return e.FeeChk011
}
