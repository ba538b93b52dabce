package commands

import (
	"time"

	"github.com/registryops/eppproxy/internal/epp"
)

// Domain object commands (RFC 5731) with the RGP, secDNS, launch, and fee
// extensions.

func init() {
	register(OpDomainCheck, &handler{name: "domain check", encode: encodeDomainCheck, decode: decodeDomainCheck})
	register(OpDomainClaimsCheck, &handler{name: "domain claims check", encode: encodeDomainClaimsCheck, decode: decodeDomainClaimsCheck})
	register(OpDomainInfo, &handler{name: "domain info", encode: encodeDomainInfo, decode: decodeDomainInfo})
	register(OpDomainCreate, &handler{name: "domain create", encode: encodeDomainCreate, decode: decodeDomainCreate})
	register(OpDomainDelete, &handler{name: "domain delete", encode: encodeDomainDelete, decode: decodeDomainDelete})
	register(OpDomainUpdate, &handler{name: "domain update", encode: encodeDomainUpdate, decode: decodeDomainUpdate})
	register(OpDomainRenew, &handler{name: "domain renew", encode: encodeDomainRenew, decode: decodeDomainRenew})
	register(OpDomainTransfer, &handler{name: "domain transfer", encode: encodeDomainTransfer, decode: decodeDomainTransfer})
	register(OpDomainRestore, &handler{name: "domain restore", encode: encodeDomainRestore, decode: decodeDomainRestore})
}

// ============================================================================
// Shared typed records
// ============================================================================

// DomainContact links a contact id to a role on a domain.
type DomainContact struct {
	Role string // admin | tech | billing
	ID   string
}

// Nameserver is one delegation entry. With addresses present it is sent
// as a host attribute (glue); without, as a host object reference.
type Nameserver struct {
	Host string
	V4   []string
	V6   []string
}

// SecDNSData carries DS or key records for create. Servers accept one
// form or the other per policy; the caller supplies whichever applies.
type SecDNSData struct {
	MaxSigLife int
	DS         []DSRecord
	Keys       []KeyRecord
}

// DSRecord is one delegation signer record.
type DSRecord struct {
	KeyTag     uint16
	Algorithm  uint8
	DigestType uint8
	Digest     string
}

// KeyRecord is one DNSKEY record.
type KeyRecord struct {
	Flags     uint16
	Protocol  uint8
	Algorithm uint8
	PublicKey string
}

// SecDNSUpdate is the DS/key delta on a domain update.
type SecDNSUpdate struct {
	Urgent     bool
	RemoveAll  bool
	AddDS      []DSRecord
	AddKeys    []KeyRecord
	RemoveDS   []DSRecord
	RemoveKeys []KeyRecord
	MaxSigLife int
}

// ClaimsNotice acknowledges a trademark claims notice on create.
type ClaimsNotice struct {
	ValidatorID  string
	NoticeID     string
	NotAfter     time.Time
	AcceptedDate time.Time
}

// DomainStatus is one status value with its optional reason.
type DomainStatus struct {
	Status string
	Reason string
}

// ============================================================================
// Check
// ============================================================================

// DomainCheckRequest queries availability, optionally with a fee query.
type DomainCheckRequest struct {
	Domains []string
	Fee     *FeeCheckQuery
}

func (*DomainCheckRequest) Op() Op { return OpDomainCheck }

// DomainCheckResponse reports per-name availability.
type DomainCheckResponse struct {
	Results []DomainCheckResult
}

// DomainCheckResult is one name's availability, reason when taken, and
// fee quote when one was requested.
type DomainCheckResult struct {
	Name      string
	Available bool
	Reason    string
	Fee       *FeeQuote
}

func encodeDomainCheck(f Features, req Request) (*epp.Command, error) {
	r := req.(*DomainCheckRequest)
	if !f.HasObject(epp.NSDomain) {
		return nil, Unsupported("domain mapping")
	}
	if len(r.Domains) == 0 {
		return nil, Errf("at least one domain name is required")
	}
	for _, name := range r.Domains {
		if err := checkDomainName(name); err != nil {
			return nil, err
		}
	}

	cmd := &epp.Command{Check: &epp.Check{Payload: &epp.DomainCheck{Names: r.Domains}}}
	if r.Fee != nil {
		version, ok := feeVersion(f)
		if !ok {
			return nil, Unsupported("fee extension")
		}
		addExtension(cmd, buildFeeCheck(version, r.Domains, r.Fee))
	}
	return cmd, nil
}

func decodeDomainCheck(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.DomainCheck == nil {
		return nil, mismatch(OpDomainCheck)
	}

	quotes := decodeFeeQuotes(extOf(resp))
	out := &DomainCheckResponse{}
	for _, cd := range resp.ResData.DomainCheck.Results {
		out.Results = append(out.Results, DomainCheckResult{
			Name:      cd.Name.Name,
			Available: cd.Name.Available,
			Reason:    cd.Reason,
			Fee:       quotes[cd.Name.Name],
		})
	}
	return out, nil
}

// ============================================================================
// Claims check
// ============================================================================

// DomainClaimsCheckRequest asks whether trademark claims exist for the
// names in the given launch phase.
type DomainClaimsCheckRequest struct {
	Domains []string
	Phase   string // claims unless the registry runs a custom phase
}

func (*DomainClaimsCheckRequest) Op() Op { return OpDomainClaimsCheck }

// DomainClaimsCheckResponse reports per-name claim existence and keys.
type DomainClaimsCheckResponse struct {
	Results []ClaimsCheckResult
}

// ClaimsCheckResult is one name's claims answer.
type ClaimsCheckResult struct {
	Name      string
	Exists    bool
	ClaimKeys []ClaimKey
}

// ClaimKey retrieves the claims notice from the validator.
type ClaimKey struct {
	ValidatorID string
	Key         string
}

func encodeDomainClaimsCheck(f Features, req Request) (*epp.Command, error) {
	r := req.(*DomainClaimsCheckRequest)
	if !f.HasObject(epp.NSDomain) {
		return nil, Unsupported("domain mapping")
	}
	if !f.HasExtension(epp.NSLaunch) {
		return nil, Unsupported("launch extension")
	}
	if len(r.Domains) == 0 {
		return nil, Errf("at least one domain name is required")
	}
	for _, name := range r.Domains {
		if err := checkDomainName(name); err != nil {
			return nil, err
		}
	}

	phase := r.Phase
	if phase == "" {
		phase = "claims"
	}
	cmd := &epp.Command{Check: &epp.Check{Payload: &epp.DomainCheck{Names: r.Domains}}}
	addExtension(cmd, &epp.LaunchCheck{
		Type:  "claims",
		Phase: epp.LaunchPhase{Phase: phase},
	})
	return cmd, nil
}

func decodeDomainClaimsCheck(resp *epp.Response) (any, error) {
	ext := extOf(resp)
	if ext.LaunchCheck == nil {
		return nil, mismatch(OpDomainClaimsCheck)
	}

	out := &DomainClaimsCheckResponse{}
	for _, cd := range ext.LaunchCheck.Results {
		result := ClaimsCheckResult{Name: cd.Name.Name, Exists: cd.Name.Exists}
		for _, key := range cd.ClaimKeys {
			result.ClaimKeys = append(result.ClaimKeys, ClaimKey{ValidatorID: key.ValidatorID, Key: key.Key})
		}
		out.Results = append(out.Results, result)
	}
	return out, nil
}

// ============================================================================
// Info
// ============================================================================

// DomainInfoRequest fetches one domain. Hosts filters the delegation data
// (all, del, sub, none); empty means the server default.
type DomainInfoRequest struct {
	Domain   string
	Hosts    string
	AuthInfo string
}

func (*DomainInfoRequest) Op() Op { return OpDomainInfo }

// DomainInfoResponse is the full object.
type DomainInfoResponse struct {
	Name             string
	ROID             string
	Statuses         []DomainStatus
	Registrant       string
	Contacts         []DomainContact
	Nameservers      []Nameserver
	SubordinateHosts []string
	SponsoringID     string
	CreatedBy        string
	Created          time.Time
	UpdatedBy        string
	Updated          time.Time
	Expires          time.Time
	Transferred      time.Time
	AuthInfo         string
	RGPStatuses      []string
	SecDNS           *SecDNSData
}

func encodeDomainInfo(f Features, req Request) (*epp.Command, error) {
	r := req.(*DomainInfoRequest)
	if !f.HasObject(epp.NSDomain) {
		return nil, Unsupported("domain mapping")
	}
	if err := checkDomainName(r.Domain); err != nil {
		return nil, err
	}
	if err := checkAuthInfo(r.AuthInfo); err != nil {
		return nil, err
	}

	info := &epp.DomainInfo{Name: epp.DomainInfoName{Hosts: r.Hosts, Name: r.Domain}}
	if r.AuthInfo != "" {
		info.AuthInfo = epp.NewAuthInfo(r.AuthInfo)
	}
	return &epp.Command{Info: &epp.Info{Payload: info}}, nil
}

func decodeDomainInfo(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.DomainInfo == nil {
		return nil, mismatch(OpDomainInfo)
	}
	data := resp.ResData.DomainInfo

	out := &DomainInfoResponse{
		Name:             data.Name,
		ROID:             data.ROID,
		Registrant:       data.Registrant,
		SubordinateHosts: data.Hosts,
		SponsoringID:     data.ClID,
		CreatedBy:        data.CrID,
		Created:          parseTime(data.CrDate),
		UpdatedBy:        data.UpID,
		Updated:          parseTime(data.UpDate),
		Expires:          parseTime(data.ExDate),
		Transferred:      parseTime(data.TrDate),
		AuthInfo:         data.AuthInfo.Password(),
	}
	for _, st := range data.Statuses {
		out.Statuses = append(out.Statuses, DomainStatus{Status: st.S, Reason: st.Reason})
	}
	for _, c := range data.Contacts {
		out.Contacts = append(out.Contacts, DomainContact{Role: c.Type, ID: c.ID})
	}
	out.Nameservers = decodeNameservers(data.NS)

	ext := extOf(resp)
	if ext.RGPInfo != nil {
		for _, st := range ext.RGPInfo.Statuses {
			out.RGPStatuses = append(out.RGPStatuses, st.S)
		}
	}
	if ext.SecDNSInfo != nil {
		out.SecDNS = decodeSecDNSInfo(ext.SecDNSInfo)
	}
	return out, nil
}

func decodeNameservers(ns *epp.DomainNS) []Nameserver {
	if ns == nil {
		return nil
	}
	var out []Nameserver
	for _, host := range ns.HostObjs {
		out = append(out, Nameserver{Host: host})
	}
	for _, attr := range ns.HostAttrs {
		entry := Nameserver{Host: attr.Name}
		for _, addr := range attr.Addrs {
			if addr.IP == "v6" {
				entry.V6 = append(entry.V6, addr.Address)
			} else {
				entry.V4 = append(entry.V4, addr.Address)
			}
		}
		out = append(out, entry)
	}
	return out
}

func decodeSecDNSInfo(data *epp.SecDNSInfoData) *SecDNSData {
	out := &SecDNSData{MaxSigLife: data.MaxSigLife}
	for _, ds := range data.DSData {
		out.DS = append(out.DS, DSRecord{KeyTag: ds.KeyTag, Algorithm: ds.Alg, DigestType: ds.DigestType, Digest: ds.Digest})
	}
	for _, key := range data.KeyData {
		out.Keys = append(out.Keys, KeyRecord{Flags: key.Flags, Protocol: key.Protocol, Algorithm: key.Alg, PublicKey: key.PubKey})
	}
	return out
}

// ============================================================================
// Create
// ============================================================================

// DomainCreateRequest registers a name.
type DomainCreateRequest struct {
	Domain      string
	Period      int // years, zero for the server default
	Registrant  string
	Contacts    []DomainContact
	Nameservers []Nameserver
	AuthInfo    string
	SecDNS      *SecDNSData
	LaunchPhase string
	Notices     []ClaimsNotice
	Fee         *FeeAgreement
}

func (*DomainCreateRequest) Op() Op { return OpDomainCreate }

// DomainCreateResponse confirms the registration.
type DomainCreateResponse struct {
	Name    string
	Created time.Time
	Expires time.Time
	Fee     *FeeTotals
}

func encodeDomainCreate(f Features, req Request) (*epp.Command, error) {
	r := req.(*DomainCreateRequest)
	if !f.HasObject(epp.NSDomain) {
		return nil, Unsupported("domain mapping")
	}
	if err := checkDomainName(r.Domain); err != nil {
		return nil, err
	}
	if err := checkAuthInfo(r.AuthInfo); err != nil {
		return nil, err
	}
	for _, c := range r.Contacts {
		if err := checkContactID(c.ID); err != nil {
			return nil, err
		}
	}

	create := &epp.DomainCreate{Name: r.Domain}
	if r.Period > 0 {
		create.Period = epp.NewPeriod("y", r.Period)
	}
	if !forbidsRegistrant(f) {
		create.Registrant = r.Registrant
		for _, c := range r.Contacts {
			create.Contacts = append(create.Contacts, epp.DomainContact{Type: c.Role, ID: c.ID})
		}
	}
	create.NS = encodeNameservers(r.Nameservers)
	if r.AuthInfo != "" {
		create.AuthInfo = epp.NewAuthInfo(r.AuthInfo)
	}

	cmd := &epp.Command{Create: &epp.Create{Payload: create}}

	if r.SecDNS != nil {
		if !f.HasExtension(epp.NSSecDNS) {
			return nil, Unsupported("secDNS extension")
		}
		addExtension(cmd, encodeSecDNSCreate(r.SecDNS))
	}
	if r.LaunchPhase != "" || len(r.Notices) > 0 {
		if !f.HasExtension(epp.NSLaunch) {
			return nil, Unsupported("launch extension")
		}
		addExtension(cmd, encodeLaunchCreate(r.LaunchPhase, r.Notices))
	}
	if r.Fee != nil {
		version, ok := feeVersion(f)
		if !ok {
			return nil, Unsupported("fee extension")
		}
		addExtension(cmd, buildFeeTransform(version, "create", r.Fee))
	}
	return cmd, nil
}

func encodeNameservers(servers []Nameserver) *epp.DomainNS {
	if len(servers) == 0 {
		return nil
	}
	ns := &epp.DomainNS{}
	for _, server := range servers {
		if len(server.V4) == 0 && len(server.V6) == 0 {
			ns.HostObjs = append(ns.HostObjs, server.Host)
			continue
		}
		attr := epp.DomainHostAttr{Name: server.Host}
		for _, addr := range server.V4 {
			attr.Addrs = append(attr.Addrs, epp.HostAddr{IP: "v4", Address: addr})
		}
		for _, addr := range server.V6 {
			attr.Addrs = append(attr.Addrs, epp.HostAddr{IP: "v6", Address: addr})
		}
		ns.HostAttrs = append(ns.HostAttrs, attr)
	}
	return ns
}

func encodeSecDNSCreate(data *SecDNSData) *epp.SecDNSCreate {
	create := &epp.SecDNSCreate{MaxSigLife: data.MaxSigLife}
	create.DSData = encodeDSRecords(data.DS)
	create.KeyData = encodeKeyRecords(data.Keys)
	return create
}

func encodeDSRecords(records []DSRecord) []epp.SecDNSDSData {
	var out []epp.SecDNSDSData
	for _, ds := range records {
		out = append(out, epp.SecDNSDSData{KeyTag: ds.KeyTag, Alg: ds.Algorithm, DigestType: ds.DigestType, Digest: ds.Digest})
	}
	return out
}

func encodeKeyRecords(records []KeyRecord) []epp.SecDNSKeyData {
	var out []epp.SecDNSKeyData
	for _, key := range records {
		out = append(out, epp.SecDNSKeyData{Flags: key.Flags, Protocol: key.Protocol, Alg: key.Algorithm, PubKey: key.PublicKey})
	}
	return out
}

func encodeLaunchCreate(phase string, notices []ClaimsNotice) *epp.LaunchCreate {
	if phase == "" {
		phase = "claims"
	}
	create := &epp.LaunchCreate{Phase: epp.LaunchPhase{Phase: phase}}
	for _, notice := range notices {
		create.Notices = append(create.Notices, epp.LaunchNotice{
			NoticeID:     epp.LaunchNoticeID{ValidatorID: notice.ValidatorID, ID: notice.NoticeID},
			NotAfter:     notice.NotAfter.UTC().Format(time.RFC3339),
			AcceptedDate: notice.AcceptedDate.UTC().Format(time.RFC3339),
		})
	}
	return create
}

func decodeDomainCreate(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.DomainCreate == nil {
		return nil, mismatch(OpDomainCreate)
	}
	data := resp.ResData.DomainCreate
	return &DomainCreateResponse{
		Name:    data.Name,
		Created: parseTime(data.CrDate),
		Expires: parseTime(data.ExDate),
		Fee:     decodeFeeTotals(extOf(resp), "create"),
	}, nil
}

// ============================================================================
// Delete
// ============================================================================

// DomainDeleteRequest removes a name.
type DomainDeleteRequest struct {
	Domain string
}

func (*DomainDeleteRequest) Op() Op { return OpDomainDelete }

// DomainDeleteResponse is empty; the envelope carries the outcome (1001
// when the delete is queued for the redemption grace period).
type DomainDeleteResponse struct{}

func encodeDomainDelete(f Features, req Request) (*epp.Command, error) {
	r := req.(*DomainDeleteRequest)
	if !f.HasObject(epp.NSDomain) {
		return nil, Unsupported("domain mapping")
	}
	if err := checkDomainName(r.Domain); err != nil {
		return nil, err
	}
	return &epp.Command{Delete: &epp.Delete{Payload: &epp.DomainDelete{Name: r.Domain}}}, nil
}

func decodeDomainDelete(resp *epp.Response) (any, error) {
	return &DomainDeleteResponse{}, nil
}

// ============================================================================
// Update
// ============================================================================

// DomainUpdateRequest adds, removes, and changes attributes in one
// command. At least one delta or change must be present.
type DomainUpdateRequest struct {
	Domain string

	AddNameservers    []Nameserver
	RemoveNameservers []Nameserver
	AddContacts       []DomainContact
	RemoveContacts    []DomainContact
	AddStatuses       []DomainStatus
	RemoveStatuses    []DomainStatus

	NewRegistrant string
	NewAuthInfo   *string

	SecDNS *SecDNSUpdate
	Fee    *FeeAgreement
}

func (*DomainUpdateRequest) Op() Op { return OpDomainUpdate }

// DomainUpdateResponse is empty; the envelope carries the outcome.
type DomainUpdateResponse struct {
	Fee *FeeTotals
}

func encodeDomainUpdate(f Features, req Request) (*epp.Command, error) {
	r := req.(*DomainUpdateRequest)
	if !f.HasObject(epp.NSDomain) {
		return nil, Unsupported("domain mapping")
	}
	if err := checkDomainName(r.Domain); err != nil {
		return nil, err
	}
	for _, c := range append(append([]DomainContact{}, r.AddContacts...), r.RemoveContacts...) {
		if err := checkContactID(c.ID); err != nil {
			return nil, err
		}
	}
	if r.NewAuthInfo != nil {
		if err := checkAuthInfo(*r.NewAuthInfo); err != nil {
			return nil, err
		}
	}

	update := &epp.DomainUpdate{Name: r.Domain}

	add := &epp.DomainUpdateAddRem{NS: encodeNameservers(r.AddNameservers)}
	rem := &epp.DomainUpdateAddRem{NS: encodeNameservers(r.RemoveNameservers)}
	stripContacts := forbidsRegistrant(f)
	if !stripContacts {
		for _, c := range r.AddContacts {
			add.Contacts = append(add.Contacts, epp.DomainContact{Type: c.Role, ID: c.ID})
		}
		for _, c := range r.RemoveContacts {
			rem.Contacts = append(rem.Contacts, epp.DomainContact{Type: c.Role, ID: c.ID})
		}
	}
	for _, st := range r.AddStatuses {
		add.Statuses = append(add.Statuses, epp.DomainStatus{S: st.Status, Reason: st.Reason})
	}
	for _, st := range r.RemoveStatuses {
		rem.Statuses = append(rem.Statuses, epp.DomainStatus{S: st.Status, Reason: st.Reason})
	}
	if add.NS != nil || len(add.Contacts) > 0 || len(add.Statuses) > 0 {
		update.Add = add
	}
	if rem.NS != nil || len(rem.Contacts) > 0 || len(rem.Statuses) > 0 {
		update.Rem = rem
	}

	chg := &epp.DomainUpdateChange{}
	if r.NewRegistrant != "" && !stripContacts {
		chg.Registrant = r.NewRegistrant
	}
	if r.NewAuthInfo != nil {
		chg.AuthInfo = epp.NewAuthInfo(*r.NewAuthInfo)
	}
	if chg.Registrant != "" || chg.AuthInfo != nil {
		update.Chg = chg
	}

	if update.Add == nil && update.Rem == nil && update.Chg == nil && r.SecDNS == nil {
		return nil, Errf("domain update carries no changes")
	}

	cmd := &epp.Command{Update: &epp.Update{Payload: update}}
	if r.SecDNS != nil {
		if !f.HasExtension(epp.NSSecDNS) {
			return nil, Unsupported("secDNS extension")
		}
		addExtension(cmd, encodeSecDNSUpdate(r.SecDNS))
	}
	if r.Fee != nil {
		version, ok := feeVersion(f)
		if !ok {
			return nil, Unsupported("fee extension")
		}
		addExtension(cmd, buildFeeTransform(version, "update", r.Fee))
	}
	return cmd, nil
}

func encodeSecDNSUpdate(data *SecDNSUpdate) *epp.SecDNSUpdate {
	update := &epp.SecDNSUpdate{Urgent: data.Urgent}
	if data.RemoveAll {
		all := true
		update.Rem = &epp.SecDNSRemove{All: &all}
	} else if len(data.RemoveDS) > 0 || len(data.RemoveKeys) > 0 {
		update.Rem = &epp.SecDNSRemove{
			DSData:  encodeDSRecords(data.RemoveDS),
			KeyData: encodeKeyRecords(data.RemoveKeys),
		}
	}
	if len(data.AddDS) > 0 || len(data.AddKeys) > 0 {
		update.Add = &epp.SecDNSAddRem{
			DSData:  encodeDSRecords(data.AddDS),
			KeyData: encodeKeyRecords(data.AddKeys),
		}
	}
	if data.MaxSigLife > 0 {
		update.Chg = &epp.SecDNSChange{MaxSigLife: data.MaxSigLife}
	}
	return update
}

func decodeDomainUpdate(resp *epp.Response) (any, error) {
	return &DomainUpdateResponse{Fee: decodeFeeTotals(extOf(resp), "update")}, nil
}

// ============================================================================
// Renew
// ============================================================================

// DomainRenewRequest extends a registration. CurrentExpiry guards against
// double renewal; the server rejects a mismatch.
type DomainRenewRequest struct {
	Domain        string
	CurrentExpiry time.Time
	Period        int
	Fee           *FeeAgreement
}

func (*DomainRenewRequest) Op() Op { return OpDomainRenew }

// DomainRenewResponse confirms the new expiry.
type DomainRenewResponse struct {
	Name    string
	Expires time.Time
	Fee     *FeeTotals
}

func encodeDomainRenew(f Features, req Request) (*epp.Command, error) {
	r := req.(*DomainRenewRequest)
	if !f.HasObject(epp.NSDomain) {
		return nil, Unsupported("domain mapping")
	}
	if err := checkDomainName(r.Domain); err != nil {
		return nil, err
	}
	if r.CurrentExpiry.IsZero() {
		return nil, Errf("current expiry date is required")
	}

	renew := &epp.DomainRenew{
		Name:       r.Domain,
		CurExpDate: r.CurrentExpiry.UTC().Format("2006-01-02"),
	}
	if r.Period > 0 {
		renew.Period = epp.NewPeriod("y", r.Period)
	}

	cmd := &epp.Command{Renew: &epp.Renew{Payload: renew}}
	if r.Fee != nil {
		version, ok := feeVersion(f)
		if !ok {
			return nil, Unsupported("fee extension")
		}
		addExtension(cmd, buildFeeTransform(version, "renew", r.Fee))
	}
	return cmd, nil
}

func decodeDomainRenew(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.DomainRenew == nil {
		return nil, mismatch(OpDomainRenew)
	}
	data := resp.ResData.DomainRenew
	return &DomainRenewResponse{
		Name:    data.Name,
		Expires: parseTime(data.ExDate),
		Fee:     decodeFeeTotals(extOf(resp), "renew"),
	}, nil
}

// ============================================================================
// Transfer
// ============================================================================

// TransferOp selects the transfer sub-operation.
type TransferOp string

const (
	TransferQuery   TransferOp = epp.TransferQuery
	TransferRequest TransferOp = epp.TransferRequest
	TransferCancel  TransferOp = epp.TransferCancel
	TransferAccept  TransferOp = epp.TransferApprove
	TransferReject  TransferOp = epp.TransferReject
)

// DomainTransferRequest runs one transfer sub-operation.
type DomainTransferRequest struct {
	Transfer TransferOp
	Domain   string
	AuthInfo string
	Period   int
	Fee      *FeeAgreement
}

func (*DomainTransferRequest) Op() Op { return OpDomainTransfer }

// DomainTransferResponse is the transfer state after the operation.
type DomainTransferResponse struct {
	Name        string
	Status      string
	RequestedBy string
	RequestedAt time.Time
	ActionBy    string
	ActionAt    time.Time
	Expires     time.Time
	Fee         *FeeTotals
}

func encodeDomainTransfer(f Features, req Request) (*epp.Command, error) {
	r := req.(*DomainTransferRequest)
	if !f.HasObject(epp.NSDomain) {
		return nil, Unsupported("domain mapping")
	}
	if err := checkDomainName(r.Domain); err != nil {
		return nil, err
	}
	if err := checkAuthInfo(r.AuthInfo); err != nil {
		return nil, err
	}
	switch r.Transfer {
	case TransferQuery, TransferRequest, TransferCancel, TransferAccept, TransferReject:
	default:
		return nil, Errf("unknown transfer op %q", r.Transfer)
	}
	if r.Transfer == TransferRequest && r.AuthInfo == "" {
		return nil, Errf("transfer request requires authorization info")
	}

	transfer := &epp.DomainTransfer{Name: r.Domain}
	if r.AuthInfo != "" {
		transfer.AuthInfo = epp.NewAuthInfo(r.AuthInfo)
	}
	if r.Period > 0 && r.Transfer == TransferRequest {
		transfer.Period = epp.NewPeriod("y", r.Period)
	}

	cmd := &epp.Command{Transfer: &epp.Transfer{Op: string(r.Transfer), Payload: transfer}}
	if r.Fee != nil {
		version, ok := feeVersion(f)
		if !ok {
			return nil, Unsupported("fee extension")
		}
		addExtension(cmd, buildFeeTransform(version, "transfer", r.Fee))
	}
	return cmd, nil
}

func decodeDomainTransfer(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.DomainTransfer == nil {
		return nil, mismatch(OpDomainTransfer)
	}
	data := resp.ResData.DomainTransfer
	return &DomainTransferResponse{
		Name:        data.Name,
		Status:      data.TrStatus,
		RequestedBy: data.ReID,
		RequestedAt: parseTime(data.ReDate),
		ActionBy:    data.AcID,
		ActionAt:    parseTime(data.AcDate),
		Expires:     parseTime(data.ExDate),
		Fee:         decodeFeeTotals(extOf(resp), "transfer"),
	}, nil
}

// ============================================================================
// Restore (RGP)
// ============================================================================

// DomainRestoreRequest runs an RGP restore. With Report nil it is the
// initial request; with Report set it files the restore report.
type DomainRestoreRequest struct {
	Domain string
	Report *RestoreReport
}

// RestoreReport is the data the registry requires to complete a restore.
type RestoreReport struct {
	PreData    string
	PostData   string
	Deleted    time.Time
	Restored   time.Time
	Reason     string
	Statements []string
	Other      string
}

func (*DomainRestoreRequest) Op() Op { return OpDomainRestore }

// DomainRestoreResponse reports the resulting grace-period statuses.
type DomainRestoreResponse struct {
	Statuses []string
}

func encodeDomainRestore(f Features, req Request) (*epp.Command, error) {
	r := req.(*DomainRestoreRequest)
	if !f.HasObject(epp.NSDomain) {
		return nil, Unsupported("domain mapping")
	}
	if !f.HasExtension(epp.NSRGP) {
		return nil, Unsupported("redemption grace period extension")
	}
	if err := checkDomainName(r.Domain); err != nil {
		return nil, err
	}

	// The restore travels as an extension on an otherwise empty update.
	cmd := &epp.Command{Update: &epp.Update{Payload: &epp.DomainUpdate{Name: r.Domain}}}

	restore := epp.RGPRestore{Op: "request"}
	if r.Report != nil {
		restore.Op = "report"
		restore.Report = &epp.RGPReport{
			PreData:    r.Report.PreData,
			PostData:   r.Report.PostData,
			DelTime:    r.Report.Deleted.UTC().Format(time.RFC3339),
			ResTime:    r.Report.Restored.UTC().Format(time.RFC3339),
			ResReason:  r.Report.Reason,
			Statements: r.Report.Statements,
			Other:      r.Report.Other,
		}
	}
	addExtension(cmd, &epp.RGPUpdate{Restore: restore})
	return cmd, nil
}

func decodeDomainRestore(resp *epp.Response) (any, error) {
	out := &DomainRestoreResponse{}
	if ext := extOf(resp); ext.RGPUpdate != nil {
		for _, st := range ext.RGPUpdate.Statuses {
			out.Statuses = append(out.Statuses, st.S)
		}
	}
	return out, nil
}
