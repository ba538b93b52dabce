package commands

import (
	"time"

	"github.com/registryops/eppproxy/internal/epp"
)

// Contact object commands (RFC 5733).

func init() {
	register(OpContactCheck, &handler{name: "contact check", encode: encodeContactCheck, decode: decodeContactCheck})
	register(OpContactInfo, &handler{name: "contact info", encode: encodeContactInfo, decode: decodeContactInfo})
	register(OpContactCreate, &handler{name: "contact create", encode: encodeContactCreate, decode: decodeContactCreate})
	register(OpContactDelete, &handler{name: "contact delete", encode: encodeContactDelete, decode: decodeContactDelete})
	register(OpContactUpdate, &handler{name: "contact update", encode: encodeContactUpdate, decode: decodeContactUpdate})
	register(OpContactTransfer, &handler{name: "contact transfer", encode: encodeContactTransfer, decode: decodeContactTransfer})
}

// PostalAddress is one name-and-address block. Localised selects the loc
// representation (8-bit text); the default is the int (ASCII) one.
type PostalAddress struct {
	Localised   bool
	Name        string
	Org         string
	Streets     []string
	City        string
	Province    string
	PostalCode  string
	CountryCode string
}

// ContactStatus is one status value with its optional reason.
type ContactStatus struct {
	Status string
	Reason string
}

// Disclosure overrides the server's default data-collection policy for
// the listed elements.
type Disclosure struct {
	Allow bool
	Name  bool
	Org   bool
	Addr  bool
	Voice bool
	Fax   bool
	Email bool
}

func encodePostalInfos(addrs []PostalAddress) []epp.PostalInfo {
	var out []epp.PostalInfo
	for _, addr := range addrs {
		infoType := "int"
		if addr.Localised {
			infoType = "loc"
		}
		out = append(out, epp.PostalInfo{
			Type: infoType,
			Name: addr.Name,
			Org:  addr.Org,
			Addr: epp.ContactAddr{
				Streets: addr.Streets,
				City:    addr.City,
				SP:      addr.Province,
				PC:      addr.PostalCode,
				CC:      addr.CountryCode,
			},
		})
	}
	return out
}

func decodePostalInfos(infos []epp.PostalInfo) []PostalAddress {
	var out []PostalAddress
	for _, info := range infos {
		out = append(out, PostalAddress{
			Localised:   info.Type == "loc",
			Name:        info.Name,
			Org:         info.Org,
			Streets:     info.Addr.Streets,
			City:        info.Addr.City,
			Province:    info.Addr.SP,
			PostalCode:  info.Addr.PC,
			CountryCode: info.Addr.CC,
		})
	}
	return out
}

func encodeDisclosure(d *Disclosure) *epp.ContactDisclose {
	if d == nil {
		return nil
	}
	disclose := &epp.ContactDisclose{Flag: d.Allow}
	if d.Name {
		disclose.Names = []epp.DiscloseMember{{Type: "int"}}
	}
	if d.Org {
		disclose.Orgs = []epp.DiscloseMember{{Type: "int"}}
	}
	if d.Addr {
		disclose.Addrs = []epp.DiscloseMember{{Type: "int"}}
	}
	if d.Voice {
		disclose.Voice = &struct{}{}
	}
	if d.Fax {
		disclose.Fax = &struct{}{}
	}
	if d.Email {
		disclose.Email = &struct{}{}
	}
	return disclose
}

func decodeDisclosure(d *epp.ContactDisclose) *Disclosure {
	if d == nil {
		return nil
	}
	return &Disclosure{
		Allow: d.Flag,
		Name:  len(d.Names) > 0,
		Org:   len(d.Orgs) > 0,
		Addr:  len(d.Addrs) > 0,
		Voice: d.Voice != nil,
		Fax:   d.Fax != nil,
		Email: d.Email != nil,
	}
}

func encodePhone(number string) *epp.E164 {
	if number == "" {
		return nil
	}
	return &epp.E164{Number: number}
}

func phoneNumber(e *epp.E164) string {
	if e == nil {
		return ""
	}
	return e.Number
}

// ============================================================================
// Check
// ============================================================================

// ContactCheckRequest queries availability for contact ids.
type ContactCheckRequest struct {
	IDs []string
}

func (*ContactCheckRequest) Op() Op { return OpContactCheck }

// ContactCheckResponse reports per-id availability.
type ContactCheckResponse struct {
	Results []ContactCheckResult
}

// ContactCheckResult is one id's availability.
type ContactCheckResult struct {
	ID        string
	Available bool
	Reason    string
}

func encodeContactCheck(f Features, req Request) (*epp.Command, error) {
	r := req.(*ContactCheckRequest)
	if !f.HasObject(epp.NSContact) {
		return nil, Unsupported("contact mapping")
	}
	if len(r.IDs) == 0 {
		return nil, Errf("at least one contact id is required")
	}
	for _, id := range r.IDs {
		if err := checkContactID(id); err != nil {
			return nil, err
		}
	}
	return &epp.Command{Check: &epp.Check{Payload: &epp.ContactCheck{IDs: r.IDs}}}, nil
}

func decodeContactCheck(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.ContactCheck == nil {
		return nil, mismatch(OpContactCheck)
	}
	out := &ContactCheckResponse{}
	for _, cd := range resp.ResData.ContactCheck.Results {
		out.Results = append(out.Results, ContactCheckResult{
			ID:        cd.ID.ID,
			Available: cd.ID.Available,
			Reason:    cd.Reason,
		})
	}
	return out, nil
}

// ============================================================================
// Info
// ============================================================================

// ContactInfoRequest fetches one contact.
type ContactInfoRequest struct {
	ID       string
	AuthInfo string
}

func (*ContactInfoRequest) Op() Op { return OpContactInfo }

// ContactInfoResponse is the full object.
type ContactInfoResponse struct {
	ID           string
	ROID         string
	Statuses     []ContactStatus
	Addresses    []PostalAddress
	Voice        string
	Fax          string
	Email        string
	SponsoringID string
	CreatedBy    string
	Created      time.Time
	UpdatedBy    string
	Updated      time.Time
	Transferred  time.Time
	AuthInfo     string
	Disclosure   *Disclosure
}

func encodeContactInfo(f Features, req Request) (*epp.Command, error) {
	r := req.(*ContactInfoRequest)
	if !f.HasObject(epp.NSContact) {
		return nil, Unsupported("contact mapping")
	}
	if err := checkContactID(r.ID); err != nil {
		return nil, err
	}
	if err := checkAuthInfo(r.AuthInfo); err != nil {
		return nil, err
	}

	info := &epp.ContactInfo{ID: r.ID}
	if r.AuthInfo != "" {
		info.AuthInfo = epp.NewAuthInfo(r.AuthInfo)
	}
	return &epp.Command{Info: &epp.Info{Payload: info}}, nil
}

func decodeContactInfo(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.ContactInfo == nil {
		return nil, mismatch(OpContactInfo)
	}
	data := resp.ResData.ContactInfo
	out := &ContactInfoResponse{
		ID:           data.ID,
		ROID:         data.ROID,
		Addresses:    decodePostalInfos(data.PostalInfos),
		Voice:        phoneNumber(data.Voice),
		Fax:          phoneNumber(data.Fax),
		Email:        data.Email,
		SponsoringID: data.ClID,
		CreatedBy:    data.CrID,
		Created:      parseTime(data.CrDate),
		UpdatedBy:    data.UpID,
		Updated:      parseTime(data.UpDate),
		Transferred:  parseTime(data.TrDate),
		AuthInfo:     data.AuthInfo.Password(),
		Disclosure:   decodeDisclosure(data.Disclose),
	}
	for _, st := range data.Statuses {
		out.Statuses = append(out.Statuses, ContactStatus{Status: st.S, Reason: st.Reason})
	}
	return out, nil
}

// ============================================================================
// Create
// ============================================================================

// ContactCreateRequest registers a contact.
type ContactCreateRequest struct {
	ID         string
	Addresses  []PostalAddress
	Voice      string
	Fax        string
	Email      string
	AuthInfo   string
	Disclosure *Disclosure
}

func (*ContactCreateRequest) Op() Op { return OpContactCreate }

// ContactCreateResponse confirms the registration.
type ContactCreateResponse struct {
	ID      string
	Created time.Time
}

func encodeContactCreate(f Features, req Request) (*epp.Command, error) {
	r := req.(*ContactCreateRequest)
	if !f.HasObject(epp.NSContact) {
		return nil, Unsupported("contact mapping")
	}
	if err := checkContactID(r.ID); err != nil {
		return nil, err
	}
	if len(r.Addresses) == 0 {
		return nil, Errf("at least one postal address is required")
	}
	if r.Email == "" {
		return nil, Errf("email address is required")
	}
	if err := checkAuthInfo(r.AuthInfo); err != nil {
		return nil, err
	}

	create := &epp.ContactCreate{
		ID:          r.ID,
		PostalInfos: encodePostalInfos(r.Addresses),
		Voice:       encodePhone(r.Voice),
		Fax:         encodePhone(r.Fax),
		Email:       r.Email,
		Disclose:    encodeDisclosure(r.Disclosure),
	}
	if r.AuthInfo != "" {
		create.AuthInfo = epp.NewAuthInfo(r.AuthInfo)
	}
	return &epp.Command{Create: &epp.Create{Payload: create}}, nil
}

func decodeContactCreate(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.ContactCreate == nil {
		return nil, mismatch(OpContactCreate)
	}
	data := resp.ResData.ContactCreate
	return &ContactCreateResponse{ID: data.ID, Created: parseTime(data.CrDate)}, nil
}

// ============================================================================
// Delete
// ============================================================================

// ContactDeleteRequest removes a contact.
type ContactDeleteRequest struct {
	ID string
}

func (*ContactDeleteRequest) Op() Op { return OpContactDelete }

// ContactDeleteResponse is empty; the envelope carries the outcome.
type ContactDeleteResponse struct{}

func encodeContactDelete(f Features, req Request) (*epp.Command, error) {
	r := req.(*ContactDeleteRequest)
	if !f.HasObject(epp.NSContact) {
		return nil, Unsupported("contact mapping")
	}
	if err := checkContactID(r.ID); err != nil {
		return nil, err
	}
	return &epp.Command{Delete: &epp.Delete{Payload: &epp.ContactDelete{ID: r.ID}}}, nil
}

func decodeContactDelete(resp *epp.Response) (any, error) {
	return &ContactDeleteResponse{}, nil
}

// ============================================================================
// Update
// ============================================================================

// ContactUpdateRequest adds and removes statuses and replaces attributes.
type ContactUpdateRequest struct {
	ID string

	AddStatuses    []ContactStatus
	RemoveStatuses []ContactStatus

	NewAddresses  []PostalAddress
	NewVoice      *string
	NewFax        *string
	NewEmail      string
	NewAuthInfo   *string
	NewDisclosure *Disclosure
}

func (*ContactUpdateRequest) Op() Op { return OpContactUpdate }

// ContactUpdateResponse is empty; the envelope carries the outcome.
type ContactUpdateResponse struct{}

func encodeContactUpdate(f Features, req Request) (*epp.Command, error) {
	r := req.(*ContactUpdateRequest)
	if !f.HasObject(epp.NSContact) {
		return nil, Unsupported("contact mapping")
	}
	if err := checkContactID(r.ID); err != nil {
		return nil, err
	}
	if r.NewAuthInfo != nil {
		if err := checkAuthInfo(*r.NewAuthInfo); err != nil {
			return nil, err
		}
	}

	update := &epp.ContactUpdate{ID: r.ID}
	if len(r.AddStatuses) > 0 {
		add := &epp.ContactUpdateAddRem{}
		for _, st := range r.AddStatuses {
			add.Statuses = append(add.Statuses, epp.ContactStatus{S: st.Status, Reason: st.Reason})
		}
		update.Add = add
	}
	if len(r.RemoveStatuses) > 0 {
		rem := &epp.ContactUpdateAddRem{}
		for _, st := range r.RemoveStatuses {
			rem.Statuses = append(rem.Statuses, epp.ContactStatus{S: st.Status, Reason: st.Reason})
		}
		update.Rem = rem
	}

	chg := &epp.ContactUpdateChange{
		PostalInfos: encodePostalInfos(r.NewAddresses),
		Email:       r.NewEmail,
		Disclose:    encodeDisclosure(r.NewDisclosure),
	}
	if r.NewVoice != nil {
		chg.Voice = &epp.E164{Number: *r.NewVoice}
	}
	if r.NewFax != nil {
		chg.Fax = &epp.E164{Number: *r.NewFax}
	}
	if r.NewAuthInfo != nil {
		chg.AuthInfo = epp.NewAuthInfo(*r.NewAuthInfo)
	}
	if len(chg.PostalInfos) > 0 || chg.Voice != nil || chg.Fax != nil ||
		chg.Email != "" || chg.AuthInfo != nil || chg.Disclose != nil {
		update.Chg = chg
	}

	if update.Add == nil && update.Rem == nil && update.Chg == nil {
		return nil, Errf("contact update carries no changes")
	}
	return &epp.Command{Update: &epp.Update{Payload: update}}, nil
}

func decodeContactUpdate(resp *epp.Response) (any, error) {
	return &ContactUpdateResponse{}, nil
}

// ============================================================================
// Transfer
// ============================================================================

// ContactTransferRequest runs one transfer sub-operation.
type ContactTransferRequest struct {
	Transfer TransferOp
	ID       string
	AuthInfo string
}

func (*ContactTransferRequest) Op() Op { return OpContactTransfer }

// ContactTransferResponse is the transfer state after the operation.
type ContactTransferResponse struct {
	ID          string
	Status      string
	RequestedBy string
	RequestedAt time.Time
	ActionBy    string
	ActionAt    time.Time
}

func encodeContactTransfer(f Features, req Request) (*epp.Command, error) {
	r := req.(*ContactTransferRequest)
	if !f.HasObject(epp.NSContact) {
		return nil, Unsupported("contact mapping")
	}
	if err := checkContactID(r.ID); err != nil {
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

	transfer := &epp.ContactTransfer{ID: r.ID}
	if r.AuthInfo != "" {
		transfer.AuthInfo = epp.NewAuthInfo(r.AuthInfo)
	}
	return &epp.Command{Transfer: &epp.Transfer{Op: string(r.Transfer), Payload: transfer}}, nil
}

func decodeContactTransfer(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.ContactTransfer == nil {
		return nil, mismatch(OpContactTransfer)
	}
	data := resp.ResData.ContactTransfer
	return &ContactTransferResponse{
		ID:          data.ID,
		Status:      data.TrStatus,
		RequestedBy: data.ReID,
		RequestedAt: parseTime(data.ReDate),
		ActionBy:    data.AcID,
		ActionAt:    parseTime(data.AcDate),
	}, nil
}
