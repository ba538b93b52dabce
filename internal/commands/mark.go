package commands

import (
	"time"

	"github.com/registryops/eppproxy/internal/epp"
)

// Trademark clearinghouse operations. These only succeed on a session
// whose server advertised the tmch object URI (server type tmch).

func init() {
	register(OpMarkCheck, &handler{name: "mark check", encode: encodeMarkCheck, decode: decodeMarkCheck})
	register(OpMarkInfo, &handler{name: "mark info", encode: encodeMarkInfo, decode: decodeMarkInfo})
	register(OpMarkSMDInfo, &handler{name: "mark smd info", encode: encodeMarkInfo, decode: decodeMarkInfo})
	register(OpMarkCreate, &handler{name: "mark create", encode: encodeMarkCreate, decode: decodeMarkCreate})
	register(OpMarkUpdate, &handler{name: "mark update", encode: encodeMarkUpdate, decode: decodeMarkUpdate})
	register(OpMarkRenew, &handler{name: "mark renew", encode: encodeMarkRenew, decode: decodeMarkRenew})
	register(OpMarkTransferInitiate, &handler{name: "mark transfer initiate", encode: encodeMarkTransfer, decode: decodeMarkTransfer})
	register(OpMarkTransferExecute, &handler{name: "mark transfer execute", encode: encodeMarkTransfer, decode: decodeMarkTransfer})
}

// ============================================================================
// Typed mark records
// ============================================================================

// TrademarkRecord is the normalised trademark the caller submits and
// reads back.
type TrademarkRecord struct {
	ID               string
	Name             string
	Holders          []MarkParty
	Contacts         []MarkParty
	Jurisdiction     string
	Classes          []int
	Labels           []string
	GoodsAndServices string
	RegistrationNum  string
	Registered       time.Time
	Expires          time.Time
}

// MarkParty is a holder or contact on a mark.
type MarkParty struct {
	Role        string // holder entitlement or contact type
	Name        string
	Org         string
	Streets     []string
	City        string
	Province    string
	PostalCode  string
	CountryCode string
	Voice       string
	Email       string
}

// MarkDocument is one supporting document, base64-encoded.
type MarkDocument struct {
	DocType  string
	FileName string
	FileType string
	Content  string
}

func encodeMarkRecord(record *TrademarkRecord) epp.Mark {
	tm := &epp.Trademark{
		ID:               record.ID,
		MarkName:         record.Name,
		Jurisdiction:     record.Jurisdiction,
		Classes:          record.Classes,
		Labels:           record.Labels,
		GoodsAndServices: record.GoodsAndServices,
		RegNum:           record.RegistrationNum,
		RegDate:          record.Registered.UTC().Format(time.RFC3339),
	}
	if !record.Expires.IsZero() {
		tm.ExDate = record.Expires.UTC().Format(time.RFC3339)
	}
	for _, holder := range record.Holders {
		tm.Holders = append(tm.Holders, epp.MarkHolder{
			Entitlement: holder.Role,
			Name:        holder.Name,
			Org:         holder.Org,
			Addr:        encodeMarkAddr(holder),
			Voice:       encodePhone(holder.Voice),
			Email:       holder.Email,
		})
	}
	for _, contact := range record.Contacts {
		tm.Contacts = append(tm.Contacts, epp.MarkContact{
			Type:  contact.Role,
			Name:  contact.Name,
			Org:   contact.Org,
			Addr:  encodeMarkAddr(contact),
			Voice: encodePhone(contact.Voice),
			Email: contact.Email,
		})
	}
	return epp.Mark{Trademark: tm}
}

func encodeMarkAddr(party MarkParty) *epp.MarkAddr {
	if party.City == "" && party.CountryCode == "" && len(party.Streets) == 0 {
		return nil
	}
	return &epp.MarkAddr{
		Streets: party.Streets,
		City:    party.City,
		SP:      party.Province,
		PC:      party.PostalCode,
		CC:      party.CountryCode,
	}
}

func decodeMarkRecord(mark *epp.Mark) *TrademarkRecord {
	if mark == nil || mark.Trademark == nil {
		return nil
	}
	tm := mark.Trademark
	record := &TrademarkRecord{
		ID:               tm.ID,
		Name:             tm.MarkName,
		Jurisdiction:     tm.Jurisdiction,
		Classes:          tm.Classes,
		Labels:           tm.Labels,
		GoodsAndServices: tm.GoodsAndServices,
		RegistrationNum:  tm.RegNum,
		Registered:       parseTime(tm.RegDate),
		Expires:          parseTime(tm.ExDate),
	}
	for _, holder := range tm.Holders {
		record.Holders = append(record.Holders, decodeMarkParty(holder.Entitlement, holder.Name, holder.Org, holder.Addr, holder.Voice, holder.Email))
	}
	for _, contact := range tm.Contacts {
		record.Contacts = append(record.Contacts, decodeMarkParty(contact.Type, contact.Name, contact.Org, contact.Addr, contact.Voice, contact.Email))
	}
	return record
}

func decodeMarkParty(role, name, org string, addr *epp.MarkAddr, voice *epp.E164, email string) MarkParty {
	party := MarkParty{Role: role, Name: name, Org: org, Voice: phoneNumber(voice), Email: email}
	if addr != nil {
		party.Streets = addr.Streets
		party.City = addr.City
		party.Province = addr.SP
		party.PostalCode = addr.PC
		party.CountryCode = addr.CC
	}
	return party
}

// ============================================================================
// Check
// ============================================================================

// MarkCheckRequest queries mark id availability.
type MarkCheckRequest struct {
	IDs []string
}

func (*MarkCheckRequest) Op() Op { return OpMarkCheck }

// MarkCheckResponse reports per-id availability.
type MarkCheckResponse struct {
	Results []MarkCheckResult
}

// MarkCheckResult is one id's availability.
type MarkCheckResult struct {
	ID        string
	Available bool
	Reason    string
}

func encodeMarkCheck(f Features, req Request) (*epp.Command, error) {
	r := req.(*MarkCheckRequest)
	if !f.HasObject(epp.NSTMCH) {
		return nil, Unsupported("trademark clearinghouse mapping")
	}
	if len(r.IDs) == 0 {
		return nil, Errf("at least one mark id is required")
	}
	return &epp.Command{Check: &epp.Check{Payload: &epp.TMCHCheck{IDs: r.IDs}}}, nil
}

func decodeMarkCheck(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.TMCHCheck == nil {
		return nil, mismatch(OpMarkCheck)
	}
	out := &MarkCheckResponse{}
	for _, cd := range resp.ResData.TMCHCheck.Results {
		out.Results = append(out.Results, MarkCheckResult{
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

// MarkInfoRequest fetches one mark. Submitted as OpMarkSMDInfo it asks
// for the encoded signed mark instead of the plain record.
type MarkInfoRequest struct {
	ID  string
	SMD bool
}

func (r *MarkInfoRequest) Op() Op {
	if r.SMD {
		return OpMarkSMDInfo
	}
	return OpMarkInfo
}

// MarkInfoResponse is the mark state.
type MarkInfoResponse struct {
	ID         string
	Status     string
	POUStatus  string
	Mark       *TrademarkRecord
	SMDID      string
	SMD        string
	Created    time.Time
	Updated    time.Time
	Expires    time.Time
	POUExpires time.Time
}

func encodeMarkInfo(f Features, req Request) (*epp.Command, error) {
	r := req.(*MarkInfoRequest)
	if !f.HasObject(epp.NSTMCH) {
		return nil, Unsupported("trademark clearinghouse mapping")
	}
	if r.ID == "" {
		return nil, Errf("mark id is required")
	}
	info := &epp.TMCHInfo{ID: r.ID}
	if r.SMD {
		info.Type = "smd"
	}
	return &epp.Command{Info: &epp.Info{Payload: info}}, nil
}

func decodeMarkInfo(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.TMCHInfo == nil {
		return nil, mismatch(OpMarkInfo)
	}
	data := resp.ResData.TMCHInfo
	return &MarkInfoResponse{
		ID:         data.ID,
		Status:     data.Status.S,
		POUStatus:  data.POUStatus.S,
		Mark:       decodeMarkRecord(data.Mark),
		SMDID:      data.SMDID,
		SMD:        data.SMD,
		Created:    parseTime(data.CrDate),
		Updated:    parseTime(data.UpDate),
		Expires:    parseTime(data.ExDate),
		POUExpires: parseTime(data.POUExDate),
	}, nil
}

// ============================================================================
// Create
// ============================================================================

// MarkCreateRequest submits a new mark.
type MarkCreateRequest struct {
	Mark      TrademarkRecord
	Period    int
	Documents []MarkDocument
	Labels    []string
}

func (*MarkCreateRequest) Op() Op { return OpMarkCreate }

// MarkCreateResponse confirms the submission.
type MarkCreateResponse struct {
	ID      string
	Created time.Time
	Balance string
}

func encodeMarkCreate(f Features, req Request) (*epp.Command, error) {
	r := req.(*MarkCreateRequest)
	if !f.HasObject(epp.NSTMCH) {
		return nil, Unsupported("trademark clearinghouse mapping")
	}
	if r.Mark.Name == "" {
		return nil, Errf("mark name is required")
	}
	if len(r.Mark.Holders) == 0 {
		return nil, Errf("at least one mark holder is required")
	}

	create := &epp.TMCHCreate{Mark: encodeMarkRecord(&r.Mark)}
	if r.Period > 0 {
		create.Period = epp.NewPeriod("y", r.Period)
	}
	for _, doc := range r.Documents {
		create.Documents = append(create.Documents, epp.TMCHDocument{
			DocType:  doc.DocType,
			FileName: doc.FileName,
			FileType: doc.FileType,
			Content:  doc.Content,
		})
	}
	for _, label := range r.Labels {
		create.Labels = append(create.Labels, epp.TMCHLabel{Label: label})
	}
	return &epp.Command{Create: &epp.Create{Payload: create}}, nil
}

func decodeMarkCreate(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.TMCHCreate == nil {
		return nil, mismatch(OpMarkCreate)
	}
	data := resp.ResData.TMCHCreate
	return &MarkCreateResponse{
		ID:      data.ID,
		Created: parseTime(data.CrDate),
		Balance: data.Balance,
	}, nil
}

// ============================================================================
// Update
// ============================================================================

// MarkUpdateRequest replaces the mark record or adjusts its documents
// and labels.
type MarkUpdateRequest struct {
	ID           string
	NewMark      *TrademarkRecord
	AddDocuments []MarkDocument
	AddLabels    []string
	RemoveLabels []string
}

func (*MarkUpdateRequest) Op() Op { return OpMarkUpdate }

// MarkUpdateResponse is empty; the envelope carries the outcome.
type MarkUpdateResponse struct{}

func encodeMarkUpdate(f Features, req Request) (*epp.Command, error) {
	r := req.(*MarkUpdateRequest)
	if !f.HasObject(epp.NSTMCH) {
		return nil, Unsupported("trademark clearinghouse mapping")
	}
	if r.ID == "" {
		return nil, Errf("mark id is required")
	}

	update := &epp.TMCHUpdate{ID: r.ID}
	if len(r.AddDocuments) > 0 || len(r.AddLabels) > 0 {
		add := &epp.TMCHUpdateAddRem{}
		for _, doc := range r.AddDocuments {
			add.Documents = append(add.Documents, epp.TMCHDocument{
				DocType:  doc.DocType,
				FileName: doc.FileName,
				FileType: doc.FileType,
				Content:  doc.Content,
			})
		}
		for _, label := range r.AddLabels {
			add.Labels = append(add.Labels, epp.TMCHLabel{Label: label})
		}
		update.Add = add
	}
	if len(r.RemoveLabels) > 0 {
		rem := &epp.TMCHUpdateAddRem{}
		for _, label := range r.RemoveLabels {
			rem.Labels = append(rem.Labels, epp.TMCHLabel{Label: label})
		}
		update.Rem = rem
	}
	if r.NewMark != nil {
		mark := encodeMarkRecord(r.NewMark)
		update.Chg = &epp.TMCHUpdateChange{Mark: &mark}
	}
	if update.Add == nil && update.Rem == nil && update.Chg == nil {
		return nil, Errf("mark update carries no changes")
	}
	return &epp.Command{Update: &epp.Update{Payload: update}}, nil
}

func decodeMarkUpdate(resp *epp.Response) (any, error) {
	return &MarkUpdateResponse{}, nil
}

// ============================================================================
// Renew
// ============================================================================

// MarkRenewRequest extends a mark registration.
type MarkRenewRequest struct {
	ID            string
	CurrentExpiry time.Time
	Period        int
}

func (*MarkRenewRequest) Op() Op { return OpMarkRenew }

// MarkRenewResponse confirms the new expiry.
type MarkRenewResponse struct {
	ID      string
	Expires time.Time
	Balance string
}

func encodeMarkRenew(f Features, req Request) (*epp.Command, error) {
	r := req.(*MarkRenewRequest)
	if !f.HasObject(epp.NSTMCH) {
		return nil, Unsupported("trademark clearinghouse mapping")
	}
	if r.ID == "" {
		return nil, Errf("mark id is required")
	}
	if r.CurrentExpiry.IsZero() {
		return nil, Errf("current expiry date is required")
	}

	renew := &epp.TMCHRenew{
		ID:         r.ID,
		CurExpDate: r.CurrentExpiry.UTC().Format("2006-01-02"),
	}
	if r.Period > 0 {
		renew.Period = epp.NewPeriod("y", r.Period)
	}
	return &epp.Command{Renew: &epp.Renew{Payload: renew}}, nil
}

func decodeMarkRenew(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.TMCHRenew == nil {
		return nil, mismatch(OpMarkRenew)
	}
	data := resp.ResData.TMCHRenew
	return &MarkRenewResponse{
		ID:      data.ID,
		Expires: parseTime(data.ExDate),
		Balance: data.Balance,
	}, nil
}

// ============================================================================
// Transfer
// ============================================================================

// MarkTransferRequest moves a mark between agents. Initiate obtains the
// auth code on the losing side; execute redeems it on the gaining side.
type MarkTransferRequest struct {
	Execute  bool
	ID       string
	AuthCode string
}

func (r *MarkTransferRequest) Op() Op {
	if r.Execute {
		return OpMarkTransferExecute
	}
	return OpMarkTransferInitiate
}

// MarkTransferResponse carries the auth code on initiate.
type MarkTransferResponse struct {
	ID          string
	AuthCode    string
	Transferred time.Time
}

func encodeMarkTransfer(f Features, req Request) (*epp.Command, error) {
	r := req.(*MarkTransferRequest)
	if !f.HasObject(epp.NSTMCH) {
		return nil, Unsupported("trademark clearinghouse mapping")
	}
	if r.ID == "" {
		return nil, Errf("mark id is required")
	}

	op := "initiate"
	transfer := &epp.TMCHTransfer{ID: r.ID}
	if r.Execute {
		if r.AuthCode == "" {
			return nil, Errf("transfer execute requires the auth code")
		}
		op = "execute"
		transfer.AuthCode = r.AuthCode
	}
	return &epp.Command{Transfer: &epp.Transfer{Op: op, Payload: transfer}}, nil
}

func decodeMarkTransfer(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.TMCHTransfer == nil {
		return nil, mismatch(OpMarkTransferInitiate)
	}
	data := resp.ResData.TMCHTransfer
	return &MarkTransferResponse{
		ID:          data.ID,
		AuthCode:    data.AuthCode,
		Transferred: parseTime(data.TrnDate),
	}, nil
}
