package epp

import "encoding/xml"

// Trademark clearinghouse dialect: tmch-1.1 commands wrapping mark-1.0
// records (RFC 7848). A tmch-type registry speaks only these objects; the
// session logs in with the tmch object URI instead of the core mappings.

// TMCHCheck queries mark ids.
type TMCHCheck struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:tmch-1.1 check"`
	IDs     []string `xml:"id"`
}

// TMCHCreate submits a new mark with its validity period and supporting
// documents.
type TMCHCreate struct {
	XMLName   xml.Name       `xml:"urn:ietf:params:xml:ns:tmch-1.1 create"`
	Mark      Mark           `xml:"mark"`
	Period    *Period        `xml:"period,omitempty"`
	Documents []TMCHDocument `xml:"document,omitempty"`
	Labels    []TMCHLabel    `xml:"label,omitempty"`
}

// TMCHInfo requests one mark. Type selects the representation: the plain
// mark, the signed mark, the encoded signed mark (smd), or the file.
type TMCHInfo struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:tmch-1.1 info"`
	Type    string   `xml:"type,attr,omitempty"` // "" | smd | enc | file
	ID      string   `xml:"id"`
}

// TMCHRenew extends a mark registration.
type TMCHRenew struct {
	XMLName    xml.Name `xml:"urn:ietf:params:xml:ns:tmch-1.1 renew"`
	ID         string   `xml:"id"`
	CurExpDate string   `xml:"curExpDate"`
	Period     *Period  `xml:"period,omitempty"`
}

// TMCHUpdate changes a mark's record or attached documents and labels.
type TMCHUpdate struct {
	XMLName xml.Name          `xml:"urn:ietf:params:xml:ns:tmch-1.1 update"`
	ID      string            `xml:"id"`
	Add     *TMCHUpdateAddRem `xml:"add,omitempty"`
	Rem     *TMCHUpdateAddRem `xml:"rem,omitempty"`
	Chg     *TMCHUpdateChange `xml:"chg,omitempty"`
}

// TMCHUpdateAddRem lists document and label deltas.
type TMCHUpdateAddRem struct {
	Documents []TMCHDocument `xml:"document,omitempty"`
	Labels    []TMCHLabel    `xml:"label,omitempty"`
}

// TMCHUpdateChange replaces the mark record.
type TMCHUpdateChange struct {
	Mark *Mark `xml:"mark,omitempty"`
}

// TMCHTransfer moves a mark between agents. The initiate op obtains the
// auth code; the execute op redeems it.
type TMCHTransfer struct {
	XMLName  xml.Name `xml:"urn:ietf:params:xml:ns:tmch-1.1 transfer"`
	Op       string   `xml:"op,attr,omitempty"` // initiate | execute
	ID       string   `xml:"id"`
	AuthCode string   `xml:"authCode,omitempty"`
}

// TMCHDocument is one supporting document, base64-encoded.
type TMCHDocument struct {
	DocType  string `xml:"docType"`
	FileName string `xml:"fileName,omitempty"`
	FileType string `xml:"fileType"` // pdf | jpg
	Content  string `xml:"fileContent"`
}

// TMCHLabel is one domain label derived from the mark with its claims
// notification preference.
type TMCHLabel struct {
	Label        string    `xml:"aLabel"`
	SMDInclusion *TMCHFlag `xml:"smdInclusion,omitempty"`
	ClaimsNotify *TMCHFlag `xml:"claimsNotify,omitempty"`
}

// TMCHFlag is an enable attribute wrapper.
type TMCHFlag struct {
	Enable bool `xml:"enable,attr"`
}

// ============================================================================
// mark-1.0 record
// ============================================================================

// Mark is the mark-1.0 container. Only trademark marks are carried; court
// and statute marks are not used by any connected registry.
type Mark struct {
	XMLName   xml.Name   `xml:"urn:ietf:params:xml:ns:mark-1.0 mark"`
	Trademark *Trademark `xml:"trademark,omitempty"`
}

// Trademark is one registered trademark record.
type Trademark struct {
	ID               string        `xml:"id"`
	MarkName         string        `xml:"markName"`
	Holders          []MarkHolder  `xml:"holder"`
	Contacts         []MarkContact `xml:"contact,omitempty"`
	Jurisdiction     string        `xml:"jurisdiction"`
	Classes          []int         `xml:"class,omitempty"`
	Labels           []string      `xml:"label,omitempty"`
	GoodsAndServices string        `xml:"goodsAndServices"`
	ApID             string        `xml:"apId,omitempty"`
	ApDate           string        `xml:"apDate,omitempty"`
	RegNum           string        `xml:"regNum"`
	RegDate          string        `xml:"regDate"`
	ExDate           string        `xml:"exDate,omitempty"`
}

// MarkHolder is the rights holder, with the entitlement attribute saying
// whether they own or license the mark.
type MarkHolder struct {
	Entitlement string    `xml:"entitlement,attr,omitempty"` // owner | assignee | licensee
	Name        string    `xml:"name,omitempty"`
	Org         string    `xml:"org,omitempty"`
	Addr        *MarkAddr `xml:"addr,omitempty"`
	Voice       *E164     `xml:"voice,omitempty"`
	Fax         *E164     `xml:"fax,omitempty"`
	Email       string    `xml:"email,omitempty"`
}

// MarkContact is a mark contact person.
type MarkContact struct {
	Type  string    `xml:"type,attr,omitempty"` // owner | agent | thirdparty
	Name  string    `xml:"name"`
	Org   string    `xml:"org,omitempty"`
	Addr  *MarkAddr `xml:"addr,omitempty"`
	Voice *E164     `xml:"voice,omitempty"`
	Fax   *E164     `xml:"fax,omitempty"`
	Email string    `xml:"email"`
}

// MarkAddr is a postal address in the mark-1.0 shape.
type MarkAddr struct {
	Streets []string `xml:"street"`
	City    string   `xml:"city"`
	SP      string   `xml:"sp,omitempty"`
	PC      string   `xml:"pc,omitempty"`
	CC      string   `xml:"cc"`
}

// ============================================================================
// Response payloads
// ============================================================================

// TMCHCheckData is the chkData payload.
type TMCHCheckData struct {
	Results []TMCHCheckResult `xml:"cd"`
}

// TMCHCheckResult reports one mark id's availability.
type TMCHCheckResult struct {
	ID     TMCHCheckID `xml:"id"`
	Reason string      `xml:"reason"`
}

// TMCHCheckID carries the avail flag as an attribute on the id.
type TMCHCheckID struct {
	Available bool   `xml:"avail,attr"`
	ID        string `xml:",chardata"`
}

// TMCHCreateData is the creData payload.
type TMCHCreateData struct {
	ID      string `xml:"id"`
	CrDate  string `xml:"crDate"`
	Balance string `xml:"balance"`
}

// TMCHInfoData is the infData payload. SMD carries the base64 encoded
// signed mark when the info type asked for it.
type TMCHInfoData struct {
	ID        string     `xml:"id"`
	Status    TMCHStatus `xml:"status"`
	POUStatus TMCHStatus `xml:"pouStatus"`
	Mark      *Mark      `xml:"mark"`
	SMDID     string     `xml:"smdId"`
	SMD       string     `xml:"encodedSignedMark"`
	CrDate    string     `xml:"crDate"`
	UpDate    string     `xml:"upDate"`
	ExDate    string     `xml:"exDate"`
	POUExDate string     `xml:"pouExDate"`
}

// TMCHStatus is a mark status value.
type TMCHStatus struct {
	S string `xml:"s,attr"`
}

// TMCHRenewData is the renData payload.
type TMCHRenewData struct {
	ID      string `xml:"id"`
	ExDate  string `xml:"exDate"`
	Balance string `xml:"balance"`
}

// TMCHTransferData is the trnData payload. AuthCode is present on the
// initiate op only.
type TMCHTransferData struct {
	ID       string `xml:"id"`
	AuthCode string `xml:"authCode"`
	TrnDate  string `xml:"trnDate"`
}
