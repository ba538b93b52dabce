package epp

import (
	"encoding/xml"
	"fmt"
	"time"
)

// Namespace URIs for the epp-1.0 envelope, the core object mappings, and
// every extension family the command encoders can negotiate. Feature
// detection compares these against the URIs a greeting advertises.
const (
	NSEpp     = "urn:ietf:params:xml:ns:epp-1.0"
	NSDomain  = "urn:ietf:params:xml:ns:domain-1.0"
	NSHost    = "urn:ietf:params:xml:ns:host-1.0"
	NSContact = "urn:ietf:params:xml:ns:contact-1.0"

	NSRGP        = "urn:ietf:params:xml:ns:rgp-1.0"
	NSSecDNS     = "urn:ietf:params:xml:ns:secDNS-1.1"
	NSLaunch     = "urn:ietf:params:xml:ns:launch-1.0"
	NSChangePoll = "urn:ietf:params:xml:ns:changePoll-1.0"
	NSLoginSec   = "urn:ietf:params:xml:ns:epp:loginSec-1.0"
	NSMaint      = "urn:ietf:params:xml:ns:epp:maintenance-1.0"

	NSFee05  = "urn:ietf:params:xml:ns:fee-0.5"
	NSFee07  = "urn:ietf:params:xml:ns:fee-0.7"
	NSFee08  = "urn:ietf:params:xml:ns:fee-0.8"
	NSFee09  = "urn:ietf:params:xml:ns:fee-0.9"
	NSFee011 = "urn:ietf:params:xml:ns:fee-0.11"
	NSFee10  = "urn:ietf:params:xml:ns:epp:fee-1.0"

	NSNominetTag       = "http://www.nominet.org.uk/epp/xml/nom-tag-1.0"
	NSNominetRelease   = "http://www.nominet.org.uk/epp/xml/std-release-1.0"
	NSNominetHandshake = "http://www.nominet.org.uk/epp/xml/std-handshake-1.0"
	NSNominetLocks     = "http://www.nominet.org.uk/epp/xml/std-locks-1.0"

	NSEuridHitPoints  = "http://www.eurid.eu/xml/epp/registrarHitPoints-1.0"
	NSEuridRegLimit   = "http://www.eurid.eu/xml/epp/registrationLimit-1.1"
	NSEuridDNSQuality = "http://www.eurid.eu/xml/epp/dnsQuality-2.0"
	NSEuridDNSSECElig = "http://www.eurid.eu/xml/epp/dnssecEligibility-1.0"
	NSVerisignBalance = "http://www.verisign.com/epp/balance-1.0"
	NSMark            = "urn:ietf:params:xml:ns:mark-1.0"
	NSSignedMark      = "urn:ietf:params:xml:ns:signedMark-1.0"
	NSTMCH            = "urn:ietf:params:xml:ns:tmch-1.1"
)

// header is the prolog every implementation in the wild sends; servers are
// stricter about its presence than RFC 5730 requires.
const header = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n"

// EPP is the top-level envelope: exactly one of Hello, Greeting, Command,
// or Response is set. Commands are marshaled, greetings and responses
// unmarshaled; the envelope supports both directions.
type EPP struct {
	XMLName  xml.Name  `xml:"urn:ietf:params:xml:ns:epp-1.0 epp"`
	Hello    *Hello    `xml:"hello,omitempty"`
	Greeting *Greeting `xml:"greeting,omitempty"`
	Command  *Command  `xml:"command,omitempty"`
	Response *Response `xml:"response,omitempty"`
}

// Hello is the empty keepalive request; the server answers with a greeting.
type Hello struct{}

// Marshal renders the envelope with the XML prolog prepended.
func Marshal(e *EPP) ([]byte, error) {
	body, err := xml.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal epp message: %w", err)
	}
	out := make([]byte, 0, len(header)+len(body))
	out = append(out, header...)
	out = append(out, body...)
	return out, nil
}

// Unmarshal parses one EPP data unit into the envelope.
func Unmarshal(data []byte) (*EPP, error) {
	var e EPP
	if err := xml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal epp message: %w", err)
	}
	return &e, nil
}

// ============================================================================
// Greeting
// ============================================================================

// Greeting is the server's service announcement, sent on connect and in
// reply to hello. The service menu drives feature negotiation.
type Greeting struct {
	ServerID   string  `xml:"svID"`
	ServerDate string  `xml:"svDate"`
	SvcMenu    SvcMenu `xml:"svcMenu"`
}

// SvcMenu lists the protocol versions, languages, object URIs, and
// extension URIs the server is willing to serve.
type SvcMenu struct {
	Versions     []string      `xml:"version"`
	Languages    []string      `xml:"lang"`
	ObjectURIs   []string      `xml:"objURI"`
	SvcExtension *SvcExtension `xml:"svcExtension"`
}

// SvcExtension holds the extension URIs of a service menu or login.
type SvcExtension struct {
	ExtensionURIs []string `xml:"extURI"`
}

// ============================================================================
// Command
// ============================================================================

// Command is the request envelope. Exactly one verb field is set; field
// order follows the schema (verb, extension, clTRID).
type Command struct {
	Login     *Login     `xml:"login,omitempty"`
	Logout    *struct{}  `xml:"logout,omitempty"`
	Check     *Check     `xml:"check,omitempty"`
	Info      *Info      `xml:"info,omitempty"`
	Create    *Create    `xml:"create,omitempty"`
	Delete    *Delete    `xml:"delete,omitempty"`
	Renew     *Renew     `xml:"renew,omitempty"`
	Transfer  *Transfer  `xml:"transfer,omitempty"`
	Update    *Update    `xml:"update,omitempty"`
	Poll      *Poll      `xml:"poll,omitempty"`
	Extension *Extension `xml:"extension,omitempty"`
	ClTRID    string     `xml:"clTRID,omitempty"`
}

// Verb wrappers. The payload carries its own namespace-qualified XMLName
// (a domain/host/contact/tmch element), so the marshaler nests it under
// the envelope verb automatically.
type (
	Check  struct{ Payload any }
	Info   struct{ Payload any }
	Create struct{ Payload any }
	Delete struct{ Payload any }
	Renew  struct{ Payload any }
	Update struct{ Payload any }
)

// Transfer carries the op attribute distinguishing query, request, cancel,
// approve, and reject.
type Transfer struct {
	Op      string `xml:"op,attr"`
	Payload any
}

// Transfer op attribute values.
const (
	TransferQuery   = "query"
	TransferRequest = "request"
	TransferCancel  = "cancel"
	TransferApprove = "approve"
	TransferReject  = "reject"
)

// Poll requests or acknowledges a queued server message.
type Poll struct {
	Op    string `xml:"op,attr"` // req | ack
	MsgID string `xml:"msgID,attr,omitempty"`
}

// Extension holds command extension payloads, each carrying its own
// namespace-qualified XMLName.
type Extension struct {
	Payloads []any
}

// Login authenticates a session. With login-security active the PW field
// carries the placeholder and the real password travels in the extension.
type Login struct {
	ClientID    string        `xml:"clID"`
	Password    string        `xml:"pw"`
	NewPassword *string       `xml:"newPW,omitempty"`
	Options     LoginOptions  `xml:"options"`
	Services    LoginServices `xml:"svcs"`
}

// LoginOptions pins the negotiated protocol version and language.
type LoginOptions struct {
	Version  string `xml:"version"`
	Language string `xml:"lang"`
}

// LoginServices names the object and extension URIs the client will use.
type LoginServices struct {
	ObjectURIs   []string      `xml:"objURI"`
	SvcExtension *SvcExtension `xml:"svcExtension,omitempty"`
}

// ============================================================================
// Response
// ============================================================================

// Response is the reply envelope: one or more results, an optional message
// queue header, an optional data payload, optional extensions, and the
// transaction ids.
type Response struct {
	Results   []Result       `xml:"result"`
	MsgQ      *MsgQ          `xml:"msgQ"`
	ResData   *ResData       `xml:"resData"`
	Extension *RespExtension `xml:"extension"`
	TrID      TrID           `xml:"trID"`
}

// Result carries one four-digit result code with its human-readable message
// and any server diagnostics.
type Result struct {
	Code      int        `xml:"code,attr"`
	Message   ResultMsg  `xml:"msg"`
	ExtValues []ExtValue `xml:"extValue"`
}

// ResultMsg is the message text with its optional language attribute.
type ResultMsg struct {
	Lang string `xml:"lang,attr,omitempty"`
	Text string `xml:",chardata"`
}

// ExtValue is a server diagnostic: an echo of the offending value plus a
// reason string.
type ExtValue struct {
	Value  ExtValueValue `xml:"value"`
	Reason string        `xml:"reason"`
}

// ExtValueValue preserves the raw offending XML for diagnostics.
type ExtValueValue struct {
	Raw string `xml:",innerxml"`
}

// MsgQ announces queued service messages. Count and ID appear on every
// response while messages wait; QDate and Msg only on poll responses.
type MsgQ struct {
	Count uint64    `xml:"count,attr"`
	ID    string    `xml:"id,attr"`
	QDate string    `xml:"qDate"`
	Msg   *MixedMsg `xml:"msg"`
}

// MixedMsg captures the human-readable text and, for registries that embed
// structured payloads inside msg, the raw inner XML.
type MixedMsg struct {
	Lang string `xml:"lang,attr,omitempty"`
	Text string `xml:",chardata"`
	Raw  string `xml:",innerxml"`
}

// TrID pairs the client and server transaction identifiers.
type TrID struct {
	ClTRID string `xml:"clTRID,omitempty"`
	SvTRID string `xml:"svTRID,omitempty"`
}

// FirstResult returns the leading result, or a zero Result when the
// response carries none (a schema violation some test servers commit).
func (r *Response) FirstResult() Result {
	if len(r.Results) == 0 {
		return Result{}
	}
	return r.Results[0]
}

// ============================================================================
// Result codes
// ============================================================================

// Result codes referenced by name. The full RFC 5730 table is larger; only
// the codes the session manager and decoders branch on are named.
const (
	CodeSuccess           = 1000
	CodeSuccessPending    = 1001
	CodeNoMessages        = 1300
	CodeMessagePresent    = 1301
	CodeSuccessEndSession = 1500

	CodeUnimplementedOption  = 2102
	CodeAuthorizationError   = 2201
	CodeObjectNotExists      = 2303
	CodeCommandFailed        = 2400
	CodeCommandFailedClosing = 2500
	CodeAuthFailedClosing    = 2501
	CodeSessionLimitClosing  = 2502
)

// IsSuccess reports whether code is in the 1000-1500 success family.
func IsSuccess(code int) bool {
	return code >= 1000 && code <= 1500
}

// IsPending reports whether the action was queued for offline review.
func IsPending(code int) bool {
	return code == CodeSuccessPending
}

// IsClosing reports whether the server will end the session after this
// response: a 1500 logout acknowledgement or a 2500-range teardown.
func IsClosing(code int) bool {
	return code == CodeSuccessEndSession ||
		(code >= CodeCommandFailedClosing && code <= CodeSessionLimitClosing)
}

// IsServerError reports whether code is in the 2500 server-error range.
func IsServerError(code int) bool {
	return code >= CodeCommandFailedClosing && code <= CodeSessionLimitClosing
}

// ============================================================================
// Shared leaf types
// ============================================================================

// Period is a validity period in years or months. Value is kept as a
// string because chardata fields must be; NewPeriod formats it.
type Period struct {
	Unit  string `xml:"unit,attr"`
	Value string `xml:",chardata"`
}

// NewPeriod builds a period element, clamping the value into [1, 99] as
// required for serialisation.
func NewPeriod(unit string, value int) *Period {
	if value < 1 {
		value = 1
	}
	if value > 99 {
		value = 99
	}
	return &Period{Unit: unit, Value: fmt.Sprintf("%d", value)}
}

// Years reads a period value back as an int, zero when absent or garbled.
func (p *Period) Years() int {
	if p == nil {
		return 0
	}
	var n int
	_, _ = fmt.Sscanf(p.Value, "%d", &n)
	return n
}

// AuthInfo is the authorisation information element shared by the domain
// and contact mappings; the namespace is inherited from the enclosing
// object element.
type AuthInfo struct {
	PW   *AuthInfoPW `xml:"pw,omitempty"`
	Null *struct{}   `xml:"null,omitempty"`
}

// AuthInfoPW is a password, optionally scoped to another object's ROID.
type AuthInfoPW struct {
	ROID string `xml:"roid,attr,omitempty"`
	PW   string `xml:",chardata"`
}

// NewAuthInfo wraps a plain password.
func NewAuthInfo(pw string) *AuthInfo {
	return &AuthInfo{PW: &AuthInfoPW{PW: pw}}
}

// Password returns the plain password, empty when absent.
func (a *AuthInfo) Password() string {
	if a == nil || a.PW == nil {
		return ""
	}
	return a.PW.PW
}

// timeLayouts covers the date-time shapes registries emit: RFC 3339 with
// and without fractional seconds, naive date-times, and bare dates.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses a registry timestamp, trying each known layout.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
