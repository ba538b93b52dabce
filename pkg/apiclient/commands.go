package apiclient

import (
	"encoding/json"
	"fmt"

	"github.com/registryops/eppproxy/internal/commands"
)

// Envelope is the result envelope every command route returns.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Pending bool   `json:"pending"`
	ClTRID  string `json:"cl_trid"`
	SvTRID  string `json:"sv_trid"`
}

type rawResult struct {
	Envelope
	Payload json.RawMessage `json:"payload"`
}

// command posts a typed request and decodes the payload into T.
func command[T any](c *Client, path string, target Target, body any) (*T, *Envelope, error) {
	var raw rawResult
	if err := c.post("/api/v1"+path+target.query(), body, &raw); err != nil {
		return nil, nil, err
	}

	var payload T
	if len(raw.Payload) > 0 {
		if err := json.Unmarshal(raw.Payload, &payload); err != nil {
			return nil, nil, fmt.Errorf("failed to decode payload: %w", err)
		}
	}
	return &payload, &raw.Envelope, nil
}

// Domain operations.

func (c *Client) DomainCheck(t Target, req commands.DomainCheckRequest) (*commands.DomainCheckResponse, *Envelope, error) {
	return command[commands.DomainCheckResponse](c, "/domains/check", t, req)
}

func (c *Client) DomainClaimsCheck(t Target, req commands.DomainClaimsCheckRequest) (*commands.DomainClaimsCheckResponse, *Envelope, error) {
	return command[commands.DomainClaimsCheckResponse](c, "/domains/claims-check", t, req)
}

func (c *Client) DomainInfo(t Target, req commands.DomainInfoRequest) (*commands.DomainInfoResponse, *Envelope, error) {
	return command[commands.DomainInfoResponse](c, "/domains/info", t, req)
}

func (c *Client) DomainCreate(t Target, req commands.DomainCreateRequest) (*commands.DomainCreateResponse, *Envelope, error) {
	return command[commands.DomainCreateResponse](c, "/domains/create", t, req)
}

func (c *Client) DomainDelete(t Target, req commands.DomainDeleteRequest) (*commands.DomainDeleteResponse, *Envelope, error) {
	return command[commands.DomainDeleteResponse](c, "/domains/delete", t, req)
}

func (c *Client) DomainUpdate(t Target, req commands.DomainUpdateRequest) (*commands.DomainUpdateResponse, *Envelope, error) {
	return command[commands.DomainUpdateResponse](c, "/domains/update", t, req)
}

func (c *Client) DomainRenew(t Target, req commands.DomainRenewRequest) (*commands.DomainRenewResponse, *Envelope, error) {
	return command[commands.DomainRenewResponse](c, "/domains/renew", t, req)
}

func (c *Client) DomainTransfer(t Target, req commands.DomainTransferRequest) (*commands.DomainTransferResponse, *Envelope, error) {
	return command[commands.DomainTransferResponse](c, "/domains/transfer", t, req)
}

func (c *Client) DomainRestore(t Target, req commands.DomainRestoreRequest) (*commands.DomainRestoreResponse, *Envelope, error) {
	return command[commands.DomainRestoreResponse](c, "/domains/restore", t, req)
}

// Host operations.

func (c *Client) HostCheck(t Target, req commands.HostCheckRequest) (*commands.HostCheckResponse, *Envelope, error) {
	return command[commands.HostCheckResponse](c, "/hosts/check", t, req)
}

func (c *Client) HostInfo(t Target, req commands.HostInfoRequest) (*commands.HostInfoResponse, *Envelope, error) {
	return command[commands.HostInfoResponse](c, "/hosts/info", t, req)
}

func (c *Client) HostCreate(t Target, req commands.HostCreateRequest) (*commands.HostCreateResponse, *Envelope, error) {
	return command[commands.HostCreateResponse](c, "/hosts/create", t, req)
}

func (c *Client) HostDelete(t Target, req commands.HostDeleteRequest) (*commands.HostDeleteResponse, *Envelope, error) {
	return command[commands.HostDeleteResponse](c, "/hosts/delete", t, req)
}

func (c *Client) HostUpdate(t Target, req commands.HostUpdateRequest) (*commands.HostUpdateResponse, *Envelope, error) {
	return command[commands.HostUpdateResponse](c, "/hosts/update", t, req)
}

// Contact operations. Contact ids carry no zone, so the target must
// name a registry.

func (c *Client) ContactCheck(t Target, req commands.ContactCheckRequest) (*commands.ContactCheckResponse, *Envelope, error) {
	return command[commands.ContactCheckResponse](c, "/contacts/check", t, req)
}

func (c *Client) ContactInfo(t Target, req commands.ContactInfoRequest) (*commands.ContactInfoResponse, *Envelope, error) {
	return command[commands.ContactInfoResponse](c, "/contacts/info", t, req)
}

func (c *Client) ContactCreate(t Target, req commands.ContactCreateRequest) (*commands.ContactCreateResponse, *Envelope, error) {
	return command[commands.ContactCreateResponse](c, "/contacts/create", t, req)
}

func (c *Client) ContactDelete(t Target, req commands.ContactDeleteRequest) (*commands.ContactDeleteResponse, *Envelope, error) {
	return command[commands.ContactDeleteResponse](c, "/contacts/delete", t, req)
}

func (c *Client) ContactUpdate(t Target, req commands.ContactUpdateRequest) (*commands.ContactUpdateResponse, *Envelope, error) {
	return command[commands.ContactUpdateResponse](c, "/contacts/update", t, req)
}

func (c *Client) ContactTransfer(t Target, req commands.ContactTransferRequest) (*commands.ContactTransferResponse, *Envelope, error) {
	return command[commands.ContactTransferResponse](c, "/contacts/transfer", t, req)
}

// Poll operations.

func (c *Client) PollRequest(t Target) (*commands.PollResponse, *Envelope, error) {
	return command[commands.PollResponse](c, "/poll/request", t, nil)
}

func (c *Client) PollAck(t Target, msgID string) (*commands.PollAckResponse, *Envelope, error) {
	return command[commands.PollAckResponse](c, "/poll/ack", t, commands.PollAckRequest{MsgID: msgID})
}

// Registrar account operations.

func (c *Client) BalanceInfo(t Target) (*commands.BalanceInfoResponse, *Envelope, error) {
	return command[commands.BalanceInfoResponse](c, "/balance", t, nil)
}

func (c *Client) MaintenanceList(t Target) (*commands.MaintenanceListResponse, *Envelope, error) {
	return command[commands.MaintenanceListResponse](c, "/maintenance/list", t, nil)
}

func (c *Client) MaintenanceInfo(t Target, req commands.MaintenanceInfoRequest) (*commands.MaintenanceInfoResponse, *Envelope, error) {
	return command[commands.MaintenanceInfoResponse](c, "/maintenance/info", t, req)
}

// Nominet operations.

func (c *Client) NominetTagList(t Target) (*commands.NominetTagListResponse, *Envelope, error) {
	return command[commands.NominetTagListResponse](c, "/nominet/tag-list", t, nil)
}

func (c *Client) NominetHandshake(t Target, req commands.NominetHandshakeRequest) (*commands.NominetHandshakeResponse, *Envelope, error) {
	return command[commands.NominetHandshakeResponse](c, "/nominet/handshake", t, req)
}

func (c *Client) NominetRelease(t Target, req commands.NominetReleaseRequest) (*commands.NominetReleaseResponse, *Envelope, error) {
	return command[commands.NominetReleaseResponse](c, "/nominet/release", t, req)
}

func (c *Client) NominetLock(t Target, req commands.NominetLockRequest) (*commands.NominetLockResponse, *Envelope, error) {
	return command[commands.NominetLockResponse](c, "/nominet/lock", t, req)
}

// EURid operations.

func (c *Client) EuridHitPoints(t Target) (*commands.EuridHitPointsResponse, *Envelope, error) {
	return command[commands.EuridHitPointsResponse](c, "/eurid/hit-points", t, nil)
}

func (c *Client) EuridRegistrationLimit(t Target) (*commands.EuridRegistrationLimitResponse, *Envelope, error) {
	return command[commands.EuridRegistrationLimitResponse](c, "/eurid/registration-limit", t, nil)
}

func (c *Client) EuridDNSQuality(t Target, req commands.EuridDNSQualityRequest) (*commands.EuridDNSQualityResponse, *Envelope, error) {
	return command[commands.EuridDNSQualityResponse](c, "/eurid/dns-quality", t, req)
}

func (c *Client) EuridDNSSECEligibility(t Target, req commands.EuridDNSSECEligibilityRequest) (*commands.EuridDNSSECEligibilityResponse, *Envelope, error) {
	return command[commands.EuridDNSSECEligibilityResponse](c, "/eurid/dnssec-eligibility", t, req)
}

// TMCH mark operations.

func (c *Client) MarkCheck(t Target, req commands.MarkCheckRequest) (*commands.MarkCheckResponse, *Envelope, error) {
	return command[commands.MarkCheckResponse](c, "/marks/check", t, req)
}

func (c *Client) MarkInfo(t Target, req commands.MarkInfoRequest) (*commands.MarkInfoResponse, *Envelope, error) {
	return command[commands.MarkInfoResponse](c, "/marks/info", t, req)
}

func (c *Client) MarkCreate(t Target, req commands.MarkCreateRequest) (*commands.MarkCreateResponse, *Envelope, error) {
	return command[commands.MarkCreateResponse](c, "/marks/create", t, req)
}

func (c *Client) MarkUpdate(t Target, req commands.MarkUpdateRequest) (*commands.MarkUpdateResponse, *Envelope, error) {
	return command[commands.MarkUpdateResponse](c, "/marks/update", t, req)
}

func (c *Client) MarkRenew(t Target, req commands.MarkRenewRequest) (*commands.MarkRenewResponse, *Envelope, error) {
	return command[commands.MarkRenewResponse](c, "/marks/renew", t, req)
}

func (c *Client) MarkTransfer(t Target, req commands.MarkTransferRequest) (*commands.MarkTransferResponse, *Envelope, error) {
	return command[commands.MarkTransferResponse](c, "/marks/transfer", t, req)
}

// DAC operations.

func (c *Client) DACDomain(t Target, req commands.DACDomainRequest) (*commands.DACDomainResponse, *Envelope, error) {
	return command[commands.DACDomainResponse](c, "/dac/domain", t, req)
}

func (c *Client) DACUsage(t Target, req commands.DACUsageRequest) (*commands.DACUsageResponse, *Envelope, error) {
	return command[commands.DACUsageResponse](c, "/dac/usage", t, req)
}

func (c *Client) DACLimits(t Target, req commands.DACLimitsRequest) (*commands.DACLimitsResponse, *Envelope, error) {
	return command[commands.DACLimitsResponse](c, "/dac/limits", t, req)
}
