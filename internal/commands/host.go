package commands

import (
	"time"

	"github.com/registryops/eppproxy/internal/epp"
)

// Host object commands (RFC 5732).

func init() {
	register(OpHostCheck, &handler{name: "host check", encode: encodeHostCheck, decode: decodeHostCheck})
	register(OpHostInfo, &handler{name: "host info", encode: encodeHostInfo, decode: decodeHostInfo})
	register(OpHostCreate, &handler{name: "host create", encode: encodeHostCreate, decode: decodeHostCreate})
	register(OpHostDelete, &handler{name: "host delete", encode: encodeHostDelete, decode: decodeHostDelete})
	register(OpHostUpdate, &handler{name: "host update", encode: encodeHostUpdate, decode: decodeHostUpdate})
}

// HostAddress is one glue address with its IP version.
type HostAddress struct {
	Address string
	V6      bool
}

// HostStatus is one status value with its optional reason.
type HostStatus struct {
	Status string
	Reason string
}

func encodeHostAddrs(addrs []HostAddress) []epp.HostAddr {
	var out []epp.HostAddr
	for _, addr := range addrs {
		version := "v4"
		if addr.V6 {
			version = "v6"
		}
		out = append(out, epp.HostAddr{IP: version, Address: addr.Address})
	}
	return out
}

func decodeHostAddrs(addrs []epp.HostAddr) []HostAddress {
	var out []HostAddress
	for _, addr := range addrs {
		out = append(out, HostAddress{Address: addr.Address, V6: addr.IP == "v6"})
	}
	return out
}

// ============================================================================
// Check
// ============================================================================

// HostCheckRequest queries availability for host names.
type HostCheckRequest struct {
	Hosts []string
}

func (*HostCheckRequest) Op() Op { return OpHostCheck }

// HostCheckResponse reports per-host availability.
type HostCheckResponse struct {
	Results []HostCheckResult
}

// HostCheckResult is one host's availability.
type HostCheckResult struct {
	Name      string
	Available bool
	Reason    string
}

func encodeHostCheck(f Features, req Request) (*epp.Command, error) {
	r := req.(*HostCheckRequest)
	if !f.HasObject(epp.NSHost) {
		return nil, Unsupported("host mapping")
	}
	if len(r.Hosts) == 0 {
		return nil, Errf("at least one host name is required")
	}
	for _, name := range r.Hosts {
		if err := checkDomainName(name); err != nil {
			return nil, err
		}
	}
	return &epp.Command{Check: &epp.Check{Payload: &epp.HostCheck{Names: r.Hosts}}}, nil
}

func decodeHostCheck(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.HostCheck == nil {
		return nil, mismatch(OpHostCheck)
	}
	out := &HostCheckResponse{}
	for _, cd := range resp.ResData.HostCheck.Results {
		out.Results = append(out.Results, HostCheckResult{
			Name:      cd.Name.Name,
			Available: cd.Name.Available,
			Reason:    cd.Reason,
		})
	}
	return out, nil
}

// ============================================================================
// Info
// ============================================================================

// HostInfoRequest fetches one host object.
type HostInfoRequest struct {
	Host string
}

func (*HostInfoRequest) Op() Op { return OpHostInfo }

// HostInfoResponse is the full object.
type HostInfoResponse struct {
	Name         string
	ROID         string
	Statuses     []HostStatus
	Addresses    []HostAddress
	SponsoringID string
	CreatedBy    string
	Created      time.Time
	UpdatedBy    string
	Updated      time.Time
	Transferred  time.Time
}

func encodeHostInfo(f Features, req Request) (*epp.Command, error) {
	r := req.(*HostInfoRequest)
	if !f.HasObject(epp.NSHost) {
		return nil, Unsupported("host mapping")
	}
	if err := checkDomainName(r.Host); err != nil {
		return nil, err
	}
	return &epp.Command{Info: &epp.Info{Payload: &epp.HostInfo{Name: r.Host}}}, nil
}

func decodeHostInfo(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.HostInfo == nil {
		return nil, mismatch(OpHostInfo)
	}
	data := resp.ResData.HostInfo
	out := &HostInfoResponse{
		Name:         data.Name,
		ROID:         data.ROID,
		Addresses:    decodeHostAddrs(data.Addrs),
		SponsoringID: data.ClID,
		CreatedBy:    data.CrID,
		Created:      parseTime(data.CrDate),
		UpdatedBy:    data.UpID,
		Updated:      parseTime(data.UpDate),
		Transferred:  parseTime(data.TrDate),
	}
	for _, st := range data.Statuses {
		out.Statuses = append(out.Statuses, HostStatus{Status: st.S, Reason: st.Reason})
	}
	return out, nil
}

// ============================================================================
// Create
// ============================================================================

// HostCreateRequest registers a host, with glue addresses when the host
// is subordinate to a domain the registry serves.
type HostCreateRequest struct {
	Host      string
	Addresses []HostAddress
}

func (*HostCreateRequest) Op() Op { return OpHostCreate }

// HostCreateResponse confirms the registration.
type HostCreateResponse struct {
	Name    string
	Created time.Time
}

func encodeHostCreate(f Features, req Request) (*epp.Command, error) {
	r := req.(*HostCreateRequest)
	if !f.HasObject(epp.NSHost) {
		return nil, Unsupported("host mapping")
	}
	if err := checkDomainName(r.Host); err != nil {
		return nil, err
	}
	return &epp.Command{Create: &epp.Create{Payload: &epp.HostCreate{
		Name:  r.Host,
		Addrs: encodeHostAddrs(r.Addresses),
	}}}, nil
}

func decodeHostCreate(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.HostCreate == nil {
		return nil, mismatch(OpHostCreate)
	}
	data := resp.ResData.HostCreate
	return &HostCreateResponse{Name: data.Name, Created: parseTime(data.CrDate)}, nil
}

// ============================================================================
// Delete
// ============================================================================

// HostDeleteRequest removes a host.
type HostDeleteRequest struct {
	Host string
}

func (*HostDeleteRequest) Op() Op { return OpHostDelete }

// HostDeleteResponse is empty; the envelope carries the outcome.
type HostDeleteResponse struct{}

func encodeHostDelete(f Features, req Request) (*epp.Command, error) {
	r := req.(*HostDeleteRequest)
	if !f.HasObject(epp.NSHost) {
		return nil, Unsupported("host mapping")
	}
	if err := checkDomainName(r.Host); err != nil {
		return nil, err
	}
	return &epp.Command{Delete: &epp.Delete{Payload: &epp.HostDelete{Name: r.Host}}}, nil
}

func decodeHostDelete(resp *epp.Response) (any, error) {
	return &HostDeleteResponse{}, nil
}

// ============================================================================
// Update
// ============================================================================

// HostUpdateRequest adds and removes addresses or statuses, and can
// rename the host.
type HostUpdateRequest struct {
	Host string

	AddAddresses    []HostAddress
	RemoveAddresses []HostAddress
	AddStatuses     []HostStatus
	RemoveStatuses  []HostStatus

	NewName string
}

func (*HostUpdateRequest) Op() Op { return OpHostUpdate }

// HostUpdateResponse is empty; the envelope carries the outcome.
type HostUpdateResponse struct{}

func encodeHostUpdate(f Features, req Request) (*epp.Command, error) {
	r := req.(*HostUpdateRequest)
	if !f.HasObject(epp.NSHost) {
		return nil, Unsupported("host mapping")
	}
	if err := checkDomainName(r.Host); err != nil {
		return nil, err
	}

	update := &epp.HostUpdate{Name: r.Host}
	if len(r.AddAddresses) > 0 || len(r.AddStatuses) > 0 {
		add := &epp.HostUpdateAddRem{Addrs: encodeHostAddrs(r.AddAddresses)}
		for _, st := range r.AddStatuses {
			add.Statuses = append(add.Statuses, epp.HostStatus{S: st.Status, Reason: st.Reason})
		}
		update.Add = add
	}
	if len(r.RemoveAddresses) > 0 || len(r.RemoveStatuses) > 0 {
		rem := &epp.HostUpdateAddRem{Addrs: encodeHostAddrs(r.RemoveAddresses)}
		for _, st := range r.RemoveStatuses {
			rem.Statuses = append(rem.Statuses, epp.HostStatus{S: st.Status, Reason: st.Reason})
		}
		update.Rem = rem
	}
	if r.NewName != "" {
		update.Chg = &epp.HostUpdateChange{Name: r.NewName}
	}
	if update.Add == nil && update.Rem == nil && update.Chg == nil {
		return nil, Errf("host update carries no changes")
	}
	return &epp.Command{Update: &epp.Update{Payload: update}}, nil
}

func decodeHostUpdate(resp *epp.Response) (any, error) {
	return &HostUpdateResponse{}, nil
}
