package commands

import "github.com/registryops/eppproxy/internal/epp"

// Nominet registrar operations. The tag list is served on the nom-tag
// namespace (a subordinate session when the parent logged in without it);
// release, handshake, and locks travel as update payloads in their own
// namespaces.

func init() {
	register(OpNominetTagList, &handler{name: "nominet tag list", encode: encodeNominetTagList, decode: decodeNominetTagList})
	register(OpNominetHandshakeAccept, &handler{name: "nominet handshake accept", encode: encodeNominetHandshake, decode: decodeNominetHandshake})
	register(OpNominetHandshakeReject, &handler{name: "nominet handshake reject", encode: encodeNominetHandshake, decode: decodeNominetHandshake})
	register(OpNominetRelease, &handler{name: "nominet release", encode: encodeNominetRelease, decode: decodeNominetRelease})
	register(OpNominetLock, &handler{name: "nominet lock", encode: encodeNominetLock, decode: decodeNominetLock})
	register(OpNominetUnlock, &handler{name: "nominet unlock", encode: encodeNominetLock, decode: decodeNominetLock})
}

// ============================================================================
// Tag list
// ============================================================================

// NominetTagListRequest fetches the registrar tag directory.
type NominetTagListRequest struct{}

func (*NominetTagListRequest) Op() Op { return OpNominetTagList }

// NominetTagListResponse is the tag directory.
type NominetTagListResponse struct {
	Tags []NominetTag
}

// NominetTag is one registrar entry.
type NominetTag struct {
	Tag        string
	Name       string
	TradeName  string
	Handshakes bool
}

func encodeNominetTagList(f Features, req Request) (*epp.Command, error) {
	if !f.HasObject(epp.NSNominetTag) {
		return nil, Unsupported("nominet tag namespace")
	}
	return &epp.Command{Info: &epp.Info{Payload: &epp.NominetTagList{}}}, nil
}

func decodeNominetTagList(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.NominetTagList == nil {
		return nil, mismatch(OpNominetTagList)
	}
	out := &NominetTagListResponse{}
	for _, tag := range resp.ResData.NominetTagList.Tags {
		out.Tags = append(out.Tags, NominetTag{
			Tag:        tag.Tag,
			Name:       tag.Name,
			TradeName:  tag.TradeName,
			Handshakes: tag.Handshake == "Y",
		})
	}
	return out, nil
}

// ============================================================================
// Handshake
// ============================================================================

// NominetHandshakeRequest answers a pending release case. Accept is read
// from the request's op; Registrant optionally reassigns on accept.
type NominetHandshakeRequest struct {
	Accept     bool
	CaseID     string
	Registrant string
}

func (r *NominetHandshakeRequest) Op() Op {
	if r.Accept {
		return OpNominetHandshakeAccept
	}
	return OpNominetHandshakeReject
}

// NominetHandshakeResponse lists the domains the case moved.
type NominetHandshakeResponse struct {
	CaseID  string
	Domains []string
}

func encodeNominetHandshake(f Features, req Request) (*epp.Command, error) {
	r := req.(*NominetHandshakeRequest)
	if !f.HasExtension(epp.NSNominetHandshake) && !f.HasObject(epp.NSNominetHandshake) {
		return nil, Unsupported("nominet handshake namespace")
	}
	if r.CaseID == "" {
		return nil, Errf("case id is required")
	}

	var payload any
	if r.Accept {
		payload = &epp.NominetHandshakeAccept{CaseID: r.CaseID, Registrant: r.Registrant}
	} else {
		payload = &epp.NominetHandshakeReject{CaseID: r.CaseID}
	}
	return &epp.Command{Update: &epp.Update{Payload: payload}}, nil
}

func decodeNominetHandshake(resp *epp.Response) (any, error) {
	out := &NominetHandshakeResponse{}
	if resp.ResData != nil && resp.ResData.NominetHandshake != nil {
		out.CaseID = resp.ResData.NominetHandshake.CaseID
		out.Domains = resp.ResData.NominetHandshake.Domains
	}
	return out, nil
}

// ============================================================================
// Release
// ============================================================================

// NominetReleaseRequest moves a domain to another registrar tag.
type NominetReleaseRequest struct {
	Domain       string
	RegistrarTag string
}

func (*NominetReleaseRequest) Op() Op { return OpNominetRelease }

// NominetReleaseResponse reports whether the gaining registrar still has
// to handshake.
type NominetReleaseResponse struct {
	Pending bool
	Message string
}

func encodeNominetRelease(f Features, req Request) (*epp.Command, error) {
	r := req.(*NominetReleaseRequest)
	if !f.HasExtension(epp.NSNominetRelease) && !f.HasObject(epp.NSNominetRelease) {
		return nil, Unsupported("nominet release namespace")
	}
	if err := checkDomainName(r.Domain); err != nil {
		return nil, err
	}
	if r.RegistrarTag == "" {
		return nil, Errf("registrar tag is required")
	}
	return &epp.Command{Update: &epp.Update{Payload: &epp.NominetRelease{
		DomainName:   r.Domain,
		RegistrarTag: r.RegistrarTag,
	}}}, nil
}

func decodeNominetRelease(resp *epp.Response) (any, error) {
	out := &NominetReleaseResponse{Message: resp.FirstResult().Message.Text}
	out.Pending = epp.IsPending(resp.FirstResult().Code)
	return out, nil
}

// ============================================================================
// Locks
// ============================================================================

// NominetLockRequest applies or removes an investigation lock. Unlock is
// read from the request's op.
type NominetLockRequest struct {
	Unlock    bool
	LockType  string // investigation | opt-out
	Domain    string
	ContactID string
}

func (r *NominetLockRequest) Op() Op {
	if r.Unlock {
		return OpNominetUnlock
	}
	return OpNominetLock
}

// NominetLockResponse is empty; the envelope carries the outcome.
type NominetLockResponse struct{}

func encodeNominetLock(f Features, req Request) (*epp.Command, error) {
	r := req.(*NominetLockRequest)
	if !f.HasExtension(epp.NSNominetLocks) && !f.HasObject(epp.NSNominetLocks) {
		return nil, Unsupported("nominet locks namespace")
	}
	if r.Domain == "" && r.ContactID == "" {
		return nil, Errf("a domain name or contact id is required")
	}
	if r.ContactID != "" {
		if err := checkContactID(r.ContactID); err != nil {
			return nil, err
		}
	}
	lockType := r.LockType
	if lockType == "" {
		lockType = "investigation"
	}

	lock := &epp.NominetLock{Type: lockType, DomainName: r.Domain, ContactID: r.ContactID}
	if r.Domain != "" {
		lock.Object = "domain"
	} else {
		lock.Object = "contact"
	}
	return &epp.Command{Update: &epp.Update{Payload: lock}}, nil
}

func decodeNominetLock(resp *epp.Response) (any, error) {
	return &NominetLockResponse{}, nil
}
