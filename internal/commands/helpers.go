package commands

import (
	"encoding/xml"
	"time"

	"github.com/registryops/eppproxy/internal/epp"
)

func xmlName(ns, local string) xml.Name {
	return xml.Name{Space: ns, Local: local}
}

// parseTime reads a registry timestamp leniently: zero when absent or in
// a shape no registry has emitted before. Callers treat zero as "not
// reported"; a garbled optional date must not fail the whole response.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := epp.ParseTime(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// extOf returns the response extension block, never nil, so decoders can
// chain lookups without nil checks.
func extOf(resp *epp.Response) *epp.RespExtension {
	if resp.Extension == nil {
		return &epp.RespExtension{}
	}
	return resp.Extension
}

// addExtension appends a command extension payload, allocating the
// extension block on first use.
func addExtension(cmd *epp.Command, payload any) {
	if cmd.Extension == nil {
		cmd.Extension = &epp.Extension{}
	}
	cmd.Extension.Payloads = append(cmd.Extension.Payloads, payload)
}
