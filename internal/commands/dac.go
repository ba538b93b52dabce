package commands

import "time"

// Nominet DAC (Domain Availability Checker) operations. These do not
// travel over the EPP session: the session manager answers them from its
// DAC line-protocol client when the registry configures DAC endpoints.
// The types live here so every caller-facing operation shares one request
// vocabulary; there are no dispatch-table entries for them.

// DACEnvironment selects the real-time or time-delayed DAC endpoint.
type DACEnvironment string

const (
	DACRealTime  DACEnvironment = "real-time"
	DACTimeDelay DACEnvironment = "time-delay"
)

// DACDomainRequest queries one domain's registration state.
type DACDomainRequest struct {
	Domain      string
	Environment DACEnvironment
}

func (*DACDomainRequest) Op() Op { return OpDACDomain }

// DACDomainResponse is the registration state answer.
type DACDomainResponse struct {
	Domain     string
	Registered bool
	Detagged   bool
	Created    time.Time
	Expires    time.Time
	Tag        string
}

// DACUsageRequest queries the rolling usage counters (#usage).
type DACUsageRequest struct {
	Environment DACEnvironment
}

func (*DACUsageRequest) Op() Op { return OpDACUsage }

// DACUsageResponse reports usage over the 60-second and 24-hour windows.
type DACUsageResponse struct {
	Usage60  uint64
	Usage24h uint64
}

// DACLimitsRequest queries the remaining query allowance (#limits).
type DACLimitsRequest struct {
	Environment DACEnvironment
}

func (*DACLimitsRequest) Op() Op { return OpDACLimits }

// DACLimitsResponse reports the remaining allowance per window.
type DACLimitsResponse struct {
	Limit60  uint64
	Limit24h uint64
}

// IsDAC reports whether the operation is served by the DAC client rather
// than the EPP transport.
func IsDAC(op Op) bool {
	switch op {
	case OpDACDomain, OpDACUsage, OpDACLimits:
		return true
	}
	return false
}
