package commands

import (
	"time"

	"github.com/registryops/eppproxy/internal/epp"
)

// Registrar account operations: the Verisign balance query, RFC 9167
// maintenance windows, and the EURid registrar info family. All are info
// commands in registry-specific namespaces.

func init() {
	register(OpBalanceInfo, &handler{name: "balance info", encode: encodeBalanceInfo, decode: decodeBalanceInfo})
	register(OpMaintenanceList, &handler{name: "maintenance list", encode: encodeMaintenanceList, decode: decodeMaintenanceList})
	register(OpMaintenanceInfo, &handler{name: "maintenance info", encode: encodeMaintenanceInfo, decode: decodeMaintenanceInfo})
	register(OpEuridHitPoints, &handler{name: "eurid hit points", encode: encodeEuridHitPoints, decode: decodeEuridHitPoints})
	register(OpEuridRegistrationLimit, &handler{name: "eurid registration limit", encode: encodeEuridRegistrationLimit, decode: decodeEuridRegistrationLimit})
	register(OpEuridDNSQuality, &handler{name: "eurid dns quality", encode: encodeEuridDNSQuality, decode: decodeEuridDNSQuality})
	register(OpEuridDNSSECEligibility, &handler{name: "eurid dnssec eligibility", encode: encodeEuridDNSSECEligibility, decode: decodeEuridDNSSECEligibility})
}

// ============================================================================
// Balance
// ============================================================================

// BalanceInfoRequest queries the account balance.
type BalanceInfoRequest struct{}

func (*BalanceInfoRequest) Op() Op { return OpBalanceInfo }

// BalanceInfoResponse is the account state. Values stay strings; the
// proxy does no arithmetic on money.
type BalanceInfoResponse struct {
	Balance          string
	CreditLimit      string
	AvailableCredit  string
	ThresholdFixed   string
	ThresholdPercent string
}

func encodeBalanceInfo(f Features, req Request) (*epp.Command, error) {
	if !f.HasObject(epp.NSVerisignBalance) && !f.HasExtension(epp.NSVerisignBalance) {
		return nil, Unsupported("balance namespace")
	}
	return &epp.Command{Info: &epp.Info{Payload: &epp.BalanceInfo{}}}, nil
}

func decodeBalanceInfo(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.Balance == nil {
		return nil, mismatch(OpBalanceInfo)
	}
	data := resp.ResData.Balance
	out := &BalanceInfoResponse{
		Balance:         data.Balance,
		CreditLimit:     data.CreditLimit,
		AvailableCredit: data.AvailableCredit,
	}
	if data.CreditThreshold != nil {
		out.ThresholdFixed = data.CreditThreshold.Fixed
		out.ThresholdPercent = data.CreditThreshold.Percentage
	}
	return out, nil
}

// ============================================================================
// Maintenance
// ============================================================================

// MaintenanceListRequest fetches the scheduled maintenance windows.
type MaintenanceListRequest struct{}

func (*MaintenanceListRequest) Op() Op { return OpMaintenanceList }

// MaintenanceListResponse is the window list.
type MaintenanceListResponse struct {
	Items []MaintenanceListItem
}

// MaintenanceListItem is one window summary.
type MaintenanceListItem struct {
	ID      string
	Name    string
	Start   time.Time
	End     time.Time
	Created time.Time
	Updated time.Time
}

// MaintenanceInfoRequest fetches one window's detail.
type MaintenanceInfoRequest struct {
	ID string
}

func (*MaintenanceInfoRequest) Op() Op { return OpMaintenanceInfo }

// MaintenanceInfoResponse is the window detail.
type MaintenanceInfoResponse struct {
	ID          string
	Name        string
	Types       []string
	Systems     []MaintenanceSystem
	Environment string
	Start       time.Time
	End         time.Time
	Reason      string
	Detail      string
	Description []string
	TLDs        []string
	Created     time.Time
	Updated     time.Time
}

// MaintenanceSystem is one affected endpoint.
type MaintenanceSystem struct {
	Name   string
	Host   string
	Impact string
}

func encodeMaintenanceList(f Features, req Request) (*epp.Command, error) {
	if !f.HasExtension(epp.NSMaint) && !f.HasObject(epp.NSMaint) {
		return nil, Unsupported("maintenance namespace")
	}
	return &epp.Command{Info: &epp.Info{Payload: &epp.MaintInfo{List: &struct{}{}}}}, nil
}

func decodeMaintenanceList(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.Maintenance == nil || resp.ResData.Maintenance.List == nil {
		return nil, mismatch(OpMaintenanceList)
	}
	out := &MaintenanceListResponse{}
	for _, item := range resp.ResData.Maintenance.List.Items {
		out.Items = append(out.Items, MaintenanceListItem{
			ID:      item.ID.ID,
			Name:    item.ID.Name,
			Start:   parseTime(item.Start),
			End:     parseTime(item.End),
			Created: parseTime(item.CrDate),
			Updated: parseTime(item.UpDate),
		})
	}
	return out, nil
}

func encodeMaintenanceInfo(f Features, req Request) (*epp.Command, error) {
	r := req.(*MaintenanceInfoRequest)
	if !f.HasExtension(epp.NSMaint) && !f.HasObject(epp.NSMaint) {
		return nil, Unsupported("maintenance namespace")
	}
	if r.ID == "" {
		return nil, Errf("maintenance id is required")
	}
	return &epp.Command{Info: &epp.Info{Payload: &epp.MaintInfo{ID: r.ID}}}, nil
}

func decodeMaintenanceInfo(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.Maintenance == nil || resp.ResData.Maintenance.Item == nil {
		return nil, mismatch(OpMaintenanceInfo)
	}
	item := resp.ResData.Maintenance.Item
	out := &MaintenanceInfoResponse{
		ID:          item.ID.ID,
		Name:        item.ID.Name,
		Types:       item.Type,
		Environment: item.Environment.Type,
		Start:       parseTime(item.Start),
		End:         parseTime(item.End),
		Reason:      item.Reason,
		Detail:      item.Detail,
		Description: item.Description,
		TLDs:        item.TLDs,
		Created:     parseTime(item.CrDate),
		Updated:     parseTime(item.UpDate),
	}
	for _, sys := range item.Systems {
		out.Systems = append(out.Systems, MaintenanceSystem{Name: sys.Name, Host: sys.Host, Impact: sys.Impact})
	}
	return out, nil
}

// ============================================================================
// EURid registrar info
// ============================================================================

// EuridHitPointsRequest queries hit-point consumption.
type EuridHitPointsRequest struct{}

func (*EuridHitPointsRequest) Op() Op { return OpEuridHitPoints }

// EuridHitPointsResponse is the hit-point state.
type EuridHitPointsResponse struct {
	HitPoints    uint64
	MaxHitPoints uint64
	BlockedUntil time.Time
}

func encodeEuridHitPoints(f Features, req Request) (*epp.Command, error) {
	if !f.HasExtension(epp.NSEuridHitPoints) && !f.HasObject(epp.NSEuridHitPoints) {
		return nil, Unsupported("eurid hit points namespace")
	}
	return &epp.Command{Info: &epp.Info{Payload: &epp.EuridHitPointsInfo{}}}, nil
}

func decodeEuridHitPoints(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.EuridHitPoints == nil {
		return nil, mismatch(OpEuridHitPoints)
	}
	data := resp.ResData.EuridHitPoints
	return &EuridHitPointsResponse{
		HitPoints:    data.HitPoints,
		MaxHitPoints: data.MaxHitPoints,
		BlockedUntil: parseTime(data.BlockedUntil),
	}, nil
}

// EuridRegistrationLimitRequest queries the monthly registration cap.
type EuridRegistrationLimitRequest struct{}

func (*EuridRegistrationLimitRequest) Op() Op { return OpEuridRegistrationLimit }

// EuridRegistrationLimitResponse is the cap state. MaxMonthly is nil for
// registrars without a cap.
type EuridRegistrationLimitResponse struct {
	Monthly      uint64
	MaxMonthly   *uint64
	LimitedUntil time.Time
}

func encodeEuridRegistrationLimit(f Features, req Request) (*epp.Command, error) {
	if !f.HasExtension(epp.NSEuridRegLimit) && !f.HasObject(epp.NSEuridRegLimit) {
		return nil, Unsupported("eurid registration limit namespace")
	}
	return &epp.Command{Info: &epp.Info{Payload: &epp.EuridRegistrationLimitInfo{}}}, nil
}

func decodeEuridRegistrationLimit(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.EuridRegistrationLimit == nil {
		return nil, mismatch(OpEuridRegistrationLimit)
	}
	data := resp.ResData.EuridRegistrationLimit
	return &EuridRegistrationLimitResponse{
		Monthly:      data.Monthly,
		MaxMonthly:   data.MaxMonthly,
		LimitedUntil: parseTime(data.LimitedUntil),
	}, nil
}

// EuridDNSQualityRequest queries a domain's DNS quality score.
type EuridDNSQualityRequest struct {
	Domain string
}

func (*EuridDNSQualityRequest) Op() Op { return OpEuridDNSQuality }

// EuridDNSQualityResponse is the score. Score stays a string; the schema
// allows non-numeric values.
type EuridDNSQualityResponse struct {
	Name      string
	CheckedAt time.Time
	Score     string
}

func encodeEuridDNSQuality(f Features, req Request) (*epp.Command, error) {
	r := req.(*EuridDNSQualityRequest)
	if !f.HasExtension(epp.NSEuridDNSQuality) && !f.HasObject(epp.NSEuridDNSQuality) {
		return nil, Unsupported("eurid dns quality namespace")
	}
	if err := checkDomainName(r.Domain); err != nil {
		return nil, err
	}
	return &epp.Command{Info: &epp.Info{Payload: &epp.EuridDNSQualityInfo{Name: r.Domain}}}, nil
}

func decodeEuridDNSQuality(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.EuridDNSQuality == nil {
		return nil, mismatch(OpEuridDNSQuality)
	}
	data := resp.ResData.EuridDNSQuality
	return &EuridDNSQualityResponse{
		Name:      data.Name,
		CheckedAt: parseTime(data.CheckedAt),
		Score:     data.Score,
	}, nil
}

// EuridDNSSECEligibilityRequest queries DNSSEC discount eligibility.
type EuridDNSSECEligibilityRequest struct {
	Domain string
}

func (*EuridDNSSECEligibilityRequest) Op() Op { return OpEuridDNSSECEligibility }

// EuridDNSSECEligibilityResponse is the eligibility answer.
type EuridDNSSECEligibilityResponse struct {
	Name     string
	Eligible bool
	Message  string
	Code     int
}

func encodeEuridDNSSECEligibility(f Features, req Request) (*epp.Command, error) {
	r := req.(*EuridDNSSECEligibilityRequest)
	if !f.HasExtension(epp.NSEuridDNSSECElig) && !f.HasObject(epp.NSEuridDNSSECElig) {
		return nil, Unsupported("eurid dnssec eligibility namespace")
	}
	if err := checkDomainName(r.Domain); err != nil {
		return nil, err
	}
	return &epp.Command{Info: &epp.Info{Payload: &epp.EuridDNSSECEligibilityInfo{Name: r.Domain}}}, nil
}

func decodeEuridDNSSECEligibility(resp *epp.Response) (any, error) {
	if resp.ResData == nil || resp.ResData.EuridDNSSECEligibility == nil {
		return nil, mismatch(OpEuridDNSSECEligibility)
	}
	data := resp.ResData.EuridDNSSECEligibility
	return &EuridDNSSECEligibilityResponse{
		Name:     data.Name,
		Eligible: data.Eligible,
		Message:  data.Message,
		Code:     data.Code,
	}, nil
}
