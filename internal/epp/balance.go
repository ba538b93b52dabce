package epp

import "encoding/xml"

// Verisign balance extension: account balance as an info command.

// BalanceInfo queries the account balance.
type BalanceInfo struct {
	XMLName xml.Name `xml:"http://www.verisign.com/epp/balance-1.0 info"`
}

// BalanceData is the infData response payload. Monetary values stay
// strings; the proxy never does arithmetic on them.
type BalanceData struct {
	CreditLimit     string                  `xml:"creditLimit"`
	Balance         string                  `xml:"balance"`
	AvailableCredit string                  `xml:"availableCredit"`
	CreditThreshold *BalanceCreditThreshold `xml:"creditThreshold"`
}

// BalanceCreditThreshold is the low-balance alarm point, fixed or
// percentage.
type BalanceCreditThreshold struct {
	Fixed      string `xml:"fixed"`
	Percentage string `xml:"percentage"`
}
