package commands

import (
	"github.com/registryops/eppproxy/internal/epp"
)

// Typed fee records shared by the domain encoders and decoders. The wire
// shapes vary across six deployed extension versions; these types are the
// single normalised form callers see.

// FeeCheckQuery asks the server to price a command alongside a check.
type FeeCheckQuery struct {
	// Currency is the ISO 4217 code, empty for the server default.
	Currency string
	// Command is the verb to price: create, renew, transfer, restore.
	Command string
	// Period is the validity period in years, zero for the default.
	Period int
}

// FeeAgreement states the fees the caller agrees to pay on a transform
// command. Registries that advertise a fee extension may reject
// transforms without it.
type FeeAgreement struct {
	Currency string
	Fees     []FeeValue
}

// FeeValue is one fee or credit line. Value stays a string; the proxy
// never does arithmetic on money.
type FeeValue struct {
	Description string
	Value       string
}

// FeeQuote is the per-object answer to a FeeCheckQuery.
type FeeQuote struct {
	Currency string
	Class    string
	Fees     []FeeValue
	Credits  []FeeValue
}

// FeeTotals is the fee outcome attached to a transform response.
type FeeTotals struct {
	Currency    string
	Fees        []FeeValue
	Credits     []FeeValue
	Balance     string
	CreditLimit string
}

// buildFeeCheck renders the query in the newest advertised version's
// shape. names are the objects of the enclosing check; the legacy shapes
// repeat the query per name.
func buildFeeCheck(version string, names []string, q *FeeCheckQuery) any {
	var period *epp.Period
	if q.Period > 0 {
		period = epp.NewPeriod("y", q.Period)
	}

	switch version {
	case epp.NSFee10, epp.NSFee011:
		return &epp.FeeCheckModern{
			XMLName:  xmlName(version, "check"),
			Currency: q.Currency,
			Command: epp.FeeCommandModern{
				Name:   q.Command,
				Period: period,
			},
		}
	case epp.NSFee09:
		chk := &epp.FeeCheck09{}
		for _, name := range names {
			chk.Objects = append(chk.Objects, epp.FeeCheckObject09{
				ObjURI:   epp.NSDomain,
				ObjID:    epp.FeeObjID{Element: "name", ID: name},
				Currency: q.Currency,
				Command:  epp.FeeCommandEl{Name: q.Command},
				Period:   period,
			})
		}
		return chk
	default: // 0.5, 0.7, 0.8
		chk := &epp.FeeCheckLegacy{XMLName: xmlName(version, "check")}
		for _, name := range names {
			chk.Domains = append(chk.Domains, epp.FeeCheckDomainLegacy{
				Name:     name,
				Currency: q.Currency,
				Command:  epp.FeeCommandEl{Name: q.Command},
				Period:   period,
			})
		}
		return chk
	}
}

// buildFeeTransform renders a fee agreement for the given transform verb
// in the newest advertised version's shape.
func buildFeeTransform(version, verb string, a *FeeAgreement) any {
	tr := &epp.FeeTransform{
		XMLName:  xmlName(version, verb),
		Currency: a.Currency,
	}
	for _, fee := range a.Fees {
		tr.Fees = append(tr.Fees, epp.FeeAmount{Description: fee.Description, Value: fee.Value})
	}
	return tr
}

// decodeFeeQuotes maps the fee check answer back onto the checked names,
// whichever version shape the server used.
func decodeFeeQuotes(ext *epp.RespExtension) map[string]*FeeQuote {
	quotes := make(map[string]*FeeQuote)

	if legacy := ext.FeeCheckLegacyData(); legacy != nil {
		for _, cd := range legacy.CDs {
			q := &FeeQuote{Currency: cd.Currency, Class: cd.Class}
			for _, fee := range cd.Fees {
				q.Fees = append(q.Fees, FeeValue{Description: fee.Description, Value: fee.Value})
			}
			quotes[cd.ObjectName()] = q
		}
		return quotes
	}

	if modern := ext.FeeCheckModernData(); modern != nil {
		for _, cd := range modern.CDs {
			q := &FeeQuote{Currency: modern.Currency, Class: cd.Class}
			for _, cmd := range cd.Commands {
				for _, fee := range cmd.Fees {
					q.Fees = append(q.Fees, FeeValue{Description: fee.Description, Value: fee.Value})
				}
				for _, credit := range cmd.Credits {
					q.Credits = append(q.Credits, FeeValue{Description: credit.Description, Value: credit.Value})
				}
			}
			quotes[cd.ObjID] = q
		}
	}
	return quotes
}

// decodeFeeTotals lifts a transform fee answer, nil when the server sent
// none.
func decodeFeeTotals(ext *epp.RespExtension, verb string) *FeeTotals {
	data := ext.FeeTransform(verb)
	if data == nil {
		return nil
	}
	totals := &FeeTotals{
		Currency:    data.Currency,
		Balance:     data.Balance,
		CreditLimit: data.CreditLimit,
	}
	for _, fee := range data.Fees {
		totals.Fees = append(totals.Fees, FeeValue{Description: fee.Description, Value: fee.Value})
	}
	for _, credit := range data.Credits {
		totals.Credits = append(totals.Credits, FeeValue{Description: credit.Description, Value: credit.Value})
	}
	return totals
}
