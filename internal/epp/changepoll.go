package epp

// changePoll-1.0 change poll extension (RFC 8590). Registry-initiated
// changes arrive as poll messages whose resData is the object's infData
// and whose extension is this changeData record.

// ChangePollData describes who changed the object, how, and when. State
// says whether the embedded infData shows the object before or after the
// change.
type ChangePollData struct {
	State     string              `xml:"state,attr"` // before | after
	Operation ChangePollOperation `xml:"operation"`
	Date      string              `xml:"date"`
	SvTRID    string              `xml:"svTRID"`
	Who       string              `xml:"who"`
	CaseID    *ChangePollCaseID   `xml:"caseId"`
	Reason    *ChangePollReason   `xml:"reason"`
}

// ChangePollOperation is the operation name; op carries the sub-operation
// for custom operations.
type ChangePollOperation struct {
	Op   string `xml:"op,attr,omitempty"`
	Name string `xml:",chardata"`
}

// ChangePollCaseID links the change to an external case (UDRP, court).
type ChangePollCaseID struct {
	Type string `xml:"type,attr,omitempty"`
	Name string `xml:"name,attr,omitempty"`
	ID   string `xml:",chardata"`
}

// ChangePollReason is the reason text with its language.
type ChangePollReason struct {
	Lang string `xml:"lang,attr,omitempty"`
	Text string `xml:",chardata"`
}
