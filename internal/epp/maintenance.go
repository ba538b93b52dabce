package epp

import "encoding/xml"

// maintenance-1.0 extension (RFC 9167): scheduled registry maintenance
// windows, queried as info commands.

// MaintInfo queries either the maintenance list or one item by id.
// Exactly one of List or ID is set.
type MaintInfo struct {
	XMLName xml.Name  `xml:"urn:ietf:params:xml:ns:epp:maintenance-1.0 info"`
	List    *struct{} `xml:"list,omitempty"`
	ID      string    `xml:"id,omitempty"`
}

// MaintInfoData is the infData response payload: a list or one item.
type MaintInfoData struct {
	List *MaintList `xml:"list"`
	Item *MaintItem `xml:"maint"`
}

// MaintList is the list form of the response.
type MaintList struct {
	Items []MaintListItem `xml:"listItem"`
}

// MaintListItem is one list entry: just enough to decide whether to fetch
// the detail.
type MaintListItem struct {
	ID     MaintID `xml:"id"`
	Start  string  `xml:"start"`
	End    string  `xml:"end"`
	CrDate string  `xml:"crDate"`
	UpDate string  `xml:"upDate"`
}

// MaintItem is the detail form of the response.
type MaintItem struct {
	ID           MaintID            `xml:"id"`
	Type         []string           `xml:"type"`
	PollType     string             `xml:"pollType"`
	Systems      []MaintSystem      `xml:"systems>system"`
	Environment  MaintEnvironment   `xml:"environment"`
	Start        string             `xml:"start"`
	End          string             `xml:"end"`
	Reason       string             `xml:"reason"`
	Detail       string             `xml:"detail"`
	Description  []string           `xml:"description"`
	TLDs         []string           `xml:"tlds>tld"`
	Intervention *MaintIntervention `xml:"intervention"`
	CrDate       string             `xml:"crDate"`
	UpDate       string             `xml:"upDate"`
}

// MaintID is the maintenance identifier with its optional display name.
type MaintID struct {
	Name string `xml:"name,attr,omitempty"`
	ID   string `xml:",chardata"`
}

// MaintSystem names one affected system endpoint.
type MaintSystem struct {
	Name   string `xml:"name"`
	Host   string `xml:"host"`
	Impact string `xml:"impact"` // full | partial | none
}

// MaintEnvironment says which environment the window affects.
type MaintEnvironment struct {
	Type string `xml:"type,attr"` // production | ote | staging | dev | custom
	Name string `xml:"name,attr,omitempty"`
}

// MaintIntervention flags whether registrar action is needed.
type MaintIntervention struct {
	Connection     bool `xml:"connection"`
	Implementation bool `xml:"implementation"`
}
