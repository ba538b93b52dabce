package epp

import "encoding/xml"

// loginSec-1.0 login security extension (RFC 8807). RFC 5730 caps the pw
// element at 16 characters; when the server advertises this extension the
// login sends LoginSecPlaceholder in pw and the real password here.

// LoginSecPlaceholder is the mandated pw element value when the password
// travels in the extension.
const LoginSecPlaceholder = "[LOGIN-SECURITY]"

// LoginSec is the command extension on login.
type LoginSec struct {
	XMLName     xml.Name           `xml:"urn:ietf:params:xml:ns:epp:loginSec-1.0 loginSec"`
	UserAgent   *LoginSecUserAgent `xml:"userAgent,omitempty"`
	Password    string             `xml:"pw,omitempty"`
	NewPassword string             `xml:"newPW,omitempty"`
}

// LoginSecUserAgent identifies the client software to the server's
// security monitoring.
type LoginSecUserAgent struct {
	App  string `xml:"app,omitempty"`
	Tech string `xml:"tech,omitempty"`
	OS   string `xml:"os,omitempty"`
}

// LoginSecData is the response extension carrying security events
// (expiring passwords, certificate warnings, security statements).
type LoginSecData struct {
	Events []LoginSecEvent `xml:"event"`
}

// LoginSecEvent is one security event.
type LoginSecEvent struct {
	Type     string `xml:"type,attr"`
	Name     string `xml:"name,attr,omitempty"`
	Level    string `xml:"level,attr"`
	ExDate   string `xml:"exDate,attr,omitempty"`
	Value    string `xml:"value,attr,omitempty"`
	Duration string `xml:"duration,attr,omitempty"`
	Lang     string `xml:"lang,attr,omitempty"`
	Text     string `xml:",chardata"`
}
