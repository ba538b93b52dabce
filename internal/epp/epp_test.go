package epp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCodeClassification(t *testing.T) {
	assert.True(t, IsSuccess(CodeSuccess))
	assert.True(t, IsSuccess(CodeSuccessPending))
	assert.True(t, IsSuccess(CodeNoMessages))
	assert.True(t, IsSuccess(CodeSuccessEndSession))
	assert.False(t, IsSuccess(CodeCommandFailed))

	assert.True(t, IsPending(CodeSuccessPending))
	assert.False(t, IsPending(CodeSuccess))

	assert.True(t, IsClosing(CodeSuccessEndSession))
	assert.True(t, IsClosing(CodeCommandFailedClosing))
	assert.True(t, IsClosing(CodeSessionLimitClosing))
	assert.False(t, IsClosing(CodeCommandFailed))

	assert.True(t, IsServerError(CodeCommandFailedClosing))
	assert.True(t, IsServerError(CodeAuthFailedClosing))
	assert.False(t, IsServerError(CodeSuccessEndSession))
}

func TestMarshalEmitsXMLDeclaration(t *testing.T) {
	data, err := Marshal(&EPP{Hello: &Hello{}})
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0"`), "missing declaration: %s", text)
	assert.Contains(t, text, "<hello")
}

func TestUnmarshalGreeting(t *testing.T) {
	const greeting = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <greeting>
    <svID>Example EPP server</svID>
    <svDate>2026-08-26T12:00:00.0Z</svDate>
    <svcMenu>
      <version>1.0</version>
      <lang>en</lang>
      <lang>fr</lang>
      <objURI>urn:ietf:params:xml:ns:domain-1.0</objURI>
      <objURI>urn:ietf:params:xml:ns:host-1.0</objURI>
      <svcExtension>
        <extURI>urn:ietf:params:xml:ns:secDNS-1.1</extURI>
      </svcExtension>
    </svcMenu>
  </greeting>
</epp>`

	msg, err := Unmarshal([]byte(greeting))
	require.NoError(t, err)
	require.NotNil(t, msg.Greeting)

	g := msg.Greeting
	assert.Equal(t, "Example EPP server", g.ServerID)
	assert.Equal(t, []string{"en", "fr"}, g.SvcMenu.Languages)
	assert.Contains(t, g.SvcMenu.ObjectURIs, NSDomain)
	assert.Contains(t, g.SvcMenu.ObjectURIs, NSHost)
	require.NotNil(t, g.SvcMenu.SvcExtension)
	assert.Contains(t, g.SvcMenu.SvcExtension.ExtensionURIs, NSSecDNS)
}

func TestUnmarshalResponseResult(t *testing.T) {
	const response = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="2303">
      <msg>Object does not exist</msg>
    </result>
    <trID>
      <clTRID>ABC-12345</clTRID>
      <svTRID>SV-67890</svTRID>
    </trID>
  </response>
</epp>`

	msg, err := Unmarshal([]byte(response))
	require.NoError(t, err)
	require.NotNil(t, msg.Response)

	result := msg.Response.FirstResult()
	assert.Equal(t, CodeObjectNotExists, result.Code)
	assert.Equal(t, "Object does not exist", result.Message.Text)
	assert.Equal(t, "ABC-12345", msg.Response.TrID.ClTRID)
	assert.Equal(t, "SV-67890", msg.Response.TrID.SvTRID)
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("not xml at all"))
	assert.Error(t, err)
}

func TestPeriodClamping(t *testing.T) {
	assert.Equal(t, "1", NewPeriod("y", 0).Value)
	assert.Equal(t, "99", NewPeriod("y", 500).Value)
	assert.Equal(t, "2", NewPeriod("y", 2).Value)
	assert.Equal(t, 2, NewPeriod("y", 2).Years())
}

func TestParseTimeLayouts(t *testing.T) {
	for _, s := range []string{
		"2026-08-26T12:00:00Z",
		"2026-08-26T12:00:00.0Z",
		"2026-08-26T12:00:00+02:00",
	} {
		ts, err := ParseTime(s)
		require.NoError(t, err, s)
		assert.False(t, ts.IsZero(), s)
	}

	_, err := ParseTime("yesterday")
	assert.Error(t, err)
}
