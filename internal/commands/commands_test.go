package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registryops/eppproxy/internal/epp"
)

// fakeFeatures is a test feature set: advertised URIs plus an errata tag.
type fakeFeatures struct {
	objects    map[string]bool
	extensions map[string]bool
	errata     string
}

func (f *fakeFeatures) HasObject(uri string) bool    { return f.objects[uri] }
func (f *fakeFeatures) HasExtension(uri string) bool { return f.extensions[uri] }
func (f *fakeFeatures) Errata() string               { return f.errata }

func coreFeatures() *fakeFeatures {
	return &fakeFeatures{
		objects: map[string]bool{
			epp.NSDomain:  true,
			epp.NSHost:    true,
			epp.NSContact: true,
		},
		extensions: map[string]bool{},
	}
}

func successResponse(resData *epp.ResData, ext *epp.RespExtension) *epp.Response {
	return &epp.Response{
		Results:   []epp.Result{{Code: epp.CodeSuccess, Message: epp.ResultMsg{Text: "Command completed successfully"}}},
		ResData:   resData,
		Extension: ext,
		TrID:      epp.TrID{ClTRID: "11111111-2222-3333-4444-555555555555", SvTRID: "SV-1"},
	}
}

func TestEncodeDomainCheck(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		cmd, err := Encode(coreFeatures(), &DomainCheckRequest{Domains: []string{"foo.example"}})
		require.NoError(t, err)
		require.NotNil(t, cmd.Check)
		payload := cmd.Check.Payload.(*epp.DomainCheck)
		assert.Equal(t, []string{"foo.example"}, payload.Names)
		assert.Nil(t, cmd.Extension)
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		_, err := Encode(coreFeatures(), &DomainCheckRequest{Domains: []string{"  "}})
		var cmdErr *Error
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, KindErr, cmdErr.Kind)
	})

	t.Run("NoDomainMapping", func(t *testing.T) {
		f := &fakeFeatures{objects: map[string]bool{}, extensions: map[string]bool{}}
		_, err := Encode(f, &DomainCheckRequest{Domains: []string{"foo.example"}})
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("FeeWithoutExtensionIsUnsupported", func(t *testing.T) {
		_, err := Encode(coreFeatures(), &DomainCheckRequest{
			Domains: []string{"foo.example"},
			Fee:     &FeeCheckQuery{Command: "create"},
		})
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("FeePicksNewestVersion", func(t *testing.T) {
		f := coreFeatures()
		f.extensions[epp.NSFee08] = true
		f.extensions[epp.NSFee10] = true

		cmd, err := Encode(f, &DomainCheckRequest{
			Domains: []string{"foo.example"},
			Fee:     &FeeCheckQuery{Command: "create", Period: 2},
		})
		require.NoError(t, err)
		require.NotNil(t, cmd.Extension)
		require.Len(t, cmd.Extension.Payloads, 1)
		chk := cmd.Extension.Payloads[0].(*epp.FeeCheckModern)
		assert.Equal(t, epp.NSFee10, chk.XMLName.Space)
		assert.Equal(t, "create", chk.Command.Name)
	})
}

func TestDecodeDomainCheck(t *testing.T) {
	t.Run("AvailabilityAndReason", func(t *testing.T) {
		resp := successResponse(&epp.ResData{DomainCheck: &epp.DomainCheckData{
			Results: []epp.DomainCheckResult{
				{Name: epp.DomainCheckName{Available: true, Name: "foo.example"}},
				{Name: epp.DomainCheckName{Available: false, Name: "bar.example"}, Reason: "in use"},
			},
		}}, nil)

		result, err := Decode(OpDomainCheck, resp)
		require.NoError(t, err)
		payload := result.Payload.(*DomainCheckResponse)
		require.Len(t, payload.Results, 2)
		assert.True(t, payload.Results[0].Available)
		assert.False(t, payload.Results[1].Available)
		assert.Equal(t, "in use", payload.Results[1].Reason)
		assert.Equal(t, "SV-1", result.Envelope.SvTRID)
	})

	t.Run("MissingPayloadIsServerInternal", func(t *testing.T) {
		_, err := Decode(OpDomainCheck, successResponse(nil, nil))
		assert.ErrorIs(t, err, ErrServerInternal)
	})

	t.Run("FeeQuotesAttach", func(t *testing.T) {
		resp := successResponse(&epp.ResData{DomainCheck: &epp.DomainCheckData{
			Results: []epp.DomainCheckResult{{Name: epp.DomainCheckName{Available: true, Name: "foo.example"}}},
		}}, &epp.RespExtension{FeeChk10: &epp.FeeCheckDataModern{
			Currency: "USD",
			CDs: []epp.FeeCheckCDModern{{
				Avail: true,
				ObjID: "foo.example",
				Commands: []epp.FeeCommandResult{{
					Name: "create",
					Fees: []epp.FeeAmount{{Description: "registration", Value: "10.00"}},
				}},
			}},
		}})

		result, err := Decode(OpDomainCheck, resp)
		require.NoError(t, err)
		payload := result.Payload.(*DomainCheckResponse)
		require.NotNil(t, payload.Results[0].Fee)
		assert.Equal(t, "USD", payload.Results[0].Fee.Currency)
		require.Len(t, payload.Results[0].Fee.Fees, 1)
		assert.Equal(t, "10.00", payload.Results[0].Fee.Fees[0].Value)
	})
}

func TestEncodeDomainCreate(t *testing.T) {
	t.Run("RegistrantStrippedByErrata", func(t *testing.T) {
		f := coreFeatures()
		f.errata = "verisign-com"

		cmd, err := Encode(f, &DomainCreateRequest{
			Domain:     "foo.example",
			Registrant: "REG-1234",
			Contacts:   []DomainContact{{Role: "admin", ID: "ADM-1234"}},
			AuthInfo:   "secret99",
		})
		require.NoError(t, err)
		create := cmd.Create.Payload.(*epp.DomainCreate)
		assert.Empty(t, create.Registrant)
		assert.Empty(t, create.Contacts)
		assert.Equal(t, "secret99", create.AuthInfo.Password())
	})

	t.Run("RegistrantKeptByDefault", func(t *testing.T) {
		cmd, err := Encode(coreFeatures(), &DomainCreateRequest{
			Domain:     "foo.example",
			Registrant: "REG-1234",
		})
		require.NoError(t, err)
		create := cmd.Create.Payload.(*epp.DomainCreate)
		assert.Equal(t, "REG-1234", create.Registrant)
	})

	t.Run("AuthInfoBounds", func(t *testing.T) {
		_, err := Encode(coreFeatures(), &DomainCreateRequest{Domain: "foo.example", AuthInfo: "shrt"})
		var cmdErr *Error
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, KindErr, cmdErr.Kind)
	})

	t.Run("SecDNSRequiresExtension", func(t *testing.T) {
		_, err := Encode(coreFeatures(), &DomainCreateRequest{
			Domain: "foo.example",
			SecDNS: &SecDNSData{DS: []DSRecord{{KeyTag: 12345, Algorithm: 13, DigestType: 2, Digest: "ab"}}},
		})
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("GlueBecomesHostAttrs", func(t *testing.T) {
		cmd, err := Encode(coreFeatures(), &DomainCreateRequest{
			Domain: "foo.example",
			Nameservers: []Nameserver{
				{Host: "ns1.other.example"},
				{Host: "ns1.foo.example", V4: []string{"192.0.2.1"}, V6: []string{"2001:db8::1"}},
			},
		})
		require.NoError(t, err)
		create := cmd.Create.Payload.(*epp.DomainCreate)
		require.NotNil(t, create.NS)
		assert.Equal(t, []string{"ns1.other.example"}, create.NS.HostObjs)
		require.Len(t, create.NS.HostAttrs, 1)
		assert.Len(t, create.NS.HostAttrs[0].Addrs, 2)
	})
}

func TestContactValidation(t *testing.T) {
	t.Run("IDTooShort", func(t *testing.T) {
		_, err := Encode(coreFeatures(), &ContactInfoRequest{ID: "ab"})
		var cmdErr *Error
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, KindErr, cmdErr.Kind)
	})

	t.Run("IDTooLong", func(t *testing.T) {
		_, err := Encode(coreFeatures(), &ContactInfoRequest{ID: "12345678901234567"})
		assert.Error(t, err)
	})

	t.Run("IDAtBounds", func(t *testing.T) {
		for _, id := range []string{"abc", "1234567890123456"} {
			_, err := Encode(coreFeatures(), &ContactInfoRequest{ID: id})
			assert.NoError(t, err, "id %q should pass", id)
		}
	})
}

func TestTransferEncoding(t *testing.T) {
	t.Run("RequestNeedsAuthInfo", func(t *testing.T) {
		_, err := Encode(coreFeatures(), &DomainTransferRequest{
			Transfer: TransferRequest,
			Domain:   "foo.example",
		})
		require.Error(t, err)
	})

	t.Run("QueryWithoutAuthInfo", func(t *testing.T) {
		cmd, err := Encode(coreFeatures(), &DomainTransferRequest{
			Transfer: TransferQuery,
			Domain:   "foo.example",
		})
		require.NoError(t, err)
		assert.Equal(t, "query", cmd.Transfer.Op)
	})

	t.Run("UnknownOpRejected", func(t *testing.T) {
		_, err := Encode(coreFeatures(), &DomainTransferRequest{
			Transfer: TransferOp("steal"),
			Domain:   "foo.example",
		})
		require.Error(t, err)
	})
}

func TestDecodeErrors(t *testing.T) {
	t.Run("ClientErrorSurfacesMessage", func(t *testing.T) {
		resp := &epp.Response{Results: []epp.Result{{
			Code:    2201,
			Message: epp.ResultMsg{Text: "Authorization error"},
		}}}
		_, err := Decode(OpDomainInfo, resp)
		var cmdErr *Error
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, KindErr, cmdErr.Kind)
		assert.Contains(t, cmdErr.Message, "Authorization error")
	})

	t.Run("GenericCommandFailedIsErr", func(t *testing.T) {
		resp := &epp.Response{Results: []epp.Result{{
			Code:    2400,
			Message: epp.ResultMsg{Text: "Command failed"},
		}}}
		_, err := Decode(OpDomainCreate, resp)
		var cmdErr *Error
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, KindErr, cmdErr.Kind)
	})

	t.Run("ServerClosingIsServerInternal", func(t *testing.T) {
		resp := &epp.Response{Results: []epp.Result{{
			Code:    2500,
			Message: epp.ResultMsg{Text: "Command failed; server closing connection"},
		}}}
		_, err := Decode(OpDomainCreate, resp)
		assert.ErrorIs(t, err, ErrServerInternal)
	})

	t.Run("KindMatchingIgnoresMessage", func(t *testing.T) {
		assert.True(t, errors.Is(Errf("anything"), &Error{Kind: KindErr}))
		assert.False(t, errors.Is(NotReady(), ErrTimeout))
	})
}

func TestDecodePoll(t *testing.T) {
	t.Run("EmptyQueue", func(t *testing.T) {
		resp := &epp.Response{Results: []epp.Result{{Code: epp.CodeNoMessages, Message: epp.ResultMsg{Text: "no messages"}}}}
		result, err := Decode(OpPollRequest, resp)
		require.NoError(t, err)
		assert.Nil(t, result.Payload.(*PollResponse).Message)
	})

	t.Run("TransferNotification", func(t *testing.T) {
		resp := &epp.Response{
			Results: []epp.Result{{Code: epp.CodeMessagePresent, Message: epp.ResultMsg{Text: "message present"}}},
			MsgQ: &epp.MsgQ{
				Count: 3,
				ID:    "12345",
				QDate: "2026-08-01T00:00:00Z",
				Msg:   &epp.MixedMsg{Text: "Transfer requested."},
			},
			ResData: &epp.ResData{DomainTransfer: &epp.DomainTransferData{
				Name:     "foo.example",
				TrStatus: "pending",
				ReID:     "GAINING",
				AcID:     "LOSING",
			}},
		}
		result, err := Decode(OpPollRequest, resp)
		require.NoError(t, err)
		msg := result.Payload.(*PollResponse).Message
		require.NotNil(t, msg)
		assert.Equal(t, "12345", msg.ID)
		assert.EqualValues(t, 3, msg.Count)
		transfer := msg.Data.(*DomainTransferResponse)
		assert.Equal(t, "pending", transfer.Status)
	})

	t.Run("ChangePollExtension", func(t *testing.T) {
		resp := &epp.Response{
			Results: []epp.Result{{Code: epp.CodeMessagePresent}},
			MsgQ:    &epp.MsgQ{Count: 1, ID: "77"},
			Extension: &epp.RespExtension{ChangePoll: &epp.ChangePollData{
				State:     "after",
				Operation: epp.ChangePollOperation{Name: "update"},
				Date:      "2026-08-01T00:00:00Z",
				Who:       "csr",
			}},
		}
		result, err := Decode(OpPollRequest, resp)
		require.NoError(t, err)
		msg := result.Payload.(*PollResponse).Message
		require.NotNil(t, msg.Change)
		assert.Equal(t, "update", msg.Change.Operation)
		assert.Equal(t, "after", msg.Change.State)
	})
}

func TestDecodeDomainInfoExtensions(t *testing.T) {
	resp := successResponse(&epp.ResData{DomainInfo: &epp.DomainInfoData{
		Name:   "foo.example",
		ROID:   "D123-REG",
		CrDate: "2020-01-02T03:04:05Z",
		ExDate: "2027-01-02T03:04:05Z",
		NS: &epp.DomainNS{
			HostObjs: []string{"ns1.foo.example"},
		},
	}}, &epp.RespExtension{
		RGPInfo:    &epp.RGPInfoData{Statuses: []epp.RGPStatus{{S: "addPeriod"}}},
		SecDNSInfo: &epp.SecDNSInfoData{DSData: []epp.SecDNSDSData{{KeyTag: 12345, Alg: 13, DigestType: 2, Digest: "abcd"}}},
	})

	result, err := Decode(OpDomainInfo, resp)
	require.NoError(t, err)
	info := result.Payload.(*DomainInfoResponse)
	assert.Equal(t, []string{"addPeriod"}, info.RGPStatuses)
	require.NotNil(t, info.SecDNS)
	require.Len(t, info.SecDNS.DS, 1)
	assert.EqualValues(t, 12345, info.SecDNS.DS[0].KeyTag)
	assert.Equal(t, time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC), info.Created)
}

func TestRestoreEncoding(t *testing.T) {
	f := coreFeatures()
	f.extensions[epp.NSRGP] = true

	t.Run("Request", func(t *testing.T) {
		cmd, err := Encode(f, &DomainRestoreRequest{Domain: "foo.example"})
		require.NoError(t, err)
		require.NotNil(t, cmd.Update)
		require.Len(t, cmd.Extension.Payloads, 1)
		rgp := cmd.Extension.Payloads[0].(*epp.RGPUpdate)
		assert.Equal(t, "request", rgp.Restore.Op)
		assert.Nil(t, rgp.Restore.Report)
	})

	t.Run("Report", func(t *testing.T) {
		cmd, err := Encode(f, &DomainRestoreRequest{
			Domain: "foo.example",
			Report: &RestoreReport{
				PreData:  "pre",
				PostData: "post",
				Deleted:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
				Restored: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
				Reason:   "registrant error",
			},
		})
		require.NoError(t, err)
		rgp := cmd.Extension.Payloads[0].(*epp.RGPUpdate)
		assert.Equal(t, "report", rgp.Restore.Op)
		require.NotNil(t, rgp.Restore.Report)
	})

	t.Run("WithoutRGPUnsupported", func(t *testing.T) {
		_, err := Encode(coreFeatures(), &DomainRestoreRequest{Domain: "foo.example"})
		assert.ErrorIs(t, err, ErrUnsupported)
	})
}

func TestDispatchTable(t *testing.T) {
	t.Run("EveryHandlerComplete", func(t *testing.T) {
		for op, h := range handlers {
			assert.NotEmpty(t, h.name, "handler %s has no name", op)
			assert.NotNil(t, h.encode, "handler %s has no encoder", op)
			assert.NotNil(t, h.decode, "handler %s has no decoder", op)
		}
	})

	t.Run("DACOpsStayOutOfTable", func(t *testing.T) {
		for _, op := range []Op{OpDACDomain, OpDACUsage, OpDACLimits} {
			assert.False(t, Supported(op))
			assert.True(t, IsDAC(op))
		}
		assert.False(t, IsDAC(OpDomainCheck))
	})
}
