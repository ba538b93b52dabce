package dac

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registryops/eppproxy/internal/commands"
)

// startFakeDAC serves scripted replies on a loopback listener.
func startFakeDAC(t *testing.T, answer func(query string) string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				rd := bufio.NewReader(conn)
				for {
					q, err := rd.ReadString('\n')
					if err != nil {
						return
					}
					fmt.Fprintf(conn, "%s\r\n", answer(strings.TrimRight(q, "\r\n")))
				}
			}(conn)
		}
	}()
	return ln.Addr().String()
}

func TestDomainQuery(t *testing.T) {
	addr := startFakeDAC(t, func(q string) string {
		switch q {
		case "registered.co.uk":
			return "registered.co.uk,Y,2005-05-12,2026-05-12,EXAMPLE-TAG"
		case "free.co.uk":
			return "free.co.uk,N"
		case "dropped.co.uk":
			return "dropped.co.uk,D,2001-01-01,2020-01-01,"
		default:
			return q + ",N"
		}
	})
	client := New(Config{RealTimeAddr: addr, Timeout: time.Second})
	defer client.Close()

	t.Run("Registered", func(t *testing.T) {
		res, err := client.Domain(context.Background(), &commands.DACDomainRequest{Domain: "registered.co.uk"})
		require.NoError(t, err)
		assert.True(t, res.Registered)
		assert.False(t, res.Detagged)
		assert.Equal(t, "EXAMPLE-TAG", res.Tag)
		assert.Equal(t, 2005, res.Created.Year())
		assert.Equal(t, 2026, res.Expires.Year())
	})

	t.Run("Available", func(t *testing.T) {
		res, err := client.Domain(context.Background(), &commands.DACDomainRequest{Domain: "free.co.uk"})
		require.NoError(t, err)
		assert.False(t, res.Registered)
	})

	t.Run("Detagged", func(t *testing.T) {
		res, err := client.Domain(context.Background(), &commands.DACDomainRequest{Domain: "dropped.co.uk"})
		require.NoError(t, err)
		assert.True(t, res.Registered)
		assert.True(t, res.Detagged)
	})

	t.Run("LowercasesInput", func(t *testing.T) {
		res, err := client.Domain(context.Background(), &commands.DACDomainRequest{Domain: "FREE.co.uk"})
		require.NoError(t, err)
		assert.Equal(t, "free.co.uk", res.Domain)
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		_, err := client.Domain(context.Background(), &commands.DACDomainRequest{Domain: "  "})
		require.Error(t, err)
	})
}

func TestCounters(t *testing.T) {
	addr := startFakeDAC(t, func(q string) string {
		switch q {
		case "#usage":
			return "#usage,42,1000"
		case "#limits":
			return "#limits,18,59000"
		default:
			return q + ",N"
		}
	})
	client := New(Config{RealTimeAddr: addr, Timeout: time.Second})
	defer client.Close()

	usage, err := client.Usage(context.Background(), &commands.DACUsageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 42, usage.Usage60)
	assert.EqualValues(t, 1000, usage.Usage24h)

	limits, err := client.Limits(context.Background(), &commands.DACLimitsRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 18, limits.Limit60)
	assert.EqualValues(t, 59000, limits.Limit24h)
}

func TestEnvironmentSelection(t *testing.T) {
	client := New(Config{RealTimeAddr: "", TimeDelayAddr: ""})
	defer client.Close()

	_, err := client.Domain(context.Background(), &commands.DACDomainRequest{Domain: "foo.co.uk"})
	assert.ErrorIs(t, err, commands.ErrUnsupported)

	_, err = client.Domain(context.Background(), &commands.DACDomainRequest{
		Domain:      "foo.co.uk",
		Environment: commands.DACEnvironment("weird"),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, commands.ErrUnsupported)
}

func TestMalformedReplies(t *testing.T) {
	addr := startFakeDAC(t, func(q string) string {
		switch q {
		case "other.co.uk":
			return "mismatch.co.uk,Y"
		case "#usage":
			return "#usage,not,numbers"
		default:
			return q + ",Z"
		}
	})
	client := New(Config{RealTimeAddr: addr, Timeout: time.Second})
	defer client.Close()

	_, err := client.Domain(context.Background(), &commands.DACDomainRequest{Domain: "other.co.uk"})
	assert.ErrorIs(t, err, commands.ErrServerInternal)

	_, err = client.Domain(context.Background(), &commands.DACDomainRequest{Domain: "flag.co.uk"})
	assert.ErrorIs(t, err, commands.ErrServerInternal)

	_, err = client.Usage(context.Background(), &commands.DACUsageRequest{})
	assert.ErrorIs(t, err, commands.ErrServerInternal)
}
