//go:build unix

// Package sysutil holds small platform helpers used at process startup.
package sysutil

import (
	"golang.org/x/sys/unix"
)

// RaiseFileLimit lifts the soft RLIMIT_NOFILE up to the hard limit. A
// proxy fronting many registries holds a TLS connection, audit file
// handles and API sockets per tenant, and distribution defaults of
// 1024 are too low. Returns the resulting soft limit.
func RaiseFileLimit() (uint64, error) {
	var lim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
		return 0, err
	}
	if lim.Cur >= lim.Max {
		return lim.Cur, nil
	}

	lim.Cur = lim.Max
	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
		return 0, err
	}
	return lim.Cur, nil
}
