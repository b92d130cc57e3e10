//go:build !unix

package main

import (
	"errors"
	"net"
)

func spawnDaemon(net.Listener) error {
	return errDaemonUnsupported
}

var errDaemonUnsupported = errors.New("daemonizing is not supported on this platform")
