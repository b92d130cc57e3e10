package main

import (
	"fmt"
	"net"
	"os"
)

// envDaemonChild marks a process started by spawnDaemon.
const envDaemonChild = "FACILITATOR_DAEMON_CHILD"

// inheritedListenerFD is the descriptor spawnDaemon passes the bound listener on.
const inheritedListenerFD = 3

func isDaemonChild() bool {
	return os.Getenv(envDaemonChild) == "1"
}

// listen binds addr, or adopts the listener inherited from the parent when
// running as the daemon child.
func listen(addr string) (net.Listener, error) {
	if isDaemonChild() {
		f := os.NewFile(inheritedListenerFD, "listener")
		if f == nil {
			return nil, fmt.Errorf("no inherited listener on fd %d", inheritedListenerFD)
		}
		defer f.Close()
		ln, err := net.FileListener(f)
		if err != nil {
			return nil, fmt.Errorf("can't adopt inherited listener, err: %w", err)
		}
		return ln, nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("can't listen on %s, err: %w", addr, err)
	}
	return ln, nil
}
