//go:build unix

package main

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"syscall"
)

// spawnDaemon re-executes the running binary in a new session, handing it ln as
// file descriptor 3. The caller exits once it returns nil.
func spawnDaemon(ln net.Listener) error {
	tcpLn, ok := ln.(*net.TCPListener)
	if !ok {
		return fmt.Errorf("can't daemonize with listener of type %T", ln)
	}
	f, err := tcpLn.File()
	if err != nil {
		return fmt.Errorf("can't get listener file, err: %w", err)
	}
	defer f.Close()

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("can't locate executable, err: %w", err)
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), envDaemonChild+"=1")
	cmd.ExtraFiles = []*os.File{f}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("can't start daemon process, err: %w", err)
	}
	return cmd.Process.Release()
}
