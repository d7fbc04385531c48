//go:build !windows

package netconfig

import (
	"net"

	"golang.org/x/sys/unix"
)

func setTTL(conn *net.TCPConn, ttl int) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	err = raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_IP, unix.IP_TTL, ttl)
	})
	if err != nil {
		return err
	}
	return sockErr
}
