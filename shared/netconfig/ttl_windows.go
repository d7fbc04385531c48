//go:build windows

package netconfig

import "net"

// TTL tuning is not applied on Windows; the system default is used.
func setTTL(conn *net.TCPConn, ttl int) error {
	return nil
}
