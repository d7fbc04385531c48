// Package protocol implements the framing and codec for the TCP streams:
// a fixed header (command plus payload size) followed by a msgpack
// payload. The explicit length prefix means a receiver can always find
// the next frame boundary in the byte stream, no matter how the kernel
// splits or coalesces reads.
package protocol

// Default ports. Snapshots flow out on one listener, input comes back on
// another — two plain streams instead of one multiplexed one.
const (
	PortSnapshots = 9942
	PortInput     = 9949
)

// Command identifiers carried in the frame header.
const (
	_ uint16 = iota
	CmdJoinAccepted
	CmdClientInput
	CmdServerSnapshot
)
