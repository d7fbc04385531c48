package protocol

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	// headerSize is uint16 command + uint32 payload size.
	headerSize = 6

	// MaxPayload caps a single frame. A full snapshot is a few KiB even
	// under heavy rock pressure; anything past this means the stream is
	// not at a frame boundary.
	MaxPayload = 1 << 20
)

// WriteMessage encodes v with msgpack and writes one frame. It returns
// the total number of bytes written.
func WriteMessage(w io.Writer, cmd uint16, v any) (int, error) {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("marshal cmd %d: %w", cmd, err)
	}
	if len(payload) > MaxPayload {
		return 0, fmt.Errorf("cmd %d payload too large: %d bytes", cmd, len(payload))
	}

	frame := make([]byte, headerSize+len(payload))
	binary.BigEndian.PutUint16(frame[0:2], cmd)
	binary.BigEndian.PutUint32(frame[2:6], uint32(len(payload)))
	copy(frame[headerSize:], payload)

	if _, err := w.Write(frame); err != nil {
		return 0, err
	}
	return len(frame), nil
}

// ReadMessage reads exactly one frame and returns its command and raw
// payload. An error here means the stream itself is broken (I/O failure
// or a size that cannot be a frame boundary) and the connection should
// be abandoned; payloads that later fail to decode are dropped instead.
func ReadMessage(r io.Reader) (uint16, []byte, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, err
	}

	cmd := binary.BigEndian.Uint16(header[0:2])
	size := binary.BigEndian.Uint32(header[2:6])
	if size > MaxPayload {
		return 0, nil, fmt.Errorf("cmd %d frame size %d exceeds limit", cmd, size)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, err
	}
	return cmd, payload, nil
}

// Decode unmarshals a frame payload into v.
func Decode(payload []byte, v any) error {
	return msgpack.Unmarshal(payload, v)
}
