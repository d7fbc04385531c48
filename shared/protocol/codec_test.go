package protocol

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"
	"testing/iotest"

	"github.com/automoto/rockfall-mp/shared/messages"
	"github.com/automoto/rockfall-mp/sim"
)

func sampleSnapshot() messages.ServerSnapshot {
	return messages.ServerSnapshot{
		Players: []messages.WirePlayer{
			{
				Actor:      messages.WireActor{Role: uint8(sim.RolePlayer), X: -120.5, Y: 300, Facing: 1.5, Radius: sim.PlayerRadius, Alive: true},
				Input:      sim.InputState{Up: true, Fire: true},
				LastShotAt: 12.25,
				Index:      0,
			},
			{
				Actor: messages.WireActor{Role: uint8(sim.RolePlayer), X: 80, Y: -40, Radius: sim.PlayerRadius, Alive: true},
				Index: 1,
			},
		},
		Actors: []messages.WireActor{
			{Role: uint8(sim.RoleRock), X: 0, Y: 525, VelY: -100, AngVel: 0.01, Radius: sim.RockRadius, Alive: true},
			{Role: uint8(sim.RoleShot), X: 5, Y: 10, VelY: 1100, AngVel: 0.1, Radius: sim.ShotRadius, Alive: true},
		},
		Score:      17,
		ServerTime: 42.5,
	}
}

func TestRoundTripSnapshot(t *testing.T) {
	want := sampleSnapshot()

	var buf bytes.Buffer
	n, err := WriteMessage(&buf, CmdServerSnapshot, want)
	if err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	if n != buf.Len() {
		t.Fatalf("WriteMessage reported %d bytes, wrote %d", n, buf.Len())
	}

	cmd, payload, err := ReadMessage(&buf)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if cmd != CmdServerSnapshot {
		t.Fatalf("cmd = %d, want %d", cmd, CmdServerSnapshot)
	}

	var got messages.ServerSnapshot
	if err := Decode(payload, &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

// TCP delivers bytes, not frames: the reader must reassemble a frame
// from arbitrarily small reads.
func TestReadMessageFragmentedStream(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteMessage(&buf, CmdClientInput, messages.ClientInput{FinalX: 1, FinalY: 2}); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	cmd, payload, err := ReadMessage(iotest.OneByteReader(&buf))
	if err != nil {
		t.Fatalf("ReadMessage over fragmented stream: %v", err)
	}
	if cmd != CmdClientInput {
		t.Fatalf("cmd = %d, want %d", cmd, CmdClientInput)
	}
	var in messages.ClientInput
	if err := Decode(payload, &in); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if in.FinalX != 1 || in.FinalY != 2 {
		t.Fatalf("decoded input %+v", in)
	}
}

// Two frames written back to back must come out as two distinct reads,
// even though the stream coalesced them.
func TestReadMessageCoalescedFrames(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteMessage(&buf, CmdJoinAccepted, messages.JoinAccepted{PlayerIndex: 3}); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	if _, err := WriteMessage(&buf, CmdClientInput, messages.ClientInput{FinalX: 9}); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	cmd, payload, err := ReadMessage(&buf)
	if err != nil {
		t.Fatalf("first ReadMessage: %v", err)
	}
	if cmd != CmdJoinAccepted {
		t.Fatalf("first cmd = %d, want %d", cmd, CmdJoinAccepted)
	}
	var join messages.JoinAccepted
	if err := Decode(payload, &join); err != nil {
		t.Fatalf("Decode join: %v", err)
	}
	if join.PlayerIndex != 3 {
		t.Fatalf("player index = %d, want 3", join.PlayerIndex)
	}

	cmd, _, err = ReadMessage(&buf)
	if err != nil {
		t.Fatalf("second ReadMessage: %v", err)
	}
	if cmd != CmdClientInput {
		t.Fatalf("second cmd = %d, want %d", cmd, CmdClientInput)
	}
}

func TestReadMessageRejectsOversizeFrame(t *testing.T) {
	var header [6]byte
	binary.BigEndian.PutUint16(header[0:2], CmdServerSnapshot)
	binary.BigEndian.PutUint32(header[2:6], MaxPayload+1)

	if _, _, err := ReadMessage(bytes.NewReader(header[:])); err == nil {
		t.Fatal("oversize frame should be rejected")
	}
}

func TestReadMessageTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteMessage(&buf, CmdServerSnapshot, sampleSnapshot()); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	truncated := buf.Bytes()[:buf.Len()-4]

	if _, _, err := ReadMessage(bytes.NewReader(truncated)); err == nil {
		t.Fatal("truncated payload should surface an error")
	}
}

func TestDecodeGarbagePayload(t *testing.T) {
	var snap messages.ServerSnapshot
	if err := Decode([]byte{0xc1, 0xff, 0x00}, &snap); err == nil {
		t.Fatal("garbage payload should fail to decode")
	}
}
