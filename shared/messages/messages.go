// Package messages defines the wire shapes exchanged between client and
// server, plus the conversions between them and live sim state. Wire
// structs keep kinematics as plain float fields so the codec never has
// to know about vector types.
package messages

import (
	"github.com/automoto/rockfall-mp/shared/gamemath"
	"github.com/automoto/rockfall-mp/sim"
)

// WireActor is the flattened serializable form of a sim.Actor.
type WireActor struct {
	Role   uint8
	X, Y   float32
	Facing float32
	VelX   float32
	VelY   float32
	AngVel float32
	Radius float32
	Alive  bool
}

// WirePlayer carries a player's ship together with its replicated input
// and shot cooldown, so clients can keep predicting remote ships between
// snapshots.
type WirePlayer struct {
	Actor      WireActor
	Input      sim.InputState
	LastShotAt float32
	Index      uint32
}

// JoinAccepted is sent by the server once, as the first message on a
// freshly accepted input stream, assigning the client its player slot.
// Observers never connect to the input port and never receive one.
type JoinAccepted struct {
	PlayerIndex uint32
}

// ClientInput is sent from client to server each transfer interval.
// FinalX/FinalY and Shots are client-authoritative: the server applies
// them without validation (this is a co-op game, clients are trusted).
type ClientInput struct {
	Input  sim.InputState
	FinalX float32
	FinalY float32
	Shots  []WireActor
}

// ServerSnapshot is the full replacement state sent to every connected
// client and observer each transfer interval. There is no delta
// compression; a stale snapshot is simply superseded by the next one.
type ServerSnapshot struct {
	Players    []WirePlayer
	Actors     []WireActor // rocks and shots, mixed
	Score      int32
	ServerTime float32
}

// FromActor flattens a sim actor for the wire.
func FromActor(a sim.Actor) WireActor {
	return WireActor{
		Role:   uint8(a.Role),
		X:      a.Pos.X,
		Y:      a.Pos.Y,
		Facing: a.Facing,
		VelX:   a.Vel.X,
		VelY:   a.Vel.Y,
		AngVel: a.AngVel,
		Radius: a.Radius,
		Alive:  a.Alive,
	}
}

// ToActor rebuilds a sim actor from its wire form.
func (wa WireActor) ToActor() sim.Actor {
	return sim.Actor{
		Role:   sim.Role(wa.Role),
		Pos:    gamemath.Vec2{X: wa.X, Y: wa.Y},
		Facing: wa.Facing,
		Vel:    gamemath.Vec2{X: wa.VelX, Y: wa.VelY},
		AngVel: wa.AngVel,
		Radius: wa.Radius,
		Alive:  wa.Alive,
	}
}

// FromPlayer flattens a player for the wire.
func FromPlayer(p sim.Player) WirePlayer {
	return WirePlayer{
		Actor:      FromActor(p.Actor),
		Input:      p.Input,
		LastShotAt: p.LastShotAt,
		Index:      p.Index,
	}
}

// ToPlayer rebuilds a sim player from its wire form.
func (wp WirePlayer) ToPlayer() sim.Player {
	return sim.Player{
		Actor:      wp.Actor.ToActor(),
		Input:      wp.Input,
		LastShotAt: wp.LastShotAt,
		Index:      wp.Index,
	}
}

// SnapshotFromWorld copies the whole live state into a snapshot. Called
// with the world lock held; the result is encoded and written after the
// lock is released.
func SnapshotFromWorld(w *sim.World) ServerSnapshot {
	snap := ServerSnapshot{
		Players:    make([]WirePlayer, 0, len(w.Players)),
		Actors:     make([]WireActor, 0, len(w.Rocks)+len(w.Shots)),
		Score:      w.Score,
		ServerTime: w.SimTime,
	}
	for _, p := range w.Players {
		snap.Players = append(snap.Players, FromPlayer(p))
	}
	for _, r := range w.Rocks {
		snap.Actors = append(snap.Actors, FromActor(r))
	}
	for _, s := range w.Shots {
		snap.Actors = append(snap.Actors, FromActor(s))
	}
	return snap
}

// InputFromWorld builds the next ClientInput from local state, draining
// the locally fired shots. Called with the world lock held.
func InputFromWorld(w *sim.World) ClientInput {
	in := ClientInput{Input: w.LocalInput}

	if lp := w.LocalPlayer(); lp != nil {
		in.FinalX = lp.Actor.Pos.X
		in.FinalY = lp.Actor.Pos.Y
	}
	for _, shot := range w.DrainPendingShots() {
		in.Shots = append(in.Shots, FromActor(shot))
	}
	return in
}

// Apply puts a client's reported input, position and freshly fired shots
// into the world. Runs on the server with the lock held; playerIndex is
// the slot registered for that connection at handshake.
func (ci ClientInput) Apply(w *sim.World, playerIndex int) {
	if playerIndex < 0 || playerIndex >= len(w.Players) {
		return
	}
	if len(ci.Shots) > 0 {
		w.Sounds.Shot = true
	}
	for _, ws := range ci.Shots {
		w.Shots = append(w.Shots, ws.ToActor())
	}

	p := &w.Players[playerIndex]
	p.Input = ci.Input
	p.Actor.Pos = gamemath.Vec2{X: ci.FinalX, Y: ci.FinalY}
}
