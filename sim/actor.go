// Package sim holds the authoritative game simulation: actors, players,
// the world aggregate, physics, collision and the rock spawner. It is
// shared verbatim by the server and by clients predicting between
// snapshots, and has no dependency on networking or rendering.
package sim

import (
	"math/rand"

	"github.com/automoto/rockfall-mp/shared/gamemath"
)

// Role identifies what kind of entity an Actor is. Every consumption
// site (physics, collision, drawing) switches exhaustively over it.
type Role uint8

const (
	RolePlayer Role = iota
	RoleRock
	RoleShot
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleRock:
		return "rock"
	case RoleShot:
		return "shot"
	}
	return "unknown"
}

// Bounding radii are fixed per role and never change after creation.
const (
	PlayerRadius = 12.0
	RockRadius   = 12.0
	ShotRadius   = 6.0
)

const (
	// MaxSpeed caps actor velocity; excess speed is rescaled, never
	// discarded, so direction is preserved.
	MaxSpeed = 950.0

	shotAngVel = 0.1
)

// Actor is any simulated physical entity: a player ship, a rock or a
// shot. All three carry the same kinematic data and differ only by Role
// and radius.
type Actor struct {
	Role    Role
	Pos     gamemath.Vec2
	Facing  float32 // radians
	Vel     gamemath.Vec2
	AngVel  float32
	Radius  float32
	Alive   bool
}

// NewPlayerActor returns a player ship actor with zeroed kinematics.
func NewPlayerActor() Actor {
	return Actor{Role: RolePlayer, Radius: PlayerRadius, Alive: true}
}

// NewRock returns a rock with a small random spin.
func NewRock(rng *rand.Rand) Actor {
	return Actor{
		Role:   RoleRock,
		AngVel: rng.Float32() * 0.02,
		Radius: RockRadius,
		Alive:  true,
	}
}

// NewShot returns a shot actor. Shots spin at a fixed rate for the
// renderer's benefit.
func NewShot() Actor {
	return Actor{Role: RoleShot, AngVel: shotAngVel, Radius: ShotRadius, Alive: true}
}

// TickPhysics advances the actor by one fixed step: velocity is clamped
// to MaxSpeed, position integrates velocity, and facing advances by
// AngVel. AngVel is deliberately not scaled by dt — the angular step is
// per tick, not per second.
func (a *Actor) TickPhysics(dt float32) {
	a.Vel = a.Vel.ClampLength(MaxSpeed)
	a.Pos = a.Pos.Add(a.Vel.Scale(dt))
	a.Facing += a.AngVel
}

// WrapPosition wraps the actor to the opposite edge when it leaves the
// field, giving players a toroidal field. Only players wrap; rocks and
// shots are disposable and die off-field instead.
func (a *Actor) WrapPosition(sx, sy float32) {
	boundsX := sx / 2
	boundsY := sy / 2
	if a.Pos.X > boundsX {
		a.Pos.X -= sx
	} else if a.Pos.X < -boundsX {
		a.Pos.X += sx
	}
	if a.Pos.Y > boundsY {
		a.Pos.Y -= sy
	} else if a.Pos.Y < -boundsY {
		a.Pos.Y += sy
	}
}

// OutOfBounds reports whether the actor has left the field.
func (a *Actor) OutOfBounds(sx, sy float32) bool {
	boundsX := sx / 2
	boundsY := sy / 2
	return a.Pos.X > boundsX ||
		a.Pos.X < -boundsX ||
		a.Pos.Y > boundsY ||
		a.Pos.Y < -boundsY
}
