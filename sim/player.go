package sim

import "github.com/automoto/rockfall-mp/shared/gamemath"

// Movement and firing constants, tuned for a 144 Hz tick.
const (
	PlayerSpeed  = 500.0
	ShotSpeed    = 1100.0
	ShotCooldown = 0.2 // seconds between volleys
)

// InputState is the device-independent input for one player. It is
// transmitted verbatim and never partially merged.
type InputState struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool
}

// Player is one participant's ship plus the state needed to simulate it:
// its current input and the sim-clock time of its last volley. Index is
// assigned monotonically by the server and never reused; disconnected
// players keep their slot forever.
type Player struct {
	Actor      Actor
	Input      InputState
	LastShotAt float32
	Index      uint32
}

// NewPlayer returns a player with default input and a fresh ship actor.
// The cooldown is backdated so the first volley is available immediately.
func NewPlayer(index uint32) Player {
	p := PlayerFromActor(NewPlayerActor(), index)
	p.LastShotAt = -ShotCooldown
	return p
}

// PlayerFromActor wraps an existing ship actor, e.g. one decoded from a
// snapshot.
func PlayerFromActor(actor Actor, index uint32) Player {
	return Player{Actor: actor, Index: index}
}

// TickInput moves the ship directly from its held directions. Movement
// is positional rather than inertial so the ship stops the instant keys
// are released.
func (p *Player) TickInput(dt float32) {
	var dir gamemath.Vec2
	if p.Input.Right {
		dir.X += 1
	}
	if p.Input.Left {
		dir.X -= 1
	}
	if p.Input.Up {
		dir.Y += 1
	}
	if p.Input.Down {
		dir.Y -= 1
	}
	p.Actor.Pos = p.Actor.Pos.Add(dir.Scale(dt * PlayerSpeed))
}

// CanFire reports whether the cooldown has elapsed at the given sim time.
func (p *Player) CanFire(now float32) bool {
	return now-p.LastShotAt > ShotCooldown
}

// Fire produces a three-shot spread from the ship's position and facing
// and stamps the cooldown. The spread is a fixed lateral fan: the center
// shot flies straight, the outer two are offset by a third of the shot
// speed.
func (p *Player) Fire(now float32) []Actor {
	p.LastShotAt = now

	shots := make([]Actor, 0, 3)
	dir := gamemath.VecFromAngle(p.Actor.Facing)
	for i := -1; i <= 1; i++ {
		shot := NewShot()
		shot.Pos = p.Actor.Pos
		shot.Facing = p.Actor.Facing
		shot.Vel = gamemath.Vec2{
			X: ShotSpeed*dir.X + float32(i)*ShotSpeed/3,
			Y: ShotSpeed * dir.Y,
		}
		shots = append(shots, shot)
	}
	return shots
}
