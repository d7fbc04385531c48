package sim

import (
	"log"
	"math/rand"
	"time"

	"github.com/automoto/rockfall-mp/shared/gamemath"
)

// Field dimensions in world units. The field is centered on the origin,
// so actors live in [-width/2, width/2] x [-height/2, height/2].
const (
	FieldWidth  = 1920.0
	FieldHeight = 1080.0
)

// TickRate is the fixed simulation rate, identical on server and
// clients. The renderer and the dedicated server loop both pace to it.
const TickRate = 144

// PlaySounds carries the per-tick audio flags for the sound collaborator.
// The simulation only ever raises them; the front-end consumes and
// clears them.
type PlaySounds struct {
	Hit  bool
	Shot bool
}

// World is the single mutable aggregate for one process: every entity,
// the score, the sim clock and the per-connection player assignment.
// It has no internal synchronization — all access goes through the
// exclusive lock in SharedWorld, and no two methods may run concurrently
// on the same instance.
type World struct {
	Players []Player
	Shots   []Actor
	Rocks   []Actor

	Score int32

	// LocalPlayerIndex is the slot this process controls. Negative
	// means observer: no input is ever injected and the process is
	// never authoritative for any slot.
	LocalPlayerIndex int
	LocalInput       InputState

	// PendingShots are shots fired locally since the last input send,
	// reported to the server and then dropped.
	PendingShots []Actor

	SimTime        float32
	SessionStart   time.Time
	DifficultyMult float32

	Sounds      PlaySounds
	Connections int

	rng *rand.Rand
}

// NewWorld creates the aggregate with the local player in slot 0.
func NewWorld(difficulty float32) *World {
	w := &World{
		LocalPlayerIndex: 0,
		SessionStart:     time.Now(),
		DifficultyMult:   difficulty,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	w.AddPlayer()
	return w
}

// AddPlayer appends a new player and returns its index. Indices are
// monotonic and never reused; there is no player removal.
func (w *World) AddPlayer() int {
	index := len(w.Players)
	w.Players = append(w.Players, NewPlayer(uint32(index)))
	return index
}

// LocalPlayer returns the locally controlled player, or nil for
// observers and for clients whose slot has not been replicated yet.
func (w *World) LocalPlayer() *Player {
	if w.LocalPlayerIndex < 0 || w.LocalPlayerIndex >= len(w.Players) {
		return nil
	}
	return &w.Players[w.LocalPlayerIndex]
}

// Restart resets the session after a rock reaches a ship: score and
// timers are cleared and every rock and shot is marked dead for the next
// sweep. Players persist. This is the whole "one life" failure model.
func (w *World) Restart() {
	log.Printf("[sim] game over: time=%.1fs score=%d difficulty=%.1f",
		w.SimTime, w.Score, w.DifficultyMult)

	w.Score = 0
	w.SessionStart = time.Now()
	w.SimTime = 0
	for i := range w.Shots {
		w.Shots[i].Alive = false
	}
	for i := range w.Rocks {
		w.Rocks[i].Alive = false
	}
	w.Sounds.Hit = true
}

// PinTime adopts the server's clock as the local sim time. SessionStart
// is rebased so later ticks keep advancing from the pinned value.
func (w *World) PinTime(serverTime float32) {
	w.SimTime = serverTime
	w.SessionStart = time.Now().Add(-time.Duration(float64(serverTime) * float64(time.Second)))
}

// TickPhysics integrates every live actor one step. Players wrap at the
// field edges; rocks and shots die there instead.
func (w *World) TickPhysics(dt float32) {
	for i := range w.Players {
		p := &w.Players[i]
		p.Actor.TickPhysics(dt)
		p.Actor.WrapPosition(FieldWidth, FieldHeight)
	}
	for i := range w.Shots {
		s := &w.Shots[i]
		s.TickPhysics(dt)
		if s.OutOfBounds(FieldWidth, FieldHeight) {
			s.Alive = false
		}
	}
	for i := range w.Rocks {
		r := &w.Rocks[i]
		r.TickPhysics(dt)
		if r.OutOfBounds(FieldWidth, FieldHeight) {
			r.Alive = false
		}
	}
}

// ResolveCollisions runs the pairwise distance checks. A rock touching
// any ship restarts the session; a rock touching a shot kills both and
// scores. Dead actors stay in place until SweepDead.
func (w *World) ResolveCollisions() {
	shouldRestart := false
	for ri := range w.Rocks {
		rock := &w.Rocks[ri]
		if !rock.Alive {
			continue
		}
		for pi := range w.Players {
			player := &w.Players[pi]
			if gamemath.Dist(rock.Pos, player.Actor.Pos) < rock.Radius+player.Actor.Radius {
				shouldRestart = true
			}
		}
		for si := range w.Shots {
			shot := &w.Shots[si]
			if !shot.Alive || !rock.Alive {
				continue
			}
			if gamemath.Dist(rock.Pos, shot.Pos) < rock.Radius+shot.Radius {
				rock.Alive = false
				shot.Alive = false
				w.Score++
				w.Sounds.Hit = true
			}
		}
	}
	if shouldRestart {
		w.Restart()
	}
}

// SweepDead drops every rock and shot marked not-alive this tick.
// Players are permanent and never swept.
func (w *World) SweepDead() {
	w.Shots = retainAlive(w.Shots)
	w.Rocks = retainAlive(w.Rocks)
}

func retainAlive(actors []Actor) []Actor {
	live := actors[:0]
	for _, a := range actors {
		if a.Alive {
			live = append(live, a)
		}
	}
	return live
}

// Update runs one full fixed tick in the original order: clock, input,
// firing, physics, collisions, sweep, spawn. The caller holds the world
// lock for the whole tick.
func (w *World) Update(dt float32) {
	w.SimTime = float32(time.Since(w.SessionStart).Seconds())

	if lp := w.LocalPlayer(); lp != nil {
		lp.Input = w.LocalInput
	}
	for i := range w.Players {
		w.Players[i].TickInput(dt)
	}
	if lp := w.LocalPlayer(); lp != nil && lp.Input.Fire && lp.CanFire(w.SimTime) {
		shots := lp.Fire(w.SimTime)
		w.Shots = append(w.Shots, shots...)
		w.PendingShots = append(w.PendingShots, shots...)
		w.Sounds.Shot = true
	}

	w.TickPhysics(dt)
	w.ResolveCollisions()
	w.SweepDead()
	w.TickSpawner(dt)
}

// DrainPendingShots returns the shots fired since the last call and
// clears the buffer. Used to build the next ClientInput.
func (w *World) DrainPendingShots() []Actor {
	shots := w.PendingShots
	w.PendingShots = nil
	return shots
}

// ConsumeSounds returns the raised audio flags and clears them.
func (w *World) ConsumeSounds() PlaySounds {
	s := w.Sounds
	w.Sounds = PlaySounds{}
	return s
}
