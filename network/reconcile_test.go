package network

import (
	"math/rand"
	"testing"

	"github.com/automoto/rockfall-mp/shared/gamemath"
	"github.com/automoto/rockfall-mp/shared/messages"
	"github.com/automoto/rockfall-mp/sim"
)

func wirePlayer(index uint32, x, y, lastShot float32) messages.WirePlayer {
	return messages.WirePlayer{
		Actor: messages.WireActor{
			Role:   uint8(sim.RolePlayer),
			X:      x,
			Y:      y,
			Radius: sim.PlayerRadius,
			Alive:  true,
		},
		LastShotAt: lastShot,
		Index:      index,
	}
}

func wireRock(x, y float32) messages.WireActor {
	return messages.WireActor{Role: uint8(sim.RoleRock), X: x, Y: y, Radius: sim.RockRadius, Alive: true}
}

func wireShot(x, y float32) messages.WireActor {
	return messages.WireActor{Role: uint8(sim.RoleShot), X: x, Y: y, Radius: sim.ShotRadius, Alive: true}
}

func TestApplySnapshotKeepsLocalShip(t *testing.T) {
	w := sim.NewWorld(1)
	w.AddPlayer()
	w.LocalPlayerIndex = 0
	w.Players[0].Actor.Pos = gamemath.Vec2{X: 111, Y: -222} // predicted locally

	snap := &messages.ServerSnapshot{
		Players: []messages.WirePlayer{
			wirePlayer(0, 999, 999, 0), // stale server view of us
			wirePlayer(1, 50, 60, 0),
		},
		Score:      5,
		ServerTime: w.SimTime,
	}
	ApplySnapshot(w, snap)

	if got := w.Players[0].Actor.Pos; got.X != 111 || got.Y != -222 {
		t.Fatalf("local ship snapped to %+v", got)
	}
	if got := w.Players[1].Actor.Pos; got.X != 50 || got.Y != 60 {
		t.Fatalf("remote ship at %+v, want server position", got)
	}
	if w.Score != 5 {
		t.Fatalf("score = %d, want 5", w.Score)
	}
}

func TestApplySnapshotGrowsRoster(t *testing.T) {
	w := sim.NewWorld(1)
	snap := &messages.ServerSnapshot{
		Players: []messages.WirePlayer{
			wirePlayer(0, 0, 0, 0),
			wirePlayer(1, 10, 10, 0),
			wirePlayer(2, 20, 20, 0),
		},
		ServerTime: w.SimTime,
	}
	ApplySnapshot(w, snap)

	if len(w.Players) != 3 {
		t.Fatalf("roster has %d players, want 3", len(w.Players))
	}

	// Rosters never shrink: a shorter snapshot leaves extra slots alone.
	ApplySnapshot(w, &messages.ServerSnapshot{
		Players:    []messages.WirePlayer{wirePlayer(0, 0, 0, 0)},
		ServerTime: w.SimTime,
	})
	if len(w.Players) != 3 {
		t.Fatalf("roster shrank to %d players", len(w.Players))
	}
}

func TestApplySnapshotShiftsCooldownAndPinsClock(t *testing.T) {
	w := sim.NewWorld(1)
	w.AddPlayer()
	w.SimTime = 10
	w.Players[0].LastShotAt = 8

	snap := &messages.ServerSnapshot{
		Players: []messages.WirePlayer{
			wirePlayer(0, 0, 0, 0),
			wirePlayer(1, 0, 0, 3),
		},
		ServerTime: 4,
	}
	ApplySnapshot(w, snap)

	// Local slot keeps its own cooldown, shifted by the 6s clock offset.
	if got := w.Players[0].LastShotAt; got != 2 {
		t.Fatalf("local LastShotAt = %v, want 2", got)
	}
	// Remote slot takes the wire value, shifted into local time.
	if got := w.Players[1].LastShotAt; got != -3 {
		t.Fatalf("remote LastShotAt = %v, want -3", got)
	}
	if w.SimTime != 4 {
		t.Fatalf("sim clock = %v, want pinned to 4", w.SimTime)
	}
}

func TestApplySnapshotReplacesRocksAndShots(t *testing.T) {
	w := sim.NewWorld(1)
	w.Rocks = []sim.Actor{sim.NewRock(rand.New(rand.NewSource(1)))}
	w.Shots = []sim.Actor{sim.NewShot(), sim.NewShot()}

	snap := &messages.ServerSnapshot{
		Players: []messages.WirePlayer{wirePlayer(0, 0, 0, 0)},
		Actors: []messages.WireActor{
			wireRock(1, 2),
			wireRock(3, 4),
			wireShot(5, 6),
			{Role: uint8(sim.RolePlayer), X: 7, Y: 8}, // malformed, dropped
		},
		ServerTime: w.SimTime,
	}
	ApplySnapshot(w, snap)

	if len(w.Rocks) != 2 {
		t.Fatalf("rocks = %d, want the snapshot's 2", len(w.Rocks))
	}
	if len(w.Shots) != 1 {
		t.Fatalf("shots = %d, want the snapshot's 1", len(w.Shots))
	}
	if w.Rocks[0].Pos.X != 1 || w.Shots[0].Pos.X != 5 {
		t.Fatal("actor state not taken from the snapshot")
	}

	// The same snapshot applied again must land on the same state.
	ApplySnapshot(w, snap)
	if len(w.Rocks) != 2 || len(w.Shots) != 1 {
		t.Fatalf("reapply changed actor counts: rocks=%d shots=%d", len(w.Rocks), len(w.Shots))
	}
}

func TestApplySnapshotObserverReplacesEveryShip(t *testing.T) {
	w := sim.NewWorld(1)
	w.LocalPlayerIndex = -1
	w.Players[0].Actor.Pos = gamemath.Vec2{X: 111, Y: 222}

	snap := &messages.ServerSnapshot{
		Players:    []messages.WirePlayer{wirePlayer(0, 7, 8, 0)},
		ServerTime: w.SimTime,
	}
	ApplySnapshot(w, snap)

	if got := w.Players[0].Actor.Pos; got.X != 7 || got.Y != 8 {
		t.Fatalf("observer kept a stale ship at %+v", got)
	}
}
