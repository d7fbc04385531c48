package network

import (
	"github.com/automoto/rockfall-mp/shared/messages"
	"github.com/automoto/rockfall-mp/sim"
)

// ApplySnapshot merges an authoritative snapshot into the local world.
// Called with the world lock held.
//
// Score, rocks and shots are replaced wholesale — those roles have no
// local prediction. Players are replaced per index, except the locally
// controlled slot, whose predicted ship is kept so it never visibly
// snaps. Every player's shot cooldown is shifted by the clock offset so
// comparisons against the local clock stay meaningful, and the sim clock
// is then pinned to the server's — the server is the time authority.
func ApplySnapshot(w *sim.World, snap *messages.ServerSnapshot) {
	w.Score = snap.Score

	timeDiff := w.SimTime - snap.ServerTime

	// The roster only ever grows; players are never deleted, so a
	// shorter local roster just means we have not seen these slots yet.
	for len(w.Players) < len(snap.Players) {
		w.AddPlayer()
	}

	for i, wp := range snap.Players {
		if i != w.LocalPlayerIndex {
			w.Players[i] = wp.ToPlayer()
		}
		w.Players[i].LastShotAt -= timeDiff
	}

	w.Rocks = w.Rocks[:0]
	w.Shots = w.Shots[:0]
	for _, wa := range snap.Actors {
		switch sim.Role(wa.Role) {
		case sim.RolePlayer:
			// Ships travel in Players; a player-role actor here is a
			// malformed frame and is ignored.
		case sim.RoleRock:
			w.Rocks = append(w.Rocks, wa.ToActor())
		case sim.RoleShot:
			w.Shots = append(w.Shots, wa.ToActor())
		}
	}

	w.PinTime(snap.ServerTime)
}
