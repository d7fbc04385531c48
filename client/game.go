// Package client is the thin playable front-end: an ebiten wrapper that
// feeds keyboard state into the world, ticks the local simulation at the
// fixed rate, and renders and sonifies whatever the world contains. It
// holds no protocol or simulation logic of its own — the core only ever
// sees it through InputState, draw calls and the sound flags.
package client

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/automoto/rockfall-mp/sim"
)

// Game implements ebiten.Game over the shared world.
type Game struct {
	shared *sim.SharedWorld
	sounds *SoundPlayer
}

// NewGame creates the front-end. Audio init failure is not fatal; the
// game just runs silent.
func NewGame(shared *sim.SharedWorld) *Game {
	return &Game{
		shared: shared,
		sounds: NewSoundPlayer(),
	}
}

// Update runs exactly one fixed simulation tick; ebiten's TPS setting
// provides the pacing. Input is sampled outside the lock, sounds are
// played after it is released.
func (g *Game) Update() error {
	input := ReadInput()

	w := g.shared.Lock()
	w.LocalInput = input
	w.Update(1.0 / sim.TickRate)
	sounds := w.ConsumeSounds()
	g.shared.Unlock()

	g.sounds.Play(sounds)
	return nil
}

// Draw copies the visible state under the lock and renders after
// releasing it.
func (g *Game) Draw(screen *ebiten.Image) {
	w := g.shared.Lock()
	actors := make([]sim.Actor, 0, len(w.Players)+len(w.Shots)+len(w.Rocks))
	for _, p := range w.Players {
		actors = append(actors, p.Actor)
	}
	actors = append(actors, w.Shots...)
	actors = append(actors, w.Rocks...)
	score := w.Score
	simTime := w.SimTime
	g.shared.Unlock()

	for _, a := range actors {
		if a.Alive {
			drawActor(screen, a)
		}
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Time: %.1f", simTime), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", score), 200, 10)
}

// Layout fixes the logical resolution to the field size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return sim.FieldWidth, sim.FieldHeight
}

// Run opens the window and blocks until it closes.
func Run(shared *sim.SharedWorld) error {
	ebiten.SetWindowSize(sim.FieldWidth, sim.FieldHeight)
	ebiten.SetWindowTitle("Rockfall")
	ebiten.SetTPS(sim.TickRate)
	return ebiten.RunGame(NewGame(shared))
}
