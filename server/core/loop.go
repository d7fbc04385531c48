package core

import (
	"log"
	"time"

	"github.com/automoto/rockfall-mp/sim"
)

// GameLoop drives the simulation for the dedicated headless server. The
// windowed host does not use it — there the render loop ticks the world
// at the same fixed rate.
type GameLoop struct {
	shared   *sim.SharedWorld
	tickRate int
	stopChan chan struct{}
}

// NewGameLoop creates a loop ticking at the given rate.
func NewGameLoop(shared *sim.SharedWorld, tickRate int) *GameLoop {
	return &GameLoop{
		shared:   shared,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

// Run ticks until Stop is called. Blocks the calling goroutine.
func (g *GameLoop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	dt := float32(1) / float32(g.tickRate)
	log.Printf("[server] game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Println("[server] game loop stopped")
			return
		case <-ticker.C:
			w := g.shared.Lock()
			w.Update(dt)
			w.ConsumeSounds() // headless: nothing plays them
			g.shared.Unlock()
		}
	}
}

// Stop terminates Run.
func (g *GameLoop) Stop() {
	close(g.stopChan)
}
