package client

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/automoto/rockfall-mp/sim"
)

// ReadInput samples the keyboard into a device-independent InputState.
// Arrows and WASD both steer; space fires.
func ReadInput() sim.InputState {
	return sim.InputState{
		Up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Fire:  ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}
