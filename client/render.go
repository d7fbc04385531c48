package client

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/automoto/rockfall-mp/shared/gamemath"
	"github.com/automoto/rockfall-mp/sim"
)

var (
	shipColor = color.RGBA{R: 0x6f, G: 0xc3, B: 0xff, A: 0xff}
	rockColor = color.RGBA{R: 0x8a, G: 0x7f, B: 0x74, A: 0xff}
	shotColor = color.RGBA{R: 0xff, G: 0xe0, B: 0x66, A: 0xff}
)

// drawActor renders one entity as flat vector shapes. Ships get a nose
// line showing their facing.
func drawActor(screen *ebiten.Image, a sim.Actor) {
	sx, sy := worldToScreen(a.Pos)

	switch a.Role {
	case sim.RolePlayer:
		vector.DrawFilledCircle(screen, sx, sy, a.Radius, shipColor, true)
		nose := gamemath.VecFromAngle(a.Facing).Scale(a.Radius * 1.8)
		vector.StrokeLine(screen, sx, sy, sx+nose.X, sy-nose.Y, 2, shipColor, true)
	case sim.RoleRock:
		vector.DrawFilledCircle(screen, sx, sy, a.Radius, rockColor, true)
	case sim.RoleShot:
		vector.DrawFilledCircle(screen, sx, sy, a.Radius, shotColor, true)
	}
}

// worldToScreen maps world coordinates (origin at center, +Y up) to
// screen coordinates (origin top-left, +Y down).
func worldToScreen(p gamemath.Vec2) (float32, float32) {
	return p.X + sim.FieldWidth/2, sim.FieldHeight/2 - p.Y
}
