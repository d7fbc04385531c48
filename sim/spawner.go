package sim

import (
	"math"

	"github.com/automoto/rockfall-mp/shared/gamemath"
)

// spawnSubstep fixes the probability resolution of the spawner: each
// tick is divided into 4ms spawn opportunities so the spawn rate does
// not depend on the tick rate.
const spawnSubstep = 0.004

// TickSpawner rolls the spawn opportunities for one tick. Spawn chance,
// rock speed and angular spread all scale continuously with a single
// pressure value, elapsed time times the difficulty multiplier — there
// are no discrete difficulty levels.
func (w *World) TickSpawner(dt float32) {
	loops := int(math.Round(float64(dt) / spawnSubstep))

	timeMult := w.SimTime * w.DifficultyMult

	spawnPercent := timeMult/1600 + 0.01
	speedMod := float32(math.Pow(float64(timeMult*4), 0.85)) + 100
	maxAngle := timeMult / 240
	if maxAngle > 0.5 {
		maxAngle = 0.5
	}

	for i := 0; i < loops; i++ {
		if w.rng.Float32() >= spawnPercent {
			continue
		}
		rock := NewRock(w.rng)

		angle := w.rng.Float32() * maxAngle
		if w.rng.Intn(2) == 0 {
			angle = -angle
		}
		xPos := w.rng.Float32()*FieldWidth - FieldWidth/2
		yPos := float32(FieldHeight)/2 - 15

		speed := w.rng.Float32()*speedMod + speedMod/2

		rock.Pos = gamemath.Vec2{X: xPos, Y: yPos}
		rock.Vel = gamemath.VecFromAngle(math.Pi + angle).Scale(speed)

		w.Rocks = append(w.Rocks, rock)
	}
}
