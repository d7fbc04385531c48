package client

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/automoto/rockfall-mp/sim"
)

const sampleRate = 48000

// SoundPlayer turns the world's sound flags into audible cues. The two
// effects are short synthesized square waves, so no asset files are
// needed.
type SoundPlayer struct {
	shot *audio.Player
	hit  *audio.Player
}

// NewSoundPlayer creates the audio context and the two effect players.
func NewSoundPlayer() *SoundPlayer {
	ctx := audio.NewContext(sampleRate)
	return &SoundPlayer{
		shot: ctx.NewPlayerFromBytes(squareWave(880, 0.09, 0.12)),
		hit:  ctx.NewPlayerFromBytes(squareWave(110, 0.25, 0.22)),
	}
}

// Play fires the effects raised this tick. The hit sound is not layered
// on top of itself when collisions land on consecutive ticks.
func (sp *SoundPlayer) Play(s sim.PlaySounds) {
	if s.Shot {
		sp.shot.Rewind()
		sp.shot.Play()
	}
	if s.Hit && !sp.hit.IsPlaying() {
		sp.hit.Rewind()
		sp.hit.Play()
	}
}

// squareWave renders a square wave as 16-bit little-endian stereo PCM.
// A linear fade-out avoids a click at the end.
func squareWave(freq float64, seconds float64, volume float64) []byte {
	samples := int(float64(sampleRate) * seconds)
	buf := make([]byte, samples*4)

	period := float64(sampleRate) / freq
	for i := 0; i < samples; i++ {
		v := volume
		if math.Mod(float64(i), period) < period/2 {
			v = -volume
		}
		v *= 1 - float64(i)/float64(samples)

		sample := int16(v * math.MaxInt16)
		lo := byte(sample)
		hi := byte(sample >> 8)
		buf[i*4+0] = lo
		buf[i*4+1] = hi
		buf[i*4+2] = lo
		buf[i*4+3] = hi
	}
	return buf
}
