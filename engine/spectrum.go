package engine

import (
	m "math"

	"github.com/spaghettifunk/lathe/engine/math"
	"golang.org/x/exp/rand"
)

const spectrumPeaks = 3

type peak struct {
	center float64
	width  float64
	height float64
	speed  float64
	phase  float64
}

// SpectrumGenerator fakes an audio spectrum for the waterfall: a few
// gaussian peaks drifting sideways over a noise floor. Equal seeds give
// equal rows. Not safe for concurrent use.
type SpectrumGenerator struct {
	rng       *rand.Rand
	amplitude float64
	peaks     []peak
}

func NewSpectrumGenerator(seed uint64, amplitude float64) *SpectrumGenerator {
	rng := rand.New(rand.NewSource(seed))
	peaks := make([]peak, spectrumPeaks)
	for i := range peaks {
		peaks[i] = peak{
			center: 0.2 + 0.6*rng.Float64(),
			width:  0.03 + 0.07*rng.Float64(),
			height: 0.5 + 0.5*rng.Float64(),
			speed:  0.02 + 0.08*rng.Float64(),
			phase:  2 * m.Pi * rng.Float64(),
		}
	}
	return &SpectrumGenerator{rng: rng, amplitude: amplitude, peaks: peaks}
}

// Row returns cols heights in [0, amplitude].
func (sg *SpectrumGenerator) Row(frame uint64, cols int) []float32 {
	row := make([]float32, cols)
	for c := range row {
		x := 0.0
		if cols > 1 {
			x = float64(c) / float64(cols-1)
		}
		v := 0.1 * sg.rng.Float64()
		for _, p := range sg.peaks {
			d := x - (p.center + 0.15*m.Sin(p.phase+p.speed*float64(frame)))
			v += p.height * m.Exp(-d*d/(2*p.width*p.width))
		}
		row[c] = float32(sg.amplitude * math.Clamp(v, 0, 1))
	}
	return row
}
