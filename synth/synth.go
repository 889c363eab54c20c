// Package synth generates deterministic multichannel test recordings from
// scalar waveforms with per-channel gains.
package synth

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/Han-YY/vBCI-Meeting-Workshop3/eeg"
)

// Component is a scalar waveform U projected onto the channels by a gain
// vector: channel ch receives Gain[ch]*U(t).
type Component struct {
	U    func(t float64) float64
	Gain []float64
}

// Sine returns a sinusoid waveform of freq Hz.
func Sine(freq, amp, phase float64) func(float64) float64 {
	return func(t float64) float64 {
		return amp * math.Sin(2*math.Pi*freq*t+phase)
	}
}

// Recording mixes the components into a labels x duration*rate recording
// and adds Gaussian noise of the given standard deviation, drawn from a
// source seeded with seed so fixtures are reproducible.
func Recording(labels []string, rate, duration, noise float64, seed int64, comps ...Component) *eeg.Recording {
	n := int(math.Round(rate * duration))
	rng := rand.New(rand.NewSource(seed))

	data := mat.NewDense(len(labels), n, nil)
	for i := 0; i < n; i++ {
		t := float64(i) / rate
		for ch := range labels {
			var v float64
			for _, c := range comps {
				v += c.Gain[ch] * c.U(t)
			}
			if noise > 0 {
				v += rng.NormFloat64() * noise
			}
			data.Set(ch, i, v)
		}
	}

	rec, err := eeg.NewRecording(labels, rate, data)
	if err != nil {
		panic(err) // inputs are constructed, not parsed
	}
	return rec
}
