package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq, rate float64, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freq * float64(i) / rate)
	}
	return x
}

func TestPeriodogramAlphaSine(t *testing.T) {
	// 10 Hz unit sine, 10 s at 100 Hz: exactly on a bin.
	x := sine(10, 100, 1000)

	freqs, psd, err := Periodogram(x, 100)
	require.NoError(t, err)
	require.Len(t, psd, 501)
	assert.Equal(t, 0.0, freqs[0])
	assert.InDelta(t, 50, freqs[len(freqs)-1], 1e-9)

	// Spectral peak at 10 Hz.
	peak := 0
	for i := range psd {
		if psd[i] > psd[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 10, freqs[peak], 0.2)

	// A unit sine carries power 1/2, nearly all of it in the alpha band.
	alpha := Band{Name: "alpha", Low: 8, High: 13}
	assert.InDelta(t, 0.5, BandPower(freqs, psd, alpha), 0.05)
	assert.Greater(t, RelativeBandPower(freqs, psd, alpha), 0.95)
}

func TestPeriodogramMixture(t *testing.T) {
	// 6 Hz theta and 20 Hz beta at equal amplitude.
	x := sine(6, 250, 2500)
	y := sine(20, 250, 2500)
	for i := range x {
		x[i] += y[i]
	}

	freqs, psd, err := Periodogram(x, 250)
	require.NoError(t, err)

	theta := BandPower(freqs, psd, Band{Low: 4, High: 8})
	beta := BandPower(freqs, psd, Band{Low: 13, High: 30})
	assert.InDelta(t, 0.5, theta, 0.05)
	assert.InDelta(t, 0.5, beta, 0.05)
	assert.InDelta(t, 1.0, TotalPower(freqs, psd), 0.1)
}

func TestPeriodogramBadInput(t *testing.T) {
	_, _, err := Periodogram([]float64{1}, 100)
	require.Error(t, err)

	_, _, err = Periodogram(sine(10, 100, 100), 0)
	require.Error(t, err)
}

func TestStandardBandsCoverClinicalRange(t *testing.T) {
	bands := StandardBands()
	require.Len(t, bands, 5)
	assert.Equal(t, "delta", bands[0].Name)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, bands[i-1].High, bands[i].Low, "bands must be contiguous")
	}
}
