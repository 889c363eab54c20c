// Package spectral estimates power spectra of EEG channels and integrates
// them over the clinical frequency bands.
package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Band is a half-open frequency interval [Low, High) in Hz.
type Band struct {
	Name string  `mapstructure:"name"`
	Low  float64 `mapstructure:"low"`
	High float64 `mapstructure:"high"`
}

// StandardBands returns the conventional EEG bands.
func StandardBands() []Band {
	return []Band{
		{Name: "delta", Low: 0.5, High: 4},
		{Name: "theta", Low: 4, High: 8},
		{Name: "alpha", Low: 8, High: 13},
		{Name: "beta", Low: 13, High: 30},
		{Name: "gamma", Low: 30, High: 45},
	}
}

// Periodogram returns the one-sided Hann-windowed power spectral density of
// x sampled at rate Hz, together with the bin frequencies. The signal is
// demeaned before windowing; the density is scaled so that the integral
// over frequency recovers the signal power (Welch scaling, see
// https://en.wikipedia.org/wiki/Spectral_density_estimation).
func Periodogram(x []float64, rate float64) (freqs, psd []float64, err error) {
	n := len(x)
	if n < 2 {
		return nil, nil, fmt.Errorf("spectral: %d samples, need at least 2", n)
	}
	if rate <= 0 {
		return nil, nil, fmt.Errorf("spectral: sampling rate %v Hz", rate)
	}

	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	w = window.Hann(w)

	mean := stat.Mean(x, nil)
	buf := make([]float64, n)
	for i, v := range x {
		buf[i] = (v - mean) * w[i]
	}
	sumw2 := floats.Dot(w, w)

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, buf)

	freqs = make([]float64, len(coeff))
	psd = make([]float64, len(coeff))
	for i, c := range coeff {
		freqs[i] = fft.Freq(i) * rate
		p := (real(c)*real(c) + imag(c)*imag(c)) / (rate * sumw2)
		if i > 0 && i < len(coeff)-1 {
			p *= 2
		}
		psd[i] = p
	}
	return freqs, psd, nil
}

// BandPower integrates the density over band by rectangular summation of
// the bins falling inside [Low, High).
func BandPower(freqs, psd []float64, band Band) float64 {
	if len(freqs) < 2 {
		return 0
	}
	df := freqs[1] - freqs[0]
	var p float64
	for i, f := range freqs {
		if f >= band.Low && f < band.High {
			p += psd[i] * df
		}
	}
	return p
}

// TotalPower integrates the density over all bins above DC.
func TotalPower(freqs, psd []float64) float64 {
	if len(freqs) < 2 {
		return 0
	}
	df := freqs[1] - freqs[0]
	var p float64
	for i := 1; i < len(psd); i++ {
		p += psd[i] * df
	}
	return p
}

// RelativeBandPower returns the band's share of the total power above DC,
// or zero for an all-zero spectrum.
func RelativeBandPower(freqs, psd []float64, band Band) float64 {
	total := TotalPower(freqs, psd)
	if total == 0 {
		return 0
	}
	return BandPower(freqs, psd, band) / total
}
