// Package eeg holds uniformly sampled multichannel recordings and the
// reference operations applied to them before feature extraction.
package eeg

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrUnknownChannel reports a channel label absent from a recording.
var ErrUnknownChannel = errors.New("eeg: unknown channel label")

// Recording is a rectangular channels x samples recording sampled uniformly
// at Rate Hz. The channel count is fixed for the lifetime of the recording.
type Recording struct {
	Labels []string
	Rate   float64
	Data   *mat.Dense
}

// NewRecording wraps data (channels x samples) with its channel labels and
// sampling rate.
func NewRecording(labels []string, rate float64, data *mat.Dense) (*Recording, error) {
	rows, cols := data.Dims()
	if len(labels) != rows {
		return nil, fmt.Errorf("eeg: %d labels for %d channels", len(labels), rows)
	}
	if cols < 1 {
		return nil, fmt.Errorf("eeg: recording has no samples")
	}
	if rate <= 0 {
		return nil, fmt.Errorf("eeg: sampling rate %v Hz", rate)
	}
	return &Recording{Labels: labels, Rate: rate, Data: data}, nil
}

// Channels returns the channel count.
func (r *Recording) Channels() int {
	rows, _ := r.Data.Dims()
	return rows
}

// Samples returns the per-channel sample count.
func (r *Recording) Samples() int {
	_, cols := r.Data.Dims()
	return cols
}

// Duration returns the recording length in seconds.
func (r *Recording) Duration() float64 {
	return float64(r.Samples()) / r.Rate
}

// Channel returns channel i's samples, backed by the recording's storage.
func (r *Recording) Channel(i int) []float64 {
	return r.Data.RawRowView(i)
}

// Pick returns a fresh recording holding the named channels, in the order
// given.
func (r *Recording) Pick(labels ...string) (*Recording, error) {
	idx := make([]int, 0, len(labels))
	for _, want := range labels {
		found := -1
		for i, have := range r.Labels {
			if have == want {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, want)
		}
		idx = append(idx, found)
	}
	out := mat.NewDense(len(idx), r.Samples(), nil)
	for row, i := range idx {
		out.SetRow(row, r.Channel(i))
	}
	return NewRecording(append([]string(nil), labels...), r.Rate, out)
}

// Demean removes each channel's mean in place.
func (r *Recording) Demean() {
	rows, cols := r.Data.Dims()
	for ch := 0; ch < rows; ch++ {
		row := r.Data.RawRowView(ch)
		m := stat.Mean(row, nil)
		for i := 0; i < cols; i++ {
			row[i] -= m
		}
	}
}

// Rereference applies a common average reference in place: at every sample
// the mean over all channels is subtracted from each channel, see
// https://en.wikipedia.org/wiki/Electroencephalography#Method.
func (r *Recording) Rereference() {
	rows, cols := r.Data.Dims()
	for j := 0; j < cols; j++ {
		var m float64
		for i := 0; i < rows; i++ {
			m += r.Data.At(i, j)
		}
		m /= float64(rows)
		for i := 0; i < rows; i++ {
			r.Data.Set(i, j, r.Data.At(i, j)-m)
		}
	}
}
