// Package epoch slices a multichannel recording into fixed-length,
// optionally overlapping blocks for block-wise feature extraction.
// Segmentation follows the usual sliding-window scheme, see
// https://en.wikipedia.org/wiki/Window_function#Spectral_analysis.
package epoch

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidParameters reports a block/overlap combination that cannot
	// produce a positive stride.
	ErrInvalidParameters = errors.New("epoch: invalid segmentation parameters")
	// ErrInsufficientSignal reports a signal too short for a single block.
	ErrInsufficientSignal = errors.New("epoch: signal too short for one block")
)

// Epochs holds the blocks cut from a recording, in ascending start-time
// order. Every block has the same channel count and the same number of
// samples.
type Epochs struct {
	blocks []*mat.Dense
	starts []float64
	points int
}

// Count returns the number of blocks.
func (e *Epochs) Count() int { return len(e.blocks) }

// Points returns the number of samples per block.
func (e *Epochs) Points() int { return e.points }

// Channels returns the channel count shared by all blocks.
func (e *Epochs) Channels() int {
	r, _ := e.blocks[0].Dims()
	return r
}

// Block returns the channels x points matrix of block b.
func (e *Epochs) Block(b int) *mat.Dense { return e.blocks[b] }

// StartTimes returns a copy of the start time of each block in seconds,
// ascending and evenly spaced by the nominal block length.
func (e *Epochs) StartTimes() []float64 {
	return append([]float64(nil), e.starts...)
}

// Segment cuts sig (channels x samples, sampled at rate Hz) into blocks of
// blockLength seconds that overlap by overlap seconds. Both durations are
// converted to whole samples by rounding. The first block starts at sample
// zero and each following block advances by blockPoints-overlapPoints
// samples. The input is never modified; every block is freshly allocated.
func Segment(sig mat.Matrix, rate, blockLength, overlap float64) (*Epochs, error) {
	channels, n := sig.Dims()
	if channels < 1 || n < 1 {
		return nil, fmt.Errorf("%w: empty signal", ErrInvalidParameters)
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: sampling rate %v Hz", ErrInvalidParameters, rate)
	}
	if overlap < 0 || overlap >= blockLength {
		return nil, fmt.Errorf("%w: overlap %vs against block length %vs", ErrInvalidParameters, overlap, blockLength)
	}

	blockPoints := int(math.Round(rate * blockLength))
	overlapPoints := int(math.Round(rate * overlap))
	if blockPoints < 1 || overlapPoints < 0 {
		return nil, fmt.Errorf("%w: block of %d samples overlapping by %d", ErrInvalidParameters, blockPoints, overlapPoints)
	}
	stride := blockPoints - overlapPoints
	if stride < 1 {
		return nil, fmt.Errorf("%w: overlap leaves no stride", ErrInvalidParameters)
	}

	count := (n - stride) / stride
	// The final block must be a complete in-bounds slice.
	if n < blockPoints {
		count = 0
	} else if fit := (n-blockPoints)/stride + 1; count > fit {
		count = fit
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: %d samples, a block needs %d", ErrInsufficientSignal, n, blockPoints)
	}

	blocks := make([]*mat.Dense, count)
	starts := make([]float64, count)
	for b := 0; b < count; b++ {
		off := b * stride
		block := mat.NewDense(channels, blockPoints, nil)
		for ch := 0; ch < channels; ch++ {
			for i := 0; i < blockPoints; i++ {
				block.Set(ch, i, sig.At(ch, off+i))
			}
		}
		blocks[b] = block
		// Start times carry the nominal block length, not the stride.
		starts[b] = float64(b) * blockLength
	}
	return &Epochs{blocks: blocks, starts: starts, points: blockPoints}, nil
}
