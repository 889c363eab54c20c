package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingShapeAndDeterminism(t *testing.T) {
	comp := Component{U: Sine(10, 1, 0), Gain: []float64{1, 0.5}}

	a := Recording([]string{"Fz", "Cz"}, 100, 2, 0.1, 42, comp)
	require.Equal(t, 2, a.Channels())
	require.Equal(t, 200, a.Samples())
	require.InDelta(t, 100, a.Rate, 1e-12)

	b := Recording([]string{"Fz", "Cz"}, 100, 2, 0.1, 42, comp)
	assert.Equal(t, a.Data.RawMatrix().Data, b.Data.RawMatrix().Data,
		"same seed must reproduce the same samples")

	c := Recording([]string{"Fz", "Cz"}, 100, 2, 0.1, 43, comp)
	assert.NotEqual(t, a.Data.RawMatrix().Data, c.Data.RawMatrix().Data)
}

func TestRecordingGainProjection(t *testing.T) {
	comp := Component{U: Sine(5, 2, 0), Gain: []float64{1, 0.5}}
	rec := Recording([]string{"a", "b"}, 100, 1, 0, 1, comp)

	for i := 0; i < rec.Samples(); i++ {
		assert.InDelta(t, rec.Data.At(0, i)*0.5, rec.Data.At(1, i), 1e-12)
	}
}
