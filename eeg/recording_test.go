package eeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testRecording(t *testing.T) *Recording {
	t.Helper()
	data := mat.NewDense(3, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	})
	rec, err := NewRecording([]string{"Fz", "Cz", "Pz"}, 100, data)
	require.NoError(t, err)
	return rec
}

func TestNewRecordingValidation(t *testing.T) {
	data := mat.NewDense(2, 4, nil)

	_, err := NewRecording([]string{"Fz"}, 100, data)
	require.Error(t, err)

	_, err = NewRecording([]string{"Fz", "Cz"}, 0, data)
	require.Error(t, err)

	_, err = NewRecording([]string{"Fz", "Cz"}, 100, data)
	require.NoError(t, err)
}

func TestRecordingDims(t *testing.T) {
	rec := testRecording(t)
	assert.Equal(t, 3, rec.Channels())
	assert.Equal(t, 4, rec.Samples())
	assert.InDelta(t, 0.04, rec.Duration(), 1e-12)
	assert.Equal(t, []float64{5, 6, 7, 8}, rec.Channel(1))
}

func TestPick(t *testing.T) {
	rec := testRecording(t)

	sub, err := rec.Pick("Pz", "Fz")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pz", "Fz"}, sub.Labels)
	assert.Equal(t, []float64{9, 10, 11, 12}, sub.Channel(0))
	assert.Equal(t, []float64{1, 2, 3, 4}, sub.Channel(1))

	// Picked data must not alias the source.
	sub.Data.Set(0, 0, -1)
	assert.Equal(t, 9.0, rec.Data.At(2, 0))

	_, err = rec.Pick("Oz")
	require.ErrorIs(t, err, ErrUnknownChannel)
}

func TestDemean(t *testing.T) {
	rec := testRecording(t)
	rec.Demean()
	for ch := 0; ch < rec.Channels(); ch++ {
		var sum float64
		for _, v := range rec.Channel(ch) {
			sum += v
		}
		assert.InDelta(t, 0, sum, 1e-12)
	}
}

func TestRereference(t *testing.T) {
	rec := testRecording(t)
	rec.Rereference()

	// Common average reference: channel mean is zero at every sample.
	for j := 0; j < rec.Samples(); j++ {
		var sum float64
		for ch := 0; ch < rec.Channels(); ch++ {
			sum += rec.Data.At(ch, j)
		}
		assert.InDelta(t, 0, sum, 1e-12, "sample %d", j)
	}

	// Channel differences are preserved.
	assert.InDelta(t, -4, rec.Data.At(0, 0)-rec.Data.At(1, 0), 1e-12)
}
