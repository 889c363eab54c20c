package visualize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Han-YY/vBCI-Meeting-Workshop3/features"
	"github.com/Han-YY/vBCI-Meeting-Workshop3/synth"
)

func TestTraces(t *testing.T) {
	rec := synth.Recording(
		[]string{"Fz", "Cz"}, 100, 2, 0.1, 5,
		synth.Component{U: synth.Sine(10, 1, 0), Gain: []float64{1, 0.5}},
	)

	path := filepath.Join(t.TempDir(), "traces.png")
	require.NoError(t, Traces(rec, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBandPowerBox(t *testing.T) {
	rec := synth.Recording(
		[]string{"O1", "O2"}, 100, 20, 0.1, 5,
		synth.Component{U: synth.Sine(10, 1, 0), Gain: []float64{1, 0.3}},
	)
	tbl, err := features.Extract(rec, 2, 1, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "alpha.png")
	require.NoError(t, BandPowerBox(tbl, "alpha", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBandPowerBoxUnknownBand(t *testing.T) {
	rec := synth.Recording(
		[]string{"O1"}, 100, 10, 0.1, 5,
		synth.Component{U: synth.Sine(10, 1, 0), Gain: []float64{1}},
	)
	tbl, err := features.Extract(rec, 2, 1, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sigma.png")
	require.Error(t, BandPowerBox(tbl, "sigma", path))

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err), "no file may be written for an unknown band")
}
