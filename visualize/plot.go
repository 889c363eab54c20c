// Package visualize renders workshop figures with gonum/plot: stacked
// channel traces and per-channel band-power box plots.
package visualize

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/Han-YY/vBCI-Meeting-Workshop3/eeg"
	"github.com/Han-YY/vBCI-Meeting-Workshop3/features"
)

// Traces saves a stacked line plot of every channel in rec, offset
// vertically so the traces do not overlap.
func Traces(rec *eeg.Recording, path string) error {
	p := plot.New()
	p.Title.Text = "Channel traces"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "amplitude (offset per channel)"

	// Offset by twice the largest excursion so neighbours stay apart.
	var peak float64
	for ch := 0; ch < rec.Channels(); ch++ {
		for _, v := range rec.Channel(ch) {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
	}
	offset := 2 * peak
	if offset == 0 {
		offset = 1
	}

	args := make([]interface{}, 0, 2*rec.Channels())
	for ch := 0; ch < rec.Channels(); ch++ {
		pts := make(plotter.XYs, rec.Samples())
		for i, v := range rec.Channel(ch) {
			pts[i].X = float64(i) / rec.Rate
			pts[i].Y = v + float64(ch)*offset
		}
		args = append(args, rec.Labels[ch], pts)
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return fmt.Errorf("visualize: adding traces: %w", err)
	}

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// BandPowerBox saves a box plot of the named band's power per channel,
// one box per channel over all blocks.
func BandPowerBox(tbl *features.Table, band, path string) error {
	known := false
	for _, b := range tbl.Bands {
		if b.Name == band {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("visualize: unknown band %q", band)
	}

	byChannel := make(map[string]plotter.Values)
	var order []string
	for _, row := range tbl.Rows {
		if _, ok := byChannel[row.Channel]; !ok {
			order = append(order, row.Channel)
		}
		byChannel[row.Channel] = append(byChannel[row.Channel], row.Power[band])
	}
	if len(order) == 0 {
		return fmt.Errorf("visualize: empty feature table")
	}

	p := plot.New()
	p.Title.Text = band + " band power"
	p.Y.Label.Text = "power"

	for i, ch := range order {
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), byChannel[ch])
		if err != nil {
			return fmt.Errorf("visualize: box for channel %q: %w", ch, err)
		}
		p.Add(box)
	}
	p.NominalX(order...)

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
