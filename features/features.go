// Package features computes block-wise EEG measures: band powers and
// Lempel-Ziv complexity per channel, assembled into a flat table for
// downstream statistics.
package features

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Han-YY/vBCI-Meeting-Workshop3/complexity"
	"github.com/Han-YY/vBCI-Meeting-Workshop3/eeg"
	"github.com/Han-YY/vBCI-Meeting-Workshop3/epoch"
	"github.com/Han-YY/vBCI-Meeting-Workshop3/spectral"
)

// Row holds the measures of one channel within one block.
type Row struct {
	Block      int
	Start      float64 // block start time, seconds
	Channel    string
	Power      map[string]float64 // absolute band power, by band name
	Relative   map[string]float64 // band share of total power
	Complexity float64            // normalized Lempel-Ziv complexity
}

// Table is an ordered collection of rows, block-major then channel order.
type Table struct {
	Bands []spectral.Band
	Rows  []Row
}

// Extract segments rec into blocks of blockLength seconds overlapping by
// overlap seconds and computes the measures of every (block, channel) pair.
func Extract(rec *eeg.Recording, blockLength, overlap float64, bands []spectral.Band) (*Table, error) {
	if len(bands) == 0 {
		bands = spectral.StandardBands()
	}

	eps, err := epoch.Segment(rec.Data, rec.Rate, blockLength, overlap)
	if err != nil {
		return nil, err
	}

	tbl := &Table{
		Bands: bands,
		Rows:  make([]Row, 0, eps.Count()*rec.Channels()),
	}
	starts := eps.StartTimes()
	for b := 0; b < eps.Count(); b++ {
		block := eps.Block(b)
		for ch := 0; ch < rec.Channels(); ch++ {
			x := block.RawRowView(ch)
			freqs, psd, err := spectral.Periodogram(x, rec.Rate)
			if err != nil {
				return nil, fmt.Errorf("features: block %d channel %q: %w", b, rec.Labels[ch], err)
			}

			row := Row{
				Block:      b,
				Start:      starts[b],
				Channel:    rec.Labels[ch],
				Power:      make(map[string]float64, len(bands)),
				Relative:   make(map[string]float64, len(bands)),
				Complexity: complexity.Normalized(x),
			}
			for _, band := range bands {
				row.Power[band.Name] = spectral.BandPower(freqs, psd, band)
				row.Relative[band.Name] = spectral.RelativeBandPower(freqs, psd, band)
			}
			tbl.Rows = append(tbl.Rows, row)
		}
	}
	return tbl, nil
}

// WriteCSV writes the table with one row per (block, channel) pair. Band
// columns follow the table's band order.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"block", "start_s", "channel"}
	for _, band := range t.Bands {
		header = append(header, band.Name+"_power")
	}
	for _, band := range t.Bands {
		header = append(header, band.Name+"_relative")
	}
	header = append(header, "lz_complexity")
	if err := cw.Write(header); err != nil {
		return err
	}

	rec := make([]string, 0, len(header))
	for _, row := range t.Rows {
		rec = rec[:0]
		rec = append(rec,
			strconv.Itoa(row.Block),
			strconv.FormatFloat(row.Start, 'g', -1, 64),
			row.Channel,
		)
		for _, band := range t.Bands {
			rec = append(rec, strconv.FormatFloat(row.Power[band.Name], 'g', 8, 64))
		}
		for _, band := range t.Bands {
			rec = append(rec, strconv.FormatFloat(row.Relative[band.Name], 'g', 8, 64))
		}
		rec = append(rec, strconv.FormatFloat(row.Complexity, 'g', 8, 64))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
