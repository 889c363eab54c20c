package eeg

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/OpenPSG/edf"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrMixedRates reports data channels that disagree on sampling rate.
	ErrMixedRates = errors.New("eeg: data channels disagree on sampling rate")
	// ErrNoDataChannels reports a file without any uniformly sampled data
	// channels.
	ErrNoDataChannels = errors.New("eeg: no data channels in file")
)

// annotationLabel marks EDF+ annotation signals, which carry text events
// rather than uniformly sampled data.
const annotationLabel = "EDF Annotations"

// edfMeta is the record layout the edf reader parses but does not surface:
// enough to size the recording and derive per-signal sampling rates.
type edfMeta struct {
	records  int
	duration float64 // seconds per data record
	labels   []string
	samples  []int // samples per record, per signal
}

// readEDFMeta scans the fixed ASCII metadata fields of the EDF header and
// rewinds the reader. All sample decoding stays with the edf package.
func readEDFMeta(r io.ReadSeeker) (*edfMeta, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	b := make([]byte, 256)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}

	meta := &edfMeta{}
	var err error
	if meta.records, err = strconv.Atoi(strings.TrimSpace(string(b[236:244]))); err != nil {
		return nil, fmt.Errorf("data record count: %w", err)
	}
	if meta.duration, err = strconv.ParseFloat(strings.TrimSpace(string(b[244:252])), 64); err != nil {
		return nil, fmt.Errorf("data record duration: %w", err)
	}
	ns, err := strconv.Atoi(strings.TrimSpace(string(b[252:256])))
	if err != nil {
		return nil, fmt.Errorf("signal count: %w", err)
	}

	labels := make([]byte, 16*ns)
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, fmt.Errorf("signal labels: %w", err)
	}
	meta.labels = make([]string, ns)
	for i := 0; i < ns; i++ {
		meta.labels[i] = strings.TrimSpace(string(labels[16*i : 16*(i+1)]))
	}

	// The samples-per-record block sits after the label, transducer,
	// dimension, physical/digital range and prefiltering blocks.
	if _, err := r.Seek(int64(256+216*ns), io.SeekStart); err != nil {
		return nil, err
	}
	counts := make([]byte, 8*ns)
	if _, err := io.ReadFull(r, counts); err != nil {
		return nil, fmt.Errorf("samples per record: %w", err)
	}
	meta.samples = make([]int, ns)
	for i := 0; i < ns; i++ {
		if meta.samples[i], err = strconv.Atoi(strings.TrimSpace(string(counts[8*i : 8*(i+1)]))); err != nil {
			return nil, fmt.Errorf("samples per record for signal %d: %w", i, err)
		}
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return meta, nil
}

// LoadEDF reads an EDF/EDF+ recording into a Recording. Signal decoding and
// calibration go through github.com/OpenPSG/edf; annotation signals are
// skipped. All remaining channels must share one sampling rate.
func LoadEDF(r io.ReadSeeker) (*Recording, error) {
	meta, err := readEDFMeta(r)
	if err != nil {
		return nil, fmt.Errorf("eeg: reading EDF header: %w", err)
	}
	if meta.records < 1 {
		return nil, fmt.Errorf("eeg: EDF file has no data records")
	}
	if meta.duration <= 0 {
		return nil, fmt.Errorf("eeg: EDF record duration %vs", meta.duration)
	}

	er, err := edf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("eeg: opening EDF file: %w", err)
	}

	var (
		labels []string
		rows   [][]float64
		rate   float64
	)
	for i := range meta.labels {
		label := meta.labels[i]
		if strings.Contains(label, annotationLabel) || meta.samples[i] < 1 {
			continue
		}
		srate := float64(meta.samples[i]) / meta.duration
		if rate == 0 {
			rate = srate
		} else if math.Abs(srate-rate) > 1e-9 {
			return nil, fmt.Errorf("%w: %q at %v Hz, expected %v Hz", ErrMixedRates, label, srate, rate)
		}

		sr, err := er.Signal(i)
		if err != nil {
			return nil, fmt.Errorf("eeg: signal %q: %w", label, err)
		}
		buf := make([]float64, meta.records*meta.samples[i])
		if n, err := sr.Read(buf); err != nil && !(errors.Is(err, io.EOF) && n == len(buf)) {
			return nil, fmt.Errorf("eeg: reading signal %q: %w", label, err)
		}
		labels = append(labels, label)
		rows = append(rows, buf)
	}
	if len(rows) == 0 {
		return nil, ErrNoDataChannels
	}

	data := mat.NewDense(len(rows), len(rows[0]), nil)
	for ch, row := range rows {
		data.SetRow(ch, row)
	}
	return NewRecording(labels, rate, data)
}
