// Package complexity implements the Lempel-Ziv complexity of a signal, a
// common index of EEG signal diversity, see
// https://en.wikipedia.org/wiki/Lempel%E2%80%93Ziv_complexity.
//
// A real-valued signal is first binarized around its median, then parsed
// into phrases where each phrase is the shortest continuation that cannot
// be copied from the preceding history. The phrase count c(n) grows like
// n/log2(n) for random sequences, so c(n)*log2(n)/n is close to one for
// maximally diverse signals and near zero for regular ones.
package complexity

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Binarize thresholds x at its median: samples at or above the median map
// to 1, the rest to 0.
func Binarize(x []float64) []byte {
	if len(x) == 0 {
		return nil
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)

	seq := make([]byte, len(x))
	for i, v := range x {
		if v >= median {
			seq[i] = 1
		}
	}
	return seq
}

// Complexity returns the Lempel-Ziv (1976) phrase count of seq. Each phrase
// extends the longest copy of the upcoming symbols found anywhere in the
// history by one symbol; copies may overlap the phrase being built, so a
// periodic sequence collapses into a handful of phrases.
func Complexity(seq []byte) int {
	n := len(seq)
	c := 0
	for l := 0; l < n; {
		kmax := 0
		for i := 0; i < l; i++ {
			k := 0
			for l+k < n && seq[i+k] == seq[l+k] {
				k++
			}
			if k > kmax {
				kmax = k
			}
		}
		step := kmax + 1
		if l+step > n {
			step = n - l
		}
		l += step
		c++
	}
	return c
}

// Normalized binarizes x and returns c(n)*log2(n)/n, the Lempel-Ziv phrase
// count normalized by the expected count for a random binary sequence.
func Normalized(x []float64) float64 {
	n := len(x)
	if n < 2 {
		return 0
	}
	c := Complexity(Binarize(x))
	return float64(c) * math.Log2(float64(n)) / float64(n)
}
