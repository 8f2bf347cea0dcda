// Package kernel implements the score-matrix compute kernel (spec §4.3):
// it drives myers.WarpAdvance one target column at a time, turning a raw
// (query, target) byte pair into the full (Pv, Mv, Score) column history a
// caller needs for backtrace or for a dense score-matrix dump.
package kernel

import (
	"fmt"

	"github.com/o8191/GenomeWorks/internal/config"
	"github.com/o8191/GenomeWorks/internal/myers"
)

// Alphabet is the only symbol set this kernel recognizes.
const Alphabet = "ACGT"

// PeqMasks holds the four per-alphabet match masks for one query, one
// []uint32 (length nWords) per symbol. Building it once per alignment and
// reusing it across every target column is the precompute-and-cache path
// noted in spec §4.3's optimization note and decided on in §9.
type PeqMasks map[byte][]uint32

// BuildPeqMasks computes, for each symbol in Alphabet, the bit-vector whose
// bit i (within block b) is 1 iff query[b*WordBits+i] == symbol. Positions
// beyond n in the tail block are left zero, since they never match.
func BuildPeqMasks(query []byte) PeqMasks {
	nWords := myers.NWords(len(query))
	masks := make(PeqMasks, len(Alphabet))
	for i := 0; i < len(Alphabet); i++ {
		masks[Alphabet[i]] = make([]uint32, nWords)
	}
	for pos, c := range query {
		m, ok := masks[c]
		if !ok {
			continue // unknown symbol: spec §4.3 leaves eq all-zero for it
		}
		b := pos / myers.WordBits
		bit := pos % myers.WordBits
		m[b] |= 1 << uint(bit)
	}
	return masks
}

// eqFor returns the match mask for target character c against the query
// captured by masks, or an all-zero mask of the right width if c is not in
// Alphabet (spec §4.3: "an unknown character produces an all-zero eq").
func eqFor(masks PeqMasks, nWords int, c byte) []uint32 {
	if m, ok := masks[c]; ok {
		return m
	}
	return make([]uint32, nWords)
}

// ColumnHistory is the full (n_words x (m+1)) triple the spec requires the
// compute kernel to fill: one myers.Column per target position, column 0
// being the §4.1 boundary column.
type ColumnHistory struct {
	N          int // query length
	M          int // target length
	NWords     int
	HighestBit []uint32
	Columns    []myers.Column // len M+1
}

// Compute runs the full §4.3 procedure for one (query, target) pair and
// returns every column, 0..m, ready for backtrace or dense expansion.
//
// cfg selects the warp width to simulate and whether peq masks are
// precomputed once (the default) or recomputed every column (kept for
// equivalence testing against the optimization note in §4.3/§9).
func Compute(query, target []byte, cfg config.Kernel) (ColumnHistory, error) {
	if err := cfg.Validate(); err != nil {
		return ColumnHistory{}, fmt.Errorf("kernel: invalid config: %w", err)
	}

	n, m := len(query), len(target)
	nWords := myers.NWords(n)
	highestBit := make([]uint32, nWords)
	for b := 0; b < nWords; b++ {
		highestBit[b] = myers.HighestBit(b, n)
	}

	hist := ColumnHistory{
		N:          n,
		M:          m,
		NWords:     nWords,
		HighestBit: highestBit,
		Columns:    make([]myers.Column, m+1),
	}
	hist.Columns[0] = myers.InitColumnZero(n)

	if nWords == 0 {
		// Empty query: every column stays the trivial zero-block column,
		// and CellValue is never evaluated at i>=1 for it, so there is
		// nothing further to advance (compute_edit_distance handles n=0
		// directly at the caller level, per spec §6).
		return hist, nil
	}

	var masks PeqMasks
	if cfg.PrecomputeMasks {
		masks = BuildPeqMasks(query)
	}

	for t := 1; t <= m; t++ {
		if !cfg.PrecomputeMasks {
			masks = BuildPeqMasks(query) // recomputed every column, for equivalence testing
		}
		eq := eqFor(masks, nWords, target[t-1])
		prev := hist.Columns[t-1]
		newPv, newMv, carryOut := myers.WarpAdvance(prev.Pv, prev.Mv, eq, highestBit, 1, cfg.WarpWidth)
		score := make([]int32, nWords)
		for b := 0; b < nWords; b++ {
			score[b] = prev.Score[b] + int32(carryOut[b]) // spec §4.3 step 2b
		}
		hist.Columns[t] = myers.Column{
			Pv:    newPv,
			Mv:    newMv,
			Score: score,
		}
	}
	return hist, nil
}

// Distance returns DP[n, m] from a completed ColumnHistory, i.e. the unit
// -cost edit distance between the query and target it was computed for.
func Distance(hist ColumnHistory) int32 {
	if hist.N == 0 {
		return int32(hist.M)
	}
	last := hist.Columns[hist.M]
	mask := myers.LastEntryMask(hist.N)
	return myers.CellValue(last, hist.N, hist.NWords, mask)
}

// Cell recovers DP[i, j] for i in [0, n], j in [0, m] from a completed
// ColumnHistory, using the §3 full-matrix accessor. i == 0 is the implicit
// boundary row (DP[0, j] == j), handled directly since myers.CellValue only
// covers i >= 1.
func Cell(hist ColumnHistory, i, j int) int32 {
	if i == 0 {
		return int32(j)
	}
	col := hist.Columns[j]
	mask := myers.LastEntryMask(hist.N)
	return myers.CellValue(col, i, hist.NWords, mask)
}

// DenseMatrix expands a ColumnHistory into the (n+1)x(m+1) score matrix
// spec §6's compute_full_score_matrix exposes as a diagnostic. Row-major,
// row i holds DP[i, 0..m].
func DenseMatrix(hist ColumnHistory) [][]int32 {
	out := make([][]int32, hist.N+1)
	for i := 0; i <= hist.N; i++ {
		row := make([]int32, hist.M+1)
		for j := 0; j <= hist.M; j++ {
			row[j] = Cell(hist, i, j)
		}
		out[i] = row
	}
	return out
}
