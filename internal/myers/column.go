// Package myers implements the bit-packed DP column representation and the
// warp-cooperative Myers advance (spec §4.1, §4.2): the core of the
// bit-parallel Needleman-Wunsch kernel, independent of alphabet or of how
// a caller chooses to drive it across a whole sequence pair.
package myers

import (
	"math/bits"

	"github.com/o8191/GenomeWorks/internal/config"
)

// WordBits is the fixed machine-word width the column representation packs
// into (32, per spec §3).
const WordBits = config.WordBits

// NWords returns ceil(n / WordBits), the number of query blocks.
func NWords(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + WordBits - 1) / WordBits
}

// LastEntryMask returns the mask selecting the valid low bits of the tail
// (last) query block, given query length n. If n is an exact multiple of
// WordBits, every bit of the tail block is valid.
func LastEntryMask(n int) uint32 {
	nw := NWords(n)
	if nw == 0 {
		return 0
	}
	valid := n - (nw-1)*WordBits
	if valid >= WordBits {
		return ^uint32(0)
	}
	return (uint32(1) << uint(valid)) - 1
}

// HighestBit returns the word with a single set bit at the most significant
// valid position of block b of a query of length n (spec §4.2).
func HighestBit(b, n int) uint32 {
	nw := NWords(n)
	if b == nw-1 {
		valid := n - (nw-1)*WordBits
		if valid <= 0 {
			return 0
		}
		return uint32(1) << uint(valid-1)
	}
	return uint32(1) << uint(WordBits-1)
}

// Column holds one target-position's (Pv, Mv, Score) triple across every
// query block, as defined in spec §3.
type Column struct {
	Pv    []uint32
	Mv    []uint32
	Score []int32
}

// NewColumn allocates a zeroed column for nWords blocks.
func NewColumn(nWords int) Column {
	return Column{
		Pv:    make([]uint32, nWords),
		Mv:    make([]uint32, nWords),
		Score: make([]int32, nWords),
	}
}

// InitColumnZero builds column 0 for a query of length n: Pv all-ones,
// Mv zero, and Score[b] = min((b+1)*WordBits, n), encoding DP[i,0] = i
// (spec §4.1).
func InitColumnZero(n int) Column {
	nw := NWords(n)
	col := NewColumn(nw)
	for b := 0; b < nw; b++ {
		col.Pv[b] = ^uint32(0)
		col.Mv[b] = 0
		top := (b + 1) * WordBits
		if top > n {
			top = n
		}
		col.Score[b] = int32(top)
	}
	return col
}

// maskAboveBit returns a mask selecting the bits of a WordBits-wide word
// strictly above bit position r (i.e. bit indices > r).
func maskAboveBit(r int) uint32 {
	if r+1 >= WordBits {
		return 0
	}
	return ^uint32(0) << uint(r+1)
}

// CellValue recovers DP[i, j] from column col (the column at target
// position j), for i in [1, n], using the full-matrix accessor of spec §3.
// nWords and lastEntryMask must describe the same query length n that col
// was produced for.
func CellValue(col Column, i, nWords int, lastEntryMask uint32) int32 {
	b := (i - 1) / WordBits
	r := (i - 1) % WordBits
	mask := maskAboveBit(r)
	if b == nWords-1 {
		mask &= lastEntryMask
	}
	pvAbove := bits.OnesCount32(col.Pv[b] & mask)
	mvAbove := bits.OnesCount32(col.Mv[b] & mask)
	return col.Score[b] - int32(pvAbove) + int32(mvAbove)
}

// MaskBlock zeroes the invalid high bits of a tail-block word, given the
// query length n and block index b, so unused positions never spuriously
// match. The kernel's BuildPeqMasks does not call it: it only ever sets bits
// for positions below n.
func MaskBlock(word uint32, b, n int) uint32 {
	nw := NWords(n)
	if b == nw-1 {
		return word & LastEntryMask(n)
	}
	return word
}
