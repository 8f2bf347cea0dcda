// Package backtrace decodes the edit path from a completed score-matrix
// column history, walking from (n, m) to (0, 0).
//
// The source this core was ported from emits two different path codes for
// what is semantically the same "insert-in-target" operation: code 3 while
// walking the main loop, and code 1 while flushing the remaining query rows
// once the target is exhausted. That is preserved verbatim rather than
// unified. Code 1 is also the main-loop mismatch code, so 1 and 3 are not
// plain synonyms: a code 1 emitted while target characters remain is a
// mismatch, and a code 1 emitted after the target is exhausted is an
// insert-in-target.
package backtrace

import (
	"errors"
	"fmt"

	"github.com/o8191/GenomeWorks/internal/kernel"
)

// ErrPathTooLong is returned when the decoded path would exceed the
// caller-supplied maxPathLength.
var ErrPathTooLong = errors.New("backtrace: path exceeds max_path_length")

// Op is one emitted path code.
type Op = int8

const (
	OpMatch          Op = 0 // diag, query[i-1] == target[j-1]
	OpMismatch       Op = 1 // diag, query[i-1] != target[j-1]; also the tail-fill code for remaining i
	OpInsertInQuery  Op = 2 // left: consumes target only
	OpInsertInTarget Op = 3 // above: consumes query only, main-loop code
)

// Decode walks hist from (n, m) to (0, 0) and returns the path, written in
// the order it is produced (index 0 is the step nearest (n, m); reversing
// it yields forward orientation). len(path) never exceeds maxPathLength;
// Decode stops early and returns an error if the path would not fit, since
// producing a truncated path silently would violate the "write final path
// length" contract the caller relies on.
func Decode(hist kernel.ColumnHistory, maxPathLength int) ([]Op, error) {
	path := make([]Op, 0, minInt(maxPathLength, hist.N+hist.M))

	i, j := hist.N, hist.M
	myscore := kernel.Cell(hist, i, j)

	for i > 0 && j > 0 {
		if len(path) >= maxPathLength {
			return nil, errPathTooLong(maxPathLength)
		}
		above := kernel.Cell(hist, i-1, j)
		diag := kernel.Cell(hist, i-1, j-1)
		left := kernel.Cell(hist, i, j-1)

		switch {
		case left+1 == myscore:
			path = append(path, OpInsertInQuery)
			j--
			myscore = left
		case above+1 == myscore:
			path = append(path, OpInsertInTarget)
			i--
			myscore = above
		default:
			if diag == myscore {
				path = append(path, OpMatch)
			} else {
				path = append(path, OpMismatch)
			}
			i--
			j--
			myscore = diag
		}
	}

	for i > 0 {
		if len(path) >= maxPathLength {
			return nil, errPathTooLong(maxPathLength)
		}
		path = append(path, OpMismatch) // tail-fill code for "insert in target", see package doc
		i--
	}
	for j > 0 {
		if len(path) >= maxPathLength {
			return nil, errPathTooLong(maxPathLength)
		}
		path = append(path, OpInsertInQuery)
		j--
	}

	return path, nil
}

func errPathTooLong(maxPathLength int) error {
	return fmt.Errorf("%w: max_path_length=%d", ErrPathTooLong, maxPathLength)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
