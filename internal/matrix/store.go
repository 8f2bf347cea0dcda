// Package matrix implements the batched device matrix store (spec §4.4):
// one contiguous buffer hosting several logically independent column-major
// matrices, addressed by batch index. There is no accelerator in this
// implementation, so "device buffer" is a plain Go slice; the contract
// (single allocation, view-by-batch-id, explicit bounds) is kept exactly as
// the spec states it, grounded on the pack's device/tensor-style
// abstractions (contiguous backing storage sliced into per-batch views)
// rather than one Go slice-of-slices per matrix.
package matrix

import "fmt"

// Store owns one contiguous buffer of size batchCount*elementsPerBatch,
// generic over the element type T (Pv/Mv use uint32, Score uses int32).
type Store[T any] struct {
	buf              []T
	batchCount       int
	elementsPerBatch int
}

// NewStore allocates a Store. Allocation failure in this implementation can
// only be Go's own out-of-memory panic, which spec §7(a) treats as fatal to
// the batch; there is no recoverable Go-level signal for it. NewStore
// returns an error only for non-positive dimensions.
func NewStore[T any](batchCount, elementsPerBatch int) (*Store[T], error) {
	if batchCount <= 0 || elementsPerBatch <= 0 {
		return nil, fmt.Errorf("matrix: invalid store dimensions (batchCount=%d, elementsPerBatch=%d)", batchCount, elementsPerBatch)
	}
	return &Store[T]{
		buf:              make([]T, batchCount*elementsPerBatch),
		batchCount:       batchCount,
		elementsPerBatch: elementsPerBatch,
	}, nil
}

// View is a column-major 2-D view over one batch slot's slice of the
// backing buffer: addr = base + batchID*elementsPerBatch + col*rows + row.
type View[T any] struct {
	data []T
	rows int
	cols int
}

// View returns a column-major (rows x cols) view of batch batchID.
// rows*cols must not exceed elementsPerBatch; violating this is a
// programming error per spec §4.4 and panics rather than returning a typed
// result, since there is no recoverable action a caller could take.
func (s *Store[T]) View(batchID, rows, cols int) View[T] {
	if batchID < 0 || batchID >= s.batchCount {
		panic(fmt.Sprintf("matrix: batch id %d out of range [0,%d)", batchID, s.batchCount))
	}
	if rows*cols > s.elementsPerBatch {
		panic(fmt.Sprintf("matrix: view %dx%d exceeds elements_per_batch=%d", rows, cols, s.elementsPerBatch))
	}
	base := batchID * s.elementsPerBatch
	return View[T]{data: s.buf[base : base+rows*cols], rows: rows, cols: cols}
}

// Rows and Cols report the view's declared dimensions.
func (v View[T]) Rows() int { return v.rows }
func (v View[T]) Cols() int { return v.cols }

// At returns the element at (row, col) in column-major order.
func (v View[T]) At(row, col int) T {
	return v.data[col*v.rows+row]
}

// Set writes the element at (row, col) in column-major order.
func (v View[T]) Set(row, col int, val T) {
	v.data[col*v.rows+row] = val
}

// SetColumn overwrites an entire column in one call, used by the compute
// kernel to store a freshly advanced (Pv, Mv, Score) column in one shot
// instead of per-cell Set calls.
func (v View[T]) SetColumn(col int, vals []T) {
	if len(vals) != v.rows {
		panic(fmt.Sprintf("matrix: SetColumn length %d != rows %d", len(vals), v.rows))
	}
	copy(v.data[col*v.rows:(col+1)*v.rows], vals)
}

// CopyToHost produces a dense row-major [][]T snapshot of the view. Named
// to match the spec's copy_to_host; there is no stream/async distinction to
// model here since there is no accelerator, so the call is synchronous.
func (v View[T]) CopyToHost() [][]T {
	out := make([][]T, v.rows)
	for r := 0; r < v.rows; r++ {
		row := make([]T, v.cols)
		for c := 0; c < v.cols; c++ {
			row[c] = v.At(r, c)
		}
		out[r] = row
	}
	return out
}
