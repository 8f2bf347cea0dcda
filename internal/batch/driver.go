// Package batch implements the batch driver (spec §4.6): iterate a set of
// alignment requests sharing buffers sized to the batch's maximum
// dimensions, launching the compute kernel (§4.3) then the backtrace
// decoder (§4.5) for each alignment in turn, and synchronizing once at
// batch end.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/o8191/GenomeWorks/internal/backtrace"
	"github.com/o8191/GenomeWorks/internal/bperrors"
	"github.com/o8191/GenomeWorks/internal/config"
	"github.com/o8191/GenomeWorks/internal/kernel"
	"github.com/o8191/GenomeWorks/internal/logx"
	"github.com/o8191/GenomeWorks/internal/matrix"
	"github.com/o8191/GenomeWorks/internal/myers"
)

// ErrAllocation and ErrInvalidInput are re-exports of the shared sentinels
// so callers of this package can use errors.Is without importing bperrors
// directly.
var (
	ErrAllocation   = bperrors.ErrAllocation
	ErrInvalidInput = bperrors.ErrInvalidInput
)

// Request is one alignment request within a batch.
type Request struct {
	Query  []byte
	Target []byte
}

// Result is one alignment's outcome: the edit distance and its decoded
// path, in the reversed orientation backtrace.Decode produces.
type Result struct {
	Distance int32
	Path     []backtrace.Op
}

// buffers bundles the three §4.4 matrix stores the driver allocates once
// per batch and reuses across every alignment, sized to the batch's max
// query/target dimensions, exactly as §4.6 requires.
type buffers struct {
	pv    *matrix.Store[uint32]
	mv    *matrix.Store[uint32]
	score *matrix.Store[int32]
}

// Run processes reqs as one batch: one §4.4 buffer set sized to the batch's
// maximum n_words and m, reused (re-viewed) across every alignment, with
// the compute and backtrace kernels launched serially per alignment on a
// single simulated stream. ctx is checked between alignment pairs (spec §5);
// a context already cancelled before Run starts processes no alignments.
func Run(ctx context.Context, reqs []Request, cfg config.Kernel, maxPathLength int, log *logx.Logger, metrics *Metrics) ([]Result, error) {
	if log == nil {
		log = logx.Noop()
	}
	start := time.Now()
	defer func() {
		metrics.observeBatchDuration(time.Since(start).Seconds())
	}()

	if len(reqs) == 0 {
		return nil, nil
	}

	nWordsMax, mMax := 0, 0
	for _, r := range reqs {
		if nw := myers.NWords(len(r.Query)); nw > nWordsMax {
			nWordsMax = nw
		}
		if len(r.Target) > mMax {
			mMax = len(r.Target)
		}
	}
	if nWordsMax == 0 {
		nWordsMax = 1
	}

	bufs, err := newBuffers(len(reqs), nWordsMax, mMax+1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}

	log.Info("batch start", "alignments", len(reqs), "n_words_max", nWordsMax, "m_max", mMax)

	results := make([]Result, len(reqs))
	for i, req := range reqs {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("batch: cancelled after %d/%d alignments: %w", i, len(reqs), ctx.Err())
		default:
		}

		hist, err := kernel.Compute(req.Query, req.Target, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: alignment %d: %v", ErrInvalidInput, i, err)
		}
		metrics.observeKernelLaunch("compute")

		storeColumns(bufs, i, hist)

		pathMax := maxPathLength
		if pathMax <= 0 {
			pathMax = cfg.MaxPathLengthDefault
		}
		path, err := backtrace.Decode(hist, pathMax)
		if err != nil {
			return nil, fmt.Errorf("alignment %d: %w", i, err)
		}
		metrics.observeKernelLaunch("backtrace")
		metrics.observeAlignment()

		results[i] = Result{Distance: kernel.Distance(hist), Path: path}

		log.Debug("alignment done", "alignment_index", i, "n_words", hist.NWords, "distance", results[i].Distance)
	}

	log.Info("batch synchronized", "alignments", len(reqs))
	return results, nil
}

func newBuffers(batchCount, nWordsMax, mPlus1Max int) (buffers, error) {
	elementsPerBatch := nWordsMax * mPlus1Max
	pv, err := matrix.NewStore[uint32](batchCount, elementsPerBatch)
	if err != nil {
		return buffers{}, err
	}
	mv, err := matrix.NewStore[uint32](batchCount, elementsPerBatch)
	if err != nil {
		return buffers{}, err
	}
	score, err := matrix.NewStore[int32](batchCount, elementsPerBatch)
	if err != nil {
		return buffers{}, err
	}
	return buffers{pv: pv, mv: mv, score: score}, nil
}

// storeColumns writes one alignment's full column history into its slot of
// the shared batch buffers, column-major as §4.4 specifies. This models
// the compute kernel's device-side writes; the buffers are read back only
// for diagnostics in this implementation, since backtrace.Decode works
// directly off the in-memory kernel.ColumnHistory it was handed.
func storeColumns(bufs buffers, batchID int, hist kernel.ColumnHistory) {
	rows := hist.NWords
	if rows == 0 {
		return
	}
	cols := hist.M + 1
	pvView := bufs.pv.View(batchID, rows, cols)
	mvView := bufs.mv.View(batchID, rows, cols)
	scoreView := bufs.score.View(batchID, rows, cols)
	for t, col := range hist.Columns {
		pvView.SetColumn(t, col.Pv)
		mvView.SetColumn(t, col.Mv)
		scoreView.SetColumn(t, col.Score)
	}
}

