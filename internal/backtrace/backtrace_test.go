package backtrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o8191/GenomeWorks/internal/config"
	"github.com/o8191/GenomeWorks/internal/kernel"
)

func decode(t *testing.T, query, target string, maxPathLength int) []Op {
	t.Helper()
	hist, err := kernel.Compute([]byte(query), []byte(target), config.DefaultKernel())
	require.NoError(t, err)
	path, err := Decode(hist, maxPathLength)
	require.NoError(t, err)
	return path
}

// countOpKind returns the number of ops equal to any of kinds.
func countOpKind(path []Op, kinds ...Op) int {
	set := map[Op]bool{}
	for _, k := range kinds {
		set[k] = true
	}
	n := 0
	for _, op := range path {
		if set[op] {
			n++
		}
	}
	return n
}

func TestScenarioIdenticalSequences(t *testing.T) {
	path := decode(t, "ACGT", "ACGT", 16)
	require.Len(t, path, 4)
	for _, op := range path {
		assert.Equal(t, OpMatch, op)
	}
}

func TestScenarioSingleMismatch(t *testing.T) {
	path := decode(t, "ACGT", "ACCT", 16)
	require.Len(t, path, 4)
	assert.Equal(t, 1, countOpKind(path, OpMismatch))
	assert.Equal(t, 3, countOpKind(path, OpMatch))
}

func TestScenarioEmptyTargetUsesTailFillCode(t *testing.T) {
	path := decode(t, "AAAA", "", 16)
	require.Len(t, path, 4)
	for _, op := range path {
		assert.Equal(t, OpMismatch, op, "tail-fill for remaining query uses code 1, not code 3")
	}
}

func TestScenarioEmptyQuery(t *testing.T) {
	path := decode(t, "", "CCCC", 16)
	require.Len(t, path, 4)
	for _, op := range path {
		assert.Equal(t, OpInsertInQuery, op)
	}
}

func TestScenarioSingleInsertInQuery(t *testing.T) {
	path := decode(t, "ACG", "ACCG", 16)
	require.Len(t, path, 4)
	assert.Equal(t, 1, countOpKind(path, OpInsertInQuery))
	assert.Equal(t, 3, countOpKind(path, OpMatch))
}

func TestScenarioTailBlockSubstitution(t *testing.T) {
	query := "ACGTACGTACGTACGTACGTACGTACGTACGTA" // 33 chars
	query = query[:33]
	target := []byte(query)
	target[32] = 'C'
	if query[32] == 'C' {
		target[32] = 'G'
	}
	path := decode(t, query, string(target), 64)
	require.Len(t, path, 33)
	assert.Equal(t, 1, countOpKind(path, OpMismatch))
	assert.Equal(t, 32, countOpKind(path, OpMatch))
}

func TestNonMatchOpCountEqualsDistance(t *testing.T) {
	cases := []struct{ query, target string }{
		{"ACGT", "ACGT"},
		{"ACGT", "ACCT"},
		{"AAAA", ""},
		{"", "CCCC"},
		{"ACG", "ACCG"},
		{"ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT", "ACGTTCGTACGTACCTACGTACGAACGTACGTACGCACGT"},
	}
	for _, c := range cases {
		hist, err := kernel.Compute([]byte(c.query), []byte(c.target), config.DefaultKernel())
		require.NoError(t, err)
		path, err := Decode(hist, 256)
		require.NoError(t, err)

		nonMatch := countOpKind(path, OpMismatch, OpInsertInQuery, OpInsertInTarget)
		assert.Equal(t, kernel.Distance(hist), int32(nonMatch), "query=%q target=%q", c.query, c.target)
	}
}

func TestDecodeReturnsErrorWhenPathTooLong(t *testing.T) {
	hist, err := kernel.Compute([]byte("ACGTACGT"), []byte(""), config.DefaultKernel())
	require.NoError(t, err)
	_, err = Decode(hist, 2)
	assert.ErrorIs(t, err, ErrPathTooLong)
}

func TestPathConsumptionMatchesSequenceLengths(t *testing.T) {
	// Every step consumes query, target, or both; match/mismatch consume
	// one of each, insert-in-query consumes target only, insert-in-target
	// (either emitted code) consumes query only. Code 1 emitted once the
	// target is exhausted is the tail-fill insert-in-target, not a
	// mismatch. Totals must equal n and m.
	cases := []struct{ query, target string }{
		{"ACGT", "ACCT"},
		{"ACG", "ACCG"},
		{"AAAA", ""},
		{"", "CCCC"},
		{"ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT", "ACGTTCGTACGTACCTACGTACGAACGTACGTACGCACGT"},
	}
	for _, c := range cases {
		hist, err := kernel.Compute([]byte(c.query), []byte(c.target), config.DefaultKernel())
		require.NoError(t, err)
		path, err := Decode(hist, 256)
		require.NoError(t, err)

		queryConsumed, targetConsumed := 0, 0
		for _, op := range path {
			switch op {
			case OpMatch:
				queryConsumed++
				targetConsumed++
			case OpMismatch:
				queryConsumed++
				if targetConsumed < len(c.target) {
					targetConsumed++ // main-loop mismatch; otherwise tail-fill
				}
			case OpInsertInQuery:
				targetConsumed++
			case OpInsertInTarget:
				queryConsumed++
			}
		}
		assert.Equal(t, len(c.query), queryConsumed, "query=%q target=%q", c.query, c.target)
		assert.Equal(t, len(c.target), targetConsumed, "query=%q target=%q", c.query, c.target)
	}
}

func TestMatchOpsAlignEqualCharacters(t *testing.T) {
	// Replaying the path forward, every OpMatch step must land on equal
	// query/target characters and every OpMismatch step (main-loop code 1,
	// not the tail-fill reuse) on unequal ones.
	query, target := "ACGTACGT", "ACCTAGGT"
	hist, err := kernel.Compute([]byte(query), []byte(target), config.DefaultKernel())
	require.NoError(t, err)
	path, err := Decode(hist, 64)
	require.NoError(t, err)

	forward := make([]Op, len(path))
	for i, op := range path {
		forward[len(path)-1-i] = op
	}

	qi, ti := 0, 0
	for _, op := range forward {
		switch op {
		case OpMatch:
			require.Equal(t, query[qi], target[ti])
			qi++
			ti++
		case OpMismatch:
			require.NotEqual(t, query[qi], target[ti])
			qi++
			ti++
		case OpInsertInQuery:
			ti++
		case OpInsertInTarget:
			qi++
		}
	}
	assert.Equal(t, len(query), qi)
	assert.Equal(t, len(target), ti)
}
