package strategy

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykhdr/crack-fnv/pkg/charset"
	"github.com/ykhdr/crack-fnv/pkg/fnv"
	"github.com/ykhdr/crack-fnv/pkg/search"
	"github.com/ykhdr/crack-fnv/pkg/target"
)

func TestParseStrategyName(t *testing.T) {
	assert.Equal(t, BruteForceStrategyType, ParseStrategyName("brute-force"))
	assert.Equal(t, MitmStrategyType, ParseStrategyName("mitm"))
	assert.Equal(t, EmptyStrategyType, ParseStrategyName("something-else"))
	assert.Equal(t, "brute-force", DefaultStrategyStr())
}

func taskFor(names []string, minLen, maxLen int) *Task {
	hashes := make([]uint32, 0, len(names))
	for _, n := range names {
		hashes = append(hashes, fnv.Hash(n))
	}
	return &Task{
		RequestId: "test",
		Rules:     charset.FirstLetter,
		Targets:   target.FromUnsorted(hashes),
		MinLength: minLen,
		MaxLength: maxLen,
		Capacity:  100,
		Workers:   4,
	}
}

func sortedNames(found []search.Match) []string {
	out := make([]string, 0, len(found))
	for _, m := range found {
		out = append(out, m.Name)
	}
	sort.Strings(out)
	return out
}

func TestBruteForceStrategyShardsMatchSinglePass(t *testing.T) {
	task := taskFor([]string{"a", "q", "ab", "m_", "z9"}, 1, 2)

	s := NewStrategy(BruteForceStrategyType)
	res, err := s.Crack(context.Background(), task)
	require.NoError(t, err)

	whole, err := search.BruteForce(context.Background(), charset.FirstLetter, 1, 2, task.Targets, 100)
	require.NoError(t, err)

	assert.Equal(t, sortedNames(whole.Found), sortedNames(res.Found()))
	assert.False(t, res.Truncated())
	assert.Empty(t, res.Checkpoints())
}

func TestBruteForceStrategyDeterministicMergeOrder(t *testing.T) {
	task := taskFor([]string{"ab", "ba", "zz"}, 2, 2)
	s := NewStrategy(BruteForceStrategyType)

	res, err := s.Crack(context.Background(), task)
	require.NoError(t, err)
	// Shard order, not completion order.
	names := make([]string, 0, 3)
	for _, m := range res.Found() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"ab", "ba", "zz"}, names)
}

func TestBruteForceStrategyPrefixShard(t *testing.T) {
	task := taskFor([]string{"play"}, 1, 4)
	task.Prefix = "pl"

	s := NewStrategy(BruteForceStrategyType)
	res, err := s.Crack(context.Background(), task)
	require.NoError(t, err)
	require.Len(t, res.Found(), 1)
	assert.Equal(t, "play", res.Found()[0].Name)
}

func TestBruteForceStrategyCapacityClamp(t *testing.T) {
	names := make([]string, 0, 26)
	for c := byte('a'); c <= 'z'; c++ {
		names = append(names, string(c))
	}
	task := taskFor(names, 1, 1)
	task.Capacity = 10

	s := NewStrategy(BruteForceStrategyType)
	res, err := s.Crack(context.Background(), task)
	require.NoError(t, err)
	assert.Len(t, res.Found(), 10)
	assert.True(t, res.Truncated())
}

func TestBruteForceStrategyCancelledCollectsCheckpoints(t *testing.T) {
	task := taskFor([]string{"ab"}, 1, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewStrategy(BruteForceStrategyType)
	res, err := s.Crack(ctx, task)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Checkpoints())
}

func TestMitmStrategy(t *testing.T) {
	task := taskFor([]string{"play", "test"}, 1, 4)
	task.MitmPrefixLength = 2
	task.MitmSuffixLength = 2

	s := NewStrategy(MitmStrategyType)
	res, err := s.Crack(context.Background(), task)
	require.NoError(t, err)
	got := sortedNames(res.Found())
	assert.Contains(t, got, "play")
	assert.Contains(t, got, "test")
	for _, m := range res.Found() {
		assert.Equal(t, fnv.Hash(m.Name), m.Hash)
	}
}

func TestMitmStrategyRejectsUnreachableMaxLength(t *testing.T) {
	task := taskFor([]string{"tests"}, 1, 5)
	task.MitmPrefixLength = 2
	task.MitmSuffixLength = 2

	s := NewStrategy(MitmStrategyType)
	_, err := s.Crack(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrSplit)
}

func TestMitmStrategyFiltersBelowMinLength(t *testing.T) {
	task := taskFor([]string{"ab", "play"}, 3, 4)
	task.MitmPrefixLength = 2
	task.MitmSuffixLength = 2

	s := NewStrategy(MitmStrategyType)
	res, err := s.Crack(context.Background(), task)
	require.NoError(t, err)
	got := sortedNames(res.Found())
	assert.Contains(t, got, "play")
	assert.NotContains(t, got, "ab")
}

func TestEmptyStrategy(t *testing.T) {
	task := taskFor([]string{"ab"}, 1, 2)
	s := NewStrategy(EmptyStrategyType)
	res, err := s.Crack(context.Background(), task)
	require.NoError(t, err)
	assert.Empty(t, res.Found())
	assert.False(t, res.Truncated())
}
