package search

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykhdr/crack-fnv/pkg/charset"
	"github.com/ykhdr/crack-fnv/pkg/fnv"
)

func TestMitmValidation(t *testing.T) {
	ctx := context.Background()
	idx := indexOf(t, "play")

	_, err := Mitm(ctx, MitmOptions{PrefixLength: 2, SuffixLength: 2, Capacity: 1})
	assert.ErrorIs(t, err, ErrNoTargets)

	_, err = Mitm(ctx, MitmOptions{PrefixLength: 2, SuffixLength: 2, Targets: idx})
	assert.ErrorIs(t, err, ErrCapacity)

	_, err = Mitm(ctx, MitmOptions{PrefixLength: 0, SuffixLength: 2, Targets: idx, Capacity: 1})
	assert.ErrorIs(t, err, ErrSplit)
}

func TestMitmSplitMustReachMaxLength(t *testing.T) {
	// A 2+2 split covers lengths up to 4; asking for max length 5 would
	// silently miss longer preimages, so it is an invalid-input error.
	_, err := Mitm(context.Background(), MitmOptions{
		Rules:        charset.FirstLetter,
		PrefixLength: 2,
		SuffixLength: 2,
		MaxLength:    5,
		Capacity:     10,
		Targets:      indexOf(t, "tests"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSplit)
}

func TestMitmHonorsLengthBounds(t *testing.T) {
	idx := indexOf(t, "ab", "play")
	out, err := Mitm(context.Background(), MitmOptions{
		Rules:        charset.FirstLetter,
		PrefixLength: 2,
		SuffixLength: 2,
		MinLength:    3,
		MaxLength:    4,
		Capacity:     10,
		Targets:      idx,
	})
	require.NoError(t, err)
	got := names(out.Found)
	assert.Contains(t, got, "play")
	assert.NotContains(t, got, "ab", "below the requested minimum length")

	// A wider split may form candidates beyond the requested maximum;
	// those are filtered, not reported.
	idx = indexOf(t, "play", "tests")
	out, err = Mitm(context.Background(), MitmOptions{
		Rules:        charset.FirstLetter,
		PrefixLength: 3,
		SuffixLength: 3,
		MaxLength:    4,
		Capacity:     10,
		Targets:      idx,
	})
	require.NoError(t, err)
	got = names(out.Found)
	assert.Contains(t, got, "play")
	assert.NotContains(t, got, "tests", "above the requested maximum length")
}

func TestForwardTableSorted(t *testing.T) {
	entries, err := BuildForwardTable(context.Background(), charset.FirstLetter, 2)
	require.NoError(t, err)
	require.Len(t, entries, 26+26*37)
	assert.True(t, sort.SliceIsSorted(entries, func(i, j int) bool {
		return entries[i].Hash < entries[j].Hash
	}))
	for _, e := range entries {
		assert.Equal(t, fnv.Hash(e.Str), e.Hash)
	}
}

func TestInverseTableCertifiesPrefixHash(t *testing.T) {
	idx := indexOf(t, "play")
	entries, err := BuildInverseTable(context.Background(), 2, idx)
	require.NoError(t, err)
	require.Len(t, entries, 37+37*37)

	// The entry for suffix "ay" must carry exactly the hash of "pl".
	want := fnv.Hash("pl")
	found := false
	for _, e := range entries {
		if e.Str == "ay" && e.Hash == want {
			found = true
			break
		}
	}
	assert.True(t, found)
}

func TestMitmSoundness(t *testing.T) {
	idx := indexOf(t, "play", "test", "ab")
	out, err := Mitm(context.Background(), MitmOptions{
		Rules:        charset.FirstLetter,
		PrefixLength: 2,
		SuffixLength: 2,
		Capacity:     100,
		Targets:      idx,
	})
	require.NoError(t, err)

	for _, m := range out.Found {
		assert.Equal(t, fnv.Hash(m.Name), m.Hash, "join result %q rehashes exactly", m.Name)
		assert.True(t, idx.Contains(m.Hash))
	}
	got := names(out.Found)
	assert.Contains(t, got, "play")
	assert.Contains(t, got, "test")
	assert.Contains(t, got, "ab")

	seen := make(map[string]struct{})
	for _, n := range got {
		_, dup := seen[n]
		assert.False(t, dup, "duplicate result %q", n)
		seen[n] = struct{}{}
	}
}

func TestMitmTruncation(t *testing.T) {
	idx := indexOf(t, "aa", "ab", "ac", "ad")
	out, err := Mitm(context.Background(), MitmOptions{
		Rules:        charset.FirstLetter,
		PrefixLength: 1,
		SuffixLength: 1,
		Capacity:     2,
		Targets:      idx,
	})
	require.NoError(t, err)
	assert.Len(t, out.Found, 2)
	assert.True(t, out.Truncated)
}

func TestMitmCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Mitm(ctx, MitmOptions{
		Rules:        charset.FirstLetter,
		PrefixLength: 2,
		SuffixLength: 2,
		Capacity:     10,
		Targets:      indexOf(t, "play"),
	})
	assert.ErrorIs(t, err, context.Canceled)
}
