package search

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/ykhdr/crack-fnv/pkg/charset"
	"github.com/ykhdr/crack-fnv/pkg/fnv"
	"github.com/ykhdr/crack-fnv/pkg/target"
)

var ErrSplit = errors.New("invalid meet-in-the-middle split")

// Entry pairs a table key with the string that produced it. In the forward
// table the key is the prefix's hash; in the inverse table it is the prefix
// hash a target would require given the suffix.
type Entry struct {
	Hash uint32
	Str  string
}

// MitmOptions parameterizes a meet-in-the-middle search. PrefixLength plus
// SuffixLength bounds the recoverable candidate length; both tables are held
// in memory simultaneously, so the split trades a bounded memory footprint
// for an exponential runtime reduction.
type MitmOptions struct {
	Rules        charset.Rules
	PrefixLength int
	SuffixLength int
	// MinLength and MaxLength bound the lengths of reported preimages.
	// A split that cannot reach MaxLength is rejected up front rather than
	// silently searching a smaller space. Zero values leave the bound open.
	MinLength int
	MaxLength int
	Capacity  int
	Targets   *target.Index
}

// checkCancel polls ctx between generation steps so table builds over large
// splits stay interruptible.
func checkCancel(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// BuildForwardTable enumerates every prefix of length 1..maxLen under the
// charset rules and returns their forward hashes, sorted by hash.
func BuildForwardTable(ctx context.Context, rules charset.Rules, maxLen int) ([]Entry, error) {
	cur, err := NewCursor(rules, "", 1, maxLen)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	buf := make([]byte, 0, maxLen)
	for !cur.Exhausted() {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		buf = cur.Candidate(buf[:0])
		entries = append(entries, Entry{Hash: fnv.Hash(string(buf)), Str: string(buf)})
		cur.Advance()
	}
	sortEntries(entries)
	return entries, nil
}

// BuildInverseTable enumerates every suffix of length 1..maxLen over the
// unconstrained rest-alphabet and, for each target, records the prefix hash
// that would certify prefix+suffix as a preimage of that target. Sorted by
// hash.
func BuildInverseTable(ctx context.Context, maxLen int, targets *target.Index) ([]Entry, error) {
	cur, err := NewCursor(charset.Legacy, "", 1, maxLen)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	buf := make([]byte, 0, maxLen)
	for !cur.Exhausted() {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		buf = cur.Candidate(buf[:0])
		suffix := string(buf)
		for _, t := range targets.Hashes() {
			entries = append(entries, Entry{Hash: fnv.HashInverse(t, suffix), Str: suffix})
		}
		cur.Advance()
	}
	sortEntries(entries)
	return entries, nil
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Hash < entries[j].Hash })
}

// Join matches forward entries against inverse entries by hash, keeping
// only concatenations within [minLen, maxLen] (zero bounds are open). The
// continuation law guarantees any join hit is an exact preimage, but every
// concatenation is rehashed against the target index anyway before being
// reported. The same preimage can be reachable through several splits, so
// duplicates are folded.
func Join(forward, inverse []Entry, targets *target.Index, minLen, maxLen, capacity int) (*Outcome, error) {
	if targets == nil {
		return nil, ErrNoTargets
	}
	if capacity <= 0 {
		return nil, ErrCapacity
	}
	out := &Outcome{}
	seen := make(map[string]struct{})
	for _, fe := range forward {
		i := sort.Search(len(inverse), func(i int) bool { return inverse[i].Hash >= fe.Hash })
		for ; i < len(inverse) && inverse[i].Hash == fe.Hash; i++ {
			name := fe.Str + inverse[i].Str
			if len(name) < minLen || (maxLen > 0 && len(name) > maxLen) {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			h := fnv.Hash(name)
			if !targets.Contains(h) {
				continue
			}
			out.Found = append(out.Found, Match{Hash: h, Name: name})
			if len(out.Found) == capacity {
				out.Truncated = true
				return out, nil
			}
		}
	}
	return out, nil
}

// Mitm builds both tables and joins them, recovering every preimage of
// length 2..PrefixLength+SuffixLength expressible under the split and
// within the requested length bounds.
func Mitm(ctx context.Context, opts MitmOptions) (*Outcome, error) {
	if opts.Targets == nil {
		return nil, ErrNoTargets
	}
	if opts.Capacity <= 0 {
		return nil, ErrCapacity
	}
	if opts.PrefixLength < 1 || opts.SuffixLength < 1 {
		return nil, errors.Wrapf(ErrSplit, "prefix %d suffix %d", opts.PrefixLength, opts.SuffixLength)
	}
	if opts.MaxLength > 0 && opts.PrefixLength+opts.SuffixLength < opts.MaxLength {
		return nil, errors.Wrapf(ErrSplit, "split %d+%d cannot reach max length %d",
			opts.PrefixLength, opts.SuffixLength, opts.MaxLength)
	}
	forward, err := BuildForwardTable(ctx, opts.Rules, opts.PrefixLength)
	if err != nil {
		return nil, err
	}
	inverse, err := BuildInverseTable(ctx, opts.SuffixLength, opts.Targets)
	if err != nil {
		return nil, err
	}
	return Join(forward, inverse, opts.Targets, opts.MinLength, opts.MaxLength, opts.Capacity)
}
