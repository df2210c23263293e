// Package search recovers preimages of 32-bit FNV-1 hashes by exhaustive
// enumeration or by a meet-in-the-middle split. All inputs are read-only
// once a search starts, so independent prefix shards can run in parallel
// without coordination.
package search

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ykhdr/crack-fnv/pkg/charset"
	"github.com/ykhdr/crack-fnv/pkg/fnv"
	"github.com/ykhdr/crack-fnv/pkg/ngram"
	"github.com/ykhdr/crack-fnv/pkg/target"
)

var (
	ErrNoTargets = errors.New("no target index")
	ErrCapacity  = errors.New("capacity must be positive")
)

// Match pairs a recovered string with its hash. Distinct strings mapping to
// the same target are all reported; disambiguation is the caller's concern.
type Match struct {
	Hash uint32
	Name string
}

// Options parameterizes a brute-force search.
type Options struct {
	Rules charset.Rules
	// Prefix fixes the first characters of every candidate. Its hash is
	// computed once and every candidate continues from that seed, which is
	// also how a large search is sharded across workers.
	Prefix               string
	MinLength, MaxLength int
	// Capacity bounds the result list. Reaching it stops the search and is
	// reported as truncation, not as an error.
	Capacity int
	Targets  *target.Index
	// Filter, when non-nil, prunes candidates whose trailing trigram it
	// marks implausible, skipping the hash and membership test. Lossy.
	// Only the trailing window is consulted: an implausible interior
	// trigram does not prune, so the filter rejects strictly fewer
	// candidates than a full-window scan would and never loses a match
	// the unfiltered search would keep.
	Filter *ngram.Filter
	// Resume continues from a checkpoint returned by a cancelled search
	// instead of the start of the range.
	Resume *Cursor
}

// Outcome carries the results of one search shard.
type Outcome struct {
	Found     []Match
	Truncated bool
	// Checkpoint is set when the context was cancelled mid-shard; resuming
	// from it revisits no candidate and skips none.
	Checkpoint *Cursor
}

// Run enumerates every candidate in the configured range in lexicographic
// order, testing each against the target index. Cancellation is cooperative
// and checked between odometer advances.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	if opts.Targets == nil {
		return nil, ErrNoTargets
	}
	if opts.Capacity <= 0 {
		return nil, ErrCapacity
	}
	cur := opts.Resume
	if cur == nil {
		var err error
		cur, err = NewCursor(opts.Rules, opts.Prefix, opts.MinLength, opts.MaxLength)
		if err != nil {
			return nil, err
		}
	} else {
		cur = cur.Clone()
	}

	seed := fnv.Hash(cur.Prefix)
	out := &Outcome{}
	buf := make([]byte, 0, cur.MaxLength)
	for !cur.Exhausted() {
		select {
		case <-ctx.Done():
			out.Checkpoint = cur
			return out, nil
		default:
		}
		buf = cur.Candidate(buf[:0])
		if allowTail(opts.Filter, buf) {
			h := fnv.HashContinue(seed, string(buf[len(cur.Prefix):]))
			if opts.Targets.Contains(h) {
				out.Found = append(out.Found, Match{Hash: h, Name: string(buf)})
				if len(out.Found) == opts.Capacity {
					out.Truncated = true
					return out, nil
				}
			}
		}
		cur.Advance()
	}
	return out, nil
}

// allowTail tests the window formed by the last three characters, the only
// one the previous odometer step can have changed. Interior windows go
// unchecked, so a candidate whose implausible trigram never surfaced as a
// tail at a shorter length is still hashed.
func allowTail(f *ngram.Filter, buf []byte) bool {
	if f == nil || len(buf) < 3 {
		return true
	}
	n := len(buf)
	return f.Allow(buf[n-3], buf[n-2], buf[n-1])
}

// BruteForce enumerates the whole length range under the given charset
// rules.
func BruteForce(ctx context.Context, rules charset.Rules, minLen, maxLen int, targets *target.Index, capacity int) (*Outcome, error) {
	return Run(ctx, Options{
		Rules:     rules,
		MinLength: minLen,
		MaxLength: maxLen,
		Capacity:  capacity,
		Targets:   targets,
	})
}

// BruteForceFromPrefix is the shard entry point: it enumerates only the
// candidates beginning with prefix.
func BruteForceFromPrefix(ctx context.Context, prefix string, minLen, maxLen int, targets *target.Index, capacity int) (*Outcome, error) {
	return Run(ctx, Options{
		Rules:     charset.FirstLetter,
		Prefix:    prefix,
		MinLength: minLen,
		MaxLength: maxLen,
		Capacity:  capacity,
		Targets:   targets,
	})
}
