package strategy

import (
	"context"

	"github.com/ykhdr/crack-fnv/pkg/charset"
	"github.com/ykhdr/crack-fnv/pkg/ngram"
	"github.com/ykhdr/crack-fnv/pkg/search"
	"github.com/ykhdr/crack-fnv/pkg/target"
)

// Task is a validated preimage-recovery request. Targets and Filter are
// read-only and shared by every shard the strategy spawns.
type Task struct {
	RequestId string
	Rules     charset.Rules
	Targets   *target.Index
	MinLength int
	MaxLength int
	Prefix    string
	Capacity  int
	Workers   int
	Filter    *ngram.Filter

	MitmPrefixLength int
	MitmSuffixLength int
}

type CrackResult interface {
	Found() []search.Match
	Truncated() bool
	// Checkpoints of shards interrupted by cancellation, in shard order.
	Checkpoints() []*search.Cursor
}

type crackResult struct {
	found       []search.Match
	truncated   bool
	checkpoints []*search.Cursor
}

func (r *crackResult) Found() []search.Match {
	return r.found
}

func (r *crackResult) Truncated() bool {
	return r.truncated
}

func (r *crackResult) Checkpoints() []*search.Cursor {
	return r.checkpoints
}

type Strategy interface {
	Crack(ctx context.Context, task *Task) (CrackResult, error)
}
