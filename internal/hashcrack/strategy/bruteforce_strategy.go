package strategy

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ykhdr/crack-fnv/pkg/charset"
	"github.com/ykhdr/crack-fnv/pkg/search"
)

type bruteForceStrategy struct {
	l zerolog.Logger
}

func newBruteForceStrategy(logger zerolog.Logger) *bruteForceStrategy {
	return &bruteForceStrategy{
		l: logger.
			With().
			Str("domain", "hashcrack").
			Str("type", "strategy").
			Str("strategy", "brute-force").
			Logger(),
	}
}

func (s *bruteForceStrategy) Crack(ctx context.Context, task *Task) (CrackResult, error) {
	s.l.Debug().
		Str("req-id", task.RequestId).
		Str("prefix", task.Prefix).
		Int("min-length", task.MinLength).
		Int("max-length", task.MaxLength).
		Int("targets", task.Targets.Len()).
		Msg("cracking task")

	if task.Prefix != "" {
		// Already a single shard.
		out, err := search.Run(ctx, s.options(task, task.Prefix))
		if err != nil {
			return nil, err
		}
		return resultFromOutcomes([]*search.Outcome{out}, task.Capacity), nil
	}

	// Shard by first character: workers share only the immutable target
	// index and filter, and never communicate until the merge.
	shards := charset.Alphabet(task.Rules, 0)
	outcomes := make([]*search.Outcome, len(shards))

	workers := task.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < len(shards); i++ {
		i := i
		g.Go(func() error {
			out, err := search.Run(gctx, s.options(task, string(shards[i])))
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := resultFromOutcomes(outcomes, task.Capacity)
	s.l.Debug().
		Str("req-id", task.RequestId).
		Int("found", len(res.found)).
		Bool("truncated", res.truncated).
		Msg("task cracked")
	return res, nil
}

func (s *bruteForceStrategy) options(task *Task, prefix string) search.Options {
	return search.Options{
		Rules:     task.Rules,
		Prefix:    prefix,
		MinLength: task.MinLength,
		MaxLength: task.MaxLength,
		Capacity:  task.Capacity,
		Targets:   task.Targets,
		Filter:    task.Filter,
	}
}

// resultFromOutcomes merges shard outcomes in shard order so the combined
// result is deterministic regardless of worker scheduling.
func resultFromOutcomes(outcomes []*search.Outcome, capacity int) *crackResult {
	res := &crackResult{}
	for _, out := range outcomes {
		if out == nil {
			continue
		}
		if out.Truncated {
			res.truncated = true
		}
		if out.Checkpoint != nil {
			res.checkpoints = append(res.checkpoints, out.Checkpoint)
		}
		for _, m := range out.Found {
			if len(res.found) == capacity {
				res.truncated = true
				return res
			}
			res.found = append(res.found, m)
		}
	}
	return res
}
