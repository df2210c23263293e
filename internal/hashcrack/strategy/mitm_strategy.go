package strategy

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ykhdr/crack-fnv/pkg/search"
)

type mitmStrategy struct {
	l zerolog.Logger
}

func newMitmStrategy(logger zerolog.Logger) *mitmStrategy {
	return &mitmStrategy{
		l: logger.
			With().
			Str("domain", "hashcrack").
			Str("type", "strategy").
			Str("strategy", "mitm").
			Logger(),
	}
}

func (s *mitmStrategy) Crack(ctx context.Context, task *Task) (CrackResult, error) {
	s.l.Debug().
		Str("req-id", task.RequestId).
		Int("prefix-length", task.MitmPrefixLength).
		Int("suffix-length", task.MitmSuffixLength).
		Int("targets", task.Targets.Len()).
		Msg("cracking task")

	out, err := search.Mitm(ctx, search.MitmOptions{
		Rules:        task.Rules,
		PrefixLength: task.MitmPrefixLength,
		SuffixLength: task.MitmSuffixLength,
		MinLength:    task.MinLength,
		MaxLength:    task.MaxLength,
		Capacity:     task.Capacity,
		Targets:      task.Targets,
	})
	if err != nil {
		return nil, err
	}
	return &crackResult{found: out.Found, truncated: out.Truncated}, nil
}
