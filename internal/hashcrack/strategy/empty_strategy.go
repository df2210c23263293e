package strategy

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type emptyStrategy struct {
	l zerolog.Logger
}

var once sync.Once
var emptyStrategyInstance *emptyStrategy

func newEmptyStrategy(l zerolog.Logger) *emptyStrategy {
	once.Do(func() {
		emptyStrategyInstance = &emptyStrategy{
			l: l.With().
				Str("domain", "hashcrack").
				Str("type", "strategy").
				Str("strategy", "empty").
				Logger(),
		}
	})
	return emptyStrategyInstance
}

func (s *emptyStrategy) Crack(_ context.Context, task *Task) (CrackResult, error) {
	s.l.Debug().
		Str("req-id", task.RequestId).
		Int("min-length", task.MinLength).
		Int("max-length", task.MaxLength).
		Msg("cracking task")

	return &crackResult{}, nil
}
