package hashcrack

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ykhdr/crack-fnv/config"
	"github.com/ykhdr/crack-fnv/internal/hashcrack/strategy"
	"github.com/ykhdr/crack-fnv/pkg/charset"
	"github.com/ykhdr/crack-fnv/pkg/messages"
	"github.com/ykhdr/crack-fnv/pkg/ngram"
	"github.com/ykhdr/crack-fnv/pkg/target"
)

var ErrNoTargets = errors.New("request carries no targets")

// knownCorpus are identifiers recovered and verified against the reference
// hash definition. Any trigram bitmap that would prune one of them is
// rejected at load time.
var knownCorpus = []string{"test", "play_music", "explosion_large"}

// Service turns wire-level crack requests into strategy runs.
type Service struct {
	l      zerolog.Logger
	cfg    *config.CrackdConfig
	filter *ngram.Filter
}

func NewService(cfg *config.CrackdConfig) (*Service, error) {
	s := &Service{
		cfg: cfg,
		l: log.With().
			Str("domain", "hashcrack").
			Logger(),
	}
	if cfg.NgramFile != "" {
		filter, err := ngram.Load(cfg.NgramFile)
		if err != nil {
			return nil, errors.Wrap(err, "load ngram filter")
		}
		if err := filter.Validate(knownCorpus); err != nil {
			return nil, errors.Wrap(err, "ngram filter rejected")
		}
		s.filter = filter
		s.l.Info().Str("file", cfg.NgramFile).Msg("ngram filter enabled")
	}
	return s, nil
}

// CrackTask runs one request to completion and reports every recovered
// (hash, name) pair. Distinct names colliding on one target are all kept.
func (s *Service) CrackTask(ctx context.Context, req *messages.CrackTaskRequest) (*messages.CrackTaskResponse, error) {
	requestId := req.RequestId
	if requestId == "" {
		requestId = uuid.NewString()
	}
	task, err := s.buildTask(requestId, req)
	if err != nil {
		return nil, err
	}

	strategyName := req.Strategy
	if strategyName == "" {
		strategyName = s.cfg.Strategy
	}
	s.l.Debug().
		Str("req-id", requestId).
		Str("strategy", strategyName).
		Int("targets", task.Targets.Len()).
		Msg("cracking task")

	crackStrategy := strategy.NewStrategy(strategy.ParseStrategyName(strategyName))
	result, err := crackStrategy.Crack(ctx, task)
	if err != nil {
		return nil, errors.Wrap(err, "crack task")
	}

	resp := &messages.CrackTaskResponse{
		RequestId: requestId,
		Truncated: result.Truncated(),
		Found:     make([]messages.FoundMatch, 0, len(result.Found())),
	}
	for _, m := range result.Found() {
		resp.Found = append(resp.Found, messages.FoundMatch{
			Hash: fmt.Sprintf("0x%08X", m.Hash),
			Name: m.Name,
		})
	}
	return resp, nil
}

func (s *Service) buildTask(requestId string, req *messages.CrackTaskRequest) (*strategy.Task, error) {
	if len(req.Targets) == 0 {
		return nil, ErrNoTargets
	}
	hashes := make([]uint32, 0, len(req.Targets))
	for _, raw := range req.Targets {
		h, err := target.ParseHash(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "target %q", raw)
		}
		hashes = append(hashes, h)
	}

	rules := charset.FirstLetter
	if req.LegacyCharset {
		rules = charset.Legacy
	}
	capacity := req.Capacity
	if capacity <= 0 {
		capacity = s.cfg.Capacity
	}
	mitm := s.cfg.Mitm
	if mitm == nil {
		mitm = config.DefaultConfig().Mitm
	}
	return &strategy.Task{
		RequestId:        requestId,
		Rules:            rules,
		Targets:          target.FromUnsorted(hashes),
		MinLength:        req.MinLength,
		MaxLength:        req.MaxLength,
		Prefix:           req.Prefix,
		Capacity:         capacity,
		Workers:          s.cfg.Workers,
		Filter:           s.filter,
		MitmPrefixLength: mitm.PrefixLength,
		MitmSuffixLength: mitm.SuffixLength,
	}, nil
}
