package main

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/ykhdr/crack-fnv/internal/hashcrack/strategy"
	"github.com/ykhdr/crack-fnv/internal/logging"
	"github.com/ykhdr/crack-fnv/pkg/charset"
	"github.com/ykhdr/crack-fnv/pkg/ngram"
	"github.com/ykhdr/crack-fnv/pkg/target"
)

func main() {
	var (
		targetsFile   = pflag.String("targets", "", "path to the target hash list (required)")
		minLen        = pflag.Int("min", 1, "minimum candidate length")
		maxLen        = pflag.Int("max", 8, "maximum candidate length")
		prefix        = pflag.String("prefix", "", "fixed candidate prefix (shard seed)")
		strategyName  = pflag.String("strategy", strategy.DefaultStrategyStr(), "brute-force, mitm or empty")
		capacity      = pflag.Int("capacity", 256, "maximum number of results to collect")
		workers       = pflag.Int("workers", runtime.NumCPU(), "parallel shard workers")
		ngramFile     = pflag.String("ngram", "", "optional trigram bitmap; prunes rare trigrams and can miss preimages")
		mitmPrefixLen = pflag.Int("mitm-prefix-len", 4, "meet-in-the-middle prefix table length")
		mitmSuffixLen = pflag.Int("mitm-suffix-len", 4, "meet-in-the-middle suffix table length")
		legacy        = pflag.Bool("legacy", false, "allow the full 37-symbol alphabet at every position")
		logLevel      = pflag.String("log-level", "info", "zerolog level")
	)
	pflag.Parse()
	logging.Setup(logging.ParseLevel(*logLevel))

	if *targetsFile == "" {
		pflag.Usage()
		os.Exit(2)
	}
	targets, err := target.Load(*targetsFile)
	if err != nil {
		log.Fatal().Err(err).Msgf("Failed to load targets")
	}
	log.Info().Int("targets", targets.Len()).Msg("target index built")

	var filter *ngram.Filter
	if *ngramFile != "" {
		filter, err = ngram.Load(*ngramFile)
		if err != nil {
			log.Fatal().Err(err).Msgf("Failed to load ngram filter")
		}
		log.Warn().Msg("ngram pruning enabled; preimages with rare trigrams may be missed")
	}

	rules := charset.FirstLetter
	if *legacy {
		rules = charset.Legacy
	}
	task := &strategy.Task{
		RequestId:        "cli",
		Rules:            rules,
		Targets:          targets,
		MinLength:        *minLen,
		MaxLength:        *maxLen,
		Prefix:           *prefix,
		Capacity:         *capacity,
		Workers:          *workers,
		Filter:           filter,
		MitmPrefixLength: *mitmPrefixLen,
		MitmSuffixLength: *mitmSuffixLen,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	crackStrategy := strategy.NewStrategy(strategy.ParseStrategyName(*strategyName))
	result, err := crackStrategy.Crack(ctx, task)
	if err != nil {
		log.Fatal().Err(err).Msgf("Search failed")
	}

	for _, m := range result.Found() {
		fmt.Printf("0x%08X  %s\n", m.Hash, m.Name)
	}
	if result.Truncated() {
		log.Warn().Int("capacity", *capacity).Msg("result list truncated; the search is not exhaustive")
	}
	for _, cp := range result.Checkpoints() {
		data, err := xml.Marshal(cp)
		if err != nil {
			continue
		}
		log.Warn().Str("checkpoint", string(data)).Msg("shard interrupted; resume from checkpoint")
	}
}
