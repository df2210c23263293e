package strategy

import log "github.com/rs/zerolog/log"

type Type int

const (
	EmptyStrategyType Type = iota
	BruteForceStrategyType
	MitmStrategyType
)

const (
	bruteForceStrategyName = "brute-force"
	mitmStrategyName       = "mitm"
)

func NewStrategy(strategyType Type) Strategy {
	switch strategyType {
	case BruteForceStrategyType:
		return newBruteForceStrategy(log.Logger)
	case MitmStrategyType:
		return newMitmStrategy(log.Logger)
	default:
		return newEmptyStrategy(log.Logger)
	}
}

func ParseStrategyName(name string) Type {
	switch name {
	case bruteForceStrategyName:
		return BruteForceStrategyType
	case mitmStrategyName:
		return MitmStrategyType
	default:
		return EmptyStrategyType
	}
}

func DefaultStrategyStr() string {
	return bruteForceStrategyName
}
