package config

import (
	"runtime"

	"github.com/pkg/errors"

	"github.com/ykhdr/crack-fnv/internal/kdl"
	"github.com/ykhdr/crack-fnv/internal/logging"
)

const defaultConfigPath = "./config/config.kdl"

type LogConfig struct {
	LogLevel string `kdl:"log-level"`
}

func (c *LogConfig) GetLogLevel() string {
	return c.LogLevel
}

type MitmConfig struct {
	PrefixLength int `kdl:"prefix-length"`
	SuffixLength int `kdl:"suffix-length"`
}

type CrackdConfig struct {
	LogConfig
	ServerAddr string      `kdl:"server-addr"`
	Strategy   string      `kdl:"strategy"`
	Workers    int         `kdl:"workers"`
	Capacity   int         `kdl:"capacity"`
	NgramFile  string      `kdl:"ngram-file"`
	Mitm       *MitmConfig `kdl:"mitm"`
}

func DefaultConfig() *CrackdConfig {
	return &CrackdConfig{
		ServerAddr: "127.0.0.1:8080",
		Strategy:   "brute-force",
		Workers:    runtime.NumCPU(),
		Capacity:   256,
		Mitm: &MitmConfig{
			PrefixLength: 4,
			SuffixLength: 4,
		},
	}
}

func InitializeConfig(args []string) (*CrackdConfig, error) {
	var configPath string
	if len(args) == 0 {
		configPath = defaultConfigPath
	} else {
		configPath = args[0]
	}
	cfg, err := kdl.Unmarshal[CrackdConfig](configPath, *DefaultConfig())
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal kdl")
	}
	setupLogger(&cfg)
	return &cfg, nil
}

type hasLogLevel interface {
	GetLogLevel() string
}

func setupLogger(cfg any) {
	var logLevel logging.Level
	logCfg, ok := cfg.(hasLogLevel)
	if !ok {
		logLevel = logging.InfoLevel
	} else {
		logLevel = logging.ParseLevel(logCfg.GetLogLevel())
	}
	logging.Setup(logLevel)
}
