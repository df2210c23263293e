package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ykhdr/crack-fnv/config"
	"github.com/ykhdr/crack-fnv/internal/hashcrack"
	"github.com/ykhdr/crack-fnv/internal/server"
)

func main() {
	cfg, err := config.InitializeConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msgf("Failed to initialize config")
	}
	service, err := hashcrack.NewService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msgf("Failed to initialize hashcrack service")
	}
	srv := server.NewServer(cfg, service)
	if err = srv.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msgf("Server failed")
	}
}
