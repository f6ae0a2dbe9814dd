package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"balance/config"
	"balance/engine"
	"balance/experiments"
	"balance/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	experiment := flag.String("experiment", "findrange", "Experiment to run: findrange or rollout")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := engine.NewRemote(cfg.Address,
		engine.WithPlayerID(meta.PLAYER_ID),
		engine.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)

	switch *experiment {
	case "findrange":
		_, err = experiments.RunFindRange(ctx, cfg, e)
	case "rollout":
		_, err = experiments.RunRollout(ctx, cfg, e)
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", *experiment)
	}
}
