package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"liarspoker/baseline"
	"liarspoker/config"
	"liarspoker/experiments"
	"liarspoker/experiments/metrics"
	"liarspoker/game"
	"liarspoker/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	configPath := flag.String("config", "", "Path to a YAML experiment config (defaults apply when empty)")
	demo := flag.Bool("demo", false, "Print the baseline's choices for a few sample hands and exit")
	flag.Parse()

	if *demo {
		if err := runDemo(); err != nil {
			log.Fatal().Err(err).Msg("demo failed")
		}
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runExperiment(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}

func runExperiment(ctx context.Context, cfg *config.Config) error {
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	players := make([]experiments.PlayerConfig, len(cfg.Players))
	for i, p := range cfg.Players {
		players[i] = experiments.PlayerConfig{Name: p.Name, Kind: p.Type}
	}

	var writer *metrics.Writer
	if !cfg.Experiment.DryRun {
		writer, err = metrics.NewWriter(cfg.Experiment.OutputDir, cfg.Experiment.Name)
		if err != nil {
			return fmt.Errorf("failed to create experiment writer: %w", err)
		}
	}

	results, err := experiments.Run(ctx, experiments.Config{
		Name:    cfg.Experiment.Name,
		Params:  params,
		Players: players,
		Rounds:  cfg.Experiment.Rounds,
		Matches: cfg.Experiment.Matches,
		Workers: cfg.Experiment.Workers,
		Seed:    cfg.Experiment.Seed,
	}, writer)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Printf("Match %d\n%s\n", r.Config.ID, experiments.Summary(r))
	}
	return nil
}

// runDemo walks three sample hands of the 3x3 three-player game through the
// first 19 outstanding bids.
func runDemo() error {
	params, err := game.NewParams(3, 3, 3)
	if err != nil {
		return err
	}
	e, err := baseline.NewEngine(params)
	if err != nil {
		return err
	}

	for _, digits := range []string{"111", "121", "132"} {
		hand, err := game.NewHand(params, digits)
		if err != nil {
			return err
		}
		fmt.Printf("HAND %s\n", hand)
		for a := game.Action(1); a < 20; a++ {
			bid, err := game.BidStateOf(e.Actions(), a, false)
			if err != nil {
				return err
			}
			text, err := e.NextActionText(hand, bid, false)
			if err != nil {
				return err
			}
			fmt.Printf("\t%s: chosen next action: %s\n", bid, text)
		}
	}
	return nil
}
