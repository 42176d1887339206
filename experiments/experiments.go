package experiments

import (
	"fmt"
	"geister/engine"
	"geister/experiments/metrics"
	"geister/inference"
	"geister/meta"
	"geister/searcher"
	"geister/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const NumGames = 30 // Per match up

var baseline = metrics.AgentConfig{ID: 0, Kind: "random", Seed: 1}

var depthConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: "player", Depth: 2, PartialDepth: 2, Threshold: meta.STRONG_THRESHOLD, Race: true},
	{ID: 2, Kind: "player", Depth: 4, PartialDepth: 2, Threshold: meta.STRONG_THRESHOLD, Race: true},
	{ID: 3, Kind: "player", Depth: meta.SEARCH_DEPTH, PartialDepth: meta.PARTIAL_DEPTH, Threshold: meta.STRONG_THRESHOLD, Race: true},
}

var inferenceConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: "player", Depth: 4, PartialDepth: 2, Threshold: meta.STRONG_THRESHOLD, Race: true},
	{ID: 2, Kind: "player", Depth: 4, PartialDepth: 2, Threshold: meta.STRONG_THRESHOLD, Race: false},
	{ID: 3, Kind: "player", Depth: 4, PartialDepth: 2, Threshold: 2 * meta.STRONG_THRESHOLD, Race: true},
}

// RunDepthExperiment pairs players of increasing search depth against the random baseline.
func RunDepthExperiment(root string) error {
	return Run(root, "depth", append(depthConfigs, baseline), againstBaseline(depthConfigs), NumGames)
}

// RunInferenceExperiment pairs players with different inference settings against the random baseline.
func RunInferenceExperiment(root string) error {
	return Run(root, "inference", append(inferenceConfigs, baseline), againstBaseline(inferenceConfigs), NumGames)
}

func againstBaseline(configs []metrics.AgentConfig) [][]metrics.AgentConfig {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return matchUps
}

// Run plays games games per matchup, up to meta.GO_ROUTINES at a time, alternating the
// starting seat, and writes the configs and records under root/name.
func Run(root, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, games int) error {
	total := len(matchUps) * games
	gameRecords := make([]metrics.GameRecord, total)
	moveRecords := make([][]metrics.MoveRecord, total)

	log.Info().Str("experiment", name).Int("matchups", len(matchUps)).Int("games", total).Msg("starting experiment")

	var g errgroup.Group
	g.SetLimit(meta.GO_ROUTINES)
	for mi, matchUp := range matchUps {
		for i := 0; i < games; i++ {
			id := mi*games + i
			g.Go(func() error {
				winner, gameMetric, moveMetrics, err := runGame(matchUp[0], matchUp[1], i%2)
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				gameRecords[id] = metrics.GameRecord{
					ID:         id + 1,
					Agent1:     matchUp[0].ID,
					Agent2:     matchUp[1].ID,
					GameMetric: gameMetric,
				}
				for _, mm := range moveMetrics {
					moveRecords[id] = append(moveRecords[id], metrics.MoveRecord{Game: id + 1, MoveMetric: mm})
				}
				log.Info().Int("matchup", mi+1).Int("game", i+1).Int("winner", winner).Msg("completed game")
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Str("experiment", name).Msg("completed experiment")

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	var flat []metrics.MoveRecord
	for _, records := range moveRecords {
		flat = append(flat, records...)
	}
	if err := writer.WriteMoveRecords(flat); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return nil
}

// runGame executes a single game between two agents and returns the winning seat
func runGame(config1, config2 metrics.AgentConfig, startingSeat int) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := createAgent(config1)
	if err != nil {
		return 0, metrics.GameMetric{}, nil, err
	}
	agent2, err := createAgent(config2)
	if err != nil {
		return 0, metrics.GameMetric{}, nil, err
	}
	e := engine.LocalEngine([]agent.Agent{agent1, agent2}, engine.WithStartingSeat(startingSeat))

	winner, gameMetric, moveMetrics := e.Run()
	return winner, gameMetric, moveMetrics, nil
}

func createAgent(config metrics.AgentConfig) (agent.Agent, error) {
	switch config.Kind {
	case "random":
		return agent.NewRandom(config.Seed), nil
	case "player":
	default:
		return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
	}

	engineOptions := []searcher.Option{searcher.WithMetrics(metrics.NewCollector())}
	if config.Depth > 0 {
		engineOptions = append(engineOptions, searcher.WithDepth(config.Depth))
	}
	partialOptions := []searcher.Option{searcher.WithMetrics(metrics.NewCollector())}
	if config.PartialDepth > 0 {
		partialOptions = append(partialOptions, searcher.WithDepth(config.PartialDepth))
	}

	options := []agent.Option{
		agent.WithEngine(searcher.NewEngine(engineOptions...)),
		agent.WithPartial(searcher.NewPartial(partialOptions...)),
		agent.WithTracker(inference.NewTracker(inference.WithRace(config.Race))),
	}
	if config.Threshold > 0 {
		options = append(options, agent.WithThreshold(config.Threshold))
	}
	return agent.NewPlayer(options...), nil
}
