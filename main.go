package main

import (
	"flag"
	"geister/experiments"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	experiment := flag.String("experiment", "depth", "Experiment to run: depth or inference")
	out := flag.String("out", "results", "Directory for experiment records")
	debug := flag.Bool("debug", false, "Log every search and inference step")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var err error
	switch *experiment {
	case "depth":
		err = experiments.RunDepthExperiment(*out)
	case "inference":
		err = experiments.RunInferenceExperiment(*out)
	default:
		log.Fatal().Str("experiment", *experiment).Msg("unknown experiment")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}
