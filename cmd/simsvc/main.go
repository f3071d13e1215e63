package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"salvo/internal/config"
	"salvo/internal/engine"
	"salvo/internal/util"
)

func main() {
	var cfgDir, out, dump, level string
	var seed int64
	var n, workers int
	var saveLog bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.StringVar(&dump, "dump", "AIShipPlacement.txt", "board dump file (single)")
	flag.Int64Var(&seed, "seed", 12345, "seed")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&workers, "workers", 8, "batch workers")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.StringVar(&level, "log-level", "info", "log level")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithError(err).Fatal("bad -log-level")
	}
	log.SetLevel(lvl)

	fleetCfg, engineCfg, err := config.LoadAll(cfgDir)
	if err != nil {
		log.WithError(err).WithField("dir", cfgDir).Fatal("load config")
	}
	cfg, err := engine.SimConfigFrom(engineCfg)
	if err != nil {
		log.WithError(err).Fatal("engine config")
	}
	defs := fleetCfg.Defs()

	if n <= 1 {
		env := &engine.Env{Rng: util.New(seed), Log: log}
		res, err := engine.RunSingle(env, defs, cfg, saveLog)
		if err != nil {
			log.WithError(err).Fatal("simulation failed")
		}
		if err := os.WriteFile(out, engine.MarshalPretty(res), 0644); err != nil {
			log.WithError(err).Fatal("write result")
		}
		if err := os.WriteFile(dump, []byte(res.Placement), 0644); err != nil {
			log.WithError(err).Fatal("write board dump")
		}
		log.WithFields(logrus.Fields{
			"game":   res.GameID,
			"win":    res.Win,
			"shots":  res.Shots,
			"hits":   res.Hits,
			"result": out,
			"dump":   dump,
		}).Info("single simsvc finished")
		return
	}

	sum := engine.RunBatch(seed, n, workers, defs, cfg, log)
	if err := os.WriteFile(out, engine.MarshalPretty(sum), 0644); err != nil {
		log.WithError(err).Fatal("write summary")
	}
	entry := log.WithFields(logrus.Fields{
		"runs":      sum.Runs,
		"avg_shots": sum.AvgShots,
		"min_shots": sum.MinShots,
		"max_shots": sum.MaxShots,
		"failures":  sum.Failures,
		"out":       filepath.Base(out),
	})
	if sum.RepeatedShots > 0 || sum.Failures > 0 {
		entry.WithField("repeated_shots", sum.RepeatedShots).Error("batch finished with failures")
		os.Exit(1)
	}
	entry.Info("batch done")
}
