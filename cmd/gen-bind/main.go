package main

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/seitarof/gen-bind/internal/cli"
	"github.com/seitarof/gen-bind/internal/generator"
	"github.com/seitarof/gen-bind/internal/matcher"
	"github.com/seitarof/gen-bind/internal/parser"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	p := parser.New(parser.WithDir(cfg.Dir))
	lm := matcher.NewLeafMatcher(cfg.Marker, cfg.Leaves)
	f := generator.NewGoimportsFormatter()
	w := generator.NewFileWriter()
	g := generator.New(f, w, generator.WithLogger(logger))

	runner := cli.NewRunner(p, lm, nil, g, logger)
	if err := runner.Run(cfg, os.Stdout); err != nil {
		logger.Error("gen-bind failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zcfg.Build()
}
