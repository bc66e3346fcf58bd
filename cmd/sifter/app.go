package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sifterlab/sifter/internal/config"
	"github.com/sifterlab/sifter/internal/logger"
	"github.com/sifterlab/sifter/internal/pipeline"
	"github.com/sifterlab/sifter/internal/profile"
	"github.com/sifterlab/sifter/internal/provider/jsondir"
	"github.com/sifterlab/sifter/internal/stage"
	"github.com/sifterlab/sifter/internal/stage/daily"
	"github.com/sifterlab/sifter/internal/stage/earnings"
	"github.com/sifterlab/sifter/internal/stage/fundamental"
	"github.com/sifterlab/sifter/internal/stage/relstrength"
	"github.com/sifterlab/sifter/internal/stage/weekly"
	"go.uber.org/zap"
)

// newLogger builds the logger from the loaded config. The --debug flag
// forces development mode on top of whatever the config says.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Log.Development || debug, cfg.Log.Level)
}

func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadNamedProfile resolves the profile by name from the profiles file,
// falling back to the built-in balanced profile when the file is absent.
// Fallback warnings are returned so callers can attach them to the run
// report.
func loadNamedProfile(cfg *config.Config, name string, log *zap.Logger) (profile.Profile, []string, error) {
	if _, err := os.Stat(cfg.Profiles.Path); os.IsNotExist(err) {
		if name != "" && name != profile.DefaultName {
			return profile.Profile{}, nil, fmt.Errorf("profile %q requested but %s does not exist", name, cfg.Profiles.Path)
		}
		log.Debug("no profiles file, using built-in balanced profile")
		return profile.Balanced(), nil, nil
	}

	loader, err := profile.NewLoader(cfg.Profiles.Path, log)
	if err != nil {
		return profile.Profile{}, nil, fmt.Errorf("loading profiles: %w", err)
	}
	prof, warnings, err := loader.Load(name)
	if err != nil {
		return profile.Profile{}, nil, err
	}
	for _, w := range warnings {
		log.Warn(w)
	}
	return prof, warnings, nil
}

func buildRunner(cfg *config.Config, log *zap.Logger) (*pipeline.Runner, error) {
	provider, err := jsondir.New(cfg.Data.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("data provider: %w", err)
	}

	evaluators := []stage.Evaluator{
		earnings.New(log, 0),
		fundamental.New(log, 0),
		weekly.New(log, 0),
		relstrength.New(log, 0),
		daily.New(log, 0),
	}
	return pipeline.New(provider, evaluators, log)
}

// readUniverse parses a universe file: one symbol per line, blank lines
// and # comments ignored.
func readUniverse(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening universe file: %w", err)
	}
	defer f.Close()

	var symbols []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		symbols = append(symbols, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading universe file: %w", err)
	}
	return symbols, nil
}
