// Command headless steps the simulation without a window and writes the
// plane telemetry as CSV, one file per seed. Runs with the same seed and
// frame count produce identical output.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/flightsim/boot"
	"github.com/milk9111/flightsim/config"
	"github.com/milk9111/flightsim/game"
	"github.com/milk9111/flightsim/logging"
)

// frameTime is the synthetic wall-clock step between displayed frames.
const frameTime = time.Second / 60

type runConfig struct {
	settings *config.Settings
	mode     string
	level    string
	frames   int
	seeds    []uint64
	outDir   string
	log      *zap.Logger
}

func main() {
	os.Exit(headless())
}

func headless() int {
	frames := flag.Int("frames", 600, "displayed frames to simulate")
	modeName := flag.String("mode", "", "airplane or aquarium (overrides the settings file)")
	levelName := flag.String("level", "", "aquarium level in levels/")
	settingsPath := flag.String("settings", "settings.toml", "settings file; missing means defaults")
	seedList := flag.String("seeds", "", "comma separated seeds, default the settings seed")
	outDir := flag.String("out", "", "directory for per-seed CSV files; empty writes a single run to stdout")
	flag.Parse()

	settings, err := boot.Settings(*settingsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	log := logging.Must(settings.Logging)
	defer log.Sync()

	seeds, err := parseSeeds(*seedList, settings.Simulation.Seed)
	if err != nil {
		log.Error("bad -seeds", zap.Error(err))
		return 2
	}

	cfg := runConfig{
		settings: settings,
		mode:     *modeName,
		level:    *levelName,
		frames:   *frames,
		seeds:    seeds,
		outDir:   *outDir,
		log:      log,
	}
	if err := run(cfg, os.Stdout); err != nil {
		log.Error("headless run failed", zap.Error(err))
		return 1
	}
	return 0
}

func parseSeeds(list string, fallback uint64) ([]uint64, error) {
	if strings.TrimSpace(list) == "" {
		return []uint64{fallback}, nil
	}
	var seeds []uint64
	for _, field := range strings.Split(list, ",") {
		seed, err := strconv.ParseUint(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", field, err)
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// run simulates every seed. Seeds run concurrently, each on its own state.
func run(cfg runConfig, stdout io.Writer) error {
	if cfg.outDir == "" && len(cfg.seeds) > 1 {
		return fmt.Errorf("%d seeds need -out", len(cfg.seeds))
	}
	opts, err := boot.Options(cfg.settings, cfg.mode, cfg.level, cfg.log)
	if err != nil {
		return err
	}
	if cfg.outDir != "" {
		if err := os.MkdirAll(cfg.outDir, 0o755); err != nil {
			return err
		}
	}

	var g errgroup.Group
	for _, seed := range cfg.seeds {
		g.Go(func() error {
			o := opts
			o.Seed = seed
			st := simulate(cfg.settings, o, cfg.frames)
			cfg.log.Info("run finished",
				zap.Uint64("seed", seed),
				zap.Uint64("frame", st.Frame),
				zap.Int("crablets", st.Crablets.Len()),
				zap.Int("plankton", st.Plankton.Len()),
			)
			if cfg.outDir == "" {
				return st.Plotter.WriteCSV(stdout)
			}
			return writeCSV(filepath.Join(cfg.outDir, fmt.Sprintf("%s-%d.csv", st.Mode, seed)), st)
		})
	}
	return g.Wait()
}

// simulate builds a fresh world and steps it frames times on a synthetic
// clock.
func simulate(settings *config.Settings, opts game.Options, frames int) *game.State {
	st := boot.Fresh(settings, opts)
	now := time.Unix(0, 0)
	for range frames {
		now = now.Add(frameTime)
		st.TickAt(now)
	}
	return st
}

func writeCSV(path string, st *game.State) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return st.Plotter.WriteCSV(f)
}
