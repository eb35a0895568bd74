package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/milk9111/flightsim/boot"
	"github.com/milk9111/flightsim/logging"
)

func main() {
	os.Exit(run())
}

// run returns the exit code. Its deferred cleanups finish before main exits.
func run() int {
	debug := flag.Bool("debug", false, "enable debug logging and the diagnostics overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "aquarium level in levels/ (basename, .json optional)")
	modeName := flag.String("mode", "", "airplane or aquarium (overrides the settings file)")
	settingsPath := flag.String("settings", "settings.toml", "settings file; missing means defaults")
	statePath := flag.String("state", "", "save file restored on start and written on exit")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	settings, err := boot.Settings(*settingsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *debug {
		settings.Logging.Level = "debug"
	}
	log := logging.Must(settings.Logging)
	defer log.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		log.Error("unknown profile mode", zap.String("profile", *profileMode))
		return 2
	}

	opts, err := boot.Options(settings, *modeName, *levelName, log)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return 1
	}
	state := boot.State(settings, opts, *statePath, log)
	log.Info("starting", zap.Stringer("mode", state.Mode), zap.Uint64("frame", state.Frame))

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(settings.Graphics.Width, settings.Graphics.Height)
	ebiten.SetFullscreen(settings.Graphics.Fullscreen)
	ebiten.SetVsyncEnabled(settings.Graphics.VSync)
	ebiten.SetWindowTitle("flightsim")

	game := NewGame(GameConfig{
		Settings:     settings,
		SettingsPath: *settingsPath,
		StatePath:    *statePath,
		Level:        *levelName,
		Debug:        *debug,
		Log:          log,
	}, state)

	runErr := ebiten.RunGame(game)
	if err := game.Close(); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	if runErr != nil {
		log.Error("run", zap.Error(runErr))
		return 1
	}
	return 0
}
