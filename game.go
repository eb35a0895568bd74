package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.design/x/clipboard"

	"github.com/milk9111/flightsim/boot"
	"github.com/milk9111/flightsim/common"
	"github.com/milk9111/flightsim/config"
	"github.com/milk9111/flightsim/game"
	"github.com/milk9111/flightsim/prefabs"
	"github.com/milk9111/flightsim/render"
	"github.com/milk9111/flightsim/save"
	"github.com/milk9111/flightsim/vmath"
)

const defaultSavePath = "flightsim.sav"

// GameConfig is what main hands to NewGame.
type GameConfig struct {
	Settings     *config.Settings
	SettingsPath string
	StatePath    string
	Level        string
	Debug        bool
	Log          *zap.Logger
}

// Game adapts the simulation to ebiten: input in, scenegraph out.
type Game struct {
	cfg   GameConfig
	log   *zap.Logger
	state *game.State

	sg       *render.Scenegraph
	renderer *renderer
	input    Input
	panel    *CommandPanel
	watcher  *prefabs.Watcher

	showPanel   bool
	clipboardOK bool
}

func NewGame(cfg GameConfig, state *game.State) *Game {
	g := &Game{
		cfg:       cfg,
		log:       cfg.Log,
		state:     state,
		sg:        render.NewScenegraph(),
		renderer:  newRenderer(),
		showPanel: cfg.Settings.Graphics.HUD,
	}
	g.applyControls(cfg.Settings)
	g.panel = NewCommandPanel(g)

	if err := clipboard.Init(); err != nil {
		g.log.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboardOK = true
	}

	g.watcher = g.watch()
	return g
}

// watch starts the hot reload watcher on the prefab directory and the
// settings file's directory, whichever exist.
func (g *Game) watch() *prefabs.Watcher {
	var dirs []string
	if info, err := os.Stat(prefabs.Dir); err == nil && info.IsDir() {
		dirs = append(dirs, prefabs.Dir)
	}
	if g.cfg.SettingsPath != "" {
		if _, err := os.Stat(g.cfg.SettingsPath); err == nil {
			dirs = append(dirs, filepath.Dir(g.cfg.SettingsPath))
		}
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		g.log.Warn("hot reload disabled", zap.Error(err))
		return nil
	}
	g.log.Debug("watching for changes", zap.Strings("dirs", dirs))
	return w
}

func (g *Game) applyControls(s *config.Settings) {
	g.input.Sensitivity = s.Controls.MouseSensitivity / 100
	g.input.ZoomStep = s.Controls.ZoomStep
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.showPanel = !g.showPanel
	}

	g.pollWatcher()

	mx, my := ebiten.CursorPosition()
	overUI := g.showPanel && g.panel.Contains(mx, my)
	if g.showPanel {
		g.panel.UI.Update()
	}
	g.input.Update(&g.state.Inputs, overUI)

	g.state.Camera.ViewportSize = vmath.V2(common.BaseWidth, common.BaseHeight)
	g.state.Tick()
	g.panel.Refresh(g.state)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.state.DrawOn(g.sg)
	g.renderer.Draw(screen, g.sg)

	if g.showPanel {
		g.panel.UI.Draw(screen)
	}
	if g.cfg.Debug {
		msg := fmt.Sprintf("Frame: %d    FPS: %.2f\nmouse: %.2f, %.2f\n%s",
			g.state.Frame, ebiten.ActualFPS(), g.state.MousePos.X, g.state.MousePos.Y, g.state.Diag)
		ebitenutil.DebugPrintAt(screen, msg, common.BaseWidth-320, 8)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// pollWatcher applies every file change reported since the last frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("watcher error", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	name := change.Path
	if change.Kind == prefabs.KindSettings {
		if filepath.Clean(name) != filepath.Clean(g.cfg.SettingsPath) {
			return
		}
		s, err := boot.Settings(g.cfg.SettingsPath)
		if err != nil {
			g.log.Warn("settings reload failed", zap.String("file", name), zap.Error(err))
			return
		}
		g.cfg.Settings = s
		g.applyControls(s)
		boot.Apply(g.state, s)
		g.log.Info("settings reloaded", zap.String("file", name))
		return
	}

	set, ok, err := prefabs.LoadChanged(name)
	if !ok {
		return
	}
	if err != nil {
		g.log.Warn("prefab reload failed", zap.String("file", name), zap.Error(err))
		return
	}
	g.state.ApplyPrefabs(set)
}

func (g *Game) reset(mode game.Mode) {
	level := ""
	if mode == game.ModeAquarium {
		level = g.cfg.Level
	}
	opts, err := boot.Options(g.cfg.Settings, mode.String(), level, g.log)
	if err != nil {
		g.log.Error("reset failed", zap.Stringer("mode", mode), zap.Error(err))
		return
	}
	g.state.Reset(opts)
}

func (g *Game) savePath() string {
	if g.cfg.StatePath != "" {
		return g.cfg.StatePath
	}
	return defaultSavePath
}

func (g *Game) save() {
	path := g.savePath()
	if err := save.WriteFile(path, g.state); err != nil {
		g.log.Error("save failed", zap.Error(err))
		return
	}
	g.log.Info("state saved", zap.String("file", path), zap.Uint64("frame", g.state.Frame))
}

func (g *Game) copyState() {
	if !g.clipboardOK {
		return
	}
	data, err := save.Encode(g.state)
	if err != nil {
		g.log.Error("encode failed", zap.Error(err))
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(data))
	g.log.Info("state copied", zap.Int("bytes", len(data)))
}

func (g *Game) pasteState() {
	if !g.clipboardOK {
		return
	}
	s, err := save.Decode(string(clipboard.Read(clipboard.FmtText)))
	if errors.Is(err, save.ErrEmpty) {
		return
	}
	if err != nil {
		g.log.Warn("paste failed", zap.Error(err))
		return
	}
	g.replaceState(s)
	g.log.Info("state pasted", zap.Stringer("mode", s.Mode), zap.Uint64("frame", s.Frame))
}

// replaceState swaps in s, keeping the logger, diagnostics and viewport of
// the running state.
func (g *Game) replaceState(s *game.State) {
	s.SetLogger(g.state.Logger())
	s.Diag = g.state.Diag
	s.Camera.ViewportSize = g.state.Camera.ViewportSize
	g.state = s
}

// Close stops the watcher and writes the state when a save path was given.
func (g *Game) Close() error {
	var err error
	if g.watcher != nil {
		err = g.watcher.Close()
	}
	if g.cfg.StatePath != "" {
		if serr := save.WriteFile(g.cfg.StatePath, g.state); serr != nil {
			err = multierr.Append(err, serr)
		}
	}
	return err
}
