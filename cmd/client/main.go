package main

import (
	"fmt"
	"strconv"
	"time"

	"flight-simulator/internal/config"
	"flight-simulator/internal/game/airspace"
	"flight-simulator/internal/game/easing"
	"flight-simulator/internal/game/render"
	"flight-simulator/internal/game/replay"
	"flight-simulator/internal/game/simulation"
	"flight-simulator/internal/logging"
	"flight-simulator/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/labstack/gommon/log"
)

type Game struct {
	width, height int
	sim           *simulation.Simulation
	airspace      *airspace.Airspace
	view          *ui.MapView
	keyboard      *ui.Keyboard
	coordInput    *ui.TextInput

	recorder *replay.Recorder
	player   *replay.Player

	lastUpdate time.Time
}

func NewGame(cfg simulation.Config) *Game {
	as := airspace.NewAirspace()
	game := &Game{
		width:    int(cfg.Viewport.X),
		height:   int(cfg.Viewport.Y),
		sim:      simulation.NewSimulation(cfg),
		airspace: as,
		view:     ui.NewMapView(as),
		keyboard: ui.NewKeyboard(nil),
	}

	game.sim.Nav.Sink = game.view
	game.sim.Attach(render.NewAdapter(game.view, game.view))

	game.coordInput = ui.NewTextInput(10, game.height-48, game.width/2, 30, "TAB: go to <lat> <lng> | <ICAO> | D <waypoint>", func(text string) error {
		target, err := game.airspace.ResolveTarget(text)
		if err != nil {
			return err
		}
		log.Infof("Target entered: %.5f, %.5f", target.Lat, target.Lng)
		game.sim.AcquireTarget(target)
		return nil
	})

	return game
}

func (g *Game) Update() error {
	now := time.Now()
	dt := g.sim.FixedDelta()
	if !g.lastUpdate.IsZero() {
		dt = now.Sub(g.lastUpdate).Seconds()
	}
	g.lastUpdate = now

	g.view.HandlePan()

	if g.player != nil {
		if !g.player.Next(g.sim) && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		return nil
	}

	g.handleInput()
	g.coordInput.Update()

	if g.coordInput.IsActive {
		g.keyboard.Suspend(g.sim.Controls)
	} else {
		g.keyboard.Poll(g.sim.Controls)
	}

	g.sim.Update(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.view.Draw(screen, g.sim.Trail.Points)

	g.drawUI(screen)
	ebitenutil.DebugPrint(screen, "FPS: "+strconv.FormatFloat(ebiten.ActualFPS(), 'f', 2, 64))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.sim.Resize(outsideWidth, outsideHeight)
		g.coordInput.Y = outsideHeight - 48
		g.coordInput.Width = outsideWidth / 2
	}
	return g.width, g.height
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.coordInput.IsActive = true
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()

		if g.coordInput.IsClicked(x, y) {
			g.coordInput.IsActive = true
			return
		}
		g.coordInput.IsActive = false

		target, ok := g.view.ScreenToLatLng(x, y)
		if !ok {
			log.Debugf("Click at (%d, %d) is off the map", x, y)
			return
		}
		log.Infof("Target clicked: %.5f, %.5f", target.Lat, target.Lng)
		g.sim.AcquireTarget(target)
	}
}

func (g *Game) drawUI(screen *ebiten.Image) {
	g.coordInput.Draw(screen)

	f := g.sim.Flight
	tier := f.Tier()
	hud := fmt.Sprintf("MODE: %s\nSPD: %s (%.0f m/s)\nALT: %.0f / %.0f ft\nHDG: %03.0f\nPIT: %+.1f ROL: %+.1f\nPROJ: %s (%.2f)",
		f.Mode, tier.Label, f.SpeedMps,
		f.AltitudeFt, tier.MaxAltitudeFt,
		easing.Degrees(f.Heading),
		easing.Degrees(f.Pitch), easing.Degrees(f.Roll),
		g.view.Projection(), g.sim.Camera.GlobeBlend)
	if f.Target != nil {
		hud += fmt.Sprintf("\nTGT: %.4f, %.4f", f.Target.Lat, f.Target.Lng)
	}
	if ap, d := g.airspace.Nearest(f.Position()); ap != nil {
		hud += fmt.Sprintf("\nNEAR: %s %.1f deg", ap.ID, d)
	}
	if g.player != nil {
		hud += fmt.Sprintf("\nREPLAY: %.0f%%", g.player.Progress()*100)
	}

	ebitenutil.DebugPrintAt(screen, hud, 10, 20)
}

func main() {
	if err := config.Load("."); err != nil {
		log.Warnf("%v, using defaults", err)
	}

	closer, err := logging.Setup(config.GetString("logLevel"), config.GetString("logFile"))
	if err != nil {
		log.Warnf("Logging setup: %v", err)
	}
	defer closer.Close()

	cfg := config.Simulation()

	var player *replay.Player
	if path := config.GetString("replay.play"); path != "" {
		rec, err := replay.Load(path)
		if err != nil {
			log.Errorf("Replay %s: %v", path, err)
		} else {
			log.Infof("Playing %d frames from %s", len(rec.Frames), path)
			cfg = rec.Config
			player = replay.NewPlayer(rec)
		}
	}

	game := NewGame(cfg)
	game.player = player

	recordPath := config.GetString("replay.record")
	if recordPath != "" && player == nil {
		game.recorder = replay.NewRecorder(cfg)
		game.sim.Observer = game.recorder
	}

	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle("Flight Simulator")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(int(cfg.TickRate))

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}

	if game.recorder != nil {
		if err := replay.Save(recordPath, game.recorder.Recording()); err != nil {
			log.Errorf("Saving replay: %v", err)
			return
		}
		log.Infof("Saved %d frames to %s", game.recorder.Len(), recordPath)
	}
}
