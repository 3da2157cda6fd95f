package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/memory-tree/camera"
	"github.com/lixenwraith/memory-tree/config"
	"github.com/lixenwraith/memory-tree/engine"
	"github.com/lixenwraith/memory-tree/event"
	"github.com/lixenwraith/memory-tree/network"
	"github.com/lixenwraith/memory-tree/parameter"
	"github.com/lixenwraith/memory-tree/render"
	"github.com/lixenwraith/memory-tree/scene"
	"github.com/lixenwraith/memory-tree/service"
	"github.com/lixenwraith/memory-tree/status"
	"github.com/lixenwraith/memory-tree/vmath"
)

// App is the terminal host: it owns the screen and drives the simulation at a fixed frame rate
type App struct {
	cfg      config.Config
	screen   tcell.Screen
	sim      *engine.Simulation
	cam      *camera.Orbit
	renderer *render.TerminalRenderer
	hub      *service.Hub
	stream   *network.Service
	clock    *engine.FrameClock

	// Last mouse cell; pointer repulsion is off until the mouse moves
	mouseX, mouseY int
	hasMouse       bool
	buttonDown     bool
}

// crash restores the terminal before reporting a panic
func crash(screen tcell.Screen, where string, r any) {
	if screen != nil {
		screen.Fini()
	}
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mMEMORY-TREE %s CRASHED: %v\x1b[0m\r\n", where, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "memory-tree: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	app, err := NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "memory-tree: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: Ensure terminal is reset even if the frame loop crashes
	defer func() {
		if r := recover(); r != nil {
			crash(app.screen, "FRAME LOOP", r)
		}
	}()

	err = app.Run()
	app.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "memory-tree: %v\n", err)
		os.Exit(1)
	}
}

// NewApp initializes the terminal, simulation and optional stream
func NewApp(cfg config.Config) (*App, error) {
	if cfg.ColorMode == config.Color256 {
		os.Setenv("TCELL_TRUECOLOR", "disable")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return newApp(cfg, screen)
}

// newApp wires an app around an uninitialized screen
func newApp(cfg config.Config, screen tcell.Screen) (*App, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	density := engine.DensityFull
	if cfg.LowPower {
		density = engine.DensityLow
	}

	reg := status.NewRegistry()
	sim := engine.NewSimulation(engine.Options{
		Holds:   scene.DefaultHolds(),
		Density: density,
		Seed:    cfg.Seed,
		Status:  reg,
	})
	sim.OnFinale(func() {
		log.Printf("[app] finale opened at frame %d", sim.Frame())
	})

	cam := camera.NewOrbit(cfg.FPS)
	app := &App{
		cfg:      cfg,
		screen:   screen,
		sim:      sim,
		cam:      cam,
		renderer: render.NewTerminalRenderer(screen, cam, cfg.ColorMode == config.ColorMono),
		clock:    engine.NewFrameClock(engine.NewMonotonicTimeProvider()),
	}

	var reportInterval time.Duration
	if cfg.Debug {
		reportInterval = parameter.StatusReportInterval
	}

	app.stream = network.NewService(reg)
	app.stream.SetEventQueue(sim.Queue())
	app.hub = service.NewHub()
	app.hub.Register(status.NewService(reg))
	app.hub.Register(app.stream)

	err := app.hub.InitAll(map[string][]any{
		"status":  {reportInterval},
		"network": {network.DebugConfig(cfg.StreamAddr)},
	})
	if err == nil {
		err = app.hub.StartAll()
	}
	if err != nil {
		screen.Fini()
		return nil, err
	}

	log.Printf("[app] started density=%s fps=%d stream=%q", density, cfg.FPS, cfg.StreamAddr)
	return app, nil
}

// Close stops services and restores the terminal
func (a *App) Close() {
	a.hub.StopAll()
	a.screen.Fini()
}

// Run blocks until the user quits
func (a *App) Run() error {
	frameTicker := time.NewTicker(time.Second / time.Duration(a.cfg.FPS))
	defer frameTicker.Stop()

	publishTicker := time.NewTicker(parameter.StreamBroadcastInterval)
	defer publishTicker.Stop()

	eventChan := make(chan tcell.Event, 256)
	quit := make(chan struct{})
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crash(a.screen, "EVENT POLLER", r)
			}
		}()
		a.screen.ChannelEvents(eventChan, quit)
	}()
	defer close(quit)

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			if !a.handleEvent(ev) {
				return nil
			}

		case <-frameTicker.C:
			a.frame()

		case <-publishTicker.C:
			if a.stream.IsRunning() {
				if err := a.stream.Publish(a.sim.Snapshot()); err != nil {
					log.Printf("[app] publish: %v", err)
				}
			}
		}
	}
}

// frame advances simulation and camera once and draws
func (a *App) frame() {
	elapsed, delta := a.clock.Tick()

	var pointer *vmath.Vec3F
	if a.hasMouse {
		ndcX, ndcY := a.renderer.PointerNDC(a.mouseX, a.mouseY)
		if p, ok := a.cam.PointerOnPlane(ndcX, ndcY); ok {
			pointer = &p
		}
	}

	if !a.clock.IsPaused() {
		a.sim.Update(engine.FrameInput{Elapsed: elapsed, Delta: delta, Pointer: pointer})
	}
	a.cam.Update()
	a.renderer.RenderFrame(a.sim)
}

// handleEvent returns false to exit
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		a.mouseX, a.mouseY = ev.Position()
		a.hasMouse = true

		down := ev.Buttons()&tcell.Button1 != 0
		if down && !a.buttonDown {
			if idx := a.renderer.HitTest(a.mouseX, a.mouseY); idx >= 0 {
				event.EmitSelect(a.sim.Queue(), idx, a.sim.Frame())
			}
		}
		a.buttonDown = down

	case *tcell.EventResize:
		a.screen.Sync()
		a.renderer.Resize(a.screen.Size())
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	q := a.sim.Queue()
	frame := a.sim.Frame()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		a.cam.Rotate(-parameter.CameraRotateStep, 0)
	case tcell.KeyRight:
		a.cam.Rotate(parameter.CameraRotateStep, 0)
	case tcell.KeyUp:
		a.cam.Rotate(0, -parameter.CameraRotateStep)
	case tcell.KeyDown:
		a.cam.Rotate(0, parameter.CameraRotateStep)
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q':
			return false
		case r == 'r':
			event.EmitCommand(q, event.EventResetRequest, frame)
		case r == 'l':
			event.EmitCommand(q, event.EventDensityToggle, frame)
		case r == 'c':
			event.EmitCommand(q, event.EventCloseFinale, frame)
		case r == 'p':
			if a.clock.IsPaused() {
				a.clock.Resume()
			} else {
				a.clock.Pause()
			}
		case r == '+' || r == '=':
			a.cam.Zoom(-parameter.CameraZoomStep)
		case r == '-' || r == '_':
			a.cam.Zoom(parameter.CameraZoomStep)
		case r >= '1' && r <= '9':
			// Keyboard selection: 1-9 then 0 for the tenth hold
			event.EmitSelect(q, int(r-'1'), frame)
		case r == '0':
			event.EmitSelect(q, 9, frame)
		}
	}
	return true
}
