// Command atom-builder is a terminal sandbox for assembling atoms particle by particle
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/atom-builder/atom"
	"github.com/lixenwraith/atom-builder/audio"
	"github.com/lixenwraith/atom-builder/event"
	"github.com/lixenwraith/atom-builder/instability"
	"github.com/lixenwraith/atom-builder/particle"
	"github.com/lixenwraith/atom-builder/render"
	"github.com/lixenwraith/atom-builder/status"
	"github.com/lixenwraith/atom-builder/vmath"
)

var (
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/atom-builder.log")
	soundFlag  = flag.Bool("sound", false, "Play audio cues")
	seedFlag   = flag.Uint64("seed", 0, "Random seed for spawns and jitter, 0 uses the clock")
	modeFlag   = flag.String("mode", "", "Electron add mode: proximal or random (overrides environment)")
	scaleFlag  = flag.Float64("scale", 0, "Terminal columns per world unit, 0 picks a default")
	volumeFlag = flag.Float64("volume", 0.4, "Cue volume in [0, 1]")
	eventsFlag = flag.String("log-events", defaultLoggedEvents, "Comma-separated event names to log with -debug, or all")
)

const defaultLoggedEvents = "ParticleAdded,ParticleRemoved,NucleusReconfigured,ElectronAssigned,AtomCleared,AtomMoved"

const (
	frameInterval = 16 * time.Millisecond
	spawnRadius   = 320.0
	exitRadius    = 420.0
	moveStep      = 20.0
)

var helpLines = []string{
	"p/n/e add  P/N/E extract  c clear  arrows move  drag to pick up  s mute  q quit",
}

// app holds the sandbox state driven by the frame loop
type app struct {
	screen  tcell.Screen
	view    *render.AtomView
	atom    *atom.Atom
	anim    *instability.Animator
	router  *event.Router[*app]
	player  *audio.Player
	metrics *status.Registry
	rng     *rand.Rand

	loose []*particle.Particle
	held  *particle.Particle
	muted bool
}

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := atom.LoadConfig()
	if *modeFlag != "" {
		cfg.ElectronAddMode = *modeFlag
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mATOM-BUILDER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	a, err := newApp(screen, cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to build atom: %v\n", err)
		os.Exit(1)
	}

	if *soundFlag {
		if err := a.player.Initialize(); err != nil {
			log.Printf("audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer a.player.Cleanup()
		}
	}

	a.run()
}

func newApp(screen tcell.Screen, cfg *atom.Config) (*app, error) {
	rng := instability.NewRand(*seedFlag)
	metrics := status.NewRegistry()

	at, err := atom.New(r2.Vec{}, cfg, atom.WithMetrics(metrics), atom.WithRand(rng))
	if err != nil {
		return nil, err
	}

	a := &app{
		screen:  screen,
		view:    render.NewAtomView(screen, *scaleFlag),
		atom:    at,
		anim:    instability.New(at, bandStable, rng, cfg.NucleusJumpPeriod, cfg.NucleusJumpMax),
		router:  event.NewRouter[*app](at.Events()),
		player:  audio.NewPlayer(*volumeFlag),
		metrics: metrics,
		rng:     rng,
	}

	a.router.Register(event.HandlerFunc[*app]{
		Types: []event.EventType{
			event.EventParticleAdded,
			event.EventParticleRemoved,
			event.EventAtomCleared,
		},
		Fn: func(a *app, ev event.Event) { a.player.HandleEvent(ev) },
	})
	a.anim.Publish(metrics)

	logged, err := event.ParseTypes(*eventsFlag)
	if err != nil {
		return nil, fmt.Errorf("-log-events: %w", err)
	}
	a.router.Register(event.HandlerFunc[*app]{
		Types: logged,
		Fn:    func(_ *app, ev event.Event) { log.Printf("event #%d %s %+v", ev.Seq, ev.Type, ev.Payload) },
	})
	return a, nil
}

func (a *app) run() {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(a.screen.PollEvent, events, done)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			a.frame(now.Sub(last))
			last = now
		}
	}
}

// pumpEvents forwards polled input until poll returns nil (after Fini) or done closes
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// frame advances every animation by dt, dispatches notifications and redraws
func (a *app) frame(dt time.Duration) {
	a.anim.Step(dt)
	a.atom.Step(dt)

	kept := a.loose[:0]
	for _, p := range a.loose {
		if p.Step(dt) {
			kept = append(kept, p)
		}
	}
	clear(a.loose[len(kept):])
	a.loose = kept

	a.router.DispatchAll(a)
	a.view.RenderFrame(a.atom, a.looseAndHeld(), a.metrics, helpLines)
}

func (a *app) looseAndHeld() []*particle.Particle {
	if a.held == nil {
		return a.loose
	}
	return append(a.loose[:len(a.loose):len(a.loose)], a.held)
}

// handleEvent returns false when the user quits
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.move(r2.Vec{Y: -moveStep})
	case tcell.KeyDown:
		a.move(r2.Vec{Y: moveStep})
	case tcell.KeyLeft:
		a.move(r2.Vec{X: -moveStep})
	case tcell.KeyRight:
		a.move(r2.Vec{X: moveStep})
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'p':
			a.spawn(particle.TypeProton)
		case 'n':
			a.spawn(particle.TypeNeutron)
		case 'e':
			a.spawn(particle.TypeElectron)
		case 'P':
			a.extract(particle.TypeProton)
		case 'N':
			a.extract(particle.TypeNeutron)
		case 'E':
			a.extract(particle.TypeElectron)
		case 'c':
			a.clear()
		case 's':
			a.muted = !a.muted
			a.player.SetMuted(a.muted)
		}
	}
	return true
}

// spawn creates a particle on a ring around the atom and adds it
// Electrons beyond shell capacity are refused and drift away
func (a *app) spawn(t particle.Type) {
	start := a.atom.Center().Add(vmath.Polar(spawnRadius, a.rng.Float64()*2*math.Pi))
	p := particle.New(t, start)
	if err := a.atom.Add(p); err != nil {
		log.Printf("spawn %s: %v", t, err)
		if errors.Is(err, atom.ErrNoOpenSlot) {
			a.release(p)
		}
	}
}

func (a *app) extract(t particle.Type) {
	p, err := a.atom.Extract(t)
	if err != nil {
		log.Printf("extract %s: %v", t, err)
		return
	}
	if p != nil {
		a.release(p)
	}
}

// release sends a particle outward from the atom and tracks it until it settles
func (a *app) release(p *particle.Particle) {
	dir := p.Position().Sub(a.atom.Center())
	if r2.Norm(dir) == 0 {
		dir = r2.Vec{X: 1}
	}
	p.SetDestination(a.atom.Center().Add(r2.Unit(dir).Scale(exitRadius)))
	a.loose = append(a.loose, p)
}

func (a *app) clear() {
	members := append(a.atom.Nucleons(), a.atom.Electrons()...)
	a.atom.Clear()
	for _, p := range members {
		a.release(p)
	}
}

func (a *app) move(delta r2.Vec) {
	center := a.atom.Center().Add(delta)
	a.atom.Reposition(center)
	a.view.Origin = center
}

// handleMouse picks up a member on press, drags it, and offers it back on release
func (a *app) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && a.held == nil:
		if p := a.view.Pick(a.atom, x, y); p != nil {
			a.held = p
			p.SetUserControlled(true)
			p.SetPositionAndDestination(a.view.Unproject(x, y))
		}
	case pressed:
		a.held.SetPositionAndDestination(a.view.Unproject(x, y))
	case a.held != nil:
		p := a.held
		a.held = nil
		p.SetUserControlled(false)
		if err := a.atom.Add(p); err != nil {
			log.Printf("drop %s: %v", p.Type(), err)
			a.release(p)
		}
	}
}
