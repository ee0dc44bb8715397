package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/atom-builder/atom"
	"github.com/lixenwraith/atom-builder/particle"
	"github.com/lixenwraith/atom-builder/status"
	"github.com/lixenwraith/atom-builder/vmath"
)

// CellAspect compensates for terminal cells being roughly twice as tall as wide
const CellAspect = 0.5

// Glyphs
const (
	RuneProton     = '+'
	RuneNeutron    = 'o'
	RuneElectron   = '-'
	RuneShell      = '.'
	RuneEmptySlot  = ':'
	RuneAtomCenter = 'x'
)

var (
	styleDefault  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleProton   = styleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleNeutron  = styleDefault.Foreground(tcell.ColorGray)
	styleElectron = styleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)
	styleShell    = styleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleHUD      = styleDefault.Foreground(tcell.ColorYellow)
)

// AtomView draws an atom onto a tcell screen
// Origin is the world point at the screen center; Scale is columns per world unit
type AtomView struct {
	screen tcell.Screen
	Scale  float64
	Origin r2.Vec

	// Reset each frame from the screen size
	originX int
	originY int
}

// NewAtomView creates a view; scale <= 0 picks a default fitting a 130-unit shell in ~40 columns
func NewAtomView(screen tcell.Screen, scale float64) *AtomView {
	if scale <= 0 {
		scale = 0.3
	}
	v := &AtomView{screen: screen, Scale: scale}
	v.resetOrigin()
	return v
}

func (v *AtomView) resetOrigin() {
	w, h := v.screen.Size()
	v.originX = w / 2
	v.originY = h / 2
}

// Project maps a world point to a screen cell
func (v *AtomView) Project(world r2.Vec) (x, y int) {
	offset := world.Sub(v.Origin)
	x = v.originX + int(math.Round(offset.X*v.Scale))
	y = v.originY + int(math.Round(offset.Y*v.Scale*CellAspect))
	return x, y
}

// Unproject maps a screen cell back to a world point
func (v *AtomView) Unproject(x, y int) r2.Vec {
	return v.Origin.Add(r2.Vec{
		X: float64(x-v.originX) / v.Scale,
		Y: float64(y-v.originY) / (v.Scale * CellAspect),
	})
}

// RenderFrame clears the screen and draws shells, nucleus, electrons and the HUD
// loose particles are outside the atom and drawn last; reg may be nil
func (v *AtomView) RenderFrame(a *atom.Atom, loose []*particle.Particle, reg *status.Registry, help []string) {
	v.resetOrigin()
	v.screen.Clear()

	center := a.Center()
	cfg := a.Config()

	v.drawRing(center, cfg.InnerShellRadius)
	v.drawRing(center, cfg.OuterShellRadius)
	for _, s := range a.ShellSlots() {
		if !s.Occupied {
			v.set(s.Position, RuneEmptySlot, styleShell)
		}
	}
	if a.Weight() == 0 {
		v.set(center, RuneAtomCenter, styleShell)
	}

	for _, p := range DrawOrder(a.Nucleons()) {
		v.drawParticle(p)
	}
	for _, p := range a.Electrons() {
		v.drawParticle(p)
	}
	for _, p := range loose {
		v.drawParticle(p)
	}

	v.drawHUD(a, reg, help)
	v.screen.Show()
}

// DrawOrder sorts nucleons back to front: higher z-layers first so inner nucleons end on top
// Ties keep packing order
func DrawOrder(nucleons []*particle.Particle) []*particle.Particle {
	out := make([]*particle.Particle, len(nucleons))
	copy(out, nucleons)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZLayer() > out[j].ZLayer()
	})
	return out
}

// Glyph returns the rune and style for a particle type
func Glyph(t particle.Type) (rune, tcell.Style) {
	switch t {
	case particle.TypeProton:
		return RuneProton, styleProton
	case particle.TypeNeutron:
		return RuneNeutron, styleNeutron
	case particle.TypeElectron:
		return RuneElectron, styleElectron
	}
	return '?', styleDefault
}

func (v *AtomView) drawParticle(p *particle.Particle) {
	r, style := Glyph(p.Type())
	v.set(p.Position(), r, style)
}

// drawRing plots a circle with one sample per cell of circumference
func (v *AtomView) drawRing(center r2.Vec, radius float64) {
	steps := int(2 * math.Pi * radius * v.Scale)
	if steps < 8 {
		steps = 8
	}
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		v.set(center.Add(vmath.Polar(radius, angle)), RuneShell, styleShell)
	}
}

func (v *AtomView) drawHUD(a *atom.Atom, reg *status.Registry, help []string) {
	v.text(0, 0, fmt.Sprintf("protons %d  neutrons %d  electrons %d  charge %+d  weight %d",
		a.ProtonCount(), a.NeutronCount(), a.ElectronCount(), a.Charge(), a.Weight()), styleHUD)

	if reg != nil {
		row := 1
		for _, m := range reg.Snapshot() {
			v.text(0, row, fmt.Sprintf("%-20s %s", m.Key, m.Value), styleShell)
			row++
		}
	}

	_, h := v.screen.Size()
	for i, line := range help {
		v.text(0, h-len(help)+i, line, styleDefault)
	}
}

func (v *AtomView) set(world r2.Vec, r rune, style tcell.Style) {
	x, y := v.Project(world)
	w, h := v.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *AtomView) text(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Pick returns the atom member drawn at or beside cell (x, y), topmost first
func (v *AtomView) Pick(a *atom.Atom, x, y int) *particle.Particle {
	near := func(p *particle.Particle) bool {
		px, py := v.Project(p.Position())
		return abs(px-x) <= 1 && abs(py-y) <= 1
	}
	for _, p := range a.Electrons() {
		if near(p) {
			return p
		}
	}
	order := DrawOrder(a.Nucleons())
	for i := len(order) - 1; i >= 0; i-- {
		if near(order[i]) {
			return order[i]
		}
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
