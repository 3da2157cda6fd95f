package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/memory-tree/camera"
	"github.com/lixenwraith/memory-tree/engine"
	"github.com/lixenwraith/memory-tree/parameter"
	"github.com/lixenwraith/memory-tree/particle"
	"github.com/lixenwraith/memory-tree/progression"
	"github.com/lixenwraith/memory-tree/scene"
	"github.com/lixenwraith/memory-tree/status"
	"github.com/lixenwraith/memory-tree/vmath"
)

// Scene is the read side of the simulation the renderer draws
type Scene interface {
	AmbientPositions() []float32
	AmbientSizes() []float32
	BurstPositions() []float32
	SnowPositions() []float32
	State() progression.State
	Finale() particle.FinalePhase
	Holds() []scene.Hold
	Density() engine.Density
	BurstAlive() int
	Status() *status.Registry
}

const helpLine = " click hold | r reset | l density | c close | arrows rotate | +/- zoom | q quit "

// TerminalRenderer draws the scene into a tcell screen
// Row 0 is the status bar, the last row is the help line; the scene spans the full screen beneath them
type TerminalRenderer struct {
	screen tcell.Screen
	cam    *camera.Orbit
	mono   bool

	width  int
	height int

	// hits maps each cell to a hold index or -1, rebuilt every frame
	hits      []int
	holdDepth []float64
}

// NewTerminalRenderer creates a renderer bound to screen and cam
// mono draws everything in the default terminal colors
func NewTerminalRenderer(screen tcell.Screen, cam *camera.Orbit, mono bool) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		cam:    cam,
		mono:   mono,
	}
	w, h := screen.Size()
	r.Resize(w, h)
	return r
}

// Resize updates buffers and the camera viewport
func (r *TerminalRenderer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.width, r.height = width, height
	r.cam.SetViewport(width, height)
	r.hits = make([]int, width*height)
	r.holdDepth = make([]float64, width*height)
	for i := range r.hits {
		r.hits[i] = -1
	}
}

// HitTest returns the hold index drawn at or next to the cell, or -1
func (r *TerminalRenderer) HitTest(x, y int) int {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return -1
	}
	return r.hits[y*r.width+x]
}

// PointerNDC converts a cell to NDC for camera unprojection
func (r *TerminalRenderer) PointerNDC(x, y int) (float64, float64) {
	return r.cam.CellToNDC(x, y)
}

func (r *TerminalRenderer) style(fg, bg tcell.Color) tcell.Style {
	if r.mono {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(fg).Background(bg)
}

// RenderFrame draws one complete frame and shows it
func (r *TerminalRenderer) RenderFrame(s Scene) {
	if w, h := r.screen.Size(); w != r.width || h != r.height {
		r.Resize(w, h)
	}

	bg := r.style(RgbBackground, RgbBackground)
	r.screen.Fill(' ', bg)
	for i := range r.hits {
		r.hits[i] = -1
		r.holdDepth[i] = math.Inf(1)
	}

	state := s.State()
	phase := s.Finale()

	r.drawSnow(s.SnowPositions())
	r.drawAmbient(s.AmbientPositions(), s.AmbientSizes())
	r.drawBursts(s.BurstPositions())
	r.drawApex(state.IsFinished)
	r.drawHolds(s.Holds(), state)

	r.drawStatusBar(s, state, phase)
	r.drawHelp()
	if state.FinaleOpen {
		r.drawFinaleBanner()
	}

	r.screen.Show()
}

// project returns the cell for a world point or ok=false when off screen
func (r *TerminalRenderer) project(p vmath.Vec3F) (x, y int, depth float64, ok bool) {
	sx, sy, depth, visible := r.cam.Project(p)
	if !visible {
		return 0, 0, 0, false
	}
	x, y = int(math.Floor(sx)), int(math.Floor(sy))
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return 0, 0, 0, false
	}
	return x, y, depth, true
}

func (r *TerminalRenderer) drawSnow(buf []float32) {
	near := r.style(RgbSnow, RgbBackground)
	far := r.style(RgbSnowFar, RgbBackground)
	n := len(buf) / 3
	for i := 0; i < n; i++ {
		x, y, depth, ok := r.project(vmath.V3FAt(buf, i))
		if !ok {
			continue
		}
		if depth > parameter.CameraDistance {
			r.screen.SetContent(x, y, '.', nil, far)
		} else {
			r.screen.SetContent(x, y, '*', nil, near)
		}
	}
}

func (r *TerminalRenderer) drawAmbient(buf []float32, sizes []float32) {
	bright := r.style(RgbMote, RgbBackground)
	dim := r.style(RgbMoteDim, RgbBackground)
	n := len(buf) / 3
	for i := 0; i < n; i++ {
		x, y, _, ok := r.project(vmath.V3FAt(buf, i))
		if !ok {
			continue
		}
		if i < len(sizes) && sizes[i] > 0.6 {
			r.screen.SetContent(x, y, '•', nil, bright)
		} else {
			r.screen.SetContent(x, y, '·', nil, dim)
		}
	}
}

func (r *TerminalRenderer) drawBursts(buf []float32) {
	st := r.style(RgbBurst, RgbBackground)
	n := len(buf) / 3
	for i := 0; i < n; i++ {
		p := vmath.V3FAt(buf, i)
		if p.X >= parameter.BurstParkCoord {
			continue
		}
		x, y, _, ok := r.project(p)
		if !ok {
			continue
		}
		r.screen.SetContent(x, y, '+', nil, st)
	}
}

func (r *TerminalRenderer) drawApex(finished bool) {
	x, y, _, ok := r.project(scene.Apex())
	if !ok {
		return
	}
	st := r.style(RgbStarIdle, RgbBackground)
	if finished {
		st = r.style(RgbStar, RgbBackground).Bold(true)
	}
	r.screen.SetContent(x, y, '★', nil, st)
}

func holdGlyph(s scene.Shape) rune {
	switch s {
	case scene.ShapeSphere:
		return '●'
	case scene.ShapeDodecahedron:
		return '◆'
	default:
		return '■'
	}
}

// drawHolds draws nearest-first per cell and records hit cells
// Each hold also claims its left and right neighbors so a one-cell glyph is clickable
func (r *TerminalRenderer) drawHolds(holds []scene.Hold, state progression.State) {
	for i, h := range holds {
		x, y, depth, ok := r.project(h.Position)
		if !ok {
			continue
		}

		var st tcell.Style
		switch {
		case i < state.CurrentIndex:
			st = r.style(dimColor(HoldColor(h.Color), 0.6), RgbBackground)
		case i == state.CurrentIndex:
			st = r.style(HoldColor(h.Color), RgbBackground).Bold(true)
		default:
			st = r.style(RgbHoldLocked, RgbBackground)
		}

		for dx := -1; dx <= 1; dx++ {
			cx := x + dx
			if cx < 0 || cx >= r.width {
				continue
			}
			idx := y*r.width + cx
			if depth < r.holdDepth[idx] {
				r.holdDepth[idx] = depth
				r.hits[idx] = i
			}
		}
		if r.hits[y*r.width+x] == i {
			r.screen.SetContent(x, y, holdGlyph(h.Shape), nil, st)
		}
	}
}

func (r *TerminalRenderer) drawText(x, y int, text string, st tcell.Style) {
	for _, ch := range text {
		if x >= r.width {
			return
		}
		if x >= 0 {
			r.screen.SetContent(x, y, ch, nil, st)
		}
		x++
	}
}

func (r *TerminalRenderer) drawStatusBar(s Scene, state progression.State, phase particle.FinalePhase) {
	bar := r.style(RgbStatusBar, RgbStatusBg)
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, 0, ' ', nil, bar)
	}

	text := fmt.Sprintf(" Memory Tree  %d/%d  density:%s  sparks:%d", state.CurrentIndex, state.Total, s.Density(), s.BurstAlive())
	if phase != particle.FinaleNone {
		text += "  finale:" + phase.String()
	}
	if peers := s.Status().Ints.Get("network.peers").Load(); peers > 0 {
		text += fmt.Sprintf("  peers:%d", peers)
	}
	r.drawText(0, 0, text, bar)

	if state.LastAttemptIndex == nil || state.LastAttemptSucceeded == nil {
		return
	}
	mark := fmt.Sprintf(" hold %d ✗ ", *state.LastAttemptIndex+1)
	st := r.style(RgbAttemptBad, RgbStatusBg)
	if *state.LastAttemptSucceeded {
		mark = fmt.Sprintf(" hold %d ✓ ", *state.LastAttemptIndex+1)
		st = r.style(RgbAttemptOK, RgbStatusBg)
	}
	r.drawText(r.width-len([]rune(mark)), 0, mark, st)
}

func (r *TerminalRenderer) drawHelp() {
	if r.height < 2 {
		return
	}
	r.drawText(0, r.height-1, helpLine, r.style(RgbHelpText, RgbBackground))
}

func (r *TerminalRenderer) drawFinaleBanner() {
	lines := []string{
		"                               ",
		"   You reached the top star!   ",
		"   every memory collected      ",
		"          [c] close            ",
		"                               ",
	}
	st := r.style(RgbBannerText, RgbBannerBg).Bold(true)
	top := r.height/2 - len(lines)/2
	for i, line := range lines {
		left := (r.width - len([]rune(line))) / 2
		r.drawText(left, top+i, line, st)
	}
}
