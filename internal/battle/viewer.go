package battle

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// --- Viewer layout constants ---

const (
	viewerWidth  = 960
	viewerHeight = 540

	roundInterval = 45 // ticks between auto-played rounds (~0.75s at 60TPS)
	logPanelRows  = 18
	panelPad      = 12
	barWidth      = 360
	barHeight     = 14
	rowHeight     = 44
)

// Viewer is the interactive ebiten front-end for a single battle. It steps
// the engine one round at a time and renders both benches, HP bars and the
// scrolling turn log.
//
// Keys: space pauses/resumes, N steps one round while paused, R copies the
// full battle report to the clipboard.
type Viewer struct {
	engine *Engine
	done   bool
	runErr error

	paused    bool
	tick      int
	copied    int // ticks remaining on the "copied" notice
	lastError string
}

// NewViewer wraps a prepared engine.
func NewViewer(engine *Engine) *Viewer {
	engine.Start()
	return &Viewer{engine: engine}
}

// Update advances the battle clock. One round plays every roundInterval
// ticks unless paused.
func (v *Viewer) Update() error {
	v.tick++
	if v.copied > 0 {
		v.copied--
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	step := inpututil.IsKeyJustPressed(ebiten.KeyN) && v.paused
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		report := FormatBattleReport(v.engine.Result())
		if err := clipboard.WriteAll(report); err != nil {
			v.lastError = fmt.Sprintf("clipboard: %v", err)
		} else {
			v.copied = 90
		}
	}

	if v.done {
		return nil
	}
	if step || (!v.paused && v.tick%roundInterval == 0) {
		done, err := v.engine.StepRound()
		if err != nil {
			v.runErr = err
			v.lastError = err.Error()
			v.done = true
			return nil
		}
		v.done = done
	}
	return nil
}

// Draw renders the two team panels and the log tail.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 26, B: 30, A: 255})
	res := v.engine.Result()

	v.drawTeam(screen, "A", res.TeamA, panelPad, panelPad)
	v.drawTeam(screen, "B", res.TeamB, viewerWidth/2+panelPad, panelPad)
	v.drawLog(screen)
	v.drawStatus(screen, res)
}

func (v *Viewer) drawTeam(screen *ebiten.Image, side string, team []CombatantResult, x, y int) {
	active := ""
	if side == "A" {
		active = v.activeLabel(SideA)
	} else {
		active = v.activeLabel(SideB)
	}
	ebitenutil.DebugPrintAt(screen, "TEAM "+side, x, y)
	y += 18

	for _, c := range team {
		name := fmt.Sprintf("%-4s %-12s L%d", c.Label, c.Species, c.Level)
		if c.Label == active {
			name = "> " + name
		} else {
			name = "  " + name
		}
		if c.Fainted {
			name += "  (fainted)"
		}
		ebitenutil.DebugPrintAt(screen, name, x, y)

		// HP bar: background, fill, outline.
		bx, by := float32(x+8), float32(y+18)
		frac := float32(0)
		if c.MaxHP > 0 {
			frac = float32(c.HP) / float32(c.MaxHP)
		}
		vector.FillRect(screen, bx, by, barWidth, barHeight, color.RGBA{R: 48, G: 48, B: 52, A: 255}, false)
		vector.FillRect(screen, bx, by, barWidth*frac, barHeight, hpColor(frac), false)
		vector.StrokeRect(screen, bx, by, barWidth, barHeight, 1, color.RGBA{R: 90, G: 90, B: 96, A: 255}, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d/%d", c.HP, c.MaxHP), x+8+barWidth+6, y+16)

		y += rowHeight
	}
}

func hpColor(frac float32) color.RGBA {
	switch {
	case frac > 0.5:
		return color.RGBA{R: 90, G: 200, B: 110, A: 255}
	case frac > 0.2:
		return color.RGBA{R: 230, G: 190, B: 60, A: 255}
	default:
		return color.RGBA{R: 220, G: 80, B: 70, A: 255}
	}
}

func (v *Viewer) drawLog(screen *ebiten.Image) {
	top := viewerHeight - logPanelRows*16 - panelPad - 20
	vector.StrokeLine(screen, 0, float32(top-4), viewerWidth, float32(top-4), 1,
		color.RGBA{R: 90, G: 90, B: 96, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "TURN LOG", panelPad, top-20)

	entries := v.engine.Log().Entries()
	start := 0
	if len(entries) > logPanelRows {
		start = len(entries) - logPanelRows
	}
	for i, e := range entries[start:] {
		ebitenutil.DebugPrintAt(screen, e.String(), panelPad, top+i*16)
	}
}

func (v *Viewer) drawStatus(screen *ebiten.Image, res *BattleResult) {
	status := fmt.Sprintf("round %d  [space] pause  [N] step  [R] copy report", v.engine.Round())
	if v.paused {
		status = "PAUSED  " + status
	}
	if v.done {
		status = fmt.Sprintf("FINISHED: %s  ", res.Outcome) + status
	}
	if v.copied > 0 {
		status += "  [report copied]"
	}
	if v.lastError != "" {
		status += "  ! " + v.lastError
	}
	ebitenutil.DebugPrintAt(screen, status, panelPad, viewerHeight-18)
}

// Layout reports the fixed logical screen size.
func (v *Viewer) Layout(_, _ int) (int, int) {
	return viewerWidth, viewerHeight
}

// activeLabel returns the label of a side's active combatant, or "".
func (v *Viewer) activeLabel(side Side) string {
	t := v.engine.teamA
	if side == SideB {
		t = v.engine.teamB
	}
	if a := t.Active(); a != nil {
		return a.label
	}
	return ""
}
