package escape

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/shadow-escape/internal/core"
	"github.com/vovakirdan/shadow-escape/internal/games/escape/sim"
)

// Visual characters for rendering
const (
	PlayerChar   = '▲'
	ShadowChar   = '◆'
	CylinderChar = '█'
	SpottedChar  = '▒'
	EdgeChar     = '│'
	DividerChar  = '┊'
)

const (
	laneWidth  = 7
	trackWidth = sim.LaneCount*laneWidth + 4 // two edges and two dividers

	// visibleDepth is how many world units ahead of the player fit between
	// the player row and the top of the track.
	visibleDepth = 60.0

	minScreenW = trackWidth + 2
	minScreenH = 12
)

// trackLayout maps world coordinates onto screen cells for one frame.
type trackLayout struct {
	left      int // x of the left edge
	top       int // first track row
	bottom    int // last track row
	playerRow int
}

func newTrackLayout(w, h int) trackLayout {
	bottom := h - 2
	return trackLayout{
		left:      (w - trackWidth) / 2,
		top:       1,
		bottom:    bottom,
		playerRow: bottom - 2,
	}
}

func (l trackLayout) laneX(lane sim.Lane) int {
	return l.left + 1 + int(lane)*(laneWidth+1) + laneWidth/2
}

// offsetX places an eased lateral offset between lane centres.
func (l trackLayout) offsetX(offset float64) int {
	step := float64(laneWidth + 1)
	return l.laneX(sim.LaneCenter) + int(math.Round(offset/2*step))
}

// row returns the screen row for a distance dz ahead of the player.
func (l trackLayout) row(dz float64) int {
	rows := float64(l.playerRow - l.top)
	return l.playerRow - int(math.Round(dz/visibleDepth*rows))
}

func (l trackLayout) visible(y int) bool {
	return y >= l.top && y <= l.bottom
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawTextCentered(h/2, "terminal too small", core.ColorYellow)
		return
	}

	snap := g.snap
	l := newTrackLayout(w, h)

	g.drawTrack(dst, l, snap.Player.Z)
	for _, o := range snap.Obstacles {
		y := l.row(o.Z - snap.Player.Z)
		if !l.visible(y) {
			continue
		}
		drawObstacle(dst, l.laneX(o.Lane), y, o.Kind)
	}
	g.drawShadow(dst, l, snap)
	dst.SetColored(l.offsetX(snap.Player.RenderOffset), l.playerRow, PlayerChar, core.ColorBrightCyan)

	g.drawHUD(dst, snap)
	g.drawOverlay(dst, snap)
}

func (g *Game) drawTrack(dst *core.Screen, l trackLayout, playerZ float64) {
	right := l.left + trackWidth - 1
	rows := float64(l.playerRow - l.top)

	for y := l.top; y <= l.bottom; y++ {
		dst.SetColored(l.left, y, EdgeChar, core.ColorGray)
		dst.SetColored(right, y, EdgeChar, core.ColorGray)

		// Dashes scroll with the player's distance.
		z := playerZ + float64(l.playerRow-y)*visibleDepth/rows
		if int(math.Floor(z/2))%2 != 0 {
			continue
		}
		for i := 1; i < sim.LaneCount; i++ {
			x := l.left + i*(laneWidth+1)
			dst.SetColored(x, y, DividerChar, core.ColorDarkGray)
		}
	}
}

func drawObstacle(dst *core.Screen, x, y int, kind sim.Kind) {
	glyph, color := CylinderChar, core.ColorRed
	if kind == sim.KindSpotted {
		glyph, color = SpottedChar, core.ColorAmber
	}
	for dx := -1; dx <= 1; dx++ {
		dst.SetColored(x+dx, y, glyph, color)
	}
}

func (g *Game) drawShadow(dst *core.Screen, l trackLayout, snap sim.Snapshot) {
	dz := snap.Pursuer.Z - snap.Player.Z
	y := l.row(dz)
	if l.visible(y) && y != l.playerRow {
		dst.SetColored(l.offsetX(snap.Pursuer.RenderOffset), y, ShadowChar, core.ColorMagenta)
		return
	}
	if snap.Phase == sim.PhaseIdle {
		return
	}

	label := fmt.Sprintf("shadow %+.0fm", dz)
	dst.DrawTextColored(l.left+trackWidth+2, l.playerRow, label, core.ColorMagenta)
}

func (g *Game) drawHUD(dst *core.Screen, snap sim.Snapshot) {
	w := dst.Width()

	left := fmt.Sprintf(" %dm  x%.2f", snap.Score.Current, snap.SpeedMultiplier)
	dst.DrawTextColored(0, 0, left, core.ColorWhite)

	switch snap.Phase {
	case sim.PhaseCountdown:
		dst.DrawTextCentered(0, "GET READY", core.ColorYellow)
	case sim.PhaseChasing:
		dst.DrawTextCentered(0, "PURSUIT", core.ColorBrightRed)
	}

	hi := fmt.Sprintf("HI: %d ", snap.Score.High)
	dst.DrawTextColored(w-utf8.RuneCountInString(hi), 0, hi, core.ColorYellow)

	dst.DrawTextCentered(dst.Height()-1, "←/→ lane · P pause · Q quit", core.ColorGray)
}

func (g *Game) drawOverlay(dst *core.Screen, snap sim.Snapshot) {
	if g.paused {
		drawCard(dst, core.ColorYellow, "PAUSED", "", "P to resume")
		return
	}

	switch snap.Phase {
	case sim.PhaseIdle:
		drawCard(dst, core.ColorBrightCyan,
			"SHADOW ESCAPE",
			"",
			"SPACE to start",
			fmt.Sprintf("HI: %d", snap.Score.High),
		)
	case sim.PhaseCountdown:
		drawCard(dst, core.ColorYellow, fmt.Sprintf("%d", snap.CountdownSeconds()))
	case sim.PhaseLost:
		best := fmt.Sprintf("Best: %dm", snap.Score.High)
		if snap.Score.Current > 0 && snap.Score.Current >= snap.Score.High {
			best = "NEW BEST!"
		}
		drawCard(dst, core.ColorBrightRed,
			"CRASHED",
			"",
			fmt.Sprintf("Distance: %dm", snap.Score.Current),
			best,
			"",
			"SPACE retry · R menu",
		)
	}
}

// drawCard draws a centered box with one line of text per row.
func drawCard(dst *core.Screen, color core.Color, lines ...string) {
	width := 0
	for _, s := range lines {
		width = max(width, utf8.RuneCountInString(s))
	}
	r := core.CenteredRect(dst.Width(), dst.Height(), width+4, len(lines)+2)

	dst.DrawRect(r.Inset(1), ' ')
	dst.DrawBox(r, color)
	for i, s := range lines {
		x := r.X + (r.W-utf8.RuneCountInString(s))/2
		dst.DrawTextColored(x, r.Y+1+i, s, color)
	}
}
