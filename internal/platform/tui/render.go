package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDarkGray:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Track view constants. The view is top-down: lanes run up the screen
// and the player sits near the bottom.
const (
	hudRows      = 2
	laneCols     = 7   // Columns per lane
	unitsPerRow  = 1.5 // World units along Z per screen row
	playerMargin = 3   // Rows between the player and the bottom edge
	minViewW     = 36
	minViewH     = 14
)

// trackLayout maps world coordinates to screen cells.
type trackLayout struct {
	cx, left, right int
	top, bottom     int
	playerRow       int
	laneWidth       float64
}

func newTrackLayout(s *core.Screen, laneWidth float64) trackLayout {
	half := laneCols*config.LaneCount/2 + 1
	cx := s.Width() / 2
	return trackLayout{
		cx:        cx,
		left:      cx - half - 1,
		right:     cx + half + 1,
		top:       hudRows,
		bottom:    s.Height() - 1,
		playerRow: s.Height() - 1 - playerMargin,
		laneWidth: laneWidth,
	}
}

func (l trackLayout) col(x float64) int {
	return l.cx + int(math.Round(x/l.laneWidth*laneCols))
}

func (l trackLayout) row(dz float64) int {
	return l.playerRow - int(math.Round(dz/unitsPerRow))
}

func (l trackLayout) zAt(row int, playerZ float64) float64 {
	return playerZ + float64(l.playerRow-row)*unitsPerRow
}

func (l trackLayout) visible(row int) bool {
	return row >= l.top && row <= l.bottom
}

// drawWorld renders a snapshot into the screen buffer.
func drawWorld(s *core.Screen, snap runner.Snapshot, settings config.RunSettings, feed *eventFeed, paused bool) {
	s.Clear()
	if s.Width() < minViewW || s.Height() < minViewH {
		s.DrawTextCentered(s.Height()/2, "terminal too small")
		return
	}

	l := newTrackLayout(s, settings.Player.LaneWidth)
	pz := snap.Player.Pos.Z

	drawSkyline(s, l, snap.Chunks, pz, settings.Track.Skyline.MaxHeight)
	drawRoad(s, l, pz)
	for _, e := range snap.Entities {
		drawEntity(s, l, e, pz)
	}
	drawPlayer(s, l, snap)
	drawHUD(s, snap, feed)

	switch {
	case snap.Phase == runner.PhaseMenu:
		drawPanel(s, []string{"L A N E   R U N N E R", "", "enter / space to run", "esc to leave"})
	case snap.Phase == runner.PhaseGameOver:
		lines := []string{"G A M E   O V E R", "", fmt.Sprintf("score %d", snap.Score.Current)}
		if snap.Score.Current > 0 && snap.Score.Current >= snap.Score.High {
			lines = append(lines, "new high score!")
		}
		lines = append(lines, "", "r to restart  esc for menu")
		drawPanel(s, lines)
	case paused:
		drawPanel(s, []string{"P A U S E D", "", "p to resume"})
	}
}

func drawRoad(s *core.Screen, l trackLayout, pz float64) {
	s.DrawVLine(l.left, l.top, l.bottom-l.top+1, '│', core.ColorGray)
	s.DrawVLine(l.right, l.top, l.bottom-l.top+1, '│', core.ColorGray)

	dividers := []int{l.col(-l.laneWidth / 2), l.col(l.laneWidth / 2)}
	for row := l.top; row <= l.bottom; row++ {
		// Dashes scroll with the world so speed is visible.
		if stripe := int(math.Floor(l.zAt(row, pz) / 2)); stripe%2 == 0 {
			for _, x := range dividers {
				s.SetColored(x, row, '┆', core.ColorDarkGray)
			}
		}
	}
}

func drawSkyline(s *core.Screen, l trackLayout, chunks []runner.Chunk, pz, maxHeight float64) {
	if maxHeight <= 0 {
		return
	}
	leftSpace := l.left - 1
	rightSpace := s.Width() - l.right - 2

	for _, c := range chunks {
		for _, b := range c.Skyline {
			first, last := l.row(b.Z+b.Width-pz), l.row(b.Z-pz)
			cols := func(space int) int {
				return 1 + int(b.Height/maxHeight*float64(max(space-1, 0)))
			}
			glyph, color := buildingStyle(b.Height / maxHeight)
			for row := first; row <= last; row++ {
				if !l.visible(row) {
					continue
				}
				if b.Side < 0 {
					for i, n := 0, cols(leftSpace); i < n; i++ {
						s.SetColored(l.left-2-i, row, glyph, color)
					}
				} else {
					for i, n := 0, cols(rightSpace); i < n; i++ {
						s.SetColored(l.right+2+i, row, glyph, color)
					}
				}
			}
		}
	}
}

func buildingStyle(level float64) (rune, core.Color) {
	switch {
	case level > 0.75:
		return '▓', core.ColorBlue
	case level > 0.4:
		return '▒', core.ColorGray
	default:
		return '░', core.ColorDarkGray
	}
}

func drawEntity(s *core.Screen, l trackLayout, e runner.Entity, pz float64) {
	dz := e.Pos.Z - pz
	x := l.col(e.Pos.X)

	switch e.Tag {
	case runner.TagObstacle:
		glyph, color := obstacleStyle(e.Obstacle)
		if !e.ColliderEnabled {
			color = core.ColorDarkGray
		}
		halfW := int(e.Size.X / l.laneWidth * laneCols / 2)
		for row := l.row(dz + e.Size.Z/2); row <= l.row(dz-e.Size.Z/2); row++ {
			if !l.visible(row) {
				continue
			}
			for c := x - halfW; c <= x+halfW; c++ {
				s.SetColored(c, row, glyph, color)
			}
		}
	case runner.TagEnemy:
		if row := l.row(dz); l.visible(row) {
			glyph, color := '&', core.ColorMagenta
			if e.Enemy == runner.EnemyAir {
				glyph, color = 'v', core.ColorBrightMagenta
			}
			s.SetColored(x, row, glyph, color)
		}
	case runner.TagCoin:
		if row := l.row(dz); l.visible(row) {
			s.SetColored(x, row, 'o', core.ColorBrightYellow)
		}
	case runner.TagPowerUp:
		if row := l.row(dz); l.visible(row) {
			s.SetColored(x, row, e.PowerUp.Glyph(), core.ColorBrightGreen)
		}
	}
}

func obstacleStyle(t runner.ObstacleType) (rune, core.Color) {
	switch t {
	case runner.ObstacleJumpOver:
		return '=', core.ColorYellow
	case runner.ObstacleSlideUnder:
		return '~', core.ColorCyan
	default:
		return '#', core.ColorRed
	}
}

func drawPlayer(s *core.Screen, l trackLayout, snap runner.Snapshot) {
	p := snap.Player
	glyph := '@'
	switch {
	case p.Dead:
		glyph = 'X'
	case p.Sliding:
		glyph = '_'
	case !p.Grounded:
		glyph = '^'
	}

	color := core.ColorBrightWhite
	switch {
	case p.Dead:
		color = core.ColorBrightRed
	case p.Invincible && snap.Tick%10 < 5:
		color = core.ColorGray
	case snap.Shield:
		color = core.ColorBrightCyan
	}
	s.SetColored(l.col(p.Pos.X), l.playerRow, glyph, color)
}

func drawHUD(s *core.Screen, snap runner.Snapshot, feed *eventFeed) {
	stats := fmt.Sprintf("SCORE %d  HI %d  DIST %dm  SPEED %.1f  COINS %d",
		snap.Score.Current, snap.Score.High, int(snap.Distance), snap.EffectiveSpeed, snap.Score.Coins)
	s.DrawTextColored(1, 0, stats, core.ColorBrightWhite)

	x := 1
	if snap.Shield {
		s.DrawTextColored(x, 1, "SHIELD", core.ColorBrightCyan)
		x += len("SHIELD") + 2
	}
	for _, fx := range snap.Effects {
		text := fmt.Sprintf("%s %.1fs", strings.ToUpper(fx.Kind.String()), fx.Remaining)
		s.DrawTextColored(x, 1, text, core.ColorBrightGreen)
		x += len(text) + 2
	}

	if msg, color, ok := feed.current(); ok {
		s.DrawTextColored(s.Width()-len(msg)-1, 1, msg, color)
	}
}

func drawPanel(s *core.Screen, lines []string) {
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	r := core.NewRect((s.Width()-width-6)/2, (s.Height()-len(lines)-2)/2, width+6, len(lines)+2)
	s.DrawRect(r, ' ', core.ColorDefault)
	s.DrawBox(r)
	for i, line := range lines {
		s.DrawTextCentered(r.Y+1+i, line)
	}
}
