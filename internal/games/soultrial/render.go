package soultrial

import (
	"fmt"

	"github.com/vovakirdan/brick-arcade/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar = '@'
	WallChar   = '#'
	FloorChar  = '·'
	SoulChar   = '♥'
	ShotChar   = '•'
)

// Render draws the current game state to the screen. It does not mutate the game.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH))
		return
	}

	switch g.state {
	case StateTitle:
		drawCenteredBox(dst, "SOUL TRIAL", "Press Z or ENTER to begin")
		return
	case StateBattle:
		g.renderHUD(dst)
		g.renderBattle(dst)
	default:
		g.renderHUD(dst)
		g.renderRoom(dst)
	}

	switch {
	case g.state == StateDialog:
		g.renderDialog(dst)
	case g.state == StateGameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to retry", g.Score()))
	case g.state == StateWin:
		drawCenteredBox(dst, "EVERYONE IS SPARED", fmt.Sprintf("Final Score: %d  |  Press R to play again", g.Score()))
	case g.paused:
		drawCenteredBox(dst, "PAUSED", "P/O resume  Q quit")
	}
}

// renderHUD draws hp, progress and score.
func (g *Game) renderHUD(dst *core.Screen) {
	color := core.ColorBrightYellow
	if g.hp*4 <= g.cfg.Player.MaxHP {
		color = core.ColorBrightRed
	}
	dst.DrawTextColored(1, 0, fmt.Sprintf("HP %d/%d", g.hp, g.cfg.Player.MaxHP), color)
	total, spared := g.room.Hostiles()
	dst.DrawTextCentered(0, fmt.Sprintf("Spared: %d/%d", spared, total))
	score := fmt.Sprintf("Score: %d", g.Score())
	dst.DrawText(dst.Width()-len(score)-1, 0, score)
}

// roomOrigin returns the screen cell of tile (0, 0), centering the room.
func (g *Game) roomOrigin(dst *core.Screen) (int, int) {
	x := (dst.Width() - g.room.Width()) / 2
	y := 1 + (dst.Height()-1-g.room.Height())/2
	return max(x, 0), max(y, 1)
}

// renderRoom draws the tile map, the NPCs and the player.
func (g *Game) renderRoom(dst *core.Screen) {
	ox, oy := g.roomOrigin(dst)
	for y, row := range g.room.Tiles {
		for x, t := range row {
			if t == TileWall {
				dst.SetColored(ox+x, oy+y, WallChar, core.ColorGray)
			} else {
				dst.SetColored(ox+x, oy+y, FloorChar, core.ColorBlue)
			}
		}
	}
	for _, n := range g.room.NPCs {
		dst.SetColored(ox+n.X, oy+n.Y, n.Glyph(), npcColor(n))
	}
	x, y := g.PlayerCell()
	dst.SetColored(ox+x, oy+y, PlayerChar, core.ColorBrightWhite)
}

func npcColor(n *NPC) core.Color {
	switch {
	case !n.Hostile:
		return core.ColorBrightYellow
	case n.Spared:
		return core.ColorBrightGreen
	default:
		return core.ColorBrightRed
	}
}

// renderDialog draws the current line in a box along the bottom edge.
func (g *Game) renderDialog(dst *core.Screen) {
	lines := g.talking.dialogue()
	if g.line >= len(lines) {
		return
	}
	r := core.NewRect(1, dst.Height()-5, dst.Width()-2, 5)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	dst.DrawTextColored(r.X+2, r.Y, " "+g.talking.Name+" ", npcColor(g.talking))
	dst.DrawText(r.X+2, r.Y+2, lines[g.line])
	hint := "[Z] next"
	dst.DrawTextColored(r.Right()-len(hint)-2, r.Bottom()-1, hint, core.ColorGray)
}

// battleViewport maps the bullet box into screen cells below the HUD.
func (g *Game) battleViewport(dst *core.Screen) core.Viewport {
	w := min(dst.Width()-4, 48)
	h := min(dst.Height()-6, 14)
	x := (dst.Width() - w) / 2
	y := 3 + (dst.Height()-4-h)/2
	return core.Viewport{
		Origin: core.NewRect(x, y, w, h),
		WorldW: g.battle.W,
		WorldH: g.battle.H,
	}
}

// renderBattle draws the bullet box, the shots and the soul.
func (g *Game) renderBattle(dst *core.Screen) {
	b := g.battle
	vp := g.battleViewport(dst)
	o := vp.Origin
	dst.DrawBox(core.NewRect(o.X-1, o.Y-1, o.W+2, o.H+2))

	left := max(0, int((b.Duration-b.Elapsed+59)/60))
	dst.DrawTextCentered(o.Y-2, fmt.Sprintf("%s attacks! (%s)  %ds", b.Enemy.Name, b.Pattern, left))

	for _, s := range b.Shots {
		if s.X < 0 || s.X >= b.W || s.Y < 0 || s.Y >= b.H {
			continue
		}
		dst.SetColored(vp.CellX(s.X), vp.CellY(s.Y), ShotChar, core.ColorBrightWhite)
	}

	color := core.ColorBrightRed
	if b.Invulnerable() {
		color = core.ColorGray
	}
	dst.SetColored(vp.CellX(b.SoulX), vp.CellY(b.SoulY), SoulChar, color)
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}
