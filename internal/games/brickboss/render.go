package brickboss

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/brick-arcade/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar      = '='
	FrozenPaddle    = '≡'
	BallChar        = '●'
	BulletChar      = '|'
	BossShotChar    = '*'
	SolidBrickGlyph = '█'
	HardBrickGlyph  = '▓'
	ShieldGlyph     = '░'
	GraceGlyph      = '▒'
)

// rowColors cycles through plain brick rows.
var rowColors = []core.Color{
	core.ColorBlue,
	core.ColorCyan,
	core.ColorGreen,
	core.ColorBrightBlue,
	core.ColorBrightCyan,
	core.ColorBrightGreen,
}

// Render draws the current game state to the screen. It does not mutate the game.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)

	frame := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	dst.DrawBox(frame)
	if fx := g.effectsString(); fx != "" {
		dst.DrawTextColored(2, 1, " "+fx+" ", core.ColorBrightYellow)
	}

	vp := core.Viewport{
		Origin: core.NewRect(1, 2, frame.W-2, frame.H-2),
		WorldW: g.canvasW,
		WorldH: g.canvasH,
	}

	if g.s.State == StateStart {
		g.drawCenteredBox(dst, "BRICK BOSS", "Press ENTER or SPACE to start")
		return
	}

	g.renderBricks(dst, vp)
	g.renderProjectiles(dst, vp)
	g.renderPaddle(dst, vp)
	g.renderBalls(dst, vp)
	g.renderOverlay(dst)
}

// renderHUD draws the score, lives and stage indicator.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.s.Score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", g.s.Lives))
	stage := fmt.Sprintf("Stage: %d/%d", g.s.Stage, g.cfg.Gameplay.Stages)
	dst.DrawText(dst.Width()-len(stage)-1, 0, stage)
}

// effectsString lists active effects with their remaining seconds.
func (g *Game) effectsString() string {
	if g.effects.Len() == 0 {
		return ""
	}
	list := g.effects.List()
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, fmt.Sprintf("%s(%d)", e.Effect, (e.Remaining+59)/60))
	}
	return strings.Join(parts, " ")
}

// renderBricks draws all visible bricks; the boss gets its hp on top.
func (g *Game) renderBricks(dst *core.Screen, vp core.Viewport) {
	for _, b := range g.grid.Visible() {
		glyph, color := brickLook(b)
		r := vp.CellRect(b.Box())
		dst.DrawRectColored(r, glyph, color)

		if b.Boss != nil {
			label := fmt.Sprintf("%d", b.HP)
			cx, cy := r.Center()
			dst.DrawTextColored(cx-len(label)/2, cy, label, core.ColorBrightWhite)
		}
	}
}

// brickLook returns the glyph and color for a brick.
func brickLook(b *Brick) (rune, core.Color) {
	if b.Boss != nil {
		switch b.Boss.Phase() {
		case PhaseInvincible:
			return ShieldGlyph, core.ColorGray
		case PhasePostHitGrace:
			return GraceGlyph, core.ColorMagenta
		}
		if b.Boss.Enraged(b.HP) {
			return SolidBrickGlyph, core.ColorBrightRed
		}
		return SolidBrickGlyph, core.ColorBrightMagenta
	}
	switch b.Kind() {
	case KindItem:
		return SolidBrickGlyph, core.ColorYellow
	case KindNerf:
		return SolidBrickGlyph, core.ColorRed
	}
	if b.HP > 1 {
		return HardBrickGlyph, core.ColorOrange
	}
	return SolidBrickGlyph, rowColors[b.Row%len(rowColors)]
}

// renderProjectiles draws pickups, bullets and boss shots.
func (g *Game) renderProjectiles(dst *core.Screen, vp core.Viewport) {
	for _, p := range g.pickups {
		color := core.ColorBrightGreen
		if p.Nerf != NerfNone {
			color = core.ColorBrightRed
		}
		dst.SetColored(vp.CellX(p.X), vp.CellY(p.Y), p.Glyph(), color)
	}
	for _, b := range g.bullets {
		dst.SetColored(vp.CellX(b.X), vp.CellY(b.Y), BulletChar, core.ColorBrightYellow)
	}
	for _, s := range g.bossShots {
		dst.SetColored(vp.CellX(s.X), vp.CellY(s.Y), BossShotChar, core.ColorBrightRed)
	}
}

// renderPaddle draws the player's paddle.
func (g *Game) renderPaddle(dst *core.Screen, vp core.Viewport) {
	r := vp.CellRect(g.paddle.Box())
	r.H = 1
	glyph, color := rune(PaddleChar), core.ColorBrightCyan
	if g.effects.Has(EffectPaddleFreeze) {
		glyph, color = FrozenPaddle, core.ColorBrightWhite
	}
	dst.DrawRectColored(r, glyph, color)
}

// renderBalls draws all balls.
func (g *Game) renderBalls(dst *core.Screen, vp core.Viewport) {
	for _, b := range g.balls {
		dst.SetColored(vp.CellX(b.X), vp.CellY(b.Y), BallChar, core.ColorBrightWhite)
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.s.State {
	case StatePlaying:
		switch {
		case g.s.overlayActive():
			g.drawCenteredBox(dst, g.s.Overlay, "Get ready...")
		case !g.s.Launched && g.s.ServeDelay > 0:
			dst.DrawTextCentered(dst.Height()-1, " Get ready... ")
		case !g.s.Launched:
			dst.DrawTextCentered(dst.Height()-1, " Press SPACE or click to launch ")
		}

	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "P/O resume  S save  Q quit")

	case StateStageClear:
		g.drawCenteredBox(dst, g.s.Overlay, fmt.Sprintf("Score: %d", g.s.Score))

	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.s.Score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case StateWin:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", g.s.Score)
		g.drawCenteredBox(dst, "YOU WIN!", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}
