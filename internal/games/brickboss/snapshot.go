package brickboss

import (
	"errors"
	"fmt"
)

// SavedBrick is the persisted state of one grid cell.
type SavedBrick struct {
	HP      int      `json:"hp"`
	Visible bool     `json:"visible"`
	Item    ItemKind `json:"item,omitempty"`
	Nerf    NerfKind `json:"nerf,omitempty"`
	Boss    bool     `json:"boss,omitempty"`
}

// SavedGame is the mid-game snapshot written from the pause screen.
// Bricks mirrors the stage grid; nil cells hold no brick.
type SavedGame struct {
	Score  int             `json:"score"`
	Lives  int             `json:"lives"`
	Stage  int             `json:"stage"`
	Bricks [][]*SavedBrick `json:"bricks"`
}

// ErrInvalidSave is returned when a snapshot cannot be resumed.
var ErrInvalidSave = errors.New("brickboss: invalid saved game")

// Snapshot returns the resumable state of the current stage.
func (g *Game) Snapshot() SavedGame {
	bricks := make([][]*SavedBrick, g.grid.Rows)
	for r, row := range g.grid.Cells {
		bricks[r] = make([]*SavedBrick, g.grid.Cols)
		for c, b := range row {
			if b == nil {
				continue
			}
			bricks[r][c] = &SavedBrick{
				HP:      b.HP,
				Visible: b.Visible,
				Item:    b.Item,
				Nerf:    b.Nerf,
				Boss:    b.Boss != nil,
			}
		}
	}
	return SavedGame{
		Score:  g.s.Score,
		Lives:  g.s.Lives,
		Stage:  g.s.Stage,
		Bricks: bricks,
	}
}

// Continue resumes a saved game. The stage geometry is rebuilt and the
// saved cell states are laid over it; cells that do not match the layout
// are ignored. Reset must have been called first.
func (g *Game) Continue(s SavedGame) error {
	if s.Stage < 1 || s.Stage > g.cfg.Gameplay.Stages {
		return fmt.Errorf("%w: stage %d", ErrInvalidSave, s.Stage)
	}
	if s.Lives < 1 {
		return fmt.Errorf("%w: lives %d", ErrInvalidSave, s.Lives)
	}
	if s.Score < 0 {
		return fmt.Errorf("%w: score %d", ErrInvalidSave, s.Score)
	}

	g.s = Session{Score: s.Score, Lives: s.Lives}
	g.frame = 0
	g.enterStage(s.Stage)

	var boss *Brick
	bossHP := 0
	for r, row := range g.grid.Cells {
		if r >= len(s.Bricks) {
			break
		}
		for c, b := range row {
			if b == nil || c >= len(s.Bricks[r]) || s.Bricks[r][c] == nil {
				continue
			}
			saved := s.Bricks[r][c]
			b.Visible = saved.Visible && saved.HP > 0
			b.HP = max(saved.HP, 0)
			if !b.Visible {
				b.HP = 0
			}
			b.MaxHP = max(b.MaxHP, b.HP)
			b.Item, b.Nerf = ItemNone, NerfNone
			switch {
			case saved.Nerf > NerfNone && saved.Nerf < nerfCount:
				b.Nerf = saved.Nerf
			case saved.Item > ItemNone && saved.Item < itemCount:
				b.Item = saved.Item
			}
			if saved.Boss && b.Visible {
				boss, bossHP = b, b.HP
			}
		}
	}

	if boss != nil {
		promote(boss, g.cfg.Boss(s.Stage), g.canvasW, g.rng)
		boss.HP = min(bossHP, boss.MaxHP)
		g.boss = boss
	}
	return nil
}
