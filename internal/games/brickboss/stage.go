package brickboss

import (
	"math/rand/v2"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
)

// BrickKind decides how much a brick hit is worth.
type BrickKind int

const (
	KindPlain BrickKind = iota
	KindNerf
	KindItem
)

// Score returns the points for one hit on a brick of this kind.
func (k BrickKind) Score() int {
	switch k {
	case KindNerf:
		return 15
	case KindItem:
		return 25
	default:
		return 10
	}
}

// Brick is one cell of the stage grid.
type Brick struct {
	Row, Col int
	X, Y     float64
	W, H     float64
	HP       int
	MaxHP    int
	Visible  bool
	Item     ItemKind
	Nerf     NerfKind
	Boss     *Boss
}

// Box returns the brick's bounding box.
func (b *Brick) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Kind returns the brick kind derived from its payload.
func (b *Brick) Kind() BrickKind {
	switch {
	case b.Nerf != NerfNone:
		return KindNerf
	case b.Item != ItemNone:
		return KindItem
	default:
		return KindPlain
	}
}

// Grid is the sparse brick field of a stage. Nil cells hold no brick.
type Grid struct {
	Rows, Cols int
	Cells      [][]*Brick
}

// Visible returns the visible bricks in row-major order.
func (g *Grid) Visible() []*Brick {
	var out []*Brick
	for _, row := range g.Cells {
		for _, b := range row {
			if b != nil && b.Visible {
				out = append(out, b)
			}
		}
	}
	return out
}

// VisibleCount returns the number of visible bricks.
func (g *Grid) VisibleCount() int {
	n := 0
	for _, row := range g.Cells {
		for _, b := range row {
			if b != nil && b.Visible {
				n++
			}
		}
	}
	return n
}

// TopRow returns the visible non-boss bricks of the topmost row that has any.
func (g *Grid) TopRow() []*Brick {
	for _, row := range g.Cells {
		var out []*Brick
		for _, b := range row {
			if b != nil && b.Visible && b.Boss == nil {
				out = append(out, b)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// ID returns a stable identity for a brick within its grid.
func (g *Grid) ID(b *Brick) int {
	return b.Row*g.Cols + b.Col
}

// StageGeometry holds the per-stage grid dimensions.
type StageGeometry struct {
	Rows, Cols  int
	Padding     float64
	BrickHeight float64
}

// GeometryFor returns the grid dimensions for stage n (1-based).
// Higher stages get more, smaller bricks.
func GeometryFor(n int) StageGeometry {
	return StageGeometry{
		Rows:        3 + n,
		Cols:        5 + n,
		Padding:     float64(12 - n),
		BrickHeight: float64(26 - 2*n),
	}
}

// LayoutMask decides whether a brick exists at (row, col).
type LayoutMask func(row, col, rows, cols int) bool

// maskFor returns the layout pattern for stage n.
func maskFor(n int) LayoutMask {
	switch (n - 1) % 6 {
	case 1:
		return rhombusMask
	case 2:
		return checkerMask
	case 3:
		return diamondDistanceMask
	case 4:
		return inverseCheckerMask
	case 5:
		return latticeMask
	default:
		return fullMask
	}
}

func fullMask(_, _, _, _ int) bool { return true }

func rhombusMask(row, col, rows, cols int) bool {
	cr := float64(rows-1) / 2
	cc := float64(cols-1) / 2
	dy := absF(float64(row)-cr) / max(cr, 1)
	dx := absF(float64(col)-cc) / max(cc, 1)
	return dx+dy <= 1
}

func checkerMask(row, col, _, _ int) bool { return (row+col)%2 == 0 }

func diamondDistanceMask(row, col, rows, cols int) bool {
	d := core.Abs(row-rows/2) + core.Abs(col-cols/2)
	return d%4 < 2
}

func inverseCheckerMask(row, col, _, _ int) bool { return (row+col)%2 == 1 }

func latticeMask(row, col, _, _ int) bool { return (row+2*col)%3 != 0 }

// BuildStage lays out and tags the brick grid for stage n.
func BuildStage(n int, canvasW float64, cfg config.BrickBossConfig, rng *rand.Rand) *Grid {
	geo := GeometryFor(n)
	mask := maskFor(n)
	side := cfg.Layout.OffsetSide
	brickW := (canvasW - 2*side - float64(geo.Cols-1)*geo.Padding) / float64(geo.Cols)

	grid := &Grid{Rows: geo.Rows, Cols: geo.Cols, Cells: make([][]*Brick, geo.Rows)}
	var valid []*Brick
	for r := range geo.Rows {
		grid.Cells[r] = make([]*Brick, geo.Cols)
		for c := range geo.Cols {
			if !mask(r, c, geo.Rows, geo.Cols) {
				continue
			}
			b := &Brick{
				Row:     r,
				Col:     c,
				X:       side + float64(c)*(brickW+geo.Padding),
				Y:       cfg.Layout.OffsetTop + float64(r)*(geo.BrickHeight+geo.Padding),
				W:       brickW,
				H:       geo.BrickHeight,
				HP:      1,
				MaxHP:   1,
				Visible: true,
			}
			grid.Cells[r][c] = b
			valid = append(valid, b)
		}
	}

	tagBricks(valid, n, cfg.Effects.MaxSpecialBricks, rng)
	return grid
}

// tagBricks assigns item, nerf and reinforced roles to a random subset of
// bricks. Roles are mutually exclusive.
func tagBricks(valid []*Brick, n, maxSpecial int, rng *rand.Rand) {
	order := make([]*Brick, len(valid))
	copy(order, valid)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	special := min(maxSpecial, len(order))
	nerfs := min(n, special/2)
	for i, b := range order[:special] {
		if i < nerfs {
			b.Nerf = NerfKind(1 + rng.IntN(int(nerfCount)-1))
		} else {
			b.Item = drawItem(rng)
		}
	}

	plain := order[special:]
	reinforced := min(n*n, len(plain))
	for _, b := range plain[:reinforced] {
		b.HP = 2 + rng.IntN(n/2+1)
		b.MaxHP = b.HP
	}
}

// drawItem picks an item payload uniformly, except that an ExtraLife draw
// is replaced half of the time by one of the other items.
func drawItem(rng *rand.Rand) ItemKind {
	others := int(itemCount) - 2
	k := ItemKind(1 + rng.IntN(int(itemCount)-1))
	if k == ItemExtraLife && rng.IntN(2) == 0 {
		k = ItemKind(2 + rng.IntN(others))
	}
	return k
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
