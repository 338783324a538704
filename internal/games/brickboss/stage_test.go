package brickboss

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/brick-arcade/internal/config"
)

func TestGeometryFor(t *testing.T) {
	tests := []struct {
		stage  int
		rows   int
		cols   int
		pad    float64
		height float64
	}{
		{1, 4, 6, 11, 24},
		{3, 6, 8, 9, 20},
		{6, 9, 11, 6, 14},
	}

	for _, tt := range tests {
		geo := GeometryFor(tt.stage)
		if geo.Rows != tt.rows || geo.Cols != tt.cols || geo.Padding != tt.pad || geo.BrickHeight != tt.height {
			t.Errorf("GeometryFor(%d) = %+v", tt.stage, geo)
		}
	}
}

func TestBuildStageTagging(t *testing.T) {
	cfg := config.DefaultBrickBossConfig()

	for stage := 1; stage <= 6; stage++ {
		rng := rand.New(rand.NewPCG(uint64(stage), 99))
		grid := BuildStage(stage, 800, cfg, rng)
		geo := GeometryFor(stage)

		if grid.Rows != geo.Rows || grid.Cols != geo.Cols {
			t.Fatalf("stage %d: grid %dx%d, expected %dx%d", stage, grid.Rows, grid.Cols, geo.Rows, geo.Cols)
		}

		valid, items, nerfs, reinforced := 0, 0, 0, 0
		mask := maskFor(stage)
		for r, row := range grid.Cells {
			for c, b := range row {
				if want := mask(r, c, geo.Rows, geo.Cols); want != (b != nil) {
					t.Errorf("stage %d: cell (%d,%d) presence %v, mask %v", stage, r, c, b != nil, want)
				}
				if b == nil {
					continue
				}
				valid++
				if !b.Visible {
					t.Errorf("stage %d: new brick not visible", stage)
				}
				if b.Item != ItemNone {
					items++
				}
				if b.Nerf != NerfNone {
					nerfs++
				}
				if b.HP > 1 {
					reinforced++
					if b.Item != ItemNone || b.Nerf != NerfNone {
						t.Errorf("stage %d: reinforced brick carries a payload", stage)
					}
					if b.HP < 2 || b.HP > 2+stage/2 {
						t.Errorf("stage %d: reinforced hp %d out of [2,%d]", stage, b.HP, 2+stage/2)
					}
				}
				if b.Item != ItemNone && b.Nerf != NerfNone {
					t.Errorf("stage %d: brick is both item and nerf", stage)
				}
				if b.X < 0 || b.X+b.W > 800+1e-9 {
					t.Errorf("stage %d: brick outside canvas: x=%v w=%v", stage, b.X, b.W)
				}
			}
		}

		special := min(cfg.Effects.MaxSpecialBricks, valid)
		if items+nerfs != special {
			t.Errorf("stage %d: %d special bricks, expected %d", stage, items+nerfs, special)
		}
		if want := min(stage, special/2); nerfs != want {
			t.Errorf("stage %d: %d nerf bricks, expected %d", stage, nerfs, want)
		}
		if want := min(stage*stage, valid-special); reinforced != want {
			t.Errorf("stage %d: %d reinforced bricks, expected %d", stage, reinforced, want)
		}
	}
}

func TestBuildStageSeeded(t *testing.T) {
	cfg := config.DefaultBrickBossConfig()
	a := BuildStage(4, 800, cfg, rand.New(rand.NewPCG(5, 5)))
	b := BuildStage(4, 800, cfg, rand.New(rand.NewPCG(5, 5)))

	for r := range a.Cells {
		for c := range a.Cells[r] {
			x, y := a.Cells[r][c], b.Cells[r][c]
			if (x == nil) != (y == nil) {
				t.Fatalf("cell (%d,%d) presence differs", r, c)
			}
			if x != nil && (x.HP != y.HP || x.Item != y.Item || x.Nerf != y.Nerf) {
				t.Errorf("cell (%d,%d) differs: %+v vs %+v", r, c, x, y)
			}
		}
	}
}

func TestLayoutMasksDiffer(t *testing.T) {
	seen := map[string]int{}
	for stage := 1; stage <= 6; stage++ {
		geo := GeometryFor(stage)
		mask := maskFor(stage)
		key := ""
		count := 0
		for r := range 4 {
			for c := range 6 {
				if mask(r, c, geo.Rows, geo.Cols) {
					key += "#"
					count++
				} else {
					key += "."
				}
			}
		}
		if count == 0 {
			t.Errorf("stage %d layout has no bricks in the top-left corner", stage)
		}
		if prev, ok := seen[key]; ok {
			t.Errorf("stage %d layout repeats stage %d", stage, prev)
		}
		seen[key] = stage
	}
}

func TestDrawItemHalvesExtraLife(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const n = 160000
	counts := map[ItemKind]int{}
	for range n {
		counts[drawItem(rng)]++
	}

	if counts[ItemNone] != 0 {
		t.Error("drawItem must never return ItemNone")
	}
	lifeShare := float64(counts[ItemExtraLife]) / n
	if math.Abs(lifeShare-1.0/16) > 0.005 {
		t.Errorf("extra life share = %.4f, expected about %.4f", lifeShare, 1.0/16)
	}
	other := (1 - 1.0/16) / 7
	for k := ItemScore100; k < itemCount; k++ {
		share := float64(counts[k]) / n
		if math.Abs(share-other) > 0.01 {
			t.Errorf("%s share = %.4f, expected about %.4f", k, share, other)
		}
	}
}

func TestBossNerfWeights(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	const n = 70000
	counts := map[NerfKind]int{}
	for range n {
		counts[drawBossNerf(rng)]++
	}

	freeze := float64(counts[NerfPaddleFreeze]) / n
	if math.Abs(freeze-1.0/7) > 0.01 {
		t.Errorf("freeze share = %.4f, expected about %.4f", freeze, 1.0/7)
	}
	for _, k := range []NerfKind{NerfPaddleSlow, NerfPaddleShrink, NerfBallFast} {
		share := float64(counts[k]) / n
		if math.Abs(share-2.0/7) > 0.01 {
			t.Errorf("%s share = %.4f, expected about %.4f", k, share, 2.0/7)
		}
	}
}

func TestBrickKindScore(t *testing.T) {
	if KindPlain.Score() != 10 || KindNerf.Score() != 15 || KindItem.Score() != 25 {
		t.Error("unexpected brick kind scores")
	}
}

func TestTopRowSkipsEmptyRows(t *testing.T) {
	hidden := &Brick{Row: 0, Col: 0, HP: 0}
	a := &Brick{Row: 1, Col: 0, HP: 1, Visible: true}
	b := &Brick{Row: 1, Col: 1, HP: 2, Visible: true}
	grid := &Grid{Rows: 2, Cols: 2, Cells: [][]*Brick{{hidden, nil}, {a, b}}}

	row := grid.TopRow()
	if len(row) != 2 || row[0] != a || row[1] != b {
		t.Errorf("TopRow() = %v, expected second row", row)
	}
	if grid.ID(b) != 3 {
		t.Errorf("ID = %d, expected 3", grid.ID(b))
	}
}
