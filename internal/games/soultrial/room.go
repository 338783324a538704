package soultrial

import "math"

// Tile is one cell of the overworld map.
type Tile byte

const (
	TileFloor Tile = '.'
	TileWall  Tile = '#'
)

// Dir is a facing direction on the tile grid.
type Dir struct {
	DX, DY int
}

var (
	DirUp    = Dir{0, -1}
	DirDown  = Dir{0, 1}
	DirLeft  = Dir{-1, 0}
	DirRight = Dir{1, 0}
)

// NPC is a character standing on a tile.
// Hostile NPCs start a battle after their dialogue until spared.
type NPC struct {
	Name        string
	X, Y        int
	Hostile     bool
	Pattern     Pattern
	Lines       []string
	SparedLines []string
	Spared      bool
}

// Glyph returns the map character for the NPC.
func (n *NPC) Glyph() rune {
	if n.Name == "" {
		return '?'
	}
	return rune(n.Name[0])
}

// dialogue returns the lines to show for the NPC's current state.
func (n *NPC) dialogue() []string {
	if n.Spared && len(n.SparedLines) > 0 {
		return n.SparedLines
	}
	return n.Lines
}

// Room is the overworld: a walled tile map with NPCs.
type Room struct {
	Tiles  [][]Tile
	NPCs   []*NPC
	StartX int
	StartY int
}

// Width returns the room width in tiles.
func (r *Room) Width() int {
	if len(r.Tiles) == 0 {
		return 0
	}
	return len(r.Tiles[0])
}

// Height returns the room height in tiles.
func (r *Room) Height() int {
	return len(r.Tiles)
}

// At returns the tile at (x, y). Outside the map is wall.
func (r *Room) At(x, y int) Tile {
	if y < 0 || y >= len(r.Tiles) || x < 0 || x >= len(r.Tiles[y]) {
		return TileWall
	}
	return r.Tiles[y][x]
}

// NPCAt returns the NPC standing on (x, y), or nil.
func (r *Room) NPCAt(x, y int) *NPC {
	for _, n := range r.NPCs {
		if n.X == x && n.Y == y {
			return n
		}
	}
	return nil
}

// Blocked reports whether the tile cannot be walked on.
func (r *Room) Blocked(x, y int) bool {
	return r.At(x, y) == TileWall || r.NPCAt(x, y) != nil
}

// Hostiles returns the number of hostile NPCs and how many are spared.
func (r *Room) Hostiles() (total, spared int) {
	for _, n := range r.NPCs {
		if !n.Hostile {
			continue
		}
		total++
		if n.Spared {
			spared++
		}
	}
	return total, spared
}

// ParseRoom builds a room from text rows. '@' marks the start tile; any
// character other than '#' is floor.
func ParseRoom(rows []string, npcs []*NPC) *Room {
	room := &Room{NPCs: npcs}
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	for y, row := range rows {
		line := make([]Tile, width)
		for x := range width {
			line[x] = TileFloor
			if x >= len(row) {
				line[x] = TileWall
				continue
			}
			switch row[x] {
			case '#':
				line[x] = TileWall
			case '@':
				room.StartX, room.StartY = x, y
			}
		}
		room.Tiles = append(room.Tiles, line)
	}
	return room
}

var ruinsLayout = []string{
	"######################",
	"#....................#",
	"#....................#",
	"#.....####...........#",
	"#.....#..#......#....#",
	"#..........@....#....#",
	"#...............#....#",
	"#....................#",
	"#....................#",
	"######################",
}

// DefaultRoom returns the demo room with its cast.
func DefaultRoom() *Room {
	return ParseRoom(ruinsLayout, []*NPC{
		{
			Name: "Keeper", X: 11, Y: 2,
			Lines: []string{
				"Welcome, little one.",
				"The creatures here are frightened, not cruel.",
				"Survive their attacks and they will let you pass.",
			},
		},
		{
			Name: "Ribbit", X: 3, Y: 2, Hostile: true, Pattern: PatternRain,
			Lines:       []string{"Ribbit ribbit.", "(It hops at you aggressively.)"},
			SparedLines: []string{"(It seems happy to have been spared.)"},
		},
		{
			Name: "Flutter", X: 19, Y: 3, Hostile: true, Pattern: PatternSweep,
			Lines:       []string{"I'm sorry... I'm so sorry!", "(It flutters anxiously.)"},
			SparedLines: []string{"Thank you for not hurting me."},
		},
		{
			Name: "Gazer", X: 7, Y: 7, Hostile: true, Pattern: PatternRing,
			Lines:       []string{"Don't stare at me!", "(It stares at you.)"},
			SparedLines: []string{"...fine. You can look."},
		},
	})
}

// cellOf returns the tile containing a position; tile centers are integers.
func cellOf(v float64) int {
	return int(math.Floor(v + 0.5))
}
