package world

import (
	"fmt"
	"strings"
)

// Grid is a passability map. Units can path between two tiles when both are
// passable and belong to the same connected region (4-neighbourhood).
type Grid struct {
	width, height int
	region        []int // region label per tile; -1 for blocked tiles
}

// ParseGrid builds a Grid from rows of text where '#' marks a blocked tile and
// any other rune is passable. All rows must have the same width.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid: at least one row is required")
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("grid: rows must not be empty")
	}
	blocked := make([]bool, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("grid: row %d has width %d, want %d", y, len(row), width)
		}
		for x, c := range row {
			blocked[y*width+x] = c == '#'
		}
	}
	g := &Grid{width: width, height: len(rows)}
	g.label(blocked)
	return g, nil
}

// OpenGrid returns a fully passable grid of the given size.
func OpenGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height}
	g.label(make([]bool, width*height))
	return g
}

// label flood-fills connected passable tiles.
func (g *Grid) label(blocked []bool) {
	g.region = make([]int, len(blocked))
	for i := range g.region {
		g.region[i] = -1
	}
	next := 0
	queue := make([]int, 0, len(blocked))
	for start := range blocked {
		if blocked[start] || g.region[start] >= 0 {
			continue
		}
		g.region[start] = next
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			x, y := i%g.width, i/g.width
			for _, n := range [][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				if !g.inBounds(n[0], n[1]) {
					continue
				}
				j := n[1]*g.width + n[0]
				if blocked[j] || g.region[j] >= 0 {
					continue
				}
				g.region[j] = next
				queue = append(queue, j)
			}
		}
		next++
	}
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Region returns the connected region label of a tile, or -1 when the tile is
// blocked or out of bounds.
func (g *Grid) Region(x, y int) int {
	if !g.inBounds(x, y) {
		return -1
	}
	return g.region[y*g.width+x]
}

// Connected reports whether a unit standing at (fx, fy) can path to (tx, ty).
func (g *Grid) Connected(fx, fy, tx, ty int) bool {
	from := g.Region(fx, fy)
	return from >= 0 && from == g.Region(tx, ty)
}

// String renders the grid with region labels, mainly for debugging.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			r := g.region[y*g.width+x]
			if r < 0 {
				sb.WriteByte('#')
				continue
			}
			sb.WriteByte(byte('a' + r%26))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
