// Package hexgrid provides axial/cube coordinate math for the game board.
// A coordinate is stored as (q, r); the third cube coordinate s is derived
// as -q-r, so q+r+s == 0 always holds.
package hexgrid

import "fmt"

// Coord is a position on the hex grid in axial coordinates
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Origin is the center of every map
var Origin = Coord{}

// New returns the coordinate (q, r)
func New(q, r int) Coord {
	return Coord{Q: q, R: r}
}

// S returns the implicit third cube coordinate
func (c Coord) S() int {
	return -c.Q - c.R
}

// Valid reports whether the cube triple (q, r, s) sums to zero
func Valid(q, r, s int) bool {
	return q+r+s == 0
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.Q, c.R, c.S())
}

// Add returns the component-wise sum
func (c Coord) Add(o Coord) Coord {
	return Coord{Q: c.Q + o.Q, R: c.R + o.R}
}

// directions are the six neighbor offsets in axial coordinates
var directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six coordinates adjacent to c
func (c Coord) Neighbors() []Coord {
	out := make([]Coord, 0, len(directions))
	for _, d := range directions {
		out = append(out, c.Add(d))
	}
	return out
}

// Distance returns the cube distance between two coordinates
func Distance(a, b Coord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	return max(dq, dr, ds)
}

// Length returns the distance from the origin
func (c Coord) Length() int {
	return Distance(c, Origin)
}

// Adjacent reports whether two coordinates share an edge. A coordinate is
// never adjacent to itself.
func Adjacent(a, b Coord) bool {
	return Distance(a, b) == 1
}

// Range enumerates every coordinate within radius of the origin, ordered by
// q then r. It yields 3n(n+1)+1 coordinates; a negative radius yields none.
func Range(radius int) []Coord {
	if radius < 0 {
		return nil
	}

	out := make([]Coord, 0, Count(radius))
	for q := -radius; q <= radius; q++ {
		rMin := max(-radius, -q-radius)
		rMax := min(radius, -q+radius)
		for r := rMin; r <= rMax; r++ {
			out = append(out, Coord{Q: q, R: r})
		}
	}
	return out
}

// Count returns the number of hexes in a map of the given radius
func Count(radius int) int {
	if radius < 0 {
		return 0
	}
	return 3*radius*(radius+1) + 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
