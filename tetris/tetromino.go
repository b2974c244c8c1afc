package tetris

import "fmt"

// Shape is the content of a cell in the stack. An empty string is an empty cell,
// Ghost marks the ghost piece and every other value is the shape of the tetromino
// that occupies it.
type Shape string

const (
	I Shape = "I"
	J Shape = "J"
	L Shape = "L"
	O Shape = "O"
	S Shape = "S"
	T Shape = "T"
	Z Shape = "Z"

	Ghost Shape = "G"
	Empty Shape = ""
)

// Shapes lists the seven playable tetrominoes.
var Shapes = [7]Shape{I, J, L, O, S, T, Z}

// isSolid reports whether the cell counts as settled or active geometry.
func (s Shape) isSolid() bool { return s != Empty && s != Ghost }

// Rotation is one of the four SRS rotation states.
type Rotation int

const (
	Spawn Rotation = iota // 0
	Right                 // R
	Rot2                  // 2
	Left                  // L
)

func (r Rotation) String() string {
	switch r {
	case Spawn:
		return "0"
	case Right:
		return "R"
	case Rot2:
		return "2"
	case Left:
		return "L"
	}
	return fmt.Sprintf("Rotation(%d)", int(r))
}

// Direction is the way a tetromino is rotated.
type Direction int

const (
	CW Direction = iota
	CCW
)

// next returns the rotation state reached by rotating in direction d.
func (r Rotation) next(d Direction) Rotation {
	if d == CW {
		return (r + 1) % 4
	}
	return (r + 3) % 4
}

// Point is a column (X) and row (Y) pair. Rows grow downwards.
type Point struct{ X, Y int }

func (p Point) add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

// Minos are the four cells of a tetromino relative to its origin.
type Minos [4]Point

/*
Catalog of the guideline shapes. Every shape is drawn inside its bounding box
with the origin at the top left corner. Rows grow downwards.

.	I (4x4)		J (3x3)		L (3x3)		O (4x2)
.	0 1 2 3		0 1 2		0 1 2		0 1 2 3
0	. . . .		O . .		. . O		. O O .
1	O O O O		O O O		O O O		. O O .
2	. . . .		. . .		. . .
3	. . . .

.	S (3x3)		T (3x3)		Z (3x3)
.	0 1 2		0 1 2		0 1 2
0	. O O		. O .		O O .
1	O O .		O O O		. O O
2	. . .		. . .		. . .
*/
var catalog = map[Shape][4]Minos{
	I: {
		Spawn: {{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		Right: {{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		Rot2:  {{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		Left:  {{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	J: {
		Spawn: {{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		Right: {{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		Rot2:  {{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		Left:  {{1, 0}, {1, 1}, {0, 2}, {1, 2}},
	},
	L: {
		Spawn: {{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		Right: {{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		Rot2:  {{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		Left:  {{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
	O: {
		Spawn: {{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		Right: {{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		Rot2:  {{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		Left:  {{1, 0}, {2, 0}, {1, 1}, {2, 1}},
	},
	S: {
		Spawn: {{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		Right: {{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		Rot2:  {{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		Left:  {{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	T: {
		Spawn: {{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		Right: {{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		Rot2:  {{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		Left:  {{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	Z: {
		Spawn: {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		Right: {{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		Rot2:  {{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		Left:  {{1, 0}, {0, 1}, {1, 1}, {0, 2}},
	},
}

func init() {
	for _, s := range Shapes {
		rotations, ok := catalog[s]
		if !ok {
			panic(fmt.Sprintf("tetris: shape %s missing from catalog", s))
		}
		for r, m := range rotations {
			if err := m.validate(); err != nil {
				panic(fmt.Sprintf("tetris: shape %s rotation %s: %v", s, Rotation(r), err))
			}
		}
	}
}

// validate checks the minos are four distinct, orthogonally connected cells.
func (m Minos) validate() error {
	seen := make(map[Point]bool, len(m))
	for _, p := range m {
		if seen[p] {
			return fmt.Errorf("duplicated mino %v", p)
		}
		seen[p] = true
	}

	// flood fill from the first mino.
	visited := map[Point]bool{m[0]: true}
	queue := []Point{m[0]}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range []Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := p.add(d)
			if seen[n] && !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	if len(visited) != len(m) {
		return fmt.Errorf("minos %v are not connected", m)
	}
	return nil
}

// MinosFor returns the minos of shape s in rotation r.
// It panics if s is not one of the seven tetrominoes.
func MinosFor(s Shape, r Rotation) Minos {
	rotations, ok := catalog[s]
	if !ok {
		panic(fmt.Sprintf("tetris: unknown shape %q", s))
	}
	return rotations[r%4]
}

// Tetromino is a piece in play. Only its origin changes when it moves and
// only its rotation changes when it rotates.
type Tetromino struct {
	Shape    Shape
	Rotation Rotation
	X, Y     int // origin
}

func newTetromino(s Shape) *Tetromino {
	return &Tetromino{Shape: s, Rotation: Spawn, X: spawnX, Y: spawnY}
}

// Minos returns the cells of the tetromino relative to its origin.
func (t *Tetromino) Minos() Minos { return MinosFor(t.Shape, t.Rotation) }

// Cells returns the cells of the tetromino in stack coordinates.
func (t *Tetromino) Cells() [4]Point {
	var cells [4]Point
	origin := Point{t.X, t.Y}
	for i, m := range t.Minos() {
		cells[i] = origin.add(m)
	}
	return cells
}

func (t *Tetromino) occupies(p Point) bool {
	for _, c := range t.Cells() {
		if c == p {
			return true
		}
	}
	return false
}

func (t *Tetromino) copy() *Tetromino {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
