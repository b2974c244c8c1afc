package tetris

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalog(t *testing.T) {
	for _, s := range Shapes {
		for r := Spawn; r <= Left; r++ {
			if err := MinosFor(s, r).validate(); err != nil {
				t.Errorf("shape %s rotation %s: %v", s, r, err)
			}
		}
	}

	t.Run("O looks the same in every rotation", func(t *testing.T) {
		for r := Right; r <= Left; r++ {
			if MinosFor(O, r) != MinosFor(O, Spawn) {
				t.Errorf("wanted O rotation %s to match the spawn rotation", r)
			}
		}
	})

	t.Run("validate rejects broken minos", func(t *testing.T) {
		if err := (Minos{{0, 0}, {0, 0}, {1, 0}, {2, 0}}).validate(); err == nil {
			t.Error("wanted an error for duplicated minos")
		}
		if err := (Minos{{0, 0}, {1, 0}, {3, 0}, {4, 0}}).validate(); err == nil {
			t.Error("wanted an error for disconnected minos")
		}
	})
}

func TestRotationCycle(t *testing.T) {
	for _, s := range Shapes {
		for _, d := range []Direction{CW, CCW} {
			tetris := NewTestTetris(s)
			place(tetris, &Tetromino{Shape: s, X: 3, Y: 10})
			for range 4 {
				tetris.rotate(d)
			}
			want := &Tetromino{Shape: s, Rotation: Spawn, X: 3, Y: 10}
			if diff := cmp.Diff(want, tetris.Tetromino); diff != "" {
				t.Errorf("%s rotated 4 times in direction %d (-want +got):\n%s", s, d, diff)
			}
		}
	}

	t.Run("rotation states cycle", func(t *testing.T) {
		cw := []Rotation{Right, Rot2, Left, Spawn}
		r := Spawn
		for _, want := range cw {
			r = r.next(CW)
			if r != want {
				t.Errorf("wanted %s, got %s", want, r)
			}
		}
		ccw := []Rotation{Left, Rot2, Right, Spawn}
		for _, want := range ccw {
			r = r.next(CCW)
			if r != want {
				t.Errorf("wanted %s, got %s", want, r)
			}
		}
	})
}

func TestFailedRotation(t *testing.T) {
	for _, s := range []Shape{I, J, L, S, T, Z} {
		t.Run(string(s), func(t *testing.T) {
			t.Parallel()
			tetris := NewTestTetris(s)
			place(tetris, &Tetromino{Shape: s, X: 3, Y: 10})
			// everything but the tetromino is taken.
			for y := range tetris.Stack {
				for x := range tetris.Stack[y] {
					if !tetris.Tetromino.occupies(Point{x, y}) {
						tetris.Stack[y][x] = O
					}
				}
			}
			before := tetris.Stack
			for _, d := range []Direction{CW, CCW} {
				tetris.rotate(d)
				if diff := cmp.Diff(before, tetris.Stack); diff != "" {
					t.Errorf("wanted stack untouched (-want +got):\n%s", diff)
				}
				want := &Tetromino{Shape: s, X: 3, Y: 10}
				if diff := cmp.Diff(want, tetris.Tetromino); diff != "" {
					t.Errorf("wanted tetromino untouched (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestORotation(t *testing.T) {
	tetris := NewTestTetris(O)
	before := tetris.Stack
	tetris.rotate(CW)
	if tetris.Tetromino.Rotation != Right {
		t.Errorf("wanted rotation R, got %s", tetris.Tetromino.Rotation)
	}
	if tetris.Tetromino.X != spawnX || tetris.Tetromino.Y != spawnY {
		t.Errorf("wanted O not to kick, got %d, %d", tetris.Tetromino.X, tetris.Tetromino.Y)
	}
	if diff := cmp.Diff(before, tetris.Stack); diff != "" {
		t.Errorf("wanted same cells after rotating O (-want +got):\n%s", diff)
	}
}

func TestWallKick(t *testing.T) {
	// Every case sets the tetromino in the stack and blocks some cells
	// so the rotation falls back to a specific test of the kick table.
	tests := []struct {
		name         string
		tetromino    Tetromino
		direction    Direction
		blockStack   []Point
		wantX, wantY int
		wantRotation Rotation
	}{
		{
			name: "I tetromino, case 0>R, test 2 (-2,0)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 10	. . . . . X . . . .
			// 11	. . . O O O O . . .
			tetromino:    Tetromino{Shape: I, X: 3, Y: 10},
			direction:    CW,
			blockStack:   []Point{{5, 10}},
			wantX:        1,
			wantY:        10,
			wantRotation: Right,
		},
		{
			name: "I tetromino, case 0>R, test 3 (1,0)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 10	. . . X . X . . . .
			// 11	. . . O O O O . . .
			tetromino:    Tetromino{Shape: I, X: 3, Y: 10},
			direction:    CW,
			blockStack:   []Point{{5, 10}, {3, 10}},
			wantX:        4,
			wantY:        10,
			wantRotation: Right,
		},
		{
			name: "I tetromino, case 0>R, test 4 (-2,1)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 10	. . . X . X X . . .
			// 11	. . . O O O O . . .
			tetromino:    Tetromino{Shape: I, X: 3, Y: 10},
			direction:    CW,
			blockStack:   []Point{{5, 10}, {3, 10}, {6, 10}},
			wantX:        1,
			wantY:        11,
			wantRotation: Right,
		},
		{
			name: "I tetromino, case 0>R, test 5 (1,-2)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 10	. . . X . X . . . .
			// 11	. . . O O O O . . .
			// 12	. . . . . . . . . .
			// 13	. . . . . . X . . .
			// 14	. . . X . . . . . .
			tetromino:    Tetromino{Shape: I, X: 3, Y: 10},
			direction:    CW,
			blockStack:   []Point{{5, 10}, {3, 10}, {6, 13}, {3, 14}},
			wantX:        4,
			wantY:        8,
			wantRotation: Right,
		},
		{
			name: "I tetromino, case 0>R, every test fails",
			// .	0 1 2 3 4 5 6 7 8 9
			// 8	. . . . . . X . . .
			// 10	. . . X . X . . . .
			// 11	. . . O O O O . . .
			// 13	. . . . . . X . . .
			// 14	. . . X . . . . . .
			tetromino:    Tetromino{Shape: I, X: 3, Y: 10},
			direction:    CW,
			blockStack:   []Point{{5, 10}, {3, 10}, {6, 13}, {3, 14}, {6, 8}},
			wantX:        3,
			wantY:        10,
			wantRotation: Spawn,
		},
		{
			name: "I tetromino, case 0>L, test 2 (-1,0)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 11	. . . O O O O . . .
			// 12	. . . . X . . . . .
			tetromino:    Tetromino{Shape: I, X: 3, Y: 10},
			direction:    CCW,
			blockStack:   []Point{{4, 12}},
			wantX:        2,
			wantY:        10,
			wantRotation: Left,
		},
		{
			name: "I tetromino, case L>0 against the left wall, test 2 (1,0)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 10	O . . . . . . . . .
			// 11	O . . . . . . . . .
			// 12	O . . . . . . . . .
			// 13	O . . . . . . . . .
			tetromino:    Tetromino{Shape: I, Rotation: Left, X: -1, Y: 10},
			direction:    CW,
			wantX:        0,
			wantY:        10,
			wantRotation: Spawn,
		},
		{
			name: "I tetromino, case R>0 against the right wall, test 3 (-1,0)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 10	. . . . . . . . . O
			// 11	. . . . . . . . . O
			// 12	. . . . . . . . . O
			// 13	. . . . . . . . . O
			tetromino:    Tetromino{Shape: I, Rotation: Right, X: 7, Y: 10},
			direction:    CCW,
			wantX:        6,
			wantY:        10,
			wantRotation: Spawn,
		},
		{
			name: "T tetromino, case 0>R on the floor, test 3 (-1,-1)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 20	. . . . O . . . . .
			// 21	. . . O O O . . . .
			tetromino:    Tetromino{Shape: T, X: 3, Y: 20},
			direction:    CW,
			wantX:        2,
			wantY:        19,
			wantRotation: Right,
		},
		{
			name: "S tetromino, case L>0 against the right wall, test 2 (-1,0)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 10	. . . . . . . . O .
			// 11	. . . . . . . . O O
			// 12	. . . . . . . . . O
			tetromino:    Tetromino{Shape: S, Rotation: Left, X: 8, Y: 10},
			direction:    CW,
			wantX:        7,
			wantY:        10,
			wantRotation: Spawn,
		},
		{
			name: "J tetromino, case 0>R, test 2 (-1,0)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 10	. . . O . X . . . .
			// 11	. . . O O O . . . .
			tetromino:    Tetromino{Shape: J, X: 3, Y: 10},
			direction:    CW,
			blockStack:   []Point{{5, 10}},
			wantX:        2,
			wantY:        10,
			wantRotation: Right,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tetris := NewTestTetris(tt.tetromino.Shape)
			tm := tt.tetromino
			place(tetris, &tm)
			for _, p := range tt.blockStack {
				tetris.Stack[p.Y][p.X] = Z
			}
			tetris.rotate(tt.direction)
			if tt.wantX != tetris.Tetromino.X {
				t.Errorf("wanted X to be %d, got %d", tt.wantX, tetris.Tetromino.X)
			}
			if tt.wantY != tetris.Tetromino.Y {
				t.Errorf("wanted Y to be %d, got %d", tt.wantY, tetris.Tetromino.Y)
			}
			if tt.wantRotation != tetris.Tetromino.Rotation {
				t.Errorf("wanted rotation %s, got %s", tt.wantRotation, tetris.Tetromino.Rotation)
			}
			for _, c := range tetris.Tetromino.Cells() {
				if tetris.Stack[c.Y][c.X] != tt.tetromino.Shape {
					t.Errorf("wanted the rotated tetromino drawn at %v, got %q", c, tetris.Stack[c.Y][c.X])
				}
			}
		})
	}
}
