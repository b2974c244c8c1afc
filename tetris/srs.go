package tetris

// Wall kick data of the Super Rotation System, based on
// https://tetris.wiki/Super_Rotation_System
//
// The wiki lists the offsets with Y growing upwards. Rows in the stack grow
// downwards so every Y below is the wiki's value negated.
// Tables are indexed by the current rotation and the rotation direction.
type kickTable [4][2][]Point

var kicksJLSTZ = kickTable{
	Spawn: {
		CW:  {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}}, // 0>R
		CCW: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},    // 0>L
	},
	Right: {
		CW:  {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}}, // R>2
		CCW: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}}, // R>0
	},
	Rot2: {
		CW:  {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},    // 2>L
		CCW: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}}, // 2>R
	},
	Left: {
		CW:  {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // L>0
		CCW: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // L>2
	},
}

var kicksI = kickTable{
	Spawn: {
		CW:  {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}}, // 0>R
		CCW: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}}, // 0>L
	},
	Right: {
		CW:  {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}}, // R>2
		CCW: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}}, // R>0
	},
	Rot2: {
		CW:  {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}}, // 2>L
		CCW: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}}, // 2>R
	},
	Left: {
		CW:  {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}}, // L>0
		CCW: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}}, // L>2
	},
}

// the O tetromino looks the same in every rotation, it never kicks.
var kicksO = kickTable{
	Spawn: {CW: {{0, 0}}, CCW: {{0, 0}}},
	Right: {CW: {{0, 0}}, CCW: {{0, 0}}},
	Rot2:  {CW: {{0, 0}}, CCW: {{0, 0}}},
	Left:  {CW: {{0, 0}}, CCW: {{0, 0}}},
}

func init() {
	for _, kt := range []kickTable{kicksJLSTZ, kicksI, kicksO} {
		for r := range kt {
			for d := range kt[r] {
				tests := kt[r][d]
				if len(tests) == 0 || len(tests) > 5 || tests[0] != (Point{}) {
					panic("tetris: malformed wall kick table")
				}
			}
		}
	}
}

// kicks returns the offsets to test, in order, when rotating
// shape s from rotation r in direction d.
func kicks(s Shape, r Rotation, d Direction) []Point {
	switch s {
	case I:
		return kicksI[r][d]
	case O:
		return kicksO[r][d]
	default:
		return kicksJLSTZ[r][d]
	}
}

// rotate tries to rotate t inside stack in direction d.
// It works on a copy of the stack: when no kick test fits, ok is false and
// neither the stack nor the tetromino have been touched.
func rotate(stack Stack, t *Tetromino, d Direction) (Stack, *Tetromino, bool) {
	// the stack is an array so this is a scratch copy.
	scratch := stack
	scratch.erase(t)

	candidate := &Tetromino{Shape: t.Shape, Rotation: t.Rotation.next(d)}
	for _, k := range kicks(t.Shape, t.Rotation, d) {
		candidate.X = t.X + k.X
		candidate.Y = t.Y + k.Y
		if scratch.fits(candidate) {
			scratch.put(candidate)
			return scratch, candidate, true
		}
	}
	return stack, t, false
}
