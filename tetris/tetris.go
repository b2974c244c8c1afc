// Package tetris contains the logic of the game
// based on https://tetris.wiki/Tetris_Guideline
package tetris

import (
	"math/rand/v2"
	"slices"
	"sync"
)

const (
	// Width and Height of the stack. The two top rows are where the
	// tetrominoes spawn.
	Width  = 10
	Height = 22

	spawnX = 3
	spawnY = 0

	gravityPoints  = 1 // per row
	hardDropPoints = 2 // per row
	linesPerLevel  = 10
)

// points per lines cleared at once, multiplied by level+1.
var lineScore = [5]int{0, 40, 100, 300, 1200}

// Stack is the playfield.
// Columns are 0 > 9 left to right and represent the X axis.
// Rows are 0 > 21 top to bottom and represent the Y axis.
// The current tetromino and its ghost are drawn in the stack as well.
type Stack [Height][Width]Shape

func inBounds(p Point) bool {
	return p.X >= 0 && p.X < Width && p.Y >= 0 && p.Y < Height
}

func (s *Stack) at(p Point) Shape { return s[p.Y][p.X] }

// fits reports whether every cell of t is inside the stack and free of
// solid geometry. Ghost cells are free.
func (s *Stack) fits(t *Tetromino) bool {
	for _, c := range t.Cells() {
		if !inBounds(c) || s.at(c).isSolid() {
			return false
		}
	}
	return true
}

func (s *Stack) put(t *Tetromino) {
	for _, c := range t.Cells() {
		s[c.Y][c.X] = t.Shape
	}
}

func (s *Stack) erase(t *Tetromino) {
	for _, c := range t.Cells() {
		if inBounds(c) {
			s[c.Y][c.X] = Empty
		}
	}
}

func (s *Stack) clearGhost() {
	for y := range s {
		for x := range s[y] {
			if s[y][x] == Ghost {
				s[y][x] = Empty
			}
		}
	}
}

// isLine reports whether every column of row is solid.
func (s *Stack) isLine(row int) bool {
	for _, c := range s[row] {
		if !c.isSolid() {
			return false
		}
	}
	return true
}

// Tetris is the state of a single game. Read it through Game.Read() or the
// snapshots sent by Game.GetUpdate().
type Tetris struct {
	Stack     Stack
	Tetromino *Tetromino // currently falling
	Ghost     *Tetromino // where Tetromino would land
	Next      *Tetromino // preview, not in the stack yet
	Hold      Shape      // Empty until something is held

	Score      int
	Level      int
	LinesClear int
	// GameOver is set once a tetromino spawns over the stack.
	GameOver bool

	holdLocked bool
	bag        *bag
	mu         sync.RWMutex
}

func newTetris(level int, r *rand.Rand) *Tetris {
	t := &Tetris{
		Level: level,
		bag:   newBag(r),
	}
	t.Next = newTetromino(t.bag.draw())
	t.spawn()
	return t
}

func (t *Tetris) action(a Action) {
	if t.GameOver || t.Tetromino == nil {
		return
	}
	switch a {
	case MoveLeft:
		t.left()
	case MoveRight:
		t.right()
	case MoveDown:
		t.down()
	case DropDown:
		t.drop()
	case RotateRight:
		t.rotate(CW)
	case RotateLeft:
		t.rotate(CCW)
	case Hold:
		t.hold()
	}
}

func (t *Tetris) left()  { t.move(-1, 0) }
func (t *Tetris) right() { t.move(1, 0) }

func (t *Tetris) down() { t.move(0, 1) }

// drop is the hard drop: the tetromino goes down the stack and locks.
func (t *Tetris) drop() {
	for t.move(0, 1) {
		t.Score += hardDropPoints
	}
	t.lock()
}

// tick applies gravity, scoring every row fallen. When the tetromino
// can't move down it locks.
func (t *Tetris) tick() {
	if t.GameOver || t.Tetromino == nil {
		return
	}
	if !t.move(0, 1) {
		t.lock()
		return
	}
	t.Score += gravityPoints
}

func (t *Tetris) rotate(d Direction) {
	stack, rotated, ok := rotate(t.Stack, t.Tetromino, d)
	if !ok {
		return
	}
	t.Stack, t.Tetromino = stack, rotated
	t.updateGhost()
}

// hold swaps the current tetromino with the one on hold. With nothing on
// hold the next tetromino comes into play. It can be used once per lock.
func (t *Tetris) hold() {
	if t.holdLocked {
		return
	}
	t.Stack.erase(t.Tetromino)
	t.Stack.clearGhost()
	current := t.Tetromino.Shape
	if t.Hold == Empty {
		t.Hold = current
		t.spawn()
	} else {
		held := t.Hold
		t.Hold = current
		t.setTetromino(held)
	}
	t.holdLocked = true
}

// isFree reports whether p is inside the stack and either empty, ghost or
// part of the current tetromino. The later lets the tetromino be tested
// against a stack it is still drawn in.
func (t *Tetris) isFree(p Point) bool {
	if !inBounds(p) {
		return false
	}
	return !t.Stack.at(p).isSolid() || t.Tetromino.occupies(p)
}

func (t *Tetris) canMove(tm *Tetromino, dx, dy int) bool {
	for _, c := range tm.Cells() {
		if !t.isFree(Point{c.X + dx, c.Y + dy}) {
			return false
		}
	}
	return true
}

// move shifts the current tetromino by dx, dy if possible.
func (t *Tetris) move(dx, dy int) bool {
	if !t.canMove(t.Tetromino, dx, dy) {
		return false
	}
	t.Stack.erase(t.Tetromino)
	t.Tetromino.X += dx
	t.Tetromino.Y += dy
	t.Stack.put(t.Tetromino)
	t.updateGhost()
	return true
}

// updateGhost drops a copy of the current tetromino as far as it goes
// and draws it in the empty cells below it.
func (t *Tetris) updateGhost() {
	t.Stack.clearGhost()
	g := t.Tetromino.copy()
	for t.canMove(g, 0, 1) {
		g.Y++
	}
	t.Ghost = g
	for _, c := range g.Cells() {
		if t.Stack.at(c) == Empty {
			t.Stack[c.Y][c.X] = Ghost
		}
	}
}

// lock leaves the current tetromino in the stack, clears the lines it
// completed and spawns the next one.
func (t *Tetris) lock() {
	t.Stack.clearGhost()
	var rows []int
	for _, c := range t.Tetromino.Cells() {
		if !slices.Contains(rows, c.Y) {
			rows = append(rows, c.Y)
		}
	}
	t.holdLocked = false
	t.clearLines(rows)
	t.spawn()
}

// clearLines removes the complete lines among rows and moves down
// everything above them.
func (t *Tetris) clearLines(rows []int) {
	var complete []int
	for _, r := range rows {
		if t.Stack.isLine(r) {
			complete = append(complete, r)
		}
	}
	if len(complete) == 0 {
		return
	}

	var stack Stack
	dst := Height - 1
	for y := Height - 1; y >= 0; y-- {
		if slices.Contains(complete, y) {
			continue
		}
		stack[dst] = t.Stack[y]
		dst--
	}
	t.Stack = stack

	t.LinesClear += len(complete)
	t.setLevel()
	n := min(len(complete), len(lineScore)-1)
	t.Score += lineScore[n] * (t.Level + 1)
}

// setLevel moves up a level every 10 lines. A starting level set by the
// player is kept until the lines cleared overtake it.
func (t *Tetris) setLevel() {
	if l := t.LinesClear / linesPerLevel; l > t.Level {
		t.Level = l
	}
}

// spawn brings the next tetromino into play and draws a new next one.
func (t *Tetris) spawn() {
	t.setTetromino(t.Next.Shape)
	t.Next = newTetromino(t.bag.draw())
}

// setTetromino puts a tetromino of shape s in the spawn location.
// If the location is taken the game is over.
func (t *Tetris) setTetromino(s Shape) {
	t.Stack.clearGhost()
	t.Tetromino = newTetromino(s)
	if !t.Stack.fits(t.Tetromino) {
		t.GameOver = true
		t.Ghost = nil
		return
	}
	t.Stack.put(t.Tetromino)
	t.updateGhost()
}

// snapshot returns a copy of the game that's safe to read concurrently.
func (t *Tetris) snapshot() *Tetris {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return &Tetris{
		Stack:      t.Stack,
		Tetromino:  t.Tetromino.copy(),
		Ghost:      t.Ghost.copy(),
		Next:       t.Next.copy(),
		Hold:       t.Hold,
		Score:      t.Score,
		Level:      t.Level,
		LinesClear: t.LinesClear,
		GameOver:   t.GameOver,
	}
}
