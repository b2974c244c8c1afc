package tetris

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

// MockTicker is a mock implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	d           time.Duration
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}

func (m *MockTicker) Reset(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
	m.stop = false
	m.d = d
}

func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}

func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// Duration returns the duration of the last Reset().
func (m *MockTicker) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d
}

// NewTestGame creates a game with a manual ticker and a seeded bag so
// the sequence of tetrominoes is always the same.
func NewTestGame(seed uint64) (*Game, *MockTicker) {
	ticker := NewMockTicker()
	g := NewConfigurableGame(ticker, slog.New(slog.DiscardHandler), &Options{})
	g.rand = rand.New(rand.NewPCG(seed, seed)) //nolint:gosec
	return g, ticker
}

// NewTestTetris creates a new Tetris with an empty stack where the current
// and the next tetromino have the given shape.
func NewTestTetris(shape Shape) *Tetris {
	t := &Tetris{bag: newBag(rand.New(rand.NewPCG(1, 2)))} //nolint:gosec
	t.setTetromino(shape)
	t.Next = newTetromino(shape)
	return t
}
