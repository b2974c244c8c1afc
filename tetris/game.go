package tetris

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	MoveLeft    Action = "left"      // Moves the Tetromino one step to the left.
	MoveRight   Action = "right"     // Moves the Tetromino one step to the right.
	MoveDown    Action = "down"      // Moves the Tetromino one step down.
	DropDown    Action = "drop"      // Drops the Tetromino down the stack.
	RotateRight Action = "rotatecw"  // Rotates the Tetromino clockwise.
	RotateLeft  Action = "rotateccw" // Rotates the Tetromino counter-clockwise.
	Hold        Action = "hold"      // Swaps the Tetromino with the one on hold.
)

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// gravityTable holds the time it takes a tetromino to fall one row at each
// level. Based on https://tetris.wiki/Marathon
//
// Time = (0.8-((Level-1)*0.007))^(Level-1)
var gravityTable = [...]time.Duration{
	1000 * time.Millisecond,
	793 * time.Millisecond,
	618 * time.Millisecond,
	473 * time.Millisecond,
	355 * time.Millisecond,
	262 * time.Millisecond,
	190 * time.Millisecond,
	135 * time.Millisecond,
	94 * time.Millisecond,
	65 * time.Millisecond,
	43 * time.Millisecond,
	28 * time.Millisecond,
	18 * time.Millisecond,
	11 * time.Millisecond,
	7 * time.Millisecond,
}

// MaxStartLevel is the highest level a game can start at.
const MaxStartLevel = len(gravityTable) - 1

func gravity(level int) time.Duration {
	return gravityTable[max(0, min(level, MaxStartLevel))]
}

type Options struct {
	StartLevel int
}

type Game struct {
	// ID identifies the current game in the logs. It changes on every Start().
	ID string

	updateCh chan *Tetris
	actionCh chan Action
	tetris   *Tetris
	ticker   Ticker
	logger   *slog.Logger
	options  *Options
	rand     *rand.Rand
	cancel   context.CancelFunc
	ctx      context.Context
	mu       sync.Mutex
}

func NewGame(l *slog.Logger, o *Options) *Game {
	return NewConfigurableGame(newWrappedTicker(time.Hour), l, o)
}

func NewConfigurableGame(ticker Ticker, l *slog.Logger, o *Options) *Game {
	if l == nil {
		l = slog.Default()
	}
	if o == nil {
		o = &Options{}
	}
	return &Game{
		updateCh: make(chan *Tetris),
		tetris:   newTetris(o.StartLevel, nil),
		ticker:   ticker,
		logger:   l,
		options:  o,
	}
}

// Start starts a new game, ending the current one if there's any.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
	g.ctx, g.cancel = context.WithCancel(context.Background())
	// every game gets its own channel so a finishing game can't take
	// the actions of the next one.
	g.actionCh = make(chan Action)
	g.ID = uuid.NewString()
	g.tetris = newTetris(g.options.StartLevel, g.rand)
	g.logger.Info("game started", slog.String("game", g.ID), slog.Int("level", g.tetris.Level))
	go g.listen(g.ctx, g.cancel, g.actionCh, g.tetris, g.logger.With(slog.String("game", g.ID)))
}

// Stop ends the current game. No more updates are sent.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
	g.ticker.Stop()
}

// Action sends a player action to the current game.
// It's a no-op when there's no game being played.
func (g *Game) Action(a Action) {
	g.mu.Lock()
	ctx, actionCh := g.ctx, g.actionCh
	g.mu.Unlock()
	if ctx == nil {
		return
	}
	select {
	case actionCh <- a:
	case <-ctx.Done():
	}
}

// GetUpdate returns the channel where a copy of the game is sent
// every time it changes.
func (g *Game) GetUpdate() <-chan *Tetris { return g.updateCh }

// Read returns a copy of the current Tetris status that's safe to read concurrently.
func (g *Game) Read() *Tetris {
	g.mu.Lock()
	t := g.tetris
	g.mu.Unlock()
	return t.snapshot()
}

func (g *Game) listen(ctx context.Context, cancel context.CancelFunc, actionCh <-chan Action, t *Tetris, logger *slog.Logger) {
	level := t.Level
	g.ticker.Reset(gravity(level))
	if !g.publish(ctx, t) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-g.ticker.C():
			// the ticker is shared with the next game.
			if ctx.Err() != nil {
				return
			}
			t.mu.Lock()
			t.tick()
		case a := <-actionCh:
			t.mu.Lock()
			t.action(a)
		}
		over, l := t.GameOver, t.Level
		t.mu.Unlock()

		if over {
			g.ticker.Stop()
			logger.Info("game over", slog.Int("score", t.Score), slog.Int("level", l), slog.Int("lines", t.LinesClear))
			g.publish(ctx, t)
			cancel()
			return
		}
		if l != level {
			level = l
			g.ticker.Reset(gravity(level))
			logger.Debug("level up", slog.Int("level", level), slog.Duration("gravity", gravity(level)))
		}
		if !g.publish(ctx, t) {
			return
		}
	}
}

// publish sends a snapshot of t unless the game is cancelled first.
func (g *Game) publish(ctx context.Context, t *Tetris) bool {
	select {
	case g.updateCh <- t.snapshot():
		return true
	case <-ctx.Done():
		return false
	}
}
