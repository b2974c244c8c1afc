// Package client runs the game in the terminal: it reads the keyboard,
// sends the actions to the game and renders every update.
package client

import (
	"fmt"
	"log/slog"
	"sync"

	"srstetris/tetris"

	"github.com/eiannone/keyboard"
)

type clientState int

const (
	lobby clientState = iota
	playing
)

type state struct {
	current clientState
	last    *tetris.Tetris
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

func (s *state) setLast(t *tetris.Tetris) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = t
}

type tetrisGame interface {
	Start()
	GetUpdate() <-chan *tetris.Tetris
	Action(tetris.Action)
	Stop()
}

type renderer interface {
	lobby(lobbyMessage)
	local(*tetris.Tetris)
	reset()
}

type Client struct {
	tetris  tetrisGame
	render  renderer
	logger  *slog.Logger
	kbCh    <-chan keyboard.KeyEvent
	closeKB func() error
	state   *state
	doneCh  chan struct{}
}

type Options struct {
	NoGhost bool
	Level   int
}

func New(l *slog.Logger, o *Options) (*Client, error) {
	r, err := newRender(l, o.NoGhost)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		tetris:  tetris.NewGame(l, &tetris.Options{StartLevel: o.Level}),
		render:  r,
		logger:  l,
		kbCh:    kb,
		closeKB: keyboard.Close,
		state:   &state{current: lobby},
		doneCh:  make(chan struct{}),
	}, nil
}

// Start shows the lobby and blocks until the player quits.
func (c *Client) Start() {
	c.render.lobby(welcome())
	c.listenKB()
	close(c.doneCh)
	c.tetris.Stop()
}

// Close releases the keyboard.
func (c *Client) Close() error {
	if c.closeKB == nil {
		return nil
	}
	return c.closeKB()
}

// Last returns the last update of the last game played, nil if none was played.
func (c *Client) Last() *tetris.Tetris {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return c.state.last
}

func (c *Client) listenKB() {
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			return
		}
		switch c.state.get() {
		case lobby:
			switch event.Rune {
			case 'p':
				c.state.set(playing)
				go c.listenTetris()
			case 'q':
				return
			}
		case playing:
			if a, ok := keyAction(event); ok {
				c.tetris.Action(a)
			}
		}
	}
}

func keyAction(event keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.MoveDown, true
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft, true
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight, true
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'e':
		return tetris.RotateRight, true
	case event.Rune == 'q':
		return tetris.RotateLeft, true
	case event.Key == keyboard.KeySpace:
		return tetris.DropDown, true
	case event.Rune == 'c':
		return tetris.Hold, true
	}
	return "", false
}

func (c *Client) listenTetris() {
	go c.tetris.Start()
	c.render.reset()
	for {
		select {
		case u := <-c.tetris.GetUpdate():
			c.state.setLast(u)
			c.render.local(u)
			if u.GameOver {
				c.state.set(lobby)
				return
			}
		case <-c.doneCh:
			return
		}
	}
}
