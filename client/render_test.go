package client

import (
	"log/slog"
	"strings"
	"testing"

	"srstetris/tetris"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRender(t *testing.T, noGhost bool) (*render, *strings.Builder) {
	t.Helper()
	tmpl, err := loadTemplate()
	require.NoError(t, err)
	w := &strings.Builder{}
	return &render{
		writer:       w,
		logger:       slog.New(slog.DiscardHandler),
		template:     tmpl,
		templateData: &templateData{NoGhost: noGhost},
	}, w
}

func TestLocalStack(t *testing.T) {
	t.Run("no game renders an empty stack", func(t *testing.T) {
		for _, row := range localStack(&templateData{}) {
			for _, cell := range row {
				assert.Equal(t, emptyCell, cell)
			}
		}
	})

	t.Run("renders the tetromino and its ghost", func(t *testing.T) {
		rendered := localStack(&templateData{Local: tetris.NewTestTetris(tetris.T)})
		for _, p := range []tetris.Point{{4, 0}, {3, 1}, {4, 1}, {5, 1}} {
			assert.Equal(t, block(tetris.T), rendered[p.Y][p.X])
		}
		for _, p := range []tetris.Point{{4, 20}, {3, 21}, {4, 21}, {5, 21}} {
			assert.Equal(t, ghostCell, rendered[p.Y][p.X])
		}
		assert.Equal(t, emptyCell, rendered[10][0])
	})

	t.Run("no ghost hides the ghost", func(t *testing.T) {
		rendered := localStack(&templateData{Local: tetris.NewTestTetris(tetris.T), NoGhost: true})
		assert.Equal(t, emptyCell, rendered[21][4])
		assert.Equal(t, block(tetris.T), rendered[1][4])
	})
}

func TestPreview(t *testing.T) {
	tests := []struct {
		shape tetris.Shape
		want  [2]string
	}{
		{shape: tetris.Empty, want: [2]string{"        ", "        "}},
		{shape: tetris.I, want: [2]string{"        ", strings.Repeat(block(tetris.I), 4)}},
		{shape: tetris.O, want: [2]string{"  " + block(tetris.O) + block(tetris.O) + "  ", "  " + block(tetris.O) + block(tetris.O) + "  "}},
		{shape: tetris.T, want: [2]string{"  " + block(tetris.T) + "    ", strings.Repeat(block(tetris.T), 3) + "  "}},
	}
	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			assert.Equal(t, tt.want, preview(tt.shape))
		})
	}
}

func TestSidePanel(t *testing.T) {
	assert.Equal(t, [tetris.Height]string{}, sidePanel(&templateData{}))

	tts := tetris.NewTestTetris(tetris.J)
	tts.Hold = tetris.I
	tts.Score = 1234567
	tts.Level = 3
	tts.LinesClear = 35
	panel := sidePanel(&templateData{Local: tts})
	assert.Equal(t, "Next", panel[0])
	assert.Equal(t, preview(tetris.J)[0], panel[1])
	assert.Equal(t, "Hold", panel[4])
	assert.Equal(t, preview(tetris.I)[1], panel[6])
	assert.Equal(t, "1,234,567", panel[9])
	assert.Equal(t, "3", panel[12])
	assert.Equal(t, "35", panel[15])
}

func TestRender(t *testing.T) {
	t.Run("renders the game frame", func(t *testing.T) {
		r, w := newTestRender(t, false)
		r.local(tetris.NewTestTetris(tetris.T))
		out := w.String()
		assert.True(t, strings.HasPrefix(out, resetPos))
		assert.Contains(t, out, "\033[1mTerminal Tetris\033[0m")
		// two borders plus one line per row.
		assert.Equal(t, 2, strings.Count(out, "+--------------------+"))
		assert.Equal(t, tetris.Height*2, strings.Count(out, "|"))
		assert.NotContains(t, out, "\n\n")
		assert.NotContains(t, out, "Game Over")
	})

	t.Run("game over renders the lobby", func(t *testing.T) {
		r, w := newTestRender(t, false)
		tts := tetris.NewTestTetris(tetris.T)
		tts.GameOver = true
		r.local(tts)
		assert.Contains(t, w.String(), "Game Over :)")
		assert.Contains(t, w.String(), "(p)lay again   (q)uit")
	})

	t.Run("lobby without a game renders an empty frame", func(t *testing.T) {
		r, w := newTestRender(t, false)
		r.lobby(welcome())
		assert.Contains(t, w.String(), "+--------------------+")
		assert.Contains(t, w.String(), "Welcome to Terminal Tetris")
	})

	t.Run("reset clears the screen", func(t *testing.T) {
		r, w := newTestRender(t, false)
		r.reset()
		assert.Equal(t, clearScreen, w.String())
	})
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab  ", center("ab", 6))
	assert.Equal(t, " abc  ", center("abc", 6))
	assert.Equal(t, "abc", center("abcdef", 3))
}
