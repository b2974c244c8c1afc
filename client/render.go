package client

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/template"

	"srstetris/tetris"

	"github.com/dustin/go-humanize"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos    = "\033[H" // Reset cursor position to 0,0
	clearScreen = "\033[2J\033[H"
	emptyCell   = "  "
	ghostCell   = "[]"
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Shape]string{
	tetris.I: Cyan,
	tetris.J: Blue,
	tetris.L: Orange,
	tetris.O: Yellow,
	tetris.S: Green,
	tetris.Z: Red,
	tetris.T: Magenta,
}

type templateData struct {
	Local   *tetris.Tetris
	NoGhost bool
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	*templateData
}

func newRender(l *slog.Logger, noGhost bool) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &render{
		writer:       os.Stdout,
		logger:       l,
		template:     tmp,
		templateData: &templateData{NoGhost: noGhost},
	}, nil
}

type lobbyMessage [2]string

func welcome() lobbyMessage  { return lobbyMessage{"Welcome to Terminal Tetris", "(p)lay   (q)uit"} }
func gameOver() lobbyMessage { return lobbyMessage{"Game Over :)", "(p)lay again   (q)uit"} }

// lobby draws a message box on top of the last rendered game.
func (r *render) lobby(m lobbyMessage) {
	if r.Local == nil {
		r.local(nil)
	}
	fmt.Fprint(r.writer, "\033[13;3H+--------------------------------------+")
	fmt.Fprintf(r.writer, "\033[14;3H|%s|", center(m[0], 38))
	fmt.Fprint(r.writer, "\033[15;3H|                                      |")
	fmt.Fprintf(r.writer, "\033[16;3H|%s|", center(m[1], 38))
	fmt.Fprint(r.writer, "\033[17;3H+--------------------------------------+")
}

func (r *render) local(t *tetris.Tetris) {
	r.Local = t
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, r.templateData); err != nil {
		r.logger.Error("unable to execute template in local()", slog.String("error", err.Error()))
	}
	if t != nil && t.GameOver {
		r.lobby(gameOver())
	}
}

func (r *render) reset() { fmt.Fprint(r.writer, clearScreen) }

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"localStack": localStack,
		"sidePanel":  sidePanel,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	l = strings.ReplaceAll(l, "Terminal Tetris", "\033[1mTerminal Tetris\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func block(s tetris.Shape) string {
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", colorMap[s])
}

// localStack renders every cell of the stack. The stack already carries the
// current tetromino and its ghost.
func localStack(td *templateData) [tetris.Height][tetris.Width]string {
	var rendered [tetris.Height][tetris.Width]string
	for y := range rendered {
		for x := range rendered[y] {
			rendered[y][x] = emptyCell
			if td.Local == nil {
				continue
			}
			switch v := td.Local.Stack[y][x]; {
			case v == tetris.Ghost:
				if !td.NoGhost {
					rendered[y][x] = ghostCell
				}
			case v != tetris.Empty:
				rendered[y][x] = block(v)
			}
		}
	}
	return rendered
}

// preview renders a shape in its spawn rotation in two rows of four cells.
func preview(s tetris.Shape) [2]string {
	rows := [2][4]string{}
	for y := range rows {
		for x := range rows[y] {
			rows[y][x] = emptyCell
		}
	}
	if s != tetris.Empty {
		for _, p := range tetris.MinosFor(s, tetris.Spawn) {
			rows[p.Y][p.X] = block(s)
		}
	}
	return [2]string{strings.Join(rows[0][:], ""), strings.Join(rows[1][:], "")}
}

// sidePanel renders the text shown on the right of the stack, one entry per row.
func sidePanel(td *templateData) [tetris.Height]string {
	var panel [tetris.Height]string
	if td.Local == nil {
		return panel
	}
	t := td.Local
	var next tetris.Shape
	if t.Next != nil {
		next = t.Next.Shape
	}
	np, hp := preview(next), preview(t.Hold)
	lines := []string{
		"Next", np[0], np[1], "",
		"Hold", hp[0], hp[1], "",
		"Score", humanize.Comma(int64(t.Score)), "",
		"Level", strconv.Itoa(t.Level), "",
		"Lines", humanize.Comma(int64(t.LinesClear)),
	}
	copy(panel[:], lines)
	return panel
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
