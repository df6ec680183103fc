package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

const replHelp = `commands:
  new-game <width> <height> <p1> <p2>   start over with a new board
  move <column>                         drop a disk for the player to move
  board                                 print the board
  help                                  show this help
  quit                                  leave`

// REPL is the line-oriented harness. One GameState lives at a time and
// new-game replaces it.
type REPL struct {
	in       io.Reader
	out      io.Writer
	game     *domain.GameState
	settings settings
}

// NewREPL starts with a default game so "move" works straight away.
func NewREPL(in io.Reader, out io.Writer, width, height int, color1, color2 string, opts ...Option) (*REPL, error) {
	s := newSettings(opts)
	if err := s.checkDimensions(float64(width), float64(height)); err != nil {
		return nil, err
	}
	p1, p2 := domain.NewPlayers(color1, color2)
	g, err := domain.NewGameState(width, height, p1, p2)
	if err != nil {
		return nil, err
	}
	return &REPL{in: in, out: out, game: g, settings: s}, nil
}

func (r *REPL) Game() *domain.GameState {
	return r.game
}

// Run reads commands until quit or EOF.
func (r *REPL) Run() error {
	scanner := bufio.NewScanner(r.in)
	r.printf("connect four, %dx%d. %s\n", r.game.Width(), r.game.Height(), Legend(r.game))
	r.printf("type help for commands\n> ")

	for scanner.Scan() {
		if quit := r.Exec(scanner.Text()); quit {
			return nil
		}
		r.printf("> ")
	}
	return scanner.Err()
}

// Exec runs one command line and reports whether the session should end.
func (r *REPL) Exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		r.printf("bye\n")
		return true

	case "help":
		r.printf("%s\n", replHelp)

	case "board":
		r.printf("%s", RenderBoard(r.game))

	case "move":
		if len(fields) != 2 {
			r.printf("usage: move <column>\n")
			return false
		}
		column, err := strconv.Atoi(fields[1])
		if err != nil {
			r.printf("not a column: %q\n", fields[1])
			return false
		}
		outcome := r.game.ApplyMove(column)
		r.printf("%s\n", outcome)
		r.printf("%s\n", Describe(r.game, outcome))
		if outcome.Accepted() {
			r.printf("%s", RenderBoard(r.game))
		}

	case "new-game":
		if len(fields) != 5 {
			r.printf("usage: new-game <width> <height> <p1> <p2>\n")
			return false
		}
		width, werr := strconv.ParseFloat(fields[1], 64)
		height, herr := strconv.ParseFloat(fields[2], 64)
		if werr != nil || herr != nil {
			r.printf("error: %s\n", domain.ErrInvalidDimension)
			return false
		}
		if err := r.settings.checkDimensions(width, height); err != nil {
			r.printf("error: %s\n", err)
			return false
		}
		g, err := domain.NewGameStateFromFloat(width, height,
			domain.NewPlayer(domain.Player1, fields[3]), domain.NewPlayer(domain.Player2, fields[4]))
		if err != nil {
			r.printf("error: %s\n", err)
			return false
		}
		r.game = g
		r.printf("new %dx%d game. %s\n", g.Width(), g.Height(), Legend(g))
		r.printf("%s", RenderBoard(g))

	default:
		r.printf("unknown command %q, type help\n", fields[0])
	}
	return false
}

func (r *REPL) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
