package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

func runREPL(t *testing.T, script string) (*REPL, string) {
	t.Helper()
	var out bytes.Buffer
	r, err := NewREPL(strings.NewReader(script), &out, domain.DefaultColumns, domain.DefaultRows, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	return r, out.String()
}

func TestREPLMoveAndBoard(t *testing.T) {
	r, out := runREPL(t, "move 3\nmove 3\nboard\n")

	if !strings.Contains(out, "Placed(row=5, column=3, next=player 2)") {
		t.Errorf("missing first outcome:\n%s", out)
	}
	if !strings.Contains(out, "Placed(row=4, column=3, next=player 1)") {
		t.Errorf("missing second outcome:\n%s", out)
	}
	if r.Game().MoveCount() != 2 {
		t.Errorf("expected 2 moves, got %d", r.Game().MoveCount())
	}
	if !strings.Contains(out, "| . . . X . . . |") {
		t.Errorf("board not printed:\n%s", out)
	}
}

func TestREPLVerticalWin(t *testing.T) {
	_, out := runREPL(t, "move 0\nmove 1\nmove 0\nmove 1\nmove 0\nmove 1\nmove 0\nmove 2\nquit\nmove 3\n")

	if !strings.Contains(out, "Win(player 1, row=2, column=0)") {
		t.Errorf("missing win:\n%s", out)
	}
	if !strings.Contains(out, "GameAlreadyOver") {
		t.Errorf("move after win should be rejected:\n%s", out)
	}
	if !strings.Contains(out, "bye") {
		t.Errorf("quit not handled:\n%s", out)
	}
	// nothing after quit is read
	if strings.Contains(out, "column=3") {
		t.Errorf("command after quit was executed:\n%s", out)
	}
}

func TestREPLNewGame(t *testing.T) {
	r, out := runREPL(t, "move 0\nnew-game 4 3 blue green\n")

	g := r.Game()
	if g.Width() != 4 || g.Height() != 3 || g.MoveCount() != 0 {
		t.Fatalf("expected fresh 4x3 game, got %dx%d with %d moves", g.Width(), g.Height(), g.MoveCount())
	}
	p1, p2 := g.Players()
	if p1.Color != "blue" || p2.Color != "green" {
		t.Errorf("unexpected colors %s %s", p1.Color, p2.Color)
	}
	if !strings.Contains(out, "new 4x3 game") {
		t.Errorf("missing confirmation:\n%s", out)
	}
}

func TestREPLErrors(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"move", "usage: move <column>"},
		{"move x", `not a column: "x"`},
		{"move 7", "OutOfRangeColumn(column=7)"},
		{"move -1", "OutOfRangeColumn(column=-1)"},
		{"new-game 0 6 a b", string(domain.ErrInvalidDimension)},
		{"new-game 7 -1 a b", string(domain.ErrInvalidDimension)},
		{"new-game NaN 6 a b", string(domain.ErrInvalidDimension)},
		{"new-game +Inf 6 a b", string(domain.ErrInvalidDimension)},
		{"new-game 6.5 6 a b", string(domain.ErrInvalidDimension)},
		{"new-game seven 6 a b", string(domain.ErrInvalidDimension)},
		{"new-game 7 6", "usage: new-game"},
		{"dance", `unknown command "dance"`},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			var out bytes.Buffer
			r, err := NewREPL(strings.NewReader(""), &out, 7, 6, "", "")
			if err != nil {
				t.Fatal(err)
			}
			if r.Exec(tc.line) {
				t.Fatal("error should not end the session")
			}
			if !strings.Contains(out.String(), tc.want) {
				t.Errorf("expected %q in output, got:\n%s", tc.want, out.String())
			}
			if r.Game().MoveCount() != 0 {
				t.Error("failed command changed the game")
			}
		})
	}
}

func TestREPLColumnFull(t *testing.T) {
	var out bytes.Buffer
	r, err := NewREPL(strings.NewReader(""), &out, 2, 2, "", "")
	if err != nil {
		t.Fatal(err)
	}
	r.Exec("move 0")
	r.Exec("move 0")
	out.Reset()
	r.Exec("move 0")
	if !strings.Contains(out.String(), "ColumnFull(column=0)") {
		t.Errorf("expected column full, got:\n%s", out.String())
	}
}

func TestNewREPLInvalidDimensions(t *testing.T) {
	for _, d := range [][2]int{{0, 6}, {7, 0}, {2000000000, 2}, {33, 6}} {
		if _, err := NewREPL(strings.NewReader(""), &bytes.Buffer{}, d[0], d[1], "", ""); !errors.Is(err, domain.ErrInvalidDimension) {
			t.Errorf("NewREPL(%dx%d): expected ErrInvalidDimension, got %v", d[0], d[1], err)
		}
	}
}

func TestREPLRejectsHugeDimensions(t *testing.T) {
	for _, line := range []string{
		"new-game 2000000000 2 a b",
		"new-game 2 2000000000 a b",
		"new-game 33 6 a b",
		"new-game 1e300 6 a b",
	} {
		t.Run(line, func(t *testing.T) {
			var out bytes.Buffer
			r, err := NewREPL(strings.NewReader(""), &out, 7, 6, "", "")
			if err != nil {
				t.Fatal(err)
			}
			if r.Exec(line) {
				t.Fatal("error should not end the session")
			}
			if !strings.Contains(out.String(), string(domain.ErrInvalidDimension)+": at most 32") {
				t.Errorf("expected capped dimension error, got:\n%s", out.String())
			}
			if g := r.Game(); g.Width() != 7 || g.Height() != 6 {
				t.Errorf("game replaced by %dx%d", g.Width(), g.Height())
			}
		})
	}
}

func TestREPLMaxDimensionOption(t *testing.T) {
	var out bytes.Buffer
	r, err := NewREPL(strings.NewReader(""), &out, 7, 6, "", "", WithMaxDimension(8))
	if err != nil {
		t.Fatal(err)
	}
	r.Exec("new-game 9 6 a b")
	if !strings.Contains(out.String(), "at most 8") {
		t.Errorf("expected cap of 8, got:\n%s", out.String())
	}

	out.Reset()
	r.Exec("new-game 8 8 a b")
	if g := r.Game(); g.Width() != 8 || g.Height() != 8 {
		t.Errorf("8x8 should be allowed, got %dx%d\n%s", g.Width(), g.Height(), out.String())
	}

	if _, err := NewREPL(strings.NewReader(""), &out, 40, 40, "", "", WithMaxDimension(0)); err != nil {
		t.Errorf("zero cap should disable the limit: %v", err)
	}
}

func TestREPLHelpAndBlankLines(t *testing.T) {
	_, out := runREPL(t, "\n   \nhelp\n")
	if !strings.Contains(out, "new-game <width> <height> <p1> <p2>") {
		t.Errorf("help not printed:\n%s", out)
	}
}
