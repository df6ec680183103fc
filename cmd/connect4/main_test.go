package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

func TestRunREPL(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"repl", "-width", "5", "-height", "4", "-p1", "blue"}, strings.NewReader("move 2\nquit\n"), &out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "connect four, 5x4") {
		t.Errorf("flags not applied:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "blue played column 2 (row 3)") {
		t.Errorf("move not played:\n%s", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	cases := [][]string{
		nil,
		{"fly"},
		{"repl", "-width", "0"},
		{"repl", "-bogus"},
		{"repl", "-width", "2000000000"},
		{"play", "-height", "33"},
	}
	for _, args := range cases {
		if err := run(args, strings.NewReader(""), &bytes.Buffer{}); err == nil {
			t.Errorf("run(%v): expected error", args)
		}
	}
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"help"}, nil, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "repl") {
		t.Errorf("usage missing:\n%s", out.String())
	}
}

func TestRunMaxDimensionFromEnv(t *testing.T) {
	t.Setenv("MAX_BOARD_DIMENSION", "4")

	err := run([]string{"repl", "-width", "5", "-height", "4"}, strings.NewReader(""), &bytes.Buffer{})
	if !errors.Is(err, domain.ErrInvalidDimension) {
		t.Fatalf("expected ErrInvalidDimension, got %v", err)
	}

	var out bytes.Buffer
	if err := run([]string{"repl", "-width", "4", "-height", "4"}, strings.NewReader("new-game 5 4 a b\n"), &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "at most 4") {
		t.Errorf("env cap not applied to new-game:\n%s", out.String())
	}
}
