package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/iamasit07/hotseat-connect4/internal/cli"
	"github.com/iamasit07/hotseat-connect4/internal/config"
	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

const usage = `usage: connect4 <command> [flags]

commands:
  repl   line-oriented game on stdin/stdout
  play   full-screen terminal game`

func main() {
	// optional, only supplies BOARD_WIDTH / BOARD_HEIGHT / MAX_BOARD_DIMENSION
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", usage)
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(out)
	width := fs.Int("width", config.GetEnvAsInt("BOARD_WIDTH", domain.DefaultColumns), "number of columns")
	height := fs.Int("height", config.GetEnvAsInt("BOARD_HEIGHT", domain.DefaultRows), "number of rows")
	p1 := fs.String("p1", domain.DefaultColor1, "color of player 1")
	p2 := fs.String("p2", domain.DefaultColor2, "color of player 2")
	limit := cli.WithMaxDimension(config.GetEnvAsInt("MAX_BOARD_DIMENSION", cli.DefaultMaxDimension))

	switch args[0] {
	case "repl":
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		repl, err := cli.NewREPL(in, out, *width, *height, *p1, *p2, limit)
		if err != nil {
			return err
		}
		return repl.Run()

	case "play":
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		ctrl, err := cli.NewController(*width, *height, *p1, *p2, limit)
		if err != nil {
			return err
		}
		return cli.Play(ctrl)

	case "help", "-h", "--help":
		fmt.Fprintln(out, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q\n%s", args[0], usage)
}
