package cli

import (
	"fmt"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

// Controller is the screen-independent state of the full-screen game: the
// live GameState, the column under the cursor and the last status line.
type Controller struct {
	game   *domain.GameState
	cursor int
	status string

	width, height  int
	color1, color2 string
}

func NewController(width, height int, color1, color2 string, opts ...Option) (*Controller, error) {
	if err := newSettings(opts).checkDimensions(float64(width), float64(height)); err != nil {
		return nil, err
	}
	c := &Controller{width: width, height: height}
	c.color1, c.color2 = color1, color2
	if err := c.NewGame(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewGame throws away the current game and starts an empty one with the same setup.
func (c *Controller) NewGame() error {
	p1, p2 := domain.NewPlayers(c.color1, c.color2)
	g, err := domain.NewGameState(c.width, c.height, p1, p2)
	if err != nil {
		return err
	}
	c.game = g
	c.cursor = g.Width() / 2
	c.status = fmt.Sprintf("%s to move", g.CurrentPlayer().Color)
	return nil
}

func (c *Controller) Game() *domain.GameState { return c.game }
func (c *Controller) Cursor() int             { return c.cursor }
func (c *Controller) Status() string          { return c.status }

// MoveCursor shifts the cursor by delta columns, wrapping at the edges.
func (c *Controller) MoveCursor(delta int) {
	w := c.game.Width()
	c.cursor = ((c.cursor+delta)%w + w) % w
}

// Drop plays the cursor column and updates the status line.
func (c *Controller) Drop() domain.Outcome {
	outcome := c.game.ApplyMove(c.cursor)
	c.status = Describe(c.game, outcome)
	if outcome.Terminal() {
		c.status += " Press n for a new game."
	}
	return outcome
}
