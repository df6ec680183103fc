package cli

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

const cellWidth = 3

// BoardView draws a Controller onto a tview box.
type BoardView struct {
	Box  *tview.Box
	ctrl *Controller
}

func NewBoardView(ctrl *Controller) *BoardView {
	bv := &BoardView{Box: tview.NewBox(), ctrl: ctrl}
	bv.Box.SetBorder(true).SetTitle(" connect four ")
	bv.Box.SetDrawFunc(bv.draw)
	return bv
}

func (bv *BoardView) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	g := bv.ctrl.Game()
	ix, iy := x+2, y+1

	p1, p2 := g.Players()
	colors := map[domain.PlayerID]tcell.Color{
		domain.Player1: playerColor(p1.Color, tcell.ColorRed),
		domain.Player2: playerColor(p2.Color, tcell.ColorYellow),
	}
	run := make(map[domain.Cell]bool)
	for _, c := range g.WinningRun() {
		run[c] = true
	}

	// cursor row shows the disk about to drop
	if !g.GameOver() {
		style := tcell.StyleDefault.Foreground(colors[g.CurrentPlayer().ID])
		screen.SetContent(ix+bv.ctrl.Cursor()*cellWidth+1, iy, '●', nil, style)
	}

	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			cx, cy := ix+col*cellWidth, iy+1+row
			id := g.At(row, col)
			style := tcell.StyleDefault.Foreground(tcell.ColorGray)
			r := '·'
			if id != domain.Empty {
				style = tcell.StyleDefault.Foreground(colors[id])
				r = '●'
				if run[domain.Cell{Row: row, Column: col}] {
					style = style.Reverse(true)
				}
			}
			if col == bv.ctrl.Cursor() {
				style = style.Background(tcell.ColorDarkSlateGray)
			}
			screen.SetContent(cx, cy, ' ', nil, style)
			screen.SetContent(cx+1, cy, r, nil, style)
			screen.SetContent(cx+2, cy, ' ', nil, style)
		}
	}

	footer := iy + 1 + g.Height()
	for col := 0; col < g.Width(); col++ {
		screen.SetContent(ix+col*cellWidth+1, footer, rune('0'+col%10), nil, tcell.StyleDefault)
	}
	return x, y, width, height
}

// playerColor maps a color token onto the terminal palette.
func playerColor(name string, fallback tcell.Color) tcell.Color {
	if c := tcell.GetColor(name); c != tcell.ColorDefault {
		return c
	}
	return fallback
}

// HandleKey applies a key press to the controller. It returns false when the player asked to quit.
func HandleKey(ctrl *Controller, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		ctrl.MoveCursor(-1)
	case tcell.KeyRight:
		ctrl.MoveCursor(1)
	case tcell.KeyEnter:
		ctrl.Drop()
	case tcell.KeyEscape:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			ctrl.Drop()
		case 'h':
			ctrl.MoveCursor(-1)
		case 'l':
			ctrl.MoveCursor(1)
		case 'n':
			// same dimensions as the running game, which were already validated
			_ = ctrl.NewGame()
		case 'q':
			return false
		default:
			if ev.Rune() >= '0' && ev.Rune() <= '9' {
				col := int(ev.Rune() - '0')
				if col < ctrl.Game().Width() {
					ctrl.cursor = col
				}
			}
		}
	}
	return true
}

// Play runs the full-screen game until the player quits.
func Play(ctrl *Controller) error {
	app := tview.NewApplication()
	board := NewBoardView(ctrl)

	hint := tview.NewTextView().SetDynamicColors(false)
	hint.SetText(ctrl.Status())
	keys := tview.NewTextView().
		SetText("←/→ choose  enter/space drop  n new game  q quit")

	g := ctrl.Game()
	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(board.Box, g.Height()+4, 0, true).
		AddItem(hint, 1, 0, false).
		AddItem(keys, 1, 0, false).
		AddItem(tview.NewBox(), 0, 1, false)

	app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if !HandleKey(ctrl, ev) {
			app.Stop()
			return nil
		}
		hint.SetText(ctrl.Status())
		return nil
	})

	return app.SetRoot(layout, true).Run()
}
