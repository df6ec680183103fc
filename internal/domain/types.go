package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	DefaultColumns = 7
	DefaultRows    = 6
	ToWin          = 4
)

const (
	DefaultColor1 = "red"
	DefaultColor2 = "yellow"
)

// Player is immutable once created. Color is a display token the rules never look at.
type Player struct {
	ID    PlayerID `json:"id"`
	Color string   `json:"color"`
}

func NewPlayer(id PlayerID, color string) Player {
	return Player{ID: id, Color: color}
}

// NewPlayers builds the usual pair with ids 1 and 2, falling back to the default colors.
func NewPlayers(color1, color2 string) (Player, Player) {
	if color1 == "" {
		color1 = DefaultColor1
	}
	if color2 == "" {
		color2 = DefaultColor2
	}
	return NewPlayer(Player1, color1), NewPlayer(Player2, color2)
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidDimension Error = "board dimensions must be finite positive integers"
	ErrInvalidPlayers   Error = "players must have distinct non-empty ids"
	ErrColumnFull       Error = "column is full"
	ErrColumnOutOfRange Error = "column out of range"
	ErrGameOver         Error = "game is already over"
	ErrGameNotFound     Error = "game not found"
)
