package domain

// ClientMessage is everything a browser may send over the socket.
type ClientMessage struct {
	Type    string  `json:"type"`
	TableID string  `json:"tableId,omitempty"`
	Token   string  `json:"token,omitempty"`
	Column  int     `json:"column"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Color1  string  `json:"color1,omitempty"`
	Color2  string  `json:"color2,omitempty"`
}

type ServerMessage struct {
	Type          string     `json:"type"`
	Message       string     `json:"message,omitempty"`
	TableID       string     `json:"tableId,omitempty"`
	Token         string     `json:"token,omitempty"`
	Width         int        `json:"width,omitempty"`
	Height        int        `json:"height,omitempty"`
	Players       []Player   `json:"players,omitempty"`
	CurrentPlayer int        `json:"currentPlayer,omitempty"`
	Status        GameStatus `json:"status,omitempty"`
	Board         [][]int    `json:"board,omitempty"`
	Outcome       *Outcome   `json:"outcome,omitempty"`
	Winner        int        `json:"winner,omitempty"`
	WinningRun    []Cell     `json:"winningRun,omitempty"`
	MoveCount     int        `json:"moveCount,omitempty"`
	Reason        string     `json:"reason,omitempty"`
}

const (
	MsgCreateTable = "create_table"
	MsgJoinTable   = "join_table"
	MsgLeaveTable  = "leave_table"
	MsgMakeMove    = "make_move"
	MsgNewGame     = "new_game"

	MsgTableCreated = "table_created"
	MsgTableState   = "table_state"
	MsgGameStart    = "game_start"
	MsgMoveMade     = "move_made"
	MsgMoveRejected = "move_rejected"
	MsgGameOver     = "game_over"
	MsgTableClosed  = "table_closed"
	MsgError        = "error"
)

const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
)
