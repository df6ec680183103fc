package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
	"github.com/iamasit07/hotseat-connect4/internal/repository/memory"
	"github.com/iamasit07/hotseat-connect4/internal/service/game"
	"github.com/iamasit07/hotseat-connect4/pkg/auth"
	"github.com/iamasit07/hotseat-connect4/pkg/httputil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router *gin.Engine
	tables *game.TableManager
	repo   *memory.GameRepo
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	repo := memory.NewGameRepo()
	tm := game.NewTableManager(game.DefaultOptions(), game.WithRepository(repo))
	tokens := auth.NewTableTokens("test-secret", time.Hour)

	router := NewRouter(Routes{
		Tables:  NewTableHandler(tm, tokens, time.Hour, false),
		Watch:   NewWatchHandler(tm),
		History: NewHistoryHandler(repo),
		Metrics: http.NotFoundHandler(),
	})
	return &testAPI{router: router, tables: tm, repo: repo}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func (a *testAPI) create(t *testing.T, body any) createTableResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/tables", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return decode[createTableResponse](t, w)
}

func TestHealthz(t *testing.T) {
	a := newTestAPI(t)
	w := a.do(t, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}

func TestCreateTableDefaults(t *testing.T) {
	a := newTestAPI(t)
	w := a.do(t, http.MethodPost, "/api/tables", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[createTableResponse](t, w)

	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.Table.Width != domain.DefaultColumns || resp.Table.Height != domain.DefaultRows {
		t.Errorf("expected default board, got %dx%d", resp.Table.Width, resp.Table.Height)
	}
	if resp.Table.CurrentPlayer != domain.Player1 || resp.Table.Status != domain.StatusActive {
		t.Errorf("unexpected initial view %+v", resp.Table)
	}
	if resp.Table.Players[0].Color != domain.DefaultColor1 || resp.Table.Players[1].Color != domain.DefaultColor2 {
		t.Errorf("unexpected colors %+v", resp.Table.Players)
	}

	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == httputil.TableCookieName && c.Value == resp.Token {
			found = true
		}
	}
	if !found {
		t.Error("expected table cookie to carry the token")
	}
}

func TestCreateTableCustom(t *testing.T) {
	a := newTestAPI(t)
	resp := a.create(t, game.NewGameRequest{Width: 9, Height: 5, Color1: "blue", Color2: "green"})
	if resp.Table.Width != 9 || resp.Table.Height != 5 {
		t.Errorf("expected 9x5, got %dx%d", resp.Table.Width, resp.Table.Height)
	}
	if resp.Table.Players[0].Color != "blue" {
		t.Errorf("expected blue, got %s", resp.Table.Players[0].Color)
	}
}

func TestCreateTableInvalid(t *testing.T) {
	a := newTestAPI(t)
	cases := map[string]any{
		"negative height": game.NewGameRequest{Width: 7, Height: -1},
		"fractional":      game.NewGameRequest{Width: 7.5, Height: 6},
		"too large":       game.NewGameRequest{Width: 1000, Height: 6},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := a.do(t, http.MethodPost, "/api/tables", "", body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tables", bytes.NewBufferString("{broken"))
	a.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body: expected 400, got %d", w.Code)
	}
}

func TestGetTable(t *testing.T) {
	a := newTestAPI(t)
	created := a.create(t, nil)

	w := a.do(t, http.MethodGet, "/api/tables/"+created.Table.TableID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	view := decode[game.TableView](t, w)
	if view.TableID != created.Table.TableID || len(view.Board) != domain.DefaultRows {
		t.Errorf("unexpected view %+v", view)
	}

	if w := a.do(t, http.MethodGet, "/api/tables/nope", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown table: expected 404, got %d", w.Code)
	}
}

func TestMoveRequiresToken(t *testing.T) {
	a := newTestAPI(t)
	created := a.create(t, nil)
	other := a.create(t, nil)
	path := "/api/tables/" + created.Table.TableID + "/moves"

	if w := a.do(t, http.MethodPost, path, "", map[string]int{"column": 0}); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", w.Code)
	}
	if w := a.do(t, http.MethodPost, path, other.Token, map[string]int{"column": 0}); w.Code != http.StatusUnauthorized {
		t.Errorf("foreign token: expected 401, got %d", w.Code)
	}
	if w := a.do(t, http.MethodPost, path, "garbage", map[string]int{"column": 0}); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: expected 401, got %d", w.Code)
	}
}

func TestMoveWithCookie(t *testing.T) {
	a := newTestAPI(t)
	created := a.create(t, nil)

	body := bytes.NewBufferString(`{"column": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/tables/"+created.Table.TableID+"/moves", body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: httputil.TableCookieName, Value: created.Token})
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMoveOutcomes(t *testing.T) {
	a := newTestAPI(t)
	created := a.create(t, game.NewGameRequest{Width: 4, Height: 2})
	path := "/api/tables/" + created.Table.TableID + "/moves"

	move := func(col int) moveResponse {
		t.Helper()
		w := a.do(t, http.MethodPost, path, created.Token, map[string]int{"column": col})
		if w.Code != http.StatusOK {
			t.Fatalf("move %d: expected 200, got %d: %s", col, w.Code, w.Body.String())
		}
		return decode[moveResponse](t, w)
	}

	first := move(0)
	if first.Outcome.Kind != domain.OutcomePlaced || first.Outcome.Row != 1 || first.Outcome.Next != domain.Player2 {
		t.Errorf("unexpected first outcome %+v", first.Outcome)
	}
	if first.Table.Board[1][0] != int(domain.Player1) {
		t.Errorf("disk not on the bottom row: %v", first.Table.Board)
	}

	move(0)
	if full := move(0); full.Outcome.Kind != domain.OutcomeColumnFull || full.Outcome.Row != -1 {
		t.Errorf("expected column_full, got %+v", full.Outcome)
	}
	if out := move(4); out.Outcome.Kind != domain.OutcomeOutOfRangeColumn {
		t.Errorf("expected out_of_range_column, got %+v", out.Outcome)
	}
	if out := move(-1); out.Outcome.Kind != domain.OutcomeOutOfRangeColumn {
		t.Errorf("expected out_of_range_column, got %+v", out.Outcome)
	}

	if w := a.do(t, http.MethodPost, path, created.Token, map[string]string{}); w.Code != http.StatusBadRequest {
		t.Errorf("missing column: expected 400, got %d", w.Code)
	}
}

func TestFinishedGameIsArchived(t *testing.T) {
	a := newTestAPI(t)
	created := a.create(t, nil)
	path := "/api/tables/" + created.Table.TableID + "/moves"

	var last moveResponse
	for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
		w := a.do(t, http.MethodPost, path, created.Token, map[string]int{"column": col})
		last = decode[moveResponse](t, w)
	}
	if last.Outcome.Kind != domain.OutcomeWin || last.Outcome.Player != domain.Player1 {
		t.Fatalf("expected player 1 win, got %+v", last.Outcome)
	}
	if last.Table.Status != domain.StatusWon || len(last.Table.WinningRun) != domain.ToWin {
		t.Errorf("unexpected final view %+v", last.Table)
	}

	w := a.do(t, http.MethodPost, path, created.Token, map[string]int{"column": 3})
	if resp := decode[moveResponse](t, w); resp.Outcome.Kind != domain.OutcomeGameAlreadyOver {
		t.Errorf("expected game_already_over, got %+v", resp.Outcome)
	}

	a.tables.Wait()

	w = a.do(t, http.MethodGet, "/api/history", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", w.Code)
	}
	history := decode[[]historyItem](t, w)
	if len(history) != 1 {
		t.Fatalf("expected 1 archived game, got %d", len(history))
	}
	item := history[0]
	if item.Winner != domain.Player1 || item.WinnerColor != domain.DefaultColor1 || item.EndReason != domain.ReasonConnectFour || item.MovesCount != 7 {
		t.Errorf("unexpected history item %+v", item)
	}

	w = a.do(t, http.MethodGet, "/api/history/"+item.ID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("details: expected 200, got %d", w.Code)
	}
	rec := decode[domain.GameRecord](t, w)
	if len(rec.BoardState) != domain.DefaultRows || len(rec.WinningRun) != domain.ToWin {
		t.Errorf("details missing board: %+v", rec)
	}
}

func TestHistoryErrors(t *testing.T) {
	a := newTestAPI(t)
	if w := a.do(t, http.MethodGet, "/api/history/missing", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if w := a.do(t, http.MethodGet, "/api/history?limit=zero", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	if err := a.repo.SaveGame(context.Background(), domain.GameRecord{GameID: "g1", FinishedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	w := a.do(t, http.MethodGet, "/api/history?limit=500", "", nil)
	if got := decode[[]historyItem](t, w); len(got) != 1 {
		t.Errorf("expected 1 item, got %d", len(got))
	}
}

func TestNewGameReplacesState(t *testing.T) {
	a := newTestAPI(t)
	created := a.create(t, nil)
	base := "/api/tables/" + created.Table.TableID

	a.do(t, http.MethodPost, base+"/moves", created.Token, map[string]int{"column": 3})

	if w := a.do(t, http.MethodPost, base+"/new-game", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	w := a.do(t, http.MethodPost, base+"/new-game", created.Token, game.NewGameRequest{Width: 5, Height: 5})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	view := decode[game.TableView](t, w)
	if view.MoveCount != 0 || view.Width != 5 || view.CurrentPlayer != domain.Player1 {
		t.Errorf("expected fresh 5x5 game, got %+v", view)
	}
	if view.GameID == created.Table.GameID {
		t.Error("new game should get a new game id")
	}
	if view.TableID != created.Table.TableID {
		t.Error("table id should survive a new game")
	}
}

func TestCloseTable(t *testing.T) {
	a := newTestAPI(t)
	created := a.create(t, nil)
	base := "/api/tables/" + created.Table.TableID

	if w := a.do(t, http.MethodDelete, base, created.Token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w := a.do(t, http.MethodGet, base, "", nil); w.Code != http.StatusNotFound {
		t.Errorf("closed table: expected 404, got %d", w.Code)
	}
	if w := a.do(t, http.MethodDelete, base, created.Token, nil); w.Code != http.StatusNotFound {
		t.Errorf("second close: expected 404, got %d", w.Code)
	}
}

func TestLiveTables(t *testing.T) {
	a := newTestAPI(t)
	a.create(t, nil)
	a.create(t, nil)

	w := a.do(t, http.MethodGet, "/api/tables", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if list := decode[[]game.TableSummary](t, w); len(list) != 2 {
		t.Errorf("expected 2 live tables, got %d", len(list))
	}
}

func TestCORS(t *testing.T) {
	router := NewRouter(Routes{AllowedOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("preflight: got %d, origin %q", w.Code, w.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("unknown origin: expected 403, got %d", w.Code)
	}
}

func TestTableRoutesNeedTableAuth(t *testing.T) {
	tm := game.NewTableManager(game.DefaultOptions())
	view, err := tm.CreateTable(game.NewGameRequest{})
	if err != nil {
		t.Fatal(err)
	}

	// mounted without TableAuth the handler has no authorized table to act on
	h := NewTableHandler(tm, auth.NewTableTokens("test-secret", time.Hour), time.Hour, false)
	router := gin.New()
	router.POST("/tables/:id/moves", h.MakeMove)

	req := httptest.NewRequest(http.MethodPost, "/tables/"+view.TableID+"/moves", bytes.NewBufferString(`{"column":0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	got, err := tm.View(context.Background(), view.TableID)
	if err != nil {
		t.Fatal(err)
	}
	if got.MoveCount != 0 {
		t.Errorf("move applied without authorization, move count %d", got.MoveCount)
	}
}
