package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
	"github.com/iamasit07/hotseat-connect4/internal/logger"
	"github.com/iamasit07/hotseat-connect4/internal/service/game"
	"github.com/iamasit07/hotseat-connect4/internal/transport/http/middleware"
	"github.com/iamasit07/hotseat-connect4/pkg/auth"
	"github.com/iamasit07/hotseat-connect4/pkg/httputil"
	"github.com/iamasit07/hotseat-connect4/pkg/useragent"
)

type TableHandler struct {
	Tables     *game.TableManager
	Tokens     *auth.TableTokens
	TokenTTL   time.Duration
	Production bool
}

func NewTableHandler(tm *game.TableManager, tokens *auth.TableTokens, tokenTTL time.Duration, production bool) *TableHandler {
	return &TableHandler{Tables: tm, Tokens: tokens, TokenTTL: tokenTTL, Production: production}
}

type createTableResponse struct {
	Table game.TableView `json:"table"`
	Token string         `json:"token"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type moveResponse struct {
	Outcome domain.Outcome `json:"outcome"`
	Table   game.TableView `json:"table"`
}

// bindNewGame accepts an empty body as "all defaults".
func bindNewGame(c *gin.Context) (game.NewGameRequest, bool) {
	var req game.NewGameRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return req, false
	}
	return req, true
}

// CreateTable opens a table and hands back the token that controls it.
func (h *TableHandler) CreateTable(c *gin.Context) {
	req, ok := bindNewGame(c)
	if !ok {
		return
	}

	view, err := h.Tables.CreateTable(req)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.Tokens.Generate(view.TableID)
	if err != nil {
		logger.Log.Errorf("[HTTP] Failed to sign token for table %s: %v", view.TableID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
		return
	}

	logger.Log.Infof("[HTTP] Table %s opened by %s from %s", view.TableID, useragent.Describe(c.Request), useragent.ClientIP(c.Request))
	httputil.SetTableCookie(c.Writer, token, h.TokenTTL, h.Production)
	c.JSON(http.StatusCreated, createTableResponse{Table: view, Token: token})
}

func (h *TableHandler) GetTable(c *gin.Context) {
	view, err := h.Tables.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// MakeMove answers 200 for rejected moves too; the outcome says what happened.
func (h *TableHandler) MakeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	outcome, view, err := h.Tables.HandleMove(authorizedTable(c), *req.Column)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, moveResponse{Outcome: outcome, Table: view})
}

func (h *TableHandler) NewGame(c *gin.Context) {
	req, ok := bindNewGame(c)
	if !ok {
		return
	}

	view, err := h.Tables.NewGame(authorizedTable(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *TableHandler) CloseTable(c *gin.Context) {
	if err := h.Tables.CloseTable(authorizedTable(c)); err != nil {
		writeError(c, err)
		return
	}
	httputil.ClearTableCookie(c.Writer)
	c.Status(http.StatusNoContent)
}

// authorizedTable is the table TableAuth approved; empty when the route skipped it.
func authorizedTable(c *gin.Context) string {
	return c.GetString(middleware.TableIDKey)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrTableNotFound), errors.Is(err, domain.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidDimension), errors.Is(err, domain.ErrInvalidPlayers):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Log.Errorf("[HTTP] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
