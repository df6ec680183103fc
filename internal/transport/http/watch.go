package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/hotseat-connect4/internal/service/game"
)

type WatchHandler struct {
	Tables *game.TableManager
}

func NewWatchHandler(tm *game.TableManager) *WatchHandler {
	return &WatchHandler{Tables: tm}
}

// GetLiveTables returns every live table available for spectating
func (h *WatchHandler) GetLiveTables(c *gin.Context) {
	c.JSON(http.StatusOK, h.Tables.ActiveTables())
}
