package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/hotseat-connect4/internal/transport/http/middleware"
)

// Routes bundles what NewRouter mounts. Nil handlers leave their routes out.
type Routes struct {
	Tables         *TableHandler
	Watch          *WatchHandler
	History        *HistoryHandler
	WebSocket      http.HandlerFunc
	Metrics        http.Handler
	AllowedOrigins []string
}

func NewRouter(r Routes) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(r.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if r.Metrics != nil {
		router.GET("/metrics", gin.WrapH(r.Metrics))
	}

	api := router.Group("/api")
	if r.Tables != nil {
		tableAuth := middleware.TableAuth(r.Tables.Tokens)

		api.POST("/tables", r.Tables.CreateTable)
		api.GET("/tables/:id", r.Tables.GetTable)

		// Token-holder routes
		owned := api.Group("/tables/:id")
		owned.Use(tableAuth)
		{
			owned.POST("/moves", r.Tables.MakeMove)
			owned.POST("/new-game", r.Tables.NewGame)
			owned.DELETE("", r.Tables.CloseTable)
		}
	}
	if r.Watch != nil {
		api.GET("/tables", r.Watch.GetLiveTables)
	}
	if r.History != nil {
		api.GET("/history", r.History.GetHistory)
		api.GET("/history/:id", r.History.GetGameDetails)
	}

	// WebSocket Route (table tokens are checked inside the WS handler)
	if r.WebSocket != nil {
		router.GET("/ws", gin.WrapF(r.WebSocket))
	}

	return router
}
