// Package web provides API routes for the web server.
package web

import (
	"net/http"

	"github.com/PancyStudios/PancyModGo/internal/status"
	"github.com/gin-gonic/gin"
)

// Bot is the gateway client described by /api/bot
type Bot interface {
	IsReady() bool
	SelfID() string
	Username() string
	GuildCount() int
}

// Reporter builds the runtime report served by /api/status and /api/state
type Reporter interface {
	Report() status.Report
}

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server, bot Bot, reporter Reporter) {
	h := &apiHandlers{bot: bot, reporter: reporter}

	api := s.Group("/api")
	{
		api.GET("/status", h.statusHandler)
		api.GET("/health", h.healthHandler)
		api.GET("/bot", h.botInfoHandler)
		api.GET("/state", h.stateHandler)
	}
}

type apiHandlers struct {
	bot      Bot
	reporter Reporter
}

// statusHandler returns the bot and broker status
func (h *apiHandlers) statusHandler(c *gin.Context) {
	report := h.reporter.Report()

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"bot": gin.H{
			"isOnline": report.Bot.Online,
			"guilds":   report.Bot.Guilds,
			"latency":  report.Bot.LatencyMs,
			"uptime":   report.Bot.Uptime,
			"version":  report.Bot.Version,
		},
		"mqtt": gin.H{
			"isOnline": report.MQTTConnected,
		},
		"errors": report.ErrorCount,
	})
}

// healthHandler returns a simple health check response
func (h *apiHandlers) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyMod Go is running",
	})
}

// botInfoHandler returns information about the bot
func (h *apiHandlers) botInfoHandler(c *gin.Context) {
	if h.bot == nil || !h.bot.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       h.bot.SelfID(),
		"username": h.bot.Username(),
		"guilds":   h.bot.GuildCount(),
		"isReady":  true,
	})
}

// stateHandler returns the table sizes and the games in progress
func (h *apiHandlers) stateHandler(c *gin.Context) {
	report := h.reporter.Report()

	c.JSON(http.StatusOK, gin.H{
		"state":           report.State,
		"sessions":        report.Sessions,
		"eventsProcessed": report.EventsProcessed,
		"generatedAt":     report.GeneratedAt,
	})
}
