package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/optistyle/core-engine/internal/eyetest"
	"github.com/optistyle/core-engine/internal/metrics"
)

// RegisterMiscRoutes registers the chat, eye-test and liveness endpoints.
func RegisterMiscRoutes(r *gin.Engine, cfg HandlerConfig) {
	now := cfg.NowFunc
	if now == nil {
		now = time.Now
	}

	status := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "Online",
			"service":   "OptiStyle Core Engine",
			"timestamp": now().UTC().Format(time.RFC3339),
		})
	}
	r.GET("/", status)
	r.GET("/api/status", status)

	r.POST("/api/chat", func(c *gin.Context) {
		var req struct {
			Message string `json:"message" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_message"})
			return
		}

		cfg.Metrics.Count(c.Request.Context(), metrics.ChatRequest)

		reply, err := cfg.Chat.Reply(c.Request.Context(), req.Message)
		if err != nil {
			cfg.Logger.Error().Err(err).Msg("chat completion failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "AI unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	})

	r.POST("/api/eye-test-pdf", func(c *gin.Context) {
		var req eyetest.ReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body"})
			return
		}

		pdf, err := eyetest.RenderReport(req, now().UTC())
		if err != nil {
			cfg.Logger.Error().Err(err).Msg("eye test report rendering failed")
			c.Status(http.StatusInternalServerError)
			return
		}

		c.Header("Content-Disposition", "attachment")
		c.Data(http.StatusOK, "application/pdf", pdf)
	})
}
