package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"safetybot/internal/ai"
	"safetybot/internal/bot"
	"safetybot/internal/risk"
)

// LiteHandler serves the serverless variant: no auth, no persistence,
// canned responses only.
type LiteHandler struct {
	responder ai.Responder
	aiTimeout time.Duration
}

// NewLiteHandler constructs a LiteHandler. A nil responder falls back to
// the canned template set.
func NewLiteHandler(responder ai.Responder, aiTimeout time.Duration) *LiteHandler {
	if responder == nil {
		responder = ai.NewStaticResponder()
	}
	if aiTimeout <= 0 {
		aiTimeout = time.Minute
	}
	return &LiteHandler{responder: responder, aiTimeout: aiTimeout}
}

// RegisterRoutes attaches the lite API routes to the router.
func (h *LiteHandler) RegisterRoutes(router *gin.Engine) {
	router.Use(RequestIDMiddleware(), MetricsMiddleware())

	api := router.Group("/api")
	api.GET("/health", h.health)
	api.POST("/chat", h.chat)
}

func (h *LiteHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Community Safety Bot API is running"})
}

func (h *LiteHandler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": emptyMessageError})
		return
	}

	mode := bot.ParseMode(req.Mode)
	var riskLevel *string
	if mode == bot.ModeMisinformation {
		level := string(risk.Classify(req.Message))
		riskLevel = &level
	}

	aiCtx, cancel := context.WithTimeout(c.Request.Context(), h.aiTimeout)
	defer cancel()
	response := h.responder.Respond(aiCtx, mode, req.Message)
	recordChatMetrics(mode, riskLevel)

	c.JSON(http.StatusOK, chatPayload(mode, response, riskLevel))
}
