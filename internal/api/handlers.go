package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"safetybot/internal/ai"
	"safetybot/internal/auth"
	"safetybot/internal/bot"
	"safetybot/internal/metrics"
	"safetybot/internal/models"
	"safetybot/internal/risk"
	"safetybot/internal/service/safety"
)

const (
	emptyMessageError = "Please enter a message"
	timestampLayout   = "2006-01-02 15:04:05"
)

// Handler wires the full-variant HTTP routes to the safety service, auth
// service, and the completion responder.
type Handler struct {
	safety    *safety.Service
	auth      *auth.Service
	responder ai.Responder
	aiTimeout time.Duration
}

// NewHandler constructs a Handler instance.
func NewHandler(service *safety.Service, authService *auth.Service, responder ai.Responder, aiTimeout time.Duration) *Handler {
	if aiTimeout <= 0 {
		aiTimeout = time.Minute
	}
	return &Handler{
		safety:    service,
		auth:      authService,
		responder: responder,
		aiTimeout: aiTimeout,
	}
}

// RegisterRoutes attaches all API routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(RequestIDMiddleware(), MetricsMiddleware())

	api := router.Group("/api")
	api.GET("/health", h.health)
	api.POST("/users/register", h.registerUser)
	api.POST("/users/login", h.loginUser)

	authed := api.Group("")
	authed.Use(h.auth.Middleware(), h.auth.CSRFMiddleware())
	authed.POST("/chat", h.chat)
	authed.GET("/chat/history", h.chatHistory)
	authed.POST("/report", h.createReport)
	authed.GET("/reports", h.listOwnReports)
	authed.POST("/users/logout", h.logoutUser)

	admin := authed.Group("/admin")
	admin.Use(h.requireAdmin())
	admin.GET("/users", h.adminListUsers)
	admin.GET("/reports", h.adminListReports)
	admin.PATCH("/reports/:id", h.adminUpdateReport)
}

func (h *Handler) authorizedUserID(c *gin.Context) (int64, bool) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok || userID <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return 0, false
	}
	return userID, true
}

func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserIDFromContext(c)
		if !ok || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		user, err := h.safety.GetUser(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "lookup user failed"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Community Safety Bot API is running"})
}

// User create & login interface.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) registerUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := h.safety.RegisterUser(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}

func (h *Handler) loginUser(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := h.safety.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	authToken, err := h.auth.IssueToken(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "issue token failed"})
		return
	}
	csrfToken, err := h.auth.NewCSRFToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "issue token failed"})
		return
	}
	h.setAuthCookies(c, authToken, csrfToken)
	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"is_admin":   user.IsAdmin,
		"created_at": user.CreatedAt,
		"auth_token": authToken,
	})
}

func (h *Handler) logoutUser(c *gin.Context) {
	if _, ok := h.authorizedUserID(c); !ok {
		return
	}
	if authToken, ok := auth.AuthTokenFromContext(c); ok {
		_ = h.auth.RevokeToken(c.Request.Context(), authToken)
	}
	h.clearAuthCookies(c)
	c.Status(http.StatusNoContent)
}

// Chat interface.
type chatRequest struct {
	Mode    string `json:"mode"`
	Message string `json:"message"`
}

func (h *Handler) chat(c *gin.Context) {
	userID, ok := h.authorizedUserID(c)
	if !ok {
		return
	}
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

	if _, err := h.safety.RecordExchange(c.Request.Context(), userID, mode.String(), req.Message, response, riskLevel); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save exchange failed"})
		return
	}
	recordChatMetrics(mode, riskLevel)

	c.JSON(http.StatusOK, chatPayload(mode, response, riskLevel))
}

func chatPayload(mode bot.Mode, response string, riskLevel *string) gin.H {
	return gin.H{
		"response":   response,
		"mode":       mode.String(),
		"risk_level": riskLevel,
		"timestamp":  time.Now().UTC().Format(timestampLayout),
	}
}

func recordChatMetrics(mode bot.Mode, riskLevel *string) {
	level := ""
	if riskLevel != nil {
		level = *riskLevel
	}
	metrics.RecordChatExchange(mode.String(), level)
}

func (h *Handler) chatHistory(c *gin.Context) {
	userID, ok := h.authorizedUserID(c)
	if !ok {
		return
	}
	history, err := h.safety.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]gin.H, 0, len(history))
	for _, e := range history {
		out = append(out, gin.H{
			"id":           e.ID,
			"mode":         e.Mode,
			"user_message": e.UserMessage,
			"bot_response": e.BotResponse,
			"risk_level":   e.RiskLevel,
			"created_at":   e.CreatedAt.Format(timestampLayout),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Report interface.
type reportRequest struct {
	ContentType string `json:"content_type"`
	Description string `json:"description"`
}

func (h *Handler) createReport(c *gin.Context) {
	userID, ok := h.authorizedUserID(c)
	if !ok {
		return
	}
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	report, err := h.safety.CreateReport(c.Request.Context(), userID, req.ContentType, req.Description)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":           report.ID,
		"reference":    report.Reference,
		"content_type": report.ContentType,
		"status":       report.Status,
		"created_at":   report.CreatedAt,
	})
}

func (h *Handler) listOwnReports(c *gin.Context) {
	userID, ok := h.authorizedUserID(c)
	if !ok {
		return
	}
	reports, err := h.safety.ListUserReports(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reports == nil {
		reports = make([]models.Report, 0)
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Admin interface.
func (h *Handler) adminListUsers(c *gin.Context) {
	users, err := h.safety.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if users == nil {
		users = make([]models.User, 0)
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *Handler) adminListReports(c *gin.Context) {
	reports, err := h.safety.ListReports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reports == nil {
		reports = make([]models.Report, 0)
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

type reportStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) adminUpdateReport(c *gin.Context) {
	reportID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reportID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}
	var req reportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.safety.UpdateReportStatus(c.Request.Context(), reportID, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Cookie helpers.
func (h *Handler) setAuthCookies(c *gin.Context, authToken, csrfToken string) {
	ttl := int(h.auth.TokenTTL().Seconds())
	if ttl <= 0 {
		ttl = 3600
	}
	secure := gin.Mode() == gin.ReleaseMode
	setCookie(c, &http.Cookie{
		Name:     h.auth.AuthCookieName(),
		Value:    authToken,
		MaxAge:   ttl,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	setCookie(c, &http.Cookie{
		Name:     h.auth.CSRFCookieName(),
		Value:    csrfToken,
		MaxAge:   ttl,
		Path:     "/",
		Secure:   secure,
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearAuthCookies(c *gin.Context) {
	for _, name := range []string{h.auth.AuthCookieName(), h.auth.CSRFCookieName()} {
		setCookie(c, &http.Cookie{
			Name:     name,
			Value:    "",
			MaxAge:   -1,
			Path:     "/",
			Secure:   gin.Mode() == gin.ReleaseMode,
			HttpOnly: name == h.auth.AuthCookieName(),
			SameSite: http.SameSiteStrictMode,
		})
	}
}

func setCookie(c *gin.Context, ck *http.Cookie) {
	if ck == nil {
		return
	}
	http.SetCookie(c.Writer, ck)
}
