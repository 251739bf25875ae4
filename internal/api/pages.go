package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safetybot/internal/auth"
	"safetybot/internal/service/safety"
)

// RegisterPages attaches the server-rendered HTML routes. The router must
// have its templates loaded before these handlers run.
func (h *Handler) RegisterPages(router *gin.Engine) {
	router.GET("/", h.indexPage)
	router.GET("/login", h.loginPage)
	router.POST("/login", h.loginForm)
	router.GET("/register", h.registerPage)
	router.POST("/register", h.registerForm)
	router.GET("/emergency", h.emergencyPage)
	router.GET("/news", h.newsPage)
	router.GET("/about", h.aboutPage)
	router.GET("/logout", h.logoutPage)

	authed := router.Group("")
	authed.Use(h.auth.PageMiddleware("/login"), h.auth.CSRFMiddleware())
	authed.GET("/dashboard", h.dashboardPage)
	authed.GET("/chat", h.chatPage)
	authed.GET("/report", h.reportPage)
	authed.POST("/report", h.reportForm)
	authed.GET("/admin", h.adminPage)
}

func (h *Handler) indexPage(c *gin.Context) {
	if authToken, err := c.Cookie(h.auth.AuthCookieName()); err == nil && authToken != "" {
		if _, err := h.auth.ValidateToken(c.Request.Context(), authToken); err == nil {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Title": "Community Safety Bot"})
}

func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

func (h *Handler) loginForm(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	user, err := h.safety.Login(c.Request.Context(), username, password)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Title": "Login", "Error": err.Error()})
		return
	}
	authToken, err := h.auth.IssueToken(c.Request.Context(), user.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Title": "Login", "Error": "could not start a session"})
		return
	}
	csrfToken, err := h.auth.NewCSRFToken()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Title": "Login", "Error": "could not start a session"})
		return
	}
	h.setAuthCookies(c, authToken, csrfToken)
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) registerPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

func (h *Handler) registerForm(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	if _, err := h.safety.RegisterUser(c.Request.Context(), username, email, password); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Title":    "Register",
			"Error":    err.Error(),
			"Username": username,
			"Email":    email,
		})
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) logoutPage(c *gin.Context) {
	if authToken, err := c.Cookie(h.auth.AuthCookieName()); err == nil && authToken != "" {
		_ = h.auth.RevokeToken(c.Request.Context(), authToken)
	}
	h.clearAuthCookies(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) dashboardPage(c *gin.Context) {
	userID, _ := auth.UserIDFromContext(c)
	user, err := h.safety.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title": "Dashboard",
		"User":  user,
	})
}

func (h *Handler) chatPage(c *gin.Context) {
	csrfToken, _ := c.Cookie(h.auth.CSRFCookieName())
	c.HTML(http.StatusOK, "chat.html", gin.H{
		"Title":     "Safety Chat",
		"CSRFToken": csrfToken,
	})
}

func (h *Handler) reportPage(c *gin.Context) {
	csrfToken, _ := c.Cookie(h.auth.CSRFCookieName())
	c.HTML(http.StatusOK, "report.html", gin.H{
		"Title":     "Report Content",
		"CSRFToken": csrfToken,
	})
}

func (h *Handler) reportForm(c *gin.Context) {
	userID, _ := auth.UserIDFromContext(c)
	csrfToken, _ := c.Cookie(h.auth.CSRFCookieName())
	contentType := c.PostForm("content_type")
	description := c.PostForm("description")
	report, err := h.safety.CreateReport(c.Request.Context(), userID, contentType, description)
	if err != nil {
		c.HTML(http.StatusBadRequest, "report.html", gin.H{
			"Title":       "Report Content",
			"Error":       err.Error(),
			"Description": description,
			"CSRFToken":   csrfToken,
		})
		return
	}
	c.HTML(http.StatusOK, "report.html", gin.H{
		"Title":     "Report Content",
		"Reference": report.Reference,
		"CSRFToken": csrfToken,
	})
}

func (h *Handler) adminPage(c *gin.Context) {
	userID, _ := auth.UserIDFromContext(c)
	user, err := h.safety.GetUser(c.Request.Context(), userID)
	if err != nil || !user.IsAdmin {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	users, err := h.safety.ListUsers(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin.html", gin.H{"Title": "Admin", "Error": err.Error()})
		return
	}
	reports, err := h.safety.ListReports(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin.html", gin.H{"Title": "Admin", "Error": err.Error()})
		return
	}
	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Title":   "Admin",
		"Users":   users,
		"Reports": reports,
	})
}

func (h *Handler) emergencyPage(c *gin.Context) {
	c.HTML(http.StatusOK, "emergency.html", gin.H{
		"Title": "Emergency Contacts",
		"Contacts": []gin.H{
			{"Name": "National Cyber Crime Helpline", "Number": "1930"},
			{"Name": "Police Emergency", "Number": "112"},
			{"Name": "Women Helpline", "Number": "1091"},
			{"Name": "Child Helpline", "Number": "1098"},
		},
	})
}

func (h *Handler) newsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "news.html", gin.H{
		"Title": "Cyber Safety News",
		"Items": safety.CyberNews(),
	})
}

func (h *Handler) aboutPage(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{"Title": "About"})
}
