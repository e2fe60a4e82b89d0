package handlers

import (
	"html/template"
	"io/fs"
	"net/http"

	"guidehub/internal/logger"
	"guidehub/internal/service"
	"guidehub/web"

	"github.com/gin-gonic/gin"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	activity *activityHub
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log, activity: newActivityHub()}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))
	if static, err := fs.Sub(web.Static, "static"); err == nil {
		router.StaticFS("/static", http.FS(static))
	}

	// Populates the current admin (if any) for every request; never gates.
	router.Use(h.identityMiddleware)

	// Health endpoint
	router.GET("/health", h.health)

	// Public content
	router.GET("/", h.index)
	router.GET("/guides/:name", h.guideDetail)

	// Auth endpoints
	router.GET("/login", h.loginForm)
	router.POST("/login", h.login)
	router.GET("/register", h.registerForm)
	router.POST("/register", h.register)
	router.GET("/logout", h.logout)

	// Admin endpoints (gated)
	h.registerAdminRoutes(router)

	// Anything unmatched renders the not-found view
	router.NoRoute(h.notFound)

	return router
}

func (h *Handler) registerAdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin", h.requireAdmin)
	{
		admin.GET("", h.dashboard)
		admin.POST("/add", h.addGuide)
		admin.GET("/edit/:id", h.editGuideForm)
		admin.POST("/edit/:id", h.editGuide)
		admin.POST("/delete/:id", h.deleteGuide)
		admin.POST("/categories/add", h.addCategory)
		admin.POST("/categories/delete/:id", h.deleteCategory)
		admin.GET("/ws", h.wsConnect)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{})
}

// render500 logs the underlying failure and shows the generic error view.
// Internal detail never reaches the client.
func (h *Handler) render500(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
}
