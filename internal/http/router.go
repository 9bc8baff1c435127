package httpx

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tarun1516/yaakai/internal/http/handlers"
	"github.com/Tarun1516/yaakai/internal/http/middleware"
)

// BuildRouter assembles the storefront's HTTP surface. metricsHandler
// may be nil to disable the /metrics endpoint.
func BuildRouter(ah *handlers.AuthHandlers, ch *handlers.CartHandlers, gh *handlers.CatalogHandlers, sessionGate gin.HandlerFunc, logger *slog.Logger, metricsHandler http.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	r.GET("/catalog", gh.List)
	r.GET("/catalog/:id", gh.Get)

	auth := r.Group("/auth")
	auth.POST("/signup", ah.SignUp)
	auth.POST("/login", ah.SignIn)
	auth.POST("/logout", ah.Logout)
	auth.POST("/error/clear", ah.ClearError)
	auth.GET("/me", ah.Me)

	cart := r.Group("/cart").Use(sessionGate)
	cart.GET("", ch.List)
	cart.POST("/items", ch.Add)
	cart.PATCH("/items/:id", ch.UpdateQuantity)
	cart.DELETE("/items/:id", ch.Remove)
	cart.DELETE("", ch.Clear)
	cart.POST("/checkout", ch.Checkout)

	return r
}
