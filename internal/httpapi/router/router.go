package router

import (
	"net/http"
	"time"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/auth"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/httpapi/handler"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/httpapi/middleware"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the handlers mounted by New.
type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Product        *handler.ProductHandler
	Cart           *handler.CartHandler
	Order          *handler.OrderHandler
	Recommendation *handler.RecommendationHandler
}

// New builds the gin engine with all routes mounted under /api.
func New(h Handlers, jwtService *auth.JWTService, log *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(log))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   "ventas-inteligentes",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := engine.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login", h.Auth.Login)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.GetByID)
		products.GET("/:id/similar", h.Recommendation.SimilarProducts)
	}

	adminProducts := api.Group("/products")
	adminProducts.Use(middleware.Authenticate(jwtService), middleware.RequireRole(domain.RoleAdmin))
	{
		adminProducts.POST("", h.Product.Create)
		adminProducts.PUT("/:id", h.Product.Update)
		adminProducts.DELETE("/:id", h.Product.Delete)
	}

	users := api.Group("/users")
	users.Use(middleware.Authenticate(jwtService))
	{
		users.GET("/profile", h.User.GetProfile)
		users.PUT("/profile", h.User.UpdateProfile)
	}

	cart := api.Group("/cart")
	cart.Use(middleware.Authenticate(jwtService))
	{
		cart.GET("", h.Cart.GetCart)
		cart.POST("/items", h.Cart.AddToCart)
		cart.PUT("/items/:itemId", h.Cart.UpdateCartItem)
		cart.DELETE("/items/:itemId", h.Cart.RemoveFromCart)
		cart.DELETE("", h.Cart.ClearCart)
	}

	orders := api.Group("/orders")
	orders.Use(middleware.Authenticate(jwtService))
	{
		orders.POST("", h.Order.Checkout)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.GetByID)
	}

	recommendations := api.Group("/recommendations")
	recommendations.Use(middleware.Authenticate(jwtService))
	{
		recommendations.GET("", h.Recommendation.ForUser)
		recommendations.GET("/product/:id", h.Recommendation.SimilarProducts)
		recommendations.GET("/accuracy",
			middleware.RequireRole(domain.RoleAdmin), h.Recommendation.Accuracy)
		recommendations.POST("/train",
			middleware.RequireRole(domain.RoleAdmin), h.Recommendation.Train)
	}

	return engine
}
