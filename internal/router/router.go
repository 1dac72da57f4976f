package router

import (
	"database/sql"

	"resto_pos_backend/internal/handlers"
	"resto_pos_backend/internal/middleware"
	"resto_pos_backend/internal/repositories"
	"resto_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	staffRepo := repositories.NewStaffRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	productService := services.NewProductService(productRepo, db)
	orderService := services.NewOrderService(orderRepo, productRepo, db)
	memberService := services.NewMemberService(memberRepo, db)
	staffService := services.NewStaffService(staffRepo, db)
	analyticsService := services.NewAnalyticsService(orderRepo, productRepo, services.DefaultSalesRules())

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	memberHandler := handlers.NewMemberHandler(memberService)
	staffHandler := handlers.NewStaffHandler(staffService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Everything else requires a valid token.
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)

		SetupOrderRoutes(authenticated, orderHandler)
		SetupProductRoutes(authenticated, productHandler)
		SetupMemberRoutes(authenticated, memberHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupAnalyticsRoutes(authenticated, analyticsHandler)
	}
}

// SetupPublicAuthRoutes registers the auth routes that need no token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.RegisterUser)
	group.POST("/login", authHandler.LoginUser)
}

// SetupAuthenticatedAuthRoutes registers auth routes behind the token check.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
}
