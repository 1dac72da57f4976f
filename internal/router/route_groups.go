package router

import (
	"resto_pos_backend/internal/handlers"
	"resto_pos_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := authenticatedGroup.Group("/orders")
	orderRoutes.Use(middleware.RoleAuthMiddleware(middleware.RoleAdmin, middleware.RoleStaff))
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
		orderRoutes.DELETE("/:id", orderHandler.DeleteOrder)
	}
}

// SetupProductRoutes sets up the product catalog routes.
func SetupProductRoutes(authenticatedGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productRoutes := authenticatedGroup.Group("/products")
	productRoutes.Use(middleware.RoleAuthMiddleware(middleware.RoleAdmin, middleware.RoleStaff))
	{
		productRoutes.POST("", productHandler.CreateProduct)
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.GET("/:id", productHandler.GetProductByID)
		productRoutes.PUT("/:id", productHandler.UpdateProduct)
		productRoutes.DELETE("/:id", productHandler.DeleteProduct)
	}
}

// SetupMemberRoutes sets up the loyalty member routes.
func SetupMemberRoutes(authenticatedGroup *gin.RouterGroup, memberHandler *handlers.MemberHandler) {
	memberRoutes := authenticatedGroup.Group("/members")
	memberRoutes.Use(middleware.RoleAuthMiddleware(middleware.RoleAdmin, middleware.RoleStaff))
	{
		memberRoutes.POST("", memberHandler.CreateMember)
		memberRoutes.GET("", memberHandler.GetMembers)
		memberRoutes.GET("/:id", memberHandler.GetMemberByID)
		memberRoutes.PUT("/:id", memberHandler.UpdateMember)
		memberRoutes.PATCH("/:id/points", memberHandler.AdjustMemberPoints)
		memberRoutes.DELETE("/:id", memberHandler.DeleteMember)
	}
}

// SetupStaffRoutes sets up the staff and attendance routes.
// Write operations on staff records are Admin only; attendance actions are
// open to any authenticated role.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffWriteRoutes := authenticatedGroup.Group("/staff")
	staffWriteRoutes.Use(middleware.RoleAuthMiddleware(middleware.RoleAdmin))
	{
		staffWriteRoutes.POST("", staffHandler.CreateStaffMember)
		staffWriteRoutes.PUT("/:id", staffHandler.UpdateStaffMember)
		staffWriteRoutes.DELETE("/:id", staffHandler.DeleteStaffMember)
	}

	authenticatedGroup.GET("/staff", middleware.RoleAuthMiddleware(middleware.RoleAdmin, middleware.RoleStaff), staffHandler.GetStaffMembers)
	authenticatedGroup.GET("/staff/:id", middleware.RoleAuthMiddleware(middleware.RoleAdmin, middleware.RoleStaff), staffHandler.GetStaffMemberByID)

	attendanceRoutes := authenticatedGroup.Group("/staff/:id/attendance")
	attendanceRoutes.Use(middleware.RoleAuthMiddleware(middleware.RoleAdmin, middleware.RoleStaff))
	{
		attendanceRoutes.POST("/clock-in", staffHandler.ClockIn)
		attendanceRoutes.POST("/clock-out", staffHandler.ClockOut)
		attendanceRoutes.GET("", staffHandler.GetAttendance)
	}
}

// SetupAnalyticsRoutes sets up the sales analytics routes.
func SetupAnalyticsRoutes(authenticatedGroup *gin.RouterGroup, analyticsHandler *handlers.AnalyticsHandler) {
	analyticsRoutes := authenticatedGroup.Group("/analytics")
	analyticsRoutes.Use(middleware.RoleAuthMiddleware(middleware.RoleAdmin, middleware.RoleStaff))
	{
		analyticsRoutes.GET("/sales-summary", analyticsHandler.GetSalesSummary)
	}
}
