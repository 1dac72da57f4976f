package middleware

import (
	"net/http"
	"strings"

	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Roles recognized by the POS. Staff covers the front-of-house terminal;
// Admin additionally manages the staff roster.
const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

// Context keys populated by AuthMiddleware.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextUserRole = "userRole"
)

// AuthMiddleware validates the bearer token and stores the caller's identity
// in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, apiErr := claimsFromHeader(c.GetHeader("Authorization"))
		if apiErr != nil {
			utils.RespondWithError(c, apiErr)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

func claimsFromHeader(authHeader string) (*utils.Claims, *utils.APIError) {
	if authHeader == "" {
		return nil, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Authorization header required.", "")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Invalid authorization header format. Use Bearer <token>.", "")
	}

	claims, err := utils.ValidateToken(parts[1])
	if err != nil {
		return nil, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Invalid or expired token.", err.Error())
	}
	return claims, nil
}

// RoleAuthMiddleware rejects callers whose role is not in allowedRoles.
// It relies on AuthMiddleware having run first.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextUserRole)
		if !exists {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"User role not found in token claims.", ""))
			return
		}

		roleStr, ok := userRole.(string)
		if !ok {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"User role in token is not a string.", ""))
			return
		}

		for _, r := range allowedRoles {
			if strings.EqualFold(roleStr, r) {
				c.Next()
				return
			}
		}

		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"You do not have permission to access this resource.",
			"Required roles: "+strings.Join(allowedRoles, ", ")))
	}
}
