package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/middleware"
)

// Handler handles HTTP requests for user profiles
type Handler struct {
	service *Service
}

// NewHandler creates a new users handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get returns a user's public profile
// GET /api/v1/users/:id
func (h *Handler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid user ID")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get profile")
		return
	}

	common.SuccessResponse(c, profile)
}

// UpdateDriverProfile edits the caller's vehicle details
// PUT /api/v1/users/me/driver-profile
func (h *Handler) UpdateDriverProfile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateDriverProfileRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	profile, err := h.service.UpdateDriverProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	common.SuccessResponse(c, profile)
}

// RegisterRoutes registers user routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	users := r.Group("/api/v1/users")
	users.Use(middleware.AuthMiddleware(jwtSecret))
	{
		users.GET("/:id", h.Get)
		users.PUT("/me/driver-profile", middleware.RequireRole("driver"), h.UpdateDriverProfile)
	}
}
