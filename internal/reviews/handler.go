package reviews

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/middleware"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/pagination"
)

// Handler handles HTTP requests for reviews
type Handler struct {
	service *Service
}

// NewHandler creates a new reviews handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit reviews the other party of a completed booking
// POST /api/v1/reviews
func (h *Handler) Submit(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SubmitReviewRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	review, err := h.service.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to submit review")
		return
	}

	common.CreatedResponse(c, review)
}

// Get gets a review by ID
// GET /api/v1/reviews/:id
func (h *Handler) Get(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid review ID")
		return
	}

	review, err := h.service.Get(c.Request.Context(), reviewID)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get review")
		return
	}

	common.SuccessResponse(c, review)
}

// Update edits the caller's review
// PUT /api/v1/reviews/:id
func (h *Handler) Update(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid review ID")
		return
	}

	var req UpdateReviewRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	review, err := h.service.Update(c.Request.Context(), userID, reviewID, &req)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update review")
		return
	}

	common.SuccessResponse(c, review)
}

// Delete removes the caller's review
// DELETE /api/v1/reviews/:id
func (h *Handler) Delete(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid review ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, reviewID); err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete review")
		return
	}

	common.SuccessResponse(c, gin.H{
		"message": "Review deleted successfully",
	})
}

// ListForUser lists the reviews held against a user
// GET /api/v1/users/:id/reviews
func (h *Handler) ListForUser(c *gin.Context) {
	revieweeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid user ID")
		return
	}

	params := pagination.ParseParams(c)

	reviews, total, err := h.service.ListForUser(c.Request.Context(), revieweeID, params.Limit, params.Offset)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	common.SuccessResponseWithMeta(c, reviews, pagination.BuildMeta(params.Limit, params.Offset, total))
}

// RegisterRoutes registers review routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	reviews := r.Group("/api/v1/reviews")
	reviews.Use(middleware.AuthMiddleware(jwtSecret))
	{
		reviews.POST("", h.Submit)
		reviews.GET("/:id", h.Get)
		reviews.PUT("/:id", h.Update)
		reviews.DELETE("/:id", h.Delete)
	}

	users := r.Group("/api/v1/users")
	users.Use(middleware.AuthMiddleware(jwtSecret))
	{
		users.GET("/:id/reviews", h.ListForUser)
	}
}
