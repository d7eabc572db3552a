package rides

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/middleware"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/pagination"
)

// Handler handles HTTP requests for rides
type Handler struct {
	service *Service
}

// NewHandler creates a new rides handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create publishes a new ride
// POST /api/v1/rides
func (h *Handler) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateRideRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	ride, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create ride")
		return
	}

	common.CreatedResponse(c, ride)
}

// Get gets a ride by ID
// GET /api/v1/rides/:id
func (h *Handler) Get(c *gin.Context) {
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid ride ID")
		return
	}

	ride, err := h.service.Get(c.Request.Context(), rideID)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get ride")
		return
	}

	common.SuccessResponse(c, ride)
}

// Search lists open rides matching the query filters
// GET /api/v1/rides
func (h *Handler) Search(c *gin.Context) {
	params := pagination.ParseParams(c)

	filters := &SearchFilters{
		UniversityID:     c.Query("university_id"),
		Direction:        c.Query("direction"),
		GenderPreference: c.Query("gender_preference"),
		Date:             c.Query("date"),
		Limit:            params.Limit,
		Offset:           params.Offset,
	}
	if v := c.Query("min_seats"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filters.MinSeats = n
		}
	}
	if latStr, lngStr := c.Query("near_lat"), c.Query("near_lng"); latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid coordinates")
			return
		}
		filters.NearLat = &lat
		filters.NearLng = &lng
		filters.RadiusKm = 5
		if v := c.Query("radius_km"); v != "" {
			r, err := strconv.ParseFloat(v, 64)
			if err != nil || r <= 0 {
				common.ErrorResponse(c, http.StatusBadRequest, "invalid radius")
				return
			}
			filters.RadiusKm = r
		}
	}

	rides, total, err := h.service.Search(c.Request.Context(), filters)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to search rides")
		return
	}

	common.SuccessResponseWithMeta(c, rides, pagination.BuildMeta(params.Limit, params.Offset, total))
}

// ListMine lists the caller's own rides
// GET /api/v1/rides/mine
func (h *Handler) ListMine(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	params := pagination.ParseParams(c)

	rides, total, err := h.service.ListMine(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list rides")
		return
	}

	common.SuccessResponseWithMeta(c, rides, pagination.BuildMeta(params.Limit, params.Offset, total))
}

// Complete finishes a ride and settles its bookings
// POST /api/v1/rides/:id/complete
func (h *Handler) Complete(c *gin.Context) {
	h.finish(c, h.service.Complete)
}

// Cancel calls off a ride and cancels its bookings
// POST /api/v1/rides/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	h.finish(c, h.service.Cancel)
}

func (h *Handler) finish(c *gin.Context, op func(ctx context.Context, rideID, requesterID uuid.UUID) (*models.Ride, error)) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid ride ID")
		return
	}

	ride, err := op(c.Request.Context(), rideID, userID)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update ride")
		return
	}

	common.SuccessResponse(c, ride)
}

// RegisterRoutes registers ride routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	rides := r.Group("/api/v1/rides")
	rides.Use(middleware.AuthMiddleware(jwtSecret))
	{
		rides.GET("", h.Search)
		rides.GET("/mine", h.ListMine)
		rides.GET("/:id", h.Get)
		rides.POST("", middleware.RequireRole("driver"), h.Create)
		rides.POST("/:id/complete", middleware.RequireRole("driver"), h.Complete)
		rides.POST("/:id/cancel", middleware.RequireRole("driver"), h.Cancel)
	}
}
