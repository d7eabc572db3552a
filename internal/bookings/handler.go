package bookings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/middleware"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/pagination"
)

// Handler handles HTTP requests for bookings
type Handler struct {
	service *Service
}

// NewHandler creates a new bookings handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create books seats on a ride
// POST /api/v1/bookings
func (h *Handler) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateBookingRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	booking, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create booking")
		return
	}

	common.CreatedResponse(c, booking)
}

// Get gets a booking by ID
// GET /api/v1/bookings/:id
func (h *Handler) Get(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid booking ID")
		return
	}

	booking, err := h.service.Get(c.Request.Context(), bookingID, userID)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get booking")
		return
	}

	common.SuccessResponse(c, booking)
}

// UpdateStatus moves a booking through its lifecycle
// PATCH /api/v1/bookings/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid booking ID")
		return
	}

	var req UpdateBookingStatusRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), bookingID, userID, models.BookingStatus(req.Status))
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update booking")
		return
	}

	common.SuccessResponse(c, booking)
}

// ListMine lists the caller's bookings
// GET /api/v1/bookings
func (h *Handler) ListMine(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	params := pagination.ParseParams(c)

	bookings, total, err := h.service.ListMine(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}

	common.SuccessResponseWithMeta(c, bookings, pagination.BuildMeta(params.Limit, params.Offset, total))
}

// ListForRide lists all bookings on a ride the caller drives
// GET /api/v1/rides/:id/bookings
func (h *Handler) ListForRide(c *gin.Context) {
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

	bookings, err := h.service.ListForRide(c.Request.Context(), rideID, userID)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}

	common.SuccessResponse(c, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// RegisterRoutes registers booking routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	bookings := r.Group("/api/v1/bookings")
	bookings.Use(middleware.AuthMiddleware(jwtSecret))
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.ListMine)
		bookings.GET("/:id", h.Get)
		bookings.PATCH("/:id/status", h.UpdateStatus)
	}

	rides := r.Group("/api/v1/rides")
	rides.Use(middleware.AuthMiddleware(jwtSecret))
	{
		rides.GET("/:id/bookings", h.ListForRide)
	}
}
