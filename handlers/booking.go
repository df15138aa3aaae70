package handlers

import (
	"errors"
	"net/http"

	"visionhealth/middleware"
	"visionhealth/models"
	"visionhealth/services/booking"
	"visionhealth/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// GetBookings lists bookings for ?email=, which must be the caller's own email.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	email := c.Query("email")
	if email != middleware.CallerEmail(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}

	bookings, err := h.Service.ListByEmail(c.Request.Context(), email)
	if err != nil {
		internalError(c, "Failed to load bookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	b, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error(), "")
			return
		}
		internalError(c, "Failed to load booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CreateBooking inserts a booking unless the patient already booked the same
// treatment on that date; the conflict is reported with acknowledged=false.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input models.Booking
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking payload", err.Error())
		return
	}

	result, err := h.Service.Book(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidBooking) {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		internalError(c, "Failed to create booking", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
