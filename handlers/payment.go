package handlers

import (
	"errors"
	"net/http"

	"visionhealth/models"
	"visionhealth/services/payment"
	"visionhealth/utils"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Service payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// CreatePaymentIntent returns the gateway client secret for {price}.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var input models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payment intent payload", err.Error())
		return
	}
	resp, err := h.Service.CreateIntent(c.Request.Context(), input.Price)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		internalError(c, "Failed to create payment intent", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePayment records a payment and marks its booking paid.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var input models.Payment
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payment payload", err.Error())
		return
	}
	result, err := h.Service.Settle(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidPayment):
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, payment.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, payment.ErrBookingNotFound.Error(), "")
		case errors.Is(err, payment.ErrDuplicatePayment), errors.Is(err, payment.ErrAlreadyPaid):
			utils.JSONError(c, http.StatusConflict, err.Error(), "")
		default:
			internalError(c, "Failed to record payment", err)
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
