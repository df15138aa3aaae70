package handlers

import (
	"errors"
	"net/http"

	catalogRepo "visionhealth/database/repository/catalog"
	"visionhealth/models"
	"visionhealth/services/availability"
	"visionhealth/utils"

	"github.com/gin-gonic/gin"
)

// ServiceCatalogHandler serves the appointment service catalog and availability.
type ServiceCatalogHandler struct {
	Service availability.AvailabilityService
}

func NewServiceCatalogHandler(svc availability.AvailabilityService) *ServiceCatalogHandler {
	return &ServiceCatalogHandler{Service: svc}
}

// GetAppointmentServices returns every service with its slots narrowed to the
// ones still open on ?date=.
func (h *ServiceCatalogHandler) GetAppointmentServices(c *gin.Context) {
	date := c.Query("date")
	services, err := h.Service.ForDate(c.Request.Context(), date)
	if err != nil {
		internalError(c, "Failed to load appointment services", err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetSpecialties returns service titles only.
func (h *ServiceCatalogHandler) GetSpecialties(c *gin.Context) {
	specialties, err := h.Service.Specialties(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to load specialties", err)
		return
	}
	c.JSON(http.StatusOK, specialties)
}

func (h *ServiceCatalogHandler) CreateService(c *gin.Context) {
	var input models.AppointmentService
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid service payload", err.Error())
		return
	}
	result, err := h.Service.AddService(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidService) {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		internalError(c, "Failed to create service", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ServiceCatalogHandler) DeleteService(c *gin.Context) {
	result, err := h.Service.RemoveService(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error(), "")
			return
		}
		internalError(c, "Failed to delete service", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
