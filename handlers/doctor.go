package handlers

import (
	"errors"
	"net/http"

	"visionhealth/models"
	"visionhealth/services/doctor"
	"visionhealth/utils"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	Service doctor.DoctorService
}

func NewDoctorHandler(svc doctor.DoctorService) *DoctorHandler {
	return &DoctorHandler{Service: svc}
}

func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	doctors, err := h.Service.GetAllDoctors(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to fetch doctors", err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var input models.Doctor
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid doctor payload", err.Error())
		return
	}
	result, err := h.Service.AddDoctor(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, doctor.ErrDoctorNameRequired) {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		internalError(c, "Failed to create doctor", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	result, err := h.Service.RemoveDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, doctor.ErrDoctorNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error(), "")
			return
		}
		internalError(c, "Failed to delete doctor", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
