package handlers

import (
	"errors"
	"net/http"

	"visionhealth/middleware"
	"visionhealth/models"
	"visionhealth/services/user"
	"visionhealth/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Service user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// IssueToken returns an access token for ?email= when it belongs to a known user.
func (h *UserHandler) IssueToken(c *gin.Context) {
	token, err := h.Service.IssueToken(c.Request.Context(), c.Query("email"))
	if err != nil {
		if errors.Is(err, user.ErrUnknownIdentity) {
			c.JSON(http.StatusForbidden, gin.H{"accessToken": ""})
			return
		}
		internalError(c, "Failed to issue token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.Service.GetAllUsers(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to fetch users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var input models.User
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid user payload", err.Error())
		return
	}
	result, err := h.Service.CreateUser(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, user.ErrEmailRequired) {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		internalError(c, "Failed to create user", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) CheckAdmin(c *gin.Context) {
	isAdmin, err := h.Service.IsAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		internalError(c, "Failed to check role", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": isAdmin})
}

// PromoteUser grants the administrator role to :id. The route is behind
// RequireAdmin; the service repeats the check for callers outside HTTP.
func (h *UserHandler) PromoteUser(c *gin.Context) {
	result, err := h.Service.Promote(c.Request.Context(), middleware.CallerEmail(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotAdmin):
			c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		case errors.Is(err, user.ErrUserNotFound):
			utils.JSONError(c, http.StatusNotFound, err.Error(), "")
		default:
			internalError(c, "Failed to promote user", err)
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
