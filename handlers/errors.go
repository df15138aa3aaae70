package handlers

import (
	"net/http"

	"visionhealth/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// internalError logs err with the request logger and replies with a generic 500
// that does not leak err.
func internalError(c *gin.Context, msg string, err error) {
	getLogger(c).Error(msg, zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: msg})
}
