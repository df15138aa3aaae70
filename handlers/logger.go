package handlers

import (
	"visionhealth/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getLogger(c *gin.Context) *zap.Logger {
	return utils.ContextLogger(c)
}
