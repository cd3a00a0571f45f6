package config

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// @Summary Client configuration
// @Description Passthrough configuration for the web client (map provider key)
// @Tags config
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/config [get]
func GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"maps_api_key": os.Getenv("MAPS_API_KEY"),
	})
}
