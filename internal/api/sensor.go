package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SensorReadings is one snapshot from the live instrument feed
type SensorReadings struct {
	Temperature float64 `json:"temperature"`
	PH          float64 `json:"pH"`
	DO          float64 `json:"DO"`
	TDS         float64 `json:"TDS"`
	Chlorophyll float64 `json:"chlorophyll"`
	TA          float64 `json:"TA"`
	DIC         float64 `json:"DIC"`
}

// SensorDataHandler returns a fixed zero-valued reading set. Placeholder
// contract for a future Bluetooth instrument feed; readings are filled in
// client-side until device integration lands.
func SensorDataHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, SensorReadings{})
	}
}
