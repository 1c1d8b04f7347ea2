package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"viptrip/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	locationService *service.LocationService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(locationService *service.LocationService) *DriverHandler {
	return &DriverHandler{locationService: locationService}
}

// UpdateLocationRequest is the HTTP request body for updating driver location.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateLocation handles POST /v1/drivers/:id/location
func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	driverID, err := parseID(c)
	if err != nil {
		respondError(c, service.ErrInvalidUserID)
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.locationService.UpdateLocation(c.Request.Context(), driverID, req.Lat, req.Lng); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
