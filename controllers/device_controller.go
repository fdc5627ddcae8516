package controllers

import (
	"net/http"

	"healthtrack/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	Push *services.PushService // nil when SNS is not configured
}

func NewDeviceController(ps *services.PushService) *DeviceController {
	return &DeviceController{Push: ps}
}

func (dc *DeviceController) Register(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	if dc.Push == nil {
		respondError(c, services.ErrUnavailable)
		return
	}

	var req services.RegisterDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := dc.Push.RegisterDevice(c.Request.Context(), uid, req.Platform, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": dev.ID, "endpoint_arn": dev.EndpointARN})
}
