package controllers

import (
	"net/http"

	"healthtrack/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dashboard *services.DashboardService
}

func NewDashboardController(dash *services.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: dash}
}

func (dc *DashboardController) Day(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := dc.Dashboard.Day(c.Request.Context(), uid, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (dc *DashboardController) WeeklySummary(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	sum, err := dc.Dashboard.WeeklySummary(c.Request.Context(), uid, c.Query("end"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
