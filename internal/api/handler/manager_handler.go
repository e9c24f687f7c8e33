package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"valet_parking/internal/api/middleware"
	"valet_parking/internal/api/response"
	"valet_parking/internal/domain"
	"valet_parking/internal/service"
)

type ManagerHandler struct {
	managers *service.ManagerService
}

func NewManagerHandler(ms *service.ManagerService) *ManagerHandler {
	return &ManagerHandler{managers: ms}
}

// GET /manager/daily-stats
func (h *ManagerHandler) DailyStats(c *gin.Context) {
	stats, err := h.managers.DailyStats(c.Request.Context(), middleware.StaffRecord(c))
	if err != nil {
		response.Error(c, "ManagerHandler.DailyStats", err)
		return
	}
	response.OK(c, http.StatusOK, "Daily statistics fetched successfully", stats)
}

// GET /manager/parked-cars?page&limit&keyword&status
func (h *ManagerHandler) ParkedCars(c *gin.Context) {
	var q domain.ParkedCarSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	views, page, err := h.managers.SearchParkedCars(c.Request.Context(), middleware.StaffRecord(c), q)
	if err != nil {
		response.Error(c, "ManagerHandler.ParkedCars", err)
		return
	}
	response.Paged(c, "Parked cars fetched successfully", views, page)
}

// GET /manager/drivers
func (h *ManagerHandler) Drivers(c *gin.Context) {
	drivers, err := h.managers.Drivers(c.Request.Context(), middleware.StaffRecord(c))
	if err != nil {
		response.Error(c, "ManagerHandler.Drivers", err)
		return
	}
	response.OK(c, http.StatusOK, "Drivers fetched successfully", drivers)
}
