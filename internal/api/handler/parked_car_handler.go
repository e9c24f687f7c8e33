package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"valet_parking/internal/api/middleware"
	"valet_parking/internal/api/response"
	"valet_parking/internal/domain"
	"valet_parking/internal/service"
)

// ParkedCarHandler exposes the lifecycle to car owners and drivers.
type ParkedCarHandler struct {
	parkedCars *service.ParkedCarService
}

func NewParkedCarHandler(ps *service.ParkedCarService) *ParkedCarHandler {
	return &ParkedCarHandler{parkedCars: ps}
}

// POST /user/park-car
func (h *ParkedCarHandler) ParkCar(c *gin.Context) {
	var dto domain.ParkCarDTO
	if !bindJSON(c, &dto) {
		return
	}
	res, err := h.parkedCars.CreateParkingSession(c.Request.Context(), middleware.UserID(c), dto)
	if err != nil {
		response.Error(c, "ParkedCarHandler.ParkCar", err)
		return
	}
	response.OK(c, http.StatusCreated, "Car parked successfully", res)
}

// PUT /user/retrieve-car/:id
func (h *ParkedCarHandler) RetrieveCar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	pc, err := h.parkedCars.RequestRetrieval(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.Error(c, "ParkedCarHandler.RetrieveCar", err)
		return
	}
	response.OK(c, http.StatusOK, "Car retrieval requested successfully", pc)
}

// GET /user/active-parked-car
func (h *ParkedCarHandler) ActiveParkedCar(c *gin.Context) {
	v, err := h.parkedCars.ActiveParkedCar(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, "ParkedCarHandler.ActiveParkedCar", err)
		return
	}
	if v == nil {
		response.OK(c, http.StatusOK, "No active parked car", nil)
		return
	}
	response.OK(c, http.StatusOK, "Active parked car fetched successfully", v)
}

// GET /user/recent-parked-cars?page&limit
func (h *ParkedCarHandler) RecentParkedCars(c *gin.Context) {
	var q domain.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	views, page, err := h.parkedCars.RecentParkedCars(c.Request.Context(), middleware.UserID(c), q)
	if err != nil {
		response.Error(c, "ParkedCarHandler.RecentParkedCars", err)
		return
	}
	response.Paged(c, "Recent parked cars fetched successfully", views, page)
}

// GET /driver/parking-cars
func (h *ParkedCarHandler) LotQueue(c *gin.Context) {
	views, err := h.parkedCars.ListLotQueue(c.Request.Context(), middleware.StaffRecord(c))
	if err != nil {
		response.Error(c, "ParkedCarHandler.LotQueue", err)
		return
	}
	response.OK(c, http.StatusOK, "Parking cars fetched successfully", views)
}

// GET /driver/unassigned-cars
func (h *ParkedCarHandler) UnassignedCars(c *gin.Context) {
	views, err := h.parkedCars.ListUnassignedForLot(c.Request.Context(), middleware.StaffRecord(c))
	if err != nil {
		response.Error(c, "ParkedCarHandler.UnassignedCars", err)
		return
	}
	response.OK(c, http.StatusOK, "Unassigned cars fetched successfully", views)
}

// GET /driver/assigned-cars
func (h *ParkedCarHandler) AssignedCars(c *gin.Context) {
	views, err := h.parkedCars.ListAssignedForLot(c.Request.Context(), middleware.StaffRecord(c))
	if err != nil {
		response.Error(c, "ParkedCarHandler.AssignedCars", err)
		return
	}
	response.OK(c, http.StatusOK, "Assigned cars fetched successfully", views)
}

// PUT /driver/assign/:parkedCarId
func (h *ParkedCarHandler) Assign(c *gin.Context) {
	id, ok := idParam(c, "parkedCarId")
	if !ok {
		return
	}
	pc, err := h.parkedCars.AssignDriver(c.Request.Context(), middleware.StaffRecord(c), id)
	if err != nil {
		response.Error(c, "ParkedCarHandler.Assign", err)
		return
	}
	response.OK(c, http.StatusOK, "Driver assigned successfully", pc)
}

// PUT /driver/update-status/:parkedCarId
func (h *ParkedCarHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "parkedCarId")
	if !ok {
		return
	}
	var dto domain.UpdateStatusDTO
	if !bindJSON(c, &dto) {
		return
	}
	pc, err := h.parkedCars.UpdateStatus(c.Request.Context(), middleware.StaffRecord(c), id, dto.Status)
	if err != nil {
		response.Error(c, "ParkedCarHandler.UpdateStatus", err)
		return
	}
	response.OK(c, http.StatusOK, "Status updated successfully", pc)
}
