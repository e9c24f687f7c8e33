package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"valet_parking/internal/api/response"
	"valet_parking/internal/domain"
	"valet_parking/internal/service"
)

type SuperAdminHandler struct {
	admin *service.AdminService
}

func NewSuperAdminHandler(as *service.AdminService) *SuperAdminHandler {
	return &SuperAdminHandler{admin: as}
}

// GET /superadmin/parking-spots
func (h *SuperAdminHandler) ParkingSpots(c *gin.Context) {
	spots, err := h.admin.ParkingSpots(c.Request.Context())
	if err != nil {
		response.Error(c, "SuperAdminHandler.ParkingSpots", err)
		return
	}
	response.OK(c, http.StatusOK, "Parking spots fetched successfully", spots)
}

// POST /superadmin/parking-spots
func (h *SuperAdminHandler) CreateParkingSpot(c *gin.Context) {
	var dto domain.ParkingSpotDTO
	if !bindJSON(c, &dto) {
		return
	}
	spot, err := h.admin.CreateParkingSpot(c.Request.Context(), dto)
	if err != nil {
		response.Error(c, "SuperAdminHandler.CreateParkingSpot", err)
		return
	}
	response.OK(c, http.StatusCreated, "Parking spot created successfully", spot)
}

// GET /superadmin/overview/:parkingSpotId
func (h *SuperAdminHandler) Overview(c *gin.Context) {
	id, ok := idParam(c, "parkingSpotId")
	if !ok {
		return
	}
	ov, err := h.admin.Overview(c.Request.Context(), id)
	if err != nil {
		response.Error(c, "SuperAdminHandler.Overview", err)
		return
	}
	response.OK(c, http.StatusOK, "Overview fetched successfully", ov)
}

func (h *SuperAdminHandler) pending(kind domain.StaffKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := h.admin.PendingApprovals(c.Request.Context(), kind)
		if err != nil {
			response.Error(c, "SuperAdminHandler.Pending", err)
			return
		}
		response.OK(c, http.StatusOK, "Pending approvals fetched successfully", list)
	}
}

// GET /superadmin/pending-approvals
func (h *SuperAdminHandler) PendingManagers() gin.HandlerFunc { return h.pending(domain.StaffManager) }

// GET /superadmin/pending-drivers
func (h *SuperAdminHandler) PendingDrivers() gin.HandlerFunc { return h.pending(domain.StaffDriver) }

// Approve serves POST /superadmin/approve-manager/:id and approve-driver/:id.
func (h *SuperAdminHandler) Approve(kind domain.StaffKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := h.admin.Approve(c.Request.Context(), kind, id); err != nil {
			response.Error(c, "SuperAdminHandler.Approve", err)
			return
		}
		response.OK(c, http.StatusOK, "Approved successfully", nil)
	}
}

// Reject serves POST /superadmin/reject-manager/:id and reject-driver/:id.
func (h *SuperAdminHandler) Reject(kind domain.StaffKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := h.admin.Reject(c.Request.Context(), kind, id); err != nil {
			response.Error(c, "SuperAdminHandler.Reject", err)
			return
		}
		response.OK(c, http.StatusOK, "Rejected successfully", nil)
	}
}
