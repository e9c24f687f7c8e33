package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"valet_parking/internal/api/response"
	"valet_parking/internal/domain"
	"valet_parking/internal/service"
)

type LPRHandler struct {
	lprService *service.LPRService
}

func NewLPRHandler(lprService *service.LPRService) *LPRHandler {
	return &LPRHandler{lprService: lprService}
}

// POST /user/cars/recognize-plate
func (h *LPRHandler) RecognizePlate(c *gin.Context) {
	var req domain.LPRRequestDTO
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.lprService.RecognizePlate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, "LPRHandler.RecognizePlate", err)
		return
	}
	response.OK(c, http.StatusOK, "Plate recognized", res)
}
