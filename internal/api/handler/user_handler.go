package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"valet_parking/internal/api/middleware"
	"valet_parking/internal/api/response"
	"valet_parking/internal/domain"
	"valet_parking/internal/service"
)

type UserHandler struct {
	users    *service.UserService
	cars     *service.CarService
	payments *service.PaymentService
}

func NewUserHandler(users *service.UserService, cars *service.CarService, payments *service.PaymentService) *UserHandler {
	return &UserHandler{users: users, cars: cars, payments: payments}
}

// GET /user/profile
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.users.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, "UserHandler.Profile", err)
		return
	}
	response.OK(c, http.StatusOK, "Profile fetched successfully", user)
}

// PUT /user/update-profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var dto domain.UpdateProfileDTO
	if !bindJSON(c, &dto) {
		return
	}
	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.UserID(c), dto)
	if err != nil {
		response.Error(c, "UserHandler.UpdateProfile", err)
		return
	}
	response.OK(c, http.StatusOK, "Profile updated successfully", user)
}

// POST /user/apply
func (h *UserHandler) Apply(c *gin.Context) {
	var dto domain.StaffApplicationDTO
	if !bindJSON(c, &dto) {
		return
	}
	rec, err := h.users.Apply(c.Request.Context(), middleware.UserID(c), dto)
	if err != nil {
		response.Error(c, "UserHandler.Apply", err)
		return
	}
	response.OK(c, http.StatusCreated, "Application submitted for approval", rec)
}

// GET /user/payments
func (h *UserHandler) Payments(c *gin.Context) {
	items, err := h.payments.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, "UserHandler.Payments", err)
		return
	}
	response.OK(c, http.StatusOK, "Payments fetched successfully", items)
}

// GET /user/cars
func (h *UserHandler) Cars(c *gin.Context) {
	cars, err := h.cars.ListCars(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, "UserHandler.Cars", err)
		return
	}
	response.OK(c, http.StatusOK, "Cars fetched successfully", cars)
}

// POST /user/add-car
func (h *UserHandler) AddCar(c *gin.Context) {
	var dto domain.CarDTO
	if !bindJSON(c, &dto) {
		return
	}
	car, err := h.cars.AddCar(c.Request.Context(), middleware.UserID(c), dto)
	if err != nil {
		response.Error(c, "UserHandler.AddCar", err)
		return
	}
	response.OK(c, http.StatusCreated, "Car added successfully", car)
}

// PUT /user/update-car/:id
func (h *UserHandler) UpdateCar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var dto domain.CarDTO
	if !bindJSON(c, &dto) {
		return
	}
	car, err := h.cars.UpdateCar(c.Request.Context(), middleware.UserID(c), id, dto)
	if err != nil {
		response.Error(c, "UserHandler.UpdateCar", err)
		return
	}
	response.OK(c, http.StatusOK, "Car updated successfully", car)
}

// DELETE /user/delete-car/:id
func (h *UserHandler) DeleteCar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.cars.DeleteCar(c.Request.Context(), middleware.UserID(c), id); err != nil {
		response.Error(c, "UserHandler.DeleteCar", err)
		return
	}
	response.OK(c, http.StatusOK, "Car deleted successfully", nil)
}
