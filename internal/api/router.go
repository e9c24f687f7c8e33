package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"valet_parking/internal/api/handler"
	"valet_parking/internal/api/middleware"
	"valet_parking/internal/domain"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	ParkedCar  *handler.ParkedCarHandler
	Manager    *handler.ManagerHandler
	SuperAdmin *handler.SuperAdminHandler
	LPR        *handler.LPRHandler
	WebSocket  *handler.WebSocketHandler
}

func SetupRouter(h Handlers, authMw *middleware.AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/signup", h.Auth.Signup)
		authRoutes.POST("/login", h.Auth.Login)
	}

	v1 := r.Group("/api/v1")
	v1.Use(authMw.Authenticate())

	userRoutes := v1.Group("/user")
	{
		userRoutes.GET("/profile", h.User.Profile)
		userRoutes.PUT("/update-profile", h.User.UpdateProfile)
		userRoutes.POST("/apply", h.User.Apply)
		userRoutes.GET("/payments", h.User.Payments)

		userRoutes.GET("/cars", h.User.Cars)
		userRoutes.POST("/add-car", h.User.AddCar)
		userRoutes.PUT("/update-car/:id", h.User.UpdateCar)
		userRoutes.DELETE("/delete-car/:id", h.User.DeleteCar)
		userRoutes.POST("/cars/recognize-plate", h.LPR.RecognizePlate)

		userRoutes.POST("/park-car", h.ParkedCar.ParkCar)
		userRoutes.PUT("/retrieve-car/:id", h.ParkedCar.RetrieveCar)
		userRoutes.GET("/active-parked-car", h.ParkedCar.ActiveParkedCar)
		userRoutes.GET("/recent-parked-cars", h.ParkedCar.RecentParkedCars)
	}

	driverRoutes := v1.Group("/driver")
	driverRoutes.Use(authMw.RequireDriver())
	{
		driverRoutes.GET("/parking-cars", h.ParkedCar.LotQueue)
		driverRoutes.GET("/unassigned-cars", h.ParkedCar.UnassignedCars)
		driverRoutes.GET("/assigned-cars", h.ParkedCar.AssignedCars)
		driverRoutes.PUT("/assign/:parkedCarId", h.ParkedCar.Assign)
		driverRoutes.PUT("/update-status/:parkedCarId", h.ParkedCar.UpdateStatus)
		driverRoutes.GET("/ws", h.WebSocket.ServeWS)
	}

	managerRoutes := v1.Group("/manager")
	managerRoutes.Use(authMw.RequireManager())
	{
		managerRoutes.GET("/daily-stats", h.Manager.DailyStats)
		managerRoutes.GET("/parked-cars", h.Manager.ParkedCars)
		managerRoutes.GET("/drivers", h.Manager.Drivers)
	}

	adminRoutes := v1.Group("/superadmin")
	adminRoutes.Use(authMw.RequireSuperAdmin())
	{
		adminRoutes.GET("/parking-spots", h.SuperAdmin.ParkingSpots)
		adminRoutes.POST("/parking-spots", h.SuperAdmin.CreateParkingSpot)
		adminRoutes.GET("/overview/:parkingSpotId", h.SuperAdmin.Overview)
		adminRoutes.GET("/pending-approvals", h.SuperAdmin.PendingManagers())
		adminRoutes.GET("/pending-drivers", h.SuperAdmin.PendingDrivers())
		adminRoutes.POST("/approve-manager/:id", h.SuperAdmin.Approve(domain.StaffManager))
		adminRoutes.POST("/reject-manager/:id", h.SuperAdmin.Reject(domain.StaffManager))
		adminRoutes.POST("/approve-driver/:id", h.SuperAdmin.Approve(domain.StaffDriver))
		adminRoutes.POST("/reject-driver/:id", h.SuperAdmin.Reject(domain.StaffDriver))
	}

	return r
}
