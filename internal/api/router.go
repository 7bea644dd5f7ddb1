package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/perusahaan-a/employee-api/docs"
	"github.com/perusahaan-a/employee-api/internal/api/handler"
	"github.com/perusahaan-a/employee-api/internal/api/middleware"
	"github.com/perusahaan-a/employee-api/internal/core/service"
	mongodb "github.com/perusahaan-a/employee-api/internal/infrastructure/db/mongo"
	redisdb "github.com/perusahaan-a/employee-api/internal/infrastructure/db/redis"
	"github.com/perusahaan-a/employee-api/internal/infrastructure/upstream"
	"github.com/perusahaan-a/employee-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("employee_api"))

	// --- Dependencies ---
	employeeRepo := mongodb.NewEmployeeRepository(db)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	throttle := redisdb.NewLoginThrottle(rdb)
	employeeService := service.NewEmployeeService(employeeRepo, tokenService, throttle, log)

	attendanceClient := upstream.NewAttendanceClient(cfg.Attendance.URL, cfg.Attendance.Timeout)
	attendanceService := service.NewAttendanceService(attendanceClient, log)

	employeeHandler := handler.NewEmployeeHandler(employeeService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	auth := middleware.Auth(tokenService, employeeRepo)
	admin := middleware.RequireAdmin()

	// --- API routes ---
	v1 := e.Group("/api/v1")
	v1.GET("", welcome)

	employee := v1.Group("/employee")
	employee.POST("/register", employeeHandler.Register)
	employee.POST("/login", employeeHandler.Login)
	employee.GET("/profile", employeeHandler.GetProfile, auth)
	employee.PUT("/profile", employeeHandler.UpdateProfile, auth)
	employee.DELETE("/profile", employeeHandler.DeleteProfile, auth)
	employee.POST("/mark", attendanceHandler.Mark, auth)
	employee.POST("/leave", attendanceHandler.RequestLeave, auth)
	employee.PUT("/leave/:id/status", attendanceHandler.UpdateLeaveStatus, auth, admin)
	employee.GET("/report", attendanceHandler.Report, auth)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

func welcome(c echo.Context) error {
	return c.String(http.StatusOK, "Welcome to the Perusahaan A API")
}
