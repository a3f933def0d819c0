package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hospital/internal/config"
	"hospital/internal/handler"
	"hospital/internal/middleware"
)

// Handlers groups every HTTP handler the router serves.
type Handlers struct {
	Auth         *handler.AuthHandler
	Patients     *handler.PatientHandler
	Doctors      *handler.DoctorHandler
	Appointments *handler.AppointmentHandler
	Records      *handler.RecordHandler
	Users        *handler.UserHandler
	Health       *handler.HealthHandler
}

// Register wires middleware and routes. gate is the auth middleware every
// /v1 route except the index and the auth endpoints runs behind.
func Register(e *echo.Echo, cfg *config.Config, log zerolog.Logger, gate echo.MiddlewareFunc, h Handlers) {
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log, cfg.IsProduction())

	e.Use(echomw.RequestID())
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.Secure())
	e.Use(echomw.BodyLimit("1M"))
	e.Use(middleware.CORS(cfg.AllowedOrigins, cfg.IsProduction()))

	e.GET("/health", h.Health.Liveness)
	e.GET("/health/ready", h.Health.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Group-level middleware would also guard unmatched /v1 paths, turning
	// their 404 into a 401, so the gate is attached per route.
	v1 := e.Group("/v1")
	admin := middleware.RequireAdmin()

	v1.GET("", handler.Index)
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)

	v1.GET("/patients", h.Patients.List, gate)
	v1.POST("/patients", h.Patients.Create, gate)
	v1.GET("/patients/:id", h.Patients.Get, gate)
	v1.PUT("/patients/:id", h.Patients.Update, gate)
	v1.DELETE("/patients/:id", h.Patients.Delete, gate)

	v1.GET("/doctors", h.Doctors.List, gate)
	v1.POST("/doctors", h.Doctors.Create, gate)

	v1.GET("/appointments", h.Appointments.List, gate)
	v1.POST("/appointments", h.Appointments.Create, gate)

	v1.GET("/records", h.Records.List, gate)
	v1.POST("/records", h.Records.Create, gate)
	v1.GET("/records/:id", h.Records.Get, gate)
	v1.DELETE("/records/:id", h.Records.Delete, gate)

	v1.GET("/users", h.Users.ListUsers, gate, admin)
	v1.POST("/users", h.Users.CreateUser, gate, admin)
	v1.GET("/users/:id", h.Users.GetUser, gate)
	v1.PUT("/users/:id", h.Users.UpdateUser, gate)
	v1.DELETE("/users/:id", h.Users.DeleteUser, gate, admin)

	// A trailing :id param otherwise swallows the rest of the path, so
	// /v1/patients/a/b would reach the gate with id "a/b".
	for _, resource := range []string{"/patients", "/records", "/users"} {
		v1.RouteNotFound(resource+"/:id/*", notFound)
	}
}

func notFound(echo.Context) error {
	return echo.ErrNotFound
}
