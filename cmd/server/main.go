package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"hospital/docs"
	"hospital/internal/auth"
	"hospital/internal/cache"
	"hospital/internal/config"
	"hospital/internal/db"
	"hospital/internal/handler"
	"hospital/internal/health"
	"hospital/internal/logger"
	"hospital/internal/middleware"
	"hospital/internal/repository"
	"hospital/internal/router"
	"hospital/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Hospital System API
// @version 1.0
// @description Patients, doctors, appointments and medical records behind JWT authentication.
// @host localhost:8080
// @BasePath /v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet; fall back to its defaults.
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	gormDB, err := db.Open(cfg.Database, db.GormConfig(log, cfg.IsProduction()))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("database init")
	}

	if cfg.Database.Reset {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal().Err(err).Msg("reset database")
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("database handle")
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	userRepo := repository.NewUserRepository(gormDB)
	patientRepo := repository.NewPatientRepository(gormDB)
	doctorRepo := repository.NewDoctorRepository(gormDB)
	appointmentRepo := repository.NewAppointmentRepository(gormDB)
	recordRepo := repository.NewRecordRepository(gormDB)

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiresIn.Duration())

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, cacheClient)
	patientService := service.NewPatientService(patientRepo)
	doctorService := service.NewDoctorService(doctorRepo, cacheClient)
	appointmentService := service.NewAppointmentService(appointmentRepo, patientRepo, doctorRepo)
	recordService := service.NewRecordService(recordRepo, patientRepo, doctorRepo)

	e := echo.New()
	router.Register(e, cfg, log, middleware.Auth(tokens, userRepo), router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Patients:     handler.NewPatientHandler(patientService),
		Doctors:      handler.NewDoctorHandler(doctorService),
		Appointments: handler.NewAppointmentHandler(appointmentService),
		Records:      handler.NewRecordHandler(recordService),
		Users:        handler.NewUserHandler(userService),
		Health:       handler.NewHealthHandler(health.NewChecker(sqlDB, cacheClient)),
	})

	docs.SwaggerInfo.Host = swaggerHost(cfg)
	log.Info().Str("url", swaggerURL(docs.SwaggerInfo.Host)).Msg("swagger documentation available")

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := cacheClient.Close(); err != nil {
		log.Warn().Err(err).Msg("close cache")
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("close database")
	}
	log.Info().Msg("server stopped")
}

// swaggerHost strips any scheme from SWAGGER_HOST; the swagger document
// carries a bare host and lists schemes separately.
func swaggerHost(cfg *config.Config) string {
	if cfg.SwaggerHost == "" {
		return "localhost:" + cfg.Port
	}
	host := strings.TrimPrefix(cfg.SwaggerHost, "https://")
	return strings.TrimPrefix(host, "http://")
}

func swaggerURL(host string) string {
	return "http://" + host + "/swagger/index.html"
}
