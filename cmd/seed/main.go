package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
	"gorm.io/gorm"

	"hospital/internal/auth"
	"hospital/internal/config"
	"hospital/internal/db"
	"hospital/internal/logger"
	"hospital/internal/model"
	"hospital/internal/repository"
)

// seedConfig holds the bootstrap admin credentials.
type seedConfig struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL, default=admin@hospital.local"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=admin123"`
	AdminName     string `env:"SEED_ADMIN_NAME, default=Administrator"`
}

var sampleDoctors = []model.Doctor{
	{Name: "Dr. Amina Yusuf", Specialty: "Cardiology", Availability: []string{"Mon 09:00-13:00", "Wed 09:00-13:00"}},
	{Name: "Dr. Lars Berg", Specialty: "Pediatrics", Availability: []string{"Tue 10:00-16:00", "Thu 10:00-16:00"}},
	{Name: "Dr. Mei Tanaka", Specialty: "Dermatology", Availability: []string{"Fri 08:00-12:00"}},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("load configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction()})
	log.Info().Msg("starting seed script")

	var sc seedConfig
	if err := envconfig.Process(ctx, &sc); err != nil {
		log.Fatal().Err(err).Msg("load seed configuration")
	}

	gormDB, err := db.Open(cfg.Database, db.GormConfig(log, cfg.IsProduction()))
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}
	log.Info().Msg("database migrations completed")

	created, err := seedAdmin(ctx, repository.NewUserRepository(gormDB), sc)
	if err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}
	if created {
		log.Info().Str("email", sc.AdminEmail).Msg("admin user created")
	} else {
		log.Info().Str("email", sc.AdminEmail).Msg("admin user already present")
	}

	seeded, err := seedDoctors(ctx, repository.NewDoctorRepository(gormDB), sampleDoctors)
	if err != nil {
		log.Fatal().Err(err).Msg("seed doctors")
	}
	log.Info().
		Int("created", seeded).
		Int("skipped", len(sampleDoctors)-seeded).
		Msg("seed completed")
}

// seedAdmin creates the admin account unless a user with that email exists.
// An existing account is left untouched, even if it is not an admin.
func seedAdmin(ctx context.Context, repo repository.UserRepository, sc seedConfig) (bool, error) {
	_, err := repo.FindByEmail(ctx, sc.AdminEmail)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("error checking admin %s: %w", sc.AdminEmail, err)
	}

	hash, err := auth.HashPassword(sc.AdminPassword)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	admin := &model.User{
		Name:         sc.AdminName,
		Email:        sc.AdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("error creating admin %s: %w", sc.AdminEmail, err)
	}
	return true, nil
}

// seedDoctors inserts every doctor whose name is not yet stored.
func seedDoctors(ctx context.Context, repo repository.DoctorRepository, doctors []model.Doctor) (int, error) {
	seeded := 0
	for _, d := range doctors {
		_, err := repo.FindByName(ctx, d.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return seeded, fmt.Errorf("error checking doctor %s: %w", d.Name, err)
		}

		doctor := d
		if err := repo.Create(ctx, &doctor); err != nil {
			return seeded, fmt.Errorf("error creating doctor %s: %w", d.Name, err)
		}
		seeded++
	}
	return seeded, nil
}
