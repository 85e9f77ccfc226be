package main

import (
	"time"

	"github.com/mindloop/habitpack/config"
	"github.com/mindloop/habitpack/models"
	"github.com/mindloop/habitpack/routes"
	"github.com/mindloop/habitpack/services"
	"github.com/mindloop/habitpack/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.HabitPack{},
		&models.UserPack{},
		&models.DayRecord{},
		&models.Badge{},
	)

	if err := models.SeedDefaultPacks(db); err != nil {
		utils.Sugar.Warnf("seeding default packs failed: %v", err)
	}

	loc := time.Local
	if cfg.Timezone != "" {
		parsed, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			utils.Sugar.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
		}
		loc = parsed
	}

	svc := services.NewProgressService(db, nil, nil, loc)
	r := routes.SetupRouter(db, svc)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
