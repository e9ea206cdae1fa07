package root

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/Cortelete/tcc/internal/config"
	"github.com/Cortelete/tcc/internal/engine"
	"github.com/Cortelete/tcc/internal/notify"
	"github.com/Cortelete/tcc/internal/storage"
	"github.com/Cortelete/tcc/internal/ui"
)

func loadConfig() (config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), err
	}
	return config.Load(path)
}

func rulesFrom(cfg config.Config) engine.Rules {
	return engine.Rules{
		BaseXP:             cfg.BaseXP,
		MissionXP:          cfg.MissionXP,
		XPPerLevel:         cfg.XPPerLevel,
		MapEveryLevels:     cfg.MapEveryLevels,
		DueSoonWindow:      time.Duration(cfg.DueSoonMinutes) * time.Minute,
		DailyMissionCap:    cfg.DailyMissionCap,
		EarlyHour:          cfg.EarlyHour,
		EarlyCount:         cfg.EarlyCount,
		StreakDays:         cfg.StreakDays,
		StreakMinFulfilled: cfg.StreakMinFulfilled,
	}
}

func openDB(ctx context.Context) (*sql.DB, config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, nil, err
	}
	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, cfg, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, cfg, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cfg, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cfg, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	notifier := notify.NewWriter(os.Stdout, ui.IconMascot+" ")
	svc := engine.NewService(db, rulesFrom(cfg), engine.SystemClock{}, notifier)
	return svc, cleanup, nil
}
