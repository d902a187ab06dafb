package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nguyentantai21042004/lead-digest/internal/config"
	"github.com/nguyentantai21042004/lead-digest/internal/db"
	"github.com/nguyentantai21042004/lead-digest/internal/logger"
	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

const defaultConfigPath = "config.yaml"

// app carries what every command sets up before doing its work.
type app struct {
	cfg *config.Config
	log logger.Logger
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("config", defaultConfigPath, "path to config file")
	return fs, path
}

// setup loads the config and builds a logger tagged with the command and a run id.
func setup(command, configPath string) (*app, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format).
		With("command", command, "run_id", uuid.NewString())
	return &app{cfg: cfg, log: log}, nil
}

// signalContext is cancelled on SIGINT or SIGTERM. Work already issued runs on
// a detached context and finishes under its own deadline; the next unit is not
// started.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func (a *app) openDB(ctx context.Context) (*gorm.DB, error) {
	gdb, err := db.Open(a.cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gdb.WithContext(ctx)); err != nil {
		_ = db.Close(gdb)
		return nil, err
	}
	a.log.Debug(ctx, "Connected to postgres %s:%d/%s", a.cfg.Database.Host, a.cfg.Database.Port, a.cfg.Database.Name)
	return gdb, nil
}

func (a *app) closeDB(ctx context.Context, gdb *gorm.DB) {
	if err := db.Close(gdb); err != nil {
		a.log.Warn(ctx, "Close database: %v", err)
	}
}

// parseDate reads -date, defaulting to today in local time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return model.Day(time.Now()), nil
	}
	day, err := model.ParseDay(s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return day, nil
}

func fail(format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return 1
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
