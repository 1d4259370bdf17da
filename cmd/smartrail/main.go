package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/smartrail-planner/internal/common/config"
	"github.com/smartrail-planner/internal/common/db"
	"github.com/smartrail-planner/internal/common/discord"
	"github.com/smartrail-planner/internal/common/logger"
	"github.com/smartrail-planner/internal/dataset"
	"github.com/smartrail-planner/internal/planner"
	"github.com/urfave/cli/v2"
)

func main() {
	// .env is optional; the process environment wins either way
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("Failed to load .env file: " + err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, closeLogger := newLogger(cfg)
	defer closeLogger()

	app := &cli.App{
		Name:  "smartrail",
		Usage: "Plan rail routes and estimate fares",
		Commands: []*cli.Command{
			stationsCommand(cfg, log),
			routeCommand(cfg, log),
			fareCommand(cfg, log),
			planCommand(cfg, log),
			serveCommand(cfg, log),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("Command failed", "error", err)
		closeLogger()
		os.Exit(1)
	}
}

// newLogger returns the logger and a func that flushes pending alerts.
func newLogger(cfg *config.Config) (logger.Logger, func()) {
	loggerConfig := logger.DefaultLoggerConfig()
	loggerConfig.Level = logger.ParseLogLevel(cfg.Logging.Level)
	loggerConfig.ConsoleOut = os.Stderr
	loggerConfig.FilePath = cfg.Logging.FilePath
	loggerConfig.File = cfg.Logging.FilePath != ""

	closeFn := func() {}
	if cfg.Logging.AlertWebhookURL != "" {
		client := discord.NewClient(cfg.Logging.AlertWebhookURL, "smartrail")
		hook := discord.NewAlertHook(client, zerolog.ErrorLevel)
		loggerConfig.Hooks = append(loggerConfig.Hooks, hook)
		closeFn = hook.Close
	}

	return logger.NewFromConfig(loggerConfig), closeFn
}

// mustLoadPlanner exits when any input, including the fare model, is unusable.
func mustLoadPlanner(ctx context.Context, cfg *config.Config, log logger.Logger) *planner.Planner {
	p, err := loadPlanner(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to load planner", "error", err)
	}
	return p
}

func loadPlanner(ctx context.Context, cfg *config.Config, log logger.Logger) (*planner.Planner, error) {
	loader := dataset.New(log.With("component", "dataset"))

	loadConfig := planner.LoadConfig{
		Schedule:      planner.CSVScheduleSource{Loader: loader, Path: cfg.Data.ScheduleFile},
		FareModelPath: cfg.Data.FareModelFile,
		Cutoff:        cfg.Routing.Cutoff,
	}

	switch cfg.Data.RoutesSource {
	case config.SourcePostgres:
		database, err := db.New(ctx, cfg.Database.ConnectionString(), log.With("component", "db"))
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		// rows are read once at load time
		defer database.Close()
		loadConfig.Routes = planner.PostgresRouteSource{DB: database, Table: cfg.Database.RoutesTable}
	default:
		loadConfig.Routes = planner.CSVRouteSource{Loader: loader, Path: cfg.Data.RoutesFile}
	}

	log.Info("Loading planner",
		"routes_source", cfg.Data.RoutesSource,
		"schedule", cfg.Data.ScheduleFile,
		"fare_model", cfg.Data.FareModelFile)

	return planner.Load(ctx, loadConfig, log)
}
