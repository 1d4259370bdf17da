package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/smartrail-planner/internal/common/logger"
	"github.com/smartrail-planner/internal/planner"
)

const Version = "v1.0"

// NewApp wires the JSON API for p under /api.
func NewApp(p *planner.Planner, log logger.Logger) *fiber.App {
	webApp := fiber.New(fiber.Config{
		AppName:               "smartrail",
		DisableStartupMessage: true,
		// station names contain spaces, e.g. /api/routes/New%20Delhi/Agra%20Cantt
		UnescapePath: true,
	})
	webApp.Use(NewLogger(log))

	h := &handlers{planner: p, logger: log}

	group := webApp.Group("/api")

	group.Get("version", apiVersion)
	group.Get("stations", h.getStations)
	group.Get("trains", h.getTrains)
	group.Get("fare", h.getFare)

	h.routesRouter(group.Group("/routes"))
	h.plannerRouter(group.Group("/planner"))

	return webApp
}

// SetupServer serves the API on listen until ctx is cancelled.
func SetupServer(ctx context.Context, listen string, p *planner.Planner, log logger.Logger) error {
	webApp := NewApp(p, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- webApp.Listen(listen)
	}()
	log.Info("HTTP API listening", "listen", listen)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down HTTP API")
		if err := webApp.Shutdown(); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}

func apiVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": Version,
	})
}

func sendError(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}
