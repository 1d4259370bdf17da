package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/smartrail-planner/internal/common/logger"
	"github.com/smartrail-planner/internal/fare"
	"github.com/smartrail-planner/internal/planner"
	"github.com/smartrail-planner/pkg/railnet/models"
)

// QueryDateLayout is the date format accepted by the planner endpoint.
const QueryDateLayout = "2006-01-02"

type handlers struct {
	planner *planner.Planner
	logger  logger.Logger
}

func (h *handlers) getStations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"stations": h.planner.Stations(),
	})
}

func (h *handlers) getTrains(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"trains": h.planner.Trains(),
	})
}

func (h *handlers) routesRouter(router fiber.Router) {
	router.Get("/:origin/:destination", h.getRoutesBetweenStations)
}

func (h *handlers) getRoutesBetweenStations(c *fiber.Ctx) error {
	origin := c.Params("origin")
	destination := c.Params("destination")

	all := false
	if value := c.Query("all"); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, "Parameter all should be a boolean")
		}
		all = parsed
	}

	if !all {
		route, ok := h.planner.ShortestRoute(origin, destination)
		if !ok {
			return sendError(c, fiber.StatusNotFound, planner.ErrNoRoute.Error())
		}
		return c.JSON(fiber.Map{
			"source":      origin,
			"destination": destination,
			"route":       route,
		})
	}

	cutoff := h.planner.Cutoff()
	if value := c.Query("cutoff"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 {
			return sendError(c, fiber.StatusBadRequest, "Parameter cutoff should be a positive integer")
		}
		cutoff = parsed
	}

	routes := h.planner.AllRoutes(origin, destination, cutoff)
	if len(routes) == 0 {
		return sendError(c, fiber.StatusNotFound, planner.ErrNoRoute.Error())
	}

	return c.JSON(fiber.Map{
		"source":      origin,
		"destination": destination,
		"routes":      routes,
	})
}

func (h *handlers) getFare(c *fiber.Ctx) error {
	distance, err := strconv.ParseFloat(c.Query("distance"), 64)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "Parameter distance should be a number")
	}
	trainType, err := models.ParseTrainType(c.Query("train_type"))
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}
	classType, err := models.ParseClassType(c.Query("class_type"))
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	estimate, err := h.planner.EstimateFare(distance, trainType, classType)
	if err != nil {
		if errors.Is(err, fare.ErrInvalidDistance) || errors.Is(err, fare.ErrUnknownTrain) || errors.Is(err, fare.ErrUnknownClass) {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(fiber.Map{
		"distance":       distance,
		"train_type":     trainType.String(),
		"class_type":     classType.String(),
		"estimated_fare": estimate,
		"model":          h.planner.FareModelKind(),
	})
}

func (h *handlers) plannerRouter(router fiber.Router) {
	router.Get("/:origin/:destination", h.getPlanBetweenStations)
}

func (h *handlers) getPlanBetweenStations(c *fiber.Ctx) error {
	req := planner.Request{
		Source:      c.Params("origin"),
		Destination: c.Params("destination"),
	}

	var err error
	if req.JourneyDate, err = parseQueryDate(c.Query("date")); err != nil {
		return sendError(c, fiber.StatusBadRequest, "Parameter date should be a YYYY-MM-DD date")
	}
	if req.ArrivalDate, err = parseQueryDate(c.Query("arrival_date")); err != nil {
		return sendError(c, fiber.StatusBadRequest, "Parameter arrival_date should be a YYYY-MM-DD date")
	}

	plan, err := h.planner.Plan(req)
	switch {
	case err == nil:
		return c.JSON(plan)
	case errors.Is(err, planner.ErrNoRoute):
		return sendError(c, fiber.StatusNotFound, planner.ErrNoRoute.Error())
	case errors.Is(err, planner.ErrSameStation),
		errors.Is(err, planner.ErrJourneyInPast),
		errors.Is(err, planner.ErrArrivalBeforeDeparture):
		return sendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Planning failed", "source", req.Source, "destination", req.Destination, "error", err)
		return err
	}
}

// parseQueryDate returns the zero time for an empty value.
func parseQueryDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(QueryDateLayout, value)
}
