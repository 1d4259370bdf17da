package planner

import (
	"context"

	"github.com/smartrail-planner/pkg/railnet/models"
)

// RouteSource supplies the station distance rows the graph is built from.
type RouteSource interface {
	LoadRouteDistances(ctx context.Context) ([]models.RouteDistance, error)
}

// ScheduleSource supplies the trains offered on every planned route.
type ScheduleSource interface {
	LoadTrains(ctx context.Context) ([]models.Train, error)
}
