package planner

import (
	"context"

	"github.com/smartrail-planner/internal/common/db"
	"github.com/smartrail-planner/internal/dataset"
	"github.com/smartrail-planner/pkg/railnet/models"
)

// CSVRouteSource reads the distance table from a CSV file.
type CSVRouteSource struct {
	Loader *dataset.Loader
	Path   string
}

func (s CSVRouteSource) LoadRouteDistances(_ context.Context) ([]models.RouteDistance, error) {
	return s.Loader.LoadRouteDistances(s.Path)
}

// PostgresRouteSource reads the distance table from a database table.
type PostgresRouteSource struct {
	DB    *db.DB
	Table string
}

func (s PostgresRouteSource) LoadRouteDistances(ctx context.Context) ([]models.RouteDistance, error) {
	return s.DB.LoadRouteDistances(ctx, s.Table)
}

// CSVScheduleSource reads the train schedule from a CSV file.
type CSVScheduleSource struct {
	Loader *dataset.Loader
	Path   string
}

func (s CSVScheduleSource) LoadTrains(_ context.Context) ([]models.Train, error) {
	return s.Loader.LoadTrains(s.Path)
}
