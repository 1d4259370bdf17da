package planner

import (
	"context"
	"fmt"

	"github.com/smartrail-planner/internal/common/logger"
	"github.com/smartrail-planner/internal/fare"
	"github.com/smartrail-planner/internal/railgraph"
)

type LoadConfig struct {
	Routes        RouteSource
	Schedule      ScheduleSource
	FareModelPath string
	Cutoff        int
}

// Load builds a Planner from its sources. Any failure, including an unusable
// fare model, is returned so the caller can refuse to start.
func Load(ctx context.Context, cfg LoadConfig, log logger.Logger) (*Planner, error) {
	model, err := fare.LoadModel(cfg.FareModelPath)
	if err != nil {
		return nil, err
	}

	rows, err := cfg.Routes.LoadRouteDistances(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading route distances: %w", err)
	}

	graph, err := railgraph.Build(rows)
	if err != nil {
		return nil, fmt.Errorf("building station graph: %w", err)
	}
	if graph.MergedDuplicates() > 0 {
		log.Warn("Duplicate station pairs merged, keeping the shortest distance",
			"duplicates", graph.MergedDuplicates())
	}

	trains, err := cfg.Schedule.LoadTrains(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading train schedule: %w", err)
	}

	estimator := fare.NewEstimator(model, log.With("component", "fare"))
	p := New(graph, trains, estimator, cfg.Cutoff, log.With("component", "planner"))

	log.Info("Planner ready",
		"stations", len(graph.Stations()),
		"edges", graph.EdgeCount(),
		"trains", len(trains),
		"fare_model", estimator.Kind(),
		"cutoff", p.Cutoff())

	return p, nil
}
