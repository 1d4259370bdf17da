package planner

import (
	"time"

	"github.com/smartrail-planner/internal/common/logger"
	"github.com/smartrail-planner/internal/fare"
	"github.com/smartrail-planner/internal/railgraph"
	"github.com/smartrail-planner/pkg/railnet/models"
)

// Planner holds everything loaded at startup. Nothing in it changes after
// New returns, so one Planner serves every request without locking.
type Planner struct {
	graph     *railgraph.Graph
	trains    []models.Train
	estimator *fare.Estimator
	cutoff    int
	logger    logger.Logger
	now       func() time.Time
}

func New(graph *railgraph.Graph, trains []models.Train, estimator *fare.Estimator, cutoff int, logger logger.Logger) *Planner {
	if cutoff < 1 {
		cutoff = railgraph.DefaultCutoff
	}
	t := make([]models.Train, len(trains))
	copy(t, trains)

	return &Planner{
		graph:     graph,
		trains:    t,
		estimator: estimator,
		cutoff:    cutoff,
		logger:    logger,
		now:       time.Now,
	}
}

func (p *Planner) Stations() []string {
	return p.graph.Stations()
}

func (p *Planner) Trains() []models.Train {
	out := make([]models.Train, len(p.trains))
	copy(out, p.trains)
	return out
}

func (p *Planner) Cutoff() int {
	return p.cutoff
}

func (p *Planner) ShortestRoute(source, destination string) (railgraph.Route, bool) {
	route, ok := p.graph.ShortestRoute(source, destination)
	if !ok {
		p.logger.Debug("No route found", "source", source, "destination", destination)
	}
	return route, ok
}

// AllRoutes enumerates simple routes within the configured cutoff, shortest first.
func (p *Planner) AllRoutes(source, destination string, cutoff int) []railgraph.Route {
	if cutoff < 1 || cutoff > p.cutoff {
		cutoff = p.cutoff
	}
	routes := p.graph.AllRoutes(source, destination, cutoff)
	railgraph.SortByDistance(routes)
	p.logger.Debug("Routes enumerated",
		"source", source,
		"destination", destination,
		"cutoff", cutoff,
		"routes", len(routes))
	return routes
}

func (p *Planner) EstimateFare(distance float64, train models.TrainType, class models.ClassType) (float64, error) {
	return p.estimator.Estimate(distance, train, class)
}

func (p *Planner) FareModelKind() string {
	return p.estimator.Kind()
}
