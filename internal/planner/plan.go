package planner

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/smartrail-planner/internal/railgraph"
	"github.com/sourcegraph/conc/pool"
)

const DateLayout = "02 Jan 2006"

var (
	ErrSameStation            = errors.New("source and destination cannot be the same")
	ErrNoRoute                = errors.New("no route found")
	ErrJourneyInPast          = errors.New("journey date is in the past")
	ErrArrivalBeforeDeparture = errors.New("arrival date is before the journey date")
)

type Request struct {
	Source      string
	Destination string
	JourneyDate time.Time // zero means today
	ArrivalDate time.Time // zero means JourneyDate
}

// TrainOption is one row of the options table shown for a planned journey.
type TrainOption struct {
	TrainName     string  `json:"train_name"`
	TrainType     string  `json:"type"`
	ClassType     string  `json:"class"`
	BoardingDate  string  `json:"boarding_date"`
	ArrivalDate   string  `json:"arrival_date"`
	Duration      string  `json:"duration"`
	DurationHours float64 `json:"duration_hours"`
	Fare          float64 `json:"estimated_fare"`
}

type Plan struct {
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	Route       railgraph.Route `json:"route"`
	Options     []TrainOption   `json:"options"`
}

// Plan finds the shortest route and prices it for every scheduled train.
func (p *Planner) Plan(req Request) (*Plan, error) {
	if req.Source == req.Destination {
		return nil, ErrSameStation
	}

	today := truncateDay(p.now())
	journey := today
	if !req.JourneyDate.IsZero() {
		journey = truncateDay(req.JourneyDate)
	}
	if journey.Before(today) {
		return nil, fmt.Errorf("%w: %s", ErrJourneyInPast, journey.Format(DateLayout))
	}
	arrival := journey
	if !req.ArrivalDate.IsZero() {
		arrival = truncateDay(req.ArrivalDate)
	}
	if arrival.Before(journey) {
		return nil, fmt.Errorf("%w: %s < %s", ErrArrivalBeforeDeparture, arrival.Format(DateLayout), journey.Format(DateLayout))
	}

	route, ok := p.ShortestRoute(req.Source, req.Destination)
	if !ok {
		return nil, fmt.Errorf("%w between %s and %s", ErrNoRoute, req.Source, req.Destination)
	}

	options, err := p.trainOptions(route.Distance, journey, arrival)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Journey planned",
		"source", req.Source,
		"destination", req.Destination,
		"distance", route.Distance,
		"hops", route.Hops(),
		"options", len(options))

	return &Plan{
		Source:      req.Source,
		Destination: req.Destination,
		Route:       route,
		Options:     options,
	}, nil
}

type indexedOption struct {
	index  int
	option TrainOption
}

func (p *Planner) trainOptions(distance float64, journey, arrival time.Time) ([]TrainOption, error) {
	workers := pool.NewWithResults[indexedOption]().WithErrors()

	for i, train := range p.trains {
		i, train := i, train
		workers.Go(func() (indexedOption, error) {
			fare, err := p.estimator.Estimate(distance, train.TrainType, train.ClassType)
			if err != nil {
				return indexedOption{}, fmt.Errorf("estimating fare for %s: %w", train.Name, err)
			}
			hours := distance / train.AvgSpeed
			return indexedOption{
				index: i,
				option: TrainOption{
					TrainName:     train.Name,
					TrainType:     train.TrainType.String(),
					ClassType:     train.ClassType.String(),
					BoardingDate:  journey.Format(DateLayout),
					ArrivalDate:   arrival.Format(DateLayout),
					Duration:      FormatDuration(hours),
					DurationHours: math.Round(hours*100) / 100,
					Fare:          fare,
				},
			}, nil
		})
	}

	results, err := workers.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })
	options := make([]TrainOption, len(results))
	for i, r := range results {
		options[i] = r.option
	}
	return options, nil
}

// FormatDuration renders hours as whole days and remaining whole hours, e.g. "1d 3h".
func FormatDuration(hours float64) string {
	if hours < 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		hours = 0
	}
	days := int(hours / 24)
	rest := int(math.Mod(hours, 24))
	return fmt.Sprintf("%dd %dh", days, rest)
}

// truncateDay keeps the calendar date of t in its own zone so dates from
// different zones compare by day.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
