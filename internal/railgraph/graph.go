// Package railgraph builds the undirected station graph and answers route
// queries over it. A built Graph is never modified and may be shared between
// goroutines.
package railgraph

import (
	"sort"

	"github.com/smartrail-planner/internal/dataset"
	"github.com/smartrail-planner/pkg/railnet/models"
)

type neighbour struct {
	station  string
	distance float64
}

type Graph struct {
	adjacency map[string][]neighbour // sorted by station name
	stations  []string
	edges     int
	merged    int
}

// Build creates a graph with one undirected edge per row. Repeated rows for
// the same station pair are merged keeping the shortest distance.
func Build(rows []models.RouteDistance) (*Graph, error) {
	weights := make(map[string]map[string]float64)
	merged := 0
	edges := 0

	link := func(a, b string, d float64) {
		if weights[a] == nil {
			weights[a] = make(map[string]float64)
		}
		weights[a][b] = d
	}

	for i, row := range rows {
		if err := dataset.ValidateRouteDistance(row, "route table", i+1); err != nil {
			return nil, err
		}

		if existing, ok := weights[row.Source][row.Destination]; ok {
			merged++
			if row.Distance >= existing {
				continue
			}
		} else {
			edges++
		}
		link(row.Source, row.Destination, row.Distance)
		link(row.Destination, row.Source, row.Distance)
	}

	g := &Graph{
		adjacency: make(map[string][]neighbour, len(weights)),
		stations:  make([]string, 0, len(weights)),
		edges:     edges,
		merged:    merged,
	}
	for station, targets := range weights {
		g.stations = append(g.stations, station)
		list := make([]neighbour, 0, len(targets))
		for target, d := range targets {
			list = append(list, neighbour{station: target, distance: d})
		}
		sort.Slice(list, func(i, j int) bool { return list[i].station < list[j].station })
		g.adjacency[station] = list
	}
	sort.Strings(g.stations)

	return g, nil
}

// Stations returns every station name in sorted order.
func (g *Graph) Stations() []string {
	out := make([]string, len(g.stations))
	copy(out, g.stations)
	return out
}

func (g *Graph) HasStation(name string) bool {
	_, ok := g.adjacency[name]
	return ok
}

// Distance returns the weight of the edge between a and b.
func (g *Graph) Distance(a, b string) (float64, bool) {
	for _, n := range g.adjacency[a] {
		if n.station == b {
			return n.distance, true
		}
	}
	return 0, false
}

// Neighbours returns the stations directly connected to name, sorted.
func (g *Graph) Neighbours(name string) []string {
	list := g.adjacency[name]
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.station
	}
	return out
}

func (g *Graph) EdgeCount() int {
	return g.edges
}

// MergedDuplicates reports how many input rows repeated an existing pair.
func (g *Graph) MergedDuplicates() int {
	return g.merged
}
