package railgraph

import (
	"sort"
	"strings"
)

// DefaultCutoff bounds the number of edges in enumerated routes.
const DefaultCutoff = 5

// Route is an ordered walk from source to destination.
type Route struct {
	Stations []string `json:"stations"`
	Distance float64  `json:"distance"`
}

// Hops is the number of edges in the route.
func (r Route) Hops() int {
	if len(r.Stations) == 0 {
		return 0
	}
	return len(r.Stations) - 1
}

func (r Route) String() string {
	return strings.Join(r.Stations, " → ")
}

// routeFromPath sums edge weights along path. The path must follow edges.
func (g *Graph) routeFromPath(path []string) Route {
	total := 0.0
	for i := 1; i < len(path); i++ {
		d, _ := g.Distance(path[i-1], path[i])
		total += d
	}
	return Route{Stations: path, Distance: total}
}

// SortByDistance orders routes by total distance, then by hop count, then
// by station sequence.
func SortByDistance(routes []Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		a, b := routes[i], routes[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.Hops() != b.Hops() {
			return a.Hops() < b.Hops()
		}
		return strings.Join(a.Stations, "\x00") < strings.Join(b.Stations, "\x00")
	})
}
