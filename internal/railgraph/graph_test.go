package railgraph

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/kr/pretty"
	"github.com/smartrail-planner/internal/dataset"
	"github.com/smartrail-planner/pkg/railnet/models"
)

func buildGraph(t *testing.T, rows ...models.RouteDistance) *Graph {
	t.Helper()
	g, err := Build(rows)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return g
}

func edge(a, b string, d float64) models.RouteDistance {
	return models.RouteDistance{Source: a, Destination: b, Distance: d}
}

func TestBuildUndirected(t *testing.T) {
	g := buildGraph(t, edge("A", "B", 100), edge("B", "C", 150))

	if d, ok := g.Distance("B", "A"); !ok || d != 100 {
		t.Errorf("Expected B-A distance 100, got %v (ok=%v)", d, ok)
	}
	if diff := pretty.Diff([]string{"A", "B", "C"}, g.Stations()); len(diff) > 0 {
		t.Errorf("Unexpected stations: %v", diff)
	}
	if diff := pretty.Diff([]string{"A", "C"}, g.Neighbours("B")); len(diff) > 0 {
		t.Errorf("Unexpected neighbours of B: %v", diff)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("Expected 2 edges, got %d", g.EdgeCount())
	}
	if _, ok := g.Distance("A", "C"); ok {
		t.Error("Expected no direct A-C edge")
	}
}

func TestBuildMergesDuplicatesKeepingMinimum(t *testing.T) {
	g := buildGraph(t,
		edge("A", "B", 120),
		edge("B", "A", 100),
		edge("A", "B", 130),
	)

	if d, _ := g.Distance("A", "B"); d != 100 {
		t.Errorf("Expected merged distance 100, got %v", d)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge, got %d", g.EdgeCount())
	}
	if g.MergedDuplicates() != 2 {
		t.Errorf("Expected 2 merged duplicates, got %d", g.MergedDuplicates())
	}
}

func TestBuildRejectsInvalidRows(t *testing.T) {
	tests := map[string]models.RouteDistance{
		"negative distance": edge("A", "B", -1),
		"missing source":    edge("", "B", 1),
		"self loop":         edge("A", "A", 1),
	}

	for name, row := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Build([]models.RouteDistance{edge("X", "Y", 1), row})
			var invalid *dataset.InvalidDataError
			if !errors.As(err, &invalid) {
				t.Fatalf("Expected InvalidDataError, got %v", err)
			}
			if invalid.Line != 2 {
				t.Errorf("Expected row 2 to be reported, got %d", invalid.Line)
			}
		})
	}
}

func TestShortestRouteExample(t *testing.T) {
	g := buildGraph(t, edge("A", "B", 100), edge("B", "C", 150))

	route, ok := FindShortestRoute("A", "C", g)
	if !ok {
		t.Fatal("Expected a route from A to C")
	}
	if diff := pretty.Diff(Route{Stations: []string{"A", "B", "C"}, Distance: 250}, route); len(diff) > 0 {
		t.Errorf("Unexpected route: %v", diff)
	}

	all := FindAllRoutes("A", "C", g)
	if diff := pretty.Diff([]Route{{Stations: []string{"A", "B", "C"}, Distance: 250}}, all); len(diff) > 0 {
		t.Errorf("Unexpected routes: %v", diff)
	}
}

func TestShortestRoutePrefersLighterPath(t *testing.T) {
	g := buildGraph(t,
		edge("A", "B", 4),
		edge("A", "C", 2),
		edge("B", "C", 1),
		edge("B", "D", 5),
		edge("C", "E", 10),
		edge("D", "F", 6),
		edge("E", "F", 3),
	)

	route, ok := g.ShortestRoute("A", "F")
	if !ok {
		t.Fatal("Expected a route from A to F")
	}
	expected := Route{Stations: []string{"A", "C", "B", "D", "F"}, Distance: 14}
	if diff := pretty.Diff(expected, route); len(diff) > 0 {
		t.Errorf("Unexpected route: %v", diff)
	}
}

func TestShortestRouteTieBreakIsStable(t *testing.T) {
	g := buildGraph(t,
		edge("S", "Y", 1), edge("Y", "T", 1),
		edge("S", "X", 1), edge("X", "T", 1),
	)

	first, _ := g.ShortestRoute("S", "T")
	for i := 0; i < 20; i++ {
		again, _ := g.ShortestRoute("S", "T")
		if diff := pretty.Diff(first, again); len(diff) > 0 {
			t.Fatalf("Tie resolved differently on call %d: %v", i, diff)
		}
	}
	if first.Stations[1] != "X" {
		t.Errorf("Expected tie to resolve through X, got %v", first.Stations)
	}
}

func TestMissingStationsAndDisconnectedGraph(t *testing.T) {
	g := buildGraph(t, edge("A", "B", 100), edge("C", "D", 50))

	tests := []struct{ source, destination string }{
		{"A", "Z"},
		{"Z", "A"},
		{"A", "C"},
	}
	for _, tt := range tests {
		if route, ok := g.ShortestRoute(tt.source, tt.destination); ok {
			t.Errorf("%s->%s: expected no route, got %v", tt.source, tt.destination, route)
		}
		routes := g.AllRoutes(tt.source, tt.destination, DefaultCutoff)
		if routes == nil || len(routes) != 0 {
			t.Errorf("%s->%s: expected empty non-nil slice, got %#v", tt.source, tt.destination, routes)
		}
	}
}

func TestSameStationIsTrivialRoute(t *testing.T) {
	g := buildGraph(t, edge("A", "B", 100))

	route, ok := g.ShortestRoute("A", "A")
	if !ok {
		t.Fatal("Expected trivial route for A->A")
	}
	if diff := pretty.Diff(Route{Stations: []string{"A"}}, route); len(diff) > 0 {
		t.Errorf("Unexpected trivial route: %v", diff)
	}
	if route.Hops() != 0 || route.Distance != 0 {
		t.Errorf("Expected zero hops and distance, got %d / %v", route.Hops(), route.Distance)
	}

	all := g.AllRoutes("A", "A", DefaultCutoff)
	if len(all) != 1 || len(all[0].Stations) != 1 {
		t.Errorf("Expected one trivial route, got %v", all)
	}
}

func TestAllRoutesRespectsCutoff(t *testing.T) {
	// Chain A-B-C-D-E-F-G: the only A->G route has 6 edges.
	var rows []models.RouteDistance
	chain := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i := 1; i < len(chain); i++ {
		rows = append(rows, edge(chain[i-1], chain[i], 10))
	}
	g := buildGraph(t, rows...)

	if routes := FindAllRoutes("A", "G", g); len(routes) != 0 {
		t.Errorf("Expected no route within default cutoff, got %v", routes)
	}
	if routes := g.AllRoutes("A", "F", 5); len(routes) != 1 {
		t.Errorf("Expected the 5-edge route to be kept, got %v", routes)
	}
	if routes := g.AllRoutes("A", "G", 6); len(routes) != 1 || routes[0].Distance != 60 {
		t.Errorf("Expected one 6-edge route of 60 km, got %v", routes)
	}
	if _, ok := g.ShortestRoute("A", "G"); !ok {
		t.Error("Shortest route is not bounded by the cutoff")
	}
	if routes := g.AllRoutes("A", "B", 0); len(routes) != 0 {
		t.Errorf("Expected no routes with cutoff 0, got %v", routes)
	}
}

func TestSortByDistance(t *testing.T) {
	routes := []Route{
		{Stations: []string{"A", "C", "D"}, Distance: 20},
		{Stations: []string{"A", "B", "C", "D"}, Distance: 20},
		{Stations: []string{"A", "D"}, Distance: 30},
		{Stations: []string{"A", "B", "D"}, Distance: 10},
	}
	SortByDistance(routes)

	expected := []string{"A → B → D", "A → C → D", "A → B → C → D", "A → D"}
	for i, r := range routes {
		if r.String() != expected[i] {
			t.Errorf("Position %d: expected %s, got %s", i, expected[i], r)
		}
	}
}

// randomGraph builds a connected-ish graph with integer weights so sums compare exactly.
func randomGraph(t *testing.T, rng *rand.Rand, stations, edges int) *Graph {
	t.Helper()
	var rows []models.RouteDistance
	for i := 0; i < edges; i++ {
		a := rng.Intn(stations)
		b := rng.Intn(stations)
		if a == b {
			continue
		}
		rows = append(rows, edge(fmt.Sprintf("S%02d", a), fmt.Sprintf("S%02d", b), float64(rng.Intn(500))))
	}
	return buildGraph(t, rows...)
}

func TestRouteProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 30; trial++ {
		g := randomGraph(t, rng, 9, 18)
		stations := g.Stations()
		if len(stations) < 2 {
			continue
		}

		for i := 0; i < 5; i++ {
			source := stations[rng.Intn(len(stations))]
			destination := stations[rng.Intn(len(stations))]

			shortest, ok := g.ShortestRoute(source, destination)
			routes := FindAllRoutes(source, destination, g)

			if !ok && len(routes) > 0 {
				t.Fatalf("%s->%s: enumerated routes exist but shortest route was not found", source, destination)
			}

			for _, r := range routes {
				if r.Hops() > DefaultCutoff {
					t.Errorf("%s->%s: route %v exceeds cutoff", source, destination, r)
				}
				if r.Stations[0] != source || r.Stations[len(r.Stations)-1] != destination {
					t.Errorf("Route %v does not join %s and %s", r, source, destination)
				}

				seen := map[string]bool{}
				sum := 0.0
				for j, s := range r.Stations {
					if seen[s] {
						t.Errorf("Route %v repeats station %s", r, s)
					}
					seen[s] = true
					if j > 0 {
						d, ok := g.Distance(r.Stations[j-1], s)
						if !ok {
							t.Errorf("Route %v uses missing edge %s-%s", r, r.Stations[j-1], s)
						}
						sum += d
					}
				}
				if sum != r.Distance {
					t.Errorf("Route %v distance %v does not equal edge sum %v", r, r.Distance, sum)
				}
				if shortest.Distance > r.Distance {
					t.Errorf("%s->%s: shortest %v is longer than enumerated %v", source, destination, shortest, r)
				}
			}
		}
	}
}
