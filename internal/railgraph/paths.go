package railgraph

// AllRoutes enumerates every simple route from source to destination with at
// most cutoff edges. Routes come out in depth-first order over sorted
// neighbours; callers that need a ranking should use SortByDistance.
func (g *Graph) AllRoutes(source, destination string, cutoff int) []Route {
	if !g.HasStation(source) || !g.HasStation(destination) {
		return []Route{}
	}
	if source == destination {
		return []Route{{Stations: []string{source}}}
	}
	if cutoff < 1 {
		return []Route{}
	}

	routes := []Route{}
	visited := map[string]bool{source: true}
	path := []string{source}

	var walk func(current string)
	walk = func(current string) {
		for _, n := range g.adjacency[current] {
			if visited[n.station] {
				continue
			}
			if n.station == destination {
				found := make([]string, len(path)+1)
				copy(found, path)
				found[len(path)] = destination
				routes = append(routes, g.routeFromPath(found))
				continue
			}
			// path holds len(path)-1 edges; stepping to n and then on to the
			// destination needs two more.
			if len(path)+1 > cutoff {
				continue
			}
			visited[n.station] = true
			path = append(path, n.station)
			walk(n.station)
			path = path[:len(path)-1]
			visited[n.station] = false
		}
	}
	walk(source)

	return routes
}

// FindAllRoutes enumerates simple routes using DefaultCutoff.
func FindAllRoutes(source, destination string, g *Graph) []Route {
	return g.AllRoutes(source, destination, DefaultCutoff)
}
