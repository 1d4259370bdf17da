package railgraph

import (
	"container/heap"
)

// ShortestRoute returns the minimum-distance route between source and
// destination. ok is false when either station is unknown or unreachable.
// Equal-distance candidates are settled in station-name order, so ties are
// resolved the same way on every call.
func (g *Graph) ShortestRoute(source, destination string) (route Route, ok bool) {
	if !g.HasStation(source) || !g.HasStation(destination) {
		return Route{}, false
	}
	if source == destination {
		return Route{Stations: []string{source}}, true
	}

	dist := map[string]float64{source: 0}
	cameFrom := make(map[string]string)
	settled := make(map[string]bool)

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{station: source, priority: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		current := item.station
		if settled[current] {
			continue
		}
		settled[current] = true

		if current == destination {
			return g.routeFromPath(reconstructPath(cameFrom, current)), true
		}

		for _, n := range g.adjacency[current] {
			if settled[n.station] {
				continue
			}
			tentative := dist[current] + n.distance
			if old, seen := dist[n.station]; !seen || tentative < old {
				dist[n.station] = tentative
				cameFrom[n.station] = current
				heap.Push(pq, &pqItem{station: n.station, priority: tentative})
			}
		}
	}

	return Route{}, false
}

// FindShortestRoute is ShortestRoute in function form.
func FindShortestRoute(source, destination string, g *Graph) (Route, bool) {
	return g.ShortestRoute(source, destination)
}

func reconstructPath(cameFrom map[string]string, current string) []string {
	path := []string{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type pqItem struct {
	station  string
	priority float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].station < pq[j].station
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*pqItem))
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
