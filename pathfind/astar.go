package pathfind

import (
	"container/heap"

	"nav-lattice/navgraph"
)

// search runs A* over the lattice from start to goal and returns the node
// indices of the path, start first, along with the number of nodes expanded.
//
// A neighbour is traversable when it is valid or occupied by exempt, so an
// agent can leave the footprint it blocks itself. Scratch fields on the
// nodes are reset before the search starts.
func search(l *navgraph.Lattice, start, goal int, exempt navgraph.ObjectID) ([]int, int, error) {
	l.ResetSearch()
	goalPoint := l.Nodes[goal].Position

	openSet := &priorityQueue{}
	heap.Init(openSet)

	startItem := &item{node: start}
	heap.Push(openSet, startItem)

	openSetMap := map[int]*item{start: startItem}
	closedSet := make(map[int]bool)

	nodesExplored := 0

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*item)
		delete(openSetMap, current.node)
		closedSet[current.node] = true
		nodesExplored++

		// Check if we reached the goal
		if current.node == goal {
			break
		}

		from := &l.Nodes[current.node]

		// Explore neighbors
		for _, neighborID := range from.Connections {
			if neighborID == navgraph.NoNode || closedSet[neighborID] {
				continue
			}
			if !l.Admissible(neighborID, exempt) {
				continue
			}

			neighbor := &l.Nodes[neighborID]
			tentativeG := from.G + from.Position.Distance(neighbor.Position)

			queued, inOpen := openSetMap[neighborID]
			if inOpen && tentativeG >= neighbor.G {
				continue
			}

			neighbor.G = tentativeG
			neighbor.H = neighbor.Position.Distance(goalPoint)
			neighbor.Parent = current.node

			if inOpen {
				// Found a better path to this neighbor
				queued.f = neighbor.F()
				queued.h = neighbor.H
				heap.Fix(openSet, queued.index)
				continue
			}
			queued = &item{node: neighborID, f: neighbor.F(), h: neighbor.H}
			heap.Push(openSet, queued)
			openSetMap[neighborID] = queued
		}
	}

	if l.Nodes[goal].Parent == navgraph.NoNode {
		return nil, nodesExplored, ErrNoPathFound
	}

	path, err := reconstruct(l, goal)
	if err != nil {
		return nil, nodesExplored, err
	}
	return path, nodesExplored, nil
}

// reconstruct walks parents back from goal and returns the path start first.
func reconstruct(l *navgraph.Lattice, goal int) ([]int, error) {
	visited := make(map[int]bool)
	var path []int
	for node := goal; node != navgraph.NoNode; node = l.Nodes[node].Parent {
		if visited[node] {
			return nil, ErrInconsistentGraph
		}
		visited[node] = true
		path = append(path, node)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
