package graph

import (
	"fmt"
	"strings"
)

// Graph is a directed dependency graph over project IDs. Edges point
// from a dependent to the project it depends on. Node insertion order
// is remembered and used as the tie-break during topological sorting,
// so the ordering is stable for a given input.
type Graph struct {
	order []string
	nodes map[string]*node
}

type node struct {
	id         string
	deps       map[string]struct{}
	dependents map[string]struct{}
}

// CycleError reports a dependency cycle between projects. Projects
// holds the members of one detected cycle, in walk order.
type CycleError struct {
	Projects []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Projects, " -> "))
}

// New creates an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a node with the given ID. Adding an existing ID does
// nothing, so declaration order is fixed by the first insertion.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.order = append(g.order, id)
	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]struct{}),
		dependents: make(map[string]struct{}),
	}
}

// AddEdge records that fromID depends on toID. An error is returned if
// either endpoint is unknown; a self-edge is reported as a cycle of one.
func (g *Graph) AddEdge(fromID, toID string) error {
	if _, ok := g.nodes[fromID]; !ok {
		return fmt.Errorf("unknown node: %s", fromID)
	}
	if _, ok := g.nodes[toID]; !ok {
		return fmt.Errorf("unknown node: %s", toID)
	}
	if fromID == toID {
		return &CycleError{Projects: []string{fromID, fromID}}
	}

	g.nodes[fromID].deps[toID] = struct{}{}
	g.nodes[toID].dependents[fromID] = struct{}{}
	return nil
}

// Dependencies returns the IDs the given node depends on, in node
// declaration order.
func (g *Graph) Dependencies(id string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	var deps []string
	for _, candidate := range g.order {
		if _, ok := n.deps[candidate]; ok {
			deps = append(deps, candidate)
		}
	}
	return deps
}

// TopoSort returns all node IDs ordered so that every node appears
// after everything it depends on. Among nodes whose dependencies are
// all resolved, declaration order wins. A cycle yields a *CycleError
// naming the members of one cycle.
func (g *Graph) TopoSort() ([]string, error) {
	remaining := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		remaining[id] = len(n.deps)
	}

	sorted := make([]string, 0, len(g.nodes))
	placed := make(map[string]bool, len(g.nodes))

	for len(sorted) < len(g.nodes) {
		progressed := false
		for _, id := range g.order {
			if placed[id] || remaining[id] != 0 {
				continue
			}
			placed[id] = true
			sorted = append(sorted, id)
			for dep := range g.nodes[id].dependents {
				remaining[dep]--
			}
			progressed = true
		}
		if !progressed {
			return nil, &CycleError{Projects: g.findCycle(placed)}
		}
	}

	return sorted, nil
}

// findCycle walks the unplaced remainder of the graph and extracts the
// members of one cycle. Every unplaced node either sits on a cycle or
// depends on one, so a walk that only follows unplaced deps must revisit
// a node on the current path.
func (g *Graph) findCycle(placed map[string]bool) []string {
	onPath := make(map[string]int)
	var path []string

	var walk func(id string) []string
	walk = func(id string) []string {
		if pos, ok := onPath[id]; ok {
			cycle := append([]string{}, path[pos:]...)
			return append(cycle, id)
		}
		onPath[id] = len(path)
		path = append(path, id)
		for _, dep := range g.Dependencies(id) {
			if placed[dep] {
				continue
			}
			if cycle := walk(dep); cycle != nil {
				return cycle
			}
		}
		delete(onPath, id)
		path = path[:len(path)-1]
		return nil
	}

	for _, id := range g.order {
		if placed[id] {
			continue
		}
		if cycle := walk(id); cycle != nil {
			return cycle
		}
	}
	return nil
}
