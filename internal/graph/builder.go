package graph

import (
	apperrors "github.com/sln2cmake/sln2cmake-go/internal/errors"
	"github.com/sln2cmake/sln2cmake-go/internal/models"
)

// BuildOrder computes the order in which the solution's projects must be
// declared: every project strictly after all of its dependencies, with
// solution declaration order as the tie-break. Dangling dependency
// references are a hard error, and a cycle surfaces as *CycleError with
// project names substituted for IDs.
func BuildOrder(sol *models.Solution, projects map[string]*models.Project) ([]*models.Project, error) {
	g := New()
	names := make(map[string]string, len(sol.Projects))
	for _, ref := range sol.Projects {
		g.AddNode(ref.ID)
		names[ref.ID] = ref.Name
	}

	for _, edge := range sol.Edges {
		if _, ok := names[edge.From]; !ok {
			return nil, apperrors.StructuralErrorf("dependency edge references unknown project %q", edge.From).
				WithContext("solution", sol.Name)
		}
		if _, ok := names[edge.To]; !ok {
			return nil, apperrors.StructuralErrorf("project %q depends on unknown project %q", names[edge.From], edge.To).
				WithContext("solution", sol.Name)
		}
		if err := g.AddEdge(edge.From, edge.To); err != nil {
			if cycle, ok := err.(*CycleError); ok {
				return nil, named(cycle, names)
			}
			return nil, apperrors.Wrap(err, apperrors.ErrorTypeStructural, apperrors.SeverityFatal, "invalid dependency edge")
		}
	}

	orderedIDs, err := g.TopoSort()
	if err != nil {
		if cycle, ok := err.(*CycleError); ok {
			return nil, named(cycle, names)
		}
		return nil, err
	}

	ordered := make([]*models.Project, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		project, ok := projects[id]
		if !ok {
			return nil, apperrors.InternalErrorf("no parsed project for %q (%s)", names[id], id)
		}
		ordered = append(ordered, project)
	}
	return ordered, nil
}

func named(cycle *CycleError, names map[string]string) *CycleError {
	out := make([]string, len(cycle.Projects))
	for i, id := range cycle.Projects {
		if name, ok := names[id]; ok {
			out[i] = name
		} else {
			out[i] = id
		}
	}
	return &CycleError{Projects: out}
}
