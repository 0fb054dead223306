package parser

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/sln2cmake/sln2cmake-go/internal/errors"
	"github.com/sln2cmake/sln2cmake-go/internal/models"
)

// LoadSolution parses a .sln file and every native project it
// references, returning the solution model and the parsed projects
// keyed by project ID. ProjectReference elements inside project files
// contribute dependency edges on top of the solution's own dependency
// sections. A referenced project file that does not exist on disk is a
// structural error: the solution cannot be converted without it.
func LoadSolution(path string) (*models.Solution, map[string]*models.Project, error) {
	sol, err := ParseSolution(path)
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(path)

	byStem := make(map[string]string, len(sol.Projects))
	for _, ref := range sol.Projects {
		byStem[strings.ToLower(Stem(ref.Path))] = ref.ID
	}

	edgeSet := make(map[models.DependencyEdge]bool, len(sol.Edges))
	for _, e := range sol.Edges {
		edgeSet[e] = true
	}

	projects := make(map[string]*models.Project, len(sol.Projects))
	for _, ref := range sol.Projects {
		projPath := filepath.Join(dir, filepath.FromSlash(fixBackslashes(ref.Path)))
		if _, err := os.Stat(projPath); err != nil {
			return nil, nil, apperrors.StructuralErrorf("solution references project file %q which cannot be located", ref.Path).
				WithContext("solution", sol.Name).
				WithContext("project", ref.Name)
		}

		parsed, err := ParseProject(projPath, ref)
		if err != nil {
			return nil, nil, err
		}
		projects[ref.ID] = parsed.Project

		for _, reference := range parsed.References {
			depID, ok := byStem[strings.ToLower(Stem(reference))]
			if !ok || depID == ref.ID {
				continue
			}
			edge := models.DependencyEdge{From: ref.ID, To: depID}
			if edgeSet[edge] {
				continue
			}
			edgeSet[edge] = true
			sol.Edges = append(sol.Edges, edge)
		}
	}

	return sol, projects, nil
}

func fixBackslashes(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
