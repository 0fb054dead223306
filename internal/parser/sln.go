// Package parser reads Visual Studio solution and project files into
// the in-memory project model. It understands just enough of both
// formats to feed the conversion engine: the solution's project table
// and dependency sections, and the per-configuration compile and link
// settings of each project file.
package parser

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/sln2cmake/sln2cmake-go/internal/errors"
	"github.com/sln2cmake/sln2cmake-go/internal/models"
)

// Project("{type-guid}") = "Name", "relative\path.vcxproj", "{project-guid}"
var projectLine = regexp.MustCompile(`^Project\("\{[^}]+\}"\)\s*=\s*"([^"]+)",\s*"([^"]+)",\s*"\{([^}]+)\}"`)

// {dep-guid} = {dep-guid} inside ProjectSection(ProjectDependencies)
var dependencyLine = regexp.MustCompile(`^\{([^}]+)\}\s*=\s*\{([^}]+)\}$`)

// ParseSolution reads a .sln file and returns the solution model:
// the native-project table in declaration order plus the dependency
// edges declared in ProjectSection(ProjectDependencies) blocks.
// Non-native projects (C#, setup projects) are dropped along with any
// edges touching them; only .vcproj/.vcxproj entries convert.
func ParseSolution(path string) (*models.Solution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.FileSystemErrorf(err, "failed to read solution %s", path)
	}

	sol := &models.Solution{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path: path,
	}

	content := strings.TrimPrefix(string(data), "\uFEFF")

	retained := make(map[string]bool)
	declared := make(map[string]bool)
	var currentID string
	inDependencies := false

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if m := projectLine.FindStringSubmatch(line); m != nil {
			name, relPath, rawGUID := m[1], m[2], m[3]
			id, err := normalizeGUID(rawGUID)
			if err != nil {
				return nil, apperrors.ParseErrorf("invalid project GUID %q for %q in %s", rawGUID, name, path)
			}
			currentID = id
			declared[id] = true
			if isNativeProject(relPath) {
				sol.Projects = append(sol.Projects, models.ProjectRef{
					Name: name,
					ID:   id,
					Path: relPath,
				})
				retained[id] = true
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "ProjectSection(ProjectDependencies)"):
			inDependencies = true
		case line == "EndProjectSection":
			inDependencies = false
		case line == "EndProject":
			currentID = ""
			inDependencies = false
		case inDependencies && currentID != "":
			if m := dependencyLine.FindStringSubmatch(line); m != nil {
				depID, err := normalizeGUID(m[1])
				if err != nil {
					return nil, apperrors.ParseErrorf("invalid dependency GUID %q in %s", m[1], path)
				}
				sol.Edges = append(sol.Edges, models.DependencyEdge{From: currentID, To: depID})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.ParseError(err, "failed to scan solution file")
	}

	sol.Edges = filterEdges(sol.Edges, retained, declared)
	return sol, nil
}

// filterEdges drops duplicate edges and edges touching declared but
// non-native projects (those never convert, so nothing can depend on
// them in the generated build). Edges to GUIDs the solution never
// declared at all are kept so the graph builder can reject them as
// dangling references.
func filterEdges(edges []models.DependencyEdge, retained, declared map[string]bool) []models.DependencyEdge {
	var out []models.DependencyEdge
	seen := make(map[models.DependencyEdge]bool)
	for _, e := range edges {
		if seen[e] {
			continue
		}
		seen[e] = true
		if !retained[e.From] {
			continue
		}
		if declared[e.To] && !retained[e.To] {
			continue
		}
		out = append(out, e)
	}
	return out
}

func isNativeProject(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".vcxproj") || strings.HasSuffix(lower, ".vcproj")
}

// normalizeGUID canonicalizes solution GUIDs so the same project is one
// graph node regardless of the casing a tool wrote it with.
func normalizeGUID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
