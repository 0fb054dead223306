// Package generate walks the dependency-ordered project list and
// produces the abstract emission model consumed by the CMake emitter.
package generate

import (
	"fmt"
	"path"
	"strings"

	"github.com/sln2cmake/sln2cmake-go/internal/classify"
	"github.com/sln2cmake/sln2cmake-go/internal/graph"
	"github.com/sln2cmake/sln2cmake-go/internal/models"
	"github.com/sln2cmake/sln2cmake-go/internal/reconcile"
)

// Generate turns a parsed solution into a Script: the global
// configuration axis plus one EmissionUnit per project in dependency
// order. A unit never precedes a unit it depends on, because CMake
// resolves target declarations in declaration order.
//
// Unsupported projects stay in the sequence as skip-marked units so
// that dependents still resolve, each recorded as a diagnostic.
// Structural problems (dangling edges, cycles) abort the whole solution
// with no partial output. Everything else finishes: variance findings
// ride along as diagnostics next to the successful script.
func Generate(sol *models.Solution, projects map[string]*models.Project) (*models.Script, []models.Diagnostic, error) {
	ordered, err := graph.BuildOrder(sol, projects)
	if err != nil {
		return nil, nil, err
	}

	globalConfigs := configurationAxis(ordered)

	deps := dependencyNames(sol, ordered)

	script := &models.Script{
		SolutionName:   sol.Name,
		Configurations: globalConfigs,
	}
	var diags []models.Diagnostic

	emitted := make(map[string]bool, len(ordered))
	for _, project := range ordered {
		emitted[project.Name] = classify.Kind(project.RawType) != models.KindUnsupported
	}

	dirs := make(map[string]string, len(sol.Projects))
	for _, ref := range sol.Projects {
		dirs[ref.ID] = path.Dir(strings.ReplaceAll(ref.Path, "\\", "/"))
	}

	for _, project := range ordered {
		kind := classify.Kind(project.RawType)
		unit := models.EmissionUnit{
			Name:    project.Name,
			Kind:    kind,
			Dir:     dirs[project.ID],
			Sources: append([]string{}, project.Sources...),
			Headers: append([]string{}, project.Headers...),
		}

		// Link references must only name targets that exist in the
		// generated build, so unsupported dependencies are filtered out
		// here rather than at emit time.
		for _, dep := range deps[project.ID] {
			if emitted[dep] {
				unit.Dependencies = append(unit.Dependencies, dep)
			}
		}

		if kind == models.KindUnsupported {
			unit.Skip = true
			diags = append(diags, models.Diagnostic{
				Kind:    models.DiagUnsupportedProject,
				Project: project.Name,
				Message: fmt.Sprintf("project type %q cannot be converted; emitted as a skip marker", project.RawType),
			})
		} else {
			props, propDiags := reconcile.Reconcile(project, globalConfigs)
			props.PCH = classify.PCHSettings(project.Profiles, globalConfigs)
			unit.Properties = props
			diags = append(diags, propDiags...)
		}

		script.Units = append(script.Units, unit)
	}

	return script, diags, nil
}

// configurationAxis reduces the project model to the one global
// configuration list every conditional branch keys against, in
// first-seen order over the dependency-ordered projects. Computed once
// here and attached to the output; nothing mutates it afterwards.
func configurationAxis(ordered []*models.Project) []string {
	var axis []string
	seen := make(map[string]bool)
	for _, project := range ordered {
		for _, profile := range project.Profiles {
			if profile.Configuration == "" || seen[profile.Configuration] {
				continue
			}
			seen[profile.Configuration] = true
			axis = append(axis, profile.Configuration)
		}
	}
	return axis
}

// dependencyNames resolves each project's dependency IDs to project
// names, ordered by the dependency's position in the build order so the
// emitted lists are stable.
func dependencyNames(sol *models.Solution, ordered []*models.Project) map[string][]string {
	position := make(map[string]int, len(ordered))
	names := make(map[string]string, len(ordered))
	for i, project := range ordered {
		position[project.ID] = i
		names[project.ID] = project.Name
	}

	adjacent := make(map[string][]string)
	for _, edge := range sol.Edges {
		adjacent[edge.From] = append(adjacent[edge.From], edge.To)
	}

	out := make(map[string][]string, len(adjacent))
	for from, tos := range adjacent {
		sorted := append([]string{}, tos...)
		for i := 1; i < len(sorted); i++ {
			for j := i; j > 0 && position[sorted[j]] < position[sorted[j-1]]; j-- {
				sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
			}
		}
		seen := make(map[string]bool, len(sorted))
		for _, to := range sorted {
			if seen[to] {
				continue
			}
			seen[to] = true
			out[from] = append(out[from], names[to])
		}
	}
	return out
}
