// Package reconcile collapses a project's per-(configuration, platform)
// property records into the minimal set of configuration-conditioned
// rules the emitter needs. The transform is pure: same project in, same
// properties out, no state kept between calls.
package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sln2cmake/sln2cmake-go/internal/models"
)

// Reconcile computes the conditioned property set of one project
// against the solution's global configuration list.
//
// Collapse policy: defines and the C++ standard group configurations by
// whole-value equality, so Debug and Release sharing one define set
// yield a single branch covering both. Force-includes are never
// collapsed; a configuration without one stays without one. Include
// directories and linked libraries become a single order-preserving
// union, and any configuration whose own ordering disagrees with the
// union is reported as a variance diagnostic (first-seen order wins).
//
// A configuration missing from the project's profiles resolves to empty
// defaults for every property. That is not an error.
//
// PCH settings are the classifier's concern and are not filled in here.
func Reconcile(project *models.Project, globalConfigs []string) (models.Properties, []models.Diagnostic) {
	var diags []models.Diagnostic

	effective := make([]models.ConfigurationProfile, len(globalConfigs))
	for i, config := range globalConfigs {
		effective[i] = mergePlatforms(project, config, &diags)
	}

	props := models.Properties{}

	defineSets := make([][]string, len(globalConfigs))
	for i, profile := range effective {
		defineSets[i] = dedup(profile.Defines)
	}
	props.Defines = collapseLists(globalConfigs, defineSets)

	standards := make([]int, len(globalConfigs))
	for i, profile := range effective {
		standards[i] = profile.CppStandard
	}
	props.CppStandard = collapseScalars(globalConfigs, standards)

	includeLists := make([][]string, len(globalConfigs))
	for i, profile := range effective {
		includeLists[i] = profile.IncludeDirs
	}
	props.IncludeDirs = unionOrdered(includeLists)
	diags = append(diags, orderVariances(project.Name, "include_dirs", globalConfigs, includeLists, props.IncludeDirs)...)

	libLists := make([][]string, len(globalConfigs))
	for i, profile := range effective {
		libLists[i] = profile.LinkedLibs
	}
	props.LinkedLibs = unionOrdered(libLists)
	diags = append(diags, orderVariances(project.Name, "linked_libs", globalConfigs, libLists, props.LinkedLibs)...)

	for i, profile := range effective {
		if len(profile.ForceIncludes) == 0 {
			continue
		}
		props.ForceIncludes = append(props.ForceIncludes, models.ListBranch{
			Configs: []string{globalConfigs[i]},
			Values:  append([]string{}, profile.ForceIncludes...),
		})
	}

	return props, diags
}

// mergePlatforms resolves one configuration name across however many
// platforms declare it. First-seen platform wins for single-valued
// properties; list properties take the ordered union so nothing a
// platform declares is lost.
func mergePlatforms(project *models.Project, config string, diags *[]models.Diagnostic) models.ConfigurationProfile {
	merged := models.ConfigurationProfile{Configuration: config}
	var defineLists, includeLists, libLists [][]string
	seen := false

	for _, profile := range project.Profiles {
		if profile.Configuration != config {
			continue
		}
		defineLists = append(defineLists, profile.Defines)
		includeLists = append(includeLists, profile.IncludeDirs)
		libLists = append(libLists, profile.LinkedLibs)
		if !seen {
			merged.Platform = profile.Platform
			merged.ForceIncludes = append([]string{}, profile.ForceIncludes...)
			merged.PCHMode = profile.PCHMode
			merged.PCHHeader = profile.PCHHeader
			merged.CppStandard = profile.CppStandard
			seen = true
		}
	}

	merged.Defines = unionOrdered(defineLists)
	merged.IncludeDirs = unionOrdered(includeLists)
	*diags = append(*diags, orderVariancesPlatform(project.Name, "include_dirs", config, includeLists, merged.IncludeDirs)...)
	merged.LinkedLibs = unionOrdered(libLists)
	*diags = append(*diags, orderVariancesPlatform(project.Name, "linked_libs", config, libLists, merged.LinkedLibs)...)
	return merged
}

// collapseLists groups configurations sharing an identical value set
// into one branch. Branch order follows the first configuration that
// carries each distinct value, keeping the output stable.
func collapseLists(configs []string, values [][]string) models.ConditionedList {
	type group struct {
		configs []string
		values  []string
	}
	var order []string
	groups := make(map[string]*group)

	for i, config := range configs {
		key := setKey(values[i])
		g, ok := groups[key]
		if !ok {
			g = &group{values: values[i]}
			groups[key] = g
			order = append(order, key)
		}
		g.configs = append(g.configs, config)
	}

	out := models.ConditionedList{}
	if len(order) == 1 {
		out.Common = true
		g := groups[order[0]]
		if len(g.values) > 0 {
			out.Branches = []models.ListBranch{{Configs: append([]string{}, g.configs...), Values: g.values}}
		}
		return out
	}
	for _, key := range order {
		g := groups[key]
		out.Branches = append(out.Branches, models.ListBranch{
			Configs: append([]string{}, g.configs...),
			Values:  g.values,
		})
	}
	return out
}

func collapseScalars(configs []string, values []int) models.ConditionedScalar {
	type group struct {
		configs []string
		value   int
	}
	var order []int
	groups := make(map[int]*group)

	for i, config := range configs {
		g, ok := groups[values[i]]
		if !ok {
			g = &group{value: values[i]}
			groups[values[i]] = g
			order = append(order, values[i])
		}
		g.configs = append(g.configs, config)
	}

	out := models.ConditionedScalar{}
	if len(order) == 1 {
		out.Common = true
		g := groups[order[0]]
		if g.value != 0 {
			out.Branches = []models.ScalarBranch{{Configs: append([]string{}, g.configs...), Value: g.value}}
		}
		return out
	}
	for _, value := range order {
		g := groups[value]
		out.Branches = append(out.Branches, models.ScalarBranch{
			Configs: append([]string{}, g.configs...),
			Value:   g.value,
		})
	}
	return out
}

// setKey builds an order-insensitive grouping key: defines are a set,
// so {A,B} and {B,A} must land in the same branch.
func setKey(values []string) string {
	sorted := append([]string{}, values...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x1f")
}

// unionOrdered merges order-significant lists, keeping the first-seen
// position of every element.
func unionOrdered(lists [][]string) []string {
	var union []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, v := range list {
			if seen[v] {
				continue
			}
			seen[v] = true
			union = append(union, v)
		}
	}
	return union
}

func dedup(values []string) []string {
	return unionOrdered([][]string{values})
}

// orderVariances reports every configuration whose own element order
// contradicts the union order. First-match-wins resolution makes
// ordering semantic, so a silent reorder could change which header a
// compile picks up; the conversion proceeds on first-seen order but the
// disagreement is surfaced.
func orderVariances(project, property string, configs []string, lists [][]string, union []string) []models.Diagnostic {
	pos := make(map[string]int, len(union))
	for i, v := range union {
		pos[v] = i
	}

	var diags []models.Diagnostic
	for i, list := range lists {
		if orderConsistent(pos, list) {
			continue
		}
		diags = append(diags, models.Diagnostic{
			Kind:     models.DiagPropertyVariance,
			Project:  project,
			Property: property,
			Message:  fmt.Sprintf("%s order in configuration %q differs across configurations; using first-seen order", property, configs[i]),
		})
	}
	return diags
}

func orderVariancesPlatform(project, property, config string, lists [][]string, union []string) []models.Diagnostic {
	pos := make(map[string]int, len(union))
	for i, v := range union {
		pos[v] = i
	}

	var diags []models.Diagnostic
	for _, list := range lists {
		if orderConsistent(pos, list) {
			continue
		}
		diags = append(diags, models.Diagnostic{
			Kind:     models.DiagPropertyVariance,
			Project:  project,
			Property: property,
			Message:  fmt.Sprintf("%s order for configuration %q differs between platforms; using first-seen order", property, config),
		})
		break
	}
	return diags
}

func orderConsistent(pos map[string]int, list []string) bool {
	last := -1
	for _, v := range list {
		p, ok := pos[v]
		if !ok {
			return false
		}
		if p < last {
			return false
		}
		last = p
	}
	return true
}
