// Package emit renders the abstract emission model to CMake text. The
// conditioning semantics live in the model; this package only maps
// branches onto $<CONFIG:...> generator expressions, so swapping the
// target syntax means swapping this package.
package emit

import (
	"fmt"
	"strings"

	"github.com/sln2cmake/sln2cmake-go/internal/models"
)

// Renderer holds the knobs that do not come from the solution itself.
type Renderer struct {
	MinimumVersion  string // cmake_minimum_required version
	DefaultStandard int    // CXX standard when no profile declares one
}

// NewRenderer returns a Renderer with the defaults the original
// converter used.
func NewRenderer() *Renderer {
	return &Renderer{
		MinimumVersion:  "3.16",
		DefaultStandard: 20,
	}
}

// RootFile renders the solution-level CMakeLists.txt: the global
// configuration axis, solution-wide Debug/NDEBUG defines, and one
// add_subdirectory per emitted project in dependency order. Skipped
// projects appear as comments so their absence is visible, never
// silent.
func (r *Renderer) RootFile(script *models.Script) string {
	var b strings.Builder

	fmt.Fprintf(&b, "cmake_minimum_required(VERSION %s)\n\n", r.MinimumVersion)
	fmt.Fprintf(&b, "project(%s)\n\n", script.SolutionName)

	if len(script.Configurations) > 0 {
		fmt.Fprintf(&b, "set(CMAKE_CONFIGURATION_TYPES \"%s\")\n\n", strings.Join(script.Configurations, ";"))
	}

	fmt.Fprintf(&b, "set(CMAKE_CXX_STANDARD %d)\n", r.DefaultStandard)
	b.WriteString("set(CMAKE_CXX_STANDARD_REQUIRED ON)\n\n")

	b.WriteString("# Build configuration options\n")
	b.WriteString("add_compile_definitions(\n")
	b.WriteString("    $<$<CONFIG:Debug>:_DEBUG>\n")
	b.WriteString("    $<$<NOT:$<CONFIG:Debug>>:NDEBUG>\n")
	b.WriteString(")\n\n")

	b.WriteString("# Project directories\n")
	for _, unit := range script.Units {
		if unit.Skip {
			fmt.Fprintf(&b, "# %s: unsupported project type, skipped\n", unit.Name)
			continue
		}
		if unit.Dir == "" || unit.Dir == "." {
			continue
		}
		fmt.Fprintf(&b, "add_subdirectory(\"%s\")\n", unit.Dir)
	}
	b.WriteString("\n")

	return b.String()
}

// ProjectFile renders one project's CMakeLists.txt.
func (r *Renderer) ProjectFile(unit *models.EmissionUnit) string {
	var b strings.Builder

	if unit.Skip {
		fmt.Fprintf(&b, "# %s: unsupported project type, skipped\n", unit.Name)
		return b.String()
	}

	if len(unit.Sources) > 0 {
		fmt.Fprintf(&b, "set(SOURCE_FILES_%s\n", unit.Name)
		for _, src := range unit.Sources {
			fmt.Fprintf(&b, "    %s\n", src)
		}
		b.WriteString(")\n")
	}
	if len(unit.Headers) > 0 {
		fmt.Fprintf(&b, "set(HEADER_FILES_%s\n", unit.Name)
		for _, hdr := range unit.Headers {
			fmt.Fprintf(&b, "    %s\n", hdr)
		}
		b.WriteString(")\n")
	}

	b.WriteString("\n")
	switch unit.Kind {
	case models.KindStaticLibrary:
		fmt.Fprintf(&b, "add_library(%s STATIC\n", unit.Name)
	case models.KindSharedLibrary:
		fmt.Fprintf(&b, "add_library(%s SHARED\n", unit.Name)
	default:
		fmt.Fprintf(&b, "add_executable(%s\n", unit.Name)
	}
	if len(unit.Sources) > 0 {
		fmt.Fprintf(&b, "    ${SOURCE_FILES_%s}\n", unit.Name)
	}
	if len(unit.Headers) > 0 {
		fmt.Fprintf(&b, "    ${HEADER_FILES_%s}\n", unit.Name)
	}
	b.WriteString(")\n")

	r.writeStandard(&b, unit)
	r.writeIncludeDirs(&b, unit)
	r.writeDefines(&b, unit)
	r.writeForceIncludes(&b, unit)
	r.writePCH(&b, unit)
	r.writeLinks(&b, unit)

	return b.String()
}

func (r *Renderer) writeStandard(b *strings.Builder, unit *models.EmissionUnit) {
	std := unit.Properties.CppStandard
	if std.Common {
		value := r.DefaultStandard
		if len(std.Branches) == 1 {
			value = std.Branches[0].Value
		}
		if value != r.DefaultStandard {
			b.WriteString("\n")
			fmt.Fprintf(b, "set_target_properties(%s PROPERTIES CXX_STANDARD %d)\n", unit.Name, value)
		}
		return
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "set_target_properties(%s PROPERTIES CXX_STANDARD %s)\n", unit.Name, r.standardExpr(std.Branches))
}

// standardExpr builds a nested $<IF:...> chain so a per-configuration
// standard survives conversion instead of being averaged away.
func (r *Renderer) standardExpr(branches []models.ScalarBranch) string {
	if len(branches) == 0 {
		return fmt.Sprintf("%d", r.DefaultStandard)
	}
	head := branches[0]
	value := head.Value
	if value == 0 {
		value = r.DefaultStandard
	}
	if len(branches) == 1 {
		return fmt.Sprintf("%d", value)
	}
	return fmt.Sprintf("$<IF:%s,%d,%s>", configGuard(head.Configs), value, r.standardExpr(branches[1:]))
}

func (r *Renderer) writeIncludeDirs(b *strings.Builder, unit *models.EmissionUnit) {
	dirs := unit.Properties.IncludeDirs
	if len(dirs) == 0 {
		return
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "target_include_directories(%s PRIVATE\n", unit.Name)
	for _, dir := range dirs {
		fmt.Fprintf(b, "    %s\n", dir)
	}
	b.WriteString(")\n")
}

func (r *Renderer) writeDefines(b *strings.Builder, unit *models.EmissionUnit) {
	defines := unit.Properties.Defines
	if len(defines.Branches) == 0 {
		return
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "target_compile_definitions(%s PRIVATE\n", unit.Name)
	if defines.Common {
		for _, def := range defines.Branches[0].Values {
			fmt.Fprintf(b, "    %s\n", def)
		}
	} else {
		for _, branch := range defines.Branches {
			guard := configGuard(branch.Configs)
			for _, def := range branch.Values {
				fmt.Fprintf(b, "    $<%s:%s>\n", guard, def)
			}
		}
	}
	b.WriteString(")\n")
}

func (r *Renderer) writeForceIncludes(b *strings.Builder, unit *models.EmissionUnit) {
	branches := unit.Properties.ForceIncludes
	if len(branches) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString("# Force includes\n")
	fmt.Fprintf(b, "target_compile_options(%s PRIVATE\n", unit.Name)
	for _, branch := range branches {
		guard := configGuard(branch.Configs)
		for _, inc := range branch.Values {
			fmt.Fprintf(b, "    $<%s:/FI%s>\n", guard, inc)
		}
	}
	b.WriteString(")\n")
}

func (r *Renderer) writePCH(b *strings.Builder, unit *models.EmissionUnit) {
	settings := unit.Properties.PCH
	var lines []string
	for _, s := range settings {
		if s.Header == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("    $<$<CONFIG:%s>:%s>", s.Config, s.Header))
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "target_precompile_headers(%s PRIVATE\n", unit.Name)
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
	b.WriteString(")\n")
}

// writeLinks merges explicit linked libraries with resolved project
// dependencies, keeping declared link order and appending dependencies
// not already present.
func (r *Renderer) writeLinks(b *strings.Builder, unit *models.EmissionUnit) {
	var libs []string
	seen := make(map[string]bool)
	for _, lib := range unit.Properties.LinkedLibs {
		if seen[lib] {
			continue
		}
		seen[lib] = true
		libs = append(libs, lib)
	}
	for _, dep := range unit.Dependencies {
		if seen[dep] {
			continue
		}
		seen[dep] = true
		libs = append(libs, dep)
	}
	if len(libs) == 0 {
		return
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "target_link_libraries(%s PRIVATE\n", unit.Name)
	for _, lib := range libs {
		fmt.Fprintf(b, "    %s\n", lib)
	}
	b.WriteString(")\n")
}

// configGuard renders the configuration condition of one branch:
// $<CONFIG:Debug> alone, or $<OR:...> over several configurations for a
// collapsed branch.
func configGuard(configs []string) string {
	if len(configs) == 1 {
		return fmt.Sprintf("$<CONFIG:%s>", configs[0])
	}
	parts := make([]string, len(configs))
	for i, c := range configs {
		parts[i] = fmt.Sprintf("$<CONFIG:%s>", c)
	}
	return fmt.Sprintf("$<OR:%s>", strings.Join(parts, ","))
}
