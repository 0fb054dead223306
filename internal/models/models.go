package models

// ProjectKind classifies what a project builds into.
type ProjectKind string

const (
	KindStaticLibrary ProjectKind = "static_library"
	KindSharedLibrary ProjectKind = "shared_library"
	KindExecutable    ProjectKind = "executable"
	KindUnsupported   ProjectKind = "unsupported"
)

// PCHMode describes how a project participates in precompiled headers
// for one configuration.
type PCHMode string

const (
	PCHNone   PCHMode = "none"
	PCHCreate PCHMode = "create"
	PCHUse    PCHMode = "use"
)

// ProjectRef is one entry in a solution's project list.
type ProjectRef struct {
	Name string `json:"name" yaml:"name"`
	ID   string `json:"id" yaml:"id"`
	Path string `json:"path" yaml:"path"`
}

// DependencyEdge is a directed edge from a dependent project to the
// project it depends on, both identified by project ID.
type DependencyEdge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Solution holds the solution file's project list and the declared
// inter-project dependencies. Projects preserve declaration order.
type Solution struct {
	Name     string           `json:"name" yaml:"name"`
	Path     string           `json:"path" yaml:"path"`
	Projects []ProjectRef     `json:"projects" yaml:"projects"`
	Edges    []DependencyEdge `json:"edges" yaml:"edges"`
}

// ConfigurationProfile is the property bag for one (configuration,
// platform) pair of one project. IncludeDirs, ForceIncludes and
// LinkedLibs are order-significant.
type ConfigurationProfile struct {
	Configuration string   `json:"configuration" yaml:"configuration"`
	Platform      string   `json:"platform" yaml:"platform"`
	Defines       []string `json:"defines,omitempty" yaml:"defines,omitempty"`
	IncludeDirs   []string `json:"include_dirs,omitempty" yaml:"include_dirs,omitempty"`
	ForceIncludes []string `json:"force_includes,omitempty" yaml:"force_includes,omitempty"`
	PCHMode       PCHMode  `json:"pch_mode,omitempty" yaml:"pch_mode,omitempty"`
	PCHHeader     string   `json:"pch_header,omitempty" yaml:"pch_header,omitempty"`
	CppStandard   int      `json:"cpp_standard,omitempty" yaml:"cpp_standard,omitempty"`
	LinkedLibs    []string `json:"linked_libs,omitempty" yaml:"linked_libs,omitempty"`
}

// Project is the parsed build metadata of one project file. RawType is
// the declared output type as found in the file (e.g. "StaticLibrary",
// "Application"); the classifier maps it to a ProjectKind. Profiles
// preserve the order they were declared in.
type Project struct {
	Name     string                 `json:"name" yaml:"name"`
	ID       string                 `json:"id" yaml:"id"`
	Path     string                 `json:"path" yaml:"path"`
	RawType  string                 `json:"raw_type" yaml:"raw_type"`
	Sources  []string               `json:"sources,omitempty" yaml:"sources,omitempty"`
	Headers  []string               `json:"headers,omitempty" yaml:"headers,omitempty"`
	Profiles []ConfigurationProfile `json:"profiles,omitempty" yaml:"profiles,omitempty"`
}

// ListBranch is one conditional clause of a list-valued property: the
// configurations it covers (first-seen order) and the value they share.
type ListBranch struct {
	Configs []string `json:"configs" yaml:"configs"`
	Values  []string `json:"values" yaml:"values"`
}

// ConditionedList is a list-valued property that is either identical
// across every configuration (Common, single branch) or varies per
// configuration (one branch per distinct value).
type ConditionedList struct {
	Common   bool         `json:"common" yaml:"common"`
	Branches []ListBranch `json:"branches,omitempty" yaml:"branches,omitempty"`
}

// ScalarBranch is one conditional clause of a scalar property.
type ScalarBranch struct {
	Configs []string `json:"configs" yaml:"configs"`
	Value   int      `json:"value" yaml:"value"`
}

// ConditionedScalar is a scalar property in the same shape as
// ConditionedList.
type ConditionedScalar struct {
	Common   bool           `json:"common" yaml:"common"`
	Branches []ScalarBranch `json:"branches,omitempty" yaml:"branches,omitempty"`
}

// PCHSetting is the precompiled-header state of one configuration.
// Configurations with no entry are in PCHNone mode; absence is
// deliberate so that PCH use in one configuration never leaks into
// another.
type PCHSetting struct {
	Config string  `json:"config" yaml:"config"`
	Mode   PCHMode `json:"mode" yaml:"mode"`
	Header string  `json:"header,omitempty" yaml:"header,omitempty"`
}

// Properties is the reconciled, emission-ready property set of one
// project. IncludeDirs and LinkedLibs are the order-preserving union
// across configurations; ForceIncludes stay per-configuration and are
// never collapsed.
type Properties struct {
	Defines       ConditionedList   `json:"defines" yaml:"defines"`
	IncludeDirs   []string          `json:"include_dirs,omitempty" yaml:"include_dirs,omitempty"`
	LinkedLibs    []string          `json:"linked_libs,omitempty" yaml:"linked_libs,omitempty"`
	ForceIncludes []ListBranch      `json:"force_includes,omitempty" yaml:"force_includes,omitempty"`
	PCH           []PCHSetting      `json:"pch,omitempty" yaml:"pch,omitempty"`
	CppStandard   ConditionedScalar `json:"cpp_standard" yaml:"cpp_standard"`
}

// EmissionUnit is the generator's output record for one project, in the
// exact order the emitter must declare it. Skip marks projects whose
// type the converter cannot express; they stay in the sequence so that
// dependents still see them, and the emitter renders a comment instead
// of a target.
type EmissionUnit struct {
	Name         string      `json:"name" yaml:"name"`
	Kind         ProjectKind `json:"kind" yaml:"kind"`
	Dir          string      `json:"dir,omitempty" yaml:"dir,omitempty"`
	Skip         bool        `json:"skip,omitempty" yaml:"skip,omitempty"`
	Sources      []string    `json:"sources,omitempty" yaml:"sources,omitempty"`
	Headers      []string    `json:"headers,omitempty" yaml:"headers,omitempty"`
	Dependencies []string    `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Properties   Properties  `json:"properties" yaml:"properties"`
}

// Script is the solution-level emission model: the global configuration
// axis and the dependency-ordered units.
type Script struct {
	SolutionName   string         `json:"solution_name" yaml:"solution_name"`
	Configurations []string       `json:"configurations" yaml:"configurations"`
	Units          []EmissionUnit `json:"units" yaml:"units"`
}

// DiagnosticKind categorizes non-fatal findings surfaced alongside a
// successful conversion.
type DiagnosticKind string

const (
	DiagPropertyVariance   DiagnosticKind = "property_variance"
	DiagUnsupportedProject DiagnosticKind = "unsupported_project"
)

// Diagnostic is one non-fatal finding. Conversion always completes in
// the presence of diagnostics; they exist so that every judgment call
// the converter made is visible for human review.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind" yaml:"kind"`
	Project  string         `json:"project" yaml:"project"`
	Property string         `json:"property,omitempty" yaml:"property,omitempty"`
	Message  string         `json:"message" yaml:"message"`
}
