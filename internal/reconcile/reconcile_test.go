package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sln2cmake/sln2cmake-go/internal/models"
)

var globalConfigs = []string{"Debug", "Release", "Test"}

func project(profiles ...models.ConfigurationProfile) *models.Project {
	return &models.Project{
		Name:     "TestProject",
		ID:       "id-app",
		RawType:  "Application",
		Profiles: profiles,
	}
}

func TestCollapseIdenticalDefineSets(t *testing.T) {
	p := project(
		models.ConfigurationProfile{Configuration: "Debug", Platform: "x64", Defines: []string{"COMMON", "FAST"}},
		models.ConfigurationProfile{Configuration: "Release", Platform: "x64", Defines: []string{"COMMON", "FAST"}},
		models.ConfigurationProfile{Configuration: "Test", Platform: "x64", Defines: []string{"COMMON", "TESTCONFIG"}},
	)

	props, diags := Reconcile(p, globalConfigs)
	assert.Empty(t, diags)

	defines := props.Defines
	assert.False(t, defines.Common)
	require.Len(t, defines.Branches, 2, "Debug+Release must share one branch, Test its own")
	assert.Equal(t, []string{"Debug", "Release"}, defines.Branches[0].Configs)
	assert.Equal(t, []string{"COMMON", "FAST"}, defines.Branches[0].Values)
	assert.Equal(t, []string{"Test"}, defines.Branches[1].Configs)
	assert.Equal(t, []string{"COMMON", "TESTCONFIG"}, defines.Branches[1].Values)
}

func TestDefineGroupingIsOrderInsensitive(t *testing.T) {
	p := project(
		models.ConfigurationProfile{Configuration: "Debug", Defines: []string{"A", "B"}},
		models.ConfigurationProfile{Configuration: "Release", Defines: []string{"B", "A"}},
		models.ConfigurationProfile{Configuration: "Test", Defines: []string{"A", "B"}},
	)

	props, _ := Reconcile(p, globalConfigs)

	assert.True(t, props.Defines.Common, "defines are a set; ordering must not split branches")
	require.Len(t, props.Defines.Branches, 1)
	assert.Equal(t, globalConfigs, props.Defines.Branches[0].Configs)
}

func TestIdenticalAcrossAllConfigsIsUnconditional(t *testing.T) {
	p := project(
		models.ConfigurationProfile{Configuration: "Debug", Defines: []string{"COMMON"}},
		models.ConfigurationProfile{Configuration: "Release", Defines: []string{"COMMON"}},
		models.ConfigurationProfile{Configuration: "Test", Defines: []string{"COMMON"}},
	)

	props, _ := Reconcile(p, globalConfigs)

	assert.True(t, props.Defines.Common)
	require.Len(t, props.Defines.Branches, 1)
	assert.Equal(t, []string{"COMMON"}, props.Defines.Branches[0].Values)
}

func TestForceIncludeIndependence(t *testing.T) {
	p := project(
		models.ConfigurationProfile{Configuration: "Debug", ForceIncludes: []string{"forceinclude_debug.h"}},
		models.ConfigurationProfile{Configuration: "Release"},
		models.ConfigurationProfile{Configuration: "Test"},
	)

	props, _ := Reconcile(p, globalConfigs)

	require.Len(t, props.ForceIncludes, 1, "Release and Test must stay without a force include")
	assert.Equal(t, []string{"Debug"}, props.ForceIncludes[0].Configs)
	assert.Equal(t, []string{"forceinclude_debug.h"}, props.ForceIncludes[0].Values)
}

func TestForceIncludesNeverCollapse(t *testing.T) {
	p := project(
		models.ConfigurationProfile{Configuration: "Debug", ForceIncludes: []string{"force.h"}},
		models.ConfigurationProfile{Configuration: "Release", ForceIncludes: []string{"force.h"}},
	)

	props, _ := Reconcile(p, []string{"Debug", "Release"})

	require.Len(t, props.ForceIncludes, 2, "identical force includes still stay per-configuration")
	assert.Equal(t, []string{"Debug"}, props.ForceIncludes[0].Configs)
	assert.Equal(t, []string{"Release"}, props.ForceIncludes[1].Configs)
}

func TestReconcileIsIdempotent(t *testing.T) {
	p := project(
		models.ConfigurationProfile{
			Configuration: "Debug",
			Defines:       []string{"TESTTHING"},
			IncludeDirs:   []string{"../include", "vendor"},
			ForceIncludes: []string{"forceinclude_debug.h"},
			LinkedLibs:    []string{"StaticLib1"},
			CppStandard:   17,
		},
		models.ConfigurationProfile{
			Configuration: "Release",
			Defines:       []string{"TESTTHING", "RELEASEPRO"},
			IncludeDirs:   []string{"../include", "vendor"},
			CppStandard:   20,
		},
	)

	first, firstDiags := Reconcile(p, []string{"Debug", "Release"})
	second, secondDiags := Reconcile(p, []string{"Debug", "Release"})

	assert.Equal(t, first, second)
	assert.Equal(t, firstDiags, secondDiags)
}

func TestMissingProfileYieldsEmptyDefaults(t *testing.T) {
	p := project(
		models.ConfigurationProfile{Configuration: "Debug", Defines: []string{"D"}, ForceIncludes: []string{"f.h"}},
	)

	props, diags := Reconcile(p, globalConfigs)
	assert.Empty(t, diags, "a missing profile is a silent default, not a warning")

	require.Len(t, props.Defines.Branches, 2)
	assert.Equal(t, []string{"Debug"}, props.Defines.Branches[0].Configs)
	assert.Equal(t, []string{"Release", "Test"}, props.Defines.Branches[1].Configs,
		"absent configurations group together on empty defaults")
	assert.Empty(t, props.Defines.Branches[1].Values)

	require.Len(t, props.ForceIncludes, 1)
	assert.Equal(t, []string{"Debug"}, props.ForceIncludes[0].Configs)
}

func TestIncludeDirOrderVarianceIsWarned(t *testing.T) {
	p := project(
		models.ConfigurationProfile{Configuration: "Debug", IncludeDirs: []string{"a", "b"}},
		models.ConfigurationProfile{Configuration: "Release", IncludeDirs: []string{"b", "a"}},
	)

	props, diags := Reconcile(p, []string{"Debug", "Release"})

	assert.Equal(t, []string{"a", "b"}, props.IncludeDirs, "first-seen order wins")
	require.Len(t, diags, 1)
	assert.Equal(t, models.DiagPropertyVariance, diags[0].Kind)
	assert.Equal(t, "TestProject", diags[0].Project)
	assert.Equal(t, "include_dirs", diags[0].Property)
}

func TestCompatibleIncludeSubsetsDoNotWarn(t *testing.T) {
	p := project(
		models.ConfigurationProfile{Configuration: "Debug", IncludeDirs: []string{"a", "b", "c"}},
		models.ConfigurationProfile{Configuration: "Release", IncludeDirs: []string{"a", "c"}},
	)

	props, diags := Reconcile(p, []string{"Debug", "Release"})

	assert.Equal(t, []string{"a", "b", "c"}, props.IncludeDirs)
	assert.Empty(t, diags, "a subset in consistent order is not a variance")
}

func TestLinkedLibOrderVarianceIsWarned(t *testing.T) {
	p := project(
		models.ConfigurationProfile{Configuration: "Debug", LinkedLibs: []string{"core", "util"}},
		models.ConfigurationProfile{Configuration: "Release", LinkedLibs: []string{"util", "core"}},
	)

	props, diags := Reconcile(p, []string{"Debug", "Release"})

	assert.Equal(t, []string{"core", "util"}, props.LinkedLibs)
	require.Len(t, diags, 1)
	assert.Equal(t, "linked_libs", diags[0].Property)
}

func TestCppStandardCollapse(t *testing.T) {
	p := project(
		models.ConfigurationProfile{Configuration: "Debug", CppStandard: 17},
		models.ConfigurationProfile{Configuration: "Release", CppStandard: 20},
		models.ConfigurationProfile{Configuration: "Test", CppStandard: 17},
	)

	props, _ := Reconcile(p, globalConfigs)

	std := props.CppStandard
	assert.False(t, std.Common)
	require.Len(t, std.Branches, 2)
	assert.Equal(t, []string{"Debug", "Test"}, std.Branches[0].Configs)
	assert.Equal(t, 17, std.Branches[0].Value)
	assert.Equal(t, []string{"Release"}, std.Branches[1].Configs)
	assert.Equal(t, 20, std.Branches[1].Value)
}

func TestPlatformMergeFirstSeenWins(t *testing.T) {
	p := project(
		models.ConfigurationProfile{Configuration: "Debug", Platform: "Win32", Defines: []string{"WIN32"}, ForceIncludes: []string{"win32.h"}},
		models.ConfigurationProfile{Configuration: "Debug", Platform: "x64", Defines: []string{"WIN64"}, ForceIncludes: []string{"x64.h"}},
	)

	props, _ := Reconcile(p, []string{"Debug"})

	require.True(t, props.Defines.Common)
	require.Len(t, props.Defines.Branches, 1)
	assert.Equal(t, []string{"WIN32", "WIN64"}, props.Defines.Branches[0].Values,
		"defines union across platforms")

	require.Len(t, props.ForceIncludes, 1)
	assert.Equal(t, []string{"win32.h"}, props.ForceIncludes[0].Values,
		"single-valued properties take the first-seen platform")
}
