package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sln2cmake/sln2cmake-go/internal/errors"
	"github.com/sln2cmake/sln2cmake-go/internal/models"
)

const libGUID = "11111111-1111-1111-1111-111111111111"
const appGUID = "22222222-2222-2222-2222-222222222222"

const demoSln = `Microsoft Visual Studio Solution File, Format Version 12.00
# Visual Studio Version 17
Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "StaticLib1", "StaticLib1\StaticLib1.vcxproj", "{11111111-1111-1111-1111-111111111111}"
EndProject
Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "TestProject", "TestProject\TestProject.vcxproj", "{22222222-2222-2222-2222-222222222222}"
	ProjectSection(ProjectDependencies) = postProject
		{11111111-1111-1111-1111-111111111111} = {11111111-1111-1111-1111-111111111111}
	EndProjectSection
EndProject
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Tooling", "Tooling\Tooling.csproj", "{33333333-3333-3333-3333-333333333333}"
EndProject
Global
EndGlobal
`

func writeSln(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "TestSolution.sln")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseSolution(t *testing.T) {
	sol, err := ParseSolution(writeSln(t, demoSln))
	require.NoError(t, err)

	assert.Equal(t, "TestSolution", sol.Name)
	require.Len(t, sol.Projects, 2, "only native projects are retained")
	assert.Equal(t, "StaticLib1", sol.Projects[0].Name)
	assert.Equal(t, libGUID, sol.Projects[0].ID)
	assert.Equal(t, `StaticLib1\StaticLib1.vcxproj`, sol.Projects[0].Path)
	assert.Equal(t, "TestProject", sol.Projects[1].Name)

	require.Len(t, sol.Edges, 1)
	assert.Equal(t, models.DependencyEdge{From: appGUID, To: libGUID}, sol.Edges[0])
}

func TestParseSolutionStripsBOM(t *testing.T) {
	sol, err := ParseSolution(writeSln(t, "\uFEFF"+demoSln))
	require.NoError(t, err)
	require.Len(t, sol.Projects, 2)
}

func TestParseSolutionNormalizesGUIDCase(t *testing.T) {
	upper := `Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "Lib", "Lib\Lib.vcxproj", "{AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE}"
EndProject
`
	sol, err := ParseSolution(writeSln(t, upper))
	require.NoError(t, err)
	require.Len(t, sol.Projects, 1)
	assert.Equal(t, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", sol.Projects[0].ID)
}

func TestParseSolutionRejectsInvalidGUID(t *testing.T) {
	bad := `Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "Lib", "Lib\Lib.vcxproj", "{not-a-guid}"
EndProject
`
	_, err := ParseSolution(writeSln(t, bad))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeParse, apperrors.GetType(err))
}

func TestParseSolutionDropsEdgesToNonNativeProjects(t *testing.T) {
	withCsprojDep := `Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "App", "App\App.vcxproj", "{22222222-2222-2222-2222-222222222222}"
	ProjectSection(ProjectDependencies) = postProject
		{33333333-3333-3333-3333-333333333333} = {33333333-3333-3333-3333-333333333333}
	EndProjectSection
EndProject
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Tooling", "Tooling\Tooling.csproj", "{33333333-3333-3333-3333-333333333333}"
EndProject
`
	sol, err := ParseSolution(writeSln(t, withCsprojDep))
	require.NoError(t, err)
	require.Len(t, sol.Projects, 1)
	assert.Empty(t, sol.Edges, "edges to declared non-native projects are dropped")
}

func TestParseSolutionKeepsDanglingEdgesForGraphValidation(t *testing.T) {
	dangling := `Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "App", "App\App.vcxproj", "{22222222-2222-2222-2222-222222222222}"
	ProjectSection(ProjectDependencies) = postProject
		{99999999-9999-9999-9999-999999999999} = {99999999-9999-9999-9999-999999999999}
	EndProjectSection
EndProject
`
	sol, err := ParseSolution(writeSln(t, dangling))
	require.NoError(t, err)
	require.Len(t, sol.Edges, 1, "undeclared targets stay for the graph builder to reject")
	assert.Equal(t, "99999999-9999-9999-9999-999999999999", sol.Edges[0].To)
}
