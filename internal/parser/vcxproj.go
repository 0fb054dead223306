package parser

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/sln2cmake/sln2cmake-go/internal/errors"
	"github.com/sln2cmake/sln2cmake-go/internal/models"
)

// MSBuild project file shapes, reduced to the elements the converter
// consumes.

type vcxFile struct {
	XMLName        xml.Name            `xml:"Project"`
	PropertyGroups []vcxPropertyGroup  `xml:"PropertyGroup"`
	ItemGroups     []vcxItemGroup      `xml:"ItemGroup"`
	ItemDefGroups  []vcxItemDefinition `xml:"ItemDefinitionGroup"`
}

type vcxPropertyGroup struct {
	Condition         string `xml:"Condition,attr"`
	Label             string `xml:"Label,attr"`
	ConfigurationType string `xml:"ConfigurationType"`
	ProjectName       string `xml:"ProjectName"`
}

type vcxItemGroup struct {
	ProjectConfigurations []vcxProjectConfiguration `xml:"ProjectConfiguration"`
	Compiles              []vcxFileItem             `xml:"ClCompile"`
	Includes              []vcxFileItem             `xml:"ClInclude"`
	ProjectReferences     []vcxProjectReference     `xml:"ProjectReference"`
}

type vcxProjectConfiguration struct {
	Include       string `xml:"Include,attr"`
	Configuration string `xml:"Configuration"`
	Platform      string `xml:"Platform"`
}

type vcxFileItem struct {
	Include           string       `xml:"Include,attr"`
	PrecompiledHeader []vcxPCHElem `xml:"PrecompiledHeader"`
}

type vcxPCHElem struct {
	Condition string `xml:"Condition,attr"`
	Value     string `xml:",chardata"`
}

type vcxProjectReference struct {
	Include string `xml:"Include,attr"`
}

type vcxItemDefinition struct {
	Condition string         `xml:"Condition,attr"`
	ClCompile vcxClCompile   `xml:"ClCompile"`
	Link      vcxLinkSection `xml:"Link"`
}

type vcxClCompile struct {
	AdditionalIncludeDirectories string `xml:"AdditionalIncludeDirectories"`
	PreprocessorDefinitions      string `xml:"PreprocessorDefinitions"`
	ForcedIncludeFiles           string `xml:"ForcedIncludeFiles"`
	PrecompiledHeader            string `xml:"PrecompiledHeader"`
	PrecompiledHeaderFile        string `xml:"PrecompiledHeaderFile"`
	LanguageStandard             string `xml:"LanguageStandard"`
}

type vcxLinkSection struct {
	AdditionalDependencies string `xml:"AdditionalDependencies"`
}

// ParsedProject is one project file's metadata plus the raw
// ProjectReference paths; the loader resolves those to solution
// projects when wiring dependency edges.
type ParsedProject struct {
	Project    *models.Project
	References []string
}

// ParseProject reads one .vcxproj file. The ref carries the solution's
// name and GUID for the project so the model stays keyed consistently.
func ParseProject(path string, ref models.ProjectRef) (*ParsedProject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.FileSystemErrorf(err, "failed to read project %s", path)
	}

	var file vcxFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.ParseError(err, "failed to parse project "+path).WithContext("project", ref.Name)
	}

	project := &models.Project{
		Name: SanitizeName(projectName(&file, ref.Name)),
		ID:   ref.ID,
		Path: path,
	}

	project.RawType = configurationType(&file)

	var refs []string
	for _, group := range file.ItemGroups {
		for _, pc := range group.ProjectConfigurations {
			config, platform := splitConfigPlatform(pc.Include)
			if config == "" {
				config = pc.Configuration
				platform = pc.Platform
			}
			if config == "" {
				continue
			}
			project.Profiles = append(project.Profiles, models.ConfigurationProfile{
				Configuration: config,
				Platform:      platform,
			})
		}
		for _, item := range group.Compiles {
			if item.Include == "" {
				continue
			}
			project.Sources = append(project.Sources, fixPath(item.Include))
		}
		for _, item := range group.Includes {
			if item.Include == "" {
				continue
			}
			project.Headers = append(project.Headers, fixPath(item.Include))
		}
		for _, pr := range group.ProjectReferences {
			if pr.Include != "" {
				refs = append(refs, pr.Include)
			}
		}
	}

	for _, def := range file.ItemDefGroups {
		config, platform := conditionConfigPlatform(def.Condition)
		if config == "" {
			continue
		}
		profile := profileSlot(project, config, platform)
		applyCompileSettings(profile, &def)
	}

	applyFilePCHOverrides(project, &file)

	return &ParsedProject{Project: project, References: refs}, nil
}

func projectName(file *vcxFile, fallback string) string {
	for _, pg := range file.PropertyGroups {
		if pg.ProjectName != "" {
			return pg.ProjectName
		}
	}
	return fallback
}

func configurationType(file *vcxFile) string {
	for _, pg := range file.PropertyGroups {
		if pg.ConfigurationType != "" {
			return pg.ConfigurationType
		}
	}
	// MSBuild's own default when ConfigurationType is absent
	return "Application"
}

// profileSlot finds the (configuration, platform) profile, creating it
// when an ItemDefinitionGroup mentions a pair the configuration grid
// did not declare.
func profileSlot(project *models.Project, config, platform string) *models.ConfigurationProfile {
	for i := range project.Profiles {
		p := &project.Profiles[i]
		if p.Configuration == config && p.Platform == platform {
			return p
		}
	}
	project.Profiles = append(project.Profiles, models.ConfigurationProfile{
		Configuration: config,
		Platform:      platform,
	})
	return &project.Profiles[len(project.Profiles)-1]
}

func applyCompileSettings(profile *models.ConfigurationProfile, def *vcxItemDefinition) {
	for _, dir := range splitList(def.ClCompile.AdditionalIncludeDirectories, "AdditionalIncludeDirectories") {
		profile.IncludeDirs = append(profile.IncludeDirs, fixPath(dir))
	}
	profile.Defines = append(profile.Defines, splitList(def.ClCompile.PreprocessorDefinitions, "PreprocessorDefinitions")...)
	for _, inc := range splitList(def.ClCompile.ForcedIncludeFiles, "ForcedIncludeFiles") {
		profile.ForceIncludes = append(profile.ForceIncludes, fixPath(inc))
	}
	for _, lib := range splitList(def.Link.AdditionalDependencies, "AdditionalDependencies") {
		profile.LinkedLibs = append(profile.LinkedLibs, stripLibSuffix(fixPath(lib)))
	}

	switch def.ClCompile.PrecompiledHeader {
	case "Create":
		profile.PCHMode = models.PCHCreate
	case "Use":
		profile.PCHMode = models.PCHUse
	case "NotUsing":
		profile.PCHMode = models.PCHNone
	}
	if def.ClCompile.PrecompiledHeaderFile != "" {
		profile.PCHHeader = fixPath(def.ClCompile.PrecompiledHeaderFile)
	}
	if std := languageStandard(def.ClCompile.LanguageStandard); std != 0 {
		profile.CppStandard = std
	}
}

// applyFilePCHOverrides handles the PCH-generating translation unit: a
// per-file PrecompiledHeader=Create marks the owning configuration as
// create mode even when the group-level setting says Use.
func applyFilePCHOverrides(project *models.Project, file *vcxFile) {
	for _, group := range file.ItemGroups {
		for _, item := range group.Compiles {
			for _, pch := range item.PrecompiledHeader {
				if strings.TrimSpace(pch.Value) != "Create" {
					continue
				}
				config, platform := conditionConfigPlatform(pch.Condition)
				if config == "" {
					// Unconditioned: the file creates the PCH for every
					// configuration that uses one.
					for i := range project.Profiles {
						if project.Profiles[i].PCHMode == models.PCHUse {
							project.Profiles[i].PCHMode = models.PCHCreate
						}
					}
					continue
				}
				profile := profileSlot(project, config, platform)
				profile.PCHMode = models.PCHCreate
			}
		}
	}
}

// splitList breaks an MSBuild semicolon list, dropping empties and the
// %(Inherited) marker MSBuild injects.
func splitList(raw, property string) []string {
	if raw == "" {
		return nil
	}
	inherited := "%(" + property + ")"
	var out []string
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" || part == inherited || strings.HasPrefix(part, "%(") {
			continue
		}
		out = append(out, part)
	}
	return out
}

// conditionConfigPlatform extracts ("Debug", "x64") from a condition of
// the form '$(Configuration)|$(Platform)'=='Debug|x64'.
func conditionConfigPlatform(condition string) (string, string) {
	const marker = "'$(Configuration)|$(Platform)'=='"
	idx := strings.Index(condition, marker)
	if idx < 0 {
		return "", ""
	}
	rest := condition[idx+len(marker):]
	end := strings.Index(rest, "'")
	if end < 0 {
		return "", ""
	}
	return splitConfigPlatform(rest[:end])
}

func splitConfigPlatform(pair string) (string, string) {
	config, platform, ok := strings.Cut(pair, "|")
	if !ok {
		return "", ""
	}
	return config, platform
}

func languageStandard(raw string) int {
	switch raw {
	case "stdcpp14":
		return 14
	case "stdcpp17":
		return 17
	case "stdcpp20":
		return 20
	case "stdcpplatest":
		return 23
	default:
		return 0
	}
}

// fixPath converts MSBuild paths to the forward-slash, solution-relative
// form CMake expects.
func fixPath(p string) string {
	p = strings.ReplaceAll(p, "$(SolutionDir)", "../")
	p = strings.ReplaceAll(p, "\\", "/")
	return p
}

func stripLibSuffix(lib string) string {
	return strings.TrimSuffix(lib, ".lib")
}

// SanitizeName rewrites a project name into a valid CMake target name.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, " ", "_")
	return name
}

// Stem returns the file name without directory or extension, tolerant
// of Windows separators.
func Stem(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
