package classify

import (
	"github.com/sln2cmake/sln2cmake-go/internal/models"
)

// Kind maps a project file's declared output type to the kinds the
// converter can express. Anything unrecognized (Makefile, Utility,
// driver projects) is Unsupported: such projects stay in the dependency
// graph and the output sequence, they just never become build targets.
func Kind(rawType string) models.ProjectKind {
	switch rawType {
	case "StaticLibrary":
		return models.KindStaticLibrary
	case "DynamicLibrary":
		return models.KindSharedLibrary
	case "Application":
		return models.KindExecutable
	default:
		return models.KindUnsupported
	}
}

// PCHSettings resolves the precompiled-header state per configuration.
// PCH participation can differ between configurations (enabled only in
// Release, say), so the result is one setting per configuration that
// actually uses a PCH; configurations without an entry are in none mode
// and must stay that way.
func PCHSettings(profiles []models.ConfigurationProfile, globalConfigs []string) []models.PCHSetting {
	var settings []models.PCHSetting
	for _, config := range globalConfigs {
		profile, ok := profileFor(profiles, config)
		if !ok || profile.PCHMode == "" || profile.PCHMode == models.PCHNone {
			continue
		}
		settings = append(settings, models.PCHSetting{
			Config: config,
			Mode:   profile.PCHMode,
			Header: profile.PCHHeader,
		})
	}
	return settings
}

// profileFor picks the first declared profile for a configuration name.
// CMake has a single configuration axis, so when the same configuration
// exists for several platforms the first-seen platform wins.
func profileFor(profiles []models.ConfigurationProfile, config string) (models.ConfigurationProfile, bool) {
	for _, p := range profiles {
		if p.Configuration == config {
			return p, true
		}
	}
	return models.ConfigurationProfile{}, false
}
