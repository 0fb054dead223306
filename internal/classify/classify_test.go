package classify

import (
	"testing"

	"github.com/sln2cmake/sln2cmake-go/internal/models"
)

func TestKind(t *testing.T) {
	tests := []struct {
		rawType string
		want    models.ProjectKind
	}{
		{"StaticLibrary", models.KindStaticLibrary},
		{"DynamicLibrary", models.KindSharedLibrary},
		{"Application", models.KindExecutable},
		{"Makefile", models.KindUnsupported},
		{"Utility", models.KindUnsupported},
		{"", models.KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.rawType, func(t *testing.T) {
			if got := Kind(tt.rawType); got != tt.want {
				t.Errorf("Kind(%q) = %q, want %q", tt.rawType, got, tt.want)
			}
		})
	}
}

func TestPCHSettingsPerConfiguration(t *testing.T) {
	profiles := []models.ConfigurationProfile{
		{Configuration: "Debug", Platform: "x64", PCHMode: models.PCHNone},
		{Configuration: "Release", Platform: "x64", PCHMode: models.PCHUse, PCHHeader: "pch.h"},
	}

	settings := PCHSettings(profiles, []string{"Debug", "Release", "Test"})

	if len(settings) != 1 {
		t.Fatalf("expected 1 setting, got %d", len(settings))
	}
	s := settings[0]
	if s.Config != "Release" || s.Mode != models.PCHUse || s.Header != "pch.h" {
		t.Errorf("unexpected setting %+v", s)
	}
}

func TestPCHSettingsCreateAndUseIndependent(t *testing.T) {
	profiles := []models.ConfigurationProfile{
		{Configuration: "Debug", PCHMode: models.PCHCreate, PCHHeader: "stdafx.h"},
		{Configuration: "Release", PCHMode: models.PCHUse, PCHHeader: "stdafx.h"},
	}

	settings := PCHSettings(profiles, []string{"Debug", "Release"})

	if len(settings) != 2 {
		t.Fatalf("expected 2 settings, got %d", len(settings))
	}
	if settings[0].Mode != models.PCHCreate {
		t.Errorf("Debug mode = %q, want create", settings[0].Mode)
	}
	if settings[1].Mode != models.PCHUse {
		t.Errorf("Release mode = %q, want use", settings[1].Mode)
	}
}

func TestPCHSettingsFirstPlatformWins(t *testing.T) {
	profiles := []models.ConfigurationProfile{
		{Configuration: "Debug", Platform: "Win32", PCHMode: models.PCHUse, PCHHeader: "first.h"},
		{Configuration: "Debug", Platform: "x64", PCHMode: models.PCHUse, PCHHeader: "second.h"},
	}

	settings := PCHSettings(profiles, []string{"Debug"})

	if len(settings) != 1 {
		t.Fatalf("expected 1 setting, got %d", len(settings))
	}
	if settings[0].Header != "first.h" {
		t.Errorf("header = %q, want first.h", settings[0].Header)
	}
}
