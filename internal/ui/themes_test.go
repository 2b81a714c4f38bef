package ui

import (
	"os"
	"testing"
)

// unsetNoColor clears NO_COLOR for the test and restores it afterwards.
func unsetNoColor(t *testing.T) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
}

func TestInitTheme_ByName(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)
	unsetNoColor(t)

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"solarized", "dark"},
	}
	for _, tt := range tests {
		InitTheme(tt.name, false)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("InitTheme(%q) selected %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLookupTheme(t *testing.T) {
	if th, ok := LookupTheme("light"); !ok || th.Primary != LightTheme.Primary {
		t.Errorf("LookupTheme(light) = %v, %v", th.Name, ok)
	}
	if _, ok := LookupTheme("solarized"); ok {
		t.Error("LookupTheme should reject unknown names")
	}
}

func TestInitTheme_NoColor(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)
	unsetNoColor(t)

	InitTheme("light", true)
	if ColorError() != "" || ColorReset() != "" {
		t.Error("no-color theme must not emit escape codes")
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme("dark", false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestColorAccessors(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)

	SetCurrentTheme(DarkTheme)
	if ColorPrimary() != DarkTheme.Primary || ColorSuccess() != DarkTheme.Success ||
		ColorWarning() != DarkTheme.Warning || ColorSecondary() != DarkTheme.Secondary ||
		ColorBold() != DarkTheme.Bold {
		t.Error("accessors should return the active theme's codes")
	}
}
