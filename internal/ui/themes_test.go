package ui

import "testing"

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(DarkTheme)

	tests := []struct {
		name     string
		expected string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"teal", "teal"},
		{"none", "none"},
		{"unknown", "dark"},
	}

	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.expected {
			t.Errorf("SetTheme(%q): expected theme %q, got %q", tt.name, tt.expected, got)
		}
	}
}

func TestColorsDisabledUnderNoColorTheme(t *testing.T) {
	defer SetCurrentTheme(DarkTheme)

	SetTheme("none")
	if got := ColorRed(); got != "" {
		t.Errorf("expected empty escape code with colors disabled, got %q", got)
	}
	if got := ColorReset(); got != "" {
		t.Errorf("expected empty reset code with colors disabled, got %q", got)
	}

	SetTheme("dark")
	if got := ColorGreen(); got != ansiGreen {
		t.Errorf("expected green escape code, got %q", got)
	}
	if got := ColorUnderline(); got != ansiUnderline {
		t.Errorf("expected underline escape code, got %q", got)
	}
}

func TestInitThemeRespectsNoColorEnv(t *testing.T) {
	defer SetCurrentTheme(DarkTheme)

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if got := GetCurrentTheme().Name; got != "none" {
		t.Errorf("expected NoColorTheme with NO_COLOR set, got %q", got)
	}
}

func TestGetCurrentTUITheme(t *testing.T) {
	defer SetCurrentTheme(DarkTheme)

	SetTheme("none")
	if got := GetCurrentTUITheme(); got != NoColorTUITheme {
		t.Error("expected NoColorTUITheme when colors are disabled")
	}

	SetTheme("teal")
	if got := GetCurrentTUITheme(); got != DarkTUITheme {
		t.Error("expected DarkTUITheme for the teal theme")
	}
}
