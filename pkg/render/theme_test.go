package render

import "testing"

func TestResolveTheme_DarkVariantOverlaysTokens(t *testing.T) {
	cfg := ResolveTheme(nil, ThemeDark)
	if cfg == nil {
		t.Fatal("expected a renderer config")
	}
	if cfg.Variant != ThemeDark {
		t.Fatalf("variant = %q", cfg.Variant)
	}
	if cfg.Tokens["bg"] != "#18181b" {
		t.Fatalf("dark bg token not overlaid: %q", cfg.Tokens["bg"])
	}
	if cfg.Tokens["accent"] != "#4f46e5" {
		t.Fatalf("base token lost: %q", cfg.Tokens["accent"])
	}
	if cfg.CSSVars["--bg"] != "#18181b" {
		t.Fatalf("css var not derived: %q", cfg.CSSVars["--bg"])
	}
}

func TestResolveTheme_UnknownPreferenceFallsBack(t *testing.T) {
	cfg := ResolveTheme(nil, "sepia")
	if cfg == nil {
		t.Fatal("unknown preference must fall back, not fail")
	}
	if cfg.Variant != "" {
		t.Fatalf("expected base variant, got %q", cfg.Variant)
	}
	if cfg.Tokens["bg"] != "#ffffff" {
		t.Fatalf("base bg = %q", cfg.Tokens["bg"])
	}
}
