package config

import "testing"

func TestValidateDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Catalog.PageSize != 40 {
		t.Errorf("page size = %d, want 40", cfg.Catalog.PageSize)
	}
}

func TestValidateNormalizesMediaMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog.Media = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty media mode should normalize: %v", err)
	}
	if cfg.Catalog.Media != MediaModeScenes {
		t.Errorf("media = %q, want %q", cfg.Catalog.Media, MediaModeScenes)
	}

	cfg.Catalog.Media = "albums"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown media mode should be rejected")
	}
}

func TestValidateRejectsBadPageSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog.PageSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero page size should be rejected")
	}
}

func TestValidateRestoresTimerDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.OverlayTimeoutMS = -1
	cfg.UI.SearchDebounceMS = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.UI.OverlayTimeoutMS != 2000 || cfg.UI.SearchDebounceMS != 500 {
		t.Errorf("timers = %d/%d, want 2000/500",
			cfg.UI.OverlayTimeoutMS, cfg.UI.SearchDebounceMS)
	}
}

func TestIsConfigured(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IsConfigured() {
		t.Error("empty server URL should read as unconfigured")
	}
	cfg.Server.URL = "http://localhost:9999"
	if !cfg.IsConfigured() {
		t.Error("server URL set should read as configured")
	}
}
