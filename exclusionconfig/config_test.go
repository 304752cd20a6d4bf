package exclusionconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate: %v", err)
	}
}

func TestConfigFromFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := "tolerance:\n  massPPM: 25\npersistence:\n  directory: /data/snapshots\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := ConfigFromFile(path)
	if err != nil {
		t.Fatalf("ConfigFromFile: %v", err)
	}
	if cfg.Tolerance.MassPPM != 25 {
		t.Errorf("Tolerance.MassPPM = %v, want 25", cfg.Tolerance.MassPPM)
	}
	if cfg.Persistence.Directory != "/data/snapshots" {
		t.Errorf("Persistence.Directory = %q, want /data/snapshots", cfg.Persistence.Directory)
	}
	// fields absent from the file should keep their defaults.
	if cfg.Tolerance.RT != DefaultConfig().Tolerance.RT {
		t.Errorf("Tolerance.RT = %v, want default %v", cfg.Tolerance.RT, DefaultConfig().Tolerance.RT)
	}
}

func TestConfigFromFileMissing(t *testing.T) {
	if _, err := ConfigFromFile("/nonexistent/path.yaml"); err == nil {
		t.Error("expected an error reading a missing config file")
	}
}

func TestConfigFromEnvOverridesDefaults(t *testing.T) {
	t.Setenv("EXCLUSIONMS_TOLERANCE_MASS_PPM", "42")
	t.Setenv("EXCLUSIONMS_PERSISTENCE_COMPRESS", "false")
	t.Setenv("EXCLUSIONMS_PERSISTENCE_DIR", "/tmp/env-dir")

	cfg := ConfigFromEnv(DefaultConfig())
	if cfg.Tolerance.MassPPM != 42 {
		t.Errorf("Tolerance.MassPPM = %v, want 42", cfg.Tolerance.MassPPM)
	}
	if cfg.Persistence.Compress {
		t.Error("Persistence.Compress should be false from env override")
	}
	if cfg.Persistence.Directory != "/tmp/env-dir" {
		t.Errorf("Persistence.Directory = %q, want /tmp/env-dir", cfg.Persistence.Directory)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("tolerance:\n  massPPM: 5\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("EXCLUSIONMS_TOLERANCE_MASS_PPM", "99")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Tolerance.MassPPM != 99 {
		t.Errorf("env should win over file: Tolerance.MassPPM = %v, want 99", cfg.Tolerance.MassPPM)
	}
}

func TestValidateRejectsNegativeTolerance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tolerance.MassPPM = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for negative mass tolerance")
	}
}

func TestValidateRejectsEmptyDirectory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Persistence.Directory = "   "
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an empty persistence directory")
	}
}

func TestToleranceConversion(t *testing.T) {
	tc := ToleranceConfig{Charge: true, MassPPM: 10, RT: 0}
	tol := tc.Tolerance()

	if !tol.Charge {
		t.Error("expected Charge to carry through")
	}
	if tol.Mass == nil || *tol.Mass != 10 {
		t.Errorf("Mass = %v, want 10", tol.Mass)
	}
	if tol.RT != nil {
		t.Error("a zero RT tolerance should leave the bound null")
	}
}
