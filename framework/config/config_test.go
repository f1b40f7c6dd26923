package config_test

import (
	"os"
	"testing"

	"github.com/km-arc/go-inject/framework/config"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func setEnv(t *testing.T, key, val string) {
	t.Helper()
	t.Setenv(key, val) // automatically restored after test
}

// unsetEnv clears key for the duration of the test so .env files can set it.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	// No env set → verify all defaults
	cfg := config.Load("testdata/empty.env")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"App.Name", cfg.App.Name, "GoInject"},
		{"App.Env", cfg.App.Env, "local"},
		{"Container.RebindPolicy", cfg.Container.RebindPolicy, "silent"},
		{"Log.Level", cfg.Log.Level, "info"},
		{"Log.Format", cfg.Log.Format, "console"},
		{"Inspect.Addr", cfg.Inspect.Addr, ":8070"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	if cfg.Inspect.Enabled {
		t.Error("Inspect.Enabled should default to false")
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	setEnv(t, "APP_NAME", "MyApp")
	setEnv(t, "APP_ENV", "production")
	setEnv(t, "INJECT_REBIND", "strict")
	setEnv(t, "INSPECT_ENABLED", "true")
	setEnv(t, "INSPECT_ADDR", ":9999")

	cfg := config.Load("testdata/empty.env")

	if cfg.App.Name != "MyApp" {
		t.Errorf("App.Name: got %q want %q", cfg.App.Name, "MyApp")
	}
	if cfg.App.Env != "production" {
		t.Errorf("App.Env: got %q want %q", cfg.App.Env, "production")
	}
	if cfg.Container.RebindPolicy != "strict" {
		t.Errorf("Container.RebindPolicy: got %q want %q", cfg.Container.RebindPolicy, "strict")
	}
	if !cfg.Inspect.Enabled || cfg.Inspect.Addr != ":9999" {
		t.Errorf("Inspect: got %+v", cfg.Inspect)
	}
}

func TestLoad_DotenvFile(t *testing.T) {
	unsetEnv(t, "APP_NAME")
	unsetEnv(t, "INJECT_REBIND")

	cfg := config.Load("testdata/app.env")

	if cfg.App.Name != "FromDotenv" {
		t.Errorf("App.Name: got %q want %q", cfg.App.Name, "FromDotenv")
	}
	if cfg.Container.RebindPolicy != "warn" {
		t.Errorf("Container.RebindPolicy: got %q want %q", cfg.Container.RebindPolicy, "warn")
	}
}

func TestLoad_AppDebugTrue(t *testing.T) {
	setEnv(t, "APP_DEBUG", "true")
	cfg := config.Load("testdata/empty.env")
	if !cfg.App.Debug {
		t.Error("expected App.Debug to be true")
	}
}

func TestLoad_AppDebugFalse(t *testing.T) {
	setEnv(t, "APP_DEBUG", "false")
	cfg := config.Load("testdata/empty.env")
	if cfg.App.Debug {
		t.Error("expected App.Debug to be false")
	}
}

// ── LoadFile ─────────────────────────────────────────────────────────────────

func TestLoadFile_YAML(t *testing.T) {
	cfg, err := config.LoadFile("testdata/inject.yaml", "testdata/empty.env")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.App.Name != "FromYAML" || cfg.App.Env != "testing" || cfg.App.Debug {
		t.Errorf("App: got %+v", cfg.App)
	}
	if cfg.Container.RebindPolicy != "strict" {
		t.Errorf("Container.RebindPolicy: got %q want strict", cfg.Container.RebindPolicy)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log: got %+v", cfg.Log)
	}
	if !cfg.Inspect.Enabled || cfg.Inspect.Addr != "127.0.0.1:9090" {
		t.Errorf("Inspect: got %+v", cfg.Inspect)
	}
}

func TestLoadFile_EnvWinsOverYAML(t *testing.T) {
	setEnv(t, "APP_NAME", "FromEnv")

	cfg, err := config.LoadFile("testdata/inject.yaml", "testdata/empty.env")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.App.Name != "FromEnv" {
		t.Errorf("App.Name: got %q want FromEnv", cfg.App.Name)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := config.LoadFile("testdata/missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := config.LoadFile("testdata/bad.yaml", "testdata/empty.env"); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

// ── Get / GetInt / GetBool ───────────────────────────────────────────────────

func TestGet_ReturnsValue(t *testing.T) {
	setEnv(t, "CUSTOM_KEY", "hello")
	if got := config.Get("CUSTOM_KEY", "default"); got != "hello" {
		t.Errorf("got %q want %q", got, "hello")
	}
}

func TestGet_ReturnsFallback(t *testing.T) {
	unsetEnv(t, "MISSING_KEY")
	if got := config.Get("MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("got %q want %q", got, "fallback")
	}
}

func TestGetInt_ReturnsInt(t *testing.T) {
	setEnv(t, "SOME_INT", "42")
	if got := config.GetInt("SOME_INT", 0); got != 42 {
		t.Errorf("got %d want %d", got, 42)
	}
}

func TestGetInt_ReturnsFallbackOnInvalid(t *testing.T) {
	setEnv(t, "SOME_INT", "notanint")
	if got := config.GetInt("SOME_INT", 99); got != 99 {
		t.Errorf("got %d want %d", got, 99)
	}
}

func TestGetBool_True(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		setEnv(t, "BOOL_KEY", val)
		if !config.GetBool("BOOL_KEY", false) {
			t.Errorf("expected true for %q", val)
		}
	}
}

func TestGetBool_ReturnsFallbackOnInvalid(t *testing.T) {
	setEnv(t, "BOOL_KEY", "notabool")
	if config.GetBool("BOOL_KEY", true) != true {
		t.Error("expected fallback true")
	}
}
