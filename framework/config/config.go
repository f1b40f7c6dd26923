package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the central typed configuration struct.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Container ContainerConfig `yaml:"container"`
	Log       LogConfig       `yaml:"log"`
	Inspect   InspectConfig   `yaml:"inspect"`
}

type AppConfig struct {
	Name  string `yaml:"name"`
	Env   string `yaml:"env"` // local | production | testing
	Debug bool   `yaml:"debug"`
}

// ContainerConfig tunes the injector.
type ContainerConfig struct {
	// RebindPolicy is one of silent | warn | strict.
	RebindPolicy string `yaml:"rebind_policy"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | console
}

// InspectConfig controls the binding inspector HTTP endpoint.
type InspectConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:  "GoInject",
			Env:   "local",
			Debug: true,
		},
		Container: ContainerConfig{
			RebindPolicy: "silent",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Inspect: InspectConfig{
			Enabled: false,
			Addr:    ":8070",
		},
	}
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	cfg := Defaults()
	loadEnv(envFiles)
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML file on top of the defaults, then applies .env files
// and environment variables, which win over the file.
func LoadFile(path string, envFiles ...string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	loadEnv(envFiles)
	cfg.applyEnv()
	return cfg, nil
}

func loadEnv(envFiles []string) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)
}

func (c *Config) applyEnv() {
	c.App.Name = env("APP_NAME", c.App.Name)
	c.App.Env = env("APP_ENV", c.App.Env)
	c.App.Debug = envBool("APP_DEBUG", c.App.Debug)

	c.Container.RebindPolicy = env("INJECT_REBIND", c.Container.RebindPolicy)

	c.Log.Level = env("LOG_LEVEL", c.Log.Level)
	c.Log.Format = env("LOG_FORMAT", c.Log.Format)

	c.Inspect.Enabled = envBool("INSPECT_ENABLED", c.Inspect.Enabled)
	c.Inspect.Addr = env("INSPECT_ADDR", c.Inspect.Addr)
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
