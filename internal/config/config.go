// Package config loads the operator configuration for dnsrun.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fentz26/dnsrun/internal/timeseries"
	"gopkg.in/yaml.v3"
)

// Config holds the run-directory conventions and tool settings.
type Config struct {
	// ParametersFile is the namelist the solver reads.
	ParametersFile string `yaml:"parameters_file"`
	// PrimaryLog is the log used to look up resumption times.
	PrimaryLog string `yaml:"primary_log"`
	// LogPattern selects the diagnostic logs to truncate.
	LogPattern string `yaml:"log_pattern"`
	// ScriptPattern selects job scripts copied with a run.
	ScriptPattern string `yaml:"script_pattern"`
	// ContinueDir is the subdirectory created by continue --newdir.
	ContinueDir string `yaml:"continue_dir"`
	// SubmitCommand is the scheduler command given a job script.
	SubmitCommand string `yaml:"submit_command"`
	// Journal is the SQLite operation journal. Empty disables it.
	Journal string `yaml:"journal"`
	// LogSchemas overrides the column layout of named logs.
	LogSchemas map[string]timeseries.Schema `yaml:"log_schemas"`
	// DefaultSchema applies to logs not listed in LogSchemas.
	DefaultSchema timeseries.Schema `yaml:"default_schema"`
}

// DefaultConfig returns the conventions of the solver's own run layout.
func DefaultConfig() *Config {
	schemas := timeseries.DefaultSchemas()
	return &Config{
		ParametersFile: "parameters.in",
		PrimaryLog:     timeseries.StatLog,
		LogPattern:     "*.gp",
		ScriptPattern:  "*.slurm",
		ContinueDir:    "continue",
		SubmitCommand:  "sbatch",
		Journal:        defaultJournal(),
		LogSchemas:     schemas.Files,
		DefaultSchema:  schemas.Default,
	}
}

func defaultJournal() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dnsrun", "journal.db")
}

// DefaultPath returns ~/.dnsrun/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dnsrun", "config.yaml")
}

// Load reads configuration from a YAML file over the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.Journal = expandHome(cfg.Journal)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	for field, v := range map[string]string{
		"parameters_file": c.ParametersFile,
		"primary_log":     c.PrimaryLog,
		"continue_dir":    c.ContinueDir,
		"submit_command":  c.SubmitCommand,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
	}
	if strings.ContainsRune(c.ContinueDir, filepath.Separator) {
		return fmt.Errorf("continue_dir %q must be a plain directory name", c.ContinueDir)
	}

	for field, pattern := range map[string]string{
		"log_pattern":    c.LogPattern,
		"script_pattern": c.ScriptPattern,
	} {
		if !doublestar.ValidatePattern(pattern) || pattern == "" {
			return fmt.Errorf("%s %q is not a valid pattern", field, pattern)
		}
	}

	for name, s := range c.LogSchemas {
		if err := validateSchema(s); err != nil {
			return fmt.Errorf("log_schemas[%s]: %w", name, err)
		}
	}
	if err := validateSchema(c.DefaultSchema); err != nil {
		return fmt.Errorf("default_schema: %w", err)
	}
	return nil
}

func validateSchema(s timeseries.Schema) error {
	if s.StepColumn < 0 || s.TimeColumn < 0 {
		return fmt.Errorf("columns must be non-negative")
	}
	if s.StepColumn == s.TimeColumn {
		return fmt.Errorf("step and time columns must differ")
	}
	return nil
}

// Schemas returns the log layouts as a timeseries.Schemas.
func (c *Config) Schemas() timeseries.Schemas {
	return timeseries.Schemas{Files: c.LogSchemas, Default: c.DefaultSchema}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
