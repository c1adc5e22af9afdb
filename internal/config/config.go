package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tripallow/tripallow/internal/settlement"
)

// FileName is the default config file name inside a project directory.
const FileName = "tripallow.yaml"

// Config represents the top-level tripallow.yaml configuration.
type Config struct {
	Input   InputConfig        `yaml:"input"`
	Columns settlement.Columns `yaml:"columns"`
	Tokens  TokensConfig       `yaml:"tokens"`
	Policy  settlement.Policy  `yaml:"policy"`
	Rules   settlement.Rules   `yaml:"rules"`
	Output  OutputConfig       `yaml:"output"`
	Log     LogConfig          `yaml:"log"`
	RunLog  RunLogConfig       `yaml:"run_log"`
}

// InputConfig locates the header row of the trip sheet.
type InputConfig struct {
	HeaderRow int    `yaml:"header_row"` // metadata rows above the header
	Sheet     string `yaml:"sheet,omitempty"`
}

// TokensConfig holds the literal cell values the pipeline compares against.
type TokensConfig struct {
	VehicleUsed  string `yaml:"vehicle_used"`
	HeaderMarker string `yaml:"header_marker"`
}

// OutputConfig controls the exported summary workbook.
type OutputConfig struct {
	FileName string `yaml:"file_name"`
	Format   string `yaml:"format"` // xlsx or csv
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	Format     string `yaml:"format"`      // console or json
	OutputPath string `yaml:"output_path"` // stdout, stderr, or a file path
}

// RunLogConfig controls the settle-run ledger.
type RunLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads a tripallow.yaml file from disk. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path if it exists and returns the defaults otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config matching the trip-log export layout.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			HeaderRow: 1,
		},
		Columns: settlement.DefaultColumns(),
		Tokens: TokensConfig{
			VehicleUsed:  settlement.DefaultVehicleToken,
			HeaderMarker: settlement.DefaultHeaderMarker,
		},
		Policy: settlement.PolicyPerHalfDay,
		Rules:  settlement.DefaultRules(),
		Output: OutputConfig{
			FileName: "출장비_요약결과_월별.xlsx",
			Format:   "xlsx",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
		RunLog: RunLogConfig{
			Enabled: true,
			Path:    "logs/settle-log.csv",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Input.HeaderRow < 0 {
		errs = append(errs, fmt.Errorf("input.header_row %d is negative", c.Input.HeaderRow))
	}

	required := map[string]bool{
		"employee":   c.Columns.Employee.IsZero(),
		"trip_start": c.Columns.TripStart.IsZero(),
		"duration":   c.Columns.Duration.IsZero(),
		"vehicle":    c.Columns.Vehicle.IsZero(),
		"start_time": c.Columns.StartTime.IsZero(),
	}
	for _, name := range []string{"employee", "trip_start", "duration", "vehicle", "start_time"} {
		if required[name] {
			errs = append(errs, fmt.Errorf("columns.%s needs a header or a letter", name))
		}
	}

	if strings.TrimSpace(c.Tokens.VehicleUsed) == "" {
		errs = append(errs, errors.New("tokens.vehicle_used is required"))
	}
	if !c.Policy.Valid() {
		errs = append(errs, fmt.Errorf("policy %q must be %s or %s", c.Policy, settlement.PolicyPerTrip, settlement.PolicyPerHalfDay))
	}
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rules: %w", err))
	}

	switch strings.ToLower(c.Output.Format) {
	case "xlsx", "csv":
	default:
		errs = append(errs, fmt.Errorf("output.format %q must be xlsx or csv", c.Output.Format))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be console or json", c.Log.Format))
	}

	return errors.Join(errs...)
}

// EngineOptions converts the config into settlement engine options.
func (c *Config) EngineOptions() settlement.Options {
	return settlement.Options{
		Policy:       c.Policy,
		Rules:        c.Rules,
		Columns:      c.Columns,
		VehicleToken: c.Tokens.VehicleUsed,
		HeaderMarker: c.Tokens.HeaderMarker,
	}
}
