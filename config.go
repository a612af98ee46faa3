package taskmgr

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/taskmgr/internal/logging"
	"github.com/viant/taskmgr/model"
	"github.com/viant/taskmgr/service/manager"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "TM"

// Config is a serialisable representation of the registry configuration. It
// can be populated from YAML or JSON and overridden by environment variables.
type Config struct {
	Capacity int            `json:"capacity" yaml:"capacity"`
	Mode     model.Mode     `json:"mode" yaml:"mode"`
	Logging  logging.Config `json:"logging" yaml:"logging"`
	Tracing  TracingConfig  `json:"tracing" yaml:"tracing"`
	Events   EventsConfig   `json:"events" yaml:"events"`
}

// TracingConfig controls the OpenTelemetry stdout exporter.
type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty"`
	OutputFile     string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// EventsConfig controls the change event queue.
type EventsConfig struct {
	Buffer int `json:"buffer" yaml:"buffer"`
}

// DefaultConfig returns a Config populated with the registry defaults.
func DefaultConfig() *Config {
	return &Config{
		Capacity: manager.DefaultCapacity,
		Mode:     model.ModeDefault,
		Logging:  logging.DefaultConfig(),
		Tracing: TracingConfig{
			ServiceName:    "taskmgr",
			ServiceVersion: Version,
		},
		Events: EventsConfig{Buffer: 100},
	}
}

// Validate returns the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := model.ValidateCapacity(c.Capacity); err != nil {
		return err
	}
	if !c.Mode.IsValid() {
		return &model.InvalidModeError{Value: uint8(c.Mode)}
	}
	if c.Events.Buffer < 0 {
		return fmt.Errorf("events.buffer must be >= 0")
	}
	return nil
}

// DecodeYAML decodes data on top of DefaultConfig.
func DecodeYAML(data []byte) (*Config, error) {
	ret := DefaultConfig()
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return ret, nil
}

// LoadConfig reads a YAML config from URL (any afs supported scheme), applies
// environment overrides and validates the result.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	cfg, err := DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	if err = ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with TM_CAPACITY, TM_MODE, TM_LOG_LEVEL and
// TM_LOG_FORMAT when set. Values are validated before anything is applied.
func ApplyEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	for key, name := range map[string]string{
		"capacity":   "TM_CAPACITY",
		"mode":       "TM_MODE",
		"log.level":  "TM_LOG_LEVEL",
		"log.format": "TM_LOG_FORMAT",
	} {
		if err := v.BindEnv(key, name); err != nil {
			return err
		}
	}
	capacity, mode := cfg.Capacity, cfg.Mode
	if v.IsSet("capacity") {
		raw := strings.TrimSpace(v.GetString("capacity"))
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return &model.InvalidCapacityError{Value: raw}
		}
		if err = model.ValidateCapacity(parsed); err != nil {
			return err
		}
		capacity = parsed
	}
	if v.IsSet("mode") {
		parsed, err := model.ParseMode(v.GetString("mode"))
		if err != nil {
			return err
		}
		mode = parsed
	}
	cfg.Capacity, cfg.Mode = capacity, mode
	if v.IsSet("log.level") {
		cfg.Logging.Level = v.GetString("log.level")
	}
	if v.IsSet("log.format") {
		cfg.Logging.Format = v.GetString("log.format")
	}
	return nil
}
