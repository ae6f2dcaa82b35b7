package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"storynav/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	NavigationConfig struct {
		Branching             bool          `yaml:"branching"`
		CrossDocumentSwipe    bool          `yaml:"cross_document_swipe"`
		CanInsertAutomaticAd  bool          `yaml:"can_insert_automatic_ad"`
		InitialContentTimeout time.Duration `yaml:"initial_content_timeout" validate:"gt=0"`
		RepaintWorkaround     bool          `yaml:"repaint_workaround"`
	}

	LayoutConfig struct {
		MinWidth          int     `yaml:"min_width" validate:"min=1"`
		MinHeight         int     `yaml:"min_height" validate:"min=1"`
		AspectRatio       float64 `yaml:"aspect_ratio" validate:"gt=0.0"`
		SupportsLandscape bool    `yaml:"supports_landscape"`
		OnePanel          bool    `yaml:"one_panel"`
	}

	HistoryConfig struct {
		Store common.HistoryStore `yaml:"store" validate:"gte=0"`
		Path  string              `yaml:"path" sanitize:"path_clean" validate:"required_if=Store 1"`
	}

	BudgetConfig struct {
		MaxAudio          int `yaml:"max_audio" validate:"min=1"`
		MaxVideo          int `yaml:"max_video" validate:"min=1"`
		MinimumAdElements int `yaml:"minimum_ad_elements" validate:"gte=0"`
	}

	OutputConfig struct {
		EventTemplate string `yaml:"event_template" validate:"required"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Navigation NavigationConfig `yaml:"navigation"`
		Layout     LayoutConfig     `yaml:"layout"`
		History    HistoryConfig    `yaml:"history"`
		Budget     BudgetConfig     `yaml:"budget"`
		Output     OutputConfig     `yaml:"output"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	EventTemplateFieldName TemplateFieldName = "event_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(EventTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
