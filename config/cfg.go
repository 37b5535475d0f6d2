package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"twigwind/theme"
	"twigwind/utility"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	ThemeConfig struct {
		Colors      map[string]string `yaml:"colors,omitempty" validate:"dive,keys,required,endkeys,required"`
		Sizes       map[string]string `yaml:"sizes,omitempty" validate:"dive,keys,required,endkeys,required"`
		Shadows     map[string]string `yaml:"shadows,omitempty" validate:"dive,keys,required,endkeys,required"`
		Breakpoints map[string]int    `yaml:"breakpoints,omitempty" validate:"dive,keys,required,endkeys,gt=0"`
	}

	GeneratorConfig struct {
		StyleID string      `yaml:"style_id" validate:"omitempty,max=64,excludesall=<>"`
		Verify  bool        `yaml:"verify"`
		Theme   ThemeConfig `yaml:"theme"`
	}

	DocumentConfig struct {
		Extensions            []string `yaml:"extensions" validate:"min=1,dive,required,startswith=."`
		OutputNameTemplate    string   `yaml:"output_name_template"`
		FileNameTransliterate bool     `yaml:"file_name_transliterate"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Generator GeneratorConfig `yaml:"generator"`
		Document  DocumentConfig  `yaml:"document"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// BuildTheme builds lookup tables for generators from defaults and configured
// overrides.
func (conf *GeneratorConfig) BuildTheme() *theme.Theme {
	return theme.New(theme.Overrides{
		Colors:      conf.Theme.Colors,
		Sizes:       conf.Theme.Sizes,
		Shadows:     conf.Theme.Shadows,
		Breakpoints: conf.Theme.Breakpoints,
	})
}

// checkBreakpoints makes sure breakpoint names could never be confused with
// other token prefixes.
func checkBreakpoints(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	for name := range cfg.Generator.Theme.Breakpoints {
		if name == utility.HoverMarker {
			sl.ReportError(cfg.Generator.Theme.Breakpoints, "Breakpoints", "breakpoints", "not_hover", name)
		}
		if strings.Contains(name, utility.Delimiter) {
			sl.ReportError(cfg.Generator.Theme.Breakpoints, "Breakpoints", "breakpoints", "no_delimiter", name)
		}
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkBreakpoints)); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
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

	// overwrite cfg values with values from the file
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
