package calc_go

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Verbosity int8

const (
	QUIET   Verbosity = 0 // No prompt, results only.
	NORMAL  Verbosity = 1 // Prompt on terminals.
	VERBOSE Verbosity = 2 // Echo every line next to its result.
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

type CalcConfig struct {
	Verbosity Verbosity
	// Precision for printed values, -1 means shortest round-trip form.
	Precision   int
	Prompt      string
	Color       ColorMode
	Accumulator float64
	Stats       bool

	// Warnings raised while loading the config file.
	Warnings []string
}

func NewCalcConfig() *CalcConfig {
	return &CalcConfig{
		Verbosity: NORMAL,
		Precision: -1,
		Prompt:    "> ",
		Color:     ColorAuto,
	}
}

// / On-disk form of the config file. Absent keys keep the current value.
type configFile struct {
	Accumulator *float64  `yaml:"accumulator"`
	Precision   *int      `yaml:"precision"`
	Prompt      *string   `yaml:"prompt"`
	Color       *string   `yaml:"color"`
	Verbose     *bool     `yaml:"verbose"`
	Quiet       *bool     `yaml:"quiet"`
	Debug       debugList `yaml:"debug"`

	RequiredVersion *string `yaml:"required_version"`
}

type debugList []string

func (l *debugList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = debugList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			if str = strings.TrimSpace(str); str != "" {
				items = append(items, str)
			}
		}
		*l = items
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	}
	return fmt.Errorf("config: expected string or sequence for debug but found %s", value.ShortTag())
}

// / Load a YAML config file on top of config.
func LoadConfigFile(path string, config *CalcConfig) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()
	return DecodeConfig(file, path, config)
}

func DecodeConfig(r io.Reader, name string, config *CalcConfig) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("config: parse %s: %w", name, err)
	}

	if raw.RequiredVersion != nil {
		warning, err := CheckCalcVersion(*raw.RequiredVersion)
		if err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
		if warning != "" {
			config.Warnings = append(config.Warnings, warning)
		}
	}
	if raw.Accumulator != nil {
		config.Accumulator = *raw.Accumulator
	}
	if raw.Precision != nil {
		if *raw.Precision < -1 {
			return fmt.Errorf("config: %s: precision must be -1 or more, got %d", name, *raw.Precision)
		}
		config.Precision = *raw.Precision
	}
	if raw.Prompt != nil {
		config.Prompt = *raw.Prompt
	}
	if raw.Color != nil {
		mode := ColorMode(strings.ToLower(strings.TrimSpace(*raw.Color)))
		if !mode.IsValid() {
			return fmt.Errorf("config: %s: unknown color mode '%s'", name, *raw.Color)
		}
		config.Color = mode
	}
	if raw.Verbose != nil && *raw.Verbose {
		config.Verbosity = VERBOSE
	}
	if raw.Quiet != nil && *raw.Quiet {
		config.Verbosity = QUIET
	}
	for _, mode := range raw.Debug {
		ok, err := DebugEnable(mode, config, io.Discard)
		if err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
		if !ok {
			return fmt.Errorf("config: %s: debug mode '%s' is only valid on the command line", name, mode)
		}
	}
	return nil
}
