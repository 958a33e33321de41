// Package config contains the settings that control a compilation.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/values"
	"github.com/lyraproj/pan-evaluator/yaml"
	ym "gopkg.in/yaml.v2"
)

const (
	EnvWorkers  = `PAN_WORKERS`
	EnvLogLevel = `PAN_LOG_LEVEL`
)

// Settings control a compilation.
type Settings struct {
	// Workers is the maximum number of templates that are compiled concurrently
	Workers int `yaml:"workers"`

	LogLevel dml.LogLevel `yaml:"log_level"`

	// RequiredVersion is a version range that the compiler version must satisfy
	RequiredVersion string `yaml:"required_version"`

	// InitialData is the initial content of every object
	InitialData ym.MapSlice `yaml:"initial_data"`

	// Defines are the final global variables of every object
	Defines ym.MapSlice `yaml:"defines"`
}

func Default() *Settings {
	return &Settings{Workers: runtime.NumCPU(), LogLevel: dml.NOTICE}
}

// Load reads settings from the YAML file at the given path. Environment overrides
// are applied to the result.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, path, err)
	}
	return s, nil
}

// Parse reads settings from YAML data. Settings absent in the data retain their
// default. Environment overrides are applied to the result.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := ym.UnmarshalStrict(data, s); err != nil {
		return nil, err
	}
	if err := s.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf(`%s: %w`, EnvWorkers, err)
		}
		s.Workers = n
	}
	if v, ok := lookup(EnvLogLevel); ok {
		s.LogLevel = dml.LogLevel(v)
	}
	return nil
}

// Validate checks that the settings are usable
func (s *Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf(`workers must be a positive number, got %d`, s.Workers)
	}
	if _, ok := dml.ParseLogLevel(string(s.LogLevel)); !ok {
		return fmt.Errorf(`unknown log level '%s'`, s.LogLevel)
	}
	for _, d := range s.Defines {
		if _, ok := d.Key.(string); !ok {
			return fmt.Errorf(`define %v: name must be a string`, d.Key)
		}
	}
	return nil
}

// InitialRecord returns a new record with the initial data
func (s *Settings) InitialRecord() *values.Record {
	return yaml.WrapSlice(s.InitialData)
}

// DefinedGlobals returns a new record with the defined global variables
func (s *Settings) DefinedGlobals() *values.Record {
	return yaml.WrapSlice(s.Defines)
}
