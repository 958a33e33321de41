package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
workers: 3
log_level: debug
required_version: '>=1.0.0'
initial_data:
  name: web01
  ports: [80]
defines:
  site: eu-west
`))
	require.NoError(t, err)
	require.Equal(t, 3, s.Workers)
	require.Equal(t, dml.DEBUG, s.LogLevel)
	require.Equal(t, `>=1.0.0`, s.RequiredVersion)
	require.Equal(t, `{"name": "web01", "ports": [80]}`, s.InitialRecord().String())
	require.Equal(t, `{"site": "eu-west"}`, s.DefinedGlobals().String())
}

func TestParseKeepsDefaults(t *testing.T) {
	s, err := Parse([]byte(`log_level: info`))
	require.NoError(t, err)
	require.Equal(t, Default().Workers, s.Workers)
	require.Equal(t, 0, s.InitialRecord().Len())
}

func TestParseRejects(t *testing.T) {
	for name, data := range map[string]string{
		`unknown key`:       `colour: blue`,
		`zero workers`:      `workers: 0`,
		`unknown log level`: `log_level: loud`,
		`non string define`: "defines:\n  1: x\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			require.Error(t, err)
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	env := map[string]string{EnvWorkers: `7`, EnvLogLevel: `warning`}
	s := Default()
	require.NoError(t, s.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))
	require.Equal(t, 7, s.Workers)
	require.Equal(t, dml.WARNING, s.LogLevel)

	env[EnvWorkers] = `many`
	require.Error(t, s.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), `settings.yaml`)
	require.NoError(t, os.WriteFile(path, []byte(`workers: 2`), 0644))
	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, s.Workers)

	_, err = Load(filepath.Join(t.TempDir(), `missing.yaml`))
	require.Error(t, err)
}
