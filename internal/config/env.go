package config

import (
	env "github.com/caarlos0/env/v11"
)

// Environment carries the process-environment overrides. DOOMWADDIR is
// the long-standing convention most source ports honor themselves.
type Environment struct {
	SettingsPath string `env:"DOOMBATS_CONFIG"`
	WADDir       string `env:"DOOMWADDIR"`
	LogLevel     string `env:"DOOMBATS_LOG"`
}

func LoadEnvironment() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return Environment{}, err
	}
	return e, nil
}

// Apply folds the environment overrides into the loaded settings.
func (e Environment) Apply(s Settings) Settings {
	if e.WADDir != "" {
		s.WADDir = e.WADDir
	}
	if e.LogLevel != "" {
		s.Logging.Level = e.LogLevel
	}
	return s
}
