package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultEngineKeyword = "gzdoom"
	defaultIWADKeyword   = "doom2"
)

// Settings is the launcher-wide configuration: the keyword tables the
// registry is built from, plus defaults. Values from the settings file
// overlay the built-in tables key by key.
type Settings struct {
	WADDir   string              `toml:"wad_dir"`
	Engines  map[string]string   `toml:"engines"`
	IWADs    map[string]string   `toml:"iwads"`
	Bundles  map[string][]string `toml:"bundles"`
	Defaults DefaultsSettings    `toml:"defaults"`
	Logging  LoggingSettings     `toml:"logging"`
}

type DefaultsSettings struct {
	Engine string `toml:"engine"`
	IWAD   string `toml:"iwad"`
}

type LoggingSettings struct {
	Level string `toml:"level"`
}

func DefaultSettings() Settings {
	return Settings{
		Engines: map[string]string{
			"gzdoom":   "gzdoom",
			"dsda":     "dsda-doom",
			"crispy":   "crispy-doom",
			"woof":     "woof",
			"eternity": "eternity",
		},
		IWADs: map[string]string{
			"doom":     "doom.wad",
			"doom1":    "doom1.wad",
			"doom2":    "doom2.wad",
			"tnt":      "tnt.wad",
			"plutonia": "plutonia.wad",
			"heretic":  "heretic.wad",
			"freedm":   "freedm.wad",
			"freedoom": "freedoom2.wad",
		},
		Bundles: map[string][]string{},
		Defaults: DefaultsSettings{
			Engine: defaultEngineKeyword,
			IWAD:   defaultIWADKeyword,
		},
		Logging: LoggingSettings{Level: "info"},
	}
}

// Load reads the settings file at path over the built-in defaults. A
// missing or empty file yields the defaults unchanged.
func Load(path string) (Settings, error) {
	cfg := DefaultSettings()
	if err := readTOML(path, &cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func (s Settings) DefaultEngine() string {
	keyword := strings.TrimSpace(s.Defaults.Engine)
	if keyword == "" {
		return defaultEngineKeyword
	}
	return keyword
}

func (s Settings) DefaultIWAD() string {
	keyword := strings.TrimSpace(s.Defaults.IWAD)
	if keyword == "" {
		return defaultIWADKeyword
	}
	return keyword
}

func (s Settings) LogLevel() string {
	level := strings.TrimSpace(s.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
