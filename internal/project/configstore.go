package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// LaunchConfigName is the per-project launch settings file, created on
// the first project-mode run and only read afterwards. Users may edit it
// by hand.
const LaunchConfigName = "launch.cfg"

const defaultSkill = "4"

// Episodic IWADs address maps as episode+map, so their warp default
// needs both components.
var episodicIWADs = map[string]bool{
	"doom.wad":    true,
	"doom1.wad":   true,
	"heretic.wad": true,
	"chex.wad":    true,
}

// Config is the parsed launch.cfg. PWAD and IWAD are required; TexWAD is
// optional and only disables inclusion when absent.
type Config struct {
	PWAD   string
	TexWAD string
	IWAD   string
	Warp   string
	Skill  string
}

// ConfigError reports a launch.cfg that is present but unusable.
type ConfigError struct {
	Path    string
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: missing required keys: %s", e.Path, strings.Join(e.Missing, ", "))
}

func ConfigPath(dir string) string {
	return filepath.Join(dir, LaunchConfigName)
}

// WarpDefaultFor derives the warp default from the IWAD the project
// targets: episode+map for episodic IWADs, a flat map number otherwise.
func WarpDefaultFor(iwadPath string) string {
	if episodicIWADs[strings.ToLower(filepath.Base(iwadPath))] {
		return "1 1"
	}
	return "1"
}

// EnsureConfig writes a fresh launch.cfg when the project has none. An
// existing file is left untouched, whatever its content.
func EnsureConfig(dir, iwadPath string) error {
	path := ConfigPath(dir)
	if fileExists(path) {
		return nil
	}
	name := Name(dir)
	var b strings.Builder
	b.WriteString("# doombats launch settings\n")
	b.WriteString("\n")
	b.WriteString("# project files\n")
	fmt.Fprintf(&b, "pwad = ./dist/%s.wad\n", name)
	fmt.Fprintf(&b, "iwad = %s\n", iwadPath)
	b.WriteString("\n")
	b.WriteString("# launch defaults\n")
	fmt.Fprintf(&b, "warp = %s\n", WarpDefaultFor(iwadPath))
	fmt.Fprintf(&b, "skill = %s\n", defaultSkill)
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// ReadConfig parses launch.cfg. Blank lines, section headings and
// unknown keys are ignored; only missing required keys are an error, and
// all of them are reported at once.
func ReadConfig(path string) (Config, error) {
	pairs, err := readKeyValues(path)
	if err != nil {
		return Config{}, fmt.Errorf("read launch config: %w", err)
	}
	cfg := Config{
		PWAD:   pairs["pwad"],
		TexWAD: pairs["texwad"],
		IWAD:   pairs["iwad"],
		Warp:   pairs["warp"],
		Skill:  pairs["skill"],
	}
	var missing []string
	if cfg.PWAD == "" {
		missing = append(missing, "pwad")
	}
	if cfg.IWAD == "" {
		missing = append(missing, "iwad")
	}
	if len(missing) > 0 {
		return Config{}, &ConfigError{Path: path, Missing: missing}
	}
	return cfg, nil
}

var keyValuePattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_.-]*)\s*=\s*(.*)$`)

// readKeyValues is the tolerant line-oriented parser shared by
// launch.cfg and the DoomMake properties file. Lines that do not look
// like key = value are skipped; keys fold to lower case; the last
// occurrence of a key wins.
func readKeyValues(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	pairs := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		match := keyValuePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		key := strings.ToLower(match[1])
		pairs[key] = strings.TrimSpace(match[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}
