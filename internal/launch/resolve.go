package launch

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"doombats/internal/args"
	"doombats/internal/history"
	"doombats/internal/logging"
	"doombats/internal/project"
	"doombats/internal/registry"
)

// Folder mode has no config file to draw defaults from.
const (
	folderWarpDefault  = "1"
	folderSkillDefault = "4"
)

// SelectFunc prompts the user to pick one WAD from items. accepted is
// false when the user cancels.
type SelectFunc func(title string, items []string, preselect string) (choice string, accepted bool, err error)

type Options struct {
	Dir      string
	Registry *registry.Registry
	Parsed   args.Parsed
	Select   SelectFunc
	History  *history.Store
	Log      logging.Logger
}

// ResolvedLaunch is the fully resolved invocation. Nothing mutates it
// after Resolve returns.
type ResolvedLaunch struct {
	EnginePath  string
	DataPath    string
	Files       []string
	FlagArgs    []string
	Passthrough []string
}

// Command assembles the final argument vector in its fixed slot order:
// engine, IWAD, attached files, warp/skill, passthrough.
func (l *ResolvedLaunch) Command() []string {
	command := []string{l.EnginePath}
	if l.DataPath != "" {
		command = append(command, "-iwad", l.DataPath)
	}
	if len(l.Files) > 0 {
		command = append(command, "-file")
		command = append(command, l.Files...)
	}
	command = append(command, l.FlagArgs...)
	command = append(command, l.Passthrough...)
	return command
}

// Resolve turns the classified arguments plus directory state into a
// validated launch. It returns ErrCancelled when the user backs out of
// the picker, or a joined list of every path and config problem found.
func Resolve(opts Options) (*ResolvedLaunch, error) {
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}

	enginePath := opts.Registry.DefaultEnginePath()
	if opts.Parsed.Engine != "" {
		enginePath, _ = opts.Registry.LookupEngine(opts.Parsed.Engine)
	}

	dataPath := opts.Registry.DefaultIWADPath()
	if opts.Parsed.IWAD != "" {
		dataPath, _ = opts.Registry.LookupIWAD(opts.Parsed.IWAD)
	}

	var problems []error
	if err := validateEngine(enginePath); err != nil {
		problems = append(problems, err)
	}

	var files []string
	for _, keyword := range opts.Parsed.Bundles {
		members, _ := opts.Registry.LookupBundle(keyword)
		for _, member := range members {
			if err := validatePath("bundle "+keyword, member); err != nil {
				problems = append(problems, err)
				continue
			}
			files = append(files, member)
		}
	}

	var defaults FlagDefaults
	mode := project.Detect(opts.Dir, log)
	if mode == project.ModeProject {
		if err := project.EnsureConfig(opts.Dir, dataPath); err != nil {
			problems = append(problems, err)
		}
		cfg, err := project.ReadConfig(project.ConfigPath(opts.Dir))
		if err != nil {
			problems = append(problems, err)
		} else {
			if opts.Parsed.IWAD == "" && cfg.IWAD != "" {
				dataPath = cfg.IWAD
			}
			defaults = FlagDefaults{Warp: cfg.Warp, Skill: cfg.Skill}
			if err := validatePath("pwad", cfg.PWAD); err != nil {
				problems = append(problems, err)
			} else {
				files = append(files, cfg.PWAD)
			}
			if cfg.TexWAD != "" {
				if fileExists(cfg.TexWAD) {
					files = append(files, cfg.TexWAD)
				} else {
					log.Warn("texture wad declared but not built yet, leaving it out",
						logging.F("path", cfg.TexWAD))
				}
			}
		}
	} else {
		defaults = FlagDefaults{Warp: folderWarpDefault, Skill: folderSkillDefault}
		chosen, err := pickFolderWAD(opts, log)
		if err != nil {
			return nil, err
		}
		if chosen != "" {
			files = append(files, chosen)
		}
	}

	if err := validatePath("iwad", dataPath); err != nil {
		problems = append(problems, err)
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}

	return &ResolvedLaunch{
		EnginePath:  enginePath,
		DataPath:    dataPath,
		Files:       files,
		FlagArgs:    MergeFlags(opts.Parsed, defaults),
		Passthrough: opts.Parsed.Passthrough,
	}, nil
}

func pickFolderWAD(opts Options, log logging.Logger) (string, error) {
	wads, err := ScanWADs(opts.Dir)
	if err != nil {
		return "", err
	}
	switch len(wads) {
	case 0:
		return "", nil
	case 1:
		return wads[0], nil
	}
	choice, accepted, err := opts.Select("Pick a WAD", wads, opts.History.LastPick(opts.Dir))
	if err != nil {
		return "", err
	}
	if !accepted {
		return "", ErrCancelled
	}
	if err := opts.History.RecordPick(opts.Dir, choice); err != nil {
		log.Warn("could not remember wad pick", logging.F("err", err.Error()))
	}
	return choice, nil
}

func validatePath(label, path string) error {
	if strings.TrimSpace(path) == "" {
		return &PathError{Label: label, Reason: ReasonBlank}
	}
	if !fileExists(path) {
		return &PathError{Label: label, Path: path, Reason: ReasonNotFound}
	}
	return nil
}

// validateEngine accepts either a concrete path or a bare command name
// resolved against $PATH, the way source ports are usually installed.
func validateEngine(path string) error {
	if strings.TrimSpace(path) == "" {
		return &PathError{Label: "engine", Reason: ReasonBlank}
	}
	if strings.ContainsRune(path, os.PathSeparator) || strings.ContainsRune(path, '/') {
		if !fileExists(path) {
			return &PathError{Label: "engine", Path: path, Reason: ReasonNotFound}
		}
		return nil
	}
	if _, err := exec.LookPath(path); err != nil {
		return &PathError{Label: "engine", Path: path, Reason: ReasonNotFound}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
