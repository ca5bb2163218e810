package project

import (
	"os"
	"path/filepath"
	"strings"

	"doombats/internal/logging"
)

// MarkerFiles is the fixed set of files whose joint presence in a
// directory makes it a DoomMake project. Partial presence does not
// count; the directory is treated like any other folder.
var MarkerFiles = []string{
	"doommake.script",
	"doommake.project.properties",
}

const propertiesFileName = "doommake.project.properties"

type Mode int

const (
	ModeFolder Mode = iota
	ModeProject
)

func (m Mode) String() string {
	if m == ModeProject {
		return "project"
	}
	return "folder"
}

// Detect inspects dir for the project markers. It only reads.
func Detect(dir string, log logging.Logger) Mode {
	present := 0
	for _, marker := range MarkerFiles {
		if fileExists(filepath.Join(dir, marker)) {
			present++
		}
	}
	switch present {
	case len(MarkerFiles):
		return ModeProject
	case 0:
		return ModeFolder
	default:
		log.Warn("incomplete project markers, falling back to folder mode",
			logging.F("dir", dir),
			logging.F("present", present),
			logging.F("expected", len(MarkerFiles)))
		return ModeFolder
	}
}

// Name returns the project name declared in the DoomMake properties
// file, falling back to the directory name when the key is absent.
func Name(dir string) string {
	pairs, err := readKeyValues(filepath.Join(dir, propertiesFileName))
	if err == nil {
		if name := strings.TrimSpace(pairs["doommake.project.name"]); name != "" {
			return name
		}
	}
	return filepath.Base(dir)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
