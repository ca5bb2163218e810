package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doombats/internal/logging"
)

func writeMarkers(t *testing.T, dir string, markers ...string) {
	t.Helper()
	for _, marker := range markers {
		if err := os.WriteFile(filepath.Join(dir, marker), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDetectProjectMode(t *testing.T) {
	dir := t.TempDir()
	writeMarkers(t, dir, MarkerFiles...)
	if mode := Detect(dir, logging.Nop()); mode != ModeProject {
		t.Fatalf("expected project mode, got %v", mode)
	}
}

func TestDetectPartialMarkersIsFolderMode(t *testing.T) {
	dir := t.TempDir()
	writeMarkers(t, dir, MarkerFiles[0])
	if mode := Detect(dir, logging.Nop()); mode != ModeFolder {
		t.Fatalf("expected folder mode for partial markers, got %v", mode)
	}
}

func TestDetectEmptyDirIsFolderMode(t *testing.T) {
	if mode := Detect(t.TempDir(), logging.Nop()); mode != ModeFolder {
		t.Fatal("expected folder mode for empty dir")
	}
}

func TestNameReadsProperties(t *testing.T) {
	dir := t.TempDir()
	content := "doommake.project.name = Abyssal Station\ndoommake.project.encoding = UTF-8\n"
	if err := os.WriteFile(filepath.Join(dir, propertiesFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Name(dir); got != "Abyssal Station" {
		t.Fatalf("unexpected project name: %q", got)
	}
}

func TestNameFallsBackToDirName(t *testing.T) {
	dir := t.TempDir()
	if got := Name(dir); got != filepath.Base(dir) {
		t.Fatalf("unexpected fallback name: %q", got)
	}
}

func TestEnsureConfigIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeMarkers(t, dir, MarkerFiles...)

	if err := EnsureConfig(dir, "/data/wads/doom2.wad"); err != nil {
		t.Fatalf("first ensure failed: %v", err)
	}
	first, err := os.ReadFile(ConfigPath(dir))
	if err != nil {
		t.Fatal(err)
	}

	if err := EnsureConfig(dir, "/data/wads/doom.wad"); err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	second, err := os.ReadFile(ConfigPath(dir))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatalf("ensure rewrote an existing config:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestEnsureConfigDerivesEpisodicWarp(t *testing.T) {
	cases := []struct {
		iwad string
		want string
	}{
		{"/data/wads/doom.wad", "1 1"},
		{"/data/wads/DOOM1.WAD", "1 1"},
		{"/data/wads/heretic.wad", "1 1"},
		{"/data/wads/doom2.wad", "1"},
		{"/data/wads/tnt.wad", "1"},
	}
	for _, tc := range cases {
		if got := WarpDefaultFor(tc.iwad); got != tc.want {
			t.Fatalf("%s: warp default %q, want %q", tc.iwad, got, tc.want)
		}
	}

	dir := t.TempDir()
	if err := EnsureConfig(dir, "/data/wads/doom.wad"); err != nil {
		t.Fatal(err)
	}
	cfg, err := ReadConfig(ConfigPath(dir))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Warp != "1 1" {
		t.Fatalf("unexpected derived warp: %q", cfg.Warp)
	}
	if cfg.Skill != "4" {
		t.Fatalf("unexpected derived skill: %q", cfg.Skill)
	}
}

func TestReadConfigToleratesHandEdits(t *testing.T) {
	dir := t.TempDir()
	content := strings.Join([]string{
		"",
		"# launch defaults first, key order should not matter",
		"SKILL = 3",
		"warp=2",
		"",
		"[project files]",
		"iwad = /data/wads/doom2.wad",
		"pwad = ./dist/Foo.wad",
		"unknown_key = whatever",
		"not a key value line",
	}, "\n")
	path := filepath.Join(dir, LaunchConfigName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if cfg.PWAD != "./dist/Foo.wad" || cfg.IWAD != "/data/wads/doom2.wad" {
		t.Fatalf("unexpected paths: %#v", cfg)
	}
	if cfg.Warp != "2" || cfg.Skill != "3" {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestReadConfigReportsAllMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LaunchConfigName)
	if err := os.WriteFile(path, []byte("warp = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadConfig(path)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if len(cfgErr.Missing) != 2 || cfgErr.Missing[0] != "pwad" || cfgErr.Missing[1] != "iwad" {
		t.Fatalf("unexpected missing keys: %#v", cfgErr.Missing)
	}
}
