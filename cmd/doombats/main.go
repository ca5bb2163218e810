package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"doombats/internal/args"
	"doombats/internal/config"
	"doombats/internal/history"
	"doombats/internal/launch"
	"doombats/internal/logging"
	"doombats/internal/registry"
	"doombats/internal/selector"
)

const usageText = `doombats resolves keywords, project state and folder contents
into one source-port invocation.

Usage:
  doombats [keyword...] [-warp value] [-skill value] [engine args...]

Keywords (order does not matter):
  engine    gzdoom, dsda, crispy, woof, eternity (configurable)
  iwad      doom, doom2, tnt, plutonia, heretic, ...
  bundle    any bundle name from ~/.doombats/config.toml
  menu      start at the engine menu: no -warp, no -skill at all

Flags:
  -warp value    map number, or "episode map" for episodic IWADs
  -skill value   skill level
  -history       print recent launches and exit
  -h, --help     show help

Anything unrecognized is passed to the engine untouched.

Inside a DoomMake project the launcher loads ./dist output and defaults
from launch.cfg (created on first run). Anywhere else it scans the
directory for WADs and asks when there is more than one.

Examples:
  doombats
  doombats doom2 crispy -skill 4
  doombats menu gzdoom
  doombats doom -warp "1 3" -nomonsters
`

const (
	exitOK      = 0
	exitResolve = 2
	exitSpawn   = 3
)

func printUsage(out io.Writer) {
	fmt.Fprint(out, usageText)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	if len(argv) > 0 {
		switch argv[0] {
		case "-h", "--help", "help":
			printUsage(stderr)
			return exitOK
		case "-history", "--history":
			return runHistory(stdout, stderr)
		}
	}

	environment, err := config.LoadEnvironment()
	if err != nil {
		fmt.Fprintf(stderr, "environment error: %v\n", err)
		return exitResolve
	}
	settingsPath := environment.SettingsPath
	if settingsPath == "" {
		settingsPath, err = config.SettingsPath()
		if err != nil {
			fmt.Fprintf(stderr, "config error: %v\n", err)
			return exitResolve
		}
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		fmt.Fprintf(stderr, "config error: %s: %v\n", settingsPath, err)
		return exitResolve
	}
	settings = environment.Apply(settings)

	log := logging.New(stderr, logging.ParseLevel(settings.LogLevel()))

	reg, err := registry.Build(settings)
	if err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return exitResolve
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitResolve
	}

	store := openHistory(log)
	defer store.Close()

	parsed := args.Classify(reg, argv)
	resolved, err := launch.Resolve(launch.Options{
		Dir:      cwd,
		Registry: reg,
		Parsed:   parsed,
		Select:   selector.Run,
		History:  store,
		Log:      log,
	})
	if errors.Is(err, launch.ErrCancelled) {
		fmt.Fprintln(stderr, "cancelled")
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "cannot launch:\n%v\n", err)
		return exitResolve
	}

	if err := store.RecordLaunch(history.Launch{Dir: cwd, Command: resolved.Command()}); err != nil {
		log.Warn("could not record launch", logging.F("err", err.Error()))
	}

	code, err := launch.Dispatch(resolved, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "launch error: %v\n", err)
		return exitSpawn
	}
	return code
}

func runHistory(stdout, stderr io.Writer) int {
	path, err := config.HistoryPath()
	if err != nil {
		fmt.Fprintf(stderr, "history error: %v\n", err)
		return exitResolve
	}
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(stderr, "history error: %v\n", err)
		return exitResolve
	}
	defer store.Close()

	launches, err := store.Recent(20)
	if err != nil {
		fmt.Fprintf(stderr, "history error: %v\n", err)
		return exitResolve
	}
	printLaunches(stdout, launches)
	return exitOK
}

func printLaunches(out io.Writer, launches []history.Launch) {
	writer := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "WHEN\tDIR\tCOMMAND")
	for _, entry := range launches {
		fmt.Fprintf(writer, "%s\t%s\t%s\n",
			entry.At.Local().Format("2006-01-02 15:04"),
			entry.Dir,
			strings.Join(entry.Command, " "))
	}
	_ = writer.Flush()
}

func openHistory(log logging.Logger) *history.Store {
	path, err := config.HistoryPath()
	if err == nil {
		store, openErr := history.Open(path)
		if openErr == nil {
			return store
		}
		err = openErr
	}
	log.Warn("launch history disabled", logging.F("err", err.Error()))
	return nil
}
