package launch

import (
	"strings"

	"doombats/internal/args"
)

// FlagDefaults are the warp/skill values injected when the user gave
// none. Multi-component values ("1 1") stay whitespace-separated here
// and split at merge time.
type FlagDefaults struct {
	Warp  string
	Skill string
}

// MergeFlags layers defaults under explicit values. Explicit beats
// default; the menu token beats both and removes the two flags entirely,
// explicit occurrences included.
func MergeFlags(parsed args.Parsed, defaults FlagDefaults) []string {
	if parsed.Menu {
		return nil
	}
	var flags []string
	flags = appendFlag(flags, args.FlagWarp, parsed.Warp, defaults.Warp)
	flags = appendFlag(flags, args.FlagSkill, parsed.Skill, defaults.Skill)
	return flags
}

func appendFlag(flags []string, name string, explicit args.FlagValue, fallback string) []string {
	switch {
	case explicit.Specified:
		flags = append(flags, name)
		flags = append(flags, strings.Fields(explicit.Value)...)
	case fallback != "":
		flags = append(flags, name)
		flags = append(flags, strings.Fields(fallback)...)
	}
	return flags
}
