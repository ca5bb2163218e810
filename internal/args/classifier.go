package args

import (
	"strings"

	"doombats/internal/registry"
)

const (
	FlagWarp  = "-warp"
	FlagSkill = "-skill"

	// MenuToken asks for a plain menu start: no warp, no skill, even
	// when given explicitly elsewhere on the command line.
	MenuToken = "menu"
)

// FlagValue records an explicitly supplied value flag. Specified matters
// on its own: "-warp" at the end of the line still counts as specified
// with an empty value.
type FlagValue struct {
	Value     string
	Specified bool
}

// Parsed is the classifier output. Built once per invocation, read-only
// afterwards.
type Parsed struct {
	Engine      string
	IWAD        string
	Bundles     []string
	Menu        bool
	Warp        FlagValue
	Skill       FlagValue
	Passthrough []string
}

type category int

const (
	catValueFlag category = iota
	catIWAD
	catEngine
	catBundle
	catMenu
	catPassthrough
)

// Classify partitions the raw argument vector in a single left-to-right
// pass. A value flag always consumes the following token as its value,
// even if that token would otherwise match a keyword; engine and IWAD
// keywords override earlier ones; bundles accumulate.
func Classify(reg *registry.Registry, argv []string) Parsed {
	var parsed Parsed
	for i := 0; i < len(argv); i++ {
		token := argv[i]
		switch classifyToken(reg, token) {
		case catValueFlag:
			value := FlagValue{Specified: true}
			if i+1 < len(argv) {
				i++
				value.Value = argv[i]
			}
			if token == FlagWarp {
				parsed.Warp = value
			} else {
				parsed.Skill = value
			}
		case catIWAD:
			parsed.IWAD = registry.Normalize(token)
		case catEngine:
			parsed.Engine = registry.Normalize(token)
		case catBundle:
			parsed.Bundles = append(parsed.Bundles, registry.Normalize(token))
		case catMenu:
			parsed.Menu = true
		default:
			parsed.Passthrough = append(parsed.Passthrough, token)
		}
	}
	return parsed
}

func classifyToken(reg *registry.Registry, token string) category {
	switch token {
	case FlagWarp, FlagSkill:
		return catValueFlag
	}
	if _, ok := reg.LookupIWAD(token); ok {
		return catIWAD
	}
	if _, ok := reg.LookupEngine(token); ok {
		return catEngine
	}
	if _, ok := reg.LookupBundle(token); ok {
		return catBundle
	}
	if strings.EqualFold(token, MenuToken) {
		return catMenu
	}
	return catPassthrough
}
