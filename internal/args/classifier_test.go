package args

import (
	"reflect"
	"testing"

	"doombats/internal/config"
	"doombats/internal/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	cfg := config.DefaultSettings()
	cfg.Bundles = map[string][]string{
		"vanilla-plus": {"smoothed.wad"},
		"music":        {"music.wad"},
	}
	reg, err := registry.Build(cfg)
	if err != nil {
		t.Fatalf("registry build failed: %v", err)
	}
	return reg
}

func TestClassifyEngineKeywordOnly(t *testing.T) {
	reg := testRegistry(t)
	for _, keyword := range reg.EngineKeywords() {
		parsed := Classify(reg, []string{keyword})
		if parsed.Engine != keyword {
			t.Fatalf("keyword %q: unexpected engine %q", keyword, parsed.Engine)
		}
		if len(parsed.Passthrough) != 0 {
			t.Fatalf("keyword %q: unexpected passthrough %#v", keyword, parsed.Passthrough)
		}
	}
}

func TestClassifyKeywordsAreCaseInsensitive(t *testing.T) {
	parsed := Classify(testRegistry(t), []string{"GZDoom", "DOOM2", "MENU"})
	if parsed.Engine != "gzdoom" || parsed.IWAD != "doom2" || !parsed.Menu {
		t.Fatalf("unexpected parse: %#v", parsed)
	}
}

func TestClassifyLastKeywordWins(t *testing.T) {
	parsed := Classify(testRegistry(t), []string{"doom", "crispy", "doom2", "gzdoom"})
	if parsed.IWAD != "doom2" {
		t.Fatalf("expected last iwad to win, got %q", parsed.IWAD)
	}
	if parsed.Engine != "gzdoom" {
		t.Fatalf("expected last engine to win, got %q", parsed.Engine)
	}
}

func TestClassifyBundlesAccumulateInOrder(t *testing.T) {
	parsed := Classify(testRegistry(t), []string{"music", "doom2", "vanilla-plus"})
	want := []string{"music", "vanilla-plus"}
	if !reflect.DeepEqual(parsed.Bundles, want) {
		t.Fatalf("unexpected bundles: %#v", parsed.Bundles)
	}
}

func TestClassifyPassthroughPreservesOrderAndDuplicates(t *testing.T) {
	argv := []string{"-fast", "doom2", "-nomusic", "-fast"}
	parsed := Classify(testRegistry(t), argv)
	want := []string{"-fast", "-nomusic", "-fast"}
	if !reflect.DeepEqual(parsed.Passthrough, want) {
		t.Fatalf("unexpected passthrough: %#v", parsed.Passthrough)
	}
}

func TestClassifyFlagConsumesFollowingKeyword(t *testing.T) {
	// "-skill menu" passes "menu" as the skill value; it must not flip
	// the menu toggle.
	parsed := Classify(testRegistry(t), []string{"-skill", "menu"})
	if parsed.Menu {
		t.Fatal("menu token after a value flag must be consumed as the value")
	}
	if !parsed.Skill.Specified || parsed.Skill.Value != "menu" {
		t.Fatalf("unexpected skill value: %#v", parsed.Skill)
	}

	parsed = Classify(testRegistry(t), []string{"-warp", "doom2"})
	if parsed.IWAD != "" {
		t.Fatal("iwad keyword after a value flag must be consumed as the value")
	}
	if parsed.Warp.Value != "doom2" {
		t.Fatalf("unexpected warp value: %#v", parsed.Warp)
	}
}

func TestClassifyTrailingFlagIsSpecifiedWithEmptyValue(t *testing.T) {
	parsed := Classify(testRegistry(t), []string{"doom2", "-warp"})
	if !parsed.Warp.Specified || parsed.Warp.Value != "" {
		t.Fatalf("unexpected warp: %#v", parsed.Warp)
	}
}

func TestClassifyMenuTokenIsNotForwarded(t *testing.T) {
	parsed := Classify(testRegistry(t), []string{"menu", "-nomonsters"})
	if !parsed.Menu {
		t.Fatal("expected menu toggle")
	}
	if len(parsed.Passthrough) != 1 || parsed.Passthrough[0] != "-nomonsters" {
		t.Fatalf("unexpected passthrough: %#v", parsed.Passthrough)
	}
}
