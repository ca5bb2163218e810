package registry

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"doombats/internal/config"
)

// Registry is the immutable keyword table set: engine keywords, IWAD
// keywords and bundle keywords. It is built once at startup and passed
// into the classifier; nothing mutates it afterwards.
type Registry struct {
	engines map[string]string
	iwads   map[string]string
	bundles map[string][]string

	defaultEngine string
	defaultIWAD   string
}

// AmbiguousKeywordError reports a token registered as both an engine and
// an IWAD keyword. That is a settings defect, caught at build time.
type AmbiguousKeywordError struct {
	Keyword string
}

func (e *AmbiguousKeywordError) Error() string {
	return fmt.Sprintf("keyword %q is both an engine and an iwad", e.Keyword)
}

// EmptyBundleError reports a bundle keyword with no member files. An
// empty bundle would be indistinguishable from no bundle at all, so it
// fails at build time rather than at launch.
type EmptyBundleError struct {
	Keyword string
}

func (e *EmptyBundleError) Error() string {
	return fmt.Sprintf("bundle %q has no files", e.Keyword)
}

func Normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// Build validates the settings tables and produces the registry. IWAD
// and bundle entries given as bare filenames are anchored in the WAD
// directory; engine entries may stay bare for $PATH resolution.
func Build(settings config.Settings) (*Registry, error) {
	reg := &Registry{
		engines: make(map[string]string, len(settings.Engines)),
		iwads:   make(map[string]string, len(settings.IWADs)),
		bundles: make(map[string][]string, len(settings.Bundles)),
	}

	for keyword, path := range settings.Engines {
		key := Normalize(keyword)
		if key == "" {
			continue
		}
		reg.engines[key] = strings.TrimSpace(path)
	}
	for keyword, path := range settings.IWADs {
		key := Normalize(keyword)
		if key == "" {
			continue
		}
		if _, clash := reg.engines[key]; clash {
			return nil, &AmbiguousKeywordError{Keyword: key}
		}
		reg.iwads[key] = anchorPath(settings.WADDir, strings.TrimSpace(path))
	}
	for keyword, files := range settings.Bundles {
		key := Normalize(keyword)
		if key == "" {
			continue
		}
		anchored := make([]string, 0, len(files))
		for _, file := range files {
			file = strings.TrimSpace(file)
			if file == "" {
				continue
			}
			anchored = append(anchored, anchorPath(settings.WADDir, file))
		}
		if len(anchored) == 0 {
			return nil, &EmptyBundleError{Keyword: key}
		}
		reg.bundles[key] = anchored
	}

	reg.defaultEngine = Normalize(settings.DefaultEngine())
	if _, ok := reg.engines[reg.defaultEngine]; !ok {
		return nil, fmt.Errorf("default engine keyword %q is not registered", reg.defaultEngine)
	}
	reg.defaultIWAD = Normalize(settings.DefaultIWAD())
	if _, ok := reg.iwads[reg.defaultIWAD]; !ok {
		return nil, fmt.Errorf("default iwad keyword %q is not registered", reg.defaultIWAD)
	}

	return reg, nil
}

func (r *Registry) LookupEngine(keyword string) (string, bool) {
	path, ok := r.engines[Normalize(keyword)]
	return path, ok
}

func (r *Registry) LookupIWAD(keyword string) (string, bool) {
	path, ok := r.iwads[Normalize(keyword)]
	return path, ok
}

func (r *Registry) LookupBundle(keyword string) ([]string, bool) {
	files, ok := r.bundles[Normalize(keyword)]
	if !ok {
		return nil, false
	}
	return append([]string{}, files...), true
}

// DefaultEnginePath returns the path behind the configured default
// engine keyword.
func (r *Registry) DefaultEnginePath() string {
	return r.engines[r.defaultEngine]
}

// DefaultIWADPath returns the path behind the configured default IWAD
// keyword.
func (r *Registry) DefaultIWADPath() string {
	return r.iwads[r.defaultIWAD]
}

// EngineKeywords returns the registered engine keywords, sorted.
func (r *Registry) EngineKeywords() []string {
	return sortedKeys(r.engines)
}

// IWADKeywords returns the registered IWAD keywords, sorted.
func (r *Registry) IWADKeywords() []string {
	return sortedKeys(r.iwads)
}

// BundleKeywords returns the registered bundle keywords, sorted.
func (r *Registry) BundleKeywords() []string {
	keys := make([]string, 0, len(r.bundles))
	for key := range r.bundles {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func anchorPath(wadDir, path string) string {
	if path == "" || wadDir == "" {
		return path
	}
	if filepath.IsAbs(path) || strings.ContainsRune(path, filepath.Separator) || strings.ContainsRune(path, '/') {
		return path
	}
	return filepath.Join(wadDir, path)
}
