package launch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanWADs lists the WAD files in dir, sorted by name. The extension
// check is case-insensitive; DOS-era files are often .WAD.
func ScanWADs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var wads []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".wad") {
			wads = append(wads, entry.Name())
		}
	}
	sort.Strings(wads)
	return wads, nil
}
