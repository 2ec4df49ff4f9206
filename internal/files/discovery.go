package files

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode"
)

// PunchExtensions lists the punch table formats the tool reads
var PunchExtensions = []string{".csv", ".xlsx"}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// IsPunchFile reports whether name looks like a readable punch table.
// Office lock files (~$) and hidden files are skipped.
func IsPunchFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".") {
		return false
	}
	return slices.Contains(PunchExtensions, strings.ToLower(filepath.Ext(base)))
}

// FindPunchFiles finds the punch tables directly inside dir, sorted by name
func (d *Discovery) FindPunchFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsPunchFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	slices.SortFunc(files, func(a, b FileInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return files, nil
}

// Resolve expands command line inputs into punch files. Directories
// contribute their punch tables; files are taken as given. A file named
// twice is returned once, at its first position.
func (d *Discovery) Resolve(inputs []string) ([]FileInfo, error) {
	var files []FileInfo
	seen := make(map[string]bool)

	add := func(f FileInfo) {
		key, err := filepath.Abs(f.Path)
		if err != nil {
			key = f.Path
		}
		if !seen[key] {
			seen[key] = true
			files = append(files, f)
		}
	}

	for _, input := range inputs {
		path := d.resolve(input)
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		if !info.IsDir() {
			add(FileInfo{Path: path, Name: info.Name(), Size: info.Size(), ModTime: info.ModTime()})
			continue
		}

		found, err := d.FindPunchFiles(path)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}

// DatasetName derives a directory-safe dataset name from a file path:
// the base name without extension, with anything but letters, digits,
// '-' and '_' replaced by '_'
func DatasetName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, base)
	if strings.Trim(name, "_") == "" {
		return "dataset"
	}
	return name
}

// DatasetNames names every file, suffixing repeated names with -2, -3, ...
func DatasetNames(files []FileInfo) []string {
	names := make([]string, len(files))
	used := make(map[string]int)
	for i, f := range files {
		name := DatasetName(f.Path)
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}
		names[i] = name
	}
	return names
}

func (d *Discovery) resolve(path string) string {
	if filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, path)
}
