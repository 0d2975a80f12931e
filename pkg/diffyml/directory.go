// directory.go - Directory-level comparison, an ambient CLI convenience
// (§10.3) preserved from the teacher's KUBECTL_EXTERNAL_DIFF-compatible
// directory mode. Each matched file pair still flows through the same
// loader -> prepatch -> matcher -> diff -> filter -> renderer pipeline
// (pipeline.go/cli.go) unmodified; only the outer per-file enumeration
// loop is new.
package diffyml

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// IsDirectory reports whether path is an existing directory. Returns
// false for files, non-existent paths, or stat errors.
func IsDirectory(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// DiscoverYAMLFiles returns the sorted base names of .yaml/.yml files in
// dir (non-recursive). Skips subdirectories, symlinks, and non-YAML
// files silently.
func DiscoverYAMLFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

// FilePairType describes the relationship between source and target files.
type FilePairType int

const (
	FilePairBothExist FilePairType = iota
	FilePairOnlyFrom
	FilePairOnlyTo
)

// FilePair represents a matched pair of files for comparison.
type FilePair struct {
	Name     string
	Type     FilePairType
	FromPath string
	ToPath   string
}

// BuildFilePairPlan creates an alphabetically sorted plan of file pairs
// from two directories, matching files by filename. Every YAML file from
// both directories appears exactly once.
func BuildFilePairPlan(fromDir, toDir string) ([]FilePair, error) {
	fromFiles, err := DiscoverYAMLFiles(fromDir)
	if err != nil {
		return nil, err
	}
	toFiles, err := DiscoverYAMLFiles(toDir)
	if err != nil {
		return nil, err
	}

	fromSet := make(map[string]bool, len(fromFiles))
	for _, f := range fromFiles {
		fromSet[f] = true
	}
	toSet := make(map[string]bool, len(toFiles))
	for _, f := range toFiles {
		toSet[f] = true
	}

	nameSet := make(map[string]bool, len(fromFiles)+len(toFiles))
	for _, f := range fromFiles {
		nameSet[f] = true
	}
	for _, f := range toFiles {
		nameSet[f] = true
	}

	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]FilePair, 0, len(names))
	for _, name := range names {
		inFrom := fromSet[name]
		inTo := toSet[name]

		pair := FilePair{Name: name}
		switch {
		case inFrom && inTo:
			pair.Type = FilePairBothExist
			pair.FromPath = filepath.Join(fromDir, name)
			pair.ToPath = filepath.Join(toDir, name)
		case inFrom:
			pair.Type = FilePairOnlyFrom
			pair.FromPath = filepath.Join(fromDir, name)
		default:
			pair.Type = FilePairOnlyTo
			pair.ToPath = filepath.Join(toDir, name)
		}
		pairs = append(pairs, pair)
	}

	return pairs, nil
}

// FormatFileHeader returns a unified-diff-style file header for directory
// mode: "--- a/<file>" / "+++ b/<file>", with "/dev/null" for the absent
// side on OnlyFrom/OnlyTo.
func FormatFileHeader(filename string, pairType FilePairType, cc *ColorConfig) string {
	var fromLine, toLine string

	switch pairType {
	case FilePairBothExist:
		fromLine = "--- a/" + filename
		toLine = "+++ b/" + filename
	case FilePairOnlyFrom:
		fromLine = "--- a/" + filename
		toLine = "+++ /dev/null"
	case FilePairOnlyTo:
		fromLine = "--- /dev/null"
		toLine = "+++ b/" + filename
	}

	if cc == nil {
		cc = NewColorConfig(ColorModeNever, 0)
	}
	return fmt.Sprintf("%s\n%s\n", cc.Emphasize(fromLine), cc.Emphasize(toLine))
}

// runDirectory executes directory-mode comparison: every YAML file shared
// by (or unique to) fromDir/toDir flows through the ordinary file-pair
// pipeline, with a file header printed ahead of each pair's differences.
func runDirectory(cfg *CLIConfig, rc *RunConfig, fromDir, toDir string) *ExitResult {
	if cfg.Swap {
		fromDir, toDir = toDir, fromDir
	}

	pairs, err := BuildFilePairPlan(fromDir, toDir)
	if err != nil {
		fmt.Fprintf(rc.Stderr, "Error: %v\n", err)
		return NewExitResult(ExitCodeError, err)
	}

	opts, err := cfg.toPipelineOptions()
	if err != nil {
		fmt.Fprintf(rc.Stderr, "Error: %v\n", err)
		return NewExitResult(ExitCodeError, err)
	}
	// Directory mode already swapped the directories above; avoid swapping
	// again inside the pipeline.
	opts.Swap = false

	colorMode, err := ParseColorMode(cfg.Color)
	if err != nil {
		fmt.Fprintf(rc.Stderr, "Error: %v\n", err)
		return NewExitResult(ExitCodeError, err)
	}
	colorCfg := NewColorConfig(colorMode, cfg.Width)
	colorCfg.DetectTerminal()
	renderOpts := RenderOptions{Color: colorCfg, SideBySide: cfg.SideBySide}

	hasErrors := false

	for _, pair := range pairs {
		var leftSources, rightSources []*Source

		if pair.FromPath != "" {
			leftSources, err = loadAllSources([]string{pair.FromPath})
			if err != nil {
				fmt.Fprintf(rc.Stderr, "Error reading %s: %v\n", pair.Name, err)
				hasErrors = true
				continue
			}
		}
		if pair.ToPath != "" {
			rightSources, err = loadAllSources([]string{pair.ToPath})
			if err != nil {
				fmt.Fprintf(rc.Stderr, "Error reading %s: %v\n", pair.Name, err)
				hasErrors = true
				continue
			}
		}

		results, pipelineErrs := ComparePipeline(sourceDocuments(leftSources), sourceDocuments(rightSources), opts)
		for _, e := range pipelineErrs {
			fmt.Fprintf(rc.Stderr, "Warning: %s: %v\n", pair.Name, e)
		}

		results, err = cfg.applyRegexFilter(results)
		if err != nil {
			fmt.Fprintf(rc.Stderr, "Error: %s: %v\n", pair.Name, err)
			hasErrors = true
			continue
		}

		output := renderResults(results, leftSources, rightSources, renderOpts)
		if output == "" {
			continue
		}

		fmt.Fprint(rc.Stdout, FormatFileHeader(pair.Name, pair.Type, colorCfg))
		fmt.Fprint(rc.Stdout, output)
	}

	if hasErrors {
		return NewExitResult(ExitCodeError, fmt.Errorf("one or more files failed to compare"))
	}
	return NewExitResult(ExitCodeSuccess, nil)
}
