// cli.go - Command-line interface parsing and execution (§6, §10.1).
//
// Key types: CLIConfig (all CLI options), RunConfig (runtime IO), ExitResult.
// Key functions: Run() executes the full comparison flow.
// Exit codes: 0 always from the core; nonzero only on I/O or parse failure
// (§6), conveyed back to the process by the cmd/everdiff entrypoint.
package diffyml

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// CLIConfig holds all command-line configuration options.
type CLIConfig struct {
	// File arguments. Each of -l/-r is repeatable: every file's documents
	// are concatenated in argument order before matching (§6).
	FromFiles []string
	ToFiles   []string

	// Identifier selection: Kubernetes takes precedence when both are set;
	// neither set means ByIndex (§6's "-k"/"-n", §4.4).
	Kubernetes bool
	Names      bool

	// Display options.
	SideBySide bool // -s
	Color      string
	Width      int // 0 means auto-detect

	// Ignore options.
	IgnoreMoved bool     // -m
	Ignore      []string // -i, repeatable PathMatch patterns

	// FilterRegexp/ExcludeRegexp are an additional ambient convenience
	// (filter.go) layered after the PathMatch ignore filter: a regular
	// expression matched against each difference's jq-like path.
	FilterRegexp  []string
	ExcludeRegexp []string

	// Chroot options (§10.3).
	Chroot             string
	ChrootFrom         string
	ChrootTo           string
	ChrootExplodeLists bool

	Swap bool

	// Watch mode (-w) is handled entirely by cmd/everdiff; this flag is
	// parsed here only so it is recognized and does not error out.
	Watch bool

	// Verbosity is the repeat count of -v.
	Verbosity int

	ShowHelp bool

	fs *flag.FlagSet
}

// NewCLIConfig creates a new CLI configuration with default values.
func NewCLIConfig() *CLIConfig {
	cfg := &CLIConfig{
		Color: "auto",
	}
	cfg.initFlags()
	return cfg
}

func (c *CLIConfig) initFlags() {
	c.fs = flag.NewFlagSet("everdiff", flag.ContinueOnError)
	c.fs.SetOutput(io.Discard)

	c.fs.Func("l", "left input file (repeatable)", func(s string) error {
		c.FromFiles = append(c.FromFiles, s)
		return nil
	})
	c.fs.Func("r", "right input file (repeatable)", func(s string) error {
		c.ToFiles = append(c.ToFiles, s)
		return nil
	})
	c.fs.BoolVar(&c.Kubernetes, "k", c.Kubernetes, "match documents by Kubernetes apiVersion/kind/namespace/name")
	c.fs.BoolVar(&c.Names, "n", c.Names, "match documents by top-level name/id field")
	c.fs.BoolVar(&c.SideBySide, "s", c.SideBySide, "render left/right side by side")
	c.fs.BoolVar(&c.IgnoreMoved, "m", c.IgnoreMoved, "ignore Moved differences")
	c.fs.Func("i", "ignore differences matching this PathMatch pattern (repeatable)", func(s string) error {
		c.Ignore = append(c.Ignore, s)
		return nil
	})
	c.fs.Func("filter-regexp", "only show differences whose path matches this regexp (repeatable)", func(s string) error {
		c.FilterRegexp = append(c.FilterRegexp, s)
		return nil
	})
	c.fs.Func("exclude-regexp", "hide differences whose path matches this regexp (repeatable)", func(s string) error {
		c.ExcludeRegexp = append(c.ExcludeRegexp, s)
		return nil
	})
	c.fs.BoolVar(&c.Watch, "w", c.Watch, "watch input files and re-run on change")
	c.fs.BoolFunc("v", "increase verbosity (repeatable)", func(s string) error {
		c.Verbosity++
		return nil
	})

	c.fs.StringVar(&c.Color, "color", c.Color, "specify color usage: always, never, or auto")
	c.fs.IntVar(&c.Width, "width", c.Width, "fixed terminal width override (0 means auto-detect)")
	c.fs.StringVar(&c.Chroot, "chroot", c.Chroot, "navigate both documents to this path before comparing")
	c.fs.StringVar(&c.ChrootFrom, "chroot-of-from", c.ChrootFrom, "navigate only the left document to this path")
	c.fs.StringVar(&c.ChrootTo, "chroot-of-to", c.ChrootTo, "navigate only the right document to this path")
	c.fs.BoolVar(&c.ChrootExplodeLists, "chroot-explode", c.ChrootExplodeLists, "if the chroot path resolves to a list, compare its items as separate documents")
	c.fs.BoolVar(&c.Swap, "swap", c.Swap, "swap 'from' and 'to' for comparison")

	c.fs.BoolVar(&c.ShowHelp, "h", c.ShowHelp, "")
	c.fs.BoolVar(&c.ShowHelp, "help", c.ShowHelp, "show help")
}

// ParseArgs parses command-line arguments. At least one -l and one -r are
// required (§6).
func (c *CLIConfig) ParseArgs(args []string) error {
	reordered := reorderArgs(args, c.fs)
	if err := c.fs.Parse(reordered); err != nil {
		return err
	}

	if c.ShowHelp {
		return nil
	}
	if len(c.FromFiles) == 0 {
		return fmt.Errorf("requires at least one -l <path>")
	}
	if len(c.ToFiles) == 0 {
		return fmt.Errorf("requires at least one -r <path>")
	}
	return nil
}

// isBoolFlag returns true if the flag is a boolean flag.
func isBoolFlag(f *flag.Flag) bool {
	bf, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && bf.IsBoolFlag()
}

// reorderArgs moves flag arguments before positional arguments so that
// Go's flag package (which stops at the first non-flag arg) can parse all
// flags regardless of where they appear. Kept from the prior CLI: tools
// like KUBECTL_EXTERNAL_DIFF invoke diff providers with flags interleaved
// among positional arguments.
func reorderArgs(args []string, fs *flag.FlagSet) []string {
	var flags, positional []string

	skip := false
	for i, arg := range args {
		if skip {
			skip = false
			continue
		}

		if arg == "--" {
			positional = append(positional, args[i:]...)
			break
		}

		if !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if eqIdx := strings.IndexByte(name, '='); eqIdx >= 0 {
			name = name[:eqIdx]
		}

		f := fs.Lookup(name)
		if f == nil {
			positional = append(positional, arg)
			continue
		}

		flags = append(flags, arg)

		if !strings.Contains(arg, "=") && !isBoolFlag(f) && i+1 < len(args) {
			flags = append(flags, args[i+1])
			skip = true
		}
	}

	return append(flags, positional...)
}

// Usage returns the usage help text.
func (c *CLIConfig) Usage() string {
	var sb strings.Builder
	sb.WriteString("everdiff - a structural diff tool for YAML documents\n\n")
	sb.WriteString("Usage:\n  everdiff -l <path> [-l <path> ...] -r <path> [-r <path> ...] [flags]\n\n")
	sb.WriteString("Flags:\n")
	sb.WriteString("  -l path                 left input file (repeatable)\n")
	sb.WriteString("  -r path                 right input file (repeatable)\n")
	sb.WriteString("  -k                      match documents by Kubernetes apiVersion/kind/namespace/name\n")
	sb.WriteString("  -n                      match documents by top-level name/id field\n")
	sb.WriteString("  -s                      render left/right side by side\n")
	sb.WriteString("  -m                      ignore Moved differences\n")
	sb.WriteString("  -i pattern              ignore differences matching this PathMatch pattern (repeatable)\n")
	sb.WriteString("  -w                      watch input files and re-run on change\n")
	sb.WriteString("  -v                      increase verbosity (repeatable)\n")
	sb.WriteString("      --color string      specify color usage: always, never, or auto (default \"auto\")\n")
	sb.WriteString("      --width int         fixed terminal width override\n")
	sb.WriteString("      --chroot string     navigate both documents to this path before comparing\n")
	sb.WriteString("      --chroot-of-from    navigate only the left document\n")
	sb.WriteString("      --chroot-of-to      navigate only the right document\n")
	sb.WriteString("      --chroot-explode    if the chroot path resolves to a list, compare its items as separate documents\n")
	sb.WriteString("      --swap              swap 'from' and 'to' for comparison\n")
	sb.WriteString("      --filter-regexp     only show differences whose path matches this regexp (repeatable)\n")
	sb.WriteString("      --exclude-regexp    hide differences whose path matches this regexp (repeatable)\n")
	sb.WriteString("  -h, --help              show this help\n")
	return sb.String()
}

// identifierFunc resolves the -k/-n flags into a DocKeyFunc (§4.4), -k
// taking precedence when both are set.
func (c *CLIConfig) identifierFunc() DocKeyFunc {
	switch {
	case c.Kubernetes:
		return GVK
	case c.Names:
		return Names
	default:
		return ByIndex
	}
}

// ignorePatterns parses every -i pattern, returning the first parse error
// encountered (a malformed pattern is a configuration error, not a
// per-document patch error).
func (c *CLIConfig) ignorePatterns() ([]PathMatch, error) {
	patterns := make([]PathMatch, 0, len(c.Ignore))
	for _, raw := range c.Ignore {
		pm, err := ParsePathMatch(raw)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pm)
	}
	return patterns, nil
}

// toPipelineOptions builds the PipelineOptions this config describes,
// loading prepatches from everdiff.config.yaml in the current directory
// (§6: absent file or parse error silently yields no prepatches).
func (c *CLIConfig) toPipelineOptions() (PipelineOptions, error) {
	patterns, err := c.ignorePatterns()
	if err != nil {
		return PipelineOptions{}, err
	}

	var prepatches []PrePatch
	if raw, err := os.ReadFile("everdiff.config.yaml"); err == nil {
		prepatches = LoadConfig(raw)
	}

	return PipelineOptions{
		Swap:               c.Swap,
		Chroot:             c.Chroot,
		ChrootFrom:         c.ChrootFrom,
		ChrootTo:           c.ChrootTo,
		ChrootExplodeLists: c.ChrootExplodeLists,
		Identifier:         c.identifierFunc(),
		Prepatches:         prepatches,
		Ignore:             IgnoreConfig{Patterns: patterns, IgnoreMoved: c.IgnoreMoved},
	}, nil
}

// ExitResult encapsulates the result of program execution.
type ExitResult struct {
	Code int
	Err  error
}

func NewExitResult(code int, err error) *ExitResult { return &ExitResult{Code: code, Err: err} }

// Exit code constants (§6: 0 always from the core logic itself; nonzero
// only on I/O or parse failure).
const (
	ExitCodeSuccess = 0
	ExitCodeError   = 255
)

// RunConfig holds runtime configuration for Run.
type RunConfig struct {
	Stdout io.Writer
	Stderr io.Writer
}

func NewRunConfig() *RunConfig {
	return &RunConfig{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes the full load -> pipeline -> render flow for one CLIConfig.
func Run(cfg *CLIConfig, rc *RunConfig) *ExitResult {
	if rc == nil {
		rc = NewRunConfig()
	}
	if cfg.ShowHelp {
		fmt.Fprint(rc.Stdout, cfg.Usage())
		return NewExitResult(ExitCodeSuccess, nil)
	}

	if len(cfg.FromFiles) == 1 && len(cfg.ToFiles) == 1 {
		fromIsDir := IsDirectory(cfg.FromFiles[0])
		toIsDir := IsDirectory(cfg.ToFiles[0])
		if fromIsDir && toIsDir {
			return runDirectory(cfg, rc, cfg.FromFiles[0], cfg.ToFiles[0])
		}
		if fromIsDir != toIsDir {
			err := fmt.Errorf("both arguments must be the same type (both files or both directories)")
			fmt.Fprintf(rc.Stderr, "Error: %v\n", err)
			return NewExitResult(ExitCodeError, err)
		}
	}

	leftSources, err := loadAllSources(cfg.FromFiles)
	if err != nil {
		fmt.Fprintf(rc.Stderr, "Error: %v\n", err)
		return NewExitResult(ExitCodeError, err)
	}
	rightSources, err := loadAllSources(cfg.ToFiles)
	if err != nil {
		fmt.Fprintf(rc.Stderr, "Error: %v\n", err)
		return NewExitResult(ExitCodeError, err)
	}

	opts, err := cfg.toPipelineOptions()
	if err != nil {
		fmt.Fprintf(rc.Stderr, "Error: %v\n", err)
		return NewExitResult(ExitCodeError, err)
	}

	leftDocs := sourceDocuments(leftSources)
	rightDocs := sourceDocuments(rightSources)

	results, pipelineErrs := ComparePipeline(leftDocs, rightDocs, opts)
	for _, e := range pipelineErrs {
		fmt.Fprintf(rc.Stderr, "Warning: %v\n", e)
	}

	results, err = cfg.applyRegexFilter(results)
	if err != nil {
		fmt.Fprintf(rc.Stderr, "Error: %v\n", err)
		return NewExitResult(ExitCodeError, err)
	}

	colorMode, err := ParseColorMode(cfg.Color)
	if err != nil {
		fmt.Fprintf(rc.Stderr, "Error: %v\n", err)
		return NewExitResult(ExitCodeError, err)
	}
	colorCfg := NewColorConfig(colorMode, cfg.Width)
	colorCfg.DetectTerminal()

	renderOpts := RenderOptions{Color: colorCfg, SideBySide: cfg.SideBySide}
	output := renderResults(results, leftSources, rightSources, renderOpts)
	fmt.Fprint(rc.Stdout, output)

	return NewExitResult(ExitCodeSuccess, nil)
}

// applyRegexFilter applies the -filter-regexp/-exclude-regexp convenience
// (filter.go) to every matched document pair's differences.
func (c *CLIConfig) applyRegexFilter(results []DocDifference) ([]DocDifference, error) {
	if len(c.FilterRegexp) == 0 && len(c.ExcludeRegexp) == 0 {
		return results, nil
	}
	rf, err := CompileRegexFilter(c.FilterRegexp, c.ExcludeRegexp)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].Kind == DocChanged {
			results[i].Diffs = rf.Apply(results[i].Diffs)
		}
	}
	return results, nil
}

// loadAllSources reads and parses every file, concatenating their
// document Sources in argument order (§6: -l/-r are each repeatable).
func loadAllSources(paths []string) ([]*Source, error) {
	var all []*Source
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, &IoError{Path: path, Err: err}
		}
		sources, err := LoadSources(string(raw), path)
		if err != nil {
			return nil, err
		}
		all = append(all, sources...)
	}
	return all, nil
}

func sourceDocuments(sources []*Source) []interface{} {
	docs := make([]interface{}, len(sources))
	for i, s := range sources {
		docs[i] = s.Document
	}
	return docs
}

// renderResults renders every DocDifference's per-document diffs,
// resolving each result's left/right Source by index for snippet lookup.
func renderResults(results []DocDifference, leftSources, rightSources []*Source, opts RenderOptions) string {
	var sb strings.Builder
	for _, r := range results {
		switch r.Kind {
		case DocMissing:
			sb.WriteString(opts.colorOrDefault().Paint(DiffRemoved, fmt.Sprintf("- document missing on the right (%s)\n", r.Key)))
		case DocAdded:
			sb.WriteString(opts.colorOrDefault().Paint(DiffAdded, fmt.Sprintf("+ document added on the right (%s)\n", r.Key)))
		case DocChanged:
			if len(r.Diffs) == 0 {
				continue
			}
			var leftSource, rightSource *Source
			if r.LeftIndex >= 0 && r.LeftIndex < len(leftSources) {
				leftSource = leftSources[r.LeftIndex]
			}
			if r.RightIndex >= 0 && r.RightIndex < len(rightSources) {
				rightSource = rightSources[r.RightIndex]
			}
			for _, d := range r.Diffs {
				sb.WriteString(RenderDifference(d, leftSource, rightSource, opts))
			}
		}
	}
	return sb.String()
}
