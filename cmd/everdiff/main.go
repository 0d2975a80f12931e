// Command everdiff is the thin CLI entrypoint: parse flags, run the core
// comparison pipeline once, and (with -w) watch the input files and
// re-run on change (§6, §10.1 — the watch loop is an external
// collaborator, kept entirely out of pkg/diffyml per §5).
package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/everdiff/everdiff/pkg/diffyml"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func formatVersion() string {
	return "everdiff version " + version + " (commit: " + commit + ", built: " + buildDate + ")\n"
}

func main() {
	cfg := diffyml.NewCLIConfig()

	for _, arg := range os.Args[1:] {
		if arg == "-V" || arg == "--version" {
			_, _ = os.Stdout.WriteString(formatVersion())
			os.Exit(0)
		}
	}

	if err := cfg.ParseArgs(os.Args[1:]); err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(diffyml.ExitCodeError)
	}

	if cfg.Watch && !cfg.ShowHelp {
		os.Exit(runWatch(cfg))
	}

	result := diffyml.Run(cfg, nil)
	os.Exit(result.Code)
}

// runWatch re-runs the comparison pipeline once, then on every write or
// create event to any -l/-r file, until the process is interrupted. Each
// re-invocation is a fresh diffyml.Run call; no state survives between
// invocations except open file descriptors, which fsnotify owns.
func runWatch(cfg *diffyml.CLIConfig) int {
	result := diffyml.Run(cfg, nil)
	if result.Code == diffyml.ExitCodeError {
		return result.Code
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot start watcher: %v\n", err)
		return diffyml.ExitCodeError
	}
	defer watcher.Close()

	for _, path := range append(append([]string{}, cfg.FromFiles...), cfg.ToFiles...) {
		if err := watcher.Add(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, err)
		}
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return diffyml.ExitCodeSuccess
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			diffyml.Run(cfg, nil)
		case err, ok := <-watcher.Errors:
			if !ok {
				return diffyml.ExitCodeSuccess
			}
			fmt.Fprintf(os.Stderr, "Warning: watcher error: %v\n", err)
		}
	}
}
