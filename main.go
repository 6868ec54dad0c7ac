package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/lstime/lstime/internal/config"
	"github.com/lstime/lstime/internal/listing"
	"github.com/lstime/lstime/internal/logger"
	"github.com/lstime/lstime/internal/nav"
	"github.com/lstime/lstime/internal/state"
)

const usage = `lstime - list and browse files by time

Usage: lstime [options] [path]

Options:
  -m, --modified   sort by modification time (default)
  -c, --created    sort by creation time
  -a, --accessed   sort by access time
  -r, --reverse    oldest first
  -H, --hidden     show hidden files
      --tui        force interactive browser
      --no-tui     force plain listing
  -h, --help       show this help

Without --tui/--no-tui the interactive browser starts when stdout is a
terminal; otherwise a plain listing is printed. On quit the browser
writes its final directory to a file for shell integration, see
lstime_lastdir in your temp directory.`

type cliArgs struct {
	path     string
	sortBy   listing.SortKey
	sortSet  bool
	reverse  bool
	hidden   bool
	tuiMode  int // 0 auto, 1 force on, -1 force off
	showHelp bool
}

func parseArgs(argv []string) (cliArgs, error) {
	var a cliArgs
	for _, arg := range argv {
		switch arg {
		case "-m", "--modified":
			a.sortBy, a.sortSet = listing.SortModified, true
		case "-c", "--created":
			a.sortBy, a.sortSet = listing.SortCreated, true
		case "-a", "--accessed":
			a.sortBy, a.sortSet = listing.SortAccessed, true
		case "-r", "--reverse":
			a.reverse = true
		case "-H", "--hidden":
			a.hidden = true
		case "--tui":
			a.tuiMode = 1
		case "--no-tui":
			a.tuiMode = -1
		case "-h", "--help":
			a.showHelp = true
		default:
			if len(arg) > 1 && arg[0] == '-' {
				return a, fmt.Errorf("unknown option: %s", arg)
			}
			if a.path != "" {
				return a, fmt.Errorf("unexpected argument: %s", arg)
			}
			a.path = arg
		}
	}
	return a, nil
}

func main() {
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "lstime: %v\n", err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if args.showHelp {
		fmt.Println(usage)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lstime: config: %v\n", err)
		os.Exit(1)
	}

	opts := cfg.ListingOptions()
	if args.sortSet {
		opts.SortBy = args.sortBy
	}
	if args.reverse {
		opts.Reverse = true
	}
	if args.hidden {
		opts.ShowHidden = true
	}

	startPath, err := resolveStartPath(args.path, cfg.StartPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lstime: %v\n", err)
		os.Exit(1)
	}

	interactive := isatty.IsTerminal(os.Stdout.Fd())
	switch args.tuiMode {
	case 1:
		interactive = true
	case -1:
		interactive = false
	}

	if !interactive {
		if err := printListing(startPath, opts); err != nil {
			fmt.Fprintf(os.Stderr, "lstime: %v\n", err)
			os.Exit(1)
		}
		return
	}

	os.Exit(runTUI(cfg, startPath, opts, args))
}

// resolveStartPath picks the starting directory: the positional
// argument, then the configured start path, then the working directory.
// The path must exist and be a directory.
func resolveStartPath(arg, configured string) (string, error) {
	path := arg
	if path == "" {
		path = configured
	}
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		path = wd
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot open %s: %v", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// printListing writes the non-interactive table: one entry per line,
// newest first unless reversed.
func printListing(dir string, opts listing.Options) error {
	entries, err := listing.List(dir, opts)
	if err != nil {
		return err
	}

	for _, e := range entries {
		when := e.TimeFor(opts.SortBy).Format("2006-01-02 15:04")
		size := listing.FileSize(e.Size)
		name := e.Name
		if e.IsDir() {
			size = "-"
			name += "/"
		}
		if e.Kind == listing.KindSymlink && e.LinkTarget != "" {
			name += " -> " + e.LinkTarget
		}
		fmt.Printf("%s  %10s  %s\n", when, size, name)
	}
	return nil
}

func runTUI(cfg *config.Config, startPath string, opts listing.Options, args cliArgs) int {
	if err := logger.Init(); err != nil {
		logger.Disable()
	}
	defer logger.Close()

	states, err := state.Open()
	if err != nil {
		logger.Warn("session store unavailable: %v", err)
		states = nil
	}
	if states != nil {
		defer states.Close()
	}

	leftDir := startPath
	rightDir := startPath

	// An explicit path argument wins over the remembered session.
	if states != nil {
		if saved, err := states.GetSession(); err == nil && saved != nil {
			if args.path == "" && isDir(saved.LeftPath) {
				leftDir = saved.LeftPath
			}
			if isDir(saved.RightPath) {
				rightDir = saved.RightPath
			}
			if !args.sortSet {
				opts.SortBy = listing.ParseSortKey(saved.SortBy)
			}
			if !args.reverse {
				opts.Reverse = saved.Reverse
			}
			if !args.hidden {
				opts.ShowHidden = saved.ShowHidden
			}
		}
	}

	session, err := nav.NewSession(leftDir, rightDir, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lstime: cannot open %s: %v\n", leftDir, err)
		return 1
	}

	m := newModel(cfg, session, states, false)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lstime: %v\n", err)
		return 1
	}

	fm, ok := final.(*model)
	if !ok {
		return 0
	}

	if states != nil {
		if err := states.SaveSession(fm.snapshot()); err != nil {
			logger.Warn("save session: %v", err)
		}
	}

	// The shell wrapper reads this file after exit to cd into the last
	// visited directory.
	if err := state.WriteLastDir(fm.session.ActiveDir()); err != nil {
		logger.Warn("write last dir: %v", err)
	}

	return 0
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
