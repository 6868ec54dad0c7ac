package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/dustin/go-humanize"

	"github.com/lstime/lstime/internal/config"
	"github.com/lstime/lstime/internal/git"
	"github.com/lstime/lstime/internal/listing"
	"github.com/lstime/lstime/internal/nav"
	"github.com/lstime/lstime/internal/state"
	"github.com/lstime/lstime/internal/utils"
)

// toolDoneMsg reports a finished external tool (editor, fzf, rg).
type toolDoneMsg struct {
	tool   string
	err    error
	picked string // selection from a picker, empty otherwise
}

// Terminal dimension constants
const (
	minTerminalWidth  = 60
	minTerminalHeight = 16
	uiOverhead        = 6 // header (2) + borders (2) + status (2)
)

const (
	maxPreviewItems = 20
	maxPreviewBytes = 64 * 1024
	statusLifetime  = 3 * time.Second
)

type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeRename
	modeMkdir
	modeConfirmDelete
	modeHelp
	modeError
)

type model struct {
	mode    mode
	session *nav.Session
	cfg     *config.Config
	states  *state.Manager

	dual  bool
	marks [2]map[string]bool // panel side -> set of marked paths

	textInput   textinput.Model // rename / mkdir dialogs
	filterInput textinput.Model // quick-select

	width  int
	height int

	showPreview   bool
	fullscreen    bool
	previewLines  []string
	previewScroll int

	gitStatus git.Status

	statusMsg    string
	statusExpiry time.Time

	errTitle   string
	errDetails string

	pendingDelete []string
	helpScroll    int
}

func newModel(cfg *config.Config, session *nav.Session, states *state.Manager, dual bool) *model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	fi := textinput.New()
	fi.Placeholder = "jump to..."
	fi.CharLimit = 64
	fi.Width = 30

	m := &model{
		mode:        modeBrowse,
		session:     session,
		cfg:         cfg,
		states:      states,
		dual:        dual,
		marks:       [2]map[string]bool{{}, {}},
		textInput:   ti,
		filterInput: fi,
		showPreview: true,
	}
	m.refreshGit()
	m.updatePreview()
	return m
}

func (m *model) setStatus(format string, args ...any) {
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusExpiry = time.Now().Add(statusLifetime)
}

func (m *model) showError(title, details string) {
	m.errTitle = title
	m.errDetails = details
	m.mode = modeError
}

// notice surfaces a recoverable failure without advancing state.
func (m *model) notice(err error) {
	if err != nil {
		m.setStatus("%v", err)
	}
}

func (m *model) refreshGit() {
	m.gitStatus = git.StatusFor(m.session.Active().Dir())
}

// afterDirChange re-resolves everything that hangs off the active
// panel's directory.
func (m *model) afterDirChange() {
	m.marks[m.session.ActiveSide()] = map[string]bool{}
	m.refreshGit()
	m.updatePreview()
}

func (m *model) activeMarks() map[string]bool {
	return m.marks[m.session.ActiveSide()]
}

// operationTargets returns the marked paths, falling back to the entry
// under the cursor.
func (m *model) operationTargets() []string {
	marks := m.activeMarks()
	if len(marks) > 0 {
		out := make([]string, 0, len(marks))
		for _, e := range m.session.Active().Entries() {
			if marks[e.Path] {
				out = append(out, e.Path)
			}
		}
		return out
	}
	if sel := m.session.Active().Selected(); sel != nil {
		return []string{sel.Path}
	}
	return nil
}

func (m *model) getSafeWidth() int {
	if m.width < minTerminalWidth {
		return minTerminalWidth
	}
	return m.width
}

func (m *model) getSafeHeight() int {
	if m.height < minTerminalHeight {
		return minTerminalHeight
	}
	return m.height
}

// contentHeight is the row count available to panel listings.
func (m *model) contentHeight() int {
	h := m.getSafeHeight() - uiOverhead
	if h < 3 {
		h = 3
	}
	return h
}

func (m *model) updatePreview() {
	m.previewScroll = 0
	m.previewLines = nil
	if !m.showPreview || m.dual {
		return
	}

	sel := m.session.Active().Selected()
	if sel == nil {
		return
	}

	var content string
	if sel.IsDir() {
		content = m.previewDirectory(sel)
	} else {
		content = m.previewFile(sel)
	}
	m.previewLines = strings.Split(content, "\n")
}

func (m *model) previewDirectory(sel *listing.Entry) string {
	sub, err := listing.List(sel.Path, m.session.Active().Options())
	if err != nil {
		return fmt.Sprintf("Cannot read directory: %v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📁 %s\n", sel.Name)
	fmt.Fprintf(&b, "%d items · modified %s\n\n", len(sub), listing.RelativeTime(sel.ModTime))

	for i, e := range sub {
		if i >= maxPreviewItems {
			fmt.Fprintf(&b, "\n... and %d more", len(sub)-maxPreviewItems)
			break
		}
		icon := utils.FileIcon(e.Name)
		if e.IsDir() {
			icon = "📁"
		}
		fmt.Fprintf(&b, "%s %-30s %s\n", icon, e.Name, listing.RelativeTime(e.ModTime))
	}
	return b.String()
}

func (m *model) previewFile(sel *listing.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", utils.FileIcon(sel.Name), sel.Name)
	fmt.Fprintf(&b, "Size: %s\n", humanize.Bytes(uint64(sel.Size)))
	fmt.Fprintf(&b, "Modified: %s (%s)\n", sel.ModTime.Format("Jan 2, 2006 15:04"), listing.RelativeTime(sel.ModTime))
	fmt.Fprintf(&b, "Created:  %s\n", sel.CreateTime.Format("Jan 2, 2006 15:04"))
	fmt.Fprintf(&b, "Accessed: %s\n", sel.AccessTime.Format("Jan 2, 2006 15:04"))
	if sel.Kind == listing.KindSymlink && sel.LinkTarget != "" {
		fmt.Fprintf(&b, "Link: %s\n", sel.LinkTarget)
	}
	b.WriteString("\n")

	if sel.Size > maxPreviewBytes || utils.IsBinaryFile(sel.Path) {
		b.WriteString("(binary or large file - preview unavailable)")
		return b.String()
	}

	f, err := os.Open(sel.Path)
	if err != nil {
		fmt.Fprintf(&b, "Cannot read file: %v", err)
		return b.String()
	}
	defer f.Close()

	buf := make([]byte, maxPreviewBytes)
	n, _ := f.Read(buf)
	b.Write(buf[:n])
	if int64(n) < sel.Size {
		b.WriteString("\n... (truncated)")
	}
	return b.String()
}

// snapshot captures the persisted session state for teardown.
func (m *model) snapshot() state.Session {
	opts := m.session.Active().Options()
	return state.Session{
		LeftPath:    m.session.Panel(nav.Left).Dir(),
		RightPath:   m.session.Panel(nav.Right).Dir(),
		ActivePanel: m.session.ActiveSide().String(),
		SortBy:      opts.SortBy.String(),
		Reverse:     opts.Reverse,
		ShowHidden:  opts.ShowHidden,
	}
}
