package main

import (
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lstime/lstime/internal/fileops"
	"github.com/lstime/lstime/internal/listing"
	"github.com/lstime/lstime/internal/logger"
	"github.com/lstime/lstime/internal/nav"
	"github.com/lstime/lstime/internal/search"
)

func (m *model) Init() tea.Cmd {
	return tea.SetWindowTitle("lstime")
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width == m.width && msg.Height == m.height {
			return m, nil
		}
		m.width = msg.Width
		m.height = msg.Height
		m.session.Active().ScrollTo(m.contentHeight())
		m.updatePreview()
		return m, nil

	case toolDoneMsg:
		return m.handleToolDone(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && m.mode == modeBrowse {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.session.Active().MoveUp()
			case tea.MouseButtonWheelDown:
				m.session.Active().MoveDown()
			default:
				return m, nil
			}
			m.session.Active().ScrollTo(m.contentHeight())
			m.updatePreview()
		}
		return m, nil

	case tea.KeyMsg:
		return m.routeKey(msg)
	}

	return m, nil
}

// routeKey resolves each keystroke against the handler layers in strict
// precedence order: modal dialog, then the active panel's navigation,
// then session-level commands. Each layer either consumes the key or
// passes it down.
func (m *model) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeBrowse {
		return m.dialogKey(msg)
	}
	if handled := m.panelKey(msg); handled {
		return m, nil
	}
	return m.sessionKey(msg)
}

// --- dialog layer ---

func (m *model) dialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeFilter:
		return m.filterKey(msg)
	case modeRename:
		return m.renameKey(msg)
	case modeMkdir:
		return m.mkdirKey(msg)
	case modeConfirmDelete:
		return m.confirmDeleteKey(msg)
	case modeHelp:
		return m.helpKey(msg)
	case modeError:
		m.mode = modeBrowse
		return m, nil
	}
	return m, nil
}

func (m *model) filterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterInput.Reset()
		m.mode = modeBrowse
		return m, nil
	case "enter":
		m.filterInput.Reset()
		m.mode = modeBrowse
		m.updatePreview()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)

	// Jump the cursor to the best fuzzy match as the query grows.
	entries := m.session.Active().Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	if idx := search.Best(m.filterInput.Value(), names); idx >= 0 {
		m.session.Active().SetCursor(idx)
		m.session.Active().ScrollTo(m.contentHeight())
	}
	return m, cmd
}

func (m *model) renameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "enter":
		name := m.textInput.Value()
		m.mode = modeBrowse
		sel := m.session.Active().Selected()
		if sel == nil || name == "" || name == sel.Name {
			return m, nil
		}
		if err := fileops.Rename(sel.Path, name); err != nil {
			m.notice(fileops.FormatError(err, sel.Path, "rename"))
			return m, nil
		}
		reloadErr := m.session.Active().Reload()
		m.session.Active().FocusName(name)
		m.updatePreview()
		if reloadErr != nil {
			m.notice(reloadErr)
		} else {
			m.setStatus("renamed to %s", name)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *model) mkdirKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "enter":
		name := m.textInput.Value()
		m.mode = modeBrowse
		if name == "" {
			return m, nil
		}
		dir := m.session.Active().Dir()
		if err := fileops.CreateDir(dir, name); err != nil {
			m.notice(fileops.FormatError(err, filepath.Join(dir, name), "create"))
			return m, nil
		}
		reloadErr := m.session.Active().Reload()
		m.session.Active().FocusName(name)
		m.updatePreview()
		if reloadErr != nil {
			m.notice(reloadErr)
		} else {
			m.setStatus("created %s/", name)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *model) confirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = modeBrowse
		deleted := 0
		var opErr error
		for _, path := range m.pendingDelete {
			info, err := os.Lstat(path)
			if err != nil {
				continue
			}
			if err := fileops.Delete(path, info.IsDir()); err != nil {
				opErr = fileops.FormatError(err, path, "delete")
				break
			}
			deleted++
		}
		m.pendingDelete = nil
		reloadErr := m.session.ReloadAll()
		m.afterDirChange()
		switch {
		case opErr != nil:
			m.notice(opErr)
		case reloadErr != nil:
			m.notice(reloadErr)
		case deleted > 0:
			m.setStatus("deleted %d item(s)", deleted)
		}
		return m, nil

	case "n", "esc", "q":
		m.pendingDelete = nil
		m.mode = modeBrowse
		return m, nil
	}
	return m, nil
}

func (m *model) helpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "?":
		m.mode = modeBrowse
		m.helpScroll = 0
	case "up", "k":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	case "down", "j":
		m.helpScroll++
	}
	return m, nil
}

// --- active panel layer ---

// panelKey handles pure navigation on the active panel. Returns false
// when the key is not a navigation command.
func (m *model) panelKey(msg tea.KeyMsg) bool {
	p := m.session.Active()

	switch msg.String() {
	case "up", "k":
		p.MoveUp()
	case "down", "j":
		p.MoveDown()
	case "home", "g":
		p.First()
	case "end", "G":
		p.Last()
	case "pgup":
		p.PageUp(m.contentHeight())
	case "pgdown":
		p.PageDown(m.contentHeight())
	case "enter", "right", "l":
		before := p.Dir()
		if err := p.Enter(); err != nil {
			m.notice(err)
			return true
		}
		if p.Dir() != before {
			m.afterDirChange()
		}
	case "left", "backspace":
		before := p.Dir()
		if err := p.Parent(); err != nil {
			m.notice(err)
			return true
		}
		if p.Dir() != before {
			m.afterDirChange()
		}
	default:
		return false
	}

	p.ScrollTo(m.contentHeight())
	m.updatePreview()
	return true
}

// --- session layer ---

func (m *model) sessionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.session.Active()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.dual {
			m.session.Switch()
			m.refreshGit()
		}

	case "m":
		m.dual = !m.dual
		if !m.dual {
			m.session.SetActive(nav.Left)
		}
		m.afterDirChange()

	case "i":
		if m.dual {
			m.notice(m.session.SyncPanels())
		}

	case "~":
		m.navigateActive(homeDir())

	case ".":
		opts := p.Options()
		err := m.session.SetShowHidden(!opts.ShowHidden)
		m.afterDirChange()
		if err != nil {
			m.notice(err)
		} else {
			m.setStatus("hidden files: %s", onOff(!opts.ShowHidden))
		}

	case "s":
		opts := p.Options()
		next := nextSortKey(opts.SortBy)
		m.applySort(next, opts.Reverse)

	case "r":
		opts := p.Options()
		m.applySort(opts.SortBy, !opts.Reverse)

	case "t":
		m.applySort(listing.SortModified, p.Options().Reverse)
	case "c":
		m.applySort(listing.SortCreated, p.Options().Reverse)
	case "a":
		m.applySort(listing.SortAccessed, p.Options().Reverse)

	case " ":
		if sel := p.Selected(); sel != nil {
			marks := m.activeMarks()
			if marks[sel.Path] {
				delete(marks, sel.Path)
			} else {
				marks[sel.Path] = true
			}
			p.MoveDown()
			p.ScrollTo(m.contentHeight())
		}

	case "A":
		marks := m.activeMarks()
		if len(marks) > 0 {
			m.marks[m.session.ActiveSide()] = map[string]bool{}
		} else {
			for _, e := range p.Entries() {
				marks[e.Path] = true
			}
		}

	case "n":
		m.mode = modeFilter
		m.filterInput.Reset()
		m.filterInput.Focus()

	case "y":
		m.copySelectedPath()

	case "o":
		return m, m.openSelected()

	case "E":
		return m.editSelected()

	case "ctrl+f":
		return m.runFuzzyFinder()

	case "/":
		return m.runGrepFinder()

	case "C":
		m.copyToOtherPanel()

	case "X":
		m.moveToOtherPanel()

	case "R":
		if sel := p.Selected(); sel != nil {
			m.textInput.SetValue(sel.Name)
			m.textInput.Focus()
			m.textInput.CursorEnd()
			m.mode = modeRename
		}

	case "D":
		targets := m.operationTargets()
		if len(targets) > 0 {
			m.pendingDelete = targets
			m.mode = modeConfirmDelete
		}

	case "p":
		m.textInput.Reset()
		m.textInput.Focus()
		m.mode = modeMkdir

	case "ctrl+r":
		err := m.session.ReloadAll()
		m.afterDirChange()
		if err != nil {
			m.notice(err)
		} else {
			m.setStatus("refreshed")
		}

	case "[":
		if m.cfg.PreviewRatio > 20 {
			m.cfg.PreviewRatio -= 10
		}
	case "]":
		if m.cfg.PreviewRatio < 80 {
			m.cfg.PreviewRatio += 10
		}

	case "f":
		m.fullscreen = !m.fullscreen
		m.updatePreview()

	case "v":
		m.showPreview = !m.showPreview
		m.updatePreview()

	case "J":
		if m.previewScroll < len(m.previewLines)-1 {
			m.previewScroll++
		}
	case "K":
		if m.previewScroll > 0 {
			m.previewScroll--
		}

	case "?":
		m.mode = modeHelp
	}

	return m, nil
}

// navigateActive moves the active panel, surfacing failures as notices
// and leaving state alone per the failure policy.
func (m *model) navigateActive(dir string) {
	if dir == "" {
		return
	}
	if err := m.session.Active().Navigate(dir); err != nil {
		logger.Warn("navigate %s: %v", dir, err)
		m.notice(err)
		return
	}
	m.session.Active().ScrollTo(m.contentHeight())
	m.afterDirChange()
}

func (m *model) applySort(key listing.SortKey, reverse bool) {
	if err := m.session.Active().SetSort(key, reverse); err != nil {
		m.notice(err)
		return
	}
	m.session.Active().ScrollTo(m.contentHeight())
	m.updatePreview()
	dir := "newest first"
	if reverse {
		dir = "oldest first"
	}
	if key == listing.SortName || key == listing.SortSize {
		dir = ""
	}
	m.setStatus("sort: %s %s", key, dir)
}

func (m *model) copyToOtherPanel() {
	if !m.dual {
		m.setStatus("open the second panel first (m)")
		return
	}
	targets := m.operationTargets()
	if len(targets) == 0 {
		return
	}
	dest := m.session.Inactive().Dir()
	if err := fileops.CopyInto(targets, dest); err != nil {
		m.notice(err)
		return
	}
	err := m.session.ReloadAll()
	m.afterDirChange()
	if err != nil {
		m.notice(err)
	} else {
		m.setStatus("copied %d item(s)", len(targets))
	}
}

func (m *model) moveToOtherPanel() {
	if !m.dual {
		m.setStatus("open the second panel first (m)")
		return
	}
	targets := m.operationTargets()
	if len(targets) == 0 {
		return
	}
	dest := m.session.Inactive().Dir()
	if err := fileops.MoveInto(targets, dest); err != nil {
		m.notice(err)
		return
	}
	err := m.session.ReloadAll()
	m.afterDirChange()
	if err != nil {
		m.notice(err)
	} else {
		m.setStatus("moved %d item(s)", len(targets))
	}
}

func (m *model) handleToolDone(msg toolDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logger.Warn("external tool %s: %v", msg.tool, msg.err)
		m.setStatus("%s failed: %v", msg.tool, msg.err)
	}

	// The tool may have touched the filesystem while we were suspended.
	m.notice(m.session.ReloadAll())

	if msg.picked != "" {
		dir := filepath.Dir(msg.picked)
		if err := m.session.Active().Navigate(dir); err != nil {
			m.notice(err)
		} else {
			m.session.Active().FocusName(filepath.Base(msg.picked))
			m.session.Active().ScrollTo(m.contentHeight())
		}
	}

	m.afterDirChange()
	return m, nil
}

func nextSortKey(k listing.SortKey) listing.SortKey {
	switch k {
	case listing.SortModified:
		return listing.SortCreated
	case listing.SortCreated:
		return listing.SortAccessed
	case listing.SortAccessed:
		return listing.SortSize
	case listing.SortSize:
		return listing.SortName
	default:
		return listing.SortModified
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
