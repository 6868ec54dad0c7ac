package main

import (
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"github.com/lstime/lstime/internal/logger"
	"github.com/lstime/lstime/internal/tools"
)

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func (m *model) copySelectedPath() {
	sel := m.session.Active().Selected()
	if sel == nil {
		return
	}
	if err := clipboard.WriteAll(sel.Path); err != nil {
		logger.Warn("clipboard: %v", err)
		m.setStatus("clipboard unavailable: %v", err)
		return
	}
	m.setStatus("copied path: %s", sel.Path)
}

// openSelected hands the entry to the desktop's default handler in the
// background; the terminal is not suspended.
func (m *model) openSelected() tea.Cmd {
	sel := m.session.Active().Selected()
	if sel == nil {
		return nil
	}
	path := sel.Path
	return func() tea.Msg {
		if err := open.Run(path); err != nil {
			return toolDoneMsg{tool: "open", err: err}
		}
		return nil
	}
}

func (m *model) editSelected() (tea.Model, tea.Cmd) {
	sel := m.session.Active().Selected()
	if sel == nil || sel.IsDir() {
		return m, nil
	}
	cmd, err := tools.Editor(m.cfg.Editor, sel.Path)
	if err != nil {
		m.notice(err)
		return m, nil
	}
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		return toolDoneMsg{tool: "editor", err: tools.WrapExit("editor", err)}
	})
}

func (m *model) runFuzzyFinder() (tea.Model, tea.Cmd) {
	opts := m.session.Active().Options()
	picker, err := tools.FuzzyFinder(m.session.Active().Dir(), opts.ShowHidden)
	if err != nil {
		m.notice(err)
		return m, nil
	}
	return m, tea.ExecProcess(picker.Cmd, func(error) tea.Msg {
		// An empty result means the picker was aborted; not an error.
		return toolDoneMsg{tool: "fzf", picked: picker.ReadResult()}
	})
}

func (m *model) runGrepFinder() (tea.Model, tea.Cmd) {
	picker, err := tools.GrepFinder(m.session.Active().Dir())
	if err != nil {
		m.notice(err)
		return m, nil
	}
	return m, tea.ExecProcess(picker.Cmd, func(error) tea.Msg {
		return toolDoneMsg{tool: "grep", picked: tools.SplitGrepResult(picker.ReadResult())}
	})
}
