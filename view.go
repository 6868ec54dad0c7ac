package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/lstime/lstime/internal/listing"
	"github.com/lstime/lstime/internal/nav"
	"github.com/lstime/lstime/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("240")).
			Padding(0, 1)

	panelBorder = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	activeBorder = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("99"))

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("105"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("57")).
			Foreground(lipgloss.Color("230"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	markStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	dirtyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2)
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	var mainContent string
	switch m.mode {
	case modeRename:
		mainContent = m.renderInputDialog("Rename", "New name:")
	case modeMkdir:
		mainContent = m.renderInputDialog("New Directory", "Name:")
	case modeConfirmDelete:
		mainContent = m.renderConfirmDelete()
	case modeHelp:
		mainContent = m.renderHelp()
	case modeError:
		mainContent = m.renderErrorDialog()
	default:
		mainContent = m.renderBrowse()
	}

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, statusBar)
}

func (m *model) renderBrowse() string {
	w := m.getSafeWidth()
	h := m.contentHeight()

	if m.fullscreen && m.showPreview && !m.dual {
		return m.renderPreview(w, h)
	}

	if m.dual {
		half := w / 2
		left := m.renderPanel(m.session.Panel(nav.Left), half, m.session.ActiveSide() == nav.Left, m.marks[nav.Left])
		right := m.renderPanel(m.session.Panel(nav.Right), w-half, m.session.ActiveSide() == nav.Right, m.marks[nav.Right])
		return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	if m.showPreview {
		listWidth := w * (100 - m.cfg.PreviewRatio) / 100
		if listWidth < 30 {
			listWidth = 30
		}
		list := m.renderPanel(m.session.Active(), listWidth, true, m.activeMarks())
		preview := m.renderPreview(w-listWidth, h)
		listStyled := lipgloss.NewStyle().Height(h + 2).Render(list)
		previewStyled := lipgloss.NewStyle().Height(h + 2).Render(preview)
		return lipgloss.JoinHorizontal(lipgloss.Top, listStyled, previewStyled)
	}

	return m.renderPanel(m.session.Active(), w, true, m.activeMarks())
}

func (m *model) renderHeader() string {
	p := m.session.Active()
	opts := p.Options()

	order := "newest first"
	if opts.Reverse {
		order = "oldest first"
	}
	if opts.SortBy == listing.SortName || opts.SortBy == listing.SortSize {
		order = ""
		if opts.Reverse {
			order = "reversed"
		}
	}
	sortLabel := strings.TrimSpace(fmt.Sprintf("sort: %s %s", opts.SortBy, order))

	title := fmt.Sprintf("⏱ lstime - %s", p.Dir())

	right := sortLabel
	if m.gitStatus.Branch != "" {
		branch := " " + m.gitStatus.Branch
		if m.gitStatus.Dirty {
			branch += dirtyStyle.Render("*")
		}
		right = branch + "  " + right
	}

	gap := m.getSafeWidth() - lipgloss.Width(title) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Width(m.getSafeWidth()).Render(title + strings.Repeat(" ", gap) + right)
}

// renderPanel draws one directory listing, height-bounded by
// contentHeight, with the panel's own scroll window.
func (m *model) renderPanel(p *nav.Panel, width int, active bool, marks map[string]bool) string {
	h := m.contentHeight()
	entries := p.Entries()
	opts := p.Options()

	title := filepath.Base(p.Dir())
	if p.Dir() == "/" {
		title = "/"
	}
	header := panelTitleStyle.Render(runewidth.Truncate("📁 "+title, width-4, "..."))

	start := p.Offset()
	end := start + h
	if end > len(entries) {
		end = len(entries)
	}

	var lines []string
	for i := start; i < end; i++ {
		lines = append(lines, m.renderEntry(entries[i], opts.SortBy, width-4, i == p.Cursor() && active, marks))
	}
	if len(entries) == 0 {
		lines = append(lines, dimStyle.Render("(empty)"))
	}
	if start > 0 {
		lines[0] = dimStyle.Render("▲ more")
	}
	if end < len(entries) {
		lines[len(lines)-1] = dimStyle.Render("▼ more")
	}

	border := panelBorder
	if active {
		border = activeBorder
	}
	body := header + "\n" + strings.Join(lines, "\n")
	return border.Width(width - 2).Height(h + 1).Render(body)
}

func (m *model) renderEntry(e listing.Entry, key listing.SortKey, width int, selected bool, marks map[string]bool) string {
	icon := utils.FileIcon(e.Name)
	if e.IsDir() {
		icon = "📁"
	}

	mark := "  "
	if marks[e.Path] {
		mark = markStyle.Render("✓ ")
	}

	link := ""
	if e.Kind == listing.KindSymlink {
		link = " → " + e.LinkTarget
	}

	timeStr := listing.RelativeTime(e.TimeFor(key))
	sizeStr := ""
	if !e.IsDir() {
		sizeStr = listing.FileSize(e.Size)
	}
	right := strings.TrimSpace(timeStr + "  " + sizeStr)

	nameWidth := width - lipgloss.Width(right) - 6
	if nameWidth < 8 {
		nameWidth = 8
	}
	name := runewidth.Truncate(e.Name+link, nameWidth, "...")

	pad := width - lipgloss.Width(mark) - lipgloss.Width(icon) - 1 - lipgloss.Width(name) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	line := fmt.Sprintf("%s%s %s%s%s", mark, icon, name, strings.Repeat(" ", pad), dimStyle.Render(right))

	if selected {
		return selectedStyle.Render(fmt.Sprintf("%s%s %s%s%s", mark, icon, name, strings.Repeat(" ", pad), right))
	}
	return normalStyle.Render(line)
}

func (m *model) renderPreview(width, height int) string {
	header := panelTitleStyle.Render("Preview")
	if m.fullscreen {
		header = panelTitleStyle.Render("Preview (f to exit fullscreen)")
	}

	visible := height - 1
	if visible < 1 {
		visible = 1
	}

	start := m.previewScroll
	if start > len(m.previewLines) {
		start = len(m.previewLines)
	}
	end := start + visible
	if end > len(m.previewLines) {
		end = len(m.previewLines)
	}

	var lines []string
	for _, line := range m.previewLines[start:end] {
		lines = append(lines, runewidth.Truncate(line, width-4, ""))
	}
	if len(m.previewLines) == 0 {
		lines = append(lines, dimStyle.Render("(no selection)"))
	}

	body := header + "\n" + strings.Join(lines, "\n")
	return panelBorder.Width(width - 2).Height(height + 1).Render(body)
}

func (m *model) renderInputDialog(title, label string) string {
	content := fmt.Sprintf("%s\n\n%s %s\n\n%s",
		panelTitleStyle.Render(title),
		label,
		m.textInput.View(),
		dimStyle.Render("enter: confirm · esc: cancel"))
	return m.centerDialog(content)
}

func (m *model) renderConfirmDelete() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Delete"))
	b.WriteString("\n\n")
	shown := m.pendingDelete
	if len(shown) > 8 {
		shown = shown[:8]
	}
	for _, path := range shown {
		fmt.Fprintf(&b, "  %s\n", filepath.Base(path))
	}
	if len(m.pendingDelete) > 8 {
		fmt.Fprintf(&b, "  ... and %d more\n", len(m.pendingDelete)-8)
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("y: delete (to trash when available) · n: cancel"))
	return m.centerDialog(b.String())
}

func (m *model) renderErrorDialog() string {
	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Render(m.errTitle),
		m.errDetails,
		dimStyle.Render("press any key"))
	return m.centerDialog(content)
}

func (m *model) renderHelp() string {
	rows := []string{
		panelTitleStyle.Render("Keys"),
		"",
		"  ↑/k ↓/j        move cursor",
		"  g/G            top / bottom",
		"  pgup/pgdn      page",
		"  enter/l        open directory",
		"  left/backspace parent directory",
		"  ~              home directory",
		"",
		"  s              cycle sort field",
		"  t / c / a      modified / created / accessed",
		"  r              reverse order",
		"  .              toggle hidden files",
		"  ctrl+r         refresh",
		"",
		"  m              toggle dual panels",
		"  tab            switch panel",
		"  i              open other panel here",
		"",
		"  space          mark entry",
		"  A              mark all / none",
		"  C / X          copy / move marked to other panel",
		"  R              rename",
		"  D              delete",
		"  p              new directory",
		"",
		"  n              quick-select by name",
		"  ctrl+f         fuzzy file finder (fzf)",
		"  /              search file contents (rg)",
		"  E              edit in $EDITOR",
		"  o              open with default app",
		"  y              copy path to clipboard",
		"",
		"  v              toggle preview",
		"  [ / ]          resize preview",
		"  f              fullscreen preview",
		"  J / K          scroll preview",
		"",
		"  ?              this help",
		"  q              quit",
	}

	visible := m.contentHeight()
	start := m.helpScroll
	if start > len(rows)-1 {
		start = len(rows) - 1
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}
	body := strings.Join(rows[start:end], "\n")
	return panelBorder.Width(m.getSafeWidth() - 2).Height(visible).Render(body)
}

func (m *model) renderStatusBar() string {
	if m.mode == modeFilter {
		return statusStyle.Width(m.getSafeWidth()).Render("jump: " + m.filterInput.View() + "  (enter: keep · esc: cancel)")
	}

	p := m.session.Active()
	left := fmt.Sprintf("%d items", len(p.Entries()))
	if n := len(m.activeMarks()); n > 0 {
		left += fmt.Sprintf(" · %d marked", n)
	}
	if m.dual {
		left += fmt.Sprintf(" · panel: %s", m.session.ActiveSide())
	}
	if sel := p.Selected(); sel != nil {
		left += " · " + runewidth.Truncate(sel.Name, 40, "...")
	}

	right := "? help"
	if m.statusMsg != "" {
		right = m.statusMsg
	}

	gap := m.getSafeWidth() - lipgloss.Width(left) - lipgloss.Width(right) - 3
	if gap < 1 {
		gap = 1
	}
	return statusStyle.Width(m.getSafeWidth()).Render(left + strings.Repeat(" ", gap) + right)
}

func (m *model) centerDialog(content string) string {
	dialog := dialogStyle.Render(content)
	return lipgloss.Place(m.getSafeWidth(), m.contentHeight()+2, lipgloss.Center, lipgloss.Center, dialog)
}
