// Package nav tracks per-panel navigation state: the current directory,
// its listing snapshot and the selection cursor. All commands are
// synchronous; a failed directory read leaves the previous state intact
// so the caller can surface a notice and carry on.
package nav

import (
	"path/filepath"

	"github.com/lstime/lstime/internal/listing"
)

// Panel is the navigation state for one directory view.
type Panel struct {
	dir     string
	entries listing.Listing
	cursor  int
	offset  int
	opts    listing.Options
}

// NewPanel lists dir and returns a panel positioned at its top.
func NewPanel(dir string, opts listing.Options) (*Panel, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	entries, err := listing.List(abs, opts)
	if err != nil {
		return nil, err
	}
	return &Panel{dir: abs, entries: entries, opts: opts}, nil
}

// Dir returns the panel's current directory.
func (p *Panel) Dir() string { return p.dir }

// Entries returns the current listing snapshot.
func (p *Panel) Entries() listing.Listing { return p.entries }

// Options returns the listing options in effect.
func (p *Panel) Options() listing.Options { return p.opts }

// Cursor returns the selection index. Meaningless when the listing is
// empty; use Selected to get a nil-safe view.
func (p *Panel) Cursor() int { return p.cursor }

// Offset returns the scroll offset maintained by ScrollTo.
func (p *Panel) Offset() int { return p.offset }

// Selected returns the entry under the cursor, or nil when the listing
// is empty.
func (p *Panel) Selected() *listing.Entry {
	if len(p.entries) == 0 || p.cursor >= len(p.entries) {
		return nil
	}
	return &p.entries[p.cursor]
}

// Reload re-reads the current directory, keeping the selection on the
// same name when it survives and clamping otherwise. On error the panel
// is unchanged.
func (p *Panel) Reload() error {
	var keep string
	if sel := p.Selected(); sel != nil {
		keep = sel.Name
	}
	entries, err := listing.List(p.dir, p.opts)
	if err != nil {
		return err
	}
	p.entries = entries
	if idx := entries.IndexOf(keep); idx >= 0 {
		p.cursor = idx
	}
	p.clampCursor()
	return nil
}

// Enter navigates into the selected directory. Selecting a file, or
// having no selection, is a no-op.
func (p *Panel) Enter() error {
	sel := p.Selected()
	if sel == nil || !sel.IsDir() {
		return nil
	}
	return p.navigate(sel.Path, "")
}

// Parent navigates to the parent directory and re-selects the child we
// came from. At the filesystem root it is a no-op.
func (p *Panel) Parent() error {
	parent := filepath.Dir(p.dir)
	if parent == p.dir {
		return nil
	}
	return p.navigate(parent, filepath.Base(p.dir))
}

// Navigate jumps to an arbitrary directory.
func (p *Panel) Navigate(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	return p.navigate(abs, "")
}

// navigate is the single read-modify cycle: list first, mutate only on
// success.
func (p *Panel) navigate(dir, focus string) error {
	entries, err := listing.List(dir, p.opts)
	if err != nil {
		return err
	}
	p.dir = dir
	p.entries = entries
	p.cursor = 0
	p.offset = 0
	if focus != "" {
		if idx := entries.IndexOf(focus); idx >= 0 {
			p.cursor = idx
		}
	}
	return nil
}

// MoveUp moves the cursor one entry up.
func (p *Panel) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// MoveDown moves the cursor one entry down.
func (p *Panel) MoveDown() {
	if p.cursor < len(p.entries)-1 {
		p.cursor++
	}
}

// First jumps to the top of the listing.
func (p *Panel) First() { p.cursor = 0 }

// Last jumps to the bottom of the listing.
func (p *Panel) Last() {
	if len(p.entries) > 0 {
		p.cursor = len(p.entries) - 1
	}
}

// PageUp moves the cursor up by page entries.
func (p *Panel) PageUp(page int) {
	p.cursor -= page
	p.clampCursor()
}

// PageDown moves the cursor down by page entries.
func (p *Panel) PageDown(page int) {
	p.cursor += page
	p.clampCursor()
}

// SetCursor places the cursor on idx, clamped into bounds.
func (p *Panel) SetCursor(idx int) {
	p.cursor = idx
	p.clampCursor()
}

// FocusName places the cursor on the entry with the given name when
// present; otherwise the cursor stays put.
func (p *Panel) FocusName(name string) {
	if idx := p.entries.IndexOf(name); idx >= 0 {
		p.cursor = idx
	}
}

// SetShowHidden toggles hidden-entry visibility and re-lists. The cursor
// follows the selected name when it survives the change and clamps
// otherwise. On error the previous flag and listing stay in effect.
func (p *Panel) SetShowHidden(show bool) error {
	return p.relistWith(func(o *listing.Options) { o.ShowHidden = show })
}

// SetSort changes the sort key/direction and re-lists, keeping the
// selection on the same entry.
func (p *Panel) SetSort(key listing.SortKey, reverse bool) error {
	return p.relistWith(func(o *listing.Options) {
		o.SortBy = key
		o.Reverse = reverse
	})
}

func (p *Panel) relistWith(change func(*listing.Options)) error {
	opts := p.opts
	change(&opts)

	var keep string
	if sel := p.Selected(); sel != nil {
		keep = sel.Name
	}
	entries, err := listing.List(p.dir, opts)
	if err != nil {
		return err
	}
	p.opts = opts
	p.entries = entries
	if idx := entries.IndexOf(keep); idx >= 0 {
		p.cursor = idx
	}
	p.clampCursor()
	return nil
}

// ScrollTo adjusts the scroll offset so the cursor stays visible within
// a viewport of height rows.
func (p *Panel) ScrollTo(height int) {
	if height <= 0 {
		return
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+height {
		p.offset = p.cursor - height + 1
	}
	maxOffset := len(p.entries) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if p.offset > maxOffset {
		p.offset = maxOffset
	}
}

// clampCursor keeps both the cursor and the scroll offset inside the
// listing after it shrinks; offset never exceeds the cursor.
func (p *Panel) clampCursor() {
	if p.cursor >= len(p.entries) {
		p.cursor = len(p.entries) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.offset > p.cursor {
		p.offset = p.cursor
	}
}
