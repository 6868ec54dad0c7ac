package nav

import "github.com/lstime/lstime/internal/listing"

// Side identifies one of the two panels.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Session holds the two panels and tracks which one receives commands.
// There is exactly one reader/writer at a time (the UI event loop), so
// no locking is involved.
type Session struct {
	panels [2]*Panel
	active Side
}

// NewSession builds both panels. If the right directory cannot be
// listed it falls back to the left one, so a stale persisted path never
// blocks startup.
func NewSession(leftDir, rightDir string, opts listing.Options) (*Session, error) {
	left, err := NewPanel(leftDir, opts)
	if err != nil {
		return nil, err
	}
	right, err := NewPanel(rightDir, opts)
	if err != nil {
		right, err = NewPanel(leftDir, opts)
		if err != nil {
			return nil, err
		}
	}
	return &Session{panels: [2]*Panel{left, right}}, nil
}

// Active returns the panel currently receiving navigation commands.
func (s *Session) Active() *Panel { return s.panels[s.active] }

// Inactive returns the other panel.
func (s *Session) Inactive() *Panel { return s.panels[1-s.active] }

// Panel returns the panel on the given side.
func (s *Session) Panel(side Side) *Panel { return s.panels[side] }

// ActiveSide reports which side is active.
func (s *Session) ActiveSide() Side { return s.active }

// Switch toggles the active panel.
func (s *Session) Switch() { s.active = 1 - s.active }

// SetActive makes the given side active.
func (s *Session) SetActive(side Side) { s.active = side }

// ActiveDir returns the active panel's directory. The caller writes it
// to the lastdir file after the session ends; the session itself never
// touches global state.
func (s *Session) ActiveDir() string { return s.Active().Dir() }

// SetShowHidden applies the flag to both panels. The first error is
// returned but both panels are attempted.
func (s *Session) SetShowHidden(show bool) error {
	var first error
	for _, p := range s.panels {
		if err := p.SetShowHidden(show); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// SyncPanels points the inactive panel at the active panel's directory.
func (s *Session) SyncPanels() error {
	return s.Inactive().Navigate(s.Active().Dir())
}

// ReloadAll refreshes both panels, returning the first error.
func (s *Session) ReloadAll() error {
	var first error
	for _, p := range s.panels {
		if err := p.Reload(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
