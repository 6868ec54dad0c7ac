// Package state persists UI session state (per-panel directories, sort
// preferences) in a small SQLite database under the XDG data dir, and
// handles the lastdir handoff file consumed by the shell wrapper.
package state

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "lstime"
	dbFileName = "lstime.db"
)

// Session is the persisted snapshot of one UI session.
type Session struct {
	LeftPath    string
	RightPath   string
	ActivePanel string // "left" or "right"
	SortBy      string
	Reverse     bool
	ShowHidden  bool
}

type Manager struct {
	db *sql.DB
}

// Open opens (creating if needed) the state database.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return openAt(dbPath)
}

func openAt(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

// GetSession returns the saved session, or nil on first run.
func (m *Manager) GetSession() (*Session, error) {
	row := m.db.QueryRow(`
		SELECT left_path, right_path, active_panel, sort_by, reverse, show_hidden
		FROM session_state WHERE id = 1
	`)

	var s Session
	var rightPath, activePanel, sortBy sql.NullString
	err := row.Scan(&s.LeftPath, &rightPath, &activePanel, &sortBy, &s.Reverse, &s.ShowHidden)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	s.RightPath = rightPath.String
	s.ActivePanel = activePanel.String
	s.SortBy = sortBy.String
	return &s, nil
}

// SaveSession upserts the session snapshot. Called once at teardown.
func (m *Manager) SaveSession(s Session) error {
	_, err := m.db.Exec(`
		INSERT INTO session_state (id, left_path, right_path, active_panel, sort_by, reverse, show_hidden)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			left_path = excluded.left_path,
			right_path = excluded.right_path,
			active_panel = excluded.active_panel,
			sort_by = excluded.sort_by,
			reverse = excluded.reverse,
			show_hidden = excluded.show_hidden
	`, s.LeftPath, s.RightPath, s.ActivePanel, s.SortBy, s.Reverse, s.ShowHidden)
	return err
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS session_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			left_path TEXT NOT NULL,
			right_path TEXT,
			active_panel TEXT DEFAULT 'left',
			sort_by TEXT DEFAULT 'modified',
			reverse INTEGER NOT NULL DEFAULT 0,
			show_hidden INTEGER NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
	return err
}

const currentSchemaVersion = 1
