package history

import (
	"fmt"
	"io"
	"sync"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	session TEXT NOT NULL,
	key     TEXT NOT NULL,
	value   BLOB NOT NULL,
	updated INTEGER NOT NULL,
	PRIMARY KEY (session, key)
);
`

// SQLiteBag keeps history state of many sessions in a single database file,
// so reading could be resumed by later runs.
type SQLiteBag struct {
	mu      sync.Mutex
	conn    *sqlite.Conn
	session string
}

// OpenSQLite opens (creating if necessary) history database. Empty path or
// ":memory:" gives in-memory database.
func OpenSQLite(path, session string) (*SQLiteBag, error) {
	flags := []sqlite.OpenFlags{sqlite.OpenReadWrite, sqlite.OpenCreate}
	if path == "" || path == ":memory:" {
		path = ":memory:"
		flags = append(flags, sqlite.OpenMemory)
	}
	conn, err := sqlite.OpenConn(path, flags...)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("prepare history db: %w", err)
	}
	return &SQLiteBag{conn: conn, session: session}, nil
}

// Session returns id of the session bag reads and writes.
func (b *SQLiteBag) Session() string {
	return b.session
}

func (b *SQLiteBag) Load(key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return nil, false, ErrClosed
	}
	var (
		data  []byte
		found bool
	)
	err := sqlitex.Execute(b.conn, `SELECT value FROM history WHERE session = ? AND key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{b.session, key},
			ResultFunc: func(stmt *sqlite.Stmt) (err error) {
				found = true
				data, err = io.ReadAll(stmt.ColumnReader(0))
				return err
			},
		})
	if err != nil {
		return nil, false, fmt.Errorf("read history state %q: %w", key, err)
	}
	return data, found, nil
}

func (b *SQLiteBag) Store(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return ErrClosed
	}
	err := sqlitex.Execute(b.conn, `INSERT INTO history (session, key, value, updated) VALUES (?, ?, ?, ?)
ON CONFLICT (session, key) DO UPDATE SET value = excluded.value, updated = excluded.updated`,
		&sqlitex.ExecOptions{
			Args: []any{b.session, key, data, time.Now().UnixNano()},
		})
	if err != nil {
		return fmt.Errorf("write history state %q: %w", key, err)
	}
	return nil
}

// LatestSession returns session which was updated last, empty string when
// database has no sessions.
func (b *SQLiteBag) LatestSession() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return "", ErrClosed
	}
	var session string
	err := sqlitex.Execute(b.conn, `SELECT session FROM history ORDER BY updated DESC LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				session = stmt.ColumnText(0)
				return nil
			},
		})
	if err != nil {
		return "", fmt.Errorf("find latest session: %w", err)
	}
	return session, nil
}

// Resume switches bag to another session.
func (b *SQLiteBag) Resume(session string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session = session
}

// Snapshot returns serialized database, suitable for debug report.
func (b *SQLiteBag) Snapshot() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return nil, ErrClosed
	}
	return b.conn.Serialize("main")
}

func (b *SQLiteBag) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return nil
	}
	err := b.conn.Close()
	b.conn = nil
	return err
}
