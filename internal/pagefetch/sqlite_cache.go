package pagefetch

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// SQLiteCache keeps pages in a single SQLite database.
type SQLiteCache struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLiteCache opens (or creates) the cache database at path and applies
// migrations.
func OpenSQLiteCache(path string, logger *slog.Logger) (*SQLiteCache, error) {
	if path == "" {
		return nil, errors.New("page cache database path is empty")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open page cache: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := optimizeSQLite(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if logger != nil {
		logger.Debug("page cache database ready", "path", path)
	}
	return &SQLiteCache{db: db, now: time.Now}, nil
}

func optimizeSQLite(db *sql.DB) error {
	pragmas := []struct {
		name  string
		value string
	}{
		{"journal_mode", "WAL"},
		{"synchronous", "NORMAL"},
		{"busy_timeout", "5000"},
		{"temp_store", "MEMORY"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			return fmt.Errorf("set PRAGMA %s: %w", p.name, err)
		}
	}
	return nil
}

func runMigrations(db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run page cache migrations: %w", err)
	}
	return nil
}

func (c *SQLiteCache) Name() string { return SourceSQLiteCache }

func (c *SQLiteCache) Get(ctx context.Context, req Request) ([]byte, bool, error) {
	if c == nil || c.db == nil {
		return nil, false, errors.New("page cache not configured")
	}
	var body []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT body FROM pages WHERE type = ? AND season = ? AND name = ?`,
		req.Type, req.Season, req.Name,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (c *SQLiteCache) Put(ctx context.Context, req Request, body []byte) error {
	if c == nil || c.db == nil {
		return errors.New("page cache not configured")
	}
	_, err := c.db.ExecContext(ctx, `
INSERT INTO pages (type, season, name, url, body, fetched_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (type, season, name) DO UPDATE SET
    url = excluded.url,
    body = excluded.body,
    fetched_at = excluded.fetched_at`,
		req.Type, req.Season, req.Name, req.URL, body, c.now().UTC(),
	)
	return err
}

// Count reports how many pages are stored.
func (c *SQLiteCache) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n)
	return n, err
}

func (c *SQLiteCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
