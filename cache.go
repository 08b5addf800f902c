package pixelit

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Cache remembers encoded results keyed by the checksum of the source image,
// the configuration used and the output format, backed by an SQLite
// database.
type Cache struct {
	db *sql.DB
}

// NewCache opens or creates the cache database in file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS result (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, config TEXT NOT NULL, format TEXT NOT NULL, image BLOB NOT NULL, UNIQUE(sha1, config, format))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Find returns the cached result, or nil if there isn't one.
func (c *Cache) Find(sha1, config, format string) ([]byte, error) {
	var b []byte
	switch err := c.db.QueryRow("SELECT image FROM result WHERE sha1 = ? AND config = ? AND format = ?", sha1, config, format).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return b, nil
	default:
		return nil, err
	}
}

// Store saves a result, replacing any previous one for the same key.
func (c *Cache) Store(sha1, config, format string, b []byte) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO result (sha1, config, format, image) VALUES (?, ?, ?, ?)", sha1, config, format, b); err != nil {
		return err
	}
	return nil
}

// Len returns the number of cached results.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM result").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Purge removes every cached result.
func (c *Cache) Purge() error {
	_, err := c.db.Exec("DELETE FROM result")
	return err
}
