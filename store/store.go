// Package store implements the content store on top of SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/bgraf/randomimage/filesystem"
	"github.com/bgraf/randomimage/option"
	"github.com/bgraf/randomimage/randomimage"
	"github.com/bgraf/randomimage/title"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS page (
	page_id          INTEGER PRIMARY KEY AUTOINCREMENT,
	page_namespace   INTEGER NOT NULL,
	page_title       TEXT NOT NULL,
	page_is_redirect INTEGER NOT NULL DEFAULT 0,
	page_random      REAL NOT NULL,
	page_text        TEXT NOT NULL DEFAULT '',
	UNIQUE (page_namespace, page_title)
);
CREATE INDEX IF NOT EXISTS page_random_idx ON page(page_random);

CREATE TABLE IF NOT EXISTS image (
	img_name       TEXT PRIMARY KEY,
	img_major_mime TEXT NOT NULL,
	img_minor_mime TEXT NOT NULL,
	img_path       TEXT NOT NULL,
	img_size       INTEGER NOT NULL,
	img_width      INTEGER NOT NULL DEFAULT 0,
	img_height     INTEGER NOT NULL DEFAULT 0
);
`

// Store keeps file description pages and file metadata. File content lives
// in the media directory; the database only records paths relative to it.
type Store struct {
	db       *sql.DB
	mediaDir string
}

var _ randomimage.Store = (*Store)(nil)

func Open(path string, mediaDir string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := filesystem.CreateDirectoryIfNotExists(dir); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, mediaDir: mediaDir}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) MediaDirectory() string {
	return s.mediaDir
}

// SampleOne returns the first non-redirect page in filter.Namespace whose
// random key is greater than threshold.
func (s *Store) SampleOne(ctx context.Context, filter randomimage.SampleFilter, threshold float64) (title.Reference, bool, error) {
	var q strings.Builder
	args := []interface{}{int(filter.Namespace), threshold}

	q.WriteString("SELECT page_namespace, page_title FROM page")
	if filter.MajorMIME != "" {
		q.WriteString(" LEFT JOIN image ON img_name = page_title")
	}
	q.WriteString(" WHERE page_namespace = ? AND page_is_redirect = 0 AND page_random > ?")
	if filter.MajorMIME != "" {
		q.WriteString(" AND img_major_mime = ?")
		args = append(args, filter.MajorMIME)
	}
	q.WriteString(" ORDER BY page_random LIMIT 1")

	var (
		ns  int
		key string
	)

	err := s.db.QueryRowContext(ctx, q.String(), args...).Scan(&ns, &key)
	if errors.Is(err, sql.ErrNoRows) {
		return title.Reference{}, false, nil
	}
	if err != nil {
		return title.Reference{}, false, fmt.Errorf("sample page: %w", err)
	}

	return title.Reference{Namespace: title.Namespace(ns), DBKey: key}, true, nil
}

// FilePath returns the absolute path of the file stored for ref.
func (s *Store) FilePath(ctx context.Context, ref title.Reference) (string, bool, error) {
	if ref.Namespace != title.NamespaceFile {
		return "", false, nil
	}

	var relPath string
	err := s.db.QueryRowContext(ctx,
		"SELECT img_path FROM image WHERE img_name = ?", ref.DBKey,
	).Scan(&relPath)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup file: %w", err)
	}

	return filepath.Join(s.mediaDir, filepath.FromSlash(relPath)), true, nil
}

// FileExists requires both the metadata row and a non-empty regular file.
func (s *Store) FileExists(ctx context.Context, ref title.Reference) (bool, error) {
	path, ok, err := s.FilePath(ctx, ref)
	if err != nil || !ok {
		return false, err
	}

	fi, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat file: %w", err)
	}

	return fi.Mode().IsRegular() && fi.Size() > 0, nil
}

func (s *Store) PageText(ctx context.Context, ref title.Reference) (string, bool, error) {
	var text string
	err := s.db.QueryRowContext(ctx,
		"SELECT page_text FROM page WHERE page_namespace = ? AND page_title = ?",
		int(ref.Namespace), ref.DBKey,
	).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load page text: %w", err)
	}

	return text, true, nil
}

// ImageRecord describes one file and its description page.
type ImageRecord struct {
	Ref       title.Reference
	MajorMIME string
	MinorMIME string
	Path      string // relative to the media directory
	Size      int64
	Width     int
	Height    int
	Text      string
	Redirect  bool
	// Random key for sampling. When none, an existing page keeps its key and
	// a new page gets a fresh one.
	Random option.Option[float64]
}

// PutImage inserts or updates the page and file rows for rec.
func (s *Store) PutImage(ctx context.Context, rec ImageRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	pageUpsert := `
		INSERT INTO page (page_namespace, page_title, page_is_redirect, page_random, page_text)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (page_namespace, page_title) DO UPDATE SET
			page_is_redirect = excluded.page_is_redirect,
			page_text = excluded.page_text`
	if rec.Random.IsSome() {
		pageUpsert += ", page_random = excluded.page_random"
	}

	_, err = tx.ExecContext(ctx, pageUpsert,
		int(rec.Ref.Namespace), rec.Ref.DBKey, boolInt(rec.Redirect), rec.Random.GetOr(rand.Float64()), rec.Text,
	)
	if err != nil {
		return fmt.Errorf("put page %s: %w", rec.Ref, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO image
			(img_name, img_major_mime, img_minor_mime, img_path, img_size, img_width, img_height)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Ref.DBKey, rec.MajorMIME, rec.MinorMIME, filepath.ToSlash(rec.Path), rec.Size, rec.Width, rec.Height,
	)
	if err != nil {
		return fmt.Errorf("put image %s: %w", rec.Ref, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Count returns the number of pages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM page").Scan(&n); err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}

// Reset removes all pages and file records.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"image", "page"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
