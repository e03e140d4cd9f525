package sharecare

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/eringen/sharecare/asset"
)

// Store wraps a SQLite database holding posts, their share overrides and
// uploaded image records.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed during writes; busy_timeout makes writers wait
	// instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Columns added after the first release. Each is applied once; "duplicate
// column" errors mean it already ran.
var columnMigrations = []string{
	`ALTER TABLE posts ADD COLUMN published INTEGER NOT NULL DEFAULT 1`,
	`ALTER TABLE posts ADD COLUMN og_title_custom TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE posts ADD COLUMN og_description_custom TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE posts ADD COLUMN og_image_id TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE posts ADD COLUMN pinterest_image_id TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE posts ADD COLUMN meta_image_id TEXT NOT NULL DEFAULT ''`,
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS images (
    id TEXT PRIMARY KEY,
    key TEXT NOT NULL,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	if err != nil {
		return err
	}
	for _, stmt := range columnMigrations {
		if _, err := s.db.Exec(stmt); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
				continue
			}
			return err
		}
	}
	return nil
}

const postColumns = `slug, title, date, summary, content, published,
	og_title_custom, og_description_custom, og_image_id, pinterest_image_id, meta_image_id`

type rowScanner interface {
	Scan(dest ...any) error
}

// postRow is a scanned post whose image columns are not resolved yet.
type postRow struct {
	Post
	ogImage, pinImage, metaImage string
}

func scanPostRow(row rowScanner) (postRow, error) {
	var r postRow
	var published int
	if err := row.Scan(&r.Slug, &r.Title, &r.Date, &r.Summary, &r.Content, &published,
		&r.Share.OGTitleCustom, &r.Share.OGDescriptionCustom, &r.ogImage, &r.pinImage, &r.metaImage); err != nil {
		return postRow{}, err
	}
	r.Published = published == 1
	return r, nil
}

func (s *Store) resolve(r postRow) (Post, error) {
	p := r.Post
	var err error
	if p.Share.OGImageCustom, err = s.imageRef(r.ogImage); err != nil {
		return Post{}, err
	}
	if p.Share.PinterestImageCustom, err = s.imageRef(r.pinImage); err != nil {
		return Post{}, err
	}
	if p.SummaryImage, err = s.imageRef(r.metaImage); err != nil {
		return Post{}, err
	}
	return p, nil
}

// imageRef resolves an image id column. Dangling ids resolve to nil.
func (s *Store) imageRef(id string) (*asset.Image, error) {
	if id == "" {
		return nil, nil
	}
	img, err := s.GetImage(id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *Store) getPost(query string, args ...any) (Post, error) {
	r, err := scanPostRow(s.db.QueryRow(query, args...))
	if err != nil {
		return Post{}, err
	}
	return s.resolve(r)
}

func (s *Store) queryPosts(query string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	var scanned []postRow
	for rows.Next() {
		r, err := scanPostRow(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		scanned = append(scanned, r)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(scanned))
	for _, r := range scanned {
		p, err := s.resolve(r)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// ListPages returns published posts ordered by date descending.
func (s *Store) ListPages() ([]Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY date DESC`)
}

// ListAllPages returns every post (published and drafts) ordered by date descending.
func (s *Store) ListAllPages() ([]Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC`)
}

// GetPage returns a single published post by slug.
func (s *Store) GetPage(slug string) (Post, error) {
	return s.getPost(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug)
}

// GetPageAny returns a post by slug regardless of published status (for admin).
func (s *Store) GetPageAny(slug string) (Post, error) {
	return s.getPost(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
}

// SavePage upserts a post with its share overrides.
func (s *Store) SavePage(p Post) error {
	if err := p.Share.Validate(); err != nil {
		return err
	}
	published := 0
	if p.Published {
		published = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Date, p.Summary, p.Content, published,
		p.Share.OGTitleCustom, p.Share.OGDescriptionCustom,
		imageID(p.Share.OGImageCustom), imageID(p.Share.PinterestImageCustom), imageID(p.SummaryImage))
	if err != nil {
		return fmt.Errorf("sharecare: save page %s: %w", p.Slug, err)
	}
	return nil
}

// SetPublished changes the publish state of a post.
func (s *Store) SetPublished(slug string, published bool) error {
	v := 0
	if published {
		v = 1
	}
	res, err := s.db.Exec(`UPDATE posts SET published = ? WHERE slug = ?`, v, slug)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePage removes a post by slug.
func (s *Store) DeletePage(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// SaveImage records an uploaded image.
func (s *Store) SaveImage(img asset.Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (id, key, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		img.ID, img.Key, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	if err != nil {
		return fmt.Errorf("sharecare: save image %s: %w", img.ID, err)
	}
	return nil
}

// GetImage returns the image record with the given id.
func (s *Store) GetImage(id string) (asset.Image, error) {
	var img asset.Image
	err := s.db.QueryRow(`SELECT id, key, original_name, width, height, size, uploaded_at FROM images WHERE id = ?`, id).
		Scan(&img.ID, &img.Key, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt)
	if err != nil {
		return asset.Image{}, err
	}
	return img, nil
}

// ListImages returns every image, newest first.
func (s *Store) ListImages() ([]asset.Image, error) {
	rows, err := s.db.Query(`SELECT id, key, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []asset.Image
	for rows.Next() {
		var img asset.Image
		if err := rows.Scan(&img.ID, &img.Key, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes an image record. Posts referring to it fall back to
// their defaults.
func (s *Store) DeleteImage(id string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE id = ?`, id)
	return err
}

func imageID(img *asset.Image) string {
	if img == nil {
		return ""
	}
	return img.ID
}
