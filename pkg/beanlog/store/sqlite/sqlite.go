package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/beanlog/beanlog/pkg/beanlog/internalerr"
	"github.com/beanlog/beanlog/pkg/beanlog/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS cafes (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	location_tags TEXT NOT NULL DEFAULT '[]',
	latitude REAL,
	longitude REAL,
	category TEXT NOT NULL DEFAULT '',
	phone TEXT,
	external_link TEXT NOT NULL DEFAULT '',
	thumbnail_url TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cafes_name ON cafes(name);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// AddCafe appends a new café record and returns the assigned ULID.
func (s *sqliteStore) AddCafe(ctx context.Context, c store.Cafe) (string, error) {
	if c.Name == "" {
		return "", fmt.Errorf("%w: café name required", internalerr.ErrInvalidInput)
	}

	id := s.newID()
	tagsJSON, err := json.Marshal(c.LocationTags)
	if err != nil {
		return "", err
	}

	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	var lat, lng interface{}
	if c.Coordinates != nil {
		lat = c.Coordinates.Latitude
		lng = c.Coordinates.Longitude
	}
	var phone interface{}
	if c.Phone != nil {
		phone = *c.Phone
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO cafes (id, name, address, location_tags, latitude, longitude,
	category, phone, external_link, thumbnail_url, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`, id, c.Name, c.Address, string(tagsJSON), lat, lng,
		c.Category, phone, c.ExternalLink, c.ThumbnailURL,
		updatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetCafe retrieves a café by id.
func (s *sqliteStore) GetCafe(ctx context.Context, id string) (store.Cafe, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, name, address, location_tags, latitude, longitude,
	category, phone, external_link, thumbnail_url, updated_at
FROM cafes
WHERE id = ?;
`, id)

	cafe, err := scanCafe(row)
	if err == sql.ErrNoRows {
		return store.Cafe{}, false, nil
	}
	if err != nil {
		return store.Cafe{}, false, err
	}
	return cafe, true, nil
}

// ListCafes returns all cafés in insertion order (ULIDs sort by time).
func (s *sqliteStore) ListCafes(ctx context.Context) ([]store.Cafe, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, address, location_tags, latitude, longitude,
	category, phone, external_link, thumbnail_url, updated_at
FROM cafes
ORDER BY id;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cafes []store.Cafe
	for rows.Next() {
		cafe, err := scanCafe(rows)
		if err != nil {
			return nil, err
		}
		cafes = append(cafes, cafe)
	}
	return cafes, rows.Err()
}

// UpdateCafe applies a partial update. Nil fields stay untouched.
func (s *sqliteStore) UpdateCafe(ctx context.Context, id string, u store.Update) error {
	sets := []string{"updated_at = ?"}
	updatedAt := u.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	args := []interface{}{updatedAt.UTC().Format(time.RFC3339)}

	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *u.Address)
	}
	if u.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *u.Category)
	}
	if u.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *u.Phone)
	}
	if u.ExternalLink != nil {
		sets = append(sets, "external_link = ?")
		args = append(args, *u.ExternalLink)
	}
	if u.ThumbnailURL != nil {
		sets = append(sets, "thumbnail_url = ?")
		args = append(args, *u.ThumbnailURL)
	}
	if u.Coordinates != nil {
		sets = append(sets, "latitude = ?", "longitude = ?")
		args = append(args, u.Coordinates.Latitude, u.Coordinates.Longitude)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE cafes SET %s WHERE id = ?;`, strings.Join(sets, ", "))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: café %s", internalerr.ErrNotFound, id)
	}
	return nil
}

func (s *sqliteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCafe(row rowScanner) (store.Cafe, error) {
	var (
		cafe      store.Cafe
		tagsJSON  string
		lat, lng  sql.NullFloat64
		phone     sql.NullString
		updatedAt string
	)
	err := row.Scan(&cafe.ID, &cafe.Name, &cafe.Address, &tagsJSON,
		&lat, &lng, &cafe.Category, &phone, &cafe.ExternalLink,
		&cafe.ThumbnailURL, &updatedAt)
	if err != nil {
		return store.Cafe{}, err
	}

	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &cafe.LocationTags); err != nil {
			return store.Cafe{}, fmt.Errorf("location tags for %s: %w", cafe.ID, err)
		}
	}
	if lat.Valid && lng.Valid {
		cafe.Coordinates = &store.Coordinates{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	if phone.Valid {
		p := phone.String
		cafe.Phone = &p
	}
	if updatedAt != "" {
		if parsed, perr := time.Parse(time.RFC3339, updatedAt); perr == nil {
			cafe.UpdatedAt = parsed
		}
	}
	return cafe, nil
}
