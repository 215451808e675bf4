package store

import (
	"context"
	"time"
)

// Store is the record store for café entities. It exposes the four
// operations the enrichment pipeline relies on: append-only add,
// get-by-id, list-all, and partial-field update.
type Store interface {
	Close() error

	// AddCafe appends a new record and returns its assigned id.
	AddCafe(ctx context.Context, c Cafe) (string, error)
	// GetCafe returns a record by id; found is false when absent.
	GetCafe(ctx context.Context, id string) (Cafe, bool, error)
	// ListCafes returns all records in insertion order.
	ListCafes(ctx context.Context) ([]Cafe, error)
	// UpdateCafe applies a partial update. Nil fields are left
	// untouched; an update never deletes a previously set field.
	UpdateCafe(ctx context.Context, id string, u Update) error
}

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Cafe represents a stored café record
type Cafe struct {
	ID      string
	Name    string
	Address string
	// LocationTags run most general first, e.g. ["서울", "성수"].
	LocationTags []string
	Coordinates  *Coordinates
	Category     string
	// Phone is nil until a match sets it; a match with no telephone
	// sets the empty string, never nil again.
	Phone        *string
	ExternalLink string
	ThumbnailURL string
	UpdatedAt    time.Time
}

// Update is a partial-field update for a café record.
type Update struct {
	Name         *string
	Address      *string
	Category     *string
	Phone        *string
	ExternalLink *string
	Coordinates  *Coordinates
	ThumbnailURL *string
	UpdatedAt    time.Time
}

// Empty reports whether the update carries no field changes beyond the
// timestamp.
func (u Update) Empty() bool {
	return u.Name == nil && u.Address == nil && u.Category == nil &&
		u.Phone == nil && u.ExternalLink == nil && u.Coordinates == nil &&
		u.ThumbnailURL == nil
}
