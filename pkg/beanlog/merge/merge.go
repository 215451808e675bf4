package merge

import (
	"time"

	"github.com/beanlog/beanlog/pkg/beanlog/geo"
	"github.com/beanlog/beanlog/pkg/beanlog/match"
	"github.com/beanlog/beanlog/pkg/beanlog/store"
)

// placeholderImages is the fixed fallback pool for cafés with no
// provider match. Selection by entity index keeps re-runs deterministic.
var placeholderImages = []string{
	"https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=640",
	"https://images.unsplash.com/photo-1501339847302-ac426a4a7cbb?w=640",
	"https://images.unsplash.com/photo-1554118811-1e0d58224f24?w=640",
	"https://images.unsplash.com/photo-1509042239860-f550ce710b93?w=640",
	"https://images.unsplash.com/photo-1521017432531-fbd92d768814?w=640",
	"https://images.unsplash.com/photo-1559925393-8be0ec4767c8?w=640",
}

// PlaceholderImage returns the pool entry for an entity index.
func PlaceholderImage(index int) string {
	i := index % len(placeholderImages)
	if i < 0 {
		i += len(placeholderImages)
	}
	return placeholderImages[i]
}

// Apply computes the partial update for one café from the best-ranked
// candidate, or the placeholder-only update when no candidate matched.
// The result is idempotent: applying the same match twice yields the
// same final field values, and no previously set field is ever cleared.
func Apply(cafe store.Cafe, best *match.Candidate, fallbackIndex int, now time.Time) store.Update {
	u := store.Update{UpdatedAt: now}

	if best == nil {
		// No match: a partial, non-destructive update. Only the
		// thumbnail falls back to the placeholder pool.
		if cafe.ThumbnailURL == "" {
			img := PlaceholderImage(fallbackIndex)
			u.ThumbnailURL = &img
		}
		return u
	}

	// The road-form address is preferred over the lot-form one.
	addr := best.Address
	if best.RoadAddress != "" {
		addr = best.RoadAddress
	}
	if addr != "" {
		u.Address = &addr
	}

	if best.Category != "" {
		cat := best.Category
		u.Category = &cat
	}

	// Phone is always a string once enriched — empty when the provider
	// omits it, never null, for schema stability.
	phone := best.Telephone
	u.Phone = &phone

	if best.Link != "" {
		link := best.Link
		u.ExternalLink = &link
	}

	if title := match.CleanTitle(best.Title); title != "" && cafe.Name == "" {
		u.Name = &title
	}

	if best.MapX != "" && best.MapY != "" {
		if lat, lng, err := geo.Normalize(best.MapX, best.MapY); err == nil && geo.Plausible(lat, lng) {
			u.Coordinates = &store.Coordinates{Latitude: lat, Longitude: lng}
		}
		// Unparseable or implausible coordinates leave any existing
		// value in place rather than overwrite it.
	}

	return u
}
