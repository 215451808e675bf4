package match

import "strings"

// Candidate is a single result row from the place-search provider.
// Title may carry the provider's emphasis markup until cleaned.
type Candidate struct {
	Title       string
	Category    string
	Telephone   string
	Address     string
	RoadAddress string
	MapX        string
	MapY        string
	Link        string

	// StrategyDescription records which query produced this candidate.
	StrategyDescription string
}

// categoryMarkers gate candidates to café-like venues. A candidate
// whose category carries none of these is discarded even when the
// provider ranks it first.
var categoryMarkers = []string{"카페", "커피", "디저트"}

// SelectBest filters candidates by category relevance and returns the
// first survivor in provider order. There is no secondary scoring;
// provider rank breaks ties among survivors. ok is false when nothing
// passes the filter, which callers treat as "try the next strategy".
func SelectBest(candidates []Candidate) (Candidate, bool) {
	for _, c := range candidates {
		if RelevantCategory(c.Category) {
			return c, true
		}
	}
	return Candidate{}, false
}

// RelevantCategory reports whether a provider category text names a
// café, coffee, or dessert venue.
func RelevantCategory(category string) bool {
	for _, marker := range categoryMarkers {
		if strings.Contains(category, marker) {
			return true
		}
	}
	return false
}
