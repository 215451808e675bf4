package strategy

// Strategy is one query formulation attempt against the place-search
// provider. Strategies are consumed in order; the first one that yields
// a usable candidate wins, so a district-qualified match is trusted
// over a bare-name match.
type Strategy struct {
	Query       string
	Description string
}

// coffeeKeyword broadens the query when location-qualified attempts
// come up empty.
const coffeeKeyword = "카페"

// Generate builds the ordered strategy list for a café. Location tags
// run most general first (city, then district). Strategies whose tag is
// absent are omitted rather than padded with an empty string.
//
// Order, most specific first:
//  1. name + district tag
//  2. name + city tag
//  3. name + coffee keyword
//  4. name alone
func Generate(name string, locationTags []string) []Strategy {
	if name == "" {
		return nil
	}

	var out []Strategy
	if len(locationTags) > 1 && locationTags[1] != "" {
		out = append(out, Strategy{
			Query:       name + " " + locationTags[1],
			Description: "name + district",
		})
	}
	if len(locationTags) > 0 && locationTags[0] != "" {
		out = append(out, Strategy{
			Query:       name + " " + locationTags[0],
			Description: "name + city",
		})
	}
	out = append(out, Strategy{
		Query:       name + " " + coffeeKeyword,
		Description: "name + keyword",
	})
	out = append(out, Strategy{
		Query:       name,
		Description: "name only",
	})
	return out
}
