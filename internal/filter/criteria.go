// Package filter implements the region/genre predicate shared by sync and
// cleanup. A record passes when its region contains at least one region
// token AND its genre contains at least one genre token. Matching is
// substring-based and case-sensitive; the source uses fixed Korean tokens.
package filter

import "strings"

// Criteria restricts which announcements are synced or cleaned up.
// A nil *Criteria means unfiltered: everything passes.
type Criteria struct {
	// Regions are accepted when the announcement region contains any of them.
	Regions []string
	// Genres are accepted when the announcement genre contains any of them.
	Genres []string
}

// Personal returns the personal-variant criteria: nationwide or
// Gyeonggi announcements in the music genre (or genre wildcard).
func Personal() *Criteria {
	return &Criteria{
		Regions: []string{"전국", "전체", "경기"},
		Genres:  []string{"전체", "음악"},
	}
}

// Matches reports whether an announcement with the given region and genre
// passes the criteria. Both axes must match; within one axis any token
// matches (OR semantics).
func (c *Criteria) Matches(region, genre string) bool {
	if c == nil {
		return true
	}
	return containsAny(region, c.Regions) && containsAny(genre, c.Genres)
}

func containsAny(value string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(value, token) {
			return true
		}
	}
	return false
}
