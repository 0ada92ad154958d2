package models

import "sort"

// FavoriteSet is a set of movie ids.
type FavoriteSet map[string]struct{}

// NewFavoriteSet builds a set from ids, ignoring empty strings.
func NewFavoriteSet(ids ...string) FavoriteSet {
	s := make(FavoriteSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s FavoriteSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s FavoriteSet) Add(id string) {
	if id != "" {
		s[id] = struct{}{}
	}
}

func (s FavoriteSet) Remove(id string) {
	delete(s, id)
}

func (s FavoriteSet) Len() int {
	return len(s)
}

// IDs returns the members in sorted order.
func (s FavoriteSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Equal reports whether both sets have the same members.
func (s FavoriteSet) Equal(other FavoriteSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Resolve returns the movies whose ids are in the set, in catalog order.
func (s FavoriteSet) Resolve(catalog []Movie) []Movie {
	var out []Movie
	for _, m := range catalog {
		if s.Has(m.ID) {
			out = append(out, m)
		}
	}
	return out
}
