package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date that decodes from RFC 3339 timestamps or plain YYYY-MM-DD strings.
//
// An empty string or null decodes to the zero Date.
type Date struct {
	time.Time
}

// ParseDate parses s as YYYY-MM-DD or RFC 3339.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t.UTC()}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// User is the remote account record.
type User struct {
	ID             string   `json:"_id" validate:"required"`
	Username       string   `json:"Username" validate:"required"`
	Email          string   `json:"Email,omitempty"`
	Birthday       Date     `json:"Birthday"`
	FavoriteMovies []string `json:"FavoriteMovies"`
}

// Favorites returns the user's favorite movie ids as a set.
func (u User) Favorites() FavoriteSet {
	return NewFavoriteSet(u.FavoriteMovies...)
}

// LoginResult is the body returned by POST /login.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token" validate:"required"`
}
