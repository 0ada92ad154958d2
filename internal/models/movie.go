package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Year is a calendar year that the API sends either as a JSON number or a numeric string.
//
// Zero means unknown (for example, a director who is still alive has no death year).
type Year int

func (y Year) String() string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(int(y))
}

func (y Year) MarshalJSON() ([]byte, error) {
	if y == 0 {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(y))), nil
}

func (y *Year) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*y = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*y = 0
			return nil
		}
		// Some records carry full dates ("1946-12-18"); only the year is kept.
		if len(s) > 4 && s[4] == '-' {
			s = s[:4]
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid year %q", s)
		}
		*y = Year(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid year %s", data)
	}
	*y = Year(n)
	return nil
}

// Genre is a movie genre with its description.
type Genre struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// Director is the director record embedded in movies and returned by GET /directors/{name}.
type Director struct {
	Name  string `json:"Name"`
	Bio   string `json:"Bio"`
	Birth Year   `json:"Birth"`
	Death Year   `json:"Death"`
}

// Lifespan renders the birth and death years, e.g. "1946–" or "1899–1980".
func (d Director) Lifespan() string {
	if d.Birth == 0 && d.Death == 0 {
		return ""
	}
	return d.Birth.String() + "–" + d.Death.String()
}

// Movie is a catalog entry. The client never mutates it.
type Movie struct {
	ID          string   `json:"_id" validate:"required"`
	Title       string   `json:"Title" validate:"required"`
	Description string   `json:"Description"`
	Genre       Genre    `json:"Genre"`
	Director    Director `json:"Director"`
	ImagePath   string   `json:"ImagePath,omitempty"`
	Featured    bool     `json:"Featured"`
}

// FindMovie returns the movie whose id or title (case-insensitive) matches key.
func FindMovie(movies []Movie, key string) (Movie, bool) {
	for _, m := range movies {
		if m.ID == key || strings.EqualFold(m.Title, key) {
			return m, true
		}
	}
	return Movie{}, false
}
