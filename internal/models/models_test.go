package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/myflix/internal/shared"
)

func strPtr(s string) *string { return &s }

func TestYear(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want Year
	}{
		{name: "number", in: `1946`, want: 1946},
		{name: "numeric string", in: `"1899"`, want: 1899},
		{name: "full date string", in: `"1946-12-18T00:00:00.000Z"`, want: 1946},
		{name: "empty string", in: `""`, want: 0},
		{name: "null", in: `null`, want: 0},
	}

	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			var y Year
			if err := json.Unmarshal([]byte(c.in), &y); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if y != c.want {
				t.Errorf("got %d, want %d", y, c.want)
			}
		})
	}

	t.Run("rejects words", func(t *testing.T) {
		var y Year
		if err := json.Unmarshal([]byte(`"unknown"`), &y); err == nil {
			t.Error("expected error")
		}
	})
}

func TestDecodeMovie(t *testing.T) {
	body := `{
		"_id": "5f1",
		"Title": "Jaws",
		"Description": "A shark.",
		"Genre": {"Name": "Thriller", "Description": "Tense."},
		"Director": {"Name": "Steven Spielberg", "Bio": "Director.", "Birth": "1946", "Death": null},
		"ImagePath": "https://example.com/jaws.jpg",
		"Featured": true
	}`

	var m Movie
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if err := Validate(m); err != nil {
		t.Fatalf("valid movie failed validation: %v", err)
	}

	if m.Director.Birth != 1946 || m.Director.Death != 0 {
		t.Errorf("unexpected director years %d-%d", m.Director.Birth, m.Director.Death)
	}
	if got := m.Director.Lifespan(); got != "1946–" {
		t.Errorf("Lifespan() = %q", got)
	}
	if m.Genre.Name != "Thriller" {
		t.Errorf("unexpected genre %q", m.Genre.Name)
	}
}

func TestDecodeUser(t *testing.T) {
	t.Run("timestamp birthday", func(t *testing.T) {
		body := `{"_id":"u1","Username":"alice","Email":"a@example.com","Birthday":"1990-04-02T00:00:00.000Z","FavoriteMovies":["m1","m2"]}`
		var u User
		if err := json.Unmarshal([]byte(body), &u); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if u.Birthday.String() != "1990-04-02" {
			t.Errorf("birthday = %s", u.Birthday)
		}
		if !u.Favorites().Has("m2") {
			t.Error("expected m2 in favorites")
		}
	})

	t.Run("missing id fails validation", func(t *testing.T) {
		var u User
		if err := json.Unmarshal([]byte(`{"Username":"alice"}`), &u); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		err := Validate(u)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if verr.Fields[0].Field != "_id" {
			t.Errorf("expected _id field, got %s", verr.Fields[0].Field)
		}
	})

	t.Run("login result requires token", func(t *testing.T) {
		lr := LoginResult{User: User{ID: "u1", Username: "alice"}}
		err := Validate(lr)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if !strings.Contains(err.Error(), "token is required") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})
}

func TestRegistrationValidation(t *testing.T) {
	tc := []struct {
		name    string
		reg     Registration
		wantErr bool
	}{
		{name: "valid", reg: Registration{Username: "alice1", Password: "pw", Email: "a@example.com", Birthday: "1990-01-01"}},
		{name: "valid without birthday", reg: Registration{Username: "alice1", Password: "pw", Email: "a@example.com"}},
		{name: "short username", reg: Registration{Username: "al", Password: "pw", Email: "a@example.com"}, wantErr: true},
		{name: "non alphanumeric username", reg: Registration{Username: "alice!", Password: "pw", Email: "a@example.com"}, wantErr: true},
		{name: "bad email", reg: Registration{Username: "alice1", Password: "pw", Email: "nope"}, wantErr: true},
		{name: "bad birthday", reg: Registration{Username: "alice1", Password: "pw", Email: "a@example.com", Birthday: "01/01/1990"}, wantErr: true},
		{name: "missing password", reg: Registration{Username: "alice1", Email: "a@example.com"}, wantErr: true},
	}

	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			err := Validate(c.reg)
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestProfileUpdate(t *testing.T) {
	t.Run("empty update is rejected", func(t *testing.T) {
		if err := (ProfileUpdate{}).Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("only submitted fields are serialized", func(t *testing.T) {
		p := ProfileUpdate{Email: strPtr("new@example.com")}
		if err := p.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if string(data) != `{"Email":"new@example.com"}` {
			t.Errorf("unexpected payload %s", data)
		}
	})

	t.Run("String omits password", func(t *testing.T) {
		p := ProfileUpdate{Username: strPtr("bobby1"), Password: strPtr("hunter2")}
		if strings.Contains(p.String(), "hunter2") {
			t.Errorf("password leaked: %s", p.String())
		}
	})

	t.Run("invalid username", func(t *testing.T) {
		p := ProfileUpdate{Username: strPtr("ab")}
		if err := p.Validate(); err == nil {
			t.Error("expected error")
		}
	})
}

func TestFavoriteSet(t *testing.T) {
	s := NewFavoriteSet("b", "a", "")
	if s.Len() != 2 {
		t.Fatalf("expected 2 members, got %d", s.Len())
	}

	s.Add("c")
	s.Remove("a")
	if got := strings.Join(s.IDs(), ","); got != "b,c" {
		t.Errorf("IDs() = %s", got)
	}

	if !s.Equal(NewFavoriteSet("c", "b")) {
		t.Error("sets should be equal")
	}

	catalog := []Movie{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}}
	resolved := s.Resolve(catalog)
	if len(resolved) != 2 || resolved[0].ID != "b" {
		t.Errorf("unexpected resolve result %+v", resolved)
	}

	if m, ok := FindMovie(catalog, "c"); !ok || m.Title != "C" {
		t.Error("FindMovie by id failed")
	}
	if _, ok := FindMovie(catalog, "b"); !ok {
		t.Error("FindMovie by title failed")
	}
}
