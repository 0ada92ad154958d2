package models

import "fmt"

// Credentials is the body of POST /login.
type Credentials struct {
	Username string `json:"Username" validate:"required"`
	Password string `json:"Password" validate:"required"`
}

// Registration is the body of POST /users.
type Registration struct {
	Username string `json:"Username" validate:"required,alphanum,min=5"`
	Password string `json:"Password" validate:"required"`
	Email    string `json:"Email" validate:"required,email"`
	Birthday string `json:"Birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Credentials returns the login payload for the registered account.
func (r Registration) Credentials() Credentials {
	return Credentials{Username: r.Username, Password: r.Password}
}

// ProfileUpdate is the body of PUT /users/{username}.
//
// Nil fields are left out of the payload so the server only changes what was submitted.
type ProfileUpdate struct {
	Username *string `json:"Username,omitempty" validate:"omitempty,alphanum,min=5"`
	Password *string `json:"Password,omitempty" validate:"omitempty,min=1"`
	Email    *string `json:"Email,omitempty" validate:"omitempty,email"`
	Birthday *string `json:"Birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// IsEmpty reports whether no field is set.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Username == nil && p.Password == nil && p.Email == nil && p.Birthday == nil
}

// Fields lists the JSON names of the fields that are set.
func (p ProfileUpdate) Fields() []string {
	var fields []string
	if p.Username != nil {
		fields = append(fields, "Username")
	}
	if p.Password != nil {
		fields = append(fields, "Password")
	}
	if p.Email != nil {
		fields = append(fields, "Email")
	}
	if p.Birthday != nil {
		fields = append(fields, "Birthday")
	}
	return fields
}

// Validate rejects empty updates, then checks each submitted field.
func (p ProfileUpdate) Validate() error {
	if p.IsEmpty() {
		return &ValidationError{Fields: []FieldError{{Field: "update", Message: "at least one field is required"}}}
	}
	return Validate(p)
}

// String returns a loggable summary that never includes the password.
func (p ProfileUpdate) String() string {
	return fmt.Sprintf("ProfileUpdate%v", p.Fields())
}
