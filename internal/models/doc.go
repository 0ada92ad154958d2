// Package models defines the typed records exchanged with the remote movie API.
//
// The package contains two categories of types:
//
// 1. Remote records: decoded from API responses and validated at the façade boundary
//   - [User] : account profile with the ids of its favorite movies
//   - [Movie] : catalog entry with embedded [Genre] and [Director]
//   - [LoginResult] : user record and bearer token returned by login
//
// 2. Request payloads: validated before they are sent
//   - [Credentials] : username and password for login
//   - [Registration] : new account details
//   - [ProfileUpdate] : partial profile edit; only the fields that are set are serialized
//
// [Validate] wraps go-playground/validator and reports failures as a [*ValidationError].
// [FavoriteSet] is the client's view of the favorite relation, used only for membership checks.
package models
