// Package server is an in-memory implementation of the remote movie API.
//
// It serves the same routes, bodies, and status codes the client expects and is used by
// "myflix dev serve" for local development and by integration tests.
//
// # Routes
//
//	POST   /users                       register (public)
//	POST   /login                       issue a bearer token (public)
//	GET    /movies                      list movies
//	GET    /movies/{title}              movie by title
//	GET    /directors/{name}            director by name
//	GET    /genres/{name}               genre by name
//	GET    /users/{username}            user record
//	GET    /users/{username}/movies     favorite movie ids
//	PUT    /users/{username}/movies/{id} add favorite
//	PUT    /users/{username}            partial profile update
//	DELETE /users/{username}            delete account
//	DELETE /users/{username}/movies/{id} remove favorite
//
// # Authentication
//
// Login issues an HS256 JWT whose subject is the account id, so tokens survive username changes.
// Every non-public route requires "Authorization: Bearer <token>" and answers 401 otherwise.
// Users may only read and modify their own record (403).
//
// # Middleware
//
// [Middleware] wraps handlers in the order added. Request logging, request ids, and panic
// recovery are installed by [New].
package server
