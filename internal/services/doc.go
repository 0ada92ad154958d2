// Package services is the client-side façade over the remote movie API.
//
// [Client] exposes one method per remote operation and implements [MovieAPI]. Authenticated
// calls go through [BearerTransport], which asks an [oauth2.TokenSource] for the current token
// immediately before each request. Failures are returned as [*APIError] values carrying an
// [ErrorKind]; [GenericMessage] is the fixed text shown when the kind is not surfaced.
package services
