// Package session owns "who is logged in".
//
// A [Session] is loaded from a persistent key/value [Store] through a [Manager], which is the only
// component that reads or writes session keys. The Manager also acts as the [oauth2.TokenSource]
// for authenticated API calls and re-reads the store on every call, so requests always carry the
// token that is present at send time.
package session
