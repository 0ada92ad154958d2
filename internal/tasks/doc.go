// Package tasks keeps local state consistent with the remote API after every operation.
//
// # Controller
//
// [Controller] is the single owner of the session. Views and commands call it instead of the
// façade so that the session store is written in one place:
//
//  1. [Controller.Login] : persists user and token on success and leaves the store untouched on failure
//  2. [Controller.Logout] and [Controller.DeleteAccount] : clear every session key
//  3. [Controller.ToggleFavorite] : add or remove by membership, then re-fetch the user and replace the favorites
//  4. [Controller.EditProfile] : submit only the changed fields, persist a new username, re-fetch the profile
//
// # Catalog View
//
// [CatalogView] is the dependent view state for the catalog. It is safe for concurrent use;
// resync results carry a generation number and older results never overwrite newer ones.
//
// # Progress Reporting
//
// [Controller.ImportFavorites] adds many favorites with a rate-limited worker pool. Progress is
// reported through a channel with non-blocking sends; a full channel drops updates.
//
// # Notices
//
// [Notice] converts an error to the user-facing notification text. Unless detailed errors are
// enabled every failure maps to [services.GenericMessage].
package tasks
