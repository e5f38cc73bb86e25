// Package formclient is the typed client for the EaseForm API: forms,
// responses, and host profiles.
//
// # Reads
//
// Every read goes through the cache resolver with a resource-specific key
// and TTL:
//
//	key                      TTL (default)   endpoint
//	forms::list              1m              GET /forms
//	forms::get::{id}         1m              GET /forms/{id}
//	public::form::{id}       30s             GET /public/forms/{id}
//	responses::list::{id}    30s             GET /forms/{id}/responses
//	host::profile            5m              GET /hosts/me
//
// Fresh cache hits never touch the network. Stale hits return the cached
// data immediately and refresh in the background; passing an onUpdate
// handler to a read lets the caller reconcile once fresher data lands.
//
// # Writes
//
// Writes pass straight through to the API and, on success, invalidate the
// cache namespaces they affect. Creating, updating, stopping, or deleting a
// form drops the whole forms:: namespace (lists and detail views alike);
// response mutations drop that form's responses::list key. SignOut clears
// everything.
//
// # Authentication
//
// Authenticated endpoints ask the TokenProvider for the current access token
// per request. A missing session surfaces as ErrNoActiveSession before any
// network activity. Public endpoints (GetPublicForm, SubmitResponse) skip
// the token entirely.
//
// # Errors
//
// Transport and decode failures propagate unchanged from the blocking read
// path. Non-2xx API responses become *APIError; IsNotFound and IsConflict
// cover the two statuses callers branch on.
package formclient
