// Package api contains the HTTP boundary of the ledger: request and
// response models, handlers for the user, session and statement endpoints,
// and the mapping from use-case errors to HTTP status codes. Handlers
// delegate all business rules to the service layer and never expose raw
// internal errors to clients.
package api
