// Package store defines the persistence contracts for the ledger's
// entities along with the sentinel errors shared by every implementation.
// Durable implementations live in internal/platform/postgres; in-memory
// implementations used by tests live in internal/mocks.
package store
