// Package mocks provides in-memory implementations of the store interfaces
// for testing. Each mock keeps its data in maps and ordered slices guarded by
// a mutex, and exposes function fields so individual tests can override
// behavior (e.g., to inject failures) without defining a new type.
package mocks
