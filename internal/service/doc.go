// Package service implements the ledger's use cases on top of the store
// contracts: user registration, authentication, profile lookup, and the
// deposit/withdraw/balance/statement-detail operations. Each use case fails
// fast on the first violated precondition and leaves no partial side effects
// on a failure path.
package service
