// Package domain contains the core business entities of the ledger:
// users and the append-only statements their balances derive from.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
