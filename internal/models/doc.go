// Package models defines the domain models shared by storage and services.
//
// # Models
//
//   - FareType: one of the fares a rider can pick (regular, reduced, ...)
//   - Settings: the persisted preferences (fares and bonus policy parameters)
//   - Admin: an account allowed to change settings
//
// Money is always a decimal.Decimal; settings are persisted as exact decimal
// strings so that a value read back is identical to the value written.
//
// # Defaults
//
// DefaultSettings documents the values used when nothing has been persisted
// yet and after a restore. The same defaults are applied whenever the
// configured app version changes, mirroring a post-update reset.
package models
