// Package core provides the twinvault engine and session operations.
//
// Engine is the boundary between the presentation layer (the CLI) and the
// cryptographic engine:
//   - Encrypt/Decrypt: single container codec
//   - CreateDualVault: build a structure with a real and optional decoy side
//   - ValidatePassword: resolve a password to one side, never errors
//   - AddDummyPassword: add or replace the decoy side
//   - SaveVault/LoadVault: persist the whole structure atomically
//
// CPU-bound work runs on a separate goroutine so callers can abandon it
// through their context.
//
// Session is the explicit unlocked-session value: the password, the side it
// opened and its plaintext. Adding or removing files re-encrypts only that
// side and copies the other side forward unchanged.
package core
