// Package storage persists the dual-vault structure.
//
// Two backends share the Store interface:
//   - json: a single file holding the JSON-serialized structure (default)
//   - bolt: a BBolt database holding the same JSON document
//
// Both replace the whole structure in one atomic step. The JSON backend
// writes a temp file in the target directory, syncs it and renames it over
// the vault file. The BBolt backend writes inside a single transaction.
//
// Files are created with owner-only permissions (0600, directories 0700).
package storage
