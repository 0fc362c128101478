// Package vault implements the dual-vault format of twinvault.
//
// A Structure holds up to two independently encrypted containers:
//   - realVault: opened by the real password, holds the actual files
//   - dummyVault: optional, opened by a different password, holds decoy files
//
// The two plaintexts are disjoint payloads; neither references the other.
// Only the creation time, a vault ID and the presence flags are stored
// in the clear.
//
// Unlock tries the real container first and the dummy container second,
// sequentially. Reseal re-encrypts one side and copies the other verbatim.
package vault
