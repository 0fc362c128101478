// Package crypto provides the cryptographic primitives for twinvault.
//
// Every container is encrypted with AES-256-CBC and PKCS#7 padding:
//   - 32-byte key derived from the password via PBKDF2
//   - 16-byte random IV per encryption operation
//   - 16-byte random salt per encryption operation, stored next to the ciphertext
//
// Key derivation uses PBKDF2-HMAC-SHA256 with 10,000 iterations. The key is
// never stored; decryption re-derives it from the container's salt.
//
// Decryption failures of any kind (malformed container, wrong password,
// corrupted ciphertext, unparsable plaintext) surface as ErrDecryption only.
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - Call Encryptor.Destroy() when done with encryption operations
package crypto
