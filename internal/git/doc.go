// Package git checks where exported plaintext and the vault file sit
// relative to a git work tree.
//
// A decrypted file written into a repository is one "git add ." away from
// being published, so exports that are neither ignored nor untracked are
// reported to the user. The vault file itself is ciphertext and is safe
// to commit.
package git
