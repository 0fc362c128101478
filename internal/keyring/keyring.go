// Package keyring stores a vault password in the OS keyring, keyed by the
// vault's random identifier. Nothing here records which of the two vault
// passwords was stored.
package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const serviceName = "twinvault"

// ErrNotFound is returned when no password is stored for a vault
var ErrNotFound = errors.New("no password in keyring")

// SavePassword stores a password in the OS keyring
func SavePassword(vaultID string, password []byte) error {
	return keyring.Set(serviceName, vaultID, string(password))
}

// GetPassword retrieves a password from the OS keyring
func GetPassword(vaultID string) ([]byte, error) {
	secret, err := keyring.Get(serviceName, vaultID)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(secret), nil
}

// DeletePassword removes a password from the OS keyring.
// Deleting a missing entry is not an error.
func DeletePassword(vaultID string) error {
	err := keyring.Delete(serviceName, vaultID)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// HasPassword checks if a password is stored in the keyring
func HasPassword(vaultID string) bool {
	_, err := keyring.Get(serviceName, vaultID)
	return err == nil
}
