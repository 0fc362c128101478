package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/twinvault/internal/core"
	"github.com/illarion/twinvault/internal/crypto"
	"github.com/illarion/twinvault/internal/keyring"
	"github.com/illarion/twinvault/internal/vault"
)

// KeyringSave verifies a password and stores it in the OS keyring.
// Either vault password can be stored.
func KeyringSave(ctx context.Context) {
	a := OpenApp()
	defer a.Close()

	password, err := core.ReadPassword("Enter password: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	sess, err := a.Service.Open(ctx, password)
	if err != nil {
		HandleError(err)
	}
	vaultID := sess.Structure().Metadata.VaultID
	sess.Close()

	if err := keyring.SavePassword(vaultID, password); err != nil {
		errorColor.Fprint(os.Stderr, "Error: ")
		fmt.Fprintf(os.Stderr, "failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	successColor.Println("Password saved to keyring")
}

// KeyringDelete removes the password from the OS keyring
func KeyringDelete(ctx context.Context) {
	a := OpenApp()
	defer a.Close()

	vaultID := a.VaultID(ctx)
	if vaultID == "" || !keyring.HasPassword(vaultID) {
		fmt.Println("No password stored in keyring")
		return
	}

	if err := keyring.DeletePassword(vaultID); err != nil {
		HandleError(err)
	}
	fmt.Println("Password removed from keyring")
}

// KeyringStatus checks if a password is stored in the keyring
func KeyringStatus(ctx context.Context) {
	a := OpenApp()
	defer a.Close()

	vaultID := a.VaultID(ctx)
	if vaultID == "" {
		HandleError(vault.ErrNotFound)
	}

	if keyring.HasPassword(vaultID) {
		fmt.Println("Password: stored in keyring")
	} else {
		fmt.Println("Password: not stored")
	}
}
