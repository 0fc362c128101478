package cmd

import (
	"context"
	"fmt"

	"github.com/illarion/twinvault/internal/core"
	"github.com/illarion/twinvault/internal/crypto"
)

// Init creates an empty vault. With decoy set, a second password is read
// and the vault gets a decoy side.
func Init(ctx context.Context, decoy bool) {
	a := OpenApp()
	defer a.Close()

	if a.Store.Exists() {
		HandleError(core.ErrAlreadyExists)
	}

	password, err := GetPasswordForInit("Enter password: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	var decoyPassword []byte
	if decoy {
		decoyPassword, err = core.ReadPasswordConfirm("Enter decoy password: ")
		if err != nil {
			HandleError(err)
		}
		defer crypto.ClearBytes(decoyPassword)
	}

	st, err := a.Service.Init(ctx, password, decoyPassword)
	if err != nil {
		HandleError(saveError(err))
	}

	successColor.Printf("Vault created: %s\n", a.Store.Path())
	a.Log.Debug().Str("vault_id", st.Metadata.VaultID).Msg("initialized")
	fmt.Println("The password is not stored anywhere. You must remember it.")
}
