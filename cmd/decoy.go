package cmd

import (
	"context"
	"fmt"

	"github.com/illarion/twinvault/internal/core"
	"github.com/illarion/twinvault/internal/crypto"
)

// Decoy adds or replaces the decoy side of the vault, seeded with the
// given local files. Any previous decoy content is discarded.
func Decoy(ctx context.Context, paths []string) {
	a := OpenApp()
	defer a.Close()

	records, err := core.ImportFiles(paths, a.Log)
	if err != nil {
		HandleError(err)
	}

	password, _, err := GetPassword("Enter vault password: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	decoyPassword, err := core.ReadPasswordConfirm("Enter decoy password: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(decoyPassword)

	if err := a.Service.AddDecoy(ctx, password, decoyPassword, records); err != nil {
		HandleError(saveError(err))
	}

	successColor.Println("Decoy password set")
	if len(records) > 0 {
		fmt.Printf("%d decoy files stored\n", len(records))
	}
}
