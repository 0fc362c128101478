package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/illarion/twinvault/internal/core"
	"github.com/illarion/twinvault/internal/crypto"
	"github.com/illarion/twinvault/internal/storage"
)

// Remove removes files from the unlocked side of the vault
func Remove(ctx context.Context, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: twinvault rm <name> [name...]")
		os.Exit(1)
	}

	a := OpenApp()
	defer a.Close()

	sess, password, _ := OpenSession(ctx, a)
	defer crypto.ClearBytes(password)
	defer sess.Close()

	removed, err := sess.RemoveFiles(ctx, names...)
	for _, name := range removed {
		successColor.Printf("removed: %s\n", name)
	}
	if err != nil {
		if errors.Is(err, core.ErrFileNotFound) {
			HandleError(err)
		}
		HandleError(saveError(err))
	}

	if c, ok := a.Store.(storage.Compactor); ok {
		if err := c.Compact(); err != nil {
			a.Log.Warn().Err(err).Msg("compaction failed")
		}
	}
}
