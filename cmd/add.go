package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/twinvault/internal/core"
	"github.com/illarion/twinvault/internal/crypto"
)

// Add imports local files into the unlocked side of the vault
func Add(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: twinvault add <file> [file...]")
		os.Exit(1)
	}

	a := OpenApp()
	defer a.Close()

	records, err := core.ImportFiles(paths, a.Log)
	if err != nil {
		HandleError(err)
	}
	if len(records) == 0 {
		fmt.Println("Nothing to add")
		return
	}

	sess, password, _ := OpenSession(ctx, a)
	defer crypto.ClearBytes(password)
	defer sess.Close()

	if err := sess.AddFiles(ctx, records...); err != nil {
		HandleError(saveError(err))
	}

	for _, r := range records {
		successColor.Printf("added: %s (%s)\n", r.Name, formatSize(r.Size))
	}
}
