package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/twinvault/internal/core"
	"github.com/illarion/twinvault/internal/crypto"
	"github.com/illarion/twinvault/internal/git"
	"github.com/illarion/twinvault/internal/vault"
)

// Get writes files from the vault into dir. With no names every visible
// file is written. Existing files are left untouched.
func Get(ctx context.Context, dir string, names []string) {
	a := OpenApp()
	defer a.Close()

	sess, password, source := OpenSession(ctx, a)
	defer crypto.ClearBytes(password)
	defer sess.Close()

	var records []vault.FileRecord
	if len(names) == 0 {
		records = sess.Files()
	} else {
		for _, name := range names {
			f, err := sess.File(name)
			if err != nil {
				HandleError(err)
			}
			records = append(records, *f)
		}
	}

	if len(records) == 0 {
		fmt.Println("No files in vault")
		return
	}

	results, status, err := core.ExportFiles(dir, records)
	for _, r := range results {
		successColor.Printf("wrote: %s\n", r.Path)
	}
	if err != nil {
		HandleError(err)
	}

	if warnings := git.FormatWarnings(status); warnings != "" {
		warnColor.Fprint(os.Stderr, warnings)
	}

	if source == SourcePrompt {
		OfferToSavePassword(sess.Structure().Metadata.VaultID, password)
	}
}
