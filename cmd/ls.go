package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/illarion/twinvault/internal/crypto"
)

// Ls lists the files visible with the given password. The output has the
// same shape whichever side the password opens.
func Ls(ctx context.Context) {
	a := OpenApp()
	defer a.Close()

	sess, password, _ := OpenSession(ctx, a)
	defer crypto.ClearBytes(password)
	defer sess.Close()

	files := sess.Files()
	if len(files) == 0 {
		fmt.Println("No files in vault")
		return
	}

	fmt.Println("Files in vault:")
	for _, f := range files {
		fmt.Printf("  %s (%s)", f.Name, formatSize(f.Size))
		dimColor.Printf("  %s\n", f.DateAdded.Local().Format(time.DateTime))
	}
	fmt.Printf("\n%d files, %s\n", len(files), formatSize(sess.TotalSize()))
}
