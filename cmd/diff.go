package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/illarion/twinvault/internal/core"
	"github.com/illarion/twinvault/internal/crypto"
)

// Diff compares a vault file with a local file. localPath defaults to the
// file's name in the current directory.
func Diff(ctx context.Context, name, localPath string) {
	if localPath == "" {
		localPath = name
	}

	local, err := os.ReadFile(localPath)
	if err != nil {
		HandleError(err)
	}

	a := OpenApp()
	defer a.Close()

	sess, password, _ := OpenSession(ctx, a)
	defer crypto.ClearBytes(password)
	defer sess.Close()

	f, err := sess.File(name)
	if err != nil {
		HandleError(err)
	}

	out := core.UnifiedDiff(name, f.Payload, local)
	if out == "" {
		fmt.Printf("%s: no differences\n", name)
		return
	}
	printDiff(out)
}

func printDiff(out string) {
	added := color.New(color.FgGreen)
	deleted := color.New(color.FgRed)
	header := color.New(color.Bold)

	for _, line := range strings.SplitAfter(out, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			header.Print(line)
		case strings.HasPrefix(line, "+"):
			added.Print(line)
		case strings.HasPrefix(line, "-"):
			deleted.Print(line)
		default:
			fmt.Print(line)
		}
	}
}
