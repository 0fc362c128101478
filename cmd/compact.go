package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/twinvault/internal/storage"
)

// Compact compacts the bolt database to reclaim unused space
func Compact(_ context.Context) {
	a := OpenApp()
	defer a.Close()

	c, ok := a.Store.(storage.Compactor)
	if !ok {
		fmt.Printf("Nothing to compact for the %s backend\n", a.Config.Backend)
		return
	}

	info, err := os.Stat(a.Store.Path())
	if err != nil {
		HandleError(err)
	}
	sizeBefore := info.Size()

	if err := c.Compact(); err != nil {
		HandleError(err)
	}

	info, err = os.Stat(a.Store.Path())
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Compacted: %s -> %s\n", formatSize(sizeBefore), formatSize(info.Size()))
}
