package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/illarion/twinvault/internal/keyring"
)

// Status shows what can be learned about the vault without a password
func Status(ctx context.Context) {
	a := OpenApp()
	defer a.Close()

	if !a.Store.Exists() {
		fmt.Printf("No vault found at %s\n", a.Store.Path())
		fmt.Println("Run 'twinvault init' to create one")
		return
	}

	st, err := a.Service.LoadVault(ctx)
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Vault:      %s\n", a.Store.Path())
	fmt.Printf("Backend:    %s\n", a.Config.Backend)
	fmt.Printf("Created:    %s\n", st.Metadata.Created.Local().Format(time.RFC3339))
	if m, ok := a.Store.(interface{ GetModified() (time.Time, error) }); ok {
		if modified, err := m.GetModified(); err == nil && !modified.IsZero() {
			fmt.Printf("Modified:   %s\n", modified.Local().Format(time.RFC3339))
		}
	}
	if info, err := os.Stat(a.Store.Path()); err == nil {
		fmt.Printf("Size:       %s\n", formatSize(info.Size()))
	}
	fmt.Printf("Containers: %d\n", st.ContainerCount())

	if keyring.HasPassword(st.Metadata.VaultID) {
		fmt.Println("Keyring:    password stored")
	} else {
		fmt.Println("Keyring:    not stored")
	}
}
