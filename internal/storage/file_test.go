package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/illarion/twinvault/internal/vault"
)

func TestFileStoreNotFound(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "vault.secure"), nil)

	if store.Exists() {
		t.Error("Store should not exist yet")
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "vault.secure")
	store := NewFileStore(path, nil)
	ctx := context.Background()
	st := newStructure(t)

	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if *loaded.RealVault != *st.RealVault || *loaded.DummyVault != *st.DummyVault {
		t.Error("Loaded containers differ from saved ones")
	}
	if !loaded.Metadata.HasDummy {
		t.Error("hasDummy should survive a round trip")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Failed to stat vault: %v", err)
		}
		if perm := info.Mode().Perm(); perm != FilePermSecure {
			t.Errorf("Vault permissions: got %o, want %o", perm, FilePermSecure)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the vault file, found %d entries", len(entries))
	}
}

func TestFileStoreCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.secure")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := NewFileStore(path, nil).Load(context.Background())
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("Expected ErrPersistence, got %v", err)
	}
	if !errors.Is(err, vault.ErrMalformedStructure) {
		t.Errorf("Expected ErrMalformedStructure, got %v", err)
	}
}

func TestFileStoreMissingContainerFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.secure")
	doc := `{"realVault":{"ciphertext":"00"},"dummyVault":null,"metadata":{"hasReal":true}}`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := NewFileStore(path, nil).Load(context.Background())
	if !errors.Is(err, vault.ErrMalformedStructure) {
		t.Errorf("Expected ErrMalformedStructure, got %v", err)
	}
}

func TestFileStoreWriteFailure(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission checks are not enforced")
	}

	dir := t.TempDir()
	if err := os.Chmod(dir, 0500); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0700) })

	err := NewFileStore(filepath.Join(dir, "vault.secure"), nil).Save(context.Background(), newStructure(t))
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("Expected ErrPersistence, got %v", err)
	}
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()

	jsonStore, err := Open("json", filepath.Join(dir, "vault.secure"), nil)
	if err != nil {
		t.Fatalf("Failed to open json store: %v", err)
	}
	defer jsonStore.Close()
	if _, ok := jsonStore.(*FileStore); !ok {
		t.Errorf("Expected *FileStore, got %T", jsonStore)
	}

	boltStore, err := Open("bolt", filepath.Join(dir, "vault.db"), nil)
	if err != nil {
		t.Fatalf("Failed to open bolt store: %v", err)
	}
	defer boltStore.Close()
	if _, ok := boltStore.(Compactor); !ok {
		t.Error("Bolt store should support compaction")
	}

	if _, err := Open("sqlite", filepath.Join(dir, "x"), nil); err == nil {
		t.Error("Expected error for unknown backend")
	}
}
