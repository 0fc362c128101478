package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		t.Skipf("git init failed: %v", err)
	}
	return dir
}

func TestCheckExports_NotARepo(t *testing.T) {
	dir := t.TempDir()
	status := CheckExports(dir, []string{"secret.txt"})
	if status.IsRepo {
		t.Skip("temp dir is inside a git work tree")
	}
	if status.HasWarnings() {
		t.Error("Expected no warnings outside a repository")
	}
	if FormatWarnings(status) != "" {
		t.Error("Expected empty output outside a repository")
	}
}

func TestCheckExports_IgnoredAndUnignored(t *testing.T) {
	dir := initRepo(t)

	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.key\n"), 0644); err != nil {
		t.Fatalf("Failed to write .gitignore: %v", err)
	}
	for _, name := range []string{"id.key", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	status := CheckExports(dir, []string{"id.key", "notes.txt"})
	if !status.IsRepo {
		t.Fatal("Expected repository")
	}
	if len(status.Ignored) != 1 || status.Ignored[0] != "id.key" {
		t.Errorf("Ignored = %v, want [id.key]", status.Ignored)
	}
	if len(status.Unignored) != 1 || status.Unignored[0] != "notes.txt" {
		t.Errorf("Unignored = %v, want [notes.txt]", status.Unignored)
	}

	out := FormatWarnings(status)
	if !strings.Contains(out, "notes.txt not in .gitignore") {
		t.Errorf("Unexpected warnings output: %q", out)
	}
	if strings.Contains(out, "id.key") {
		t.Errorf("Ignored file should not be reported: %q", out)
	}
}
