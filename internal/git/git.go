package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// ExportStatus describes exported files relative to the enclosing git work tree
type ExportStatus struct {
	IsRepo    bool
	Tracked   []string // plaintext tracked by git (bad)
	Unignored []string // plaintext not covered by .gitignore (warning)
	Ignored   []string
}

// IsGitRepo checks if the working directory is inside a git repository
func IsGitRepo(workDir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	return cmd.Run() == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(workDir, path string) bool {
	cmd := exec.Command("git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if a file is ignored by git (handles all .gitignore files)
func IsIgnored(workDir, path string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", "--", path)
	cmd.Dir = workDir
	// exit code 0 means ignored
	return cmd.Run() == nil
}

// CheckExports classifies exported paths (relative to workDir).
// Outside a work tree the status is empty and IsRepo is false.
func CheckExports(workDir string, paths []string) *ExportStatus {
	status := &ExportStatus{}
	if !IsGitRepo(workDir) {
		return status
	}
	status.IsRepo = true

	for _, p := range paths {
		switch {
		case IsTracked(workDir, p):
			status.Tracked = append(status.Tracked, p)
		case IsIgnored(workDir, p):
			status.Ignored = append(status.Ignored, p)
		default:
			status.Unignored = append(status.Unignored, p)
		}
	}
	return status
}

// HasWarnings reports whether any export needs the user's attention
func (s *ExportStatus) HasWarnings() bool {
	return len(s.Tracked) > 0 || len(s.Unignored) > 0
}

// FormatWarnings formats export warnings for display. Empty when there is
// nothing to report.
func FormatWarnings(status *ExportStatus) string {
	if status == nil || !status.IsRepo || !status.HasWarnings() {
		return ""
	}

	var result strings.Builder
	result.WriteString("\nGit:\n")
	for _, file := range status.Tracked {
		result.WriteString(fmt.Sprintf("   error: %s is tracked by git (run: git rm --cached %s)\n", file, file))
	}
	for _, file := range status.Unignored {
		result.WriteString(fmt.Sprintf("   warning: %s not in .gitignore\n", file))
	}
	return result.String()
}
