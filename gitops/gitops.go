// Package gitops drives git as a subprocess against the grading workspace:
// cloning/fetching student and template repositories, and rendering
// log/diff text for the controller's Log and Diff panes.
package gitops

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RepoPath returns the absolute on-disk path for repo inside workspace.
// Repositories are laid out flatly (workspace/<repo>), following spec's
// "<prefix>-<github>" and "<template>" naming rather than the teacher's
// host/project/name nesting, since this domain has no notion of a remote
// host or project beyond a single GitHub organization.
func RepoPath(workspace, repo string) string {
	path, err := filepath.Abs(filepath.Join(workspace, repo))
	if err != nil {
		panic(fmt.Sprintf("error determining absolute repository path: %v", err))
	}

	return path
}

// StatusFunc receives status lines as git operations progress, mirroring the
// teacher's pattern of streaming a line per lifecycle step into an output
// channel rather than returning one at the end.
type StatusFunc func(line string)

// Sync brings workspace/repo up to date with origin/branch: clone if the
// checkout doesn't exist yet, otherwise fetch; then clean, hard-reset, and
// checkout. Partial state is left on disk on failure, since a later Sync
// call is expected to converge it.
func Sync(ctx context.Context, workspace, repo, remoteURL, branch string, status StatusFunc) error {
	path := RepoPath(workspace, repo)

	if _, err := os.Stat(filepath.Join(path, ".git")); os.IsNotExist(err) {
		status(fmt.Sprintf("Cloning %s begin", repo))

		if err := run(ctx, workspace, "git", "clone", remoteURL, repo); err != nil {
			status(fmt.Sprintf("Cloning %s failed", repo))
			return err
		}

		status(fmt.Sprintf("Cloning %s done", repo))
	} else {
		status(fmt.Sprintf("Fetching %s begin", repo))

		if err := run(ctx, path, "git", "fetch", "origin", branch); err != nil {
			status(fmt.Sprintf("Fetching %s failed", repo))
			return err
		}

		status(fmt.Sprintf("Fetching %s done", repo))
	}

	if err := run(ctx, path, "git", "clean", "-f"); err != nil {
		status(fmt.Sprintf("Resetting %s failed", repo))
		return err
	}

	if err := run(ctx, path, "git", "reset", "origin/"+branch, "--hard"); err != nil {
		status(fmt.Sprintf("Resetting %s failed", repo))
		return err
	}

	if err := run(ctx, path, "git", "checkout", branch); err != nil {
		status(fmt.Sprintf("Checkout %s failed", repo))
		return err
	}

	return nil
}

// Log returns `git log` output for workspace/repo, tabs normalized to four
// spaces for display in a fixed-width viewport.
func Log(ctx context.Context, workspace, repo string) (string, error) {
	return capture(ctx, RepoPath(workspace, repo), "git", "log")
}

// Diff returns `git log -p` scoped to pathspec for workspace/repo, same
// tab-normalisation as Log.
func Diff(ctx context.Context, workspace, repo, pathspec string) (string, error) {
	return capture(ctx, RepoPath(workspace, repo), "git", "log", "-p", "--", pathspec)
}

// DiffResults diffs freshBytes against resultsPath on disk, substituting
// /dev/null when resultsPath doesn't exist, and reporting the literal
// "No difference" for an empty diff.
func DiffResults(ctx context.Context, resultsPath string, freshBytes []byte) (string, error) {
	existing := resultsPath
	if _, err := os.Stat(resultsPath); os.IsNotExist(err) {
		existing = "/dev/null"
	}

	cmd := exec.CommandContext(ctx, "git", "diff", "--no-index", "--minimal", existing, "-")
	cmd.Stdin = bytes.NewReader(freshBytes)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = nil

	// git diff --no-index exits 1 when inputs differ; that's not a failure.
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return "", err
		}
	}

	text := normalizeTabs(out.String())
	if strings.TrimSpace(text) == "" {
		return "No difference", nil
	}

	return text, nil
}

func run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	return cmd.Run()
}

func capture(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return normalizeTabs(string(out)), nil
}

func normalizeTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
