package utils

import (
	"os"

	git "github.com/go-git/go-git/v5"
)

func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && info.IsDir()
}

// FindGitRepoRoot walks up from path to the nearest directory containing a
// .git and returns the worktree root. The second result is false when path is
// not inside a repository.
func FindGitRepoRoot(path string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", false
	}
	return wt.Filesystem.Root(), true
}
