package services

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/yargevad/filepathx"

	"docstitch/internal/cost"
	"docstitch/internal/utils"
)

// extraIgnoreFile holds additional ignore patterns, one per line, gitignore
// syntax, looked up next to the repository's .gitignore.
const extraIgnoreFile = ".docstitchignore"

// ScanService walks a codebase, filters ignored paths and hands every
// eligible Python file to the file service. Per-file failures are counted
// and logged; only an unreadable root aborts the scan.
type ScanService struct {
	files *FileService

	// only, when non-empty, restricts the scan to files matching this
	// recursive glob relative to the target directory.
	only string
}

func NewScanService(files *FileService, only string) *ScanService {
	return &ScanService{files: files, only: only}
}

// ScanResult summarizes one run.
type ScanResult struct {
	FilesProcessed int
	FilesFailed    int
	TotalCost      float64
}

// Scan processes every eligible file under dir. The returned error is
// non-nil only for fatal-at-startup conditions; per-file failures are
// reported through ScanResult.FilesFailed.
func (s *ScanService) Scan(ctx context.Context, dir string) (*ScanResult, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if !utils.DirectoryExists(dir) {
		return nil, fmt.Errorf("cannot read target directory %s", dir)
	}

	matcher, repoRoot := s.loadIgnoreRules(dir)

	paths, err := s.collectFiles(dir)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{}
	var ledger cost.Ledger
	for _, path := range paths {
		if isIgnored(matcher, repoRoot, path) {
			slog.Debug("ignored", "file", path)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result.FilesProcessed++
		fileCost, err := s.files.ProcessFile(ctx, path)
		ledger.Add(fileCost)
		if err != nil {
			result.FilesFailed++
			slog.Error("file failed", "file", path, "error", err)
		}
	}

	result.TotalCost = ledger.Total()
	slog.Info(fmt.Sprintf("Codebase cost: $%.4f", result.TotalCost))
	return result, nil
}

// collectFiles lists the .py files to visit, either by walking the tree or,
// when --only is set, by expanding the recursive glob.
func (s *ScanService) collectFiles(dir string) ([]string, error) {
	if s.only != "" {
		matches, err := filepathx.Glob(filepath.Join(dir, s.only))
		if err != nil {
			return nil, fmt.Errorf("expanding glob %s: %w", s.only, err)
		}
		var paths []string
		for _, m := range matches {
			if strings.HasSuffix(m, ".py") {
				paths = append(paths, m)
			}
		}
		return paths, nil
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".py") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return paths, nil
}

// loadIgnoreRules resolves the nearest git root above dir and builds a
// matcher from its ignore files. No repository, or no .gitignore, simply
// means nothing is ignored.
func (s *ScanService) loadIgnoreRules(dir string) (gitignore.Matcher, string) {
	repoRoot, ok := utils.FindGitRepoRoot(dir)
	if !ok {
		slog.Debug("not inside a git repository, nothing ignored", "dir", dir)
		return nil, ""
	}

	patterns, err := gitignore.ReadPatterns(osfs.New(repoRoot), nil)
	if err != nil {
		slog.Warn("could not read ignore rules", "root", repoRoot, "error", err)
		patterns = nil
	}

	// Project-specific exclusions on top of git's.
	extraPath := filepath.Join(repoRoot, extraIgnoreFile)
	if lines, err := utils.ReadNonEmptyLines(extraPath); err == nil {
		for _, line := range lines {
			patterns = append(patterns, gitignore.ParsePattern(line, nil))
		}
	}

	if len(patterns) == 0 {
		return nil, repoRoot
	}
	return gitignore.NewMatcher(patterns), repoRoot
}

func isIgnored(matcher gitignore.Matcher, repoRoot, path string) bool {
	if matcher == nil {
		return false
	}
	rel, err := filepath.Rel(repoRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), false)
}
