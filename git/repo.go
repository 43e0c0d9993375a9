// Package git retrieves the three revisions of a merge from a git
// repository via the git CLI, with a compressed in-memory blob cache
// and a git-dir watcher for invalidation.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"mergeview/logger"
	"mergeview/types"
)

// Stage numbers in the index during a merge.
const (
	StageBase   = 1
	StageOurs   = 2
	StageTheirs = 3
)

// Repo is a handle on one git repository.
type Repo struct {
	root   string
	gitDir string
	cache  *BlobCache
}

// Open locates the repository containing dir.
func Open(ctx context.Context, dir string) (*Repo, error) {
	root, err := output(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	gitDir, err := output(ctx, dir, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("resolve git dir: %w", err)
	}
	return &Repo{
		root:   strings.TrimRight(root, "\n"),
		gitDir: strings.TrimRight(gitDir, "\n"),
		cache:  NewBlobCache(64),
	}, nil
}

func (r *Repo) Root() string { return r.root }

// Dir returns the repository's git directory, the place to watch for
// index and merge-state changes.
func (r *Repo) Dir() string { return r.gitDir }

// MergeInProgress reports whether a merge is underway.
func (r *Repo) MergeInProgress() bool {
	_, err := os.Stat(filepath.Join(r.gitDir, "MERGE_HEAD"))
	return err == nil
}

// ConflictedFiles lists the files with unmerged index entries, each
// with its three stage blob hashes.
func (r *Repo) ConflictedFiles(ctx context.Context) ([]types.MergeFile, error) {
	out, err := r.run(ctx, "ls-files", "-u")
	if err != nil {
		return nil, err
	}
	return parseUnmerged(out), nil
}

// parseUnmerged parses `git ls-files -u` output: one
// "<mode> <hash> <stage>\t<path>" line per stage per file.
func parseUnmerged(out string) []types.MergeFile {
	byPath := make(map[string]*types.MergeFile)
	var order []string

	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		meta, path, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		fields := strings.Fields(meta)
		if len(fields) != 3 {
			continue
		}
		hash, stage := fields[1], fields[2]

		f, seen := byPath[path]
		if !seen {
			f = &types.MergeFile{Path: path, HasStages: true}
			byPath[path] = f
			order = append(order, path)
		}
		switch stage {
		case "1":
			f.BaseRev = hash
		case "2":
			f.LeftRev = hash
		case "3":
			f.RightRev = hash
		}
	}

	files := make([]types.MergeFile, 0, len(order))
	for _, path := range order {
		files = append(files, *byPath[path])
	}
	return files
}

// Revisions loads the three texts of a conflicted file. Missing stages
// (add/add or delete conflicts) yield empty content for that side.
func (r *Repo) Revisions(ctx context.Context, f types.MergeFile) (types.Revisions, error) {
	var revs types.Revisions
	var err error

	load := func(hash string) (string, error) {
		if hash == "" {
			return "", nil
		}
		return r.BlobContent(ctx, hash)
	}

	if revs.Base, err = load(f.BaseRev); err != nil {
		return revs, fmt.Errorf("base revision of %s: %w", f.Path, err)
	}
	if revs.Left, err = load(f.LeftRev); err != nil {
		return revs, fmt.Errorf("left revision of %s: %w", f.Path, err)
	}
	if revs.Right, err = load(f.RightRev); err != nil {
		return revs, fmt.Errorf("right revision of %s: %w", f.Path, err)
	}
	return revs, nil
}

// BlobContent returns a blob's content by hash, through the cache.
// Blob hashes are immutable, so cached entries never go stale.
func (r *Repo) BlobContent(ctx context.Context, hash string) (string, error) {
	if content, ok := r.cache.Get(hash); ok {
		return content, nil
	}
	content, err := r.raw(ctx, "cat-file", "blob", hash)
	if err != nil {
		return "", err
	}
	r.cache.Put(hash, content)
	return content, nil
}

// RevContent returns the content of path at an arbitrary revision.
func (r *Repo) RevContent(ctx context.Context, rev, path string) (string, error) {
	hash, err := r.run(ctx, "rev-parse", rev+":"+path)
	if err != nil {
		return "", fmt.Errorf("resolve %s:%s: %w", rev, path, err)
	}
	return r.BlobContent(ctx, hash)
}

// StageContent returns the index-stage content of a conflicted path.
func (r *Repo) StageContent(ctx context.Context, path string, stage int) (string, error) {
	return r.raw(ctx, "show", fmt.Sprintf(":%d:%s", stage, path))
}

// MergeBase finds the common ancestor of two revisions.
func (r *Repo) MergeBase(ctx context.Context, a, b string) (string, error) {
	return r.run(ctx, "merge-base", a, b)
}

// InvalidateCache drops all cached blobs. The watcher calls this when
// the index or merge state changes.
func (r *Repo) InvalidateCache() {
	r.cache.Clear()
}

// run executes git in the repository root and returns stdout with the
// trailing newline stripped. Metadata commands only; file content goes
// through raw, which keeps the output byte-exact.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	out, err := r.raw(ctx, args...)
	return strings.TrimRight(out, "\n"), err
}

func (r *Repo) raw(ctx context.Context, args ...string) (string, error) {
	return output(ctx, r.root, args...)
}

func output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return "", fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(ee.Stderr)))
		}
		logger.Debug("git %s failed: %v", args[0], err)
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}
