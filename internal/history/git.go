package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/logfields"
)

// GitSource answers history queries from a git repository containing the
// corpus. History is read once, along the first-parent chain from HEAD.
type GitSource struct {
	repo   *git.Repository
	prefix string // corpus directory relative to the worktree root

	once    sync.Once
	commits []commitChanges // newest first
	err     error
}

type commitChanges struct {
	when    time.Time
	changes []fileChange
}

type fileChange struct {
	from string // empty for an addition
	to   string // empty for a deletion
}

// OpenGit opens the repository enclosing corpusDir.
func OpenGit(corpusDir string) (*GitSource, error) {
	abs, err := filepath.Abs(corpusDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, corpusDir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	prefix, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(prefix, "..") {
		return nil, fmt.Errorf("%w: %s is outside the worktree", ErrUnavailable, corpusDir)
	}
	if prefix == "." {
		prefix = ""
	}

	return &GitSource{repo: repo, prefix: filepath.ToSlash(prefix)}, nil
}

// FileHistory follows path back through renames to its first addition.
func (s *GitSource) FileHistory(ctx context.Context, docPath string) (FileHistory, error) {
	s.once.Do(func() { s.commits, s.err = s.index(ctx) })
	if s.err != nil {
		return FileHistory{}, s.err
	}

	name := path.Join(s.prefix, docPath)
	var (
		h     FileHistory
		found bool
	)
	for _, c := range s.commits {
		for _, ch := range c.changes {
			if ch.to != name {
				continue
			}
			if !found {
				h.LastModified = c.when
				found = true
			}
			h.FirstAdded = c.when
			if ch.from == "" {
				return h, nil
			}
			name = ch.from
			break
		}
	}
	if !found {
		return FileHistory{}, fmt.Errorf("%w: %s", ErrNoHistory, docPath)
	}
	// History ends before the addition (shallow clone): earliest touch wins.
	return h, nil
}

func (s *GitSource) index(ctx context.Context) ([]commitChanges, error) {
	head, err := s.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: resolve HEAD: %w", ErrUnavailable, err)
	}
	commit, err := s.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var commits []commitChanges
	for commit != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		changes, parent, err := s.changesOf(ctx, commit)
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", commit.Hash, err)
		}
		commits = append(commits, commitChanges{when: commit.Author.When, changes: changes})
		commit = parent
	}

	slog.Debug("Indexed repository history", logfields.Count(len(commits)), logfields.Path(s.prefix))
	return commits, nil
}

// changesOf lists file changes between commit and its first parent, with
// rename detection. The root commit reports every file as added.
func (s *GitSource) changesOf(ctx context.Context, commit *object.Commit) ([]fileChange, *object.Commit, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, nil, err
	}

	if commit.NumParents() == 0 {
		var changes []fileChange
		err := tree.Files().ForEach(func(f *object.File) error {
			changes = append(changes, fileChange{to: f.Name})
			return nil
		})
		return changes, nil, err
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, nil, err
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, nil, err
	}

	diff, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, nil, err
	}
	changes := make([]fileChange, 0, len(diff))
	for _, ch := range diff {
		changes = append(changes, fileChange{from: ch.From.Name, to: ch.To.Name})
	}
	return changes, parent, nil
}

// IsUnavailable reports whether err means no history can be read at all.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
