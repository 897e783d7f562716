// Package git fetches remote repositories into a temporary directory so
// they can be digested like a local tree.
package git

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/KnockOutEZ/codedigest/internal/logging"
)

type CloneOptions struct {
	URL    string
	Branch string
	// TempDir is the parent of the clone directory; empty uses the system default.
	TempDir  string
	Progress io.Writer
	Logger   *zap.Logger
}

// Repository is a shallow clone that lives until Close.
type Repository struct {
	url       string
	localPath string
}

var shorthand = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// IsRemoteURL reports whether s names a remote repository rather than a local path.
func IsRemoteURL(s string) bool {
	for _, prefix := range []string{"https://", "http://", "ssh://", "git://", "git@"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// NormalizeURL expands the "owner/repo" shorthand to a GitHub HTTPS URL and
// leaves every other value untouched.
func NormalizeURL(s string) string {
	s = strings.TrimSpace(s)
	if !IsRemoteURL(s) && shorthand.MatchString(s) {
		return "https://github.com/" + strings.TrimSuffix(s, ".git") + ".git"
	}
	return s
}

// Clone makes a depth-1 single-branch clone of opts.URL. A branch name that
// is not found is retried as a tag.
func Clone(ctx context.Context, opts CloneOptions) (*Repository, error) {
	logger := logging.OrNop(opts.Logger)
	url := NormalizeURL(opts.URL)

	tempDir, err := os.MkdirTemp(opts.TempDir, "codedigest-repo-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}

	cloneOpts := &git.CloneOptions{
		URL:          url,
		Progress:     opts.Progress,
		SingleBranch: true,
		Depth:        1,
	}
	if opts.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
	}

	logger.Info("Cloning repository", zap.String("url", url), zap.String("branch", opts.Branch))
	_, err = git.PlainCloneContext(ctx, tempDir, false, cloneOpts)
	if err != nil && opts.Branch != "" && ctx.Err() == nil {
		logger.Debug("Branch not found, trying tag", zap.String("ref", opts.Branch), zap.Error(err))
		if rmErr := resetDir(tempDir); rmErr != nil {
			os.RemoveAll(tempDir)
			return nil, rmErr
		}
		cloneOpts.ReferenceName = plumbing.NewTagReferenceName(opts.Branch)
		_, err = git.PlainCloneContext(ctx, tempDir, false, cloneOpts)
	}
	if err != nil {
		os.RemoveAll(tempDir)
		return nil, fmt.Errorf("failed to clone repository: %w", err)
	}

	return &Repository{url: url, localPath: tempDir}, nil
}

// Path returns the working tree of the clone.
func (r *Repository) Path() string {
	return r.localPath
}

// Close deletes the clone.
func (r *Repository) Close() error {
	if r.localPath == "" {
		return nil
	}
	return os.RemoveAll(r.localPath)
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
