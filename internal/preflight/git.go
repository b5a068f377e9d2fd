// Package preflight checks the working tree for uncommitted changes before a
// session starts, so that edits made by tools can be told apart from the
// user's own.
package preflight

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// ErrNotARepo is returned by Commit outside a git work tree.
var ErrNotARepo = errors.New("not in a git repository")

// CommandFunc runs git with args in dir and returns its stdout.
type CommandFunc func(ctx context.Context, dir string, args ...string) ([]byte, error)

// Status describes the work tree.
type Status struct {
	InRepo bool
	// Files are the paths reported by `git status --porcelain`.
	Files []string
}

// Dirty reports whether there is anything to commit.
func (s Status) Dirty() bool { return s.InRepo && len(s.Files) > 0 }

type Git struct {
	Dir    string
	Run    CommandFunc
	Logger *zap.Logger
}

func New(dir string, logger *zap.Logger) *Git {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Git{Dir: dir, Run: execGit, Logger: logger}
}

func execGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.Bytes(), fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return stdout.Bytes(), fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.Bytes(), nil
}

// Check reports whether Dir is inside a git work tree and which files have
// uncommitted changes. Not being in a repository is not an error.
func (g *Git) Check(ctx context.Context) (Status, error) {
	if _, err := g.Run(ctx, g.Dir, "rev-parse", "--is-inside-work-tree"); err != nil {
		g.Logger.Debug("not a git work tree", zap.String("dir", g.Dir), zap.Error(err))
		return Status{}, nil
	}
	out, err := g.Run(ctx, g.Dir, "status", "--porcelain")
	if err != nil {
		return Status{InRepo: true}, err
	}
	return Status{InRepo: true, Files: parsePorcelain(string(out))}, nil
}

// parsePorcelain returns the path part of each `XY path` line.
func parsePorcelain(out string) []string {
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 4 {
			continue
		}
		files = append(files, line[3:])
	}
	return files
}

// Commit stages everything and commits it with msg.
func (g *Git) Commit(ctx context.Context, msg string) error {
	st, err := g.Check(ctx)
	if err != nil {
		return err
	}
	if !st.InRepo {
		return ErrNotARepo
	}
	if _, err := g.Run(ctx, g.Dir, "add", "--all"); err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}
	if _, err := g.Run(ctx, g.Dir, "commit", "-m", msg); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	g.Logger.Info("committed pending changes", zap.Int("files", len(st.Files)))
	return nil
}
