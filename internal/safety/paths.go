// Package safety resolves tool-supplied paths against the workspace sandbox.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Error codes carried by ToolError.
const (
	CodeOutsideSandbox = "ERR_PATH_OUTSIDE_SANDBOX"
	CodeDeniedRead     = "ERR_DENIED_READ"
	CodeDeniedWrite    = "ERR_DENIED_WRITE"
	CodeNotAFile       = "ERR_NOT_A_FILE"
	CodeNotADir        = "ERR_NOT_A_DIR"
)

// ProtectedDirs are workspace-relative directories tools may neither read nor write.
// .maachet holds the conversation history, .agent the telemetry stream.
var ProtectedDirs = []string{".git", ".agent", ".maachet"}

// ToolError is a machine-readable policy violation, rendered as compact JSON.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// InitSandboxRoot resolves absolute sandbox roots for read and write operations.
// An empty readRoot defaults to the working directory, an empty writeRoot to readRoot.
func InitSandboxRoot(readRoot, writeRoot string) (absRead string, absWrite string, err error) {
	if readRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", "", fmt.Errorf("getwd: %w", err)
		}
		readRoot = cwd
	}
	if writeRoot == "" {
		writeRoot = readRoot
	}

	readRoot, err = filepath.Abs(readRoot)
	if err != nil {
		return "", "", fmt.Errorf("abs(readRoot): %w", err)
	}
	writeRoot, err = filepath.Abs(writeRoot)
	if err != nil {
		return "", "", fmt.Errorf("abs(writeRoot): %w", err)
	}

	// Roots that do not exist yet stay as plain absolute paths.
	if r, err := filepath.EvalSymlinks(readRoot); err == nil {
		readRoot = r
	}
	if w, err := filepath.EvalSymlinks(writeRoot); err == nil {
		writeRoot = w
	}
	return readRoot, writeRoot, nil
}

// ValidateRelPath resolves relPath against absRoot for reading. It rejects
// absolute inputs, parent traversal, symlink escapes and protected directories.
func ValidateRelPath(absRoot, relPath string) (string, error) {
	candidate, rel, err := resolve(absRoot, relPath)
	if err != nil {
		return "", err
	}
	if isProtected(rel) {
		return "", ToolError{Code: CodeDeniedRead, Message: "reads under " + strings.Join(ProtectedDirs, ", ") + " are not allowed"}
	}
	return candidate, nil
}

// ValidateWritePath is ValidateRelPath for writes. The sandbox root itself is
// never a valid write target.
func ValidateWritePath(absRoot, relPath string) (string, error) {
	candidate, rel, err := resolve(absRoot, relPath)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "", ToolError{Code: CodeNotAFile, Message: "write target must be a file path"}
	}
	if isProtected(rel) {
		return "", ToolError{Code: CodeDeniedWrite, Message: "writes under " + strings.Join(ProtectedDirs, ", ") + " are not allowed"}
	}
	return candidate, nil
}

// resolve joins relPath under absRoot, follows symlinks as far as they exist,
// and returns the candidate plus its slash-separated path relative to the root.
func resolve(absRoot, relPath string) (string, string, error) {
	if filepath.IsAbs(relPath) {
		return "", "", ToolError{Code: CodeOutsideSandbox, Message: "absolute paths are not allowed"}
	}
	cleaned := filepath.Clean(relPath)
	candidate := filepath.Join(absRoot, cleaned)

	// Resolve the whole candidate if it exists, else its parent so a symlinked
	// ancestor cannot smuggle a new file outside the root.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else if resolvedParent, err := filepath.EvalSymlinks(filepath.Dir(candidate)); err == nil {
		candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
	}

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", "", ToolError{Code: CodeOutsideSandbox, Message: "requested path resolves outside the sandbox root"}
	}
	return candidate, filepath.ToSlash(rel), nil
}

func isProtected(rel string) bool {
	for _, dir := range ProtectedDirs {
		if rel == dir || strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}
	return false
}
