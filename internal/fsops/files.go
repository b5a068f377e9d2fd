package fsops

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/goetz-markgraf/maach-et/internal/safety"
)

// ReadFile returns the contents of a file under the read root.
func ReadFile(relPath string) (string, error) {
	readRoot, _, err := getRoots()
	if err != nil {
		return "", err
	}
	absPath, err := safety.ValidateRelPath(readRoot, relPath)
	if err != nil {
		return "", err
	}
	return readRegular(absPath)
}

// ReadWritable returns the contents of a file under the write root, for
// read-modify-write edits that must land on the file they read.
func ReadWritable(relPath string) (string, error) {
	_, writeRoot, err := getRoots()
	if err != nil {
		return "", err
	}
	absPath, err := safety.ValidateWritePath(writeRoot, relPath)
	if err != nil {
		return "", err
	}
	return readRegular(absPath)
}

func readRegular(absPath string) (string, error) {
	fi, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", safety.ToolError{Code: safety.CodeNotAFile, Message: "path is a directory"}
	}
	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteFile creates or truncates a file under the write root, creating parent
// directories as needed.
func WriteFile(relPath, content string) error {
	absPath, err := writeTarget(relPath)
	if err != nil {
		return err
	}
	return os.WriteFile(absPath, []byte(content), 0o644)
}

// AppendFile appends content to a file under the write root, creating it if missing.
func AppendFile(relPath, content string) error {
	absPath, err := writeTarget(relPath)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(absPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ListDir lists the entries of a directory under the read root, sorted by
// name, with directories suffixed by "/". An empty path lists the root.
func ListDir(relDir string) ([]string, error) {
	readRoot, _, err := getRoots()
	if err != nil {
		return nil, err
	}
	if relDir == "" {
		relDir = "."
	}
	absDir, err := safety.ValidateRelPath(readRoot, relDir)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(absDir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, safety.ToolError{Code: safety.CodeNotADir, Message: "path is not a directory"}
	}
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func writeTarget(relPath string) (string, error) {
	_, writeRoot, err := getRoots()
	if err != nil {
		return "", err
	}
	absPath, err := safety.ValidateWritePath(writeRoot, relPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", err
	}
	return absPath, nil
}
