package fsops_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goetz-markgraf/maach-et/internal/fsops"
	"github.com/goetz-markgraf/maach-et/internal/safety"
)

// Shared sandbox root; fsops caches its roots for the whole process.
var sharedDir string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "fsops-tests-")
	if err != nil {
		panic(err)
	}
	if r, err := filepath.EvalSymlinks(dir); err == nil {
		dir = r
	}
	_ = os.Setenv("MAACHET_READ_ROOT", dir)
	_ = os.Setenv("MAACHET_WRITE_ROOT", dir)
	sharedDir = dir

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func rel(t *testing.T, elems ...string) string {
	return filepath.Join(append([]string{t.Name()}, elems...)...)
}

func mkdir(t *testing.T, elems ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(sharedDir, rel(t, elems...)), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var te safety.ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected ToolError, got %T: %v", err, err)
	}
	if te.Code != code {
		t.Fatalf("unexpected code: %s", te.Code)
	}
}

func TestReadFile_HappyPath(t *testing.T) {
	mkdir(t)
	want := "hello world"
	if err := os.WriteFile(filepath.Join(sharedDir, rel(t, "a.txt")), []byte(want), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	got, err := fsops.ReadFile(rel(t, "a.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != want {
		t.Fatalf("content mismatch: got %q want %q", got, want)
	}
}

func TestReadFile_DirectoryIsNotAFile(t *testing.T) {
	mkdir(t, "sub")
	_, err := fsops.ReadFile(rel(t, "sub"))
	requireCode(t, err, safety.CodeNotAFile)
}

func TestReadFile_Traversal(t *testing.T) {
	_, err := fsops.ReadFile("../../x")
	requireCode(t, err, safety.CodeOutsideSandbox)
}

func TestWriteFile_NestedAndOverwrite(t *testing.T) {
	p := rel(t, "nested", "dir", "out.txt")
	if err := fsops.WriteFile(p, "first"); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := fsops.WriteFile(p, "second"); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(sharedDir, p))
	if err != nil {
		t.Fatalf("verify read: %v", err)
	}
	if string(b) != "second" {
		t.Fatalf("content mismatch: got %q", string(b))
	}
}

func TestWriteFile_DeniedUnderGit(t *testing.T) {
	err := fsops.WriteFile(".git/HEAD", "ref: refs/heads/main\n")
	requireCode(t, err, safety.CodeDeniedWrite)
}

func TestAppendFile_CreatesThenAppends(t *testing.T) {
	p := rel(t, "log.txt")
	if err := fsops.AppendFile(p, "a\n"); err != nil {
		t.Fatalf("AppendFile: %v", err)
	}
	if err := fsops.AppendFile(p, "b\n"); err != nil {
		t.Fatalf("AppendFile: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(sharedDir, p))
	if err != nil {
		t.Fatalf("verify read: %v", err)
	}
	if string(b) != "a\nb\n" {
		t.Fatalf("content mismatch: got %q", string(b))
	}
}

func TestListDir_SortedWithDirSuffix(t *testing.T) {
	mkdir(t, "sub")
	for _, name := range []string{"b.txt", "a.txt"} {
		if err := os.WriteFile(filepath.Join(sharedDir, rel(t, name)), []byte("x"), 0o644); err != nil {
			t.Fatalf("prepare: %v", err)
		}
	}
	got, err := fsops.ListDir(rel(t))
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	want := []string{"a.txt", "b.txt", "sub/"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}

	empty, err := fsops.ListDir(rel(t, "sub"))
	if err != nil {
		t.Fatalf("ListDir(sub): %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty listing, got %v", empty)
	}
}

func TestListDir_FileIsNotADir(t *testing.T) {
	mkdir(t)
	if err := os.WriteFile(filepath.Join(sharedDir, rel(t, "f.txt")), []byte("x"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	_, err := fsops.ListDir(rel(t, "f.txt"))
	requireCode(t, err, safety.CodeNotADir)
}
