package tools_test

import (
	"os"
	"path/filepath"
	"testing"
)

var sharedDir string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tools-tests-")
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

// rel builds a per-test relative path.
func rel(t *testing.T, elems ...string) string {
	return filepath.Join(append([]string{t.Name()}, elems...)...)
}

func ptr(s string) *string { return &s }

func writeFixture(t *testing.T, name, content string) {
	t.Helper()
	p := filepath.Join(sharedDir, rel(t, name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(sharedDir, rel(t, name)))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(b)
}
