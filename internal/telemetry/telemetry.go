// Package telemetry writes structured JSONL events for offline inspection.
//
// Emission is off unless MAACHET_OBSERVE_JSON=1 or Enable(true) was called.
// Events go to <dir>/events.jsonl where dir is MAACHET_ARTIFACTS_DIR or ".agent".
// Events carry sizes and counts only, never raw prompt, reply or tool payloads.
package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const defaultDir = ".agent"

var (
	enabled atomic.Bool
	mu      sync.Mutex
	logger  = zap.NewNop()
)

// Enable switches emission on or off for the rest of the process.
func Enable(on bool) { enabled.Store(on) }

// SetLogger routes emission failures to l.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Enabled reports whether events are currently written.
func Enabled() bool {
	return enabled.Load() || os.Getenv("MAACHET_OBSERVE_JSON") == "1"
}

// Dir returns the directory events are written to.
func Dir() string {
	if d := os.Getenv("MAACHET_ARTIFACTS_DIR"); d != "" {
		return d
	}
	return defaultDir
}

// Emit appends one JSON line with the given fields plus "event" and "time".
// Failures are logged and otherwise ignored.
func Emit(name string, fields map[string]any) {
	if !Enabled() {
		return
	}

	// Copy so callers' maps are not mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	mu.Lock()
	defer mu.Unlock()

	b, err := json.Marshal(m)
	if err != nil {
		logger.Warn("telemetry: marshal", zap.String("event", name), zap.Error(err))
		return
	}

	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("telemetry: mkdir", zap.String("dir", dir), zap.Error(err))
		return
	}
	path := filepath.Join(dir, "events.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.Warn("telemetry: open", zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		logger.Warn("telemetry: write", zap.String("path", path), zap.Error(err))
	}
}

