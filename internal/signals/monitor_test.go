package signals

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestMonitor(t *testing.T) (*Monitor, string) {
	t.Helper()
	dataDir := t.TempDir()
	m, err := NewMonitor(dataDir)
	if err != nil {
		t.Fatalf("NewMonitor failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m, filepath.Join(dataDir, "signals")
}

func TestShouldStopDetectsSignalFile(t *testing.T) {
	m, signalsDir := newTestMonitor(t)

	if m.ShouldStop() {
		t.Fatal("expected no stop signal initially")
	}

	// The stat fallback must see the file even without a watcher event.
	if err := os.WriteFile(filepath.Join(signalsDir, "stop"), nil, 0644); err != nil {
		t.Fatalf("write stop file: %v", err)
	}

	if !m.ShouldStop() {
		t.Error("expected stop signal after creating stop file")
	}
}

func TestPausedDetectsSignalFile(t *testing.T) {
	m, signalsDir := newTestMonitor(t)

	if m.Paused() {
		t.Fatal("expected no pause signal initially")
	}

	if err := os.WriteFile(filepath.Join(signalsDir, "pause"), nil, 0644); err != nil {
		t.Fatalf("write pause file: %v", err)
	}

	if !m.Paused() {
		t.Error("expected pause signal after creating pause file")
	}
}

func TestClearResetsSignals(t *testing.T) {
	m, signalsDir := newTestMonitor(t)

	os.WriteFile(filepath.Join(signalsDir, "stop"), nil, 0644)
	os.WriteFile(filepath.Join(signalsDir, "pause"), nil, 0644)

	if !m.ShouldStop() {
		t.Fatal("expected stop signal before clear")
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if m.ShouldStop() {
		t.Error("expected no stop signal after clear")
	}
	if m.Paused() {
		t.Error("expected no pause signal after clear")
	}
}

func TestClearWithoutSignalsIsNoop(t *testing.T) {
	m, _ := newTestMonitor(t)
	if err := m.Clear(); err != nil {
		t.Errorf("Clear on empty dir failed: %v", err)
	}
}
