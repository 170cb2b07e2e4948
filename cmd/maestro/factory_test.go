package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSignalMonitorClearsStaleSignalsAtStartup(t *testing.T) {
	dataDir := t.TempDir()
	signalsDir := filepath.Join(dataDir, "signals")
	if err := os.MkdirAll(signalsDir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	for _, name := range []string{"stop", "pause"} {
		if err := os.WriteFile(filepath.Join(signalsDir, name), nil, 0644); err != nil {
			t.Fatalf("WriteFile %s failed: %v", name, err)
		}
	}

	monitor, err := newSignalMonitor(dataDir)
	if err != nil {
		t.Fatalf("newSignalMonitor failed: %v", err)
	}
	defer monitor.Close()

	if monitor.ShouldStop() {
		t.Error("stop file from a previous run should not abort new turns")
	}
	if monitor.Paused() {
		t.Error("pause file from a previous run should not pause new turns")
	}
}
