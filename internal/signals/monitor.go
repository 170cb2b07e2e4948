// Package signals provides file-based run control: dropping a "stop" or
// "pause" file into the signals directory aborts or pauses in-flight turns
// at the next step boundary.
package signals

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

const (
	stopFile  = "stop"
	pauseFile = "pause"
)

// Monitor watches a signals directory for control files. A watcher delivers
// signals promptly; signal checks also stat the files directly so the
// monitor degrades to polling when a watcher cannot be created.
type Monitor struct {
	signalsDir string

	mu          sync.RWMutex
	stopSignal  bool
	pauseSignal bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewMonitor creates a monitor for dataDir/signals, creating the directory
// if needed.
func NewMonitor(dataDir string) (*Monitor, error) {
	signalsDir := filepath.Join(dataDir, "signals")
	if err := os.MkdirAll(signalsDir, 0755); err != nil {
		return nil, err
	}

	m := &Monitor{
		signalsDir: signalsDir,
		done:       make(chan struct{}),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Continue without watcher; ShouldStop stats the files directly.
		return m, nil
	}
	if err := watcher.Add(signalsDir); err != nil {
		watcher.Close()
		return m, nil
	}
	m.watcher = watcher

	go m.watch()
	return m, nil
}

// watch records stop/pause file creations as they happen.
func (m *Monitor) watch() {
	for {
		select {
		case <-m.done:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			m.mu.Lock()
			switch filepath.Base(event.Name) {
			case stopFile:
				m.stopSignal = true
			case pauseFile:
				m.pauseSignal = true
			}
			m.mu.Unlock()
		case <-m.watcher.Errors:
			// Keep watching; signal checks fall back to stat.
		}
	}
}

// ShouldStop reports whether a stop signal was raised.
func (m *Monitor) ShouldStop() bool {
	m.mu.RLock()
	stopped := m.stopSignal
	m.mu.RUnlock()
	if stopped {
		return true
	}

	if _, err := os.Stat(filepath.Join(m.signalsDir, stopFile)); err == nil {
		m.mu.Lock()
		m.stopSignal = true
		m.mu.Unlock()
		return true
	}
	return false
}

// Paused reports whether a pause signal was raised.
func (m *Monitor) Paused() bool {
	m.mu.RLock()
	paused := m.pauseSignal
	m.mu.RUnlock()
	if paused {
		return true
	}

	_, err := os.Stat(filepath.Join(m.signalsDir, pauseFile))
	return err == nil
}

// Clear removes any present signal files and resets the recorded state.
func (m *Monitor) Clear() error {
	m.mu.Lock()
	m.stopSignal = false
	m.pauseSignal = false
	m.mu.Unlock()

	for _, name := range []string{stopFile, pauseFile} {
		if err := os.Remove(filepath.Join(m.signalsDir, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Close stops the watcher.
func (m *Monitor) Close() error {
	close(m.done)
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}
