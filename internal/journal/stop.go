package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// stopFileName is the marker file whose presence halts all editing.
const stopFileName = "STOP"

// StopMarker manages the emergency stop marker in a data directory.
// The watch command creates the marker when an administrator posts a
// stop request; every editing command checks it before each save.
type StopMarker struct {
	path string
}

// NewStopMarker returns a marker rooted in the given data directory.
func NewStopMarker(dir string) *StopMarker {
	return &StopMarker{path: filepath.Join(dir, stopFileName)}
}

// Path returns the marker file location, for log messages.
func (s *StopMarker) Path() string {
	return s.path
}

// RequestStop creates the marker, recording who asked and when.
// Requesting a stop that is already in force is not an error.
func (s *StopMarker) RequestStop(requestedBy string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create stop marker directory: %w", err)
	}
	content := fmt.Sprintf("requested by %s at %s\n", requestedBy, time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(s.path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write stop marker: %w", err)
	}
	return nil
}

// StopRequested reports whether the marker exists. Errors reading the
// marker count as a stop: when in doubt, do not edit.
func (s *StopMarker) StopRequested() bool {
	_, err := os.Stat(s.path)
	return !os.IsNotExist(err)
}

// ClearStop removes the marker, re-enabling edits. Clearing an absent
// marker is not an error.
func (s *StopMarker) ClearStop() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stop marker: %w", err)
	}
	return nil
}
