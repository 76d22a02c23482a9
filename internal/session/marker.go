package session

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoMarker is returned by Read when no login has been persisted.
var ErrNoMarker = errors.New("no session marker")

// Marker is the plain-text file holding the logged-in username.
type Marker struct {
	path string
}

// NewMarker returns a marker stored at path.
func NewMarker(path string) *Marker {
	return &Marker{path: path}
}

// Path returns the marker location.
func (m *Marker) Path() string {
	return m.path
}

// Read returns the persisted username.
func (m *Marker) Read() (string, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoMarker
		}
		return "", fmt.Errorf("failed to read session marker: %w", err)
	}

	username := strings.TrimSpace(string(data))
	if username == "" {
		return "", ErrNoMarker
	}
	return username, nil
}

// Write overwrites the marker with username.
func (m *Marker) Write(username string) error {
	if err := os.WriteFile(m.path, []byte(username), 0o600); err != nil {
		return fmt.Errorf("failed to write session marker: %w", err)
	}
	return nil
}

// Remove deletes the marker. A missing marker is not an error.
func (m *Marker) Remove() error {
	if err := os.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session marker: %w", err)
	}
	return nil
}
