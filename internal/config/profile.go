package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Profile is a named snapshot of the full 64-entry table, stored as JSON so
// mappings can be backed up and shared between units.
type Profile struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Entries [NumEntries]Entry `json:"entries"`
}

// profilesDir returns the platform-appropriate profile directory.
func profilesDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "quadbank", "profiles"), nil
}

// ExportProfile snapshots the current table under a fresh id.
func (s *Store) ExportProfile(name string) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Profile{
		ID:      uuid.New().String(),
		Name:    name,
		Entries: s.entries,
	}
}

// ApplyProfile writes every entry of the profile into the table and the
// persisted store.
func (s *Store) ApplyProfile(p Profile) error {
	for i, e := range p.Entries {
		if err := s.Save(i/PerBank, i%PerBank, e); err != nil {
			return fmt.Errorf("apply entry %d: %w", i, err)
		}
	}
	return nil
}

// SaveProfile writes the profile to the profile directory.
func SaveProfile(p Profile) (string, error) {
	dir, err := profilesDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, p.ID+".json")
	return path, os.WriteFile(path, data, 0644)
}

// LoadProfile reads a profile from an arbitrary path.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
