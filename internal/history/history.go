package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Gyeom/jira-automation/internal/models"
)

// maxEntries caps the persisted history.
const maxEntries = 10

// Store keeps a short, newest-first history of created tickets. Re-creating
// a key moves it to the front instead of duplicating it.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []models.TicketHistoryEntry
}

// NewStore loads the history file when it exists. An empty path keeps the
// store in memory only.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading ticket history: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("error decoding ticket history: %w", err)
	}
	return s, nil
}

// Add puts an entry at the front, dropping any older entry with the same
// key and trimming to the cap.
func (s *Store) Add(entry models.TicketHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.TicketHistoryEntry, 0, len(s.entries)+1)
	kept = append(kept, entry)
	for _, e := range s.entries {
		if e.Key != entry.Key {
			kept = append(kept, e)
		}
	}
	if len(kept) > maxEntries {
		kept = kept[:maxEntries]
	}
	s.entries = kept

	return s.persistLocked()
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) []models.TicketHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	out := make([]models.TicketHistoryEntry, limit)
	copy(out, s.entries[:limit])
	return out
}

// Clear drops the whole history.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding ticket history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating history directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("error saving ticket history: %w", err)
	}
	return nil
}
