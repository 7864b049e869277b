package templates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/google/uuid"
)

// Store owns the persisted subtask templates and their active-id set. Active
// membership is tracked separately from existence: a template can exist but
// be inactive. The store assumes a single writer; last write wins.
type Store struct {
	mu        sync.RWMutex
	path      string
	templates []models.SubtaskTemplate
	activeIDs map[string]struct{}
}

type storeState struct {
	Templates         []models.SubtaskTemplate `json:"templates"`
	ActiveTemplateIDs []string                 `json:"active_template_ids"`
}

// NewStore loads the template file when it exists. An empty path keeps the
// store in memory only, which the tests rely on.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:      path,
		activeIDs: make(map[string]struct{}),
	}

	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading template store: %w", err)
	}

	var state storeState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("error decoding template store: %w", err)
	}

	s.templates = state.Templates
	for _, id := range state.ActiveTemplateIDs {
		s.activeIDs[id] = struct{}{}
	}
	return s, nil
}

// Add stores a template, assigning a stable id when none is supplied.
// Templates flagged autoApply are activated immediately.
func (s *Store) Add(template models.SubtaskTemplate) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	s.templates = append(s.templates, template)
	if template.AutoApply {
		s.activeIDs[template.ID] = struct{}{}
	}

	if err := s.persistLocked(); err != nil {
		// Keep memory and disk in agreement when the write fails.
		s.templates = s.templates[:len(s.templates)-1]
		delete(s.activeIDs, template.ID)
		return "", err
	}
	return template.ID, nil
}

// Update replaces an existing template in place.
func (s *Store) Update(template models.SubtaskTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.templates {
		if s.templates[i].ID == template.ID {
			s.templates[i] = template
			return s.persistLocked()
		}
	}
	return fmt.Errorf("template %s not found", template.ID)
}

// Delete removes a template and its active-set membership.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.templates[:0]
	for _, t := range s.templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.templates = kept
	delete(s.activeIDs, id)
	return s.persistLocked()
}

// SetActive toggles a template's active-set membership.
func (s *Store) SetActive(id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if active {
		s.activeIDs[id] = struct{}{}
	} else {
		delete(s.activeIDs, id)
	}
	return s.persistLocked()
}

// All returns every template regardless of active state.
func (s *Store) All() []models.SubtaskTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SubtaskTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

// Active returns only the templates present in the active-id set.
func (s *Store) Active() []models.SubtaskTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.SubtaskTemplate
	for _, t := range s.templates {
		if _, ok := s.activeIDs[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out
}

// IsActive reports a template's active-set membership.
func (s *Store) IsActive(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.activeIDs[id]
	return ok
}

// ForProject returns the active templates that either carry no project scope
// or match the given key.
func (s *Store) ForProject(projectKey string) []models.SubtaskTemplate {
	var out []models.SubtaskTemplate
	for _, t := range s.Active() {
		if t.ProjectKey == "" || t.ProjectKey == projectKey {
			out = append(out, t)
		}
	}
	return out
}

// ForIssueType returns the active templates with an exact issue-type match.
func (s *Store) ForIssueType(issueType string) []models.SubtaskTemplate {
	var out []models.SubtaskTemplate
	for _, t := range s.Active() {
		if t.IssueType == issueType {
			out = append(out, t)
		}
	}
	return out
}

// Find resolves a template by id or, failing that, by name.
func (s *Store) Find(idOrName string) (models.SubtaskTemplate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.templates {
		if t.ID == idOrName {
			return t, true
		}
	}
	for _, t := range s.templates {
		if t.Name == idOrName {
			return t, true
		}
	}
	return models.SubtaskTemplate{}, false
}

// SeedDefaults populates the built-in templates when the store is empty.
// Seeding is an explicit initialization step, never a side effect of reads.
// All defaults are activated.
func (s *Store) SeedDefaults() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.templates) > 0 {
		return 0, nil
	}

	defaults := defaultTemplates()
	for _, t := range defaults {
		s.templates = append(s.templates, t)
		s.activeIDs[t.ID] = struct{}{}
	}
	if err := s.persistLocked(); err != nil {
		return 0, err
	}
	return len(defaults), nil
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}

	state := storeState{
		Templates:         s.templates,
		ActiveTemplateIDs: make([]string, 0, len(s.activeIDs)),
	}
	for id := range s.activeIDs {
		state.ActiveTemplateIDs = append(state.ActiveTemplateIDs, id)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding template store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating template store directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("error saving template store: %w", err)
	}
	return nil
}
