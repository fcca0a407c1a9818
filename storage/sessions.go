// Package storage persists conversation sessions and the command journal.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"maestro/model"

	"github.com/google/uuid"
)

// Session is one saved conversation: the bounded turn window plus the
// provider/model it was running against when saved.
type Session struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Provider  string          `json:"provider"`
	Model     string          `json:"model"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Turns     []model.Message `json:"turns"`
}

// SessionMetadata is a lightweight version of Session for listing
type SessionMetadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	TurnCount int       `json:"turn_count"`
}

// SessionStorage handles session persistence
type SessionStorage struct {
	sessionsDir string
}

// NewSessionStorage creates a new session storage under dataDir.
func NewSessionStorage(dataDir string) (*SessionStorage, error) {
	sessionsDir := filepath.Join(dataDir, "sessions")

	// 0700 - user-only access
	if err := os.MkdirAll(sessionsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &SessionStorage{
		sessionsDir: sessionsDir,
	}, nil
}

// Save writes a session to disk, assigning an ID on first save.
func (s *SessionStorage) Save(session *Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	path := filepath.Join(s.sessionsDir, session.ID+".json")

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// 0600 - sessions contain conversation history
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load loads a session from disk
func (s *SessionStorage) Load(id string) (*Session, error) {
	path := filepath.Join(s.sessionsDir, id+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// List returns metadata for all sessions, sorted by update time (newest first)
func (s *SessionStorage) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessions []SessionMetadata

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.sessionsDir, entry.Name()))
		if err != nil {
			continue // Skip corrupted files
		}

		var session Session
		if err := json.Unmarshal(data, &session); err != nil {
			continue // Skip corrupted files
		}

		sessions = append(sessions, SessionMetadata{
			ID:        session.ID,
			Name:      session.Name,
			Provider:  session.Provider,
			Model:     session.Model,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
			TurnCount: len(session.Turns),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}

// Delete deletes a session from disk
func (s *SessionStorage) Delete(id string) error {
	if err := os.Remove(filepath.Join(s.sessionsDir, id+".json")); err != nil {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// SaveCurrentSessionID records the active session so the next start can
// resume it.
func (s *SessionStorage) SaveCurrentSessionID(id string) error {
	path := filepath.Join(filepath.Dir(s.sessionsDir), "current_session.id")
	return os.WriteFile(path, []byte(id), 0600)
}

// LoadCurrentSessionID loads the ID of the last active session
func (s *SessionStorage) LoadCurrentSessionID() (string, error) {
	path := filepath.Join(filepath.Dir(s.sessionsDir), "current_session.id")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Rename updates the name of a session
func (s *SessionStorage) Rename(id string, newName string) error {
	session, err := s.Load(id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	session.Name = newName

	if err := s.Save(session); err != nil {
		return fmt.Errorf("failed to save renamed session: %w", err)
	}

	return nil
}
