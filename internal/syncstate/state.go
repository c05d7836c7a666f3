package syncstate

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Store keeps the file path -> post id map in a JSON file.
// Loaded at start, saved on every change
type Store struct {
	path string

	mu      sync.Mutex
	entries map[string]string
}

func NewStore(path string) *Store {
	return &Store{
		path:    path,
		entries: make(map[string]string),
	}
}

// Load reads the state from disk, a missing file is not an error
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.entries = make(map[string]string)
			return nil
		}
		return fmt.Errorf("не удалось прочитать файл состояния: %w", err)
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("не удалось разобрать файл состояния: %w", err)
	}

	s.entries = entries
	return nil
}

func (s *Store) Get(filePath string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.entries[filePath]
	return id, ok
}

// Set records the mapping and saves the state right away
func (s *Store) Set(filePath, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[filePath] = postID
	return s.save()
}

func (s *Store) Delete(filePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[filePath]; !ok {
		return nil
	}
	delete(s.entries, filePath)
	return s.save()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("не удалось сериализовать состояние: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("не удалось сохранить файл состояния: %w", err)
	}
	return nil
}
