// Package highscore persists the best score across sessions.
package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Store loads and saves a single integer high score.
type Store interface {
	// Load returns the stored score, or 0 when nothing valid is stored.
	Load() int
	Save(score int) error
}

// FileStore keeps the score as decimal text in a file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the score. A missing, unreadable, or malformed file reads as 0.
func (s *FileStore) Load() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Save overwrites the stored score.
func (s *FileStore) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(score)
}

// Submit saves score if it beats the stored value, holding the lock across
// the read and the write so concurrent sessions cannot lower the record.
func (s *FileStore) Submit(score int) (best int, saved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return submit(s.load, s.save, score)
}

func (s *FileStore) save(score int) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("highscore: create dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("highscore: write %s: %w", s.path, err)
	}
	return nil
}

// Memory is an in-process Store, used for tests and anonymous sessions.
type Memory struct {
	mu    sync.Mutex
	score int
	saves int
}

func (m *Memory) Load() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score
}

func (m *Memory) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	m.saves++
	return nil
}

// Saves reports how many times Save was called.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// SubmitIfHigher saves score when it strictly exceeds the stored value.
// It returns the resulting best score and whether a write happened.
// Stores with their own atomic Submit are used through it.
func SubmitIfHigher(s Store, score int) (best int, saved bool, err error) {
	if sub, ok := s.(submitter); ok {
		return sub.Submit(score)
	}
	return submit(s.Load, s.Save, score)
}

type submitter interface {
	Submit(score int) (best int, saved bool, err error)
}

func submit(load func() int, save func(int) error, score int) (int, bool, error) {
	prev := load()
	if score <= prev {
		return prev, false, nil
	}
	if err := save(score); err != nil {
		return prev, false, err
	}
	return score, true, nil
}
