// Package flagstore persists the session hint of the portal: whether the
// last known session was logged in, and the backend cookies that carry it.
package flagstore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Key is the name the flag is stored under.
const Key = "isLoggedIn"

// FileStore keeps the flag in a small JSON document.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// LoggedIn reads the flag. A missing file means logged out.
func (s *FileStore) LoggedIn() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return false, err
	}
	return doc[Key] == "true", nil
}

// SetLoggedIn writes the flag; false removes it.
func (s *FileStore) SetLoggedIn(loggedIn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		// a corrupt document is replaced
		doc = make(map[string]string)
	}
	if loggedIn {
		doc[Key] = "true"
	} else {
		delete(doc, Key)
	}
	return writeJSON(s.path, doc)
}

func (s *FileStore) read() (map[string]string, error) {
	doc := make(map[string]string)
	data, err := ioutil.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", s.path)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", s.path)
	}
	return doc, nil
}

// writeJSON replaces path atomically.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "creating session directory")
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding session document")
	}

	tmp, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}
	return nil
}

// MemStore keeps the flag in memory.
type MemStore struct {
	mu       sync.RWMutex
	loggedIn bool
	writes   int
}

func NewMemStore(loggedIn bool) *MemStore {
	return &MemStore{loggedIn: loggedIn}
}

func (s *MemStore) LoggedIn() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn, nil
}

func (s *MemStore) SetLoggedIn(loggedIn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = loggedIn
	s.writes++
	return nil
}

// Writes returns the number of SetLoggedIn calls.
func (s *MemStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
