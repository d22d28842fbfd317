package flagstore

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
)

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
}

// CookieFile persists the backend session cookies between runs.
type CookieFile struct {
	path string
	mu   sync.Mutex
}

func NewCookieFile(path string) *CookieFile {
	return &CookieFile{path: path}
}

// Load returns the stored cookies that have not expired. A missing file yields none.
func (f *CookieFile) Load() ([]*http.Cookie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := ioutil.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", f.path)
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", f.path)
	}

	now := time.Now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	return cookies, nil
}

// Save replaces the stored cookies. Saving none removes the file.
func (f *CookieFile) Save(cookies []*http.Cookie) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(cookies) == 0 {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %s", f.path)
		}
		return nil
	}

	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	return writeJSON(f.path, stored)
}
