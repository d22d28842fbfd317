package inmemdb

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/studentportal/core/transcript"
)

type (
	// DB is the dev backend's in-memory store.
	DB struct {
		students      *studentTable
		courses       *courseTable
		registrations *registrationTable
		tokens        *tokenTable
		hashCost      int
	}

	studentTable struct {
		t     map[int]*studentRow
		pk    int
		mutex sync.RWMutex
	}

	studentRow struct {
		ID           int
		FirstName    string
		LastName     string
		Email        string
		PasswordHash []byte
		DepartmentID int
		Level        int
		PhoneNumber  string
		Age          int
	}

	courseTable struct {
		t     map[int]Course
		order []int // catalogue order
		mutex sync.RWMutex
	}

	// registrationTable maps a student ID to the grades of the registered courses.
	registrationTable struct {
		t     map[int]map[int]transcript.Grade
		order map[int][]int // registration order per student
		mutex sync.RWMutex
	}

	tokenTable struct {
		revoked map[string]time.Time // jti -> expiry
		mutex   sync.Mutex
	}
)

// Open returns an empty store holding courses as its catalogue.
func Open(courses ...Course) *DB {
	db := &DB{
		students:      &studentTable{t: make(map[int]*studentRow)},
		courses:       &courseTable{t: make(map[int]Course)},
		registrations: &registrationTable{t: make(map[int]map[int]transcript.Grade), order: make(map[int][]int)},
		tokens:        &tokenTable{revoked: make(map[string]time.Time)},
		hashCost:      bcrypt.DefaultCost,
	}
	for _, c := range courses {
		db.addCourse(c)
	}
	return db
}

// WithHashCost sets the bcrypt cost used for new passwords.
// Tests use bcrypt.MinCost.
func (db *DB) WithHashCost(cost int) *DB {
	db.hashCost = cost
	return db
}

func (db *DB) addCourse(c Course) {
	db.courses.mutex.Lock()
	defer db.courses.mutex.Unlock()

	if _, ok := db.courses.t[c.ID]; !ok {
		db.courses.order = append(db.courses.order, c.ID)
	}
	db.courses.t[c.ID] = c
}
