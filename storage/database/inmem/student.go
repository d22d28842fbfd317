package inmemdb

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
)

const defaultLevel = 100

var (
	ErrNotFound           = errors.New("student not found")
	ErrEmailExists        = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
)

func (row *studentRow) profile() student.Profile {
	return student.Profile{
		ID:           row.ID,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Email:        row.Email,
		DepartmentID: row.DepartmentID,
		Level:        row.Level,
		PhoneNumber:  row.PhoneNumber,
		Age:          row.Age,
	}
}

// CreateStudent stores a validated new student. New students start at level 100.
func (db *DB) CreateStudent(ns student.NewStudent) (student.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(ns.Password), db.hashCost)
	if err != nil {
		return student.Profile{}, errors.Wrap(err, "hashing password")
	}
	email := core.CleanString(ns.Email, true)

	db.students.mutex.Lock()
	defer db.students.mutex.Unlock()

	for _, row := range db.students.t {
		if row.Email == email {
			return student.Profile{}, ErrEmailExists
		}
	}

	db.students.pk++
	row := &studentRow{
		ID:           db.students.pk,
		FirstName:    ns.FirstName,
		LastName:     ns.LastName,
		Email:        email,
		PasswordHash: hash,
		DepartmentID: ns.Department,
		Level:        defaultLevel,
		PhoneNumber:  ns.PhoneNumber,
		Age:          ns.Age,
	}
	db.students.t[row.ID] = row
	return row.profile(), nil
}

// Authenticate returns ErrInvalidCredentials for an unknown email or a wrong password.
func (db *DB) Authenticate(email, password string) (student.Profile, error) {
	email = core.CleanString(email, true)

	db.students.mutex.RLock()
	defer db.students.mutex.RUnlock()

	for _, row := range db.students.t {
		if row.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(row.PasswordHash, []byte(password)); err != nil {
			return student.Profile{}, ErrInvalidCredentials
		}
		return row.profile(), nil
	}
	return student.Profile{}, ErrInvalidCredentials
}

func (db *DB) GetStudent(id int) (student.Profile, error) {
	db.students.mutex.RLock()
	defer db.students.mutex.RUnlock()

	if row, ok := db.students.t[id]; ok {
		return row.profile(), nil
	}
	return student.Profile{}, ErrNotFound
}

// SetLevel moves the student to another level.
func (db *DB) SetLevel(id, level int) error {
	db.students.mutex.Lock()
	defer db.students.mutex.Unlock()

	row, ok := db.students.t[id]
	if !ok {
		return ErrNotFound
	}
	row.Level = level
	return nil
}
