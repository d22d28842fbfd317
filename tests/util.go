package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
	"github.com/trezcool/studentportal/core/transcript"
)

type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger records every entry; it never exits on Fatal.
type Logger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) add(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Msg: msg, Args: args})
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.add("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.add("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.add("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.add("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.add("fatal", msg, args) }

// Count returns the number of entries logged at level.
func (l *Logger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int
	for _, e := range l.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Backend is a scriptable student.AuthBackend and student.Backend.
// Nil funcs succeed with zero values. Calls records the method names in call order.
type Backend struct {
	mu    sync.Mutex
	Calls []string

	SignupFunc               func(ns student.NewStudent) (student.Profile, error)
	LoginFunc                func(creds student.Credentials) error
	LogoutFunc               func() error
	GetProfileFunc           func() (student.Profile, error)
	GetOfferableCoursesFunc  func() (student.CourseSet, error)
	RegisterCoursesFunc      func(ids []int) error
	GetCGPAFunc              func() (student.CGPAReport, error)
	GetRegisteredCoursesFunc func() (student.CourseSet, error)
	TranscriptDocument       string
}

var (
	_ student.AuthBackend = (*Backend)(nil)
	_ student.Backend     = (*Backend)(nil)
)

func (b *Backend) record(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, name)
}

// CallCount returns how many times the named method was called.
func (b *Backend) CallCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	var n int
	for _, c := range b.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (b *Backend) Signup(_ context.Context, ns student.NewStudent) (student.Profile, error) {
	b.record("Signup")
	if b.SignupFunc != nil {
		return b.SignupFunc(ns)
	}
	return student.Profile{FirstName: ns.FirstName, LastName: ns.LastName, Email: ns.Email}, nil
}

func (b *Backend) Login(_ context.Context, creds student.Credentials) error {
	b.record("Login")
	if b.LoginFunc != nil {
		return b.LoginFunc(creds)
	}
	return nil
}

func (b *Backend) Logout(context.Context) error {
	b.record("Logout")
	if b.LogoutFunc != nil {
		return b.LogoutFunc()
	}
	return nil
}

func (b *Backend) GetProfile(context.Context) (student.Profile, error) {
	b.record("GetProfile")
	if b.GetProfileFunc != nil {
		return b.GetProfileFunc()
	}
	return student.Profile{}, nil
}

func (b *Backend) GetOfferableCourses(context.Context) (student.CourseSet, error) {
	b.record("GetOfferableCourses")
	if b.GetOfferableCoursesFunc != nil {
		return b.GetOfferableCoursesFunc()
	}
	return student.CourseSet{}, nil
}

func (b *Backend) RegisterCourses(_ context.Context, ids []int) error {
	b.record("RegisterCourses")
	if b.RegisterCoursesFunc != nil {
		return b.RegisterCoursesFunc(ids)
	}
	return nil
}

func (b *Backend) GetCGPA(context.Context) (student.CGPAReport, error) {
	b.record("GetCGPA")
	if b.GetCGPAFunc != nil {
		return b.GetCGPAFunc()
	}
	return student.CGPAReport{}, nil
}

func (b *Backend) GetRegisteredCourses(context.Context) (student.CourseSet, error) {
	b.record("GetRegisteredCourses")
	if b.GetRegisteredCoursesFunc != nil {
		return b.GetRegisteredCoursesFunc()
	}
	return student.CourseSet{}, nil
}

func (b *Backend) DownloadTranscript(_ context.Context, w io.Writer) (int64, error) {
	b.record("DownloadTranscript")
	n, err := io.Copy(w, strings.NewReader(b.TranscriptDocument))
	return n, err
}

// BackendErr builds a *core.BackendError with the given status and message.
func BackendErr(status int, msg string) error {
	return &core.BackendError{Status: status, Message: msg}
}

// Course builds a course record.
func Course(id int, code string, unit int, grade transcript.Grade, semester string, mode transcript.Mode) transcript.CourseRecord {
	return transcript.CourseRecord{
		CourseID: id,
		Code:     code,
		Name:     fmt.Sprintf("Course %s", code),
		Unit:     unit,
		Semester: semester,
		Grade:    grade,
		Mode:     mode,
	}
}
