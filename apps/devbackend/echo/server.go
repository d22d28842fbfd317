package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
	inmemdb "github.com/trezcool/studentportal/storage/database/inmem"
)

// Store is the persistence the dev backend serves from.
type Store interface {
	CreateStudent(ns student.NewStudent) (student.Profile, error)
	Authenticate(email, password string) (student.Profile, error)
	GetStudent(id int) (student.Profile, error)
	OfferableCourses(studentID int) (student.CourseSet, error)
	RegisterCourses(studentID int, electiveIDs []int) error
	RegisteredCourses(studentID int) (student.CourseSet, error)
	CGPA(studentID int) (student.CGPAReport, error)
	RevokeToken(jti string, expiresAt time.Time)
	IsRevoked(jti string) bool
}

var _ Store = (*inmemdb.DB)(nil)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		Store          Store
		DisableReqLogs bool
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		auth     *authenticator
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		auth:     newAuthenticator(deps.Conf, deps.Store),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.auth)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	registerAuthAPI(s.app.Group("/auth"), s.auth, s.deps.Store)
	registerStudentAPI(s.app.Group("/student", s.auth.middleware), s.deps.Store)
}

// Start listens in the background; failures are sent on Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		if err := s.app.Start(s.deps.Conf.DevBackend.Address); err != nil && err != http.ErrServerClosed {
			s.errors <- err
		}
	}()
}

func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Student Portal dev backend")
}
