package student

import (
	"context"
	"io"
)

// AuthBackend authenticates students against the portal backend.
// Implementations return *core.BackendError on failure.
type AuthBackend interface {
	Signup(ctx context.Context, ns NewStudent) (Profile, error)
	Login(ctx context.Context, creds Credentials) error
	Logout(ctx context.Context) error
}

// ProfileSource reads the profile of the current session.
type ProfileSource interface {
	GetProfile(ctx context.Context) (Profile, error)
}

// Backend serves the data of the authenticated student.
// Implementations return *core.BackendError on failure.
type Backend interface {
	ProfileSource

	GetOfferableCourses(ctx context.Context) (CourseSet, error)
	// RegisterCourses registers the selected electives; compulsory courses are added by the backend.
	RegisterCourses(ctx context.Context, electiveIDs []int) error
	GetCGPA(ctx context.Context) (CGPAReport, error)
	GetRegisteredCourses(ctx context.Context) (CourseSet, error)
	// DownloadTranscript streams the official transcript document to w.
	DownloadTranscript(ctx context.Context, w io.Writer) (int64, error)
}
