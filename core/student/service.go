package student

import (
	"context"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/transcript"
)

// Service prepares the data shown by the portal views.
type Service struct {
	backend Backend
	log     core.Logger
}

func NewService(backend Backend, logger core.Logger) *Service {
	return &Service{backend: backend, log: logger}
}

type Dashboard struct {
	Profile    Profile
	CGPA       string
	TotalUnits int
	Level      string
	Department string
	Courses    []transcript.CourseRecord
}

type TranscriptView struct {
	Report  CGPAReport
	CGPA    string
	Courses []transcript.CourseRecord
	Summary transcript.Summary
}

// Dashboard loads the dashboard of usr. A failure to list the registered
// courses only empties the course list.
func (svc *Service) Dashboard(ctx context.Context, usr Profile) (Dashboard, error) {
	report, err := svc.backend.GetCGPA(ctx)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "fetching CGPA")
	}

	dash := Dashboard{
		Profile:    usr,
		CGPA:       report.Format(),
		TotalUnits: report.TotalUnits,
		Level:      "N/A",
		Department: "N/A",
		Courses:    svc.registeredCourses(ctx, usr),
	}
	if usr.Level > 0 {
		dash.Level = strconv.Itoa(usr.Level)
	}
	if name := DepartmentName(usr.DepartmentID); name != "" {
		dash.Department = name
	} else if usr.DepartmentID > 0 {
		dash.Department = "Dept " + strconv.Itoa(usr.DepartmentID)
	}
	return dash, nil
}

// Transcript loads the server CGPA and the graded course records of the student.
// The server CGPA is the headline figure; the records are aggregated locally
// for the per-semester view.
func (svc *Service) Transcript(ctx context.Context, usr Profile) (TranscriptView, error) {
	report, err := svc.backend.GetCGPA(ctx)
	if err != nil {
		return TranscriptView{}, errors.Wrap(err, "fetching CGPA")
	}

	courses := svc.registeredCourses(ctx, usr)
	sum, err := transcript.Aggregate(courses)
	if err != nil {
		svc.log.Error("aggregating transcript", err, usr)
		return TranscriptView{}, errors.Wrap(err, "aggregating transcript")
	}

	return TranscriptView{
		Report:  report,
		CGPA:    report.Format(),
		Courses: courses,
		Summary: sum,
	}, nil
}

func (svc *Service) registeredCourses(ctx context.Context, usr Profile) []transcript.CourseRecord {
	set, err := svc.backend.GetRegisteredCourses(ctx)
	if err != nil {
		svc.log.Warn("fetching registered courses", err, usr)
		return []transcript.CourseRecord{}
	}
	return set.All()
}

// Offerable lists the courses the student may register for.
func (svc *Service) Offerable(ctx context.Context) (CourseSet, error) {
	set, err := svc.backend.GetOfferableCourses(ctx)
	if err != nil {
		return CourseSet{}, errors.Wrap(err, "fetching offerable courses")
	}
	return set, nil
}

// Register registers the selected electives. An empty selection registers
// the compulsory courses only.
func (svc *Service) Register(ctx context.Context, sel *ElectiveSelection) error {
	ids := []int{}
	if sel != nil {
		ids = sel.IDs()
	}
	if err := svc.backend.RegisterCourses(ctx, ids); err != nil {
		return errors.Wrap(err, "registering courses")
	}
	return nil
}

// DownloadTranscript writes the official transcript to w.
func (svc *Service) DownloadTranscript(ctx context.Context, w io.Writer) (int64, error) {
	n, err := svc.backend.DownloadTranscript(ctx, w)
	if err != nil {
		return n, errors.Wrap(err, "downloading transcript")
	}
	return n, nil
}
