package echoapi

import (
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core/student"
	"github.com/trezcool/studentportal/core/transcript"
)

type studentApi struct {
	store Store
}

func registerStudentAPI(g *echo.Group, store Store) {
	api := studentApi{store: store}

	g.GET("/profile", api.profile)
	g.GET("/offerable-courses", api.offerableCourses)
	g.POST("/register-courses", api.registerCourses)
	g.GET("/cgpa", api.cgpa)
	g.GET("/registered-courses", api.registeredCourses)
	g.GET("/transcript", api.transcript)
}

type registerCoursesRequest struct {
	ElectiveCourseIDs []int `json:"electiveCourseIds"`
}

func (api *studentApi) profile(ctx echo.Context) error {
	usr, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *studentApi) offerableCourses(ctx echo.Context) error {
	usr, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	set, err := api.store.OfferableCourses(usr.ID)
	if err != nil {
		return errors.Wrap(err, "listing offerable courses")
	}
	return ctx.JSON(http.StatusOK, set)
}

func (api *studentApi) registerCourses(ctx echo.Context) error {
	usr, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	var data registerCoursesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to registerCoursesRequest")
	}
	if err := api.store.RegisterCourses(usr.ID, data.ElectiveCourseIDs); err != nil {
		return errors.Wrap(err, "registering courses")
	}
	return ctx.JSON(http.StatusOK, messageResponse{Message: "Courses registered successfully"})
}

func (api *studentApi) cgpa(ctx echo.Context) error {
	usr, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	report, err := api.store.CGPA(usr.ID)
	if err != nil {
		return errors.Wrap(err, "computing CGPA")
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *studentApi) registeredCourses(ctx echo.Context) error {
	usr, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	set, err := api.store.RegisteredCourses(usr.ID)
	if err != nil {
		return errors.Wrap(err, "listing registered courses")
	}
	return ctx.JSON(http.StatusOK, set)
}

func (api *studentApi) transcript(ctx echo.Context) error {
	usr, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	set, err := api.store.RegisteredCourses(usr.ID)
	if err != nil {
		return errors.Wrap(err, "listing registered courses")
	}
	doc, err := renderTranscript(usr, set)
	if err != nil {
		return errors.Wrap(err, "rendering transcript")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="transcript.txt"`)
	return ctx.String(http.StatusOK, doc)
}

// renderTranscript lays the registered courses out per semester, followed by the CGPA.
func renderTranscript(usr student.Profile, set student.CourseSet) (string, error) {
	sum, err := transcript.Aggregate(set.All())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "OFFICIAL TRANSCRIPT\n\n")
	fmt.Fprintf(&b, "Name:       %s\n", usr.FullName())
	fmt.Fprintf(&b, "Email:      %s\n", usr.Email)
	if dept := student.DepartmentName(usr.DepartmentID); dept != "" {
		fmt.Fprintf(&b, "Department: %s\n", dept)
	}
	if usr.Level > 0 {
		fmt.Fprintf(&b, "Level:      %d\n", usr.Level)
	}

	for _, group := range sum.BySemester {
		fmt.Fprintf(&b, "\n%s semester\n", group.Label)
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CODE\tTITLE\tUNITS\tGRADE")
		for _, rec := range group.Records {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", rec.Code, rec.Name, rec.Unit, rec.Grade)
		}
		if err := tw.Flush(); err != nil {
			return "", err
		}
	}

	fmt.Fprintf(&b, "\nTotal units:        %d\n", sum.TotalUnits)
	fmt.Fprintf(&b, "Total grade points: %d\n", sum.TotalGradePoints)
	fmt.Fprintf(&b, "CGPA:               %s\n", sum.FormatCGPA())
	return b.String(), nil
}
