package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core/student"
	"github.com/trezcool/studentportal/core/transcript"
)

func loadFailed(what string) string {
	return fmt.Sprintf("Failed to load %s. Please try again later.", what)
}

func (cli *commandLine) dashboard(ctx context.Context, usr student.Profile) error {
	dash, err := cli.svc.Dashboard(ctx, usr)
	if err != nil {
		fmt.Fprintln(cli.out, loadFailed("dashboard"))
		return err
	}

	fmt.Fprintf(cli.out, "Welcome, %s\n\n", dash.Profile.FullName())
	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Email:\t%s\n", dash.Profile.Email)
	fmt.Fprintf(tw, "Department:\t%s\n", dash.Department)
	fmt.Fprintf(tw, "Level:\t%s\n", dash.Level)
	fmt.Fprintf(tw, "CGPA:\t%s\n", dash.CGPA)
	fmt.Fprintf(tw, "Total units:\t%d\n", dash.TotalUnits)
	fmt.Fprintf(tw, "Registered courses:\t%d\n", len(dash.Courses))
	return tw.Flush()
}

// profile shows the logged in student's personal information. It reads the
// session's profile and makes no backend call.
func (cli *commandLine) profile(usr student.Profile) error {
	fmt.Fprintln(cli.out, "Your Profile")
	fmt.Fprintln(cli.out)
	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	for _, fld := range usr.Fields() {
		fmt.Fprintf(tw, "%s:\t%s\n", fld.Label, fld.Value)
	}
	return tw.Flush()
}

func (cli *commandLine) transcript(ctx context.Context, usr student.Profile) error {
	view, err := cli.svc.Transcript(ctx, usr)
	if err != nil {
		fmt.Fprintln(cli.out, loadFailed("transcript"))
		return err
	}

	fmt.Fprintf(cli.out, "Transcript of %s\n", usr.FullName())
	if len(view.Courses) == 0 {
		fmt.Fprintln(cli.out, "\nNo registered courses.")
	}
	for _, group := range view.Summary.BySemester {
		fmt.Fprintf(cli.out, "\n%s semester\n", group.Label)
		if err := printCourses(cli, group.Records, true); err != nil {
			return err
		}
	}
	fmt.Fprintf(cli.out, "\nCGPA: %s (%d units)\n", view.CGPA, view.Report.TotalUnits)
	return nil
}

func (cli *commandLine) courses(ctx context.Context) error {
	set, err := cli.svc.Offerable(ctx)
	if err != nil {
		fmt.Fprintln(cli.out, loadFailed("courses"))
		return err
	}

	fmt.Fprintln(cli.out, "Compulsory courses (registered automatically)")
	if err := printCourses(cli, set.Compulsory, false); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "\nElective courses")
	if len(set.Electives) == 0 {
		fmt.Fprintln(cli.out, "  none offered")
		return nil
	}
	return printCourses(cli, set.Electives, false)
}

func (cli *commandLine) register(ctx context.Context, ids []int) error {
	offered, err := cli.svc.Offerable(ctx)
	if err != nil {
		fmt.Fprintln(cli.out, loadFailed("courses"))
		return err
	}

	sel := student.NewElectiveSelection(ids...)
	sum := student.Summarize(offered, sel)
	if len(sum.Unknown) > 0 {
		fmt.Fprintf(cli.out, "Not offered as electives: %v\n", sum.Unknown)
		return errors.Errorf("unknown elective courses %v", sum.Unknown)
	}

	if err := cli.svc.Register(ctx, sel); err != nil {
		fmt.Fprintln(cli.out, "Failed to register courses. Please try again later.")
		return err
	}
	fmt.Fprintf(cli.out, "Registered %d compulsory and %d elective courses (%d units)\n",
		len(sum.Compulsory), len(sum.Electives), sum.TotalUnits)
	return nil
}

func (cli *commandLine) downloadTranscript(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	n, err := cli.svc.DownloadTranscript(ctx, f)
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		_ = os.Remove(path)
		fmt.Fprintln(cli.out, "Failed to download transcript. Please try again later.")
		return err
	}
	fmt.Fprintf(cli.out, "Saved transcript to %s (%d bytes)\n", path, n)
	return nil
}

func printCourses(cli *commandLine, recs []transcript.CourseRecord, withGrade bool) error {
	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	if withGrade {
		fmt.Fprintln(tw, "  CODE\tTITLE\tUNITS\tGRADE")
	} else {
		fmt.Fprintln(tw, "  ID\tCODE\tTITLE\tUNITS\tSEMESTER")
	}
	for _, rec := range recs {
		if withGrade {
			fmt.Fprintf(tw, "  %s\t%s\t%d\t%s\n", rec.Code, rec.Name, rec.Unit, rec.Grade)
		} else {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%d\t%s\n", rec.CourseID, rec.Code, rec.Name, rec.Unit, rec.Semester)
		}
	}
	return tw.Flush()
}
