package inmemdb

import (
	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core/student"
)

const (
	DemoEmail    = "demo@studentportal.test"
	DemoPassword = "password1"
)

// demoGrades are the grades of the demo account, keyed by course code.
var demoGrades = map[string]string{
	"GST101": "A",
	"MTH101": "B",
	"CPE101": "A",
	"CPE102": "C",
	"FRE101": "B",
}

// SeedDemo creates the demo account: a level 100 Computer Engineering student
// with one elective and most courses graded.
func (db *DB) SeedDemo() (student.Profile, error) {
	usr, err := db.CreateStudent(student.NewStudent{
		FirstName:       "Demo",
		LastName:        "Student",
		Email:           DemoEmail,
		Password:        DemoPassword,
		PasswordConfirm: DemoPassword,
		Department:      1,
		PhoneNumber:     "08000000000",
		Age:             20,
	})
	if err != nil {
		return student.Profile{}, errors.Wrap(err, "creating demo student")
	}
	if err := db.RegisterCourses(usr.ID, []int{10, 11}); err != nil {
		return student.Profile{}, errors.Wrap(err, "registering demo courses")
	}

	set, err := db.RegisteredCourses(usr.ID)
	if err != nil {
		return student.Profile{}, err
	}
	for _, rec := range set.All() {
		if grade, ok := demoGrades[rec.Code]; ok {
			if err := db.SetGrade(usr.ID, rec.CourseID, grade); err != nil {
				return student.Profile{}, errors.Wrapf(err, "grading %s", rec.Code)
			}
		}
	}
	return usr, nil
}
