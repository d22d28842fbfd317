package inmemdb

import (
	"github.com/trezcool/studentportal/core/student"
	"github.com/trezcool/studentportal/core/transcript"
)

// Course is a catalogue entry. A zero DepartmentID is open to every department.
type Course struct {
	ID           int
	Code         string
	Name         string
	Description  string
	Unit         int
	Semester     string
	Mode         transcript.Mode
	DepartmentID int
	Level        int
}

func (c Course) record(grade transcript.Grade) transcript.CourseRecord {
	return transcript.CourseRecord{
		CourseID:    c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		Unit:        c.Unit,
		Semester:    c.Semester,
		Grade:       grade,
		Mode:        c.Mode,
	}
}

// offeredTo reports whether the student may take c.
func (c Course) offeredTo(usr student.Profile) bool {
	if c.Level != usr.Level {
		return false
	}
	return c.DepartmentID == 0 || c.DepartmentID == usr.DepartmentID
}

// OfferableCourses returns the catalogue courses of the student's department and level.
func (db *DB) OfferableCourses(studentID int) (student.CourseSet, error) {
	usr, err := db.GetStudent(studentID)
	if err != nil {
		return student.CourseSet{}, err
	}

	db.courses.mutex.RLock()
	defer db.courses.mutex.RUnlock()

	set := student.CourseSet{
		Compulsory: []transcript.CourseRecord{},
		Electives:  []transcript.CourseRecord{},
	}
	for _, id := range db.courses.order {
		c := db.courses.t[id]
		if !c.offeredTo(usr) {
			continue
		}
		if c.Mode == transcript.Elective {
			set.Electives = append(set.Electives, c.record(transcript.Ungraded))
		} else {
			set.Compulsory = append(set.Compulsory, c.record(transcript.Ungraded))
		}
	}
	return set, nil
}

// DefaultCatalogue is the course catalogue served by the dev backend.
var DefaultCatalogue = []Course{
	{ID: 1, Code: "GST101", Name: "Use of English", Unit: 2, Semester: "1st", Mode: transcript.Compulsory, Level: 100},
	{ID: 2, Code: "MTH101", Name: "Elementary Mathematics I", Unit: 3, Semester: "1st", Mode: transcript.Compulsory, Level: 100},
	{ID: 3, Code: "CPE101", Name: "Introduction to Computer Engineering", Unit: 3, Semester: "1st", Mode: transcript.Compulsory, DepartmentID: 1, Level: 100},
	{ID: 4, Code: "CPE102", Name: "Digital Logic", Unit: 3, Semester: "2nd", Mode: transcript.Compulsory, DepartmentID: 1, Level: 100},
	{ID: 5, Code: "PHY101", Name: "General Physics I", Unit: 3, Semester: "1st", Mode: transcript.Compulsory, DepartmentID: 2, Level: 100},
	{ID: 6, Code: "PHY102", Name: "General Physics II", Unit: 3, Semester: "2nd", Mode: transcript.Compulsory, DepartmentID: 2, Level: 100},
	{ID: 7, Code: "ECO101", Name: "Principles of Economics", Unit: 2, Semester: "1st", Mode: transcript.Compulsory, DepartmentID: 8, Level: 100},
	{ID: 10, Code: "FRE101", Name: "Elementary French", Unit: 2, Semester: "1st", Mode: transcript.Elective, Level: 100},
	{ID: 11, Code: "MUS101", Name: "Music Appreciation", Unit: 1, Semester: "2nd", Mode: transcript.Elective, Level: 100},
	{ID: 12, Code: "PHL101", Name: "Introduction to Philosophy", Unit: 2, Semester: "2nd", Mode: transcript.Elective, Level: 100},
	{ID: 20, Code: "MTH201", Name: "Mathematical Methods", Unit: 4, Semester: "1st", Mode: transcript.Compulsory, Level: 200},
	{ID: 21, Code: "CPE201", Name: "Data Structures", Unit: 3, Semester: "1st", Mode: transcript.Compulsory, DepartmentID: 1, Level: 200},
	{ID: 22, Code: "CPE202", Name: "Computer Architecture", Unit: 3, Semester: "2nd", Mode: transcript.Compulsory, DepartmentID: 1, Level: 200},
	{ID: 30, Code: "ENT201", Name: "Entrepreneurship", Unit: 2, Semester: "1st", Mode: transcript.Elective, Level: 200},
	{ID: 31, Code: "STA201", Name: "Statistics for Engineers", Unit: 2, Semester: "2nd", Mode: transcript.Elective, Level: 200},
}
