package inmemdb

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core/student"
	"github.com/trezcool/studentportal/core/transcript"
)

var ErrNotRegistered = errors.New("course not registered")

// UnknownCourseError is returned when a selected elective is not offered to the student.
type UnknownCourseError struct {
	CourseID int
}

func (err *UnknownCourseError) Error() string {
	return fmt.Sprintf("Course %d is not offered as an elective", err.CourseID)
}

// RegisterCourses registers every offered compulsory course plus the selected
// electives. Grades of courses already registered are kept.
func (db *DB) RegisterCourses(studentID int, electiveIDs []int) error {
	offered, err := db.OfferableCourses(studentID)
	if err != nil {
		return err
	}

	electives := make(map[int]bool, len(offered.Electives))
	for _, rec := range offered.Electives {
		electives[rec.CourseID] = true
	}
	for _, id := range electiveIDs {
		if !electives[id] {
			return &UnknownCourseError{CourseID: id}
		}
	}

	db.registrations.mutex.Lock()
	defer db.registrations.mutex.Unlock()

	grades, ok := db.registrations.t[studentID]
	if !ok {
		grades = make(map[int]transcript.Grade)
		db.registrations.t[studentID] = grades
	}
	add := func(id int) {
		if _, ok := grades[id]; !ok {
			grades[id] = transcript.Ungraded
			db.registrations.order[studentID] = append(db.registrations.order[studentID], id)
		}
	}
	for _, rec := range offered.Compulsory {
		add(rec.CourseID)
	}
	for _, id := range electiveIDs {
		add(id)
	}
	return nil
}

// RegisteredCourses returns the registered courses of the student, with grades, in registration order.
func (db *DB) RegisteredCourses(studentID int) (student.CourseSet, error) {
	if _, err := db.GetStudent(studentID); err != nil {
		return student.CourseSet{}, err
	}

	db.registrations.mutex.RLock()
	defer db.registrations.mutex.RUnlock()
	db.courses.mutex.RLock()
	defer db.courses.mutex.RUnlock()

	set := student.CourseSet{
		Compulsory: []transcript.CourseRecord{},
		Electives:  []transcript.CourseRecord{},
	}
	grades := db.registrations.t[studentID]
	for _, id := range db.registrations.order[studentID] {
		c, ok := db.courses.t[id]
		if !ok {
			continue
		}
		rec := c.record(grades[id])
		if c.Mode == transcript.Elective {
			set.Electives = append(set.Electives, rec)
		} else {
			set.Compulsory = append(set.Compulsory, rec)
		}
	}
	return set, nil
}

// SetGrade grades a registered course. The grade must be on the scale, or blank to clear it.
func (db *DB) SetGrade(studentID, courseID int, grade string) error {
	g, err := transcript.ParseGrade(grade)
	if err != nil {
		return err
	}

	db.registrations.mutex.Lock()
	defer db.registrations.mutex.Unlock()

	grades := db.registrations.t[studentID]
	if _, ok := grades[courseID]; !ok {
		return ErrNotRegistered
	}
	grades[courseID] = g
	return nil
}

// CGPA computes the student's CGPA over the graded registered courses.
func (db *DB) CGPA(studentID int) (student.CGPAReport, error) {
	set, err := db.RegisteredCourses(studentID)
	if err != nil {
		return student.CGPAReport{}, err
	}
	sum, err := transcript.Aggregate(set.All())
	if err != nil {
		return student.CGPAReport{}, errors.Wrap(err, "aggregating grades")
	}
	cgpa, _ := sum.CGPA()
	return student.CGPAReport{CGPA: cgpa, TotalUnits: sum.TotalUnits}, nil
}
